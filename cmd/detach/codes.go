package main

import (
	"io"

	"github.com/alebeck/detach/internal/buildinfo"
	"github.com/alebeck/detach/internal/daemon"
	"github.com/alebeck/detach/internal/log"
	"github.com/alebeck/detach/internal/table"
	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the exit codes used between detaching processes",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			tbl := table.New("CODE", "NAME", "MEANING")
			for _, c := range daemon.ExitCodes() {
				meaning := "success"
				if err := c.Err(); err != nil {
					meaning = err.Error()
				}
				tbl.AddRow(c.Int(), c, meaning)
			}
			log.Printf("%s", tbl)
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			v := buildinfo.Version
			if v == "" {
				v = "snapshot"
			}
			if buildinfo.Commit != "" {
				v += " (#" + buildinfo.Commit + ")"
			}
			io.WriteString(stdout, "detach "+v+"\n")
		},
	}
}
