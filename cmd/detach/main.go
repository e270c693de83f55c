// detach runs a command as a daemon and only reports success once the
// daemon has survived its startup window.
package main

import (
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/alebeck/detach/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var isTerm = term.IsTerminal(int(os.Stdout.Fd()))

// errExit signals a non-zero exit whose reason was already reported.
var errExit = errors.New("exit")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	initLogging(stdout)

	root := newRootCmd(stdout)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			log.Errorf("%v", err)
		}
		return 1
	}
	return 0
}

func initLogging(stdout io.Writer) {
	// We don't use colors under Windows for now.
	useColors := isTerm && runtime.GOOS != "windows"
	log.Init(stdout, isTerm, useColors)
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "detach",
		Short:         "Run commands as properly detached daemons",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newStopCmd(),
		newCodesCmd(),
		newVersionCmd(stdout),
	)
	return root
}
