package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alebeck/detach/internal/config"
	"github.com/alebeck/detach/internal/control"
	"github.com/alebeck/detach/internal/log"
	"github.com/alebeck/detach/internal/table"
	"github.com/spf13/cobra"
)

const connectTimeout = 2 * time.Second

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [socket]",
		Short: "Show the state of a detached command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sock, err := socketArg(args)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
			defer cancel()
			if err := control.Wait(ctx, sock); err != nil {
				return fmt.Errorf("no daemon listening on %s: %w", sock, err)
			}
			resp, err := send(sock, control.Status)
			if err != nil {
				return err
			}
			if resp.State == nil {
				return errors.New("daemon did not report its state")
			}

			st := resp.State
			tbl := table.New("PID", "CHILD", "UPTIME", "COMMAND")
			child := "-"
			if st.ChildPID != 0 {
				child = fmt.Sprint(st.ChildPID)
			}
			tbl.AddRow(st.PID, child, uptime(st.Started), strings.Join(st.Command, " "))
			log.Printf("%s", tbl)
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop [socket]",
		Short: "Terminate a detached command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sock, err := socketArg(args)
			if err != nil {
				return err
			}
			if _, err := send(sock, control.Stop); err != nil {
				return err
			}
			log.Infof("Stopped daemon at %s", sock)
			return nil
		},
	}
}

// socketArg returns the socket given on the command line, falling back
// to the configured one.
func socketArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.Control == "" {
		return "", errors.New("no control socket given or configured")
	}
	return cfg.Control, nil
}

func send(sock string, kind control.CmdKind) (*control.Resp, error) {
	resp, err := control.Send(sock, control.Cmd{Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("could not reach daemon at %s: %w", sock, err)
	}
	if !resp.Success {
		return nil, errors.New(resp.Error)
	}
	return resp, nil
}

func uptime(started time.Time) string {
	if started.IsZero() {
		return log.Yellow("starting")
	}
	since := time.Since(started)
	days := int(since / (24 * time.Hour))
	hours := int(since/time.Hour) % 24
	mins := int(since/time.Minute) % 60
	secs := int(since/time.Second) % 60
	var str string
	if days > 0 {
		str = fmt.Sprintf("%02dd%02dh", days, hours)
	} else if hours > 0 {
		str = fmt.Sprintf("%02dh%02dm", hours, mins)
	} else {
		str = fmt.Sprintf("%02dm%02ds", mins, secs)
	}
	return log.Bold(log.Green(str))
}
