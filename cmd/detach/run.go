package main

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alebeck/detach/internal/config"
	"github.com/alebeck/detach/internal/daemon"
	"github.com/alebeck/detach/internal/log"
	"github.com/alebeck/detach/internal/supervise"
	"github.com/spf13/cobra"
)

type runFlags struct {
	timeoutMs uint16
	logFile   string
	control   string
	lock      string
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [flags] [--] command [args...]",
		Short: "Run a command as a detached daemon",
		Long: `Run detaches from the terminal with a double fork and runs the command
under a small supervisor. It returns once the daemon survived the timeout
window, or fails with the reason the daemon died early.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRun(cmd, args, f)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Uint16Var(&f.timeoutMs, "timeout-ms", daemon.DefaultTimeoutMs,
		"how long the daemon must survive to count as started")
	cmd.Flags().StringVar(&f.logFile, "log", "", "file receiving the command's output")
	cmd.Flags().StringVar(&f.control, "control", "", "unix socket serving status and stop requests")
	cmd.Flags().StringVar(&f.lock, "lock", "", "file to lock while the daemon runs")
	return cmd
}

// doRun runs identically in every process of the double fork up to
// Daemonize, so nothing before it may have side effects.
func doRun(cmd *cobra.Command, args []string, f runFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	timeout := cfg.Timeout()
	if cmd.Flags().Changed("timeout-ms") {
		timeout = f.timeoutMs
	}

	opts := supervise.Options{
		LogFile: pick(cmd, "log", f.logFile, cfg.LogFile),
		Control: pick(cmd, "control", f.control, cfg.Control),
		Lock:    pick(cmd, "lock", f.lock, cfg.Lock),
	}
	// The daemon runs from /, so everything relative must be resolved now.
	for _, p := range []*string{&opts.LogFile, &opts.Control, &opts.Lock} {
		if *p == "" {
			continue
		}
		if *p, err = filepath.Abs(*p); err != nil {
			return err
		}
	}
	bin, err := resolveCommand(args[0])
	if err != nil {
		return err
	}
	opts.Args = append([]string{bin}, args[1:]...)

	id, err := daemon.New().WithTimeout(timeout).Daemonize()
	if err != nil {
		return fmt.Errorf("could not detach %s: %w", args[0], err)
	}

	if id == daemon.Original {
		log.Infof("Detached: %s", strings.Join(args, " "))
		return nil
	}

	code, err := supervise.Run(context.Background(), opts)
	if err != nil {
		return err
	}
	if code != 0 {
		// Our own status is only observed inside the liveness window,
		// where specific codes would be mistaken for setup failures.
		return errExit
	}
	return nil
}

// pick returns the flag value if it was set, the config value otherwise.
func pick(cmd *cobra.Command, name, flag, cfg string) string {
	if cmd.Flags().Changed(name) {
		return flag
	}
	return cfg
}

func resolveCommand(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(p)
}
