// Package supervise runs a command inside a detached process, keeping it
// reachable through an optional control socket.
package supervise

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alebeck/detach/internal/control"
	"github.com/alebeck/detach/internal/log"
	"github.com/gofrs/flock"
)

// Options describes what to supervise and where to report.
type Options struct {
	// Args is the command line to run, Args[0] is looked up in PATH.
	Args []string
	// LogFile receives the command's output and the supervisor's log.
	LogFile string
	// Control is the unix socket to serve the control protocol on.
	Control string
	// Lock is held for as long as the supervisor runs.
	Lock string
}

type supervisor struct {
	args    []string
	mu      sync.Mutex
	cmd     *exec.Cmd
	started time.Time
}

// Run starts the command and blocks until it exits, returning its exit
// status. A command killed by a signal reports 128 plus the signal number.
func Run(ctx context.Context, opts Options) (int, error) {
	if len(opts.Args) == 0 {
		return 0, errors.New("no command given")
	}

	if opts.Lock != "" {
		fl := flock.New(opts.Lock)
		ok, err := fl.TryLock()
		if err != nil {
			return 0, fmt.Errorf("could not lock %s: %w", opts.Lock, err)
		}
		if !ok {
			return 0, fmt.Errorf("%s is locked by another process", opts.Lock)
		}
		defer fl.Unlock()
	}

	out, err := openOutput(opts.LogFile)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	log.Init(out, false, false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := &supervisor{args: opts.Args}

	var served chan struct{}
	if opts.Control != "" {
		// Remove stale socket from a previous crash
		os.Remove(opts.Control)
		l, err := net.Listen("unix", opts.Control)
		if err != nil {
			return 0, fmt.Errorf("could not listen on %s: %w", opts.Control, err)
		}
		served = make(chan struct{})
		go func() {
			defer close(served)
			control.Serve(ctx, l, s)
		}()
		defer func() {
			cancel()
			<-served
			os.Remove(opts.Control)
		}()
	}

	if err := s.start(out); err != nil {
		return 0, err
	}
	log.Infof("Started %v with PID %d", opts.Args, s.cmd.Process.Pid)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sig)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case v := <-sig:
				log.Infof("Received signal: %s, forwarding", v)
				s.signal(v)
			}
		}
	}()

	code := exitCode(s.cmd.Wait(), s.cmd.ProcessState)
	log.Infof("Command exited with status %d", code)
	return code, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	w, err := log.NewFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	return w, nil
}

func (s *supervisor) start(out io.Writer) error {
	cmd := exec.Command(s.args[0], s.args[1:]...)
	cmd.Stdout = out
	cmd.Stderr = out

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start %s: %w", s.args[0], err)
	}
	s.cmd = cmd
	s.started = time.Now()
	return nil
}

func (s *supervisor) signal(sig os.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return errors.New("command not running")
	}
	return s.cmd.Process.Signal(sig)
}

func (s *supervisor) State() control.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := control.State{PID: os.Getpid(), Command: s.args, Started: s.started}
	if s.cmd != nil && s.cmd.Process != nil {
		st.ChildPID = s.cmd.Process.Pid
	}
	return st
}

func (s *supervisor) Stop() error {
	return s.signal(syscall.SIGTERM)
}

func exitCode(err error, ps *os.ProcessState) int {
	if ps == nil {
		if err != nil {
			return 1
		}
		return 0
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}
