// Package daemon detaches the calling program from its terminal using the
// double-fork protocol and reports back, within a bounded time, whether
// the detached process actually came up.
//
// Go cannot fork a running process, so on Unix every fork re-executes the
// current binary with the same arguments. The re-executed instances run
// the program from the start until they reach Daemonize again, where they
// pick up at their own stage. Programs should therefore call Daemonize
// before doing anything they do not want repeated.
package daemon

import (
	"errors"
	"fmt"

	"github.com/alebeck/detach/internal/log"
)

// Identity tells the caller which role the current process has after a
// successful Daemonize.
type Identity int

const (
	// Original is the process that called Daemonize in the foreground.
	Original Identity = iota
	// Daemon is the detached grandchild.
	Daemon
)

func (i Identity) String() string {
	switch i {
	case Original:
		return "Original"
	case Daemon:
		return "Daemon"
	}
	return fmt.Sprintf("%d", int(i))
}

// errExitReturned is only seen when a sys implementation's exit returns,
// which the real one never does.
var errExitReturned = errors.New("daemon: process exit returned")

// Daemonize detaches the process using default options.
func Daemonize() (Identity, error) {
	return New().Daemonize()
}

// Daemonize detaches the process. Original is returned in the foreground
// process once the daemon has survived the configured timeout; Daemon is
// returned in the detached process. Errors are only ever returned to the
// foreground process.
func (o Options) Daemonize() (Identity, error) {
	return o.daemonize(newSys())
}

func (o Options) daemonize(s sys) (Identity, error) {
	f, err := s.fork()
	if err != nil {
		return Original, fmt.Errorf("fork: %w", err)
	}
	if !f.child {
		log.Debugf("Forked intermediate process %d, waiting for it to exit", f.pid)
		if err := waitForSuccess(s, f.pid); err != nil {
			return Original, err
		}
		return Original, nil
	}

	// A fresh session drops the controlling terminal. This cannot fail
	// for us as we are not a process group leader after the fork.
	if err := s.setsid(); err != nil {
		return terminate(s, ChildSetsidFailed)
	}

	// Fork again so the daemon is not a session leader and can never
	// acquire a controlling terminal.
	f, err = s.fork()
	if err != nil {
		return terminate(s, ChildFailedToFork)
	}
	if !f.child {
		log.Debugf("Forked grandchild %d, watching it for %v", f.pid, o.Timeout())
		if err := waitForFailure(s, f.pid, o.Timeout()); err != nil {
			log.Debugf("Grandchild %d: %v", f.pid, err)
			code := GrandchildFailedTooSoon
			if errors.Is(err, ErrDiedBeforeTimeout) {
				code = grandchildFailure(s, f.pid)
			}
			return terminate(s, code)
		}
		return terminate(s, Ok)
	}

	// Do not pin whatever filesystem we were started from.
	if err := s.chdir("/"); err != nil {
		return terminate(s, GrandchildChdirFailed)
	}

	s.umask(0)

	fd, err := s.open(o.NullDevice())
	if err != nil {
		return terminate(s, GrandchildOpenNullDeviceFailed)
	}
	for _, std := range []int{0, 1, 2} {
		_ = s.dup2(fd, std)
	}
	if fd > 2 {
		_ = s.close(fd)
	}

	return Daemon, nil
}

// terminate ends the current process with code.
func terminate(s sys, code ExitCode) (Identity, error) {
	s.exit(code.Int())
	return Original, errExitReturned
}
