//go:build linux || darwin

package daemon

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// StageEnv carries, into a re-executed instance, the number of forks its
// ancestors already performed.
const StageEnv = "_DETACH_STAGE"

// execSys implements fork by re-executing the running binary. A process
// started with stage n treats its first n forks as already done on the
// child side, and skips the steps its ancestors already carried out.
type execSys struct {
	stage int
	forks int
}

func newSys() sys {
	stage, _ := strconv.Atoi(os.Getenv(StageEnv))
	os.Unsetenv(StageEnv)
	return &execSys{stage: stage}
}

// replaying reports whether the current step was performed by an ancestor.
func (s *execSys) replaying() bool {
	return s.forks < s.stage
}

func (s *execSys) fork() (forkResult, error) {
	s.forks++
	if s.forks <= s.stage {
		return forkResult{child: true}, nil
	}

	ex, err := os.Executable()
	if err != nil {
		return forkResult{}, fmt.Errorf("could not determine executable path: %w", err)
	}

	env := append(os.Environ(), StageEnv+"="+strconv.Itoa(s.forks))

	p, err := os.StartProcess(ex, os.Args, &os.ProcAttr{
		Env:   env,
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		return forkResult{}, err
	}
	pid := p.Pid
	// Waiting happens on the raw pid below.
	p.Release()
	return forkResult{pid: pid}, nil
}

func (s *execSys) setsid() error {
	if s.replaying() {
		return nil
	}
	_, err := unix.Setsid()
	return err
}

func (s *execSys) chdir(dir string) error {
	return unix.Chdir(dir)
}

func (s *execSys) umask(mask int) int {
	return unix.Umask(mask)
}

func (s *execSys) open(path string) (int, error) {
	return retry(func() (int, error) {
		return unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	})
}

func (s *execSys) dup2(from, to int) error {
	if from == to {
		return nil
	}
	_, err := retry(func() (int, error) {
		return 0, dup2(from, to)
	})
	return err
}

func (s *execSys) close(fd int) error {
	return unix.Close(fd)
}

func (s *execSys) waitExit(pid int) (int, waitStatus, error) {
	var ws unix.WaitStatus
	wpid, err := retry(func() (int, error) {
		return unix.Wait4(pid, &ws, 0, nil)
	})
	if err != nil {
		return 0, nil, err
	}
	return wpid, ws, nil
}

func (s *execSys) exit(code int) {
	os.Exit(code)
}

// retry repeats f for as long as it is interrupted by a signal.
func retry(f func() (int, error)) (int, error) {
	for {
		n, err := f()
		if !errors.Is(err, unix.EINTR) {
			return n, err
		}
	}
}
