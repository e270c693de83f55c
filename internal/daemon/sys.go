package daemon

import (
	"syscall"
	"time"
)

// forkResult tells the caller of fork which side of the fork it is on.
type forkResult struct {
	child bool
	pid   int // set on the parent side only
}

// waitStatus is the subset of a process status that the success wait
// needs. syscall.WaitStatus and unix.WaitStatus both satisfy it.
type waitStatus interface {
	Exited() bool
	ExitStatus() int
	Signaled() bool
	Signal() syscall.Signal
}

// sys wraps the process-control primitives the state machine relies on.
// Each call has a single success/error contract; none of them exposes
// raw OS handles beyond plain descriptor numbers.
type sys interface {
	fork() (forkResult, error)
	setsid() error
	chdir(dir string) error
	umask(mask int) int
	open(path string) (int, error)
	dup2(from, to int) error
	close(fd int) error
	// waitExit blocks until pid terminates and returns the reaped pid
	// together with its status.
	waitExit(pid int) (int, waitStatus, error)
	// waitLiveness reports whether pid exited before timeout elapsed.
	waitLiveness(pid int, timeout time.Duration) (bool, error)
	// exit terminates the calling process.
	exit(code int)
}
