package daemon

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// waitLiveness watches pid through a pidfd, which becomes readable once
// the process has terminated. Nothing is reaped.
func (s *execSys) waitLiveness(pid int, timeout time.Duration) (bool, error) {
	fd, err := unix.PidfdOpen(pid, 0)
	if err != nil {
		return false, err
	}
	defer unix.Close(fd)

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	deadline := time.Now().Add(timeout)
	for {
		n, err := unix.Poll(fds, pollTimeout(time.Until(deadline)))
		if errors.Is(err, unix.EINTR) {
			if time.Now().Before(deadline) {
				continue
			}
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

// pollTimeout rounds d up to whole milliseconds so the wait never ends
// before the deadline.
func pollTimeout(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}

// dup2 goes through dup3 as dup2 is missing on some architectures.
func dup2(from, to int) error {
	return unix.Dup3(from, to, 0)
}
