package daemon

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// waitLiveness registers a NOTE_EXIT filter for pid on a kqueue, which
// fires once the process has terminated. Nothing is reaped.
func (s *execSys) waitLiveness(pid int, timeout time.Duration) (bool, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return false, err
	}
	defer unix.Close(kq)

	var change unix.Kevent_t
	unix.SetKevent(&change, pid, unix.EVFILT_PROC, unix.EV_ADD|unix.EV_ONESHOT)
	change.Fflags = unix.NOTE_EXIT

	changes := []unix.Kevent_t{change}
	events := make([]unix.Kevent_t, 1)
	deadline := time.Now().Add(timeout)
	for {
		ts := unix.NsecToTimespec(max(time.Until(deadline), 0).Nanoseconds())
		n, err := unix.Kevent(kq, changes, events, &ts)
		switch {
		case errors.Is(err, unix.ESRCH):
			// Gone before we could watch it.
			return true, nil
		case errors.Is(err, unix.EINTR):
			if time.Now().Before(deadline) {
				continue
			}
			return false, nil
		case err != nil:
			return false, err
		}
		return n > 0, nil
	}
}

func dup2(from, to int) error {
	return unix.Dup2(from, to)
}
