package daemon

import (
	"errors"
	"fmt"
	"time"
)

// ErrDiedBeforeTimeout is reported by the liveness wait when the
// grandchild terminates inside the configured window.
var ErrDiedBeforeTimeout = errors.New("grandchild died before timeout expiration")

// waitForFailure blocks until pid exits or timeout elapses. Surviving the
// window is success. Any exit inside it is a failure, whatever the status.
func waitForFailure(s sys, pid int, timeout time.Duration) error {
	exited, err := s.waitLiveness(pid, timeout)
	if err != nil {
		return fmt.Errorf("liveness wait on %d: %w", pid, err)
	}
	if exited {
		return ErrDiedBeforeTimeout
	}
	return nil
}

// waitForSuccess blocks until the intermediate process pid exits and
// decodes its exit status.
func waitForSuccess(s sys, pid int) error {
	wpid, status, err := s.waitExit(pid)
	if err != nil {
		return fmt.Errorf("wait for intermediate process %d: %w", pid, err)
	}
	if wpid != pid {
		panic(fmt.Sprintf("daemon: waited for pid %d, reaped %d", pid, wpid))
	}

	if status.Signaled() {
		return fmt.Errorf("intermediate process terminated by signal: %v", status.Signal())
	}

	code, err := DecodeExitCode(status.ExitStatus())
	if err != nil {
		return err
	}
	return code.Err()
}

// grandchildFailure reaps a grandchild that died inside the liveness
// window. Its own setup failures are relayed unchanged. Everything else
// is reported as GrandchildFailedTooSoon, a clean exit included.
func grandchildFailure(s sys, pid int) ExitCode {
	_, status, err := s.waitExit(pid)
	if err != nil || !status.Exited() {
		return GrandchildFailedTooSoon
	}
	code, err := DecodeExitCode(status.ExitStatus())
	if err != nil {
		return GrandchildFailedTooSoon
	}
	switch code {
	case GrandchildChdirFailed, GrandchildOpenNullDeviceFailed:
		return code
	}
	return GrandchildFailedTooSoon
}
