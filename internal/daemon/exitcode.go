package daemon

import (
	"errors"
	"fmt"
)

// ExitCode is the status with which the intermediate and grandchild
// processes terminate. It is the only channel through which they can
// report back to the original process.
type ExitCode int

const (
	Ok ExitCode = iota
	ChildFailedToFork
	ChildSetsidFailed
	GrandchildChdirFailed
	GrandchildOpenNullDeviceFailed
	GrandchildFailedTooSoon
)

var exitCodeNames = map[ExitCode]string{
	Ok:                             "Ok",
	ChildFailedToFork:              "ChildFailedToFork",
	ChildSetsidFailed:              "ChildSetsidFailed",
	GrandchildChdirFailed:          "GrandchildChdirFailed",
	GrandchildOpenNullDeviceFailed: "GrandchildOpenNullDeviceFailed",
	GrandchildFailedTooSoon:        "GrandchildFailedTooSoon",
}

var (
	ErrChildFailedToFork        = errors.New("child failed to fork")
	ErrChildSetsidFailed        = errors.New("child setsid failed")
	ErrGrandchildChdirFailed    = errors.New("grandchild chdir failed")
	ErrGrandchildOpenNullDevice = errors.New("grandchild open null device failed")
	ErrGrandchildFailedTooSoon  = errors.New("grandchild failed too soon: died before timeout")
)

var exitCodeErrors = map[ExitCode]error{
	ChildFailedToFork:              ErrChildFailedToFork,
	ChildSetsidFailed:              ErrChildSetsidFailed,
	GrandchildChdirFailed:          ErrGrandchildChdirFailed,
	GrandchildOpenNullDeviceFailed: ErrGrandchildOpenNullDevice,
	GrandchildFailedTooSoon:        ErrGrandchildFailedTooSoon,
}

// UnknownExitCodeError is returned when a process status does not
// belong to the ExitCode taxonomy.
type UnknownExitCodeError struct {
	Code int
}

func (e *UnknownExitCodeError) Error() string {
	return fmt.Sprintf("unspecified error code: %d", e.Code)
}

// ExitCodes returns every defined exit code in ascending order.
func ExitCodes() []ExitCode {
	return []ExitCode{
		Ok,
		ChildFailedToFork,
		ChildSetsidFailed,
		GrandchildChdirFailed,
		GrandchildOpenNullDeviceFailed,
		GrandchildFailedTooSoon,
	}
}

// DecodeExitCode maps a raw process exit status back to an ExitCode.
func DecodeExitCode(code int) (ExitCode, error) {
	c := ExitCode(code)
	if _, ok := exitCodeNames[c]; !ok {
		return 0, &UnknownExitCodeError{Code: code}
	}
	return c, nil
}

func (c ExitCode) Int() int {
	return int(c)
}

// Err returns nil for Ok and the matching sentinel error otherwise.
func (c ExitCode) Err() error {
	if c == Ok {
		return nil
	}
	if err, ok := exitCodeErrors[c]; ok {
		return err
	}
	return &UnknownExitCodeError{Code: int(c)}
}

func (c ExitCode) String() string {
	n, ok := exitCodeNames[c]
	if !ok {
		return fmt.Sprintf("%d", int(c))
	}
	return n
}
