//go:build !linux && !darwin

package daemon

import (
	"errors"
	"os"
	"runtime"
	"time"
)

var errUnsupported = errors.New("daemonization is not supported on " + runtime.GOOS)

type unsupportedSys struct{}

func newSys() sys {
	return unsupportedSys{}
}

func (unsupportedSys) fork() (forkResult, error)             { return forkResult{}, errUnsupported }
func (unsupportedSys) setsid() error                         { return errUnsupported }
func (unsupportedSys) chdir(string) error                    { return errUnsupported }
func (unsupportedSys) umask(int) int                         { return 0 }
func (unsupportedSys) open(string) (int, error)              { return 0, errUnsupported }
func (unsupportedSys) dup2(int, int) error                   { return errUnsupported }
func (unsupportedSys) close(int) error                       { return errUnsupported }
func (unsupportedSys) waitExit(int) (int, waitStatus, error) { return 0, nil, errUnsupported }
func (unsupportedSys) exit(code int)                         { os.Exit(code) }

func (unsupportedSys) waitLiveness(int, time.Duration) (bool, error) {
	return false, errUnsupported
}
