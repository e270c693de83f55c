package daemon

import (
	"os"
	"time"
)

// DefaultTimeoutMs is how long the intermediate process waits for an
// early grandchild failure when no timeout is configured.
const DefaultTimeoutMs uint16 = 1000

// Options configures a single daemonization. The zero value is usable
// and equivalent to New().
type Options struct {
	timeoutMs  *uint16
	nullDevice string
}

func New() Options {
	return Options{}
}

// WithTimeout sets the window, in milliseconds, during which a dying
// grandchild is reported as a failed daemonization.
func (o Options) WithTimeout(ms uint16) Options {
	o.timeoutMs = &ms
	return o
}

// WithNullDevice overrides the device the daemon's standard streams are
// redirected to.
func (o Options) WithNullDevice(path string) Options {
	o.nullDevice = path
	return o
}

func (o Options) TimeoutMs() uint16 {
	if o.timeoutMs == nil {
		return DefaultTimeoutMs
	}
	return *o.timeoutMs
}

func (o Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs()) * time.Millisecond
}

func (o Options) NullDevice() string {
	if o.nullDevice == "" {
		return os.DevNull
	}
	return o.nullDevice
}
