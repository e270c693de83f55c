package daemon

import (
	"errors"
	"testing"
	"time"
)

func TestExitCodeRoundTrip(t *testing.T) {
	for i := 0; i <= 5; i++ {
		c, err := DecodeExitCode(i)
		if err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		if c.Int() != i {
			t.Fatalf("round trip of %d gave %d", i, c.Int())
		}
	}
}

func TestExitCodeUnknown(t *testing.T) {
	for _, i := range []int{-1, 6, 42, 255} {
		_, err := DecodeExitCode(i)
		var ue *UnknownExitCodeError
		if !errors.As(err, &ue) {
			t.Fatalf("decode %d: expected UnknownExitCodeError, got %v", i, err)
		}
		if ue.Code != i {
			t.Fatalf("decode %d: error carries %d", i, ue.Code)
		}
	}
}

func TestExitCodeValues(t *testing.T) {
	want := map[ExitCode]int{
		Ok:                             0,
		ChildFailedToFork:              1,
		ChildSetsidFailed:              2,
		GrandchildChdirFailed:          3,
		GrandchildOpenNullDeviceFailed: 4,
		GrandchildFailedTooSoon:        5,
	}
	for c, i := range want {
		if c.Int() != i {
			t.Errorf("%v = %d, want %d", c, c.Int(), i)
		}
	}
	if n := len(ExitCodes()); n != len(want) {
		t.Fatalf("ExitCodes() has %d entries, want %d", n, len(want))
	}
}

func TestExitCodeErr(t *testing.T) {
	if err := Ok.Err(); err != nil {
		t.Fatalf("Ok.Err() = %v", err)
	}
	for _, c := range ExitCodes()[1:] {
		if c.Err() == nil {
			t.Errorf("%v.Err() is nil", c)
		}
	}
	if s := ExitCode(9).String(); s != "9" {
		t.Fatalf("incorrect fallback name: %s", s)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.TimeoutMs() != 1000 || o.Timeout() != time.Second {
		t.Fatalf("default timeout = %v", o.Timeout())
	}
	if New().WithTimeout(0).Timeout() != 0 {
		t.Fatalf("explicit zero timeout not kept")
	}
	base := New()
	_ = base.WithTimeout(5)
	if base.TimeoutMs() != DefaultTimeoutMs {
		t.Fatalf("WithTimeout modified the receiver")
	}
}
