//go:build linux || darwin

package supervise

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alebeck/detach/internal/control"
	"github.com/gofrs/flock"
)

func TestRunExitCode(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "out.log")
	code, err := Run(context.Background(), Options{
		Args:    []string{"sh", "-c", "echo hello; exit 3"},
		LogFile: logFile,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 3 {
		t.Fatalf("code = %d, want 3", code)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("could not read log: %v", err)
	}
	for _, want := range []string{"hello\n", "Started [sh -c", "exited with status 3"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log does not contain %q:\n%s", want, data)
		}
	}
}

func TestRunWithoutLog(t *testing.T) {
	code, err := Run(context.Background(), Options{Args: []string{"true"}})
	if err != nil || code != 0 {
		t.Fatalf("got %d, %v; want 0", code, err)
	}
}

func TestRunNoCommand(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error without command")
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), Options{Args: []string{"/nonexistent/binary"}})
	if err == nil || !strings.Contains(err.Error(), "could not start") {
		t.Fatalf("expected start error, got %v", err)
	}
}

func TestRunLocked(t *testing.T) {
	lock := filepath.Join(t.TempDir(), "detach.lock")
	fl := flock.New(lock)
	if ok, err := fl.TryLock(); !ok || err != nil {
		t.Fatalf("could not take lock: %v", err)
	}
	defer fl.Unlock()

	_, err := Run(context.Background(), Options{Args: []string{"true"}, Lock: lock})
	if err == nil || !strings.Contains(err.Error(), "locked by another process") {
		t.Fatalf("expected lock error, got %v", err)
	}
}

func TestRunControl(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "c.sock")

	type result struct {
		code int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		code, err := Run(context.Background(), Options{
			Args:    []string{"sleep", "10"},
			Control: sock,
		})
		done <- result{code, err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := control.Wait(ctx, sock); err != nil {
		t.Fatalf("control socket did not come up: %v", err)
	}

	// The child may not be started yet when the socket first answers.
	var st *control.State
	for st == nil || st.ChildPID == 0 {
		resp, err := control.Send(sock, control.Cmd{Kind: control.Status})
		if err != nil {
			t.Fatalf("status failed: %v", err)
		}
		st = resp.State
		if ctx.Err() != nil {
			t.Fatalf("child never started")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if st.PID != os.Getpid() {
		t.Errorf("pid = %d, want %d", st.PID, os.Getpid())
	}
	if strings.Join(st.Command, " ") != "sleep 10" {
		t.Errorf("command = %v", st.Command)
	}

	resp, err := control.Send(sock, control.Cmd{Kind: control.Stop})
	if err != nil || !resp.Success {
		t.Fatalf("stop failed: %v %+v", err, resp)
	}

	select {
	case r := <-done:
		if r.err != nil {
			t.Fatalf("unexpected error: %v", r.err)
		}
		if r.code != 128+15 {
			t.Fatalf("code = %d, want 143", r.code)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("supervisor did not exit after stop")
	}

	if _, err := os.Stat(sock); !os.IsNotExist(err) {
		t.Fatalf("socket not removed: %v", err)
	}
}
