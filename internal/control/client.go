package control

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/alebeck/detach/internal/ipc"
)

const initWait = 4 * time.Millisecond

// Connect dials the control socket at sock.
func Connect(sock string) (net.Conn, error) {
	return net.Dial("unix", sock)
}

// Send delivers cmd and returns the daemon's response.
func Send(sock string, cmd Cmd) (*Resp, error) {
	conn, err := Connect(sock)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var resp Resp
	if err := ipc.Write(cmd, conn); err != nil {
		return nil, err
	}
	if err := ipc.Read(&resp, conn); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Wait probes sock with exponential backoff until a daemon answers or
// ctx expires.
func Wait(ctx context.Context, sock string) error {
	wait := time.NewTimer(0)
	defer wait.Stop()
	waitTime := initWait
	var lastErr error

	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return errors.Join(ctx.Err(), lastErr)
			}
			return ctx.Err()
		case <-wait.C:
			resp, err := Send(sock, Cmd{Kind: Nop})
			if err == nil && resp.Success {
				return nil
			}
			lastErr = err
			wait.Reset(waitTime)
			waitTime *= 2
		}
	}
}
