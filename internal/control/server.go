// Package control implements the unix socket protocol spoken between the
// CLI and a detached supervisor.
package control

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/alebeck/detach/internal/buildinfo"
	"github.com/alebeck/detach/internal/ipc"
	"github.com/alebeck/detach/internal/log"
)

// Handler carries out commands received on the control socket.
type Handler interface {
	State() State
	Stop() error
}

// Serve accepts connections on l until ctx is cancelled, answering one
// command per connection.
func Serve(ctx context.Context, l net.Listener, h Handler) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Errorf("Failed to accept connection: %v", err)
			continue
		}
		go handleConnection(conn, h)
	}
}

func handleConnection(conn net.Conn, h Handler) {
	defer conn.Close()

	var cmd Cmd
	if err := ipc.Read(&cmd, conn); err != nil {
		log.Errorf("Could not receive command: %v", err)
		return
	}
	log.Debugf("Received command %v", cmd.Kind)

	resp := Resp{Success: true, Info: Info{Commit: buildinfo.Commit}}
	var err error
	switch cmd.Kind {
	case Nop:
	case Status:
		s := h.State()
		resp.State = &s
	case Stop:
		err = h.Stop()
	default:
		err = fmt.Errorf("unknown command: %v", cmd.Kind)
	}
	if err != nil {
		resp.Success = false
		resp.Error = err.Error()
	}

	if err = ipc.Write(resp, conn); err != nil {
		log.Errorf("could not send response: %v", err)
	}
}
