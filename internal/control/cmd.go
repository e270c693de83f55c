package control

import (
	"fmt"
)

type CmdKind int

const (
	Nop CmdKind = iota
	Status
	Stop
)

var cmdKindNames = map[CmdKind]string{
	Nop:    "Nop",
	Status: "Status",
	Stop:   "Stop",
}

func (k CmdKind) String() string {
	n, ok := cmdKindNames[k]
	if !ok {
		return fmt.Sprintf("%d", int(k))
	}
	return n
}

// Cmd represents a command sent to a detached process
type Cmd struct {
	Kind CmdKind `json:"kind"`
}
