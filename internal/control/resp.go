package control

import "time"

// Info contains information about the daemon, e.g. the build commit
type Info struct {
	// Commit is the commit hash identifying the daemon build
	Commit string `json:"commit"`
}

// State describes the supervised process
type State struct {
	PID      int       `json:"pid"`
	ChildPID int       `json:"child_pid"`
	Command  []string  `json:"command"`
	Started  time.Time `json:"started"`
}

// Resp represents a response from the daemon
type Resp struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	State   *State `json:"state,omitempty"`
	Info    Info   `json:"info,omitempty"`
}
