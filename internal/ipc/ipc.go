package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alebeck/detach/internal/log"
)

// Write sends s as a single line of JSON.
func Write(s any, w io.Writer) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize: %v", err)
	}
	log.Debugf("Sending: %s", data)

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to send: %v", err)
	}
	return nil
}

// Read receives one line of JSON into s.
func Read(s any, r io.Reader) error {
	reader := bufio.NewReader(r)
	data, err := reader.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("failed to read from connection: %w", err)
	}
	log.Debugf("Received: %s", data)

	if err = json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to deserialize: %w", err)
	}
	return nil
}
