// Package nullsink provides a no-op debug sink implementation.
package nullsink

import "github.com/user/snaphero/pkg/ports"

// Sink discards all debug output. It is used when --debug is off.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false so callers can skip building debug records.
func (s *Sink) Enabled() bool {
	return false
}

// SaveCaptureJSON does nothing.
func (s *Sink) SaveCaptureJSON(name string, data []byte) error {
	return nil
}

// SaveBatchJSON does nothing.
func (s *Sink) SaveBatchJSON(data []byte) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
