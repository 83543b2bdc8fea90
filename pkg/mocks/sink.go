package mocks

import (
	"sync"

	"github.com/user/snaphero/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Captures  map[string][]byte
	BatchJSON []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:  enabled,
		Captures: make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveCaptureJSON(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Captures[name] = data
	return nil
}

func (m *DebugSink) SaveBatchJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                  { return false }
func (m *NullSink) SaveCaptureJSON(name string, data []byte) error { return nil }
func (m *NullSink) SaveBatchJSON(data []byte) error                { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
