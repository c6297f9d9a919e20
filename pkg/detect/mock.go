package detect

import (
	"sync"

	"github.com/visagekit/visage/pkg/facestate"
)

// Mock implements Detector for testing. If DetectFunc is nil, Detect
// plays back Script one observation per call, holding the last entry
// once the script runs out.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	DetectFunc func(jpeg []byte) (facestate.FrameObservation, error)

	// Script is a canned sequence of observations.
	Script []facestate.FrameObservation

	// CloseFunc is called when Close is invoked. If nil, returns nil.
	CloseFunc func() error

	mu    sync.Mutex
	calls int
}

// NewMock creates a mock detector that reports no faces.
func NewMock() *Mock {
	return &Mock{}
}

// Detect returns the next scripted observation.
func (m *Mock) Detect(jpeg []byte) (facestate.FrameObservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.DetectFunc != nil {
		return m.DetectFunc(jpeg)
	}
	if len(m.Script) == 0 {
		return facestate.FrameObservation{}, nil
	}
	i := m.calls - 1
	if i >= len(m.Script) {
		i = len(m.Script) - 1
	}
	return m.Script[i], nil
}

// Close calls CloseFunc.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns how many times Detect was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
