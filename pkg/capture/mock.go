package capture

import "sync"

// Mock implements Provider for testing.
type Mock struct {
	// CaptureFunc is called when CaptureFrame is invoked.
	// If nil, returns Frame.
	CaptureFunc func() ([]byte, error)

	// Frame is the canned frame returned when CaptureFunc is nil.
	Frame []byte

	// CloseFunc is called when Close is invoked. If nil, returns nil.
	CloseFunc func() error

	mu    sync.Mutex
	calls int
}

// NewMock creates a mock provider returning an empty frame.
func NewMock() *Mock {
	return &Mock{}
}

// CaptureFrame returns the canned frame.
func (m *Mock) CaptureFrame() ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.CaptureFunc != nil {
		return m.CaptureFunc()
	}
	return m.Frame, nil
}

// Close calls CloseFunc.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns how many frames were captured.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
