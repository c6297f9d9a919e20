// Package capture provides camera frame capture for the watcher.
package capture

// Provider is the interface for frame sources.
type Provider interface {
	// CaptureFrame returns one JPEG-encoded frame.
	CaptureFrame() ([]byte, error)

	// Close releases the camera.
	Close() error
}
