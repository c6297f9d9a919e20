package visage

import (
	"time"

	"github.com/visagekit/visage/pkg/facestate"
)

// Config holds the watcher configuration, fixed at construction.
type Config struct {
	// Mode controls event suppression: on-change or every-frame.
	Mode facestate.NotifyMode

	// FrameInterval is how often to capture and process a frame.
	FrameInterval time.Duration

	// LogEvents logs each dispatched event at debug level.
	LogEvents bool
}

// DefaultConfig returns the recommended watcher configuration.
func DefaultConfig() Config {
	return Config{
		Mode:          facestate.OnChangeOnly,
		FrameInterval: 100 * time.Millisecond, // 10 frames per second
		LogEvents:     false,
	}
}
