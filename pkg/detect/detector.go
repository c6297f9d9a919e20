// Package detect provides face feature detection backends. A Detector
// turns one JPEG frame into a FrameObservation; which observation
// fields it can fill depends on the backend.
package detect

import (
	"errors"

	"github.com/visagekit/visage/pkg/facestate"
)

// Sentinel errors shared by detector backends.
var (
	// ErrEmptyFrame is returned when the frame decodes to no image data.
	ErrEmptyFrame = errors.New("detect: empty frame")

	// ErrClosed is returned when Detect is called after Close.
	ErrClosed = errors.New("detect: detector closed")
)

// Accuracy selects the detector accuracy tier. What the tier controls
// is backend-specific: YuNet tightens its score threshold, Rekognition
// switches between the default and full attribute sets.
type Accuracy int

const (
	// AccuracyLow favors throughput.
	AccuracyLow Accuracy = iota
	// AccuracyHigh favors feature completeness and recall.
	AccuracyHigh
)

// String returns the tier name.
func (a Accuracy) String() string {
	if a == AccuracyHigh {
		return "high"
	}
	return "low"
}

// Detector is the interface for face feature extraction backends.
type Detector interface {
	// Detect finds faces in the JPEG frame. A frame with no faces is a
	// valid result, not an error. Fields a backend cannot determine
	// are left nil in the returned observations.
	Detect(jpeg []byte) (facestate.FrameObservation, error)

	// Close releases backend resources.
	Close() error
}

// Config holds configuration for the local YuNet backend.
type Config struct {
	ModelPath string   // Path to the YuNet ONNX model
	Accuracy  Accuracy // Detection accuracy tier
	NMSThresh float32  // Non-max suppression threshold
	TopK      int      // Maximum candidates kept before NMS
}

// DefaultConfig returns production defaults for the YuNet backend.
func DefaultConfig() Config {
	return Config{
		ModelPath: "models/face_detection_yunet.onnx",
		Accuracy:  AccuracyHigh,
		NMSThresh: 0.3,
		TopK:      5000,
	}
}

// scoreThresh maps the accuracy tier to a YuNet score threshold.
func (c Config) scoreThresh() float32 {
	if c.Accuracy == AccuracyHigh {
		return 0.5
	}
	return 0.7
}
