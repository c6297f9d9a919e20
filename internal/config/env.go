// Package config provides environment configuration helpers for the
// visage commands.
package config

import (
	"os"
	"time"

	"github.com/visagekit/visage/pkg/capture"
	"github.com/visagekit/visage/pkg/detect"
	"github.com/visagekit/visage/pkg/facestate"
)

// Defaults for the watcher command.
const (
	DefaultPort      = "8080"
	DefaultModelPath = "models/face_detection_yunet.onnx"
)

// Port returns the HTTP port from VISAGE_PORT or the default.
func Port() string {
	if p := os.Getenv("VISAGE_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// ModelPath returns the YuNet model path from VISAGE_MODEL or the default.
func ModelPath() string {
	if p := os.Getenv("VISAGE_MODEL"); p != "" {
		return p
	}
	return DefaultModelPath
}

// CameraDevice returns the camera selection from VISAGE_CAMERA.
// Accepts "front", "back", or a numeric device index.
func CameraDevice() capture.Device {
	if d := os.Getenv("VISAGE_CAMERA"); d != "" {
		return capture.Device(d)
	}
	return capture.DeviceFront
}

// Accuracy returns the detector tier from VISAGE_ACCURACY ("low" or
// "high").
func Accuracy() detect.Accuracy {
	if os.Getenv("VISAGE_ACCURACY") == "low" {
		return detect.AccuracyLow
	}
	return detect.AccuracyHigh
}

// NotifyMode returns the notify mode from VISAGE_NOTIFY
// ("every-frame" or "on-change").
func NotifyMode() facestate.NotifyMode {
	if os.Getenv("VISAGE_NOTIFY") == "every-frame" {
		return facestate.EveryFrame
	}
	return facestate.OnChangeOnly
}

// FrameInterval returns the capture cadence from VISAGE_INTERVAL
// (a Go duration, e.g. "100ms") or fallback.
func FrameInterval(fallback time.Duration) time.Duration {
	v := os.Getenv("VISAGE_INTERVAL")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// LogLevel returns the log level from VISAGE_LOG_LEVEL or "info".
func LogLevel() string {
	if l := os.Getenv("VISAGE_LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}
