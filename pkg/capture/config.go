package capture

import (
	"fmt"
	"strconv"
)

// Device selects which camera to open.
type Device string

const (
	// DeviceFront is the user-facing camera.
	DeviceFront Device = "front"
	// DeviceBack is the world-facing camera.
	DeviceBack Device = "back"
)

// Index resolves the device to an OS capture index. Front and back map
// to the conventional indices 0 and 1; anything else is parsed as an
// explicit numeric index.
func (d Device) Index() (int, error) {
	switch d {
	case DeviceFront, "":
		return 0, nil
	case DeviceBack:
		return 1, nil
	}
	idx, err := strconv.Atoi(string(d))
	if err != nil {
		return 0, fmt.Errorf("capture: unknown device %q", string(d))
	}
	return idx, nil
}

// Config holds camera configuration.
type Config struct {
	Device  Device `json:"device"`
	Width   int    `json:"width"`   // Frame width in pixels
	Height  int    `json:"height"`  // Frame height in pixels
	Quality int    `json:"quality"` // JPEG quality 1-100
}

// DefaultConfig returns 720p capture from the front camera.
func DefaultConfig() Config {
	return Config{
		Device:  DeviceFront,
		Width:   1280,
		Height:  720,
		Quality: 85,
	}
}
