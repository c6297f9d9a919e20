package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Sentinel errors.
var (
	// ErrCameraClosed is returned when capturing after Close.
	ErrCameraClosed = errors.New("capture: camera closed")

	// ErrNoFrame is returned when the camera produced no frame.
	ErrNoFrame = errors.New("capture: no frame from camera")
)

// Webcam captures JPEG frames from a local camera through OpenCV.
type Webcam struct {
	cam    *gocv.VideoCapture
	config Config

	mu     sync.Mutex // One frame read at a time
	closed bool
}

// OpenWebcam opens the configured camera device.
func OpenWebcam(cfg Config) (*Webcam, error) {
	idx, err := cfg.Device.Index()
	if err != nil {
		return nil, err
	}

	cam, err := gocv.OpenVideoCapture(idx)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", idx, err)
	}

	if cfg.Width > 0 {
		cam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	}
	if cfg.Height > 0 {
		cam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}

	return &Webcam{cam: cam, config: cfg}, nil
}

// CaptureFrame grabs one frame and encodes it as JPEG.
func (w *Webcam) CaptureFrame() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrCameraClosed
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := w.cam.Read(&img); !ok || img.Empty() {
		return nil, ErrNoFrame
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img,
		[]int{gocv.IMWriteJpegQuality, w.config.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// The buffer is native memory; copy before it goes away.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Close releases the camera.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.cam.Close()
}
