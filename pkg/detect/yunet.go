package detect

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/visagekit/visage/pkg/facestate"
)

// YuNet runs OpenCV's FaceDetectorYN locally, on-device. It reports
// bounds, eye and mouth positions, and a roll angle derived from the
// eye line. It has no smile or eye-closed judgement, so those fields
// are always left unset.
type YuNet struct {
	detector gocv.FaceDetectorYN
	config   Config

	mu     sync.Mutex // Protects inference
	closed bool
}

// NewYuNet creates a YuNet detector from the ONNX model in cfg.
func NewYuNet(cfg Config) (*YuNet, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(320, 320), // Initial input size, updated per frame
		cfg.scoreThresh(),
		cfg.NMSThresh,
		cfg.TopK,
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNet{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the JPEG frame.
func (d *YuNet) Detect(jpeg []byte) (facestate.FrameObservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return facestate.FrameObservation{}, ErrClosed
	}

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return facestate.FrameObservation{}, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return facestate.FrameObservation{}, ErrEmptyFrame
	}

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	obs := facestate.FrameObservation{}
	for r := 0; r < faces.Rows(); r++ {
		obs.Faces = append(obs.Faces, parseYuNetRow(&faces, r))
	}
	return obs, nil
}

// parseYuNetRow maps one detection row to a face observation.
// YuNet output format (15 columns):
//
//	0-3:   x, y, w, h (bounding box in pixels)
//	4-5:   right eye, 6-7: left eye, 8-9: nose tip,
//	10-11: right mouth corner, 12-13: left mouth corner
//	14:    face score
func parseYuNetRow(faces *gocv.Mat, r int) facestate.FaceObservation {
	at := func(c int) float64 { return float64(faces.GetFloatAt(r, c)) }

	rightEye := facestate.Pt(at(4), at(5))
	leftEye := facestate.Pt(at(6), at(7))

	return facestate.FaceObservation{
		Bounds:           facestate.Box(at(0), at(1), at(2), at(3)),
		Angle:            facestate.Float(rollAngle(*leftEye, *rightEye)),
		LeftEyePosition:  leftEye,
		RightEyePosition: rightEye,
		MouthPosition: facestate.Pt(
			(at(10)+at(12))/2,
			(at(11)+at(13))/2,
		),
	}
}

// rollAngle derives the head roll in degrees from the line between the
// eyes. Zero means level; positive means tilted toward the right eye.
func rollAngle(left, right facestate.Point) float64 {
	return math.Atan2(right.Y-left.Y, right.X-left.X) * 180 / math.Pi
}

// Close releases the detector resources.
func (d *YuNet) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.detector.Close()
	return nil
}
