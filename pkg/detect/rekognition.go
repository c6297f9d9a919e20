package detect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Frame dimensions for denormalizing coordinates
	"time"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/visagekit/visage/pkg/facestate"
)

// RekognitionAPI is the subset of the Rekognition client this backend
// uses. Tests substitute a fake.
type RekognitionAPI interface {
	DetectFaces(
		ctx context.Context,
		params *rekognition.DetectFacesInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DetectFacesOutput, error)
}

// RekognitionConfig holds configuration for the cloud backend.
type RekognitionConfig struct {
	Accuracy Accuracy      // AccuracyHigh requests the full attribute set
	Timeout  time.Duration // Per-call timeout
}

// DefaultRekognitionConfig returns production defaults.
func DefaultRekognitionConfig() RekognitionConfig {
	return RekognitionConfig{
		Accuracy: AccuracyHigh,
		Timeout:  10 * time.Second,
	}
}

// Rekognition detects faces through the AWS Rekognition DetectFaces
// API. At AccuracyHigh it requests the full attribute set and fills
// smile and eye-closed flags; at AccuracyLow only bounds, angle, and
// landmarks come back. Rekognition judges both eyes with a single
// EyesOpen attribute, so the two eye-closed flags always agree.
type Rekognition struct {
	client RekognitionAPI
	config RekognitionConfig
}

// NewRekognition creates a cloud detector backed by client.
func NewRekognition(client RekognitionAPI, cfg RekognitionConfig) *Rekognition {
	return &Rekognition{client: client, config: cfg}
}

// Detect submits the JPEG frame to Rekognition.
func (d *Rekognition) Detect(jpeg []byte) (facestate.FrameObservation, error) {
	dims, _, err := image.DecodeConfig(bytes.NewReader(jpeg))
	if err != nil {
		return facestate.FrameObservation{}, fmt.Errorf("decode image: %w", err)
	}

	attrs := []types.Attribute{types.AttributeDefault}
	if d.config.Accuracy == AccuracyHigh {
		attrs = []types.Attribute{types.AttributeAll}
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	out, err := d.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: jpeg},
		Attributes: attrs,
	})
	if err != nil {
		return facestate.FrameObservation{}, fmt.Errorf("detect faces: %w", err)
	}

	obs := facestate.FrameObservation{}
	for _, detail := range out.FaceDetails {
		obs.Faces = append(obs.Faces, faceFromDetail(detail, float64(dims.Width), float64(dims.Height)))
	}
	return obs, nil
}

// faceFromDetail maps one Rekognition FaceDetail to a face observation,
// denormalizing its 0-1 coordinates to pixels.
func faceFromDetail(detail types.FaceDetail, w, h float64) facestate.FaceObservation {
	face := facestate.FaceObservation{}

	if box := detail.BoundingBox; box != nil {
		face.Bounds = facestate.Box(
			float64(deref(box.Left))*w,
			float64(deref(box.Top))*h,
			float64(deref(box.Width))*w,
			float64(deref(box.Height))*h,
		)
	}

	if detail.Pose != nil && detail.Pose.Roll != nil {
		face.Angle = facestate.Float(float64(*detail.Pose.Roll))
	}

	for _, lm := range detail.Landmarks {
		pt := facestate.Pt(float64(deref(lm.X))*w, float64(deref(lm.Y))*h)
		switch lm.Type {
		case types.LandmarkTypeEyeLeft:
			face.LeftEyePosition = pt
		case types.LandmarkTypeEyeRight:
			face.RightEyePosition = pt
		case types.LandmarkTypeMouthLeft, types.LandmarkTypeMouthRight:
			face.MouthPosition = midpoint(face.MouthPosition, pt)
		}
	}

	if detail.Smile != nil {
		face.HasSmile = facestate.Bool(detail.Smile.Value)
	}
	if detail.EyesOpen != nil {
		closed := !detail.EyesOpen.Value
		face.LeftEyeClosed = facestate.Bool(closed)
		face.RightEyeClosed = facestate.Bool(closed)
	}

	return face
}

// midpoint folds the two mouth corners into one mouth position.
func midpoint(existing, pt *facestate.Point) *facestate.Point {
	if existing == nil {
		return pt
	}
	return facestate.Pt((existing.X+pt.X)/2, (existing.Y+pt.Y)/2)
}

func deref(f *float32) float32 {
	if f == nil {
		return 0
	}
	return *f
}

// Close is a no-op; the underlying client is owned by the caller.
func (d *Rekognition) Close() error { return nil }
