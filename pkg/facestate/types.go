package facestate

// Point is a position in frame coordinates.
// Detectors decide the coordinate space (pixels or 0-1 normalized);
// the tracker never interprets positions, it only stores them.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a face bounding box in frame coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FaceObservation is one detected face in a frame. Every field is
// optional: a nil field means the detector could not determine it for
// this face, and the tracker leaves the corresponding stored value
// untouched.
type FaceObservation struct {
	Bounds           *Rect
	Angle            *float64 // Roll angle in degrees
	LeftEyePosition  *Point
	RightEyePosition *Point
	MouthPosition    *Point
	HasSmile         *bool
	LeftEyeClosed    *bool
	RightEyeClosed   *bool
}

// FrameObservation is the raw result for one captured frame:
// zero or more faces, in detector order.
type FrameObservation struct {
	Faces []FaceObservation
}

// Helpers for building observations, in the style of aws.Bool/aws.String.

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Pt returns a pointer to the point (x, y).
func Pt(x, y float64) *Point { return &Point{X: x, Y: y} }

// Box returns a pointer to the rectangle (x, y, w, h).
func Box(x, y, w, h float64) *Rect { return &Rect{X: x, Y: y, W: w, H: h} }

func isTrue(p *bool) bool { return p != nil && *p }

func isFalse(p *bool) bool { return p != nil && !*p }

func ptr[T any](v T) *T { return &v }
