package facestate

// TrackedState holds everything observed about the face so far.
// Nil means "never observed". The unset/false/true distinction matters:
// the on-change suppression rules treat an unknown value differently
// from a known false, so none of these can be plain booleans.
type TrackedState struct {
	FaceDetected *bool `json:"face_detected,omitempty"`

	FaceAngle      *float64 `json:"face_angle,omitempty"`
	FaceAngleDelta *float64 `json:"face_angle_delta,omitempty"` // Change since the previous observed angle

	LeftEyePosition  *Point `json:"left_eye_position,omitempty"`
	RightEyePosition *Point `json:"right_eye_position,omitempty"`
	MouthPosition    *Point `json:"mouth_position,omitempty"`
	FaceBounds       *Rect  `json:"face_bounds,omitempty"`

	HasSmile       *bool `json:"has_smile,omitempty"`
	LeftEyeClosed  *bool `json:"left_eye_closed,omitempty"`
	RightEyeClosed *bool `json:"right_eye_closed,omitempty"`

	IsBlinking *bool `json:"is_blinking,omitempty"` // Both eyes closed
	IsWinking  *bool `json:"is_winking,omitempty"`  // At least one eye closed, inclusive of blinks
}

// Clone returns a deep copy. Callers get their own pointers and cannot
// mutate the tracker's state through the copy.
func (s TrackedState) Clone() TrackedState {
	return TrackedState{
		FaceDetected:     clonePtr(s.FaceDetected),
		FaceAngle:        clonePtr(s.FaceAngle),
		FaceAngleDelta:   clonePtr(s.FaceAngleDelta),
		LeftEyePosition:  clonePtr(s.LeftEyePosition),
		RightEyePosition: clonePtr(s.RightEyePosition),
		MouthPosition:    clonePtr(s.MouthPosition),
		FaceBounds:       clonePtr(s.FaceBounds),
		HasSmile:         clonePtr(s.HasSmile),
		LeftEyeClosed:    clonePtr(s.LeftEyeClosed),
		RightEyeClosed:   clonePtr(s.RightEyeClosed),
		IsBlinking:       clonePtr(s.IsBlinking),
		IsWinking:        clonePtr(s.IsWinking),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
