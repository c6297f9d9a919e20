// Package facestate tracks facial feature state across frames and turns
// per-frame detector output into edge-triggered events.
package facestate

// Tracker consumes one FrameObservation at a time, diffs it against the
// previously observed state, and returns the transition events for the
// frame.
//
// The tracker holds a single state slot. When a frame contains more than
// one face, each face is applied in order and later faces overwrite
// earlier ones; there is no per-face identity tracking.
//
// Not safe for concurrent use: frames must be fed from a single
// goroutine, in arrival order.
type Tracker struct {
	state TrackedState
}

// NewTracker returns a tracker with nothing observed yet.
func NewTracker() *Tracker {
	return &Tracker{}
}

// State returns a deep copy of the current tracked state.
func (t *Tracker) State() TrackedState {
	return t.state.Clone()
}

// Process applies one frame's observation and returns the events it
// produced, in emission order.
//
// Known quirks, kept on purpose (hosts depend on them):
//   - A no-face frame only flips FaceDetected; every landmark and flag
//     keeps its last known value, however stale.
//   - Winking means at least one eye closed, so a full blink emits
//     Winking as well as Blinking.
//   - When only one eye is closed, the other eye's stored flag is left
//     as-is, and IsBlinking/IsWinking are never reset in that branch.
func (t *Tracker) Process(obs FrameObservation, mode NotifyMode) []Event {
	var events []Event
	emit := func(e Event) { events = append(events, e) }

	if len(obs.Faces) == 0 {
		if mode == EveryFrame || isTrue(t.state.FaceDetected) {
			emit(EventNoFaceDetected)
		}
		t.state.FaceDetected = ptr(false)
		return events
	}

	for _, face := range obs.Faces {
		t.processFace(face, mode, emit)
	}
	return events
}

func (t *Tracker) processFace(face FaceObservation, mode NotifyMode, emit func(Event)) {
	// An unknown previous state does not suppress the first detection.
	if mode == EveryFrame || !isTrue(t.state.FaceDetected) {
		emit(EventFaceDetected)
	}
	t.state.FaceDetected = ptr(true)

	if face.Bounds != nil {
		t.state.FaceBounds = clonePtr(face.Bounds)
	}

	if face.Angle != nil {
		if t.state.FaceAngle != nil {
			t.state.FaceAngleDelta = ptr(*face.Angle - *t.state.FaceAngle)
		} else {
			t.state.FaceAngleDelta = ptr(*face.Angle)
		}
		t.state.FaceAngle = clonePtr(face.Angle)
	}

	// Each landmark updates independently; absence keeps the prior value.
	if face.LeftEyePosition != nil {
		t.state.LeftEyePosition = clonePtr(face.LeftEyePosition)
	}
	if face.RightEyePosition != nil {
		t.state.RightEyePosition = clonePtr(face.RightEyePosition)
	}
	if face.MouthPosition != nil {
		t.state.MouthPosition = clonePtr(face.MouthPosition)
	}

	if face.HasSmile != nil {
		if *face.HasSmile {
			if mode == EveryFrame || !isTrue(t.state.HasSmile) {
				emit(EventSmiling)
			}
		} else {
			// Gated on the previous value not being a known false,
			// so an unknown previous smile state does not suppress
			// the first NotSmiling.
			if mode == EveryFrame || !isFalse(t.state.HasSmile) {
				emit(EventNotSmiling)
			}
		}
		t.state.HasSmile = clonePtr(face.HasSmile)
	}

	if face.LeftEyeClosed == nil && face.RightEyeClosed == nil {
		// Detector had no eye-closed judgement for this face.
		return
	}

	if isTrue(face.LeftEyeClosed) || isTrue(face.RightEyeClosed) {
		if mode == EveryFrame || !isTrue(t.state.IsWinking) {
			emit(EventWinking)
		}
		t.state.IsWinking = ptr(true)

		if isTrue(face.LeftEyeClosed) {
			if mode == EveryFrame || !isTrue(t.state.LeftEyeClosed) {
				emit(EventLeftEyeClosed)
			}
			t.state.LeftEyeClosed = ptr(true)
		}
		if isTrue(face.RightEyeClosed) {
			if mode == EveryFrame || !isTrue(t.state.RightEyeClosed) {
				emit(EventRightEyeClosed)
			}
			t.state.RightEyeClosed = ptr(true)
		}
		if isTrue(face.LeftEyeClosed) && isTrue(face.RightEyeClosed) {
			if mode == EveryFrame || !isTrue(t.state.IsBlinking) {
				emit(EventBlinking)
			}
			t.state.IsBlinking = ptr(true)
		}
		// Only the closed side updated; IsBlinking/IsWinking survive
		// a one-eye frame even if previously true.
		return
	}

	// Both eyes open.
	if mode == EveryFrame || isTrue(t.state.IsBlinking) {
		emit(EventNotBlinking)
	}
	if mode == EveryFrame || isTrue(t.state.IsWinking) {
		emit(EventNotWinking)
	}
	if mode == EveryFrame || isTrue(t.state.LeftEyeClosed) {
		emit(EventLeftEyeOpen)
	}
	if mode == EveryFrame || isTrue(t.state.RightEyeClosed) {
		emit(EventRightEyeOpen)
	}
	t.state.IsBlinking = ptr(false)
	t.state.IsWinking = ptr(false)
	if face.LeftEyeClosed != nil {
		t.state.LeftEyeClosed = clonePtr(face.LeftEyeClosed)
	}
	if face.RightEyeClosed != nil {
		t.state.RightEyeClosed = clonePtr(face.RightEyeClosed)
	}
}
