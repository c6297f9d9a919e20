package facestate

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func eventsEqual(got, want []Event) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func noFaces() FrameObservation {
	return FrameObservation{}
}

func oneFace(face FaceObservation) FrameObservation {
	return FrameObservation{Faces: []FaceObservation{face}}
}

// plainFace is a face with bounds only: no smile or eye judgement.
func plainFace() FaceObservation {
	return FaceObservation{Bounds: Box(10, 10, 100, 100)}
}

func TestTracker_NoFaceIdempotence(t *testing.T) {
	tr := NewTracker()

	// First no-face frame: nothing was detected before, no event.
	events := tr.Process(noFaces(), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("First no-face frame: got %v, want none", events)
	}

	// Still no face: still no event.
	events = tr.Process(noFaces(), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("Repeated no-face frame: got %v, want none", events)
	}

	s := tr.State()
	if s.FaceDetected == nil || *s.FaceDetected {
		t.Errorf("FaceDetected: got %v, want false", s.FaceDetected)
	}
}

func TestTracker_NoFaceAfterDetection(t *testing.T) {
	tr := NewTracker()
	tr.Process(oneFace(plainFace()), OnChangeOnly)

	events := tr.Process(noFaces(), OnChangeOnly)
	if !eventsEqual(events, []Event{EventNoFaceDetected}) {
		t.Errorf("Face loss: got %v, want [NoFaceDetected]", events)
	}

	events = tr.Process(noFaces(), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("Still lost: got %v, want none", events)
	}
}

func TestTracker_DetectionEdgeRisesOnce(t *testing.T) {
	tr := NewTracker()
	tr.Process(noFaces(), OnChangeOnly)

	events := tr.Process(oneFace(plainFace()), OnChangeOnly)
	if !eventsEqual(events, []Event{EventFaceDetected}) {
		t.Errorf("Rising edge: got %v, want [FaceDetected]", events)
	}

	events = tr.Process(oneFace(plainFace()), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("Held detection: got %v, want none", events)
	}
}

func TestTracker_FirstFaceNotSuppressedByUnknownState(t *testing.T) {
	tr := NewTracker()

	// No prior frame at all: FaceDetected still fires.
	events := tr.Process(oneFace(plainFace()), OnChangeOnly)
	if !eventsEqual(events, []Event{EventFaceDetected}) {
		t.Errorf("First ever frame: got %v, want [FaceDetected]", events)
	}
}

func TestTracker_SmileSymmetry(t *testing.T) {
	tr := NewTracker()

	smile := func(v bool) FrameObservation {
		return oneFace(FaceObservation{HasSmile: Bool(v)})
	}

	// Frame 1: no smile, previous smile state unknown. The gate is
	// "previous == known false", so the unknown state does not
	// suppress NotSmiling.
	events := tr.Process(smile(false), OnChangeOnly)
	if !eventsEqual(events, []Event{EventFaceDetected, EventNotSmiling}) {
		t.Errorf("Frame 1: got %v, want [FaceDetected NotSmiling]", events)
	}

	// Frame 2: smile begins.
	events = tr.Process(smile(true), OnChangeOnly)
	if !eventsEqual(events, []Event{EventSmiling}) {
		t.Errorf("Frame 2: got %v, want [Smiling]", events)
	}

	// Frame 3: smile held, nothing fires.
	events = tr.Process(smile(true), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("Frame 3: got %v, want none", events)
	}

	// Frame 4: smile ends.
	events = tr.Process(smile(false), OnChangeOnly)
	if !eventsEqual(events, []Event{EventNotSmiling}) {
		t.Errorf("Frame 4: got %v, want [NotSmiling]", events)
	}

	// Frame 5: still not smiling, suppressed now that false is known.
	events = tr.Process(smile(false), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("Frame 5: got %v, want none", events)
	}
}

func TestTracker_BlinkImpliesWink(t *testing.T) {
	tr := NewTracker()

	// Establish both-open state first.
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(false),
		RightEyeClosed: Bool(false),
	}), OnChangeOnly)

	events := tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(true),
	}), OnChangeOnly)

	want := []Event{EventWinking, EventLeftEyeClosed, EventRightEyeClosed, EventBlinking}
	if !eventsEqual(events, want) {
		t.Errorf("Full blink: got %v, want %v", events, want)
	}
}

func TestTracker_WinkSingleEye(t *testing.T) {
	tr := NewTracker()
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(false),
		RightEyeClosed: Bool(false),
	}), OnChangeOnly)

	events := tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(false),
	}), OnChangeOnly)

	want := []Event{EventWinking, EventLeftEyeClosed}
	if !eventsEqual(events, want) {
		t.Errorf("Left wink: got %v, want %v", events, want)
	}

	s := tr.State()
	if !isTrue(s.IsWinking) {
		t.Error("IsWinking should be true after wink")
	}
	if isTrue(s.IsBlinking) {
		t.Error("IsBlinking should not become true on a single-eye wink")
	}
	// The open eye's flag is from the previous frame, not this one.
	if s.RightEyeClosed == nil || *s.RightEyeClosed {
		t.Errorf("RightEyeClosed: got %v, want stale false", s.RightEyeClosed)
	}
}

func TestTracker_BlinkSurvivesOneEyeFrame(t *testing.T) {
	tr := NewTracker()

	// Full blink.
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(true),
	}), OnChangeOnly)

	// Next frame only the left eye is closed. The closed branch never
	// resets IsBlinking, so it stays true.
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(false),
	}), OnChangeOnly)

	s := tr.State()
	if !isTrue(s.IsBlinking) {
		t.Error("IsBlinking should survive a one-eye frame")
	}
	if !isTrue(s.RightEyeClosed) {
		t.Error("RightEyeClosed should be left stale from the blink frame")
	}
}

func TestTracker_EyesReopen(t *testing.T) {
	tr := NewTracker()
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(true),
	}), OnChangeOnly)

	events := tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(false),
		RightEyeClosed: Bool(false),
	}), OnChangeOnly)

	want := []Event{EventNotBlinking, EventNotWinking, EventLeftEyeOpen, EventRightEyeOpen}
	if !eventsEqual(events, want) {
		t.Errorf("Reopen: got %v, want %v", events, want)
	}

	s := tr.State()
	if isTrue(s.IsBlinking) || isTrue(s.IsWinking) {
		t.Error("Blink/wink flags should be false after reopening")
	}
}

func TestTracker_StaleFieldRetention(t *testing.T) {
	tr := NewTracker()

	// Left eye closed once, then the face disappears.
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(false),
	}), OnChangeOnly)
	tr.Process(noFaces(), OnChangeOnly)

	// No-face frames only flip FaceDetected; everything else is stale
	// on purpose.
	s := tr.State()
	if s.RightEyeClosed == nil || *s.RightEyeClosed {
		t.Errorf("RightEyeClosed: got %v, want retained false", s.RightEyeClosed)
	}
	if !isTrue(s.LeftEyeClosed) {
		t.Error("LeftEyeClosed should be retained true")
	}
	if s.FaceDetected == nil || *s.FaceDetected {
		t.Errorf("FaceDetected: got %v, want false", s.FaceDetected)
	}
}

func TestTracker_LandmarksRetainedOnAbsence(t *testing.T) {
	tr := NewTracker()
	tr.Process(oneFace(FaceObservation{
		LeftEyePosition: Pt(30, 40),
		MouthPosition:   Pt(50, 80),
	}), OnChangeOnly)

	// Next face reports only the mouth; the eye keeps its old position.
	tr.Process(oneFace(FaceObservation{
		MouthPosition: Pt(52, 81),
	}), OnChangeOnly)

	s := tr.State()
	if s.LeftEyePosition == nil || !floatEquals(s.LeftEyePosition.X, 30) {
		t.Errorf("LeftEyePosition: got %v, want retained (30, 40)", s.LeftEyePosition)
	}
	if s.MouthPosition == nil || !floatEquals(s.MouthPosition.X, 52) {
		t.Errorf("MouthPosition: got %v, want (52, 81)", s.MouthPosition)
	}
}

func TestTracker_EveryFrameMode(t *testing.T) {
	tr := NewTracker()

	frame := oneFace(FaceObservation{
		HasSmile:       Bool(false),
		LeftEyeClosed:  Bool(false),
		RightEyeClosed: Bool(false),
	})
	want := []Event{
		EventFaceDetected, EventNotSmiling,
		EventNotBlinking, EventNotWinking, EventLeftEyeOpen, EventRightEyeOpen,
	}

	// Two identical frames both emit the full set, no suppression.
	for i := 1; i <= 2; i++ {
		events := tr.Process(frame, EveryFrame)
		if !eventsEqual(events, want) {
			t.Errorf("EveryFrame frame %d: got %v, want %v", i, events, want)
		}
	}

	// And a no-face frame always reports it.
	events := tr.Process(noFaces(), EveryFrame)
	if !eventsEqual(events, []Event{EventNoFaceDetected}) {
		t.Errorf("EveryFrame no-face: got %v, want [NoFaceDetected]", events)
	}
}

func TestTracker_AngleDelta(t *testing.T) {
	tr := NewTracker()

	tr.Process(oneFace(FaceObservation{Angle: Float(10)}), OnChangeOnly)
	s := tr.State()
	if s.FaceAngleDelta == nil || !floatEquals(*s.FaceAngleDelta, 10) {
		t.Errorf("First delta: got %v, want 10", s.FaceAngleDelta)
	}

	tr.Process(oneFace(FaceObservation{Angle: Float(15)}), OnChangeOnly)
	s = tr.State()
	if s.FaceAngleDelta == nil || !floatEquals(*s.FaceAngleDelta, 5) {
		t.Errorf("Second delta: got %v, want 5", s.FaceAngleDelta)
	}
	if s.FaceAngle == nil || !floatEquals(*s.FaceAngle, 15) {
		t.Errorf("Angle: got %v, want 15", s.FaceAngle)
	}

	// A face without an angle leaves both angle and delta alone.
	tr.Process(oneFace(plainFace()), OnChangeOnly)
	s = tr.State()
	if s.FaceAngleDelta == nil || !floatEquals(*s.FaceAngleDelta, 5) {
		t.Errorf("Delta after absent angle: got %v, want retained 5", s.FaceAngleDelta)
	}
}

func TestTracker_LastFaceWins(t *testing.T) {
	tr := NewTracker()

	obs := FrameObservation{Faces: []FaceObservation{
		{Bounds: Box(0, 0, 10, 10), HasSmile: Bool(true)},
		{Bounds: Box(100, 100, 20, 20), HasSmile: Bool(false)},
	}}

	events := tr.Process(obs, OnChangeOnly)
	// Face one fires FaceDetected and Smiling; face two sees the smile
	// already true and fires NotSmiling. One state slot, applied in order.
	want := []Event{EventFaceDetected, EventSmiling, EventNotSmiling}
	if !eventsEqual(events, want) {
		t.Errorf("Two faces: got %v, want %v", events, want)
	}

	s := tr.State()
	if s.FaceBounds == nil || !floatEquals(s.FaceBounds.X, 100) {
		t.Errorf("FaceBounds: got %v, want the second face's bounds", s.FaceBounds)
	}
	if s.HasSmile == nil || *s.HasSmile {
		t.Errorf("HasSmile: got %v, want the second face's false", s.HasSmile)
	}
}

func TestTracker_StateIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.Process(oneFace(FaceObservation{Angle: Float(10)}), OnChangeOnly)

	s := tr.State()
	*s.FaceAngle = 99

	if got := tr.State(); got.FaceAngle == nil || !floatEquals(*got.FaceAngle, 10) {
		t.Errorf("Internal angle mutated through snapshot: got %v", got.FaceAngle)
	}
}

func TestTracker_NoEyeJudgementLeavesEyeStateAlone(t *testing.T) {
	tr := NewTracker()
	tr.Process(oneFace(FaceObservation{
		LeftEyeClosed:  Bool(true),
		RightEyeClosed: Bool(true),
	}), OnChangeOnly)

	// A detector that cannot judge eyes (both flags nil) must not
	// trigger the reopen path.
	events := tr.Process(oneFace(plainFace()), OnChangeOnly)
	if len(events) != 0 {
		t.Errorf("Eye-blind face: got %v, want none", events)
	}
	if !isTrue(tr.State().IsBlinking) {
		t.Error("IsBlinking should be untouched by an eye-blind observation")
	}
}
