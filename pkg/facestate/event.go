package facestate

// Event identifies one facial state transition. The string value is the
// notification name hosts subscribe by; events carry no payload beyond
// their identity.
type Event string

const (
	EventFaceDetected   Event = "visage.face_detected"
	EventNoFaceDetected Event = "visage.no_face_detected"
	EventSmiling        Event = "visage.smiling"
	EventNotSmiling     Event = "visage.not_smiling"
	EventBlinking       Event = "visage.blinking"
	EventNotBlinking    Event = "visage.not_blinking"
	EventWinking        Event = "visage.winking"
	EventNotWinking     Event = "visage.not_winking"
	EventLeftEyeClosed  Event = "visage.left_eye_closed"
	EventLeftEyeOpen    Event = "visage.left_eye_open"
	EventRightEyeClosed Event = "visage.right_eye_closed"
	EventRightEyeOpen   Event = "visage.right_eye_open"
)

// AllEvents lists every event in a stable order.
func AllEvents() []Event {
	return []Event{
		EventFaceDetected, EventNoFaceDetected,
		EventSmiling, EventNotSmiling,
		EventBlinking, EventNotBlinking,
		EventWinking, EventNotWinking,
		EventLeftEyeClosed, EventLeftEyeOpen,
		EventRightEyeClosed, EventRightEyeOpen,
	}
}

// Name returns the notification name for the event.
func (e Event) Name() string { return string(e) }

// NotifyMode controls when transitions produce events.
type NotifyMode int

const (
	// OnChangeOnly emits an event only when the underlying value
	// changed relative to the previous frame.
	OnChangeOnly NotifyMode = iota

	// EveryFrame emits the full applicable event set on every frame,
	// with no suppression.
	EveryFrame
)

// String returns the mode name.
func (m NotifyMode) String() string {
	switch m {
	case OnChangeOnly:
		return "on-change"
	case EveryFrame:
		return "every-frame"
	default:
		return "unknown"
	}
}
