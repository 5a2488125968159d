package taproot

// EventType identifies a kind of event flowing through a target tree.
// Types are strings so recorded streams, on-event slots, and consumer-defined
// events share one namespace.
type EventType string

// Gesture events synthesized by a Recognizer.
const (
	EventTapStart EventType = "tapstart" // a pointer went down on a target
	EventTap      EventType = "tap"      // press and release resolved to one activation
	EventTapEnd   EventType = "tapend"   // the pointer came back up
)

// Native events consumed by a Recognizer. Host drivers (or Replay) dispatch
// these into the tree.
const (
	EventMouseDown  EventType = "mousedown"
	EventMouseUp    EventType = "mouseup"
	EventClick      EventType = "click"
	EventTouchStart EventType = "touchstart"
	EventTouchMove  EventType = "touchmove"
	EventTouchEnd   EventType = "touchend"
	EventKeyUp      EventType = "keyup"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// PositionSnapshot is the coordinate set copied from a native mouse or touch
// point the moment a gesture event is built. Exactly one snapshot is taken per
// gesture event; it never changes afterward. Units are whatever the host
// reports.
type PositionSnapshot struct {
	PageX, PageY     float64
	ScreenX, ScreenY float64
	ClientX, ClientY float64
}

// ModifierSnapshot records which keyboard modifiers were held when a mouse or
// keyboard event was produced. Touch events carry no modifier information, so
// touch-derived gestures leave every flag false.
type ModifierSnapshot struct {
	AltKey   bool
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool
}

// Touch is a single contact point inside a TouchEvent.
type Touch struct {
	Identifier int
	PositionSnapshot
}
