package taproot

// Event is implemented by every value that can be dispatched through a tree.
// Concrete events embed EventBase; listeners type-switch to reach per-event
// fields:
//
//	root.AddListener(taproot.EventTap, func(ev taproot.Event) {
//		tap := ev.(*taproot.TapEvent)
//		_ = tap.PageX
//	}, false)
type Event interface {
	Base() *EventBase
}

// EventPhase reports where in the dispatch cycle an event currently is.
type EventPhase uint8

const (
	PhaseNone      EventPhase = iota // not being dispatched
	PhaseCapturing                   // traveling from the outermost target inward
	PhaseAtTarget                    // at the dispatch target
	PhaseBubbling                    // traveling from the target back out
)

// EventBase carries the dispatch state shared by every event: type and flags
// fixed at construction, plus target, phase, path, and the propagation and
// cancellation switches that listeners flip while the event is in flight.
type EventBase struct {
	typ        EventType
	bubbles    bool
	cancelable bool
	composed   bool

	target  *Node
	current *Node
	phase   EventPhase
	path    []*Node // frozen composed path, innermost first; nil before dispatch

	defaultPrevented bool
	stopped          bool // no further nodes are visited
	stoppedNow       bool // no further listeners run, current node included
	inFlight         bool
}

// NewEventBase builds the embedded base for a custom event type. The flags
// are fixed for the event's lifetime.
func NewEventBase(typ EventType, bubbles, cancelable, composed bool) EventBase {
	return EventBase{typ: typ, bubbles: bubbles, cancelable: cancelable, composed: composed}
}

// Base returns the event's shared dispatch state. It makes any embedding
// struct satisfy Event.
func (b *EventBase) Base() *EventBase { return b }

// Type returns the event type.
func (b *EventBase) Type() EventType { return b.typ }

// Bubbles reports whether the event travels back out after reaching its target.
func (b *EventBase) Bubbles() bool { return b.bubbles }

// Cancelable reports whether PreventDefault has any effect.
func (b *EventBase) Cancelable() bool { return b.cancelable }

// Composed reports whether the event crosses shadow boundaries.
func (b *EventBase) Composed() bool { return b.composed }

// Target returns the dispatch target as visible to the current listener:
// listeners outside a shadow subtree see the subtree's host element instead
// of the real target. Nil before dispatch.
func (b *EventBase) Target() *Node { return b.target }

// CurrentTarget returns the node whose listeners are currently running.
// Nil outside of dispatch.
func (b *EventBase) CurrentTarget() *Node { return b.current }

// Phase returns the current dispatch phase.
func (b *EventBase) Phase() EventPhase { return b.phase }

// ComposedPath returns the event's path, innermost target first, crossing
// shadow boundaries when the event is composed. The path is frozen when
// dispatch begins; tree mutations made by listeners do not alter it. Returns
// an empty path for an event that has not been dispatched. The returned slice
// is a copy.
func (b *EventBase) ComposedPath() []*Node {
	if b.path == nil {
		return nil
	}
	out := make([]*Node, len(b.path))
	copy(out, b.path)
	return out
}

// PreventDefault marks the event canceled. No-op unless the event is
// cancelable.
func (b *EventBase) PreventDefault() {
	if b.cancelable {
		b.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (b *EventBase) DefaultPrevented() bool { return b.defaultPrevented }

// StopPropagation prevents any node after the current one from seeing the
// event. Remaining listeners on the current node still run.
func (b *EventBase) StopPropagation() { b.stopped = true }

// StopImmediatePropagation prevents every listener not yet invoked from
// seeing the event, on the current node and beyond.
func (b *EventBase) StopImmediatePropagation() {
	b.stopped = true
	b.stoppedNow = true
}

// --- Concrete events ---

// MouseEvent is a native mouse event. Detail carries the click count; a zero
// detail marks programmatic and keyboard-initiated clicks, which the
// recognizer treats as activations rather than pointer input.
type MouseEvent struct {
	EventBase
	PositionSnapshot
	ModifierSnapshot
	Button MouseButton
	Detail int
}

// NewMouseEvent builds a mouse event. Native mouse events bubble, are
// cancelable, and cross shadow boundaries.
func NewMouseEvent(typ EventType, pos PositionSnapshot, mods ModifierSnapshot, button MouseButton, detail int) *MouseEvent {
	return &MouseEvent{
		EventBase:        NewEventBase(typ, true, true, true),
		PositionSnapshot: pos,
		ModifierSnapshot: mods,
		Button:           button,
		Detail:           detail,
	}
}

// TouchEvent is a native touch event carrying the contact points that changed
// in this transition. The recognizer only ever reads the first changed touch.
type TouchEvent struct {
	EventBase
	ChangedTouches []Touch
}

// NewTouchEvent builds a touch event. Native touch events bubble, are
// cancelable, and cross shadow boundaries.
func NewTouchEvent(typ EventType, changed ...Touch) *TouchEvent {
	return &TouchEvent{
		EventBase:      NewEventBase(typ, true, true, true),
		ChangedTouches: changed,
	}
}

// KeyboardEvent is a native key event. Key holds the logical key value
// ("Enter", " ", "a"), not a scan code.
type KeyboardEvent struct {
	EventBase
	ModifierSnapshot
	Key string
}

// NewKeyboardEvent builds a keyboard event. Native key events bubble, are
// cancelable, and cross shadow boundaries.
func NewKeyboardEvent(typ EventType, key string, mods ModifierSnapshot) *KeyboardEvent {
	return &KeyboardEvent{
		EventBase:        NewEventBase(typ, true, true, true),
		ModifierSnapshot: mods,
		Key:              key,
	}
}

// TapEvent is a synthesized gesture event: tapstart, tap, or tapend. It
// always bubbles, always crosses shadow boundaries, and is always cancelable;
// preventing its default propagates cancellation back to the native event
// that produced it. Touch-derived taps carry a zero ModifierSnapshot.
type TapEvent struct {
	EventBase
	PositionSnapshot
	ModifierSnapshot
}

// newTapEvent snapshots position and, when the source carries one, modifier
// state. Only the recognizer builds tap events; synthesizing one by hand
// bypasses every de-duplication rule.
func newTapEvent(typ EventType, pos PositionSnapshot, mods *ModifierSnapshot) *TapEvent {
	te := &TapEvent{
		EventBase:        NewEventBase(typ, true, true, true),
		PositionSnapshot: pos,
	}
	if mods != nil {
		te.ModifierSnapshot = *mods
	}
	return te
}
