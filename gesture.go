package taproot

// Options configures gesture recognition for one Attach call.
// The zero value is ready to use.
type Options struct {
	// Matches overrides the selector capability used to identify natively
	// activatable elements. Nil selects the built-in matcher.
	Matches MatchFunc

	// UnreliableClickDetail marks hosts whose click events carry no meaningful
	// click count. Zero-detail clicks are ignored on such hosts because they
	// cannot be told apart from real pointer clicks.
	UnreliableClickDetail bool
}

// Recognizer unifies mouse, touch, and keyboard input arriving at a root into
// tapstart, tap, and tapend gestures. It owns all of its state; attaching
// several recognizers to different roots never crosses streams, and attaching
// to the same root negotiates ownership per gesture type.
type Recognizer struct {
	root                  *Node
	matches               MatchFunc
	unreliableClickDetail bool

	// Capability gate: which gesture types this instance won at attach.
	emitStart bool
	emitTap   bool
	emitEnd   bool
	claimed   []EventType

	// Tracker state.
	currentTouch  int     // identifier of the single tracked touch; -1 when none
	pendingMouse  []*Node // composed path captured at mousedown
	pendingTouch  []*Node // composed path captured at touchstart
	lastTapTarget *Node   // set by a touch tap; consumed by the next mouseup

	handles []ListenerHandle
}

// Attach installs tap gesture recognition on root and returns the recognizer.
// Each of the three gesture types is claimed independently through the root's
// on-event slots: a type already claimed by an earlier attach (or by a
// consumer-assigned handler) stays with its owner and this instance will not
// dispatch it. When all three types are taken, nothing is installed and every
// native event passes through untouched. Panics if root is nil.
func Attach(root *Node, opts Options) *Recognizer {
	if root == nil {
		panic("taproot: attach to nil root")
	}
	r := &Recognizer{
		root:                  root,
		matches:               opts.Matches,
		unreliableClickDetail: opts.UnreliableClickDetail,
		currentTouch:          -1,
	}
	if r.matches == nil {
		r.matches = Matches
	}
	r.emitStart = r.claim(EventTapStart)
	r.emitTap = r.claim(EventTap)
	r.emitEnd = r.claim(EventTapEnd)
	if !r.emitStart && !r.emitTap && !r.emitEnd {
		debugLogf("attach: all gesture types already claimed, nothing installed")
		return r
	}

	r.listen(EventMouseDown, r.mouseDown)
	r.listen(EventMouseUp, r.mouseUp)
	r.listen(EventTouchStart, r.touchStart)
	r.listen(EventTouchMove, r.touchMove)
	r.listen(EventTouchEnd, r.touchEnd)
	r.listen(EventClick, r.click)
	r.listen(EventKeyUp, r.keyUp)
	return r
}

// claim takes ownership of one gesture type if nothing holds it yet. An inert
// slot is left on the root so later attaches see the type as taken.
func (r *Recognizer) claim(typ EventType) bool {
	if _, taken := r.root.On(typ); taken {
		return false
	}
	r.root.SetOn(typ, nil)
	r.claimed = append(r.claimed, typ)
	return true
}

// listen registers a capture-phase listener on the root. Capture phase so the
// recognizer observes native events before consumer listeners can stop their
// propagation at inner nodes.
func (r *Recognizer) listen(typ EventType, fn Listener) {
	r.handles = append(r.handles, r.root.AddListener(typ, fn, true))
}

// Detach removes the recognizer's listeners and releases the capability slots
// it claimed that are still inert. Slots a consumer has since assigned a
// handler to are left alone.
func (r *Recognizer) Detach() {
	for _, h := range r.handles {
		h.Remove()
	}
	r.handles = nil
	for _, typ := range r.claimed {
		if fn, ok := r.root.On(typ); ok && fn == nil {
			r.root.RemoveOn(typ)
		}
	}
	r.claimed = nil
	r.emitStart, r.emitTap, r.emitEnd = false, false, false
	r.pendingMouse, r.pendingTouch = nil, nil
	r.lastTapTarget = nil
	r.currentTouch = -1
}

// --- Tap dispatch ---

// tapSource carries what tap dispatch needs from the originating native
// event: the position to snapshot, the modifier state when the source has any
// (nil for touch), and the native event itself for cancellation propagation.
type tapSource struct {
	pos    PositionSnapshot
	mods   *ModifierSnapshot
	native Event
}

func mouseSource(me *MouseEvent) tapSource {
	return tapSource{pos: me.PositionSnapshot, mods: &me.ModifierSnapshot, native: me}
}

func touchSource(t Touch, te *TouchEvent) tapSource {
	return tapSource{pos: t.PositionSnapshot, native: te}
}

// dispatchTap builds a gesture event from src and dispatches it on target.
// A prevented tap propagates cancellation back to the originating native
// event while that event is still being dispatched, so native default actions
// can be stopped by tap listeners.
func (r *Recognizer) dispatchTap(typ EventType, target *Node, src tapSource) {
	debugLogf("dispatch %s on %s", typ, debugNodeName(target))
	tap := newTapEvent(typ, src.pos, src.mods)
	target.DispatchEvent(tap)
	if tap.DefaultPrevented() && src.native != nil {
		src.native.Base().PreventDefault()
	}
}

// --- Path reconciliation ---

// alignAtRoot trims the longer of two innermost-first paths so both have the
// same length anchored at their root ends. Excess innermost entries of the
// deeper path are dropped; index i then refers to the same tree depth in both.
func alignAtRoot(press, release []*Node) ([]*Node, []*Node) {
	if len(press) > len(release) {
		press = press[len(press)-len(release):]
	} else if len(release) > len(press) {
		release = release[len(release)-len(press):]
	}
	return press, release
}

// commonTapTarget reconciles a press-time path with a release-time path:
// after root alignment, the innermost index where both paths reference the
// same genuine element is the tap target. When press and release saw the same
// innermost element that element wins; when the pointer drifted between
// siblings their shared container wins. Nil when the paths share no element,
// as when a press is dragged onto an unrelated subtree or either path is
// empty.
func commonTapTarget(press, release []*Node) *Node {
	press, release = alignAtRoot(press, release)
	for i := range press {
		if press[i] == release[i] && press[i].Kind == KindElement {
			return press[i]
		}
	}
	return nil
}
