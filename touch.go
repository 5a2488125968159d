package taproot

// Touch tap tracking: one touch at a time. A touchstart records the first
// changed touch and the composed path; any movement disqualifies the touch
// from producing a tap; the touchend reconciles paths the same way the mouse
// tracker does and arms suppression of the synthetic mouse events hosts emit
// after a touch.

// touchStart begins tracking the first changed touch, unconditionally
// replacing whatever was tracked before. Events with no changed touches are
// absorbed.
func (r *Recognizer) touchStart(ev Event) {
	te, ok := ev.(*TouchEvent)
	if !ok || len(te.ChangedTouches) == 0 {
		return
	}
	t := te.ChangedTouches[0]
	r.currentTouch = t.Identifier
	path := te.ComposedPath()
	r.pendingTouch = path
	debugLogf("touchstart: tracking touch %d", t.Identifier)
	if len(path) == 0 {
		return
	}
	if r.emitStart {
		r.dispatchTap(EventTapStart, path[0], touchSource(t, te))
	}
}

// touchMove invalidates the tracked touch: a moved finger is a scroll or a
// drag, not a tap. The pending path stays so touchend can still reconcile a
// tapend target.
func (r *Recognizer) touchMove(ev Event) {
	if _, ok := ev.(*TouchEvent); !ok {
		return
	}
	if r.currentTouch != -1 {
		debugLogf("touchmove: touch %d no longer tap-eligible", r.currentTouch)
	}
	r.currentTouch = -1
}

// touchEnd resolves the gesture. Tracker state is reset on every exit path,
// malformed events included, so a bad touchend can never wedge the tracker.
func (r *Recognizer) touchEnd(ev Event) {
	te, ok := ev.(*TouchEvent)
	if !ok {
		return
	}
	active := r.currentTouch
	press := r.pendingTouch
	defer func() {
		r.currentTouch = -1
		r.pendingTouch = nil
	}()

	if len(te.ChangedTouches) == 0 {
		return
	}
	t := te.ChangedTouches[0]
	target := commonTapTarget(press, te.ComposedPath())
	if target == nil {
		return
	}
	if r.emitEnd {
		r.dispatchTap(EventTapEnd, target, touchSource(t, te))
	}
	if t.Identifier != active {
		return
	}
	// Arm suppression regardless of tap ownership: the host's synthetic
	// mousedown/mouseup echo follows this touchend either way.
	r.lastTapTarget = target
	if r.emitTap {
		r.dispatchTap(EventTap, target, touchSource(t, te))
	}
}
