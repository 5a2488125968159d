package taproot

// Mouse tap tracking: a mousedown captures the composed path, the matching
// mouseup reconciles it against the release path. Press and release may land
// on different innermost elements (the pointer drifted, a listener rebuilt
// part of the subtree); the tap lands on the innermost element the two paths
// agree on.

// mouseDown begins a potential mouse tap. Ignored while a touch is being
// tracked or a touch tap is waiting to suppress its synthetic mouse events.
func (r *Recognizer) mouseDown(ev Event) {
	me, ok := ev.(*MouseEvent)
	if !ok {
		return
	}
	if r.lastTapTarget != nil || r.currentTouch != -1 {
		debugLogf("mousedown ignored: touch active or suppression pending")
		return
	}
	path := me.ComposedPath()
	r.pendingMouse = path
	if len(path) == 0 {
		return
	}
	if r.emitStart {
		r.dispatchTap(EventTapStart, path[0], mouseSource(me))
	}
}

// mouseUp completes a mouse tap. The first mouseup after a touch tap is the
// host's synthetic echo of the touch; it only consumes the suppression flag.
func (r *Recognizer) mouseUp(ev Event) {
	me, ok := ev.(*MouseEvent)
	if !ok {
		return
	}
	if r.lastTapTarget != nil {
		debugLogf("mouseup consumed by touch suppression")
		r.lastTapTarget = nil
		return
	}
	press := r.pendingMouse
	r.pendingMouse = nil

	release := me.ComposedPath()
	if len(release) > 0 && r.emitEnd {
		r.dispatchTap(EventTapEnd, release[0], mouseSource(me))
	}
	if !r.emitTap {
		return
	}
	if target := commonTapTarget(press, release); target != nil {
		r.dispatchTap(EventTap, target, mouseSource(me))
	}
}
