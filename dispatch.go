package taproot

// --- Listener registry ---

// Listener is a callback invoked during event dispatch.
type Listener func(Event)

type listenerEntry struct {
	id      uint32
	fn      Listener
	capture bool
}

// ListenerHandle identifies a registered listener so it can be removed
// without retaining the callback itself.
type ListenerHandle struct {
	node *Node
	typ  EventType
	id   uint32
}

// AddListener registers fn for events of the given type at this node and
// returns a handle for removal. Capture listeners run while the event travels
// inward; non-capture listeners run at the target and while it bubbles back
// out. Listeners added or removed mid-dispatch take effect from the next node
// visited.
func (n *Node) AddListener(typ EventType, fn Listener, capture bool) ListenerHandle {
	if fn == nil {
		panic("taproot: cannot add nil listener")
	}
	if n.listeners == nil {
		n.listeners = make(map[EventType][]listenerEntry)
	}
	n.nextListenerID++
	id := n.nextListenerID
	n.listeners[typ] = append(n.listeners[typ], listenerEntry{id: id, fn: fn, capture: capture})
	return ListenerHandle{node: n, typ: typ, id: id}
}

// Remove unregisters the listener. Safe to call more than once.
func (h ListenerHandle) Remove() {
	n := h.node
	if n == nil || n.listeners == nil {
		return
	}
	entries := n.listeners[h.typ]
	for i := range entries {
		if entries[i].id == h.id {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = listenerEntry{}
			n.listeners[h.typ] = entries[:len(entries)-1]
			return
		}
	}
}

// --- On-event slots ---

// SetOn assigns this node's on-event handler for a type, the platform
// convention of one assignable handler slot per type. The handler runs after
// regular listeners during the target and bubble phases. A nil handler keeps
// the slot present but inert; gesture attachment uses slot presence to
// negotiate which instance owns a gesture type.
func (n *Node) SetOn(typ EventType, fn Listener) {
	if n.onEvent == nil {
		n.onEvent = make(map[EventType]Listener)
	}
	n.onEvent[typ] = fn
}

// On returns the on-event handler for a type and whether the slot exists.
// A nil handler with ok true is a claimed-but-inert slot.
func (n *Node) On(typ EventType) (fn Listener, ok bool) {
	fn, ok = n.onEvent[typ]
	return fn, ok
}

// RemoveOn deletes the slot entirely, releasing the type for a future claim.
func (n *Node) RemoveOn(typ EventType) {
	delete(n.onEvent, typ)
}

// --- Path computation ---

// composedPathFor walks outward from target building the event path,
// innermost first. Composed events cross from a shadow root to its host;
// non-composed events stay confined to the target's own tree.
func composedPathFor(target *Node, composed bool) []*Node {
	path := make([]*Node, 0, 8)
	for n := target; n != nil; {
		path = append(path, n)
		if n.Kind == KindShadowRoot {
			if !composed {
				break
			}
			n = n.host
		} else {
			n = n.Parent
		}
	}
	return path
}

// retargetFor returns the node that listeners at scope see as the event
// target: the nearest shadow-including ancestor of target whose subtree also
// contains scope. Listeners outside a shadow subtree see its host element,
// never the shadow content.
func retargetFor(target, scope *Node) *Node {
	a := target
	for {
		root := a.Root()
		if root.Kind != KindShadowRoot || root.host == nil || isAncestor(root, scope) {
			return a
		}
		a = root.host
	}
}

// --- Dispatch ---

// DispatchEvent runs the synchronous capture, target, and bubble cycle for ev
// with this node as the target. The composed path is frozen on entry. Returns
// false if the event is cancelable and a listener prevented its default.
// Panics if ev is already mid-dispatch; a completed event may be dispatched
// again and its path re-freezes.
func (n *Node) DispatchEvent(ev Event) bool {
	if n == nil {
		panic("taproot: dispatch on nil node")
	}
	b := ev.Base()
	if b.inFlight {
		panic("taproot: event is already being dispatched")
	}
	if globalDebug {
		debugCheckDisposed(n, "DispatchEvent")
	}
	b.inFlight = true
	b.stopped = false
	b.stoppedNow = false
	b.target = n
	b.path = composedPathFor(n, b.composed)
	defer func() {
		b.inFlight = false
		b.phase = PhaseNone
		b.current = nil
		b.target = n
	}()

	path := b.path

	// Capture phase: outermost node toward the target.
	for i := len(path) - 1; i >= 1 && !b.stopped; i-- {
		dispatchAt(ev, path[i], PhaseCapturing, n)
	}
	// At the target, capture and bubble listeners run in registration order.
	if !b.stopped {
		dispatchAt(ev, path[0], PhaseAtTarget, n)
	}
	// Bubble phase: back outward, only if the event bubbles.
	if b.bubbles {
		for i := 1; i < len(path) && !b.stopped; i++ {
			dispatchAt(ev, path[i], PhaseBubbling, n)
		}
	}
	return !b.defaultPrevented
}

// dispatchAt runs the listeners registered at node for the current phase,
// then the node's on-event slot during target and bubble phases.
func dispatchAt(ev Event, node *Node, phase EventPhase, target *Node) {
	b := ev.Base()
	b.phase = phase
	b.current = node
	b.target = retargetFor(target, node)

	if entries := node.listeners[b.typ]; len(entries) > 0 {
		// Snapshot so removal inside a listener cannot skip or repeat entries.
		snapshot := make([]listenerEntry, len(entries))
		copy(snapshot, entries)
		for _, e := range snapshot {
			if b.stoppedNow {
				return
			}
			if phase == PhaseCapturing && !e.capture {
				continue
			}
			if phase == PhaseBubbling && e.capture {
				continue
			}
			e.fn(ev)
		}
	}
	if b.stoppedNow || phase == PhaseCapturing {
		return
	}
	if fn := node.onEvent[b.typ]; fn != nil {
		fn(ev)
	}
}
