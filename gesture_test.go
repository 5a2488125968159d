package taproot

import (
	"testing"
)

// --- Test fixtures ---

// tapTree builds root -> track -> lane -> btn, the tree most gesture tests
// share.
func tapTree() (root, track, lane, btn *Node) {
	root = NewRoot()
	track = NewElement("div")
	lane = NewElement("div")
	btn = NewElement("button")
	root.AddChild(track)
	track.AddChild(lane)
	lane.AddChild(btn)
	return root, track, lane, btn
}

// gestureLog counts gesture events reaching the root and keeps the last event
// and target per type.
type gestureLog struct {
	counts  map[EventType]int
	targets map[EventType]*Node
	last    map[EventType]*TapEvent
}

func logGestures(root *Node) *gestureLog {
	l := &gestureLog{
		counts:  map[EventType]int{},
		targets: map[EventType]*Node{},
		last:    map[EventType]*TapEvent{},
	}
	for _, typ := range []EventType{EventTapStart, EventTap, EventTapEnd} {
		root.AddListener(typ, func(ev Event) {
			tap := ev.(*TapEvent)
			l.counts[tap.Type()]++
			l.targets[tap.Type()] = tap.Target()
			l.last[tap.Type()] = tap
		}, false)
	}
	return l
}

func (l *gestureLog) assertCounts(t *testing.T, start, tap, end int) {
	t.Helper()
	if got := l.counts[EventTapStart]; got != start {
		t.Errorf("tapstart count = %d, want %d", got, start)
	}
	if got := l.counts[EventTap]; got != tap {
		t.Errorf("tap count = %d, want %d", got, tap)
	}
	if got := l.counts[EventTapEnd]; got != end {
		t.Errorf("tapend count = %d, want %d", got, end)
	}
}

func at(x, y float64) PositionSnapshot {
	return PositionSnapshot{PageX: x, PageY: y, ScreenX: x, ScreenY: y, ClientX: x, ClientY: y}
}

func mouseEv(typ EventType, x, y float64) *MouseEvent {
	return NewMouseEvent(typ, at(x, y), ModifierSnapshot{}, MouseButtonLeft, 1)
}

func touchEv(typ EventType, id int, x, y float64) *TouchEvent {
	return NewTouchEvent(typ, Touch{Identifier: id, PositionSnapshot: at(x, y)})
}

// --- Mouse taps ---

func TestMouseTap_SingleFire(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventMouseDown, 10, 20))
	btn.DispatchEvent(mouseEv(EventMouseUp, 10, 20))

	log.assertCounts(t, 1, 1, 1)
	if log.targets[EventTap] != btn {
		t.Errorf("tap target = %s, want the button", debugNodeName(log.targets[EventTap]))
	}
	if log.targets[EventTapStart] != btn || log.targets[EventTapEnd] != btn {
		t.Error("tapstart/tapend should land on the pressed element")
	}
	if tap := log.last[EventTap]; tap.PageX != 10 || tap.PageY != 20 {
		t.Errorf("tap at (%v, %v), want (10, 20)", tap.PageX, tap.PageY)
	}
}

func TestMouseTap_DragAcrossSiblings_TapsSharedContainer(t *testing.T) {
	root, track, lane, btn := tapTree()
	other := NewElement("div")
	track.AddChild(other)
	_ = lane
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventMouseDown, 5, 5))
	other.DispatchEvent(mouseEv(EventMouseUp, 50, 5))

	log.assertCounts(t, 1, 1, 1)
	if log.targets[EventTap] != track {
		t.Errorf("tap target = %s, want the shared container", debugNodeName(log.targets[EventTap]))
	}
	if log.targets[EventTapEnd] != other {
		t.Error("tapend should land on the release element")
	}
}

func TestMouseTap_DragToAncestor(t *testing.T) {
	root, track, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	// Release directly on an ancestor: paths differ in depth and must be
	// aligned at the root before scanning.
	btn.DispatchEvent(mouseEv(EventMouseDown, 5, 5))
	track.DispatchEvent(mouseEv(EventMouseUp, 5, 50))

	log.assertCounts(t, 1, 1, 1)
	if log.targets[EventTap] != track {
		t.Errorf("tap target = %s, want the ancestor", debugNodeName(log.targets[EventTap]))
	}
}

func TestMouseTap_DragOffSharedNothing_NoTap(t *testing.T) {
	root := NewRoot()
	a := NewElement("div")
	b := NewElement("div")
	root.AddChild(a)
	root.AddChild(b)
	Attach(root, Options{})
	log := logGestures(root)

	a.DispatchEvent(mouseEv(EventMouseDown, 5, 5))
	b.DispatchEvent(mouseEv(EventMouseUp, 500, 5))

	// The only shared path entry is the root, which is not an element.
	log.assertCounts(t, 1, 0, 1)
}

func TestMouseUp_WithoutMouseDown(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventMouseUp, 10, 10))

	log.assertCounts(t, 0, 0, 1)
	if log.targets[EventTapEnd] != btn {
		t.Error("tapend should land on the release element")
	}
}

func TestMouseTap_ModifiersSnapshotted(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	mods := ModifierSnapshot{ShiftKey: true, CtrlKey: true}
	btn.DispatchEvent(NewMouseEvent(EventMouseDown, at(1, 1), mods, MouseButtonLeft, 1))
	btn.DispatchEvent(NewMouseEvent(EventMouseUp, at(1, 1), mods, MouseButtonLeft, 1))

	tap := log.last[EventTap]
	if tap == nil {
		t.Fatal("no tap fired")
	}
	if !tap.ShiftKey || !tap.CtrlKey || tap.AltKey || tap.MetaKey {
		t.Errorf("tap modifiers = %+v, want shift+ctrl only", tap.ModifierSnapshot)
	}
}

func TestTapEventFlags(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})

	var tap *TapEvent
	root.AddListener(EventTap, func(ev Event) { tap = ev.(*TapEvent) }, false)

	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))

	if tap == nil {
		t.Fatal("no tap fired")
	}
	if !tap.Bubbles() || !tap.Composed() || !tap.Cancelable() {
		t.Error("tap events must bubble, compose, and be cancelable")
	}
}

// --- Touch taps ---

func TestTouchTap_SingleFire(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 7, 30, 40))
	btn.DispatchEvent(touchEv(EventTouchEnd, 7, 30, 40))

	log.assertCounts(t, 1, 1, 1)
	if log.targets[EventTap] != btn {
		t.Error("touch tap should land on the touched element")
	}
	if tap := log.last[EventTap]; tap.ModifierSnapshot != (ModifierSnapshot{}) {
		t.Error("touch taps carry no modifiers")
	}
}

func TestTouchTap_SuppressesSyntheticMouse(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	// Physical touch, then the host's synthetic mouse echo.
	btn.DispatchEvent(touchEv(EventTouchStart, 7, 30, 40))
	btn.DispatchEvent(touchEv(EventTouchEnd, 7, 30, 40))
	btn.DispatchEvent(mouseEv(EventMouseDown, 30, 40))
	btn.DispatchEvent(mouseEv(EventMouseUp, 30, 40))

	log.assertCounts(t, 1, 1, 1)
}

func TestTouchTap_SuppressionIsOneShot(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 7, 30, 40))
	btn.DispatchEvent(touchEv(EventTouchEnd, 7, 30, 40))
	btn.DispatchEvent(mouseEv(EventMouseDown, 30, 40))
	btn.DispatchEvent(mouseEv(EventMouseUp, 30, 40))
	// A later real mouse tap goes through normally.
	btn.DispatchEvent(mouseEv(EventMouseDown, 31, 41))
	btn.DispatchEvent(mouseEv(EventMouseUp, 31, 41))

	log.assertCounts(t, 2, 2, 2)
}

func TestTouchMove_CancelsTap(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 7, 30, 40))
	btn.DispatchEvent(touchEv(EventTouchMove, 7, 35, 45))
	btn.DispatchEvent(touchEv(EventTouchEnd, 7, 35, 45))

	log.assertCounts(t, 1, 0, 1)

	// The tracker is clean: a fresh touch tap works.
	btn.DispatchEvent(touchEv(EventTouchStart, 8, 30, 40))
	btn.DispatchEvent(touchEv(EventTouchEnd, 8, 30, 40))
	log.assertCounts(t, 2, 1, 2)
}

func TestTouchEnd_DifferentFinger_NoTapNoSuppression(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 1, 30, 40))
	btn.DispatchEvent(touchEv(EventTouchEnd, 2, 30, 40))

	log.assertCounts(t, 1, 0, 1)

	// No suppression was armed, so a mouse tap still works.
	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))
	log.assertCounts(t, 2, 1, 2)
}

func TestTouchStart_SecondTouchReplacesFirst(t *testing.T) {
	root, track, _, btn := tapTree()
	other := NewElement("div")
	track.AddChild(other)
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 1, 10, 10))
	other.DispatchEvent(touchEv(EventTouchStart, 2, 90, 10))
	other.DispatchEvent(touchEv(EventTouchEnd, 2, 90, 10))

	if got := log.counts[EventTap]; got != 1 {
		t.Errorf("tap count = %d, want 1", got)
	}
	if log.targets[EventTap] != other {
		t.Error("tap should land where the tracked (second) touch ended")
	}
}

func TestTouchEnd_EmptyChangedTouches_Absorbed(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 7, 30, 40))
	btn.DispatchEvent(NewTouchEvent(EventTouchEnd))

	log.assertCounts(t, 1, 0, 0)

	// State was still reset: the next mouse tap is not blocked by a stale
	// current touch.
	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))
	log.assertCounts(t, 2, 1, 1)
}

func TestTouchStart_EmptyChangedTouches_Absorbed(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(NewTouchEvent(EventTouchStart))
	log.assertCounts(t, 0, 0, 0)
}

func TestMouseDown_DuringActiveTouch_Ignored(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(touchEv(EventTouchStart, 7, 30, 40))
	btn.DispatchEvent(mouseEv(EventMouseDown, 30, 40))

	// Only the touch produced a tapstart.
	if got := log.counts[EventTapStart]; got != 1 {
		t.Errorf("tapstart count = %d, want 1", got)
	}
}

// --- Keyboard activation ---

func TestKeyboardActivation_RoleButton(t *testing.T) {
	root, _, lane, _ := tapTree()
	div := NewElement("div")
	div.SetAttr("role", "button")
	lane.AddChild(div)
	Attach(root, Options{})
	log := logGestures(root)

	keyup := NewKeyboardEvent(EventKeyUp, "Enter", ModifierSnapshot{})
	div.DispatchEvent(keyup)

	if got := log.counts[EventTap]; got != 1 {
		t.Errorf("tap count = %d, want 1", got)
	}
	if log.targets[EventTap] != div {
		t.Error("tap should land on the activated element")
	}
	if !keyup.DefaultPrevented() {
		t.Error("the keyup's default action should be prevented")
	}
}

func TestKeyboardActivation_SpaceVariants(t *testing.T) {
	for _, key := range []string{" ", "Spacebar"} {
		t.Run(key, func(t *testing.T) {
			root := NewRoot()
			div := NewElement("div")
			div.SetAttr("role", "button")
			root.AddChild(div)
			Attach(root, Options{})
			log := logGestures(root)

			div.DispatchEvent(NewKeyboardEvent(EventKeyUp, key, ModifierSnapshot{}))

			if got := log.counts[EventTap]; got != 1 {
				t.Errorf("tap count = %d, want 1", got)
			}
		})
	}
}

func TestKeyboardActivation_NativeElementsLeftAlone(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Node
	}{
		{"button", func() *Node {
			el := NewElement("button")
			el.SetAttr("role", "button")
			return el
		}},
		{"anchor", func() *Node {
			el := NewElement("a")
			el.SetAttr("role", "button")
			return el
		}},
		{"input submit", func() *Node {
			el := NewElement("input")
			el.SetAttr("type", "submit")
			el.SetAttr("role", "button")
			return el
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot()
			el := tt.build()
			root.AddChild(el)
			Attach(root, Options{})
			log := logGestures(root)

			keyup := NewKeyboardEvent(EventKeyUp, "Enter", ModifierSnapshot{})
			el.DispatchEvent(keyup)

			if got := log.counts[EventTap]; got != 0 {
				t.Errorf("tap count = %d, want 0 (host activates these natively)", got)
			}
			if keyup.DefaultPrevented() {
				t.Error("the keyup should pass through untouched")
			}
		})
	}
}

func TestKeyboardActivation_RequiresButtonRole(t *testing.T) {
	root := NewRoot()
	div := NewElement("div")
	root.AddChild(div)
	Attach(root, Options{})
	log := logGestures(root)

	div.DispatchEvent(NewKeyboardEvent(EventKeyUp, "Enter", ModifierSnapshot{}))
	div.SetAttr("role", "link")
	div.DispatchEvent(NewKeyboardEvent(EventKeyUp, "Enter", ModifierSnapshot{}))

	if got := log.counts[EventTap]; got != 0 {
		t.Errorf("tap count = %d, want 0", got)
	}
}

func TestKeyboardActivation_OtherKeysIgnored(t *testing.T) {
	root := NewRoot()
	div := NewElement("div")
	div.SetAttr("role", "button")
	root.AddChild(div)
	Attach(root, Options{})
	log := logGestures(root)

	div.DispatchEvent(NewKeyboardEvent(EventKeyUp, "a", ModifierSnapshot{}))
	div.DispatchEvent(NewKeyboardEvent(EventKeyUp, "Escape", ModifierSnapshot{}))

	if got := log.counts[EventTap]; got != 0 {
		t.Errorf("tap count = %d, want 0", got)
	}
}

func TestZeroDetailClick_BecomesTap(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(NewMouseEvent(EventClick, at(3, 4), ModifierSnapshot{AltKey: true}, MouseButtonLeft, 0))

	if got := log.counts[EventTap]; got != 1 {
		t.Errorf("tap count = %d, want 1", got)
	}
	tap := log.last[EventTap]
	if tap.PageX != 3 || tap.PageY != 4 {
		t.Errorf("tap at (%v, %v), want (3, 4)", tap.PageX, tap.PageY)
	}
	if !tap.AltKey {
		t.Error("click-sourced taps carry modifiers")
	}
}

func TestPositiveDetailClick_Ignored(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventClick, 3, 4))

	if got := log.counts[EventTap]; got != 0 {
		t.Errorf("tap count = %d, want 0", got)
	}
}

func TestUnreliableClickDetail_DisablesClickTaps(t *testing.T) {
	root := NewRoot()
	div := NewElement("div")
	div.SetAttr("role", "button")
	root.AddChild(div)
	Attach(root, Options{UnreliableClickDetail: true})
	log := logGestures(root)

	// Direct zero-detail click: ambiguous on this host, ignored.
	div.DispatchEvent(NewMouseEvent(EventClick, at(0, 0), ModifierSnapshot{}, MouseButtonLeft, 0))
	// Keyboard activation still clicks, but the click is likewise ignored.
	div.DispatchEvent(NewKeyboardEvent(EventKeyUp, "Enter", ModifierSnapshot{}))

	if got := log.counts[EventTap]; got != 0 {
		t.Errorf("tap count = %d, want 0", got)
	}
}

// --- Cancellation propagation ---

func TestPreventedTap_CancelsNativeMouseUp(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	root.AddListener(EventTap, func(ev Event) { ev.Base().PreventDefault() }, false)

	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	up := mouseEv(EventMouseUp, 1, 1)
	btn.DispatchEvent(up)

	if !up.DefaultPrevented() {
		t.Error("preventing the tap should cancel the originating mouseup")
	}
}

func TestPreventedTapEnd_CancelsNativeTouchEnd(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	root.AddListener(EventTapEnd, func(ev Event) { ev.Base().PreventDefault() }, false)

	btn.DispatchEvent(touchEv(EventTouchStart, 3, 1, 1))
	end := touchEv(EventTouchEnd, 3, 1, 1)
	btn.DispatchEvent(end)

	if !end.DefaultPrevented() {
		t.Error("preventing the tapend should cancel the originating touchend")
	}
}

func TestPreventedTap_CancelsZeroDetailClick(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	root.AddListener(EventTap, func(ev Event) { ev.Base().PreventDefault() }, false)

	click := NewMouseEvent(EventClick, at(0, 0), ModifierSnapshot{}, MouseButtonLeft, 0)
	btn.DispatchEvent(click)

	if !click.DefaultPrevented() {
		t.Error("preventing the tap should cancel the originating click")
	}
}

func TestUnpreventedTap_LeavesNativeAlone(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})

	up := mouseEv(EventMouseUp, 1, 1)
	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(up)

	if up.DefaultPrevented() {
		t.Error("an unprevented tap should not cancel the native event")
	}
}

// --- Capability gate ---

func TestAttach_Idempotent(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))

	log.assertCounts(t, 1, 1, 1)
}

func TestAttach_ConsumerClaimBlocksType(t *testing.T) {
	root, _, _, btn := tapTree()
	// A consumer already owns tap via the on-event convention.
	root.SetOn(EventTap, func(Event) {})
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))

	// tapstart and tapend were free to claim; tap stays silent.
	log.assertCounts(t, 1, 0, 1)
}

func TestAttach_AllClaimedInstallsNothing(t *testing.T) {
	root, _, _, btn := tapTree()
	root.SetOn(EventTapStart, nil)
	root.SetOn(EventTap, nil)
	root.SetOn(EventTapEnd, nil)
	Attach(root, Options{})
	log := logGestures(root)

	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))
	btn.DispatchEvent(touchEv(EventTouchStart, 1, 1, 1))
	btn.DispatchEvent(touchEv(EventTouchEnd, 1, 1, 1))

	log.assertCounts(t, 0, 0, 0)
}

func TestAttach_NilRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil root")
		}
	}()
	Attach(nil, Options{})
}

func TestOnSlotHandler_ReceivesTaps(t *testing.T) {
	root, _, _, btn := tapTree()
	Attach(root, Options{})

	count := 0
	root.SetOn(EventTap, func(Event) { count++ })

	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))

	if count != 1 {
		t.Errorf("on-slot handler ran %d times, want 1", count)
	}
}

func TestDetach_StopsGesturesAndReleasesClaims(t *testing.T) {
	root, _, _, btn := tapTree()
	r := Attach(root, Options{})
	log := logGestures(root)

	r.Detach()
	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))
	log.assertCounts(t, 0, 0, 0)

	// Claims were released: a fresh attach works again.
	Attach(root, Options{})
	btn.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	btn.DispatchEvent(mouseEv(EventMouseUp, 1, 1))
	log.assertCounts(t, 1, 1, 1)
}

func TestDetach_LeavesConsumerAssignedSlot(t *testing.T) {
	root, _, _, _ := tapTree()
	r := Attach(root, Options{})

	handler := func(Event) {}
	root.SetOn(EventTap, handler)
	r.Detach()

	if fn, ok := root.On(EventTap); !ok || fn == nil {
		t.Error("a consumer-assigned slot should survive detach")
	}
	if _, ok := root.On(EventTapStart); ok {
		t.Error("the inert tapstart claim should be released")
	}
}

// --- Isolation and shadow trees ---

func TestRecognizers_IndependentRoots(t *testing.T) {
	rootA, _, _, btnA := tapTree()
	rootB, _, _, btnB := tapTree()
	Attach(rootA, Options{})
	Attach(rootB, Options{})
	logA := logGestures(rootA)
	logB := logGestures(rootB)

	btnA.DispatchEvent(touchEv(EventTouchStart, 1, 1, 1))
	btnA.DispatchEvent(touchEv(EventTouchEnd, 1, 1, 1))
	btnB.DispatchEvent(mouseEv(EventMouseDown, 2, 2))
	btnB.DispatchEvent(mouseEv(EventMouseUp, 2, 2))

	// The touch on A must not arm suppression on B.
	logA.assertCounts(t, 1, 1, 1)
	logB.assertCounts(t, 1, 1, 1)
}

func TestTap_OnShadowContent(t *testing.T) {
	root := NewRoot()
	host := NewElement("x-widget")
	root.AddChild(host)
	sr := host.AttachShadow()
	inner := NewElement("button")
	sr.AddChild(inner)
	Attach(root, Options{})

	var tapTargetAtRoot *Node
	tapsInside := 0
	root.AddListener(EventTap, func(ev Event) { tapTargetAtRoot = ev.Base().Target() }, false)
	inner.AddListener(EventTap, func(Event) { tapsInside++ }, false)

	inner.DispatchEvent(mouseEv(EventMouseDown, 1, 1))
	inner.DispatchEvent(mouseEv(EventMouseUp, 1, 1))

	if tapsInside != 1 {
		t.Errorf("taps inside shadow = %d, want 1", tapsInside)
	}
	if tapTargetAtRoot != host {
		t.Errorf("tap target at root = %s, want the host (retargeted)", debugNodeName(tapTargetAtRoot))
	}
}

// --- Reconciliation helpers ---

func TestCommonTapTarget(t *testing.T) {
	root, track, lane, btn := tapTree()
	other := NewElement("div")
	track.AddChild(other)

	pathOf := func(n *Node) []*Node { return composedPathFor(n, true) }

	tests := []struct {
		name           string
		press, release []*Node
		want           *Node
	}{
		{"identical paths", pathOf(btn), pathOf(btn), btn},
		{"siblings", pathOf(btn), pathOf(other), track},
		{"depth mismatch", pathOf(btn), pathOf(track), track},
		{"empty press", nil, pathOf(btn), nil},
		{"empty release", pathOf(btn), nil, nil},
		{"root only", pathOf(root), pathOf(root), nil},
		{"shared root not element", []*Node{lane, root}, []*Node{other, root}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commonTapTarget(tt.press, tt.release); got != tt.want {
				t.Errorf("commonTapTarget = %s, want %s", debugNodeName(got), debugNodeName(tt.want))
			}
		})
	}
}
