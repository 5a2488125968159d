// Package ebitendriver feeds [Ebitengine] input into a taproot target tree.
//
// Ebitengine exposes polled input state, not events. A Driver samples that
// state once per Update call and dispatches the native mouse, touch, and
// keyboard events the gesture recognizer consumes, deriving press and release
// transitions from frame-to-frame differences. The tree, recognizer, and
// listeners need no Ebitengine awareness at all.
//
//	driver := ebitendriver.New(ebitendriver.Config{
//		Root:    root,
//		HitTest: func(x, y float64) *taproot.Node { return hud.ElementAt(x, y) },
//	})
//
//	func (g *Game) Update() error {
//		driver.Update()
//		return nil
//	}
//
// [Ebitengine]: https://ebitengine.org
package ebitendriver

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/taproot"
)

// maxTouches bounds how many simultaneous touches the driver tracks. Extra
// touches are ignored until a slot frees up.
const maxTouches = 10

// Config configures a Driver.
type Config struct {
	// Root receives events whose position hits no element. Required.
	Root *taproot.Node

	// HitTest maps a screen position to the innermost element at that point.
	// The driver dispatches press events on what it returns; geometry is the
	// consumer's concern, so there is no default. Nil routes everything to
	// Root.
	HitTest func(x, y float64) *taproot.Node

	// Focus returns the element that currently receives keyboard events.
	// Nil (or a nil result) routes key events to Root.
	Focus func() *taproot.Node

	// MoveTolerance is how far a touch may drift from its start, in pixels,
	// before the driver reports touchmove. Zero reports every movement.
	// Touchscreens jitter; a couple of pixels keeps taps tappable.
	MoveTolerance float64
}

// touchSlot tracks one active touch between frames.
type touchSlot struct {
	used           bool
	id             int
	target         *taproot.Node // touchstart target; later touch events stay on it
	startX, startY float64
	lastX, lastY   float64
	moved          bool
}

// Driver polls Ebitengine once per frame and dispatches native events into a
// target tree. Create with New, call Update from the game loop.
type Driver struct {
	root          *taproot.Node
	hitTest       func(x, y float64) *taproot.Node
	focus         func() *taproot.Node
	moveTolerance float64

	// Mouse state. One pointer; the button is captured at press so a second
	// button pressed mid-interaction cannot change it.
	mouseDown   bool
	mouseButton taproot.MouseButton
	pressTarget *taproot.Node

	touches  [maxTouches]touchSlot
	prevKeys []string

	// Scratch buffers reused across frames.
	touchIDBuf []ebiten.TouchID
	keyBuf     []ebiten.Key
	touchBuf   []touchSample
	keyNameBuf []string
}

// New creates a driver for the given tree. Panics if cfg.Root is nil.
func New(cfg Config) *Driver {
	if cfg.Root == nil {
		panic("ebitendriver: nil root")
	}
	return &Driver{
		root:          cfg.Root,
		hitTest:       cfg.HitTest,
		focus:         cfg.Focus,
		moveTolerance: cfg.MoveTolerance,
	}
}

// Update samples Ebitengine's input state and dispatches whatever native
// events the state transitions imply. Call once per game Update.
func (d *Driver) Update() {
	d.advance(d.poll())
}

// --- Sampling ---

// frameSample is one frame's worth of polled input state. advance consumes
// samples, so tests can feed transitions without an Ebitengine loop.
type frameSample struct {
	cursorX, cursorY float64
	buttons          [3]bool // left, right, middle
	touches          []touchSample
	keys             []string // held keys that map to a known key name
	mods             taproot.ModifierSnapshot
}

type touchSample struct {
	id   int
	x, y float64
}

func (d *Driver) poll() frameSample {
	var s frameSample

	mx, my := ebiten.CursorPosition()
	s.cursorX, s.cursorY = float64(mx), float64(my)
	s.buttons[0] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.buttons[1] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.buttons[2] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	d.touchIDBuf = ebiten.AppendTouchIDs(d.touchIDBuf[:0])
	s.touches = d.touchBuf[:0]
	for _, tid := range d.touchIDBuf {
		tx, ty := ebiten.TouchPosition(tid)
		s.touches = append(s.touches, touchSample{id: int(tid), x: float64(tx), y: float64(ty)})
	}
	d.touchBuf = s.touches

	d.keyBuf = inpututil.AppendPressedKeys(d.keyBuf[:0])
	s.keys = d.keyNameBuf[:0]
	for _, k := range d.keyBuf {
		if name := keyName(k); name != "" {
			s.keys = append(s.keys, name)
		}
	}
	d.keyNameBuf = s.keys

	s.mods = readModifiers()
	return s
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() taproot.ModifierSnapshot {
	var mods taproot.ModifierSnapshot
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods.ShiftKey = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods.CtrlKey = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods.AltKey = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods.MetaKey = true
	}
	return mods
}

// keyName maps an Ebitengine key to its event key string. Keys with no
// mapping are not reported.
func keyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeyEnter:
		return "Enter"
	case ebiten.KeySpace:
		return " "
	case ebiten.KeyEscape:
		return "Escape"
	case ebiten.KeyTab:
		return "Tab"
	case ebiten.KeyBackspace:
		return "Backspace"
	case ebiten.KeyArrowUp:
		return "ArrowUp"
	case ebiten.KeyArrowDown:
		return "ArrowDown"
	case ebiten.KeyArrowLeft:
		return "ArrowLeft"
	case ebiten.KeyArrowRight:
		return "ArrowRight"
	}
	return ""
}

// --- Transitions ---

func (d *Driver) advance(s frameSample) {
	d.advanceMouse(s)
	d.advanceTouches(s)
	d.advanceKeys(s)
}

func (d *Driver) advanceMouse(s frameSample) {
	pressed := s.buttons[0] || s.buttons[1] || s.buttons[2]

	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		switch {
		case s.buttons[0]:
			d.mouseButton = taproot.MouseButtonLeft
		case s.buttons[1]:
			d.mouseButton = taproot.MouseButtonRight
		default:
			d.mouseButton = taproot.MouseButtonMiddle
		}
		target := d.hit(s.cursorX, s.cursorY)
		d.pressTarget = target
		target.DispatchEvent(taproot.NewMouseEvent(taproot.EventMouseDown,
			position(s.cursorX, s.cursorY), s.mods, d.mouseButton, 1))

	case !pressed && d.mouseDown:
		d.mouseDown = false
		target := d.hit(s.cursorX, s.cursorY)
		target.DispatchEvent(taproot.NewMouseEvent(taproot.EventMouseUp,
			position(s.cursorX, s.cursorY), s.mods, d.mouseButton, 1))
		// Primary-button press and release on the same element is a click,
		// with a real click count so it is not mistaken for a synthetic one.
		if target == d.pressTarget && d.mouseButton == taproot.MouseButtonLeft {
			target.DispatchEvent(taproot.NewMouseEvent(taproot.EventClick,
				position(s.cursorX, s.cursorY), s.mods, d.mouseButton, 1))
		}
		d.pressTarget = nil
	}
}

func (d *Driver) advanceTouches(s frameSample) {
	var seen [maxTouches]bool
	for _, t := range s.touches {
		slot, fresh := d.touchSlotFor(t.id)
		if slot < 0 {
			continue
		}
		seen[slot] = true
		ts := &d.touches[slot]

		if fresh {
			ts.startX, ts.startY = t.x, t.y
			ts.lastX, ts.lastY = t.x, t.y
			ts.moved = false
			ts.target = d.hit(t.x, t.y)
			ts.target.DispatchEvent(taproot.NewTouchEvent(taproot.EventTouchStart,
				taproot.Touch{Identifier: t.id, PositionSnapshot: position(t.x, t.y)}))
			continue
		}

		if t.x != ts.lastX || t.y != ts.lastY {
			if !ts.moved {
				dx, dy := t.x-ts.startX, t.y-ts.startY
				if math.Sqrt(dx*dx+dy*dy) > d.moveTolerance {
					ts.moved = true
				}
			}
			if ts.moved {
				ts.target.DispatchEvent(taproot.NewTouchEvent(taproot.EventTouchMove,
					taproot.Touch{Identifier: t.id, PositionSnapshot: position(t.x, t.y)}))
			}
			ts.lastX, ts.lastY = t.x, t.y
		}
	}

	// Touches absent from the sample have lifted. The touchend stays on the
	// touchstart target at the last known position.
	for i := range d.touches {
		ts := &d.touches[i]
		if ts.used && !seen[i] {
			ts.target.DispatchEvent(taproot.NewTouchEvent(taproot.EventTouchEnd,
				taproot.Touch{Identifier: ts.id, PositionSnapshot: position(ts.lastX, ts.lastY)}))
			*ts = touchSlot{}
		}
	}
}

// touchSlotFor returns the slot tracking id, allocating one when the id is
// new. fresh reports an allocation. Returns -1 when every slot is busy.
func (d *Driver) touchSlotFor(id int) (slot int, fresh bool) {
	free := -1
	for i := range d.touches {
		if d.touches[i].used && d.touches[i].id == id {
			return i, false
		}
		if !d.touches[i].used && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return -1, false
	}
	d.touches[free].used = true
	d.touches[free].id = id
	return free, true
}

func (d *Driver) advanceKeys(s frameSample) {
	for _, key := range d.prevKeys {
		if !containsKey(s.keys, key) {
			d.keyTarget().DispatchEvent(taproot.NewKeyboardEvent(taproot.EventKeyUp, key, s.mods))
		}
	}
	d.prevKeys = append(d.prevKeys[:0], s.keys...)
}

func (d *Driver) keyTarget() *taproot.Node {
	if d.focus != nil {
		if n := d.focus(); n != nil {
			return n
		}
	}
	return d.root
}

func (d *Driver) hit(x, y float64) *taproot.Node {
	if d.hitTest != nil {
		if n := d.hitTest(x, y); n != nil {
			return n
		}
	}
	return d.root
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// position builds a snapshot from one coordinate pair. The driver has a
// single coordinate space, so page, screen, and client coordinates coincide.
func position(x, y float64) taproot.PositionSnapshot {
	return taproot.PositionSnapshot{
		PageX: x, PageY: y,
		ScreenX: x, ScreenY: y,
		ClientX: x, ClientY: y,
	}
}
