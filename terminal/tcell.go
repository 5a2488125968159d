package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/taproot"
)

// pointerButtons are the button bits the translator reacts to. Wheel and
// extended-button bits pass through untouched.
const pointerButtons = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// Config configures a Translator.
type Config struct {
	// Root receives events whose position hits no element. Required.
	Root *taproot.Node

	// HitTest maps a terminal cell to the innermost element at that cell.
	// Nil routes everything to Root.
	HitTest func(x, y int) *taproot.Node

	// Focus returns the element that currently receives keyboard events.
	// Nil (or a nil result) routes key events to Root.
	Focus func() *taproot.Node
}

// Translator turns polled tcell events into native taproot events. Create
// with New and feed it everything the screen's PollEvent returns.
type Translator struct {
	root    *taproot.Node
	hitTest func(x, y int) *taproot.Node
	focus   func() *taproot.Node

	// held is the button state from the previous mouse report; the pressed
	// button and target are captured at press so motion reports cannot
	// change them.
	held        tcell.ButtonMask
	heldButton  taproot.MouseButton
	pressTarget *taproot.Node
}

// New creates a translator for the given tree. Panics if cfg.Root is nil.
func New(cfg Config) *Translator {
	if cfg.Root == nil {
		panic("terminal: nil root")
	}
	return &Translator{
		root:    cfg.Root,
		hitTest: cfg.HitTest,
		focus:   cfg.Focus,
	}
}

// HandleEvent translates one tcell event, dispatching whatever native events
// it implies. It reports whether anything was dispatched; resize, paste, and
// other non-input events are left to the caller.
func (tr *Translator) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return tr.handleMouse(e)
	case *tcell.EventKey:
		return tr.handleKey(e)
	}
	return false
}

func (tr *Translator) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons() & pointerButtons
	mods := modifiers(ev.Modifiers())

	switch {
	case buttons != 0 && tr.held == 0:
		tr.held = buttons
		switch {
		case buttons&tcell.ButtonPrimary != 0:
			tr.heldButton = taproot.MouseButtonLeft
		case buttons&tcell.ButtonSecondary != 0:
			tr.heldButton = taproot.MouseButtonRight
		default:
			tr.heldButton = taproot.MouseButtonMiddle
		}
		target := tr.hit(x, y)
		tr.pressTarget = target
		target.DispatchEvent(taproot.NewMouseEvent(taproot.EventMouseDown,
			position(x, y), mods, tr.heldButton, 1))
		return true

	case buttons == 0 && tr.held != 0:
		tr.held = 0
		target := tr.hit(x, y)
		target.DispatchEvent(taproot.NewMouseEvent(taproot.EventMouseUp,
			position(x, y), mods, tr.heldButton, 1))
		// Primary press and release on the same cell's element is a click,
		// with a real click count so it is not mistaken for a synthetic one.
		if target == tr.pressTarget && tr.heldButton == taproot.MouseButtonLeft {
			target.DispatchEvent(taproot.NewMouseEvent(taproot.EventClick,
				position(x, y), mods, tr.heldButton, 1))
		}
		tr.pressTarget = nil
		return true
	}

	// Motion with unchanged button state, wheel-only reports, and repeated
	// holds carry no transition.
	return false
}

// handleKey dispatches a keyup for the pressed key. Terminals report a key
// press with no separate release, so the press is translated as the release
// transition the tree consumes.
func (tr *Translator) handleKey(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if key == "" {
		return false
	}
	tr.keyTarget().DispatchEvent(taproot.NewKeyboardEvent(
		taproot.EventKeyUp, key, modifiers(ev.Modifiers())))
	return true
}

// keyString maps a tcell key event to its event key string. Printable runes
// map to themselves, which covers the space bar. Keys with no mapping are
// not reported.
func keyString(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		if r := ev.Rune(); r != 0 {
			return string(r)
		}
		return ""
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	}
	return ""
}

func (tr *Translator) keyTarget() *taproot.Node {
	if tr.focus != nil {
		if n := tr.focus(); n != nil {
			return n
		}
	}
	return tr.root
}

func (tr *Translator) hit(x, y int) *taproot.Node {
	if tr.hitTest != nil {
		if n := tr.hitTest(x, y); n != nil {
			return n
		}
	}
	return tr.root
}

func modifiers(m tcell.ModMask) taproot.ModifierSnapshot {
	return taproot.ModifierSnapshot{
		AltKey:   m&tcell.ModAlt != 0,
		CtrlKey:  m&tcell.ModCtrl != 0,
		MetaKey:  m&tcell.ModMeta != 0,
		ShiftKey: m&tcell.ModShift != 0,
	}
}

// position builds a snapshot from one terminal cell. The terminal has a
// single coordinate space, so page, screen, and client coordinates coincide.
func position(x, y int) taproot.PositionSnapshot {
	fx, fy := float64(x), float64(y)
	return taproot.PositionSnapshot{
		PageX: fx, PageY: fy,
		ScreenX: fx, ScreenY: fy,
		ClientX: fx, ClientY: fy,
	}
}
