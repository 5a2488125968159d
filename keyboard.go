package taproot

// Keyboard activation: hosts report programmatic and keyboard-driven clicks
// with a zero click count, which the recognizer converts into taps. Elements
// that only carry an accessible button role get the conversion the other way
// around: Enter or Space releases on them are turned into programmatic
// clicks, mirroring what hosts do for real buttons.

// nativeActivationSelector matches elements the host already activates on
// Enter or Space; simulating a click for these would activate them twice.
const nativeActivationSelector = "button, a, input[type=button], input[type=submit]"

// click converts zero-detail clicks into taps. Real pointer clicks carry a
// positive click count and are left to the mouse tracker. Hosts flagged with
// UnreliableClickDetail report zero for every click, so the signal is
// meaningless there and ignored entirely.
func (r *Recognizer) click(ev Event) {
	me, ok := ev.(*MouseEvent)
	if !ok {
		return
	}
	if !r.emitTap || r.unreliableClickDetail || me.Detail != 0 {
		return
	}
	path := me.ComposedPath()
	if len(path) == 0 {
		return
	}
	r.dispatchTap(EventTap, path[0], mouseSource(me))
}

// keyUp activates role=button elements on Enter and Space the way hosts
// activate native buttons: the key's default action is prevented and a
// programmatic click is issued, which the click handler above turns into a
// tap. Gated on tap ownership so only one recognizer per root simulates the
// click.
func (r *Recognizer) keyUp(ev Event) {
	ke, ok := ev.(*KeyboardEvent)
	if !ok {
		return
	}
	if !r.emitTap {
		return
	}
	switch ke.Key {
	case "Enter", " ", "Spacebar":
	default:
		return
	}
	path := ke.ComposedPath()
	if len(path) == 0 {
		return
	}
	el := path[0]
	if el.Kind != KindElement || el.Attr("role") != "button" {
		return
	}
	if r.matches(el, nativeActivationSelector) {
		return
	}
	debugLogf("keyup %q activates %s", ke.Key, debugNodeName(el))
	ke.PreventDefault()
	el.Click()
}
