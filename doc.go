// Package taproot unifies mouse, touch, and keyboard input into a single tap
// gesture vocabulary over an event-target tree.
//
// Hosts expose three inconsistent input channels for one physical action: a
// touch produces touch events and then a synthetic mouse echo, a keyboard
// activation produces a zero-detail click, and a plain mouse press produces
// neither of the above. Taproot reconciles all of it into tapstart, tap, and
// tapend events, so a consumer listening only for tap gets exactly one firing
// per activation regardless of input device.
//
// # Quick start
//
// Build (or load) a target tree, attach a [Recognizer], listen for taps, and
// feed native events in:
//
//	root := taproot.NewRoot()
//	button := taproot.NewElement("div")
//	button.SetAttr("role", "button")
//	root.AddChild(button)
//
//	taproot.Attach(root, taproot.Options{})
//	root.AddListener(taproot.EventTap, func(ev taproot.Event) {
//		tap := ev.(*taproot.TapEvent)
//		fmt.Println("tap at", tap.PageX, tap.PageY)
//	}, false)
//
//	button.DispatchEvent(taproot.NewMouseEvent(taproot.EventMouseDown, pos, mods, taproot.MouseButtonLeft, 1))
//	button.DispatchEvent(taproot.NewMouseEvent(taproot.EventMouseUp, pos, mods, taproot.MouseButtonLeft, 1))
//
// Native events normally come from a host driver rather than hand-built
// dispatch: taproot/ebitendriver polls [Ebitengine] input state, and the
// nested taproot/terminal module translates [tcell] events. [Replay] feeds a
// recorded JSON Lines stream back in.
//
// # Target tree
//
// Every target is a [Node]: elements ([NewElement]), tree roots ([NewRoot]),
// and shadow roots ([Node.AttachShadow]). Events dispatch synchronously in
// capture, target, and bubble phases; composed events cross shadow boundaries
// and are retargeted to the host element for listeners outside the subtree.
// [ParseHTML] builds a tree from markup for tests and fixtures.
//
// # Gesture rules
//
// One tap per activation. A touch that moves stops being a tap. The synthetic
// mouse events hosts emit after a touch are suppressed. Mouse press and
// release paths are reconciled to the innermost element both agree on, so a
// press dragged across siblings taps their shared container and a press
// dragged off entirely taps nothing. Enter or Space released on an element
// with role=button (that is not natively activatable) becomes a programmatic
// click and then a tap. Preventing a tap's default propagates cancellation to
// the native event that produced it.
//
// Attaching twice is safe: each gesture type is claimed through the root's
// on-event slots, and a later [Attach] leaves claimed types with their owner.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
package taproot
