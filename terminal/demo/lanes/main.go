// Lanes demonstrates the gesture recognizer in a terminal. The screen is
// split into three lanes; click one to tap it, or cycle focus with Tab and
// activate with Enter or Space. Press q to quit. Requires a terminal with
// mouse reporting.
package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/taproot"
	"github.com/phanxgames/taproot/terminal"
)

type lane struct {
	node    *taproot.Node
	taps    int
	pressed bool
	style   tcell.Style
}

type app struct {
	screen  tcell.Screen
	root    *taproot.Node
	track   taproot.Track
	lanes   []*lane
	focused int
	readout string
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	a := newApp(screen)
	a.run()
}

func newApp(screen tcell.Screen) *app {
	a := &app{
		screen:  screen,
		root:    taproot.NewRoot(),
		focused: -1,
		readout: "tap a lane",
	}

	styles := []tcell.Style{
		tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite),
		tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite),
		tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite),
	}
	for i, style := range styles {
		l := &lane{node: taproot.NewElement("div"), style: style}
		l.node.SetAttr("id", fmt.Sprintf("lane%d", i))
		l.node.SetAttr("role", "button")
		a.root.AddChild(l.node)
		a.lanes = append(a.lanes, l)
	}
	a.layout()

	taproot.Attach(a.root, taproot.Options{})
	for i, l := range a.lanes {
		l.node.AddListener(taproot.EventTapStart, func(ev taproot.Event) { l.pressed = true }, false)
		l.node.AddListener(taproot.EventTapEnd, func(ev taproot.Event) { l.pressed = false }, false)
		l.node.AddListener(taproot.EventTap, func(ev taproot.Event) {
			l.taps++
			a.focused = i
			tap := ev.(*taproot.TapEvent)
			a.readout = fmt.Sprintf("tap: lane %d at %.0f%% across", i, a.track.Fraction(tap.PageX)*100)
		}, false)
	}
	a.root.AddListener(taproot.EventKeyUp, func(ev taproot.Event) {
		if ev.(*taproot.KeyboardEvent).Key == "Tab" {
			a.focused = (a.focused + 1) % len(a.lanes)
		}
	}, false)

	return a
}

// layout sizes the track to the screen, reserving the bottom row for the
// readout.
func (a *app) layout() {
	w, h := a.screen.Size()
	a.track = taproot.Track{
		Bounds: taproot.Rect{Width: float64(w), Height: float64(h - 1)},
		Lanes:  len(a.lanes),
	}
}

func (a *app) run() {
	tr := terminal.New(terminal.Config{
		Root: a.root,
		HitTest: func(x, y int) *taproot.Node {
			if i, ok := a.track.LaneAt(float64(x), float64(y)); ok {
				return a.lanes[i].node
			}
			return nil
		},
		Focus: func() *taproot.Node {
			if a.focused < 0 {
				return nil
			}
			return a.lanes[a.focused].node
		},
	})

	for {
		a.draw()
		ev := a.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			a.layout()
			a.screen.Sync()
			continue
		case *tcell.EventKey:
			if e.Key() == tcell.KeyCtrlC || (e.Key() == tcell.KeyRune && e.Rune() == 'q') {
				return
			}
		}
		tr.HandleEvent(ev)
	}
}

func (a *app) draw() {
	a.screen.Clear()
	for i, l := range a.lanes {
		r := a.track.LaneRect(i)
		style := l.style
		if l.pressed {
			style = style.Reverse(true)
		}
		for y := int(r.Y); y < int(r.Y+r.Height); y++ {
			for x := int(r.X); x < int(r.X+r.Width); x++ {
				a.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		label := fmt.Sprintf(" lane %d — taps: %d ", i, l.taps)
		if i == a.focused {
			label += "[focus] "
		}
		puts(a.screen, int(r.X)+2, int(r.Y+r.Height/2), label, style.Bold(true))
	}
	_, h := a.screen.Size()
	puts(a.screen, 0, h-1, a.readout+"  (Tab: focus, Enter: tap, q: quit)", tcell.StyleDefault)
	a.screen.Show()
}

func puts(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
