// Package terminal feeds tcell terminal input into a taproot target tree.
//
// The primary type is [Translator], which consumes polled [tcell] events and
// dispatches the native mouse and keyboard events a gesture recognizer
// consumes. Terminal mouse reports are state snapshots, so the translator
// derives press and release transitions from consecutive reports, the same
// way a GUI driver derives them from frame polling.
//
// Usage:
//
//	tr := terminal.New(terminal.Config{Root: root, HitTest: hitTest})
//	for {
//		tr.HandleEvent(screen.PollEvent())
//	}
//
// [tcell]: https://github.com/gdamore/tcell
package terminal
