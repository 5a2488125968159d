package taproot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Recording turns manual input scenarios into data: a Recorder serializes the
// native events crossing a tree as JSON Lines, one object per event, and
// Replay dispatches such a stream back onto a tree. Targets are addressed by
// child-index paths from the root ("0/2/1"), with "s" marking a descent into
// an element's shadow root, so a recording replays on any structurally
// identical tree.

// recordedTypes is the native event set a Recorder captures, the same set the
// recognizer consumes.
var recordedTypes = []EventType{
	EventMouseDown, EventMouseUp, EventClick,
	EventTouchStart, EventTouchMove, EventTouchEnd,
	EventKeyUp,
}

// Recorder writes native events crossing a root to w until Close.
type Recorder struct {
	root    *Node
	w       io.Writer
	handles []ListenerHandle
	err     error // first write error; reported by Close
}

// Record starts recording the native event stream crossing root.
// Panics if root is nil or w is nil.
func Record(root *Node, w io.Writer) *Recorder {
	if root == nil {
		panic("taproot: record on nil root")
	}
	if w == nil {
		panic("taproot: record to nil writer")
	}
	r := &Recorder{root: root, w: w}
	for _, typ := range recordedTypes {
		r.handles = append(r.handles, root.AddListener(typ, r.capture, true))
	}
	return r
}

// Close stops recording and reports the first write error, if any.
func (r *Recorder) Close() error {
	for _, h := range r.handles {
		h.Remove()
	}
	r.handles = nil
	return r.err
}

func (r *Recorder) capture(ev Event) {
	line, ok := r.encode(ev)
	if !ok {
		return
	}
	if _, err := io.WriteString(r.w, line+"\n"); err != nil && r.err == nil {
		r.err = err
	}
}

// encode renders one event as a JSON line. Events whose true target does not
// sit under the recorder's root cannot be addressed and are skipped.
func (r *Recorder) encode(ev Event) (string, bool) {
	b := ev.Base()
	target := b.ComposedPath()[0]
	path, ok := nodeIndexPath(r.root, target)
	if !ok {
		debugLogf("record: target %s not under root, skipped", debugNodeName(target))
		return "", false
	}
	line, _ := sjson.Set("", "type", string(b.Type()))
	line, _ = sjson.Set(line, "path", path)

	switch e := ev.(type) {
	case *MouseEvent:
		line, _ = sjson.Set(line, "button", int(e.Button))
		line, _ = sjson.Set(line, "detail", e.Detail)
		line = encodePosition(line, "", e.PositionSnapshot)
		line = encodeModifiers(line, e.ModifierSnapshot)
	case *TouchEvent:
		for i, t := range e.ChangedTouches {
			prefix := "changedTouches." + strconv.Itoa(i)
			line, _ = sjson.Set(line, prefix+".identifier", t.Identifier)
			line = encodePosition(line, prefix+".", t.PositionSnapshot)
		}
	case *KeyboardEvent:
		line, _ = sjson.Set(line, "key", e.Key)
		line = encodeModifiers(line, e.ModifierSnapshot)
	default:
		debugLogf("record: unknown event shape for %q, skipped", b.Type())
		return "", false
	}
	return line, true
}

func encodePosition(line, prefix string, pos PositionSnapshot) string {
	line, _ = sjson.Set(line, prefix+"pageX", pos.PageX)
	line, _ = sjson.Set(line, prefix+"pageY", pos.PageY)
	line, _ = sjson.Set(line, prefix+"screenX", pos.ScreenX)
	line, _ = sjson.Set(line, prefix+"screenY", pos.ScreenY)
	line, _ = sjson.Set(line, prefix+"clientX", pos.ClientX)
	line, _ = sjson.Set(line, prefix+"clientY", pos.ClientY)
	return line
}

// encodeModifiers writes only the held modifiers; absent keys read back false.
func encodeModifiers(line string, mods ModifierSnapshot) string {
	if mods.AltKey {
		line, _ = sjson.Set(line, "altKey", true)
	}
	if mods.CtrlKey {
		line, _ = sjson.Set(line, "ctrlKey", true)
	}
	if mods.MetaKey {
		line, _ = sjson.Set(line, "metaKey", true)
	}
	if mods.ShiftKey {
		line, _ = sjson.Set(line, "shiftKey", true)
	}
	return line
}

// Replay dispatches a recorded stream onto root, in order, and returns how
// many events it dispatched. It stops at the first line it cannot decode or
// address.
func Replay(root *Node, data []byte) (int, error) {
	if root == nil {
		panic("taproot: replay on nil root")
	}
	count := 0
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !gjson.Valid(line) {
			return count, fmt.Errorf("taproot: replay line %d: invalid JSON", i+1)
		}
		ev, err := decodeLine(line)
		if err != nil {
			return count, fmt.Errorf("taproot: replay line %d: %w", i+1, err)
		}
		target := nodeAtIndexPath(root, gjson.Get(line, "path").String())
		if target == nil {
			return count, fmt.Errorf("taproot: replay line %d: path %q does not resolve", i+1, gjson.Get(line, "path").String())
		}
		target.DispatchEvent(ev)
		count++
	}
	return count, nil
}

func decodeLine(line string) (Event, error) {
	typ := EventType(gjson.Get(line, "type").String())
	switch typ {
	case EventMouseDown, EventMouseUp, EventClick:
		return NewMouseEvent(typ,
			decodePosition(line, ""),
			decodeModifiers(line),
			MouseButton(gjson.Get(line, "button").Int()),
			int(gjson.Get(line, "detail").Int()),
		), nil
	case EventTouchStart, EventTouchMove, EventTouchEnd:
		var touches []Touch
		for _, raw := range gjson.Get(line, "changedTouches").Array() {
			touches = append(touches, Touch{
				Identifier:       int(raw.Get("identifier").Int()),
				PositionSnapshot: decodePositionResult(raw),
			})
		}
		return NewTouchEvent(typ, touches...), nil
	case EventKeyUp:
		return NewKeyboardEvent(typ, gjson.Get(line, "key").String(), decodeModifiers(line)), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", typ)
	}
}

func decodePosition(line, prefix string) PositionSnapshot {
	return PositionSnapshot{
		PageX:   gjson.Get(line, prefix+"pageX").Float(),
		PageY:   gjson.Get(line, prefix+"pageY").Float(),
		ScreenX: gjson.Get(line, prefix+"screenX").Float(),
		ScreenY: gjson.Get(line, prefix+"screenY").Float(),
		ClientX: gjson.Get(line, prefix+"clientX").Float(),
		ClientY: gjson.Get(line, prefix+"clientY").Float(),
	}
}

func decodePositionResult(raw gjson.Result) PositionSnapshot {
	return PositionSnapshot{
		PageX:   raw.Get("pageX").Float(),
		PageY:   raw.Get("pageY").Float(),
		ScreenX: raw.Get("screenX").Float(),
		ScreenY: raw.Get("screenY").Float(),
		ClientX: raw.Get("clientX").Float(),
		ClientY: raw.Get("clientY").Float(),
	}
}

func decodeModifiers(line string) ModifierSnapshot {
	return ModifierSnapshot{
		AltKey:   gjson.Get(line, "altKey").Bool(),
		CtrlKey:  gjson.Get(line, "ctrlKey").Bool(),
		MetaKey:  gjson.Get(line, "metaKey").Bool(),
		ShiftKey: gjson.Get(line, "shiftKey").Bool(),
	}
}

// --- Index paths ---

// nodeIndexPath returns the child-index path from root down to n, or ok false
// when n does not sit under root. The root itself is the empty path.
func nodeIndexPath(root, n *Node) (string, bool) {
	var segments []string
	for cur := n; cur != root; {
		switch {
		case cur.Kind == KindShadowRoot && cur.host != nil:
			segments = append(segments, "s")
			cur = cur.host
		case cur.Parent != nil:
			idx := childIndex(cur.Parent, cur)
			if idx < 0 {
				return "", false
			}
			segments = append(segments, strconv.Itoa(idx))
			cur = cur.Parent
		default:
			return "", false
		}
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/"), true
}

// nodeAtIndexPath resolves a child-index path against root. Nil when any
// segment is out of range or malformed.
func nodeAtIndexPath(root *Node, path string) *Node {
	cur := root
	if path == "" {
		return cur
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "s" {
			if cur.shadow == nil {
				return nil
			}
			cur = cur.shadow
			continue
		}
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(cur.children) {
			return nil
		}
		cur = cur.children[idx]
	}
	return cur
}

func childIndex(parent, child *Node) int {
	for i, c := range parent.children {
		if c == child {
			return i
		}
	}
	return -1
}
