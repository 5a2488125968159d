package taproot

import "strings"

// NodeKind distinguishes tree roles for a Node.
type NodeKind uint8

const (
	KindElement    NodeKind = iota // regular element; the only kind gestures resolve to
	KindRoot                       // top-level tree root (document scope)
	KindShadowRoot                 // root of a shadow subtree attached to a host element
)

// nodeIDCounter is a plain counter (no atomic — taproot is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental tree element. A single flat struct is used for all
// target kinds to avoid interface dispatch on the hot path: elements, roots,
// and shadow roots differ only in Kind and in which fields are populated.
type Node struct {
	// Identity
	ID   uint32
	Kind NodeKind
	Tag  string // element tag name, lowercase; empty for roots

	// Hierarchy
	Parent   *Node
	children []*Node
	shadow   *Node // attached shadow subtree root, nil if none
	host     *Node // owning element when Kind == KindShadowRoot

	// Attributes (element kind only in practice; lazily allocated)
	attrs map[string]string

	// Listeners
	listeners      map[EventType][]listenerEntry
	onEvent        map[EventType]Listener // on-event slots; presence doubles as a capability claim
	nextListenerID uint32

	// Metadata
	UserData any

	// Internal
	disposed bool
}

// NewRoot creates a top-level tree root, the usual attach point for gesture
// recognition.
func NewRoot() *Node {
	return &Node{ID: nextNodeID(), Kind: KindRoot}
}

// NewElement creates an element node. The tag is stored lowercase; selector
// matching and attribute lookups are case-insensitive by construction.
func NewElement(tag string) *Node {
	return &Node{ID: nextNodeID(), Kind: KindElement, Tag: strings.ToLower(tag)}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("taproot: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("taproot: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("taproot: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("taproot: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("taproot: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("taproot: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("taproot: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Root returns the top of this node's tree, following parent links only.
// For nodes inside a shadow subtree that is the shadow root, not the document
// root; use ComposedPath on a dispatched composed event to cross boundaries.
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// --- Attributes ---

// SetAttr sets an attribute. Names are stored lowercase.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[strings.ToLower(name)] = value
}

// Attr returns the attribute value, or "" if the attribute is absent.
func (n *Node) Attr(name string) string {
	return n.attrs[strings.ToLower(name)]
}

// HasAttr reports whether the attribute is present, including present-but-empty.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[strings.ToLower(name)]
	return ok
}

// RemoveAttr deletes an attribute. No-op if absent.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, strings.ToLower(name))
}

// --- Shadow subtrees ---

// AttachShadow creates and returns a shadow root hosted by this element.
// Shadow subtrees behave like open-mode shadow DOM: composed events cross the
// boundary and composed paths include shadow content.
// Panics if this node is not an element or already hosts a shadow root.
func (n *Node) AttachShadow() *Node {
	if n.Kind != KindElement {
		panic("taproot: only elements can host a shadow root")
	}
	if n.shadow != nil {
		panic("taproot: shadow root already attached")
	}
	sr := &Node{ID: nextNodeID(), Kind: KindShadowRoot, host: n}
	n.shadow = sr
	return sr
}

// Shadow returns this element's shadow root, or nil if none is attached.
func (n *Node) Shadow() *Node {
	return n.shadow
}

// Host returns the element hosting this shadow root, or nil for other kinds.
func (n *Node) Host() *Node {
	return n.host
}

// --- Activation ---

// Click dispatches a synthetic zero-detail click on this node, the
// programmatic activation path. Keyboard activation funnels through it.
// Position and modifiers are zero, matching a click no pointer produced.
func (n *Node) Click() {
	ev := NewMouseEvent(EventClick, PositionSnapshot{}, ModifierSnapshot{}, MouseButtonLeft, 0)
	n.DispatchEvent(ev)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants and any shadow subtree.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	if n.shadow != nil {
		n.shadow.host = nil
		n.shadow.dispose()
		n.shadow = nil
	}
	n.host = nil
	n.attrs = nil
	n.listeners = nil
	n.onEvent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// treeParent returns the next node outward: the parent, or the host element
// when n is a shadow root.
func treeParent(n *Node) *Node {
	if n.Kind == KindShadowRoot {
		return n.host
	}
	return n.Parent
}

// isAncestor reports whether candidate is a shadow-including ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = treeParent(p) {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
