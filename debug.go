package taproot

import (
	"fmt"
	"os"
)

// SetDebugMode enables or disables debug mode. When enabled, gesture state
// transitions are logged to stderr, disposed-node access panics, and tree
// depth and child count warnings are printed.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// globalDebug is checked by node operations and the gesture trackers, which
// carry no owner pointer to hang a flag on. Package level, no sync — taproot
// is single-threaded.
var globalDebug bool

// debugLogf prints one diagnostic line to stderr when debug mode is on.
func debugLogf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[taproot] "+format+"\n", args...)
}

// debugNodeName renders a node for log lines: tag plus ID, or the kind when
// the node has no tag.
func debugNodeName(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	tag := n.Tag
	if tag == "" {
		switch n.Kind {
		case KindRoot:
			tag = "#root"
		case KindShadowRoot:
			tag = "#shadow"
		}
	}
	return fmt.Sprintf("%s(%d)", tag, n.ID)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("taproot debug: %s on disposed node %q (ID was %d)", op, n.Tag, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = treeParent(p) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[taproot] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Tag)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[taproot] warning: node %q has %d children (threshold %d)\n",
			n.Tag, len(n.children), debugMaxChildCount)
	}
}
