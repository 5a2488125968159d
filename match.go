package taproot

import (
	"fmt"
	"strings"
)

// MatchFunc is the selector capability: it reports whether an element matches
// a selector list. The built-in Matches covers the grammar the recognizer
// needs; hosts embedding a fuller engine can inject their own through
// Options.Matches.
type MatchFunc func(el *Node, selector string) bool

// simpleSelector is one compound from a selector list:
// tag, #id, .class, [attr], and [attr=value] parts, all of which must hold.
type simpleSelector struct {
	tag     string // "" or "*" match any tag
	id      string
	classes []string
	attrs   []attrCond
}

type attrCond struct {
	name     string
	value    string
	hasValue bool
}

// selectorCache memoizes parsed selector lists keyed by source text.
// Selector strings are few and static in practice; 256 is generous.
var selectorCache = NewCache[string, []simpleSelector](0, 256)

// Matches reports whether el matches any compound in a comma-separated
// selector list. Supported syntax per compound: an optional tag or *,
// then any number of #id, .class, [attr], [attr=value] (value may be quoted).
// Unparseable selectors match nothing.
func Matches(el *Node, selector string) bool {
	if el == nil || el.Kind != KindElement {
		return false
	}
	sels, ok := selectorCache.Get(selector)
	if !ok {
		var err error
		sels, err = parseSelectorList(selector)
		if err != nil {
			debugLogf("matcher: %v", err)
			sels = nil
		}
		selectorCache.Put(selector, sels)
	}
	for _, s := range sels {
		if s.matches(el) {
			return true
		}
	}
	return false
}

// Find returns the first node, depth-first starting at root itself, matching
// the selector list. Shadow subtrees are not descended into, matching
// platform query behavior. Returns nil when nothing matches.
func Find(root *Node, selector string) *Node {
	if root == nil {
		return nil
	}
	if Matches(root, selector) {
		return root
	}
	for _, child := range root.Children() {
		if n := Find(child, selector); n != nil {
			return n
		}
	}
	return nil
}

func (s simpleSelector) matches(el *Node) bool {
	if s.tag != "" && s.tag != "*" && el.Tag != s.tag {
		return false
	}
	if s.id != "" && el.Attr("id") != s.id {
		return false
	}
	for _, class := range s.classes {
		if !hasClass(el, class) {
			return false
		}
	}
	for _, cond := range s.attrs {
		if cond.hasValue {
			if el.Attr(cond.name) != cond.value {
				return false
			}
		} else if !el.HasAttr(cond.name) {
			return false
		}
	}
	return true
}

// hasClass reports whether class appears in el's whitespace-separated class
// attribute.
func hasClass(el *Node, class string) bool {
	for _, c := range strings.Fields(el.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// --- Parsing ---

func parseSelectorList(src string) ([]simpleSelector, error) {
	parts := strings.Split(src, ",")
	sels := make([]simpleSelector, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("taproot: empty compound in selector %q", src)
		}
		sel, err := parseCompound(part)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

func parseCompound(src string) (simpleSelector, error) {
	var sel simpleSelector
	i := 0
	if i < len(src) && src[i] == '*' {
		sel.tag = "*"
		i++
	} else {
		start := i
		for i < len(src) && isNameByte(src[i]) {
			i++
		}
		sel.tag = strings.ToLower(src[start:i])
	}
	for i < len(src) {
		switch src[i] {
		case '#':
			name, next, err := scanName(src, i+1)
			if err != nil {
				return sel, err
			}
			sel.id = name
			i = next
		case '.':
			name, next, err := scanName(src, i+1)
			if err != nil {
				return sel, err
			}
			sel.classes = append(sel.classes, name)
			i = next
		case '[':
			name, next, err := scanName(src, i+1)
			if err != nil {
				return sel, err
			}
			cond := attrCond{name: strings.ToLower(name)}
			i = next
			if i < len(src) && src[i] == '=' {
				value, valNext, err := scanValue(src, i+1)
				if err != nil {
					return sel, err
				}
				cond.value = value
				cond.hasValue = true
				i = valNext
			}
			if i >= len(src) || src[i] != ']' {
				return sel, fmt.Errorf("taproot: selector %q: missing ]", src)
			}
			i++
			sel.attrs = append(sel.attrs, cond)
		default:
			return sel, fmt.Errorf("taproot: selector %q: unexpected %q", src, src[i:])
		}
	}
	if sel.tag == "" && sel.id == "" && len(sel.classes) == 0 && len(sel.attrs) == 0 {
		return sel, fmt.Errorf("taproot: selector %q: empty compound", src)
	}
	return sel, nil
}

// scanName reads a selector name starting at i and returns it with the index
// past its end. Errors on an empty name.
func scanName(src string, i int) (string, int, error) {
	start := i
	for i < len(src) && isNameByte(src[i]) {
		i++
	}
	if i == start {
		return "", i, fmt.Errorf("taproot: selector %q: expected name at offset %d", src, start)
	}
	return src[start:i], i, nil
}

// scanValue reads an attribute value, bare or quoted, starting at i.
func scanValue(src string, i int) (string, int, error) {
	if i < len(src) && (src[i] == '\'' || src[i] == '"') {
		quote := src[i]
		i++
		start := i
		for i < len(src) && src[i] != quote {
			i++
		}
		if i >= len(src) {
			return "", i, fmt.Errorf("taproot: selector %q: unterminated quote", src)
		}
		return src[start:i], i + 1, nil
	}
	start := i
	for i < len(src) && src[i] != ']' {
		i++
	}
	return src[start:i], i, nil
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' ||
		b == '-' || b == '_'
}
