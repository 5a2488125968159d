package taproot

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML builds a target tree from HTML markup. The returned root's
// children mirror the parsed document body's elements; text, comments, and
// head content are dropped, since gestures only ever target elements. Markup
// cannot express shadow subtrees; attach those afterward with AttachShadow.
func ParseHTML(src string) (*Node, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("taproot: parsing html: %w", err)
	}
	root := NewRoot()
	body := findBody(doc)
	if body == nil {
		return root, nil
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		convertInto(root, c)
	}
	return root, nil
}

// convertInto adds hn and its element descendants under parent.
func convertInto(parent *Node, hn *html.Node) {
	if hn.Type != html.ElementNode {
		return
	}
	el := NewElement(hn.Data)
	for _, a := range hn.Attr {
		el.SetAttr(a.Key, a.Val)
	}
	parent.AddChild(el)
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		convertInto(el, c)
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
