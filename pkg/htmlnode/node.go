package htmlnode

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abdullah/dombili/pkg/dom"
	"github.com/abdullah/dombili/pkg/selector"
)

// Node wraps a single *html.Node and implements the dom capability set.
type Node struct {
	n *html.Node
}

// WrapNode wraps an existing *html.Node. A nil argument yields an untyped
// nil, never a typed nil inside the interface.
func WrapNode(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// Unwrap returns the underlying *html.Node.
func (x *Node) Unwrap() *html.Node {
	if x == nil {
		return nil
	}
	return x.n
}

// unwrapper is satisfied by every type in this package that carries an
// underlying *html.Node, including Document via its embedded *Node.
type unwrapper interface {
	Unwrap() *html.Node
}

// unwrap extracts the underlying *html.Node from a dom.Node produced by
// this package. Foreign hosts yield nil.
func unwrap(v dom.Node) *html.Node {
	u, ok := v.(unwrapper)
	if !ok {
		return nil
	}
	return u.Unwrap()
}

// Structural links

func (x *Node) ParentNode() dom.Node {
	if x == nil || x.n == nil {
		return nil
	}
	return WrapNode(x.n.Parent)
}

func (x *Node) NextSibling() dom.Node {
	if x == nil || x.n == nil {
		return nil
	}
	return WrapNode(x.n.NextSibling)
}

func (x *Node) FirstChild() dom.Node {
	if x == nil || x.n == nil {
		return nil
	}
	return WrapNode(x.n.FirstChild)
}

// Insertion. The receiver acts as the parent for all four operations.

// InsertBefore inserts v before ref among the receiver's children. A nil or
// foreign ref appends at the end; an attached v is detached first, per host
// tree semantics.
func (x *Node) InsertBefore(v, ref dom.Node) {
	if x == nil || x.n == nil {
		return
	}
	child := unwrap(v)
	if child == nil {
		return
	}
	detach(child)
	old := unwrap(ref)
	if old == nil || old.Parent != x.n {
		x.n.AppendChild(child)
		return
	}
	x.n.InsertBefore(child, old)
}

// AppendChild appends v as the receiver's last child.
func (x *Node) AppendChild(v dom.Node) {
	x.InsertBefore(v, nil)
}

// ReplaceChild replaces old with v. No-op when old is not a child of the
// receiver.
func (x *Node) ReplaceChild(v, oldNode dom.Node) {
	if x == nil || x.n == nil {
		return
	}
	child := unwrap(v)
	old := unwrap(oldNode)
	if child == nil || old == nil || old.Parent != x.n {
		return
	}
	detach(child)
	x.n.InsertBefore(child, old)
	x.n.RemoveChild(old)
}

// RemoveChild detaches v from the receiver. No-op when v is not a child.
func (x *Node) RemoveChild(v dom.Node) {
	if x == nil || x.n == nil {
		return
	}
	child := unwrap(v)
	if child == nil || child.Parent != x.n {
		return
	}
	x.n.RemoveChild(child)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Attributes

func (x *Node) Attr(name string) (string, bool) {
	if x == nil || x.n == nil {
		return "", false
	}
	for _, a := range x.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (x *Node) SetAttr(name, value string) {
	if x == nil || x.n == nil || name == "" {
		return
	}
	for i, a := range x.n.Attr {
		if a.Key == name {
			x.n.Attr[i].Val = value
			return
		}
	}
	x.n.Attr = append(x.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes a named attribute if present.
func (x *Node) RemoveAttr(name string) {
	if x == nil || x.n == nil {
		return
	}
	for i, a := range x.n.Attr {
		if a.Key == name {
			x.n.Attr = append(x.n.Attr[:i], x.n.Attr[i+1:]...)
			return
		}
	}
}

// Serialized content

// SetInnerHTML replaces the receiver's children with the parse of markup.
// The markup is parsed in the receiver's own element context, so e.g. <tr>
// content parses the way the host parser would inside a table. Non-element
// receivers are left untouched.
func (x *Node) SetInnerHTML(markup string) {
	if x == nil || x.n == nil || x.n.Type != html.ElementNode {
		return
	}
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     x.n.Data,
		DataAtom: x.n.DataAtom,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return
	}
	for c := x.n.FirstChild; c != nil; c = x.n.FirstChild {
		x.n.RemoveChild(c)
	}
	for _, c := range nodes {
		x.n.AppendChild(c)
	}
}

// InnerHTML renders the receiver's children back to markup.
func (x *Node) InnerHTML() string {
	if x == nil || x.n == nil {
		return ""
	}
	var b strings.Builder
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&b, c)
	}
	return b.String()
}

// OuterHTML renders the receiver itself, children included.
func (x *Node) OuterHTML() string {
	if x == nil || x.n == nil {
		return ""
	}
	var b strings.Builder
	html.Render(&b, x.n)
	return b.String()
}

// Text concatenates the text content of the receiver and its descendants.
func (x *Node) Text() string {
	if x == nil || x.n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(x.n)
	return b.String()
}

// TagName returns the element tag, or "" for non-element nodes.
func (x *Node) TagName() string {
	if x == nil || x.n == nil || x.n.Type != html.ElementNode {
		return ""
	}
	return x.n.Data
}

// Matching and querying

// Matches reports whether the node itself satisfies sel. Invalid selectors
// match nothing.
func (x *Node) Matches(sel string) bool {
	if x == nil || x.n == nil {
		return false
	}
	s, err := selector.Parse(sel)
	if err != nil {
		return false
	}
	return s.Match(x.n)
}

// Closest returns the nearest of the node and its ancestors satisfying sel,
// or nil.
func (x *Node) Closest(sel string) dom.Node {
	if x == nil || x.n == nil {
		return nil
	}
	s, err := selector.Parse(sel)
	if err != nil {
		return nil
	}
	for cur := x.n; cur != nil; cur = cur.Parent {
		if s.Match(cur) {
			return WrapNode(cur)
		}
	}
	return nil
}

// QuerySelectorAll returns all matching elements under the node, in
// document order. The slice is empty, never nil; invalid selectors match
// nothing.
func (x *Node) QuerySelectorAll(sel string) []dom.Node {
	results := []dom.Node{}
	if x == nil || x.n == nil {
		return results
	}
	s, err := selector.Parse(sel)
	if err != nil {
		return results
	}
	for _, n := range s.MatchAll(x.n) {
		results = append(results, WrapNode(n))
	}
	return results
}

// QuerySelector returns the first matching element in document order, or
// nil.
func (x *Node) QuerySelector(sel string) dom.Node {
	if x == nil || x.n == nil {
		return nil
	}
	s, err := selector.Parse(sel)
	if err != nil {
		return nil
	}
	return WrapNode(s.MatchFirst(x.n))
}

// newElement builds a detached element node for tag.
func newElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}
