package htmlnode

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/abdullah/dombili/pkg/dom"
)

// Document is a parsed HTML host tree. It embeds the wrapper for its
// document node, so it carries every node capability, and adds the
// construction capability the dom façade probes for.
type Document struct {
	*Node
}

// Parse reads and parses a full HTML document. The parser repairs markup
// the way browsers do, so fragments come back wrapped in html/head/body.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{Node: &Node{n: root}}, nil
}

// ParseString parses a document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// CreateElement returns a detached element with the given tag.
func (d *Document) CreateElement(tag string) dom.Node {
	if tag == "" {
		return nil
	}
	return WrapNode(newElement(tag))
}

// CreateText returns a detached text node.
func (d *Document) CreateText(text string) dom.Node {
	return WrapNode(&html.Node{Type: html.TextNode, Data: text})
}

// Body returns the document's body element, or nil.
func (d *Document) Body() dom.Node {
	if d == nil || d.Node == nil {
		return nil
	}
	return d.QuerySelector("body")
}

// Render writes the whole document back as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.Node == nil || d.Node.n == nil {
		return nil
	}
	return html.Render(w, d.Node.n)
}

// OuterHTML of a foreign or nil node is ""; otherwise the node rendered
// with its children.
func OuterHTML(v dom.Node) string {
	n := unwrap(v)
	if n == nil {
		return ""
	}
	var b strings.Builder
	html.Render(&b, n)
	return b.String()
}

// InnerHTML renders a node's children back to markup.
func InnerHTML(v dom.Node) string {
	n := unwrap(v)
	if n == nil {
		return ""
	}
	return (&Node{n: n}).InnerHTML()
}

// Text returns the concatenated text content of a node's subtree.
func Text(v dom.Node) string {
	n := unwrap(v)
	if n == nil {
		return ""
	}
	return (&Node{n: n}).Text()
}

// Unwrap exposes the underlying *html.Node of any node produced by this
// package, or nil for foreign hosts.
func Unwrap(v dom.Node) *html.Node {
	return unwrap(v)
}

// Render writes a node produced by this package, children included, as
// HTML. Foreign or nil nodes write nothing.
func Render(w io.Writer, v dom.Node) error {
	n := unwrap(v)
	if n == nil {
		return nil
	}
	return html.Render(w, n)
}
