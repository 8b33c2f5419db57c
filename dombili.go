// Package dombili is the one-import surface for the dombili DOM façade.
//
// It re-exports the dom package's operations together with the HTML host
// adapter, so most programs need nothing else:
//
//	doc, err := dombili.ParseString(`<ul id="l"><li>a</li></ul>`)
//	if err != nil { ... }
//	list := doc.SelectFirst("#l")
//	doc.Append(doc.CreateElement("li", "b"), list)
//	fmt.Println(dombili.InnerHTML(list))
//
// Programs bringing their own host tree should use the dom package
// directly; everything here assumes the htmlnode host.
package dombili

import (
	"io"

	"github.com/abdullah/dombili/pkg/dom"
	"github.com/abdullah/dombili/pkg/htmlnode"
)

// Core types re-exported from the dom package.
type (
	Node     = dom.Node
	Document = dom.Document
)

// Parse parses an HTML document and returns a façade handle over it.
func Parse(r io.Reader) (*Document, error) {
	host, err := htmlnode.Parse(r)
	if err != nil {
		return nil, err
	}
	return dom.New(host), nil
}

// ParseString parses a document held in a string.
func ParseString(s string) (*Document, error) {
	host, err := htmlnode.ParseString(s)
	if err != nil {
		return nil, err
	}
	return dom.New(host), nil
}

// New builds a handle over any host root, the dom.New way.
func New(root Node) *Document {
	return dom.New(root)
}

// Node-level operations, re-exported.

// Remove detaches n from its parent.
func Remove(n Node) { dom.Remove(n) }

// SetInnerHTML sets n's serialized inner content.
func SetInnerHTML(n Node, markup any) { dom.SetInnerHTML(n, markup) }

// SetAttribute sets a named attribute on n.
func SetAttribute(n Node, name, value string) { dom.SetAttribute(n, name, value) }

// GetAttribute reads a named attribute from n.
func GetAttribute(n Node, name string) (string, bool) { return dom.GetAttribute(n, name) }

// SetDataAttribute sets a data--prefixed attribute on n.
func SetDataAttribute(n Node, name, value string) { dom.SetDataAttribute(n, name, value) }

// GetDataAttribute reads a data--prefixed attribute from n.
func GetDataAttribute(n Node, name string) (string, bool) { return dom.GetDataAttribute(n, name) }

// Matches tests n itself against selector; ok is false when inapplicable.
func Matches(n Node, selector string) (matched, ok bool) { return dom.Matches(n, selector) }

// Parent returns n's immediate parent, or nil.
func Parent(n Node) Node { return dom.Parent(n) }

// Closest returns the nearest of n and its ancestors matching selector.
func Closest(n Node, selector string) Node { return dom.Closest(n, selector) }

// Serialization helpers for the htmlnode host.

// OuterHTML renders n with its children.
func OuterHTML(n Node) string { return htmlnode.OuterHTML(n) }

// InnerHTML renders n's children.
func InnerHTML(n Node) string { return htmlnode.InnerHTML(n) }

// Text returns the concatenated text content of n's subtree.
func Text(n Node) string { return htmlnode.Text(n) }

// Render writes n, children included, as HTML.
func Render(w io.Writer, n Node) error { return htmlnode.Render(w, n) }
