// Package htmlnode adapts golang.org/x/net/html trees to the dom package's
// host capability set.
//
// Parse an HTML document and hand the result to dom.New:
//
//	host, err := htmlnode.ParseString("<p>hi</p>")
//	doc := dom.New(host)
//	for _, n := range doc.SelectAll("p") { ... }
//
// Every *Node wraps exactly one *html.Node. Wrappers are created on demand
// while navigating, so compare identities with Unwrap, not wrapper pointers.
// All methods tolerate nil receivers, which keeps the dom façade's fail-soft
// contract intact when typed nils leak into interface values.
//
// Selector support comes from the selector package; invalid selectors
// behave like selectors that match nothing.
package htmlnode
