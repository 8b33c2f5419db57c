// Package dom is a thin façade over a host document tree.
//
// The host tree is an external collaborator: any value that satisfies the
// capability interfaces in this package (see node.go) can be manipulated.
// The htmlnode package provides a ready-made host over golang.org/x/net/html.
//
// # Handle
//
// There is no ambient global document. Operations that create nodes or query
// the tree hang off a Document handle constructed from the host root:
//
//	doc := dom.New(host)
//	card := doc.CreateElement("div", "<b>hi</b>")
//	doc.Append(card, doc.SelectFirst("body"))
//
// Operations that only touch node capabilities (Remove, attribute access,
// Matches, Closest, Parent) are package functions.
//
// # Fail-soft contract
//
// Every operation degrades to a silent no-op, a nil result, or a false
// comma-ok flag when a required input is absent or the host value lacks the
// needed capability. Nothing panics, nothing is logged. Callers who want to
// distinguish "inapplicable" from "negative" use the comma-ok forms
// (Matches, GetAttribute) or check for nil results.
package dom
