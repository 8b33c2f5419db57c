package server

import (
	"fmt"

	"github.com/abdullah/dombili/pkg/dom"
)

// mutationOp is one step in a mutation request. Ops run in order; each op
// targets every node its selector matches at the time it runs.
type mutationOp struct {
	// Op is one of remove, set_attr, set_data, set_html, append, prepend.
	Op       string `json:"op"`
	Selector string `json:"selector"`
	Name     string `json:"name,omitempty"`
	Value    string `json:"value,omitempty"`
	Markup   string `json:"markup,omitempty"`
}

// applyOps runs ops against doc and returns how many node-level changes
// were made. An unknown op or a missing selector aborts with an error;
// selectors that match nothing simply contribute zero.
func applyOps(doc *dom.Document, ops []mutationOp) (int, error) {
	applied := 0
	for i, op := range ops {
		if op.Selector == "" {
			return applied, fmt.Errorf("op %d (%s): selector is required", i, op.Op)
		}
		targets := doc.SelectAll(op.Selector)

		switch op.Op {
		case "remove":
			for _, n := range targets {
				dom.Remove(n)
				applied++
			}
		case "set_attr":
			if op.Name == "" {
				return applied, fmt.Errorf("op %d (set_attr): name is required", i)
			}
			for _, n := range targets {
				dom.SetAttribute(n, op.Name, op.Value)
				applied++
			}
		case "set_data":
			if op.Name == "" {
				return applied, fmt.Errorf("op %d (set_data): name is required", i)
			}
			for _, n := range targets {
				dom.SetDataAttribute(n, op.Name, op.Value)
				applied++
			}
		case "set_html":
			for _, n := range targets {
				dom.SetInnerHTML(n, op.Markup)
				applied++
			}
		case "append":
			for _, n := range targets {
				appendMarkup(doc, n, op.Markup)
				applied++
			}
		case "prepend":
			for _, n := range targets {
				prependMarkup(doc, n, op.Markup)
				applied++
			}
		default:
			return applied, fmt.Errorf("op %d: unknown op %q", i, op.Op)
		}
	}
	return applied, nil
}

// appendMarkup parses markup in a scratch element and moves the resulting
// nodes to the end of target.
func appendMarkup(doc *dom.Document, target dom.Node, markup string) {
	scratch := doc.CreateElement("div", markup)
	if scratch == nil {
		return
	}
	for c := scratch.FirstChild(); c != nil; c = scratch.FirstChild() {
		doc.Append(c, target)
	}
}

// prependMarkup is appendMarkup's mirror: the parsed nodes end up before
// target's existing children, keeping their own order.
func prependMarkup(doc *dom.Document, target dom.Node, markup string) {
	scratch := doc.CreateElement("div", markup)
	if scratch == nil {
		return
	}
	ref := target.FirstChild()
	for c := scratch.FirstChild(); c != nil; c = scratch.FirstChild() {
		if ref == nil {
			doc.Append(c, target)
		} else {
			doc.InsertBefore(c, ref)
		}
	}
}
