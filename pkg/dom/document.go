package dom

import "fmt"

// Document is the explicit handle to a host tree. It carries the root used
// for queries and whatever construction capability the host exposes.
//
// The zero value and a handle over a capability-less host are both usable:
// every method degrades per the fail-soft contract.
type Document struct {
	root    Node
	builder Builder
	query   Queryable
}

// New builds a handle over the host root. Each capability is probed once;
// hosts missing a capability simply disable the operations that need it.
func New(root Node) *Document {
	d := &Document{root: root}
	d.builder, _ = root.(Builder)
	d.query, _ = root.(Queryable)
	return d
}

// Root returns the host root the handle was built over.
func (d *Document) Root() Node {
	if d == nil {
		return nil
	}
	return d.root
}

// MakeText wraps content, coerced to its string form, as a new text node.
// Returns nil only when the host supplies no construction capability.
func (d *Document) MakeText(content any) Node {
	if d == nil || d.builder == nil {
		return nil
	}
	return d.builder.CreateText(stringify(content))
}

// Coerce normalizes a value into a Node: strings become fresh text nodes,
// Nodes pass through untouched, anything else yields nil. This is the shared
// coercion used by every insertion operation, so callers may pass literal
// text anywhere a Node is expected.
func (d *Document) Coerce(v any) Node {
	switch n := v.(type) {
	case nil:
		return nil
	case string:
		return d.MakeText(n)
	case Node:
		return n
	default:
		return nil
	}
}

// CreateElement creates a detached element with the given tag. A non-empty
// innerMarkup is set as the element's serialized inner content verbatim; the
// caller is responsible for its well-formedness. Returns nil when tag is
// empty or construction is unavailable.
func (d *Document) CreateElement(tag, innerMarkup string) Node {
	if d == nil || d.builder == nil || tag == "" {
		return nil
	}
	el := d.builder.CreateElement(tag)
	if innerMarkup != "" {
		SetInnerHTML(el, innerMarkup)
	}
	return el
}

// stringify is the single string coercion used by MakeText and
// SetInnerHTML.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
