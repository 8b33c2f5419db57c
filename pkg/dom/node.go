package dom

// Node is the minimal capability set every tree participant exposes:
// structural links to its parent, next sibling, and first child. Any of the
// links may be nil.
//
// Implementations must return untyped nil (not a typed nil wrapped in the
// interface) for absent links, and should tolerate nil receivers so that
// façade guards stay cheap.
type Node interface {
	ParentNode() Node
	NextSibling() Node
	FirstChild() Node
}

// Inserter is the parent-level mutation capability. InsertBefore with a nil
// reference appends at the end, matching host tree semantics. Inserting a
// node that already has a parent detaches it from that parent first.
type Inserter interface {
	InsertBefore(n, ref Node)
	AppendChild(n Node)
	ReplaceChild(n, old Node)
	RemoveChild(n Node)
}

// Attributed is the named-attribute capability.
type Attributed interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
}

// ContentSetter is the serialized-inner-content capability. The markup is
// taken verbatim; the host decides how (or whether) to parse it.
type ContentSetter interface {
	SetInnerHTML(markup string)
}

// Matcher is the selector self-match capability.
type Matcher interface {
	Matches(selector string) bool
}

// AncestorMatcher walks upward from the node (inclusive) and returns the
// nearest node satisfying the selector, or nil.
type AncestorMatcher interface {
	Closest(selector string) Node
}

// Builder is the node-construction capability, usually satisfied by the
// host document itself.
type Builder interface {
	CreateElement(tag string) Node
	CreateText(text string) Node
}

// Queryable is the tree-level query capability. QuerySelectorAll returns
// matches in document order; the slice is empty, not nil, when nothing
// matches.
type Queryable interface {
	QuerySelectorAll(selector string) []Node
	QuerySelector(selector string) Node
}
