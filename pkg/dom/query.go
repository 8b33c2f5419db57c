package dom

// SelectAll returns every element under the root matching selector, in
// document order. The result is nil only when the host lacks the query
// capability; when the capability exists but nothing matches, the result is
// an empty, non-nil slice.
func (d *Document) SelectAll(selector string) []Node {
	if d == nil || d.query == nil {
		return nil
	}
	return d.query.QuerySelectorAll(selector)
}

// SelectFirst returns the first element in document order matching selector,
// or nil when nothing matches or the capability is absent.
func (d *Document) SelectFirst(selector string) Node {
	if d == nil || d.query == nil {
		return nil
	}
	return d.query.QuerySelector(selector)
}

// Find is an alias for SelectFirst.
func (d *Document) Find(selector string) Node {
	return d.SelectFirst(selector)
}

// Matches tests whether n itself (not its descendants) satisfies selector.
// The second result is false when n is absent or lacks the match-testing
// capability; callers must distinguish that from a genuine non-match.
func Matches(n Node, selector string) (matched, ok bool) {
	m, capable := n.(Matcher)
	if !capable {
		return false, false
	}
	return m.Matches(selector), true
}

// Parent returns the immediate parent of n, or nil when n or its parent is
// absent.
func Parent(n Node) Node {
	if n == nil {
		return nil
	}
	return n.ParentNode()
}

// Closest walks upward from n (inclusive) and returns the nearest node
// satisfying selector. Nil when n, the capability, or selector is absent,
// or when no ancestor up to the tree root matches.
func Closest(n Node, selector string) Node {
	if selector == "" {
		return nil
	}
	m, ok := n.(AncestorMatcher)
	if !ok {
		return nil
	}
	return m.Closest(selector)
}
