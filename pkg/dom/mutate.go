package dom

// DataPrefix is the namespace marker for data attributes.
const DataPrefix = "data-"

// InsertBefore normalizes v and inserts it immediately before ref within
// ref's parent. No-op when v, ref, ref's parent, or the parent's insertion
// capability is absent.
func (d *Document) InsertBefore(v any, ref Node) {
	node := d.Coerce(v)
	if node == nil || ref == nil {
		return
	}
	parent, ok := ref.ParentNode().(Inserter)
	if !ok {
		return
	}
	parent.InsertBefore(node, ref)
}

// InsertAfter normalizes v and inserts it immediately after ref. When ref is
// the last child the insertion point is nil and the host appends at the end.
func (d *Document) InsertAfter(v any, ref Node) {
	node := d.Coerce(v)
	if node == nil || ref == nil {
		return
	}
	parent, ok := ref.ParentNode().(Inserter)
	if !ok {
		return
	}
	parent.InsertBefore(node, ref.NextSibling())
}

// Append normalizes v and appends it as the last child of container.
func (d *Document) Append(v any, container Node) {
	node := d.Coerce(v)
	if node == nil || container == nil {
		return
	}
	parent, ok := container.(Inserter)
	if !ok {
		return
	}
	parent.AppendChild(node)
}

// Prepend normalizes v and inserts it as the first child of container,
// implemented as an insertion before container's first child. For an empty
// container the reference is nil and the insertion degrades to an append,
// which is the same thing.
func (d *Document) Prepend(v any, container Node) {
	node := d.Coerce(v)
	if node == nil || container == nil {
		return
	}
	parent, ok := container.(Inserter)
	if !ok {
		return
	}
	parent.InsertBefore(node, container.FirstChild())
}

// Replace normalizes both arguments and replaces ref with v. The parent used
// is v's own existing parent when it has one, otherwise ref's parent. When v
// is already attached elsewhere the call therefore operates against v's
// parent, where ref is not a child; that precedence is kept as-is.
func (d *Document) Replace(v, ref any) {
	node := d.Coerce(v)
	old := d.Coerce(ref)
	if node == nil || old == nil {
		return
	}
	parentNode := node.ParentNode()
	if parentNode == nil {
		parentNode = old.ParentNode()
	}
	parent, ok := parentNode.(Inserter)
	if !ok {
		return
	}
	parent.ReplaceChild(node, old)
}

// Remove detaches n from its parent. No-op for nil or already-detached
// nodes.
func Remove(n Node) {
	if n == nil {
		return
	}
	parent, ok := n.ParentNode().(Inserter)
	if !ok {
		return
	}
	parent.RemoveChild(n)
}

// SetInnerHTML sets the serialized inner content of n to the string form of
// markup. No-op when n is absent or lacks the capability.
func SetInnerHTML(n Node, markup any) {
	setter, ok := n.(ContentSetter)
	if !ok {
		return
	}
	setter.SetInnerHTML(stringify(markup))
}

// SetAttribute sets a named attribute on n.
func SetAttribute(n Node, name, value string) {
	attrs, ok := n.(Attributed)
	if !ok {
		return
	}
	attrs.SetAttr(name, value)
}

// GetAttribute reads a named attribute from n. The second result is false
// when n is absent, lacks the capability, or has no such attribute.
func GetAttribute(n Node, name string) (string, bool) {
	attrs, ok := n.(Attributed)
	if !ok {
		return "", false
	}
	return attrs.Attr(name)
}

// SetDataAttribute sets the attribute named name prefixed with DataPrefix.
func SetDataAttribute(n Node, name, value string) {
	SetAttribute(n, DataPrefix+name, value)
}

// GetDataAttribute reads the attribute named name prefixed with DataPrefix.
func GetDataAttribute(n Node, name string) (string, bool) {
	return GetAttribute(n, DataPrefix+name)
}
