package dom

import "strings"

// fakeNode is a minimal in-memory host node implementing the full
// capability set. Selector support is limited to "tag", ".class" and "#id",
// which is all these tests need.
type fakeNode struct {
	tag      string
	text     string
	attrs    map[string]string
	parent   *fakeNode
	children []*fakeNode
	inner    string
}

func newFakeEl(tag string) *fakeNode {
	return &fakeNode{tag: tag, attrs: map[string]string{}}
}

func (n *fakeNode) ParentNode() Node {
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) NextSibling() Node {
	if n == nil || n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n && i+1 < len(n.parent.children) {
			return n.parent.children[i+1]
		}
	}
	return nil
}

func (n *fakeNode) FirstChild() Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *fakeNode) detach(child *fakeNode) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *fakeNode) InsertBefore(v, ref Node) {
	child, ok := v.(*fakeNode)
	if !ok {
		return
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	old, _ := ref.(*fakeNode)
	if old == nil {
		n.children = append(n.children, child)
		return
	}
	for i, c := range n.children {
		if c == old {
			n.children = append(n.children[:i], append([]*fakeNode{child}, n.children[i:]...)...)
			return
		}
	}
	n.children = append(n.children, child)
}

func (n *fakeNode) AppendChild(v Node) {
	n.InsertBefore(v, nil)
}

func (n *fakeNode) ReplaceChild(v, oldNode Node) {
	child, ok := v.(*fakeNode)
	old, okOld := oldNode.(*fakeNode)
	if !ok || !okOld {
		return
	}
	for i, c := range n.children {
		if c == old {
			if child.parent != nil {
				child.parent.detach(child)
			}
			n.children[i] = child
			child.parent = n
			old.parent = nil
			return
		}
	}
}

func (n *fakeNode) RemoveChild(v Node) {
	if child, ok := v.(*fakeNode); ok {
		n.detach(child)
	}
}

func (n *fakeNode) Attr(name string) (string, bool) {
	if n == nil || n.attrs == nil {
		return "", false
	}
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) SetAttr(name, value string) {
	if n == nil {
		return
	}
	if n.attrs == nil {
		n.attrs = map[string]string{}
	}
	n.attrs[name] = value
}

func (n *fakeNode) SetInnerHTML(markup string) {
	if n == nil {
		return
	}
	n.children = nil
	n.inner = markup
}

func (n *fakeNode) matches(selector string) bool {
	if n == nil || n.tag == "" {
		return false
	}
	switch {
	case strings.HasPrefix(selector, "."):
		for _, c := range strings.Fields(n.attrs["class"]) {
			if c == selector[1:] {
				return true
			}
		}
		return false
	case strings.HasPrefix(selector, "#"):
		return n.attrs["id"] == selector[1:]
	default:
		return n.tag == selector
	}
}

func (n *fakeNode) Matches(selector string) bool {
	return n.matches(selector)
}

func (n *fakeNode) Closest(selector string) Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.matches(selector) {
			return cur
		}
	}
	return nil
}

// fakeDoc is the host root: a node that also builds and queries.
type fakeDoc struct {
	fakeNode
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{fakeNode: fakeNode{tag: "#document", attrs: map[string]string{}}}
}

func (d *fakeDoc) CreateElement(tag string) Node {
	return newFakeEl(tag)
}

func (d *fakeDoc) CreateText(text string) Node {
	return &fakeNode{text: text}
}

func (d *fakeDoc) QuerySelectorAll(selector string) []Node {
	results := []Node{}
	var walk func(*fakeNode)
	walk = func(n *fakeNode) {
		if n.matches(selector) {
			results = append(results, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(&d.fakeNode)
	return results
}

func (d *fakeDoc) QuerySelector(selector string) Node {
	all := d.QuerySelectorAll(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// bareNode implements only the structural links, no other capability.
type bareNode struct {
	parent Node
}

func (n *bareNode) ParentNode() Node  { return n.parent }
func (n *bareNode) NextSibling() Node { return nil }
func (n *bareNode) FirstChild() Node  { return nil }
