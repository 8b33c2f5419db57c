package selector

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector is a compiled selector, possibly a comma-separated group.
type Selector struct {
	groups []chain
}

// chain is a descendant chain: "article div p" matches a <p> with a <div>
// ancestor that itself has an <article> ancestor.
type chain []compound

// compound is a single compound selector like "div.card#main[data-x=1]".
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrCond
}

// attrCond is one attribute condition. An empty op means presence only.
type attrCond struct {
	key string
	op  string
	val string
}

// Parse compiles a selector string. It returns an error for empty input,
// empty group members, and malformed compound parts.
func Parse(s string) (*Selector, error) {
	sel := &Selector{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("selector %q: empty group member", s)
		}
		var ch chain
		for _, word := range strings.Fields(part) {
			c, err := parseCompound(word)
			if err != nil {
				return nil, fmt.Errorf("selector %q: %w", s, err)
			}
			ch = append(ch, c)
		}
		sel.groups = append(sel.groups, ch)
	}
	if len(sel.groups) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	return sel, nil
}

// parseCompound parses a single compound like "tag.class#id[attr=val]".
func parseCompound(s string) (compound, error) {
	var c compound
	rest := s
	for rest != "" {
		switch rest[0] {
		case '#':
			name, tail := readName(rest[1:])
			if name == "" {
				return c, fmt.Errorf("compound %q: empty id", s)
			}
			c.id = name
			rest = tail
		case '.':
			name, tail := readName(rest[1:])
			if name == "" {
				return c, fmt.Errorf("compound %q: empty class", s)
			}
			c.classes = append(c.classes, name)
			rest = tail
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return c, fmt.Errorf("compound %q: unterminated attribute selector", s)
			}
			cond, err := parseAttrCond(rest[1:end])
			if err != nil {
				return c, fmt.Errorf("compound %q: %w", s, err)
			}
			c.attrs = append(c.attrs, cond)
			rest = rest[end+1:]
		default:
			name, tail := readName(rest)
			if name == "" {
				return c, fmt.Errorf("compound %q: unexpected %q", s, rest[0])
			}
			if c.tag != "" || c.id != "" || len(c.classes) > 0 || len(c.attrs) > 0 {
				return c, fmt.Errorf("compound %q: tag name must come first", s)
			}
			c.tag = strings.ToLower(name)
			rest = tail
		}
	}
	return c, nil
}

// readName consumes a run of identifier characters.
func readName(s string) (name, rest string) {
	i := 0
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isNameByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// parseAttrCond parses the inside of "[...]": "key", "key=val", "key='val'".
func parseAttrCond(s string) (attrCond, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return attrCond{}, fmt.Errorf("empty attribute condition")
	}
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return attrCond{key: s}, nil
	}
	key := strings.TrimSpace(s[:eq])
	if key == "" {
		return attrCond{}, fmt.Errorf("attribute condition %q: empty key", s)
	}
	val := strings.TrimSpace(s[eq+1:])
	val = strings.Trim(val, `"'`)
	return attrCond{key: key, op: "=", val: val}, nil
}

// Match reports whether n itself satisfies the selector. For descendant
// chains the final compound must match n and the earlier compounds must
// match ancestors of n, in order.
func (s *Selector) Match(n *html.Node) bool {
	if s == nil || n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, ch := range s.groups {
		if ch.match(n) {
			return true
		}
	}
	return false
}

func (ch chain) match(n *html.Node) bool {
	if len(ch) == 0 {
		return false
	}
	if !ch[len(ch)-1].match(n) {
		return false
	}
	// Remaining compounds must match ancestors, nearest-last.
	i := len(ch) - 2
	for anc := n.Parent; anc != nil && i >= 0; anc = anc.Parent {
		if anc.Type == html.ElementNode && ch[i].match(anc) {
			i--
		}
	}
	return i < 0
}

func (c compound) match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && n.Data != c.tag {
		return false
	}
	if c.id != "" && attrValue(n, "id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		classes := strings.Fields(attrValue(n, "class"))
		for _, want := range c.classes {
			if !contains(classes, want) {
				return false
			}
		}
	}
	for _, cond := range c.attrs {
		val, ok := lookupAttr(n, cond.key)
		if !ok {
			return false
		}
		if cond.op == "=" && val != cond.val {
			return false
		}
	}
	return true
}

// MatchAll returns every element under root (inclusive) satisfying the
// selector, in document order. The result is never nil.
func (s *Selector) MatchAll(root *html.Node) []*html.Node {
	results := []*html.Node{}
	if s == nil || root == nil {
		return results
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if s.Match(n) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return results
}

// MatchFirst returns the first element under root (inclusive, document
// order) satisfying the selector, or nil.
func (s *Selector) MatchFirst(root *html.Node) *html.Node {
	if s == nil || root == nil {
		return nil
	}
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if s.Match(n) {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if hit := find(c); hit != nil {
				return hit
			}
		}
		return nil
	}
	return find(root)
}

func attrValue(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
