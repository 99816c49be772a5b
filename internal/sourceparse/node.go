package sourceparse

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Point is a 0-based row/column position into the source bytes.
type Point struct {
	Row    int
	Column int
}

// Node is the CST surface the walker packages depend on. It wraps the raw
// go-tree-sitter node together with the source bytes needed to slice text,
// so callers never touch the underlying library directly.
type Node struct {
	raw    *tree_sitter.Node
	source []byte
}

func wrap(raw *tree_sitter.Node, source []byte) *Node {
	if raw == nil {
		return nil
	}
	return &Node{raw: raw, source: source}
}

// Kind is the CST node type string, e.g. "function_declaration".
func (n *Node) Kind() string {
	return n.raw.Kind()
}

// IsNamed reports whether this node is a named (non-anonymous) node.
func (n *Node) IsNamed() bool {
	return n.raw.IsNamed()
}

func (n *Node) StartByte() uint {
	return uint(n.raw.StartByte())
}

func (n *Node) EndByte() uint {
	return uint(n.raw.EndByte())
}

func (n *Node) StartPoint() Point {
	p := n.raw.StartPosition()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func (n *Node) EndPoint() Point {
	p := n.raw.EndPosition()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

// Text returns the source slice this node spans.
func (n *Node) Text() string {
	start, end := n.raw.StartByte(), n.raw.EndByte()
	if end > uint(len(n.source)) || start > end {
		return ""
	}
	return string(n.source[start:end])
}

func (n *Node) ChildCount() int {
	return int(n.raw.ChildCount())
}

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= n.ChildCount() {
		return nil
	}
	return wrap(n.raw.Child(uint(i)), n.source)
}

func (n *Node) NamedChildCount() int {
	return int(n.raw.NamedChildCount())
}

func (n *Node) NamedChild(i int) *Node {
	if i < 0 || i >= n.NamedChildCount() {
		return nil
	}
	return wrap(n.raw.NamedChild(uint(i)), n.source)
}

// ChildByFieldName looks up a named field on this node, e.g. "name" or
// "body". Returns nil if the node has no such field.
func (n *Node) ChildByFieldName(name string) *Node {
	return wrap(n.raw.ChildByFieldName(name), n.source)
}

func (n *Node) Parent() *Node {
	return wrap(n.raw.Parent(), n.source)
}

func (n *Node) PrevSibling() *Node {
	return wrap(n.raw.PrevSibling(), n.source)
}

func (n *Node) NextSibling() *Node {
	return wrap(n.raw.NextSibling(), n.source)
}

func (n *Node) PrevNamedSibling() *Node {
	return wrap(n.raw.PrevNamedSibling(), n.source)
}

func (n *Node) NextNamedSibling() *Node {
	return wrap(n.raw.NextNamedSibling(), n.source)
}

// NamedChildren materializes the named children as a slice, for callers
// that want to range without tracking an index themselves.
func (n *Node) NamedChildren() []*Node {
	count := n.NamedChildCount()
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}
