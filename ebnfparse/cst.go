package ebnfparse

import "github.com/dhamidi/comb/comb"

// Node is a node of the concrete syntax tree. Lexical productions
// (lower-case names) and literal tokens produce leaves carrying their
// source text; upper-case productions produce interior nodes.
type Node struct {
	Name     string    // production name, or the quoted literal for tokens
	Text     string    // source text (leaves only)
	Span     comb.Span // byte offsets into the parsed source
	Children []*Node
}

// IsLeaf reports whether n was produced by a lexical production or a
// literal token.
func (n *Node) IsLeaf() bool {
	return n.Children == nil && (IsLexical(n.Name) || isLiteral(n.Name))
}

// AddChild appends a child node and extends the span to cover it.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	if len(n.Children) == 0 {
		n.Span.Start = child.Span.Start
	}
	n.Children = append(n.Children, child)
	n.Span.End = child.Span.End
}

// Walk calls f for n and every descendant in depth-first order. Returning
// false from f skips the node's children.
func (n *Node) Walk(f func(node *Node, depth int) bool) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int) bool, depth int) {
	if !f(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(f, depth+1)
	}
}

func isLiteral(name string) bool {
	return len(name) >= 2 && name[0] == '"'
}
