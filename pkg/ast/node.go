// Package ast defines the concrete syntax tree produced by the DDL parser and the
// depth-first traversal used to analyse it.
//
// Every grammar production becomes a Node of the matching Kind. Every consumed
// token becomes a Terminal child of the production that consumed it, so keyword
// presence ("TEMPORARY", "IF NOT EXISTS", ...) can be read straight off the tree.
package ast

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Node is one node of the syntax tree.
type Node struct {
	Kind     Kind
	Parent   *Node
	Children []*Node
	Token    token.Token // only set for Terminal nodes
	Span     token.Span
	Text     string // source text covered by the node
}

// NewTerminal wraps a token into a Terminal node.
func NewTerminal(tok token.Token) *Node {
	return &Node{Kind: Terminal, Token: tok}
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Child returns the first direct child of the given kind, or nil.
func (n *Node) Child(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns all direct children of the given kind.
func (n *Node) ChildrenOf(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant of the given kind in depth-first order, or nil.
func (n *Node) Find(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// Terminals returns the direct Terminal children of n.
func (n *Node) Terminals() []token.Token {
	if n == nil {
		return nil
	}
	var out []token.Token
	for _, c := range n.Children {
		if c.Kind == Terminal {
			out = append(out, c.Token)
		}
	}
	return out
}

// HasKeyword reports whether n has a direct Terminal child that is the keyword kw.
func (n *Node) HasKeyword(kw string) bool {
	for _, t := range n.Terminals() {
		if t.Is(kw) {
			return true
		}
	}
	return false
}

// FirstKeyword returns the upper-cased literal of the first direct unquoted word, or "".
func (n *Node) FirstKeyword() string {
	for _, t := range n.Terminals() {
		if t.Type == token.IDENT {
			return strings.ToUpper(t.Literal)
		}
	}
	return ""
}

// Words returns the upper-cased literals of all direct unquoted words of n, in order.
func (n *Node) Words() []string {
	var out []string
	for _, t := range n.Terminals() {
		if t.Type == token.IDENT {
			out = append(out, strings.ToUpper(t.Literal))
		}
	}
	return out
}

// Value returns the literal of the last direct Terminal child that carries a value
// (string, number, word or quoted identifier), skipping punctuation such as "=".
func (n *Node) Value() string {
	terms := n.Terminals()
	for i := len(terms) - 1; i >= 0; i-- {
		switch terms[i].Type {
		case token.STRING, token.NUMBER, token.IDENT, token.QUOTED_IDENT:
			return terms[i].Literal
		}
	}
	return ""
}

// IsStatement reports whether n is a top-level statement node.
func (n *Node) IsStatement() bool {
	return n != nil && n.Kind.IsStatement()
}

func (n *Node) String() string {
	if n.Kind == Terminal {
		return n.Token.String()
	}
	return n.Kind.String()
}
