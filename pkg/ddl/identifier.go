package ddl

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// IdentifierParts returns the 1 to 3 name parts of an identifier subtree
// (Identifier, QualifiedIdentifier, TableName, TableRef, ...), outermost
// qualifier first. Quoting was already removed by the lexer and case is kept.
func IdentifierParts(n *ast.Node) []string {
	if n == nil {
		return nil
	}
	var parts []string
	collect := ast.NewListener().OnExit(ast.Identifier, func(id *ast.Node) {
		if tok, ok := firstValueToken(id); ok {
			parts = append(parts, tok.Literal)
		}
	})
	ast.Walk(n, collect)
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return parts
}

// identifierName returns the last part of an identifier subtree.
func identifierName(n *ast.Node) string {
	parts := IdentifierParts(n)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// splitQualified splits name parts into schema and object name.
func splitQualified(parts []string) (schema, name string) {
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[len(parts)-2], parts[len(parts)-1]
	}
}

func firstValueToken(n *ast.Node) (token.Token, bool) {
	for _, t := range n.Terminals() {
		switch t.Type {
		case token.IDENT, token.QUOTED_IDENT, token.STRING:
			return t, true
		}
	}
	return token.Token{}, false
}

// textValue concatenates the string literals of a TextLiteral node, skipping a
// charset introducer.
func textValue(n *ast.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for _, t := range n.Terminals() {
		if t.Type == token.STRING {
			sb.WriteString(t.Literal)
		}
	}
	return sb.String()
}

// nameValue returns the value of a charset or collation name node, lower
// cased, or "" for nil.
func nameValue(n *ast.Node) string {
	if n == nil {
		return ""
	}
	return strings.ToLower(n.Value())
}

// valueTokens returns the direct value terminals of n (words, numbers,
// strings), skipping punctuation.
func valueTokens(n *ast.Node) []token.Token {
	var out []token.Token
	for _, t := range n.Terminals() {
		switch t.Type {
		case token.IDENT, token.QUOTED_IDENT, token.NUMBER, token.STRING:
			out = append(out, t)
		}
	}
	return out
}

// numberOf returns the first NUMBER terminal of n.
func numberOf(n *ast.Node) (token.Token, bool) {
	for _, t := range n.Terminals() {
		if t.Type == token.NUMBER {
			return t, true
		}
	}
	return token.Token{}, false
}

// parseInt32 converts an integer literal, reporting whether it fits an int32.
func parseInt32(lit string) (int, bool) {
	v, err := strconv.ParseInt(lit, 10, 32)
	if err != nil || v < 0 {
		return 0, false
	}
	return int(v), true
}

// nodePos returns the start position of n.
func nodePos(n *ast.Node) token.Position {
	if n == nil {
		return token.Position{}
	}
	return n.Span.Start
}
