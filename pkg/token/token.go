// Package token defines the lexical tokens of the MySQL DDL grammar.
//
// Words are not split into one token type per keyword: MySQL has several hundred
// keywords and most of them are valid unquoted identifiers. The lexer emits every
// word as IDENT and the parser matches keywords by literal. Reserved words are
// tracked separately (see IsReserved) so that they are rejected as identifiers.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT        // unquoted word: identifier or keyword
	QUOTED_IDENT // `quoted` identifier (or "quoted" in ANSI_QUOTES mode)
	NUMBER       // 123, 45.67, 1e10, 0x1F
	STRING       // 'hello', "hello", x'1F', b'01'

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	AT        // @
	COLON     // :
	SEMICOLON // ; inside a statement when a custom delimiter is active
	OPERATOR  // any other operator character sequence (|, &, ^, ~, !, :=, ||, ...)

	// END_STMT terminates a statement. Its literal is the active delimiter.
	END_STMT
	// DELIMITER is a client-side "DELIMITER xx" directive. Its literal is the new delimiter.
	DELIMITER
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	AT:        "@",
	COLON:     ":",
	SEMICOLON: ";",
	OPERATOR:  "OPERATOR",

	END_STMT:  "END_STMT",
	DELIMITER: "DELIMITER",
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string // unquoted/unescaped value for identifiers and strings
	Pos     Position
	End     int // 0-based byte offset just past the raw token text
}

// Is reports whether the token is an unquoted word equal to kw (case-insensitive).
func (t Token) Is(kw string) bool {
	return t.Type == IDENT && equalFoldASCII(t.Literal, kw)
}

// IsIdentifier reports whether the token can name an object: a quoted identifier
// or an unquoted word that is not reserved.
func (t Token) IsIdentifier() bool {
	switch t.Type {
	case QUOTED_IDENT:
		return true
	case IDENT:
		return !IsReserved(t.Literal)
	}
	return false
}

// Span returns the source range of the raw token text. The end column
// assumes the token does not span lines.
func (t Token) Span() Span {
	end := Position{Line: t.Pos.Line, Column: t.Pos.Column + t.End - t.Pos.Offset, Offset: t.End}
	return Span{Start: t.Pos, End: end}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
