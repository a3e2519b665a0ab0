package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken   = "unexpected token %s, expected %s"
	ErrExpectedKeyword   = "unexpected %s, expected %s"
	ErrExpectedIdent     = "expected identifier, got %s"
	ErrExpectedNumber    = "expected number, got %s"
	ErrExpectedString    = "expected string literal, got %s"
	ErrUnknownDataType   = "unknown data type %q"
	ErrUnbalancedParens  = "unbalanced parentheses"
	ErrUnexpectedEnd     = "unexpected end of statement"
	ErrTrailingInput     = "unexpected %s after end of statement"
	ErrUnsupportedClause = "unsupported clause starting at %s"
)
