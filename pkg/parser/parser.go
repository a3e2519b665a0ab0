// Package parser provides a recursive descent parser for MySQL DDL scripts.
//
// # Usage
//
//	script, errs := parser.Parse("CREATE TABLE t (id INT PRIMARY KEY);", parser.Options{})
//	for _, err := range errs {
//	    // handle error; the failing statement is kept as an OtherStatement node
//	}
//
// # Tree Shape
//
// The parser builds a concrete syntax tree (see package ast). Every production
// opens a node of its kind and every consumed token is appended as a Terminal
// child of the innermost open production, so the tree keeps all keywords and
// punctuation of the source.
//
// # Grammar Overview
//
//	script     → { statement [END_STMT] }
//	statement  → create_database | create_table | alter_table | create_index
//	           | create_procedure | create_function | create_udf | create_trigger
//	           | create_view | create_server | create_tablespace
//	           | create_logfile_group | create_event | use | DELIMITER | other
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Options configure the parser.
type Options struct {
	// AnsiQuotes treats "double quoted" text as identifiers (sql_mode ANSI_QUOTES).
	AnsiQuotes bool
	// ServerVersion is the numeric server version (e.g. 80032). It decides which
	// versioned comments are read. Zero reads all of them.
	ServerVersion int
}

// Parser parses DDL scripts into syntax trees.
type Parser struct {
	lexer *Lexer
	src   string

	token token.Token // current token
	peek  token.Token // lookahead token
	peek2 token.Token // second lookahead token

	prevEnd int            // byte offset just past the last consumed token
	prevPos token.Position // position of the last consumed token

	stack  []*ast.Node
	errors []error
}

// bailout is raised to abandon the current statement after its first error.
type bailout struct{}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string, opts Options) *Parser {
	p := &Parser{
		lexer: NewLexer(sql, LexerOptions(opts)),
		src:   sql,
	}
	// Read three tokens to initialize current, peek, and peek2
	p.advance()
	p.advance()
	p.advance()
	return p
}

// Parse parses a whole script. The returned tree always covers every statement:
// a statement that fails to parse is kept as an OtherStatement node and its
// error is returned, and parsing continues with the next statement.
func Parse(sql string, opts Options) (*ast.Node, []error) {
	p := NewParser(sql, opts)
	root := p.parseScript()
	return root, p.errors
}

// ParseStatement parses a single statement. It returns the first error, if any.
func ParseStatement(sql string, opts Options) (*ast.Node, error) {
	root, errs := Parse(sql, opts)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	for _, c := range root.Children {
		if c.IsStatement() && c.Kind != ast.DelimiterStatement {
			return c, nil
		}
	}
	return nil, &ParseError{Message: ErrUnexpectedEnd}
}

// Errors returns the errors collected so far.
func (p *Parser) Errors() []error {
	return p.errors
}

// ---------- Token Helpers ----------

// advance shifts the lookahead window without recording the token.
func (p *Parser) advance() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// next consumes the current token as a Terminal of the innermost open node.
func (p *Parser) next() token.Token {
	tok := p.token
	if tok.Type == token.EOF {
		return tok
	}
	if top := p.top(); top != nil {
		top.Append(ast.NewTerminal(tok))
	}
	p.prevEnd = tok.End
	p.prevPos = tok.Pos
	p.advance()
	return tok
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it is of the given type.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.next()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise fails the statement.
func (p *Parser) expect(t token.TokenType) token.Token {
	if !p.check(t) {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	}
	return p.next()
}

// is reports whether the current token is the keyword kw.
func (p *Parser) is(kw string) bool {
	return p.token.Is(kw)
}

// isAny reports whether the current token is one of the keywords.
func (p *Parser) isAny(kws ...string) bool {
	for _, kw := range kws {
		if p.token.Is(kw) {
			return true
		}
	}
	return false
}

// isSeq reports whether the next tokens are the given keywords (at most three).
func (p *Parser) isSeq(kws ...string) bool {
	window := []token.Token{p.token, p.peek, p.peek2}
	if len(kws) > len(window) {
		return false
	}
	for i, kw := range kws {
		if !window[i].Is(kw) {
			return false
		}
	}
	return true
}

// accept consumes the current token if it is the keyword kw.
func (p *Parser) accept(kw string) bool {
	if p.is(kw) {
		p.next()
		return true
	}
	return false
}

// acceptSeq consumes the keyword sequence if all of it is present.
func (p *Parser) acceptSeq(kws ...string) bool {
	if !p.isSeq(kws...) {
		return false
	}
	for range kws {
		p.next()
	}
	return true
}

// expectKw consumes the keywords in order, failing the statement on mismatch.
func (p *Parser) expectKw(kws ...string) {
	for _, kw := range kws {
		if !p.is(kw) {
			p.fail(fmt.Sprintf(ErrExpectedKeyword, describe(p.token), kw))
		}
		p.next()
	}
}

// atEnd reports whether the current statement has no more tokens.
func (p *Parser) atEnd() bool {
	return p.check(token.END_STMT) || p.check(token.EOF) || p.check(token.DELIMITER)
}

// fail records an error at the current token and abandons the statement.
func (p *Parser) fail(msg string) {
	p.addError(msg)
	panic(bailout{})
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF, token.END_STMT:
		return "end of statement"
	case token.IDENT, token.QUOTED_IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%q", tok.Literal)
	}
	return tok.Type.String()
}

// ---------- Tree Helpers ----------

// top returns the innermost open node.
func (p *Parser) top() *ast.Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// open starts a node of the given kind as a child of the innermost open node.
func (p *Parser) open(kind ast.Kind) *ast.Node {
	n := &ast.Node{Kind: kind}
	n.Span.Start = p.token.Pos
	if top := p.top(); top != nil {
		top.Append(n)
	}
	p.stack = append(p.stack, n)
	return n
}

// close ends n (and anything still open inside it) and records its source text.
func (p *Parser) close(n *ast.Node) {
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if top == n {
			break
		}
	}
	start := n.Span.Start.Offset
	if p.prevEnd <= start {
		n.Span.End = n.Span.Start
		return
	}
	n.Span.End = token.Position{Line: p.prevPos.Line, Column: p.prevPos.Column, Offset: p.prevEnd}
	n.Text = p.src[start:p.prevEnd]
}

// ---------- Shared Productions ----------

// parseIdentifier parses a single (possibly quoted) identifier.
//
//	identifier → IDENT | QUOTED_IDENT
func (p *Parser) parseIdentifier() *ast.Node {
	n := p.open(ast.Identifier)
	defer p.close(n)
	if !p.token.IsIdentifier() {
		p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
	}
	p.next()
	return n
}

// parseQualifiedIdentifier parses a dotted name of one to three parts.
//
//	qualified_identifier → identifier { dot_identifier }
//	dot_identifier       → "." identifier
func (p *Parser) parseQualifiedIdentifier() *ast.Node {
	n := p.open(ast.QualifiedIdentifier)
	defer p.close(n)
	p.parseIdentifier()
	for i := 0; i < 2 && p.check(token.DOT); i++ {
		d := p.open(ast.DotIdentifier)
		p.next()
		// any word is allowed after a dot, reserved or not
		if p.check(token.IDENT) || p.check(token.QUOTED_IDENT) {
			id := p.open(ast.Identifier)
			p.next()
			p.close(id)
		} else {
			p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
		}
		p.close(d)
	}
	return n
}

// parseNamed parses a qualified identifier wrapped in a node of the given kind
// (TableName, TableRef, ...).
func (p *Parser) parseNamed(kind ast.Kind) *ast.Node {
	n := p.open(kind)
	defer p.close(n)
	p.parseQualifiedIdentifier()
	return n
}

// parseIfNotExists parses an optional IF NOT EXISTS clause.
func (p *Parser) parseIfNotExists() {
	if !p.isSeq("IF", "NOT", "EXISTS") {
		return
	}
	n := p.open(ast.IfNotExists)
	p.acceptSeq("IF", "NOT", "EXISTS")
	p.close(n)
}

// parseColumnList parses a parenthesised list of identifiers.
//
//	column_list → "(" identifier { "," identifier } ")"
func (p *Parser) parseColumnList() *ast.Node {
	n := p.open(ast.ColumnList)
	defer p.close(n)
	p.expect(token.LPAREN)
	for {
		p.parseIdentifier()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return n
}

// parseTextLiteral parses one or more adjacent string literals, with an optional
// charset introducer (_utf8mb4'text').
func (p *Parser) parseTextLiteral() *ast.Node {
	n := p.open(ast.TextLiteral)
	defer p.close(n)
	if p.check(token.IDENT) && strings.HasPrefix(p.token.Literal, "_") && p.peek.Type == token.STRING {
		p.next()
	}
	p.expect(token.STRING)
	for p.check(token.STRING) {
		p.next()
	}
	return n
}

// parseUserName parses an account name.
//
//	user → (identifier | STRING) [ "@" (identifier | STRING) ] | CURRENT_USER [ "(" ")" ]
func (p *Parser) parseUserName() *ast.Node {
	n := p.open(ast.UserName)
	defer p.close(n)
	if p.accept("CURRENT_USER") {
		if p.check(token.LPAREN) && p.peek.Type == token.RPAREN {
			p.next()
			p.next()
		}
		return n
	}
	if !p.check(token.STRING) && !p.check(token.IDENT) && !p.check(token.QUOTED_IDENT) {
		p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
	}
	p.next()
	if p.match(token.AT) {
		if !p.check(token.STRING) && !p.check(token.IDENT) && !p.check(token.QUOTED_IDENT) && !p.check(token.PERCENT) {
			p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
		}
		p.next()
	}
	return n
}

// parseDefinerClause parses DEFINER = user.
func (p *Parser) parseDefinerClause() *ast.Node {
	n := p.open(ast.DefinerClause)
	defer p.close(n)
	p.expectKw("DEFINER")
	p.expect(token.EQ)
	p.parseUserName()
	return n
}

// parseNumber parses a numeric literal into the current node.
func (p *Parser) parseNumber() token.Token {
	if !p.check(token.NUMBER) {
		p.fail(fmt.Sprintf(ErrExpectedNumber, describe(p.token)))
	}
	return p.next()
}

// acceptEquals consumes an optional "=".
func (p *Parser) acceptEquals() {
	p.match(token.EQ)
}
