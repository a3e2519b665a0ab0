package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Expressions, default values and bodies.
//
// The analyser never evaluates expressions: generated columns, CHECK
// constraints, partition bounds, view queries and routine bodies are kept as
// source text. They are therefore captured as balanced token runs rather than
// parsed by precedence.
//
// Grammar:
//
//	expr          → { token | "(" expr ")" }        (stops at a caller-defined word)
//	default_value → ["+"|"-"] NUMBER | text_literal | NULL | TRUE | FALSE
//	              | now_function | "(" expr ")" | identifier
//	now_function  → (CURRENT_TIMESTAMP|NOW|LOCALTIME|LOCALTIMESTAMP) ["(" [NUMBER] ")"]
//	body          → compound_statement | simple_statement
//	size_number   → NUMBER | IDENT                   (16M, 1G, ...)

// parseExprUntil captures tokens into an Expr node. At nesting depth zero it
// stops before a token for which stop returns true, before an unmatched ")" and
// at the end of the statement.
func (p *Parser) parseExprUntil(stop func() bool) *ast.Node {
	n := p.open(ast.Expr)
	defer p.close(n)
	depth := 0
	for !p.atEnd() {
		if depth == 0 && stop != nil && stop() {
			break
		}
		switch p.token.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return n
			}
			depth--
		}
		p.next()
	}
	if depth != 0 {
		p.fail(ErrUnbalancedParens)
	}
	return n
}

// parseParenExpr parses "(" expr ")". The Expr node covers the inner text only.
func (p *Parser) parseParenExpr() *ast.Node {
	p.expect(token.LPAREN)
	n := p.parseExprUntil(nil)
	p.expect(token.RPAREN)
	return n
}

// parseExprList parses "(" expr {"," expr} ")", one Expr node per item.
func (p *Parser) parseExprList() {
	p.expect(token.LPAREN)
	for {
		p.parseExprUntil(func() bool { return p.check(token.COMMA) })
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

// stopAtWords returns a stop function matching any of the given keywords.
func (p *Parser) stopAtWords(words ...string) func() bool {
	return func() bool {
		return p.isAny(words...)
	}
}

// parseDefaultValue parses the value of a DEFAULT or ON UPDATE clause into an
// Expr node.
func (p *Parser) parseDefaultValue() *ast.Node {
	n := p.open(ast.Expr)
	defer p.close(n)
	switch {
	case p.check(token.PLUS), p.check(token.MINUS):
		p.next()
		p.parseNumber()
	case p.check(token.NUMBER):
		p.next()
	case p.check(token.STRING):
		p.next()
		for p.check(token.STRING) {
			p.next()
		}
	case p.check(token.LPAREN):
		p.next()
		p.parseExprUntil(nil)
		p.expect(token.RPAREN)
	case p.isAny("CURRENT_TIMESTAMP", "NOW", "LOCALTIME", "LOCALTIMESTAMP"):
		p.next()
		if p.match(token.LPAREN) {
			p.match(token.NUMBER)
			p.expect(token.RPAREN)
		}
	case p.check(token.IDENT), p.check(token.QUOTED_IDENT):
		// NULL, TRUE, FALSE, charset introducers (_utf8mb4'x') and bare words
		p.next()
		if p.check(token.STRING) {
			p.next()
		}
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "default value"))
	}
	return n
}

// parseBody captures a routine, trigger or event body into a Body node.
//
// A compound body (BEGIN ... END) may contain statement delimiters when no
// custom DELIMITER is active, so BEGIN/CASE ... END nesting is tracked and the
// body only ends at a delimiter seen outside of any block.
func (p *Parser) parseBody() *ast.Node {
	n := p.open(ast.Body)
	defer p.close(n)
	if p.atEnd() {
		p.fail(ErrUnexpectedEnd)
	}
	depth := 0
	for !p.check(token.EOF) && !p.check(token.DELIMITER) {
		if depth == 0 && p.check(token.END_STMT) {
			break
		}
		switch {
		case p.isAny("BEGIN", "CASE"):
			depth++
		case p.is("END"):
			if depth > 0 && !p.peek.Is("IF") && !p.peek.Is("LOOP") && !p.peek.Is("WHILE") && !p.peek.Is("REPEAT") {
				depth--
			}
		}
		p.next()
	}
	return n
}

// parseSizeNumber parses a size value such as 16M, 1G or 4096.
func (p *Parser) parseSizeNumber() *ast.Node {
	n := p.open(ast.SizeNumber)
	defer p.close(n)
	if !p.check(token.NUMBER) && !p.check(token.IDENT) {
		p.fail(fmt.Sprintf(ErrExpectedNumber, describe(p.token)))
	}
	p.next()
	return n
}
