package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Data types.
//
// Grammar:
//
//	data_type     → type_name [type_params] {field_options} [string_binary] [COLLATE collation_name]
//	type_name     → DOUBLE [PRECISION] | (CHAR|CHARACTER) [VARYING]
//	              | NATIONAL (CHAR|CHARACTER|VARCHAR|VARCHARACTER) [VARYING]
//	              | NCHAR [VARCHAR|VARYING] | LONG [VARCHAR|VARBINARY] | IDENT
//	type_params   → field_length | precision | datetime_precision | string_list
//	field_length  → "(" NUMBER ")"
//	precision     → "(" NUMBER "," NUMBER ")"
//	string_list   → "(" text_literal {"," text_literal} ")"
//	field_options → (SIGNED | UNSIGNED | ZEROFILL)+
//	string_binary → ASCII [BINARY] | UNICODE [BINARY] | BYTE
//	              | BINARY [(CHARACTER SET|CHARSET) charset_name | ASCII | UNICODE]
//	              | (CHARACTER SET|CHARSET) charset_name [BINARY]
//
// The type name words are the only direct word terminals of a DataType node.
// The analyser looks the name up in its type list; the parser does not reject
// unknown names.

// fractional seconds precision applies to these types instead of a length
var datetimeTypes = map[string]bool{
	"TIME":      true,
	"DATETIME":  true,
	"TIMESTAMP": true,
}

// parseDataType parses a column, parameter or return data type.
func (p *Parser) parseDataType() *ast.Node {
	n := p.open(ast.DataType)
	defer p.close(n)

	p.parseTypeName()

	if p.check(token.LPAREN) {
		switch {
		case p.peek.Type == token.STRING:
			p.parseStringList()
		case p.peek.Type == token.NUMBER && p.peek2.Type == token.COMMA:
			p.parsePrecision()
		case datetimeTypes[n.FirstKeyword()]:
			p.parseFieldLength(ast.TypeDatetimePrecision)
		default:
			p.parseFieldLength(ast.FieldLength)
		}
	}

	if p.isAny("SIGNED", "UNSIGNED", "ZEROFILL") {
		opts := p.open(ast.FieldOptions)
		for p.isAny("SIGNED", "UNSIGNED", "ZEROFILL") {
			p.next()
		}
		p.close(opts)
	}

	if p.isAny("ASCII", "UNICODE", "BYTE", "BINARY") || p.isCharsetKeyword() {
		p.parseStringBinary()
	}

	if p.is("COLLATE") {
		p.next()
		p.parseCharsetName(ast.CollationName)
	}
	return n
}

func (p *Parser) parseTypeName() {
	if !p.check(token.IDENT) {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "data type"))
	}
	switch {
	case p.is("DOUBLE"):
		p.next()
		p.accept("PRECISION")
	case p.isAny("CHAR", "CHARACTER"):
		p.next()
		p.accept("VARYING")
	case p.is("NATIONAL"):
		p.next()
		if !p.isAny("CHAR", "CHARACTER", "VARCHAR", "VARCHARACTER") {
			p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "CHAR or VARCHAR"))
		}
		p.next()
		p.accept("VARYING")
	case p.is("NCHAR"):
		p.next()
		if !p.accept("VARCHAR") {
			p.accept("VARYING")
		}
	case p.is("LONG"):
		p.next()
		if !p.accept("VARCHAR") {
			p.accept("VARBINARY")
		}
	default:
		p.next()
	}
}

func (p *Parser) parseFieldLength(kind ast.Kind) {
	n := p.open(kind)
	defer p.close(n)
	p.expect(token.LPAREN)
	p.parseNumber()
	p.expect(token.RPAREN)
}

func (p *Parser) parsePrecision() {
	n := p.open(ast.Precision)
	defer p.close(n)
	p.expect(token.LPAREN)
	p.parseNumber()
	p.expect(token.COMMA)
	p.parseNumber()
	p.expect(token.RPAREN)
}

func (p *Parser) parseStringList() {
	n := p.open(ast.StringList)
	defer p.close(n)
	p.expect(token.LPAREN)
	for {
		p.parseTextLiteral()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parseStringBinary() {
	n := p.open(ast.StringBinary)
	defer p.close(n)
	switch {
	case p.isAny("ASCII", "UNICODE"):
		p.next()
		p.accept("BINARY")
	case p.is("BYTE"):
		p.next()
	case p.is("BINARY"):
		p.next()
		switch {
		case p.isCharsetKeyword():
			p.parseCharsetKeyword()
			p.parseCharsetName(ast.CharsetName)
		case p.isAny("ASCII", "UNICODE"):
			p.next()
		}
	default:
		p.parseCharsetKeyword()
		p.parseCharsetName(ast.CharsetName)
		p.accept("BINARY")
	}
}
