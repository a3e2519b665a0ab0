package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Script and statement dispatch.
//
// Grammar:
//
//	script          → { DELIMITER | END_STMT | statement END_STMT }
//	statement       → CREATE create_prefix* create_object
//	                | ALTER [ONLINE|OFFLINE] [IGNORE] TABLE alter_table
//	                | USE identifier
//	                | other_statement
//	create_prefix   → OR REPLACE | view_algorithm | definer_clause | view_suid
//	                | TEMPORARY | ONLINE | OFFLINE | UNIQUE | FULLTEXT | SPATIAL
//	                | AGGREGATE | UNDO
//	create_database → (DATABASE|SCHEMA) [IF NOT EXISTS] identifier {create_database_option}
//	create_database_option → [DEFAULT] (CHARACTER SET|CHARSET) [=] charset_name_or_default
//	                       | [DEFAULT] COLLATE [=] collation_name_or_default
//	                       | [DEFAULT] ENCRYPTION [=] STRING
//	                       | COMMENT [=] STRING
//
// Statements the analyser has no use for (INSERT, DROP, GRANT, ...) become
// OtherStatement nodes holding their raw tokens.

// parseScript parses statements until the end of input.
func (p *Parser) parseScript() *ast.Node {
	root := p.open(ast.Script)
	for !p.check(token.EOF) {
		switch {
		case p.check(token.END_STMT):
			p.next()
		case p.check(token.DELIMITER):
			n := p.open(ast.DelimiterStatement)
			p.next()
			p.close(n)
		default:
			p.parseStatement()
		}
	}
	p.close(root)
	return root
}

// parseStatement parses one statement. A statement that fails is reduced to an
// OtherStatement covering its raw tokens, and parsing resumes at the delimiter.
func (p *Parser) parseStatement() {
	stmt := p.open(ast.OtherStatement)
	depth := len(p.stack)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(bailout); !ok {
			panic(r)
		}
		p.stack = p.stack[:depth]
		stmt.Kind = ast.OtherStatement
		stmt.Children = nil
		p.skipStatement()
		p.close(stmt)
	}()

	switch {
	case p.is("CREATE"):
		p.parseCreate(stmt)
	case p.isAlterTable():
		stmt.Kind = ast.AlterTable
		p.parseAlterTable()
	case p.is("USE"):
		stmt.Kind = ast.UseStatement
		p.next()
		p.parseIdentifier()
	default:
		p.skipStatement()
	}
	if !p.atEnd() {
		p.fail(fmt.Sprintf(ErrTrailingInput, describe(p.token)))
	}
	p.close(stmt)
}

// skipStatement consumes every token up to the end of the statement.
func (p *Parser) skipStatement() {
	for !p.atEnd() {
		p.next()
	}
}

func (p *Parser) isAlterTable() bool {
	return p.isSeq("ALTER", "TABLE") ||
		p.isSeq("ALTER", "IGNORE", "TABLE") ||
		p.isSeq("ALTER", "ONLINE", "TABLE") ||
		p.isSeq("ALTER", "OFFLINE", "TABLE")
}

// parseCreate reads the CREATE prefix and dispatches on the object keyword.
// The statement kind is only known once the object keyword is reached, so it is
// assigned to stmt here.
func (p *Parser) parseCreate(stmt *ast.Node) {
	p.expectKw("CREATE")

prefix:
	for {
		switch {
		case p.isSeq("OR", "REPLACE"):
			p.acceptSeq("OR", "REPLACE")
		case p.is("ALGORITHM") && p.peek.Type == token.EQ:
			p.parseViewAlgorithm()
		case p.is("DEFINER") && p.peek.Type == token.EQ:
			p.parseDefinerClause()
		case p.isSeq("SQL", "SECURITY"):
			p.parseViewSuid()
		case p.isAny("TEMPORARY", "ONLINE", "OFFLINE", "UNIQUE", "FULLTEXT", "SPATIAL", "AGGREGATE", "UNDO"):
			p.next()
		default:
			break prefix
		}
	}

	switch {
	case p.isAny("DATABASE", "SCHEMA"):
		stmt.Kind = ast.CreateDatabase
		p.parseCreateDatabase()
	case p.is("TABLE"):
		stmt.Kind = ast.CreateTable
		p.parseCreateTable()
	case p.is("INDEX"):
		stmt.Kind = ast.CreateIndex
		p.parseCreateIndex()
	case p.is("PROCEDURE"):
		stmt.Kind = ast.CreateProcedure
		p.parseCreateProcedure()
	case p.is("FUNCTION"):
		p.parseCreateFunction(stmt)
	case p.is("TRIGGER"):
		stmt.Kind = ast.CreateTrigger
		p.parseCreateTrigger()
	case p.is("VIEW"):
		stmt.Kind = ast.CreateView
		p.parseCreateView()
	case p.is("SERVER"):
		stmt.Kind = ast.CreateServer
		p.parseCreateServer()
	case p.is("TABLESPACE"):
		stmt.Kind = ast.CreateTablespace
		p.parseCreateTablespace()
	case p.isSeq("LOGFILE", "GROUP"):
		stmt.Kind = ast.CreateLogfileGroup
		p.parseCreateLogfileGroup()
	case p.is("EVENT"):
		stmt.Kind = ast.CreateEvent
		p.parseCreateEvent()
	default:
		// CREATE USER, CREATE ROLE, ... are not analysed.
		p.skipStatement()
	}
}

// parseCreateDatabase parses the rest of CREATE DATABASE / CREATE SCHEMA.
func (p *Parser) parseCreateDatabase() {
	p.next() // DATABASE or SCHEMA
	p.parseIfNotExists()
	p.parseIdentifier()
	for !p.atEnd() {
		p.parseCreateDatabaseOption()
	}
}

func (p *Parser) parseCreateDatabaseOption() {
	n := p.open(ast.CreateDatabaseOption)
	defer p.close(n)
	p.accept("DEFAULT")
	switch {
	case p.isCharsetKeyword():
		p.parseCharsetKeyword()
		p.acceptEquals()
		p.parseCharsetName(ast.CharsetNameOrDefault)
	case p.is("COLLATE"):
		p.next()
		p.acceptEquals()
		p.parseCharsetName(ast.CollationNameOrDefault)
	case p.is("ENCRYPTION"), p.is("COMMENT"):
		p.next()
		p.acceptEquals()
		p.parseTextLiteral()
	case p.is("READ") && p.peek.Is("ONLY"):
		p.next()
		p.next()
		p.acceptEquals()
		if !p.match(token.NUMBER) {
			p.expectKw("DEFAULT")
		}
	default:
		p.fail(fmt.Sprintf(ErrUnsupportedClause, describe(p.token)))
	}
}

// parseCharsetKeyword consumes CHARACTER SET, CHAR SET or CHARSET.
func (p *Parser) parseCharsetKeyword() {
	if p.acceptSeq("CHARACTER", "SET") || p.acceptSeq("CHAR", "SET") {
		return
	}
	p.expectKw("CHARSET")
}

// parseCharsetName parses a charset or collation name (or DEFAULT, or BINARY)
// into a node of the given kind.
func (p *Parser) parseCharsetName(kind ast.Kind) *ast.Node {
	n := p.open(kind)
	defer p.close(n)
	switch p.token.Type {
	case token.IDENT, token.QUOTED_IDENT, token.STRING:
		p.next()
	default:
		p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
	}
	return n
}

// parseTextOrIdentifier parses a name that may be given as identifier or string
// into an Identifier node.
func (p *Parser) parseTextOrIdentifier() *ast.Node {
	n := p.open(ast.Identifier)
	defer p.close(n)
	switch p.token.Type {
	case token.IDENT, token.QUOTED_IDENT, token.STRING:
		p.next()
	default:
		p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
	}
	return n
}

func (p *Parser) isCharsetKeyword() bool {
	return p.isSeq("CHARACTER", "SET") || p.isSeq("CHAR", "SET") || p.is("CHARSET")
}
