package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Views, servers, tablespaces and logfile groups.
//
// Grammar:
//
//	create_view      → VIEW table_name [column_list] AS query [view_check_option]
//	view_algorithm   → ALGORITHM "=" (UNDEFINED|MERGE|TEMPTABLE)
//	view_suid        → SQL SECURITY (DEFINER|INVOKER)
//	view_check_option → WITH [CASCADED|LOCAL] CHECK OPTION
//	create_server    → SERVER text_or_identifier FOREIGN DATA WRAPPER text_or_identifier
//	                   OPTIONS "(" server_option {"," server_option} ")"
//	server_option    → (HOST|DATABASE|USER|PASSWORD|SOCKET|OWNER) STRING | PORT NUMBER
//	create_tablespace → TABLESPACE identifier [ADD DATAFILE STRING] [USE LOGFILE GROUP identifier]
//	                    {tablespace_option [","]}
//	create_logfile_group → LOGFILE GROUP identifier ADD UNDOFILE STRING {logfile_group_option [","]}
//	tablespace_option / logfile_group_option →
//	      (INITIAL_SIZE|AUTOEXTEND_SIZE|MAX_SIZE|EXTENT_SIZE|FILE_BLOCK_SIZE
//	       |UNDO_BUFFER_SIZE|REDO_BUFFER_SIZE) [=] size_number
//	    | NODEGROUP [=] NUMBER | [STORAGE] ENGINE [=] text_or_identifier
//	    | WAIT | NO_WAIT | COMMENT [=] STRING | ENCRYPTION [=] STRING

func (p *Parser) parseViewAlgorithm() {
	n := p.open(ast.ViewAlgorithm)
	defer p.close(n)
	p.expectKw("ALGORITHM")
	p.expect(token.EQ)
	if !p.isAny("UNDEFINED", "MERGE", "TEMPTABLE") {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "UNDEFINED, MERGE or TEMPTABLE"))
	}
	p.next()
}

func (p *Parser) parseViewSuid() {
	n := p.open(ast.ViewSuid)
	defer p.close(n)
	p.expectKw("SQL", "SECURITY")
	if !p.isAny("DEFINER", "INVOKER") {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "DEFINER or INVOKER"))
	}
	p.next()
}

// parseCreateView parses the rest of CREATE VIEW.
func (p *Parser) parseCreateView() {
	p.expectKw("VIEW")
	p.parseNamed(ast.TableName)
	if p.check(token.LPAREN) {
		p.parseColumnList()
	}
	p.expectKw("AS")
	p.parseExprUntil(p.isCheckOption)
	if p.is("WITH") {
		n := p.open(ast.ViewCheckOption)
		p.next()
		if !p.accept("CASCADED") {
			p.accept("LOCAL")
		}
		p.expectKw("CHECK", "OPTION")
		p.close(n)
	}
}

func (p *Parser) isCheckOption() bool {
	return p.isSeq("WITH", "CHECK", "OPTION") ||
		p.isSeq("WITH", "CASCADED", "CHECK") ||
		p.isSeq("WITH", "LOCAL", "CHECK")
}

// parseCreateServer parses the rest of CREATE SERVER.
func (p *Parser) parseCreateServer() {
	p.expectKw("SERVER")
	p.parseTextOrIdentifier()
	p.expectKw("FOREIGN", "DATA", "WRAPPER")
	p.parseTextOrIdentifier()
	p.expectKw("OPTIONS")
	p.expect(token.LPAREN)
	for {
		p.parseServerOption()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parseServerOption() {
	n := p.open(ast.ServerOption)
	defer p.close(n)
	switch {
	case p.isAny("HOST", "DATABASE", "USER", "PASSWORD", "SOCKET", "OWNER"):
		p.next()
		p.parseTextLiteral()
	case p.is("PORT"):
		p.next()
		p.parseNumber()
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "server option"))
	}
}

// parseCreateTablespace parses the rest of CREATE [UNDO] TABLESPACE.
func (p *Parser) parseCreateTablespace() {
	p.expectKw("TABLESPACE")
	p.parseIdentifier()
	if p.accept("ADD") {
		p.expectKw("DATAFILE")
		p.parseTextLiteral()
	}
	if p.is("USE") {
		n := p.open(ast.LogfileGroupRef)
		p.expectKw("USE", "LOGFILE", "GROUP")
		p.parseIdentifier()
		p.close(n)
	}
	for !p.atEnd() {
		p.parseStorageOption(ast.TablespaceOption)
		p.match(token.COMMA)
	}
}

// parseCreateLogfileGroup parses the rest of CREATE LOGFILE GROUP.
func (p *Parser) parseCreateLogfileGroup() {
	p.expectKw("LOGFILE", "GROUP")
	p.parseIdentifier()
	p.expectKw("ADD", "UNDOFILE")
	p.parseTextLiteral()
	for !p.atEnd() {
		p.parseStorageOption(ast.LogfileGroupOption)
		p.match(token.COMMA)
	}
}

// parseStorageOption parses a tablespace or logfile group option.
func (p *Parser) parseStorageOption(kind ast.Kind) {
	n := p.open(kind)
	defer p.close(n)
	switch {
	case p.isAny("INITIAL_SIZE", "AUTOEXTEND_SIZE", "MAX_SIZE", "EXTENT_SIZE", "FILE_BLOCK_SIZE",
		"UNDO_BUFFER_SIZE", "REDO_BUFFER_SIZE"):
		p.next()
		p.acceptEquals()
		p.parseSizeNumber()
	case p.is("NODEGROUP"):
		p.next()
		p.acceptEquals()
		p.parseNumber()
	case p.isAny("STORAGE", "ENGINE"):
		p.accept("STORAGE")
		p.expectKw("ENGINE")
		p.acceptEquals()
		p.parseTextOrIdentifier()
	case p.isAny("WAIT", "NO_WAIT"):
		p.next()
	case p.isAny("COMMENT", "ENCRYPTION"):
		p.next()
		p.acceptEquals()
		p.parseTextLiteral()
	default:
		p.fail(fmt.Sprintf(ErrUnsupportedClause, describe(p.token)))
	}
}
