package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Stored programs: procedures, functions, UDFs, triggers and events.
//
// Grammar:
//
//	create_procedure → PROCEDURE [IF NOT EXISTS] qualified_identifier
//	                   "(" [procedure_parameter {"," procedure_parameter}] ")" {routine_option} body
//	procedure_parameter → [IN|OUT|INOUT] identifier data_type
//	create_function  → FUNCTION [IF NOT EXISTS] qualified_identifier
//	                   "(" [function_parameter {"," function_parameter}] ")"
//	                   returns_clause {routine_option} body
//	function_parameter → identifier data_type
//	returns_clause   → RETURNS data_type
//	create_udf       → [AGGREGATE] FUNCTION [IF NOT EXISTS] identifier
//	                   RETURNS (STRING|INTEGER|INT|REAL|DECIMAL) SONAME text_literal
//	routine_option   → COMMENT text_literal | LANGUAGE SQL | [NOT] DETERMINISTIC
//	                 | CONTAINS SQL | NO SQL | READS SQL DATA | MODIFIES SQL DATA
//	                 | SQL SECURITY (DEFINER|INVOKER)
//	create_trigger   → TRIGGER [IF NOT EXISTS] qualified_identifier (BEFORE|AFTER)
//	                   (INSERT|UPDATE|DELETE) ON table_ref FOR EACH ROW
//	                   [trigger_follows_precedes_clause] body
//	trigger_follows_precedes_clause → (FOLLOWS|PRECEDES) identifier
//	create_event     → EVENT [IF NOT EXISTS] qualified_identifier ON SCHEDULE schedule
//	                   [ON COMPLETION [NOT] PRESERVE] [ENABLE | DISABLE [ON (SLAVE|REPLICA)]]
//	                   [COMMENT text_literal] DO body
//	schedule         → AT expr | EVERY expr interval_unit [STARTS expr] [ENDS expr]

// parseCreateProcedure parses the rest of CREATE PROCEDURE.
func (p *Parser) parseCreateProcedure() {
	p.expectKw("PROCEDURE")
	p.parseIfNotExists()
	p.parseQualifiedIdentifier()
	p.expect(token.LPAREN)
	for !p.check(token.RPAREN) {
		n := p.open(ast.ProcedureParameter)
		if !p.accept("IN") && !p.accept("OUT") {
			p.accept("INOUT")
		}
		p.parseIdentifier()
		p.parseDataType()
		p.close(n)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	p.parseRoutineOptions()
	p.parseBody()
}

// parseCreateFunction parses a stored function or a loadable function (UDF);
// the two are told apart by what follows the name.
func (p *Parser) parseCreateFunction(stmt *ast.Node) {
	p.expectKw("FUNCTION")
	p.parseIfNotExists()
	p.parseQualifiedIdentifier()

	if p.is("RETURNS") {
		stmt.Kind = ast.CreateUdf
		ret := p.open(ast.ReturnsClause)
		p.next()
		if !p.isAny("STRING", "INTEGER", "INT", "REAL", "DECIMAL") {
			p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "STRING, INTEGER, REAL or DECIMAL"))
		}
		p.next()
		p.close(ret)
		p.expectKw("SONAME")
		p.parseTextLiteral()
		return
	}

	stmt.Kind = ast.CreateFunction
	p.expect(token.LPAREN)
	for !p.check(token.RPAREN) {
		n := p.open(ast.FunctionParameter)
		p.parseIdentifier()
		p.parseDataType()
		p.close(n)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)

	ret := p.open(ast.ReturnsClause)
	p.expectKw("RETURNS")
	p.parseDataType()
	p.close(ret)

	p.parseRoutineOptions()
	p.parseBody()
}

func (p *Parser) startsRoutineOption() bool {
	return p.isAny("COMMENT", "LANGUAGE", "DETERMINISTIC", "CONTAINS", "READS", "MODIFIES") ||
		p.isSeq("NOT", "DETERMINISTIC") || p.isSeq("NO", "SQL") || p.isSeq("SQL", "SECURITY")
}

func (p *Parser) parseRoutineOptions() {
	for p.startsRoutineOption() {
		p.parseRoutineOption()
	}
}

func (p *Parser) parseRoutineOption() {
	n := p.open(ast.RoutineOption)
	defer p.close(n)
	switch {
	case p.is("COMMENT"):
		p.next()
		p.parseTextLiteral()
	case p.is("LANGUAGE"):
		p.expectKw("LANGUAGE", "SQL")
	case p.is("NOT"):
		p.expectKw("NOT", "DETERMINISTIC")
	case p.is("DETERMINISTIC"):
		p.next()
	case p.is("CONTAINS"):
		p.expectKw("CONTAINS", "SQL")
	case p.is("NO"):
		p.expectKw("NO", "SQL")
	case p.isAny("READS", "MODIFIES"):
		p.next()
		p.expectKw("SQL", "DATA")
	case p.is("SQL"):
		p.expectKw("SQL", "SECURITY")
		if !p.isAny("DEFINER", "INVOKER") {
			p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "DEFINER or INVOKER"))
		}
		p.next()
	}
}

// parseCreateTrigger parses the rest of CREATE TRIGGER.
func (p *Parser) parseCreateTrigger() {
	p.expectKw("TRIGGER")
	p.parseIfNotExists()
	p.parseQualifiedIdentifier()
	if !p.isAny("BEFORE", "AFTER") {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "BEFORE or AFTER"))
	}
	p.next()
	if !p.isAny("INSERT", "UPDATE", "DELETE") {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "INSERT, UPDATE or DELETE"))
	}
	p.next()
	p.expectKw("ON")
	p.parseNamed(ast.TableRef)
	p.expectKw("FOR", "EACH", "ROW")
	if p.isAny("FOLLOWS", "PRECEDES") {
		n := p.open(ast.TriggerFollowsPrecedesClause)
		p.next()
		p.parseIdentifier()
		p.close(n)
	}
	p.parseBody()
}

// interval units accepted by EVERY
var intervalUnits = []string{
	"MICROSECOND", "SECOND", "MINUTE", "HOUR", "DAY", "WEEK", "MONTH", "QUARTER", "YEAR",
	"SECOND_MICROSECOND", "MINUTE_MICROSECOND", "MINUTE_SECOND", "HOUR_MICROSECOND",
	"HOUR_SECOND", "HOUR_MINUTE", "DAY_MICROSECOND", "DAY_SECOND", "DAY_MINUTE", "DAY_HOUR",
	"YEAR_MONTH",
}

// parseCreateEvent parses the rest of CREATE EVENT.
func (p *Parser) parseCreateEvent() {
	p.expectKw("EVENT")
	p.parseIfNotExists()
	p.parseQualifiedIdentifier()
	p.expectKw("ON", "SCHEDULE")
	p.parseSchedule()

	for !p.is("DO") && !p.atEnd() {
		p.parseEventOption()
	}
	p.expectKw("DO")
	p.parseBody()
}

func (p *Parser) parseSchedule() {
	n := p.open(ast.Schedule)
	defer p.close(n)

	stopAtOptions := func() bool {
		return p.isSeq("ON", "COMPLETION") || p.isAny("ENABLE", "DISABLE", "COMMENT", "DO")
	}
	if p.accept("AT") {
		p.parseExprUntil(stopAtOptions)
		return
	}
	p.expectKw("EVERY")
	p.parseExprUntil(p.stopAtWords(intervalUnits...))
	if !p.isAny(intervalUnits...) {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "interval unit"))
	}
	p.next()
	if p.accept("STARTS") {
		p.parseExprUntil(func() bool { return p.is("ENDS") || stopAtOptions() })
	}
	if p.accept("ENDS") {
		p.parseExprUntil(stopAtOptions)
	}
}

func (p *Parser) parseEventOption() {
	n := p.open(ast.EventOption)
	defer p.close(n)
	switch {
	case p.is("ON"):
		p.expectKw("ON", "COMPLETION")
		p.accept("NOT")
		p.expectKw("PRESERVE")
	case p.is("ENABLE"):
		p.next()
	case p.is("DISABLE"):
		p.next()
		if p.accept("ON") {
			if !p.isAny("SLAVE", "REPLICA") {
				p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "SLAVE or REPLICA"))
			}
			p.next()
		}
	case p.is("COMMENT"):
		p.next()
		p.parseTextLiteral()
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "DO"))
	}
}
