package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Partitioning.
//
// Grammar:
//
//	partitioning   → PARTITION BY partition_type [PARTITIONS NUMBER] [sub_partitions] [partition_definitions]
//	partition_type → [LINEAR] HASH "(" expr ")"
//	               | [LINEAR] KEY [ALGORITHM "=" NUMBER] "(" [identifier {"," identifier}] ")"
//	               | (RANGE|LIST) ("(" expr ")" | COLUMNS column_list)
//	sub_partitions → SUBPARTITION BY [LINEAR] (HASH "(" expr ")" | KEY [ALGORITHM "=" NUMBER] column_list)
//	                 [SUBPARTITIONS NUMBER]
//	partition_definitions  → "(" partition_definition {"," partition_definition} ")"
//	partition_definition   → PARTITION identifier [partition_values] {partition_option}
//	                         ["(" subpartition_definition {"," subpartition_definition} ")"]
//	partition_values       → VALUES (LESS THAN ("(" expr {"," expr} ")" | MAXVALUE) | IN "(" expr {"," expr} ")")
//	subpartition_definition → SUBPARTITION identifier {partition_option}
//	partition_option → [STORAGE] ENGINE [=] identifier | COMMENT [=] STRING
//	                 | (DATA|INDEX) DIRECTORY [=] STRING | (MAX_ROWS|MIN_ROWS|NODEGROUP) [=] NUMBER
//	                 | TABLESPACE [=] identifier

// parsePartitioning parses a PARTITION BY clause.
func (p *Parser) parsePartitioning() {
	n := p.open(ast.Partition)
	defer p.close(n)
	p.expectKw("PARTITION", "BY")

	switch {
	case p.isSeq("LINEAR", "HASH"), p.is("HASH"):
		def := p.open(ast.PartitionDefHash)
		p.accept("LINEAR")
		p.expectKw("HASH")
		p.parseParenExpr()
		p.close(def)
	case p.isSeq("LINEAR", "KEY"), p.is("KEY"):
		def := p.open(ast.PartitionDefKey)
		p.accept("LINEAR")
		p.expectKw("KEY")
		p.parseKeyAlgorithm()
		p.parseOptionalColumnList()
		p.close(def)
	case p.isAny("RANGE", "LIST"):
		def := p.open(ast.PartitionDefRangeList)
		p.next()
		if p.accept("COLUMNS") {
			p.parseColumnList()
		} else {
			p.parseParenExpr()
		}
		p.close(def)
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "HASH, KEY, RANGE or LIST"))
	}

	if p.accept("PARTITIONS") {
		p.parseNumber()
	}
	if p.isSeq("SUBPARTITION", "BY") {
		p.parseSubPartitions()
	}
	if p.check(token.LPAREN) {
		p.parsePartitionDefinitions()
	}
}

func (p *Parser) parseKeyAlgorithm() {
	if p.is("ALGORITHM") {
		p.next()
		p.expect(token.EQ)
		p.parseNumber()
	}
}

// parseOptionalColumnList parses "(" [identifier {"," identifier}] ")".
func (p *Parser) parseOptionalColumnList() {
	if p.check(token.LPAREN) && p.peek.Type == token.RPAREN {
		n := p.open(ast.ColumnList)
		p.next()
		p.next()
		p.close(n)
		return
	}
	p.parseColumnList()
}

func (p *Parser) parseSubPartitions() {
	n := p.open(ast.SubPartitions)
	defer p.close(n)
	p.expectKw("SUBPARTITION", "BY")
	p.accept("LINEAR")
	switch {
	case p.accept("HASH"):
		p.parseParenExpr()
	case p.accept("KEY"):
		p.parseKeyAlgorithm()
		p.parseOptionalColumnList()
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "HASH or KEY"))
	}
	if p.accept("SUBPARTITIONS") {
		p.parseNumber()
	}
}

func (p *Parser) parsePartitionDefinitions() {
	n := p.open(ast.PartitionDefinitions)
	defer p.close(n)
	p.expect(token.LPAREN)
	for {
		p.parsePartitionDefinition()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parsePartitionDefinition() {
	n := p.open(ast.PartitionDefinition)
	defer p.close(n)
	p.expectKw("PARTITION")
	p.parseIdentifier()
	if p.is("VALUES") {
		p.parsePartitionValues()
	}
	p.parsePartitionOptions()
	if p.check(token.LPAREN) {
		p.next()
		for {
			p.parseSubpartitionDefinition()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
}

func (p *Parser) parsePartitionValues() {
	n := p.open(ast.PartitionValues)
	defer p.close(n)
	p.expectKw("VALUES")
	switch {
	case p.is("LESS"):
		p.expectKw("LESS", "THAN")
		if p.accept("MAXVALUE") {
			return
		}
		p.parseExprList()
	case p.is("IN"):
		p.next()
		p.parseExprList()
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "LESS THAN or IN"))
	}
}

func (p *Parser) parseSubpartitionDefinition() {
	n := p.open(ast.SubpartitionDefinition)
	defer p.close(n)
	p.expectKw("SUBPARTITION")
	p.parseIdentifier()
	p.parsePartitionOptions()
}

func (p *Parser) startsPartitionOption() bool {
	return p.isAny("ENGINE", "COMMENT", "MAX_ROWS", "MIN_ROWS", "NODEGROUP", "TABLESPACE") ||
		p.isSeq("STORAGE", "ENGINE") || p.isSeq("DATA", "DIRECTORY") || p.isSeq("INDEX", "DIRECTORY")
}

func (p *Parser) parsePartitionOptions() {
	for p.startsPartitionOption() {
		p.parsePartitionOption()
	}
}

func (p *Parser) parsePartitionOption() {
	n := p.open(ast.PartitionOption)
	defer p.close(n)
	switch {
	case p.isAny("STORAGE", "ENGINE"):
		p.accept("STORAGE")
		p.expectKw("ENGINE")
		p.acceptEquals()
		p.parseTextOrIdentifier()
	case p.is("COMMENT"):
		p.next()
		p.acceptEquals()
		p.parseTextLiteral()
	case p.isAny("DATA", "INDEX"):
		p.next()
		p.expectKw("DIRECTORY")
		p.acceptEquals()
		p.parseTextLiteral()
	case p.is("TABLESPACE"):
		p.next()
		p.acceptEquals()
		p.parseIdentifier()
	default:
		p.next()
		p.acceptEquals()
		p.parseNumber()
	}
}
