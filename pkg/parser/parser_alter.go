package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// ALTER TABLE and CREATE INDEX.
//
// Grammar:
//
//	alter_table     → ALTER [ONLINE|OFFLINE] [IGNORE] TABLE table_ref [alter_list] [partitioning]
//	alter_list      → alter_list_item {[","] alter_list_item}
//	alter_list_item → ADD [COLUMN] (column_definition [place] | table_element_list)
//	                | ADD table_constraint_def
//	                | CHANGE [COLUMN] identifier column_definition [place]
//	                | MODIFY [COLUMN] column_definition [place]
//	                | DROP [COLUMN] identifier [RESTRICT|CASCADE]
//	                | DROP (INDEX|KEY) identifier | DROP PRIMARY KEY
//	                | DROP FOREIGN KEY identifier | DROP (CHECK|CONSTRAINT) identifier
//	                | RENAME [TO|AS] table_name
//	                | RENAME (INDEX|KEY) identifier TO identifier
//	                | RENAME COLUMN identifier TO identifier
//	                | ALTER [COLUMN] identifier (SET DEFAULT default_value | DROP DEFAULT | SET (VISIBLE|INVISIBLE))
//	                | ALTER INDEX identifier (VISIBLE|INVISIBLE)
//	                | CONVERT TO (CHARACTER SET|CHARSET) charset_name [COLLATE collation_name]
//	                | alter_algorithm_option | alter_lock_option
//	                | create_table_option
//	                | other_alter_item
//	place           → FIRST | AFTER identifier
//	alter_algorithm_option → ALGORITHM [=] (DEFAULT|INPLACE|COPY|INSTANT)
//	alter_lock_option      → LOCK [=] (DEFAULT|NONE|SHARED|EXCLUSIVE)
//
//	create_index    → INDEX identifier [index_type] create_index_target
//	                  {index_option | alter_algorithm_option | alter_lock_option}
//	create_index_target → ON table_ref key_list
//
// Items the analyser ignores (ENABLE KEYS, ORDER BY, partition maintenance, ...)
// are kept as AlterListItem nodes holding their raw tokens.

// parseAlterTable parses the rest of ALTER TABLE.
func (p *Parser) parseAlterTable() {
	p.expectKw("ALTER")
	if !p.accept("ONLINE") {
		p.accept("OFFLINE")
	}
	p.accept("IGNORE")
	p.expectKw("TABLE")
	p.parseNamed(ast.TableRef)

	if p.atEnd() {
		return
	}
	list := p.open(ast.AlterList)
	for !p.atEnd() && !p.isSeq("PARTITION", "BY") {
		p.parseAlterListItem()
		p.match(token.COMMA)
	}
	p.close(list)
	if p.isSeq("PARTITION", "BY") {
		p.parsePartitioning()
	}
}

func (p *Parser) parseAlterListItem() {
	switch {
	case p.is("ALGORITHM"):
		p.parseAlterAlgorithmOption()
		return
	case p.is("LOCK"):
		p.parseAlterLockOption()
		return
	}

	n := p.open(ast.AlterListItem)
	defer p.close(n)

	switch {
	case p.is("ADD"):
		p.parseAlterAdd()
	case p.is("CHANGE"):
		p.next()
		p.accept("COLUMN")
		p.parseIdentifier()
		p.parseColumnDefinition()
		p.parsePlace()
	case p.is("MODIFY"):
		p.next()
		p.accept("COLUMN")
		p.parseColumnDefinition()
		p.parsePlace()
	case p.is("DROP"):
		p.parseAlterDrop()
	case p.is("RENAME"):
		p.next()
		switch {
		case p.isAny("INDEX", "KEY", "COLUMN"):
			p.next()
			p.parseIdentifier()
			p.expectKw("TO")
			p.parseIdentifier()
		default:
			if !p.accept("TO") {
				p.accept("AS")
			}
			p.parseNamed(ast.TableName)
		}
	case p.is("ALTER"):
		p.next()
		if p.accept("INDEX") {
			p.parseIdentifier()
			if !p.accept("VISIBLE") {
				p.expectKw("INVISIBLE")
			}
			return
		}
		p.accept("COLUMN")
		p.parseIdentifier()
		switch {
		case p.isSeq("SET", "DEFAULT"):
			p.acceptSeq("SET", "DEFAULT")
			p.parseDefaultValue()
		case p.isSeq("DROP", "DEFAULT"):
			p.acceptSeq("DROP", "DEFAULT")
		case p.is("SET"):
			p.next()
			if !p.accept("VISIBLE") {
				p.expectKw("INVISIBLE")
			}
		default:
			p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "SET or DROP"))
		}
	case p.is("CONVERT"):
		p.expectKw("CONVERT", "TO")
		p.parseCharsetKeyword()
		p.parseCharsetName(ast.CharsetName)
		if p.accept("COLLATE") {
			p.parseCharsetName(ast.CollationName)
		}
	case p.startsTableOption():
		p.parseTableOption()
	default:
		p.skipAlterItem()
	}
}

// skipAlterItem consumes the tokens of an unsupported item up to the next
// top-level comma.
func (p *Parser) skipAlterItem() {
	depth := 0
	for !p.atEnd() {
		switch p.token.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.COMMA:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}

func (p *Parser) parseAlterAdd() {
	p.expectKw("ADD")
	switch {
	case p.is("PARTITION"):
		p.skipAlterItem()
	case p.startsConstraint():
		p.parseTableConstraintDef()
	default:
		p.accept("COLUMN")
		if p.check(token.LPAREN) {
			p.parseTableElementList()
			return
		}
		p.parseColumnDefinition()
		p.parsePlace()
	}
}

func (p *Parser) parseAlterDrop() {
	p.expectKw("DROP")
	switch {
	case p.isAny("INDEX", "KEY", "CHECK", "CONSTRAINT"):
		p.next()
		p.parseIdentifier()
	case p.is("PRIMARY"):
		p.expectKw("PRIMARY", "KEY")
	case p.is("FOREIGN"):
		p.expectKw("FOREIGN", "KEY")
		p.parseIdentifier()
	case p.is("PARTITION"):
		p.skipAlterItem()
	default:
		p.accept("COLUMN")
		p.parseIdentifier()
		if !p.accept("RESTRICT") {
			p.accept("CASCADE")
		}
	}
}

func (p *Parser) parsePlace() {
	switch {
	case p.is("FIRST"):
		n := p.open(ast.Place)
		p.next()
		p.close(n)
	case p.is("AFTER"):
		n := p.open(ast.Place)
		p.next()
		p.parseIdentifier()
		p.close(n)
	}
}

func (p *Parser) parseAlterAlgorithmOption() {
	n := p.open(ast.AlterAlgorithmOption)
	defer p.close(n)
	p.expectKw("ALGORITHM")
	p.acceptEquals()
	p.expectWord()
}

func (p *Parser) parseAlterLockOption() {
	n := p.open(ast.AlterLockOption)
	defer p.close(n)
	p.expectKw("LOCK")
	p.acceptEquals()
	p.expectWord()
}

// parseCreateIndex parses the rest of CREATE [UNIQUE|FULLTEXT|SPATIAL] INDEX.
func (p *Parser) parseCreateIndex() {
	p.expectKw("INDEX")
	n := p.open(ast.IndexName)
	p.parseIdentifier()
	p.close(n)
	p.parseOptionalIndexType()

	target := p.open(ast.CreateIndexTarget)
	p.expectKw("ON")
	p.parseNamed(ast.TableRef)
	p.parseKeyList()
	p.close(target)

	for !p.atEnd() {
		switch {
		case p.is("ALGORITHM"):
			p.parseAlterAlgorithmOption()
		case p.is("LOCK"):
			p.parseAlterLockOption()
		case p.isAny("USING", "TYPE"):
			p.parseIndexType()
		case p.startsIndexOption():
			p.parseIndexOption()
		default:
			p.fail(fmt.Sprintf(ErrUnsupportedClause, describe(p.token)))
		}
	}
}
