package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Tables: CREATE TABLE, column definitions, constraints, table options.
//
// Grammar:
//
//	create_table   → TABLE [IF NOT EXISTS] table_name
//	                 ( table_element_list [create_table_options] [partitioning] [table_creation_source]
//	                 | LIKE table_ref
//	                 | "(" LIKE table_ref ")"
//	                 | [create_table_options] [partitioning] table_creation_source )
//	table_element_list → "(" table_element {"," table_element} ")"
//	table_element  → column_definition | table_constraint_def
//	column_definition → identifier data_type {column_attribute | generated_clause | references}
//	column_attribute  → [NOT] NULL | DEFAULT default_value | ON UPDATE now_function
//	                  | AUTO_INCREMENT | SERIAL DEFAULT VALUE | [PRIMARY] KEY | UNIQUE [KEY]
//	                  | COMMENT text_literal | COLLATE collation_name
//	                  | COLUMN_FORMAT (FIXED|DYNAMIC|DEFAULT) | STORAGE (DISK|MEMORY|DEFAULT)
//	                  | VISIBLE | INVISIBLE | SRID NUMBER
//	                  | [CONSTRAINT [identifier]] CHECK "(" expr ")" [[NOT] ENFORCED]
//	generated_clause  → [GENERATED ALWAYS] AS "(" expr ")" [VIRTUAL|STORED]
//	table_constraint_def →
//	      (KEY|INDEX) [index_name] [index_type] key_list {index_option}
//	    | (FULLTEXT|SPATIAL) [KEY|INDEX] [index_name] key_list {index_option}
//	    | [CONSTRAINT [identifier]] ( PRIMARY KEY [index_type] key_list {index_option}
//	                               | UNIQUE [KEY|INDEX] [index_name] [index_type] key_list {index_option}
//	                               | FOREIGN KEY [index_name] key_list references
//	                               | CHECK "(" expr ")" [[NOT] ENFORCED] )
//	key_list       → "(" key_part {"," key_part} ")"
//	key_part       → (identifier ["(" NUMBER ")"] | "(" expr ")") [ASC|DESC]
//	index_type     → (USING|TYPE) (BTREE|HASH|RTREE)
//	index_option   → KEY_BLOCK_SIZE [=] NUMBER | COMMENT text_literal | WITH PARSER identifier
//	               | VISIBLE | INVISIBLE | ENGINE_ATTRIBUTE [=] STRING | index_type
//	references     → REFERENCES table_ref [column_list] [MATCH (FULL|PARTIAL|SIMPLE)]
//	                 {ON (DELETE|UPDATE) reference_option}
//	reference_option → RESTRICT | CASCADE | SET NULL | SET DEFAULT | NO ACTION
//	table_creation_source → [IGNORE|REPLACE] [AS] query

// parseCreateTable parses the rest of CREATE [TEMPORARY] TABLE.
func (p *Parser) parseCreateTable() {
	p.expectKw("TABLE")
	p.parseIfNotExists()
	p.parseNamed(ast.TableName)

	switch {
	case p.is("LIKE"):
		src := p.open(ast.TableCreationSource)
		p.next()
		p.parseNamed(ast.TableRef)
		p.close(src)
		return
	case p.check(token.LPAREN) && p.peek.Is("LIKE"):
		src := p.open(ast.TableCreationSource)
		p.next()
		p.next()
		p.parseNamed(ast.TableRef)
		p.expect(token.RPAREN)
		p.close(src)
		return
	case p.check(token.LPAREN) && !p.peek.Is("SELECT") && !p.peek.Is("WITH"):
		p.parseTableElementList()
	}

	if p.startsTableOption() {
		opts := p.open(ast.CreateTableOptions)
		for p.startsTableOption() {
			p.parseTableOption()
			p.match(token.COMMA)
		}
		p.close(opts)
	}

	if p.isSeq("PARTITION", "BY") {
		p.parsePartitioning()
	}

	if !p.atEnd() {
		src := p.open(ast.TableCreationSource)
		if !p.accept("IGNORE") {
			p.accept("REPLACE")
		}
		p.accept("AS")
		p.parseExprUntil(nil)
		p.close(src)
	}
}

// parseTableElementList parses the parenthesised column and constraint list.
func (p *Parser) parseTableElementList() {
	n := p.open(ast.TableElementList)
	defer p.close(n)
	p.expect(token.LPAREN)
	for {
		if p.startsConstraint() {
			p.parseTableConstraintDef()
		} else {
			p.parseColumnDefinition()
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

func (p *Parser) startsConstraint() bool {
	return p.isAny("CONSTRAINT", "PRIMARY", "UNIQUE", "FOREIGN", "CHECK", "KEY", "INDEX", "FULLTEXT", "SPATIAL")
}

// parseColumnDefinition parses a column name, its data type and attributes.
func (p *Parser) parseColumnDefinition() *ast.Node {
	n := p.open(ast.ColumnDefinition)
	defer p.close(n)
	p.parseIdentifier()
	p.parseDataType()
	for {
		switch {
		case p.isAny("GENERATED", "AS"):
			p.parseGeneratedClause()
		case p.is("REFERENCES"):
			p.parseReferences()
		case p.startsColumnAttribute():
			p.parseColumnAttribute()
		default:
			return n
		}
	}
}

func (p *Parser) startsColumnAttribute() bool {
	switch {
	case p.isAny("NOT", "NULL", "DEFAULT", "AUTO_INCREMENT", "SERIAL", "PRIMARY", "KEY", "UNIQUE",
		"COMMENT", "COLLATE", "COLUMN_FORMAT", "STORAGE", "VISIBLE", "INVISIBLE", "SRID", "CHECK", "CONSTRAINT"):
		return true
	case p.isSeq("ON", "UPDATE"):
		return true
	}
	return false
}

func (p *Parser) parseColumnAttribute() {
	n := p.open(ast.ColumnAttribute)
	defer p.close(n)
	switch {
	case p.is("NOT"):
		p.next()
		if !p.accept("NULL") {
			p.expectKw("SECONDARY")
		}
	case p.is("NULL"), p.is("AUTO_INCREMENT"), p.is("VISIBLE"), p.is("INVISIBLE"):
		p.next()
	case p.is("DEFAULT"):
		p.next()
		p.parseDefaultValue()
	case p.is("ON"):
		p.expectKw("ON", "UPDATE")
		p.parseDefaultValue()
	case p.is("SERIAL"):
		p.expectKw("SERIAL", "DEFAULT", "VALUE")
	case p.is("PRIMARY"):
		p.next()
		p.expectKw("KEY")
	case p.is("KEY"):
		p.next()
	case p.is("UNIQUE"):
		p.next()
		p.accept("KEY")
	case p.is("COMMENT"):
		p.next()
		p.parseTextLiteral()
	case p.is("COLLATE"):
		p.next()
		p.parseCharsetName(ast.CollationName)
	case p.isAny("COLUMN_FORMAT", "STORAGE"):
		p.next()
		if !p.check(token.IDENT) {
			p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
		}
		p.next()
	case p.is("SRID"):
		p.next()
		p.parseNumber()
	case p.is("CONSTRAINT"), p.is("CHECK"):
		if p.accept("CONSTRAINT") && !p.is("CHECK") {
			p.parseIdentifier()
		}
		p.expectKw("CHECK")
		p.parseParenExpr()
		p.parseEnforced()
	}
}

func (p *Parser) parseEnforced() {
	if p.isSeq("NOT", "ENFORCED") {
		p.acceptSeq("NOT", "ENFORCED")
		return
	}
	p.accept("ENFORCED")
}

// parseGeneratedClause parses [GENERATED ALWAYS] AS (expr) [VIRTUAL|STORED].
func (p *Parser) parseGeneratedClause() {
	n := p.open(ast.GeneratedClause)
	defer p.close(n)
	if p.accept("GENERATED") {
		p.expectKw("ALWAYS")
	}
	p.expectKw("AS")
	p.parseParenExpr()
	if !p.accept("VIRTUAL") {
		p.accept("STORED")
	}
}

// parseTableConstraintDef parses an index, key or constraint definition.
func (p *Parser) parseTableConstraintDef() *ast.Node {
	n := p.open(ast.TableConstraintDef)
	defer p.close(n)

	switch {
	case p.isAny("KEY", "INDEX"):
		p.next()
		p.parseOptionalIndexName()
		p.parseOptionalIndexType()
		p.parseKeyList()
		p.parseIndexOptions()
		return n
	case p.isAny("FULLTEXT", "SPATIAL"):
		p.next()
		if !p.accept("KEY") {
			p.accept("INDEX")
		}
		p.parseOptionalIndexName()
		p.parseKeyList()
		p.parseIndexOptions()
		return n
	}

	if p.accept("CONSTRAINT") && p.token.IsIdentifier() {
		p.parseIdentifier()
	}

	switch {
	case p.is("PRIMARY"):
		p.expectKw("PRIMARY", "KEY")
		p.parseOptionalIndexType()
		p.parseKeyList()
		p.parseIndexOptions()
	case p.is("UNIQUE"):
		p.next()
		if !p.accept("KEY") {
			p.accept("INDEX")
		}
		p.parseOptionalIndexName()
		p.parseOptionalIndexType()
		p.parseKeyList()
		p.parseIndexOptions()
	case p.is("FOREIGN"):
		p.expectKw("FOREIGN", "KEY")
		p.parseOptionalIndexName()
		p.parseKeyList()
		p.parseReferences()
	case p.is("CHECK"):
		p.next()
		p.parseParenExpr()
		p.parseEnforced()
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "PRIMARY, UNIQUE, FOREIGN or CHECK"))
	}
	return n
}

func (p *Parser) parseOptionalIndexName() {
	if !p.token.IsIdentifier() || p.isAny("TYPE") && (p.peek.Is("BTREE") || p.peek.Is("HASH") || p.peek.Is("RTREE")) {
		return
	}
	n := p.open(ast.IndexName)
	p.parseIdentifier()
	p.close(n)
}

func (p *Parser) parseOptionalIndexType() {
	if p.isAny("USING", "TYPE") {
		p.parseIndexType()
	}
}

func (p *Parser) parseIndexType() {
	n := p.open(ast.IndexType)
	defer p.close(n)
	p.next() // USING or TYPE
	if !p.isAny("BTREE", "HASH", "RTREE") {
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "BTREE, HASH or RTREE"))
	}
	p.next()
}

// parseKeyList parses the parenthesised index column list.
func (p *Parser) parseKeyList() {
	n := p.open(ast.KeyList)
	defer p.close(n)
	p.expect(token.LPAREN)
	for {
		p.parseKeyPart()
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parseKeyPart() {
	n := p.open(ast.KeyPart)
	defer p.close(n)
	if p.check(token.LPAREN) {
		p.parseParenExpr()
	} else {
		p.parseIdentifier()
		if p.check(token.LPAREN) {
			p.next()
			p.parseNumber()
			p.expect(token.RPAREN)
		}
	}
	if !p.accept("ASC") {
		p.accept("DESC")
	}
}

func (p *Parser) startsIndexOption() bool {
	return p.isAny("KEY_BLOCK_SIZE", "COMMENT", "VISIBLE", "INVISIBLE", "ENGINE_ATTRIBUTE", "SECONDARY_ENGINE_ATTRIBUTE") ||
		p.isSeq("WITH", "PARSER")
}

// parseIndexOptions parses index options and trailing index types.
func (p *Parser) parseIndexOptions() {
	for {
		switch {
		case p.isAny("USING", "TYPE"):
			p.parseIndexType()
		case p.startsIndexOption():
			p.parseIndexOption()
		default:
			return
		}
	}
}

func (p *Parser) parseIndexOption() {
	n := p.open(ast.IndexOption)
	defer p.close(n)
	switch {
	case p.is("KEY_BLOCK_SIZE"):
		p.next()
		p.acceptEquals()
		p.parseNumber()
	case p.is("COMMENT"):
		p.next()
		p.parseTextLiteral()
	case p.is("WITH"):
		p.expectKw("WITH", "PARSER")
		p.parseIdentifier()
	case p.isAny("ENGINE_ATTRIBUTE", "SECONDARY_ENGINE_ATTRIBUTE"):
		p.next()
		p.acceptEquals()
		p.parseTextLiteral()
	default:
		p.next() // VISIBLE or INVISIBLE
	}
}

// parseReferences parses a REFERENCES clause.
func (p *Parser) parseReferences() {
	n := p.open(ast.References)
	defer p.close(n)
	p.expectKw("REFERENCES")
	p.parseNamed(ast.TableRef)
	if p.check(token.LPAREN) {
		p.parseColumnList()
	}
	if p.accept("MATCH") {
		if !p.isAny("FULL", "PARTIAL", "SIMPLE") {
			p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "FULL, PARTIAL or SIMPLE"))
		}
		p.next()
	}
	for p.isSeq("ON", "DELETE") || p.isSeq("ON", "UPDATE") {
		p.parseReferenceOption()
	}
}

func (p *Parser) parseReferenceOption() {
	n := p.open(ast.ReferenceOption)
	defer p.close(n)
	p.next() // ON
	p.next() // DELETE or UPDATE
	switch {
	case p.isAny("RESTRICT", "CASCADE"):
		p.next()
	case p.is("SET"):
		p.next()
		if !p.accept("NULL") {
			p.expectKw("DEFAULT")
		}
	case p.is("NO"):
		p.expectKw("NO", "ACTION")
	default:
		p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "reference option"))
	}
}

// ---------- Table Options ----------

// table option keywords that take a single value token
var simpleTableOptions = []string{
	"ENGINE", "TYPE", "AUTO_INCREMENT", "AVG_ROW_LENGTH", "MAX_ROWS", "MIN_ROWS", "KEY_BLOCK_SIZE",
	"PACK_KEYS", "CHECKSUM", "TABLE_CHECKSUM", "DELAY_KEY_WRITE", "ROW_FORMAT", "STATS_PERSISTENT",
	"STATS_AUTO_RECALC", "STATS_SAMPLE_PAGES", "INSERT_METHOD", "AUTOEXTEND_SIZE",
}

// table option keywords that take a string
var textTableOptions = []string{
	"COMMENT", "CONNECTION", "PASSWORD", "COMPRESSION", "ENCRYPTION",
	"ENGINE_ATTRIBUTE", "SECONDARY_ENGINE_ATTRIBUTE",
}

func (p *Parser) startsTableOption() bool {
	switch {
	case p.isAny(simpleTableOptions...), p.isAny(textTableOptions...):
		return true
	case p.isAny("UNION", "TABLESPACE", "STORAGE", "COLLATE") || p.isCharsetKeyword():
		return true
	case p.isSeq("DATA", "DIRECTORY"), p.isSeq("INDEX", "DIRECTORY"):
		return true
	case p.is("DEFAULT") && (p.peek.Is("CHARSET") || p.peek.Is("CHARACTER") || p.peek.Is("CHAR") || p.peek.Is("COLLATE")):
		return true
	}
	return false
}

// parseTableOption parses a single table option.
//
//	create_table_option → ENGINE [=] name | [DEFAULT] (CHARACTER SET|CHARSET) [=] charset
//	                    | [DEFAULT] COLLATE [=] collation | COMMENT [=] STRING | ...
//	                    | UNION [=] "(" table_ref {"," table_ref} ")"
//	                    | (DATA|INDEX) DIRECTORY [=] STRING
//	                    | TABLESPACE [=] identifier [STORAGE (DISK|MEMORY)]
//	                    | STORAGE (DISK|MEMORY)
func (p *Parser) parseTableOption() {
	n := p.open(ast.CreateTableOption)
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
	case p.isAny(textTableOptions...):
		p.next()
		p.acceptEquals()
		p.parseTextLiteral()
	case p.isAny("DATA", "INDEX"):
		p.next()
		p.expectKw("DIRECTORY")
		p.acceptEquals()
		p.parseTextLiteral()
	case p.is("UNION"):
		p.next()
		p.acceptEquals()
		p.expect(token.LPAREN)
		for {
			p.parseNamed(ast.TableRef)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	case p.is("TABLESPACE"):
		p.next()
		p.acceptEquals()
		p.parseIdentifier()
		if p.accept("STORAGE") {
			p.expectWord()
		}
	case p.is("STORAGE"):
		p.next()
		p.expectWord()
	default:
		p.next()
		p.acceptEquals()
		switch p.token.Type {
		case token.NUMBER, token.IDENT, token.QUOTED_IDENT, token.STRING:
			p.next()
		default:
			p.fail(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "option value"))
		}
	}
}

// expectWord consumes any unquoted word.
func (p *Parser) expectWord() token.Token {
	if !p.check(token.IDENT) {
		p.fail(fmt.Sprintf(ErrExpectedIdent, describe(p.token)))
	}
	return p.next()
}
