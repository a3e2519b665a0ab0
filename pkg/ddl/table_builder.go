package ddl

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// tableBuilder adds columns, indexes and foreign keys to one table. The
// references they need are buffered until finish, so a discarded statement
// leaves nothing in the cache.
type tableBuilder struct {
	ctx   *Context
	table *catalog.Table
	refs  []Ref
	fks   []pendingForeignKey
}

// pendingForeignKey is a foreign key still waiting for its supporting index.
type pendingForeignKey struct {
	fk        *catalog.ForeignKey
	indexName string
}

func newTableBuilder(ctx *Context, t *catalog.Table) *tableBuilder {
	return &tableBuilder{ctx: ctx, table: t}
}

func (b *tableBuilder) cs() bool { return b.ctx.CaseSensitive() }

// object names a table member in diagnostics.
func (b *tableBuilder) object(name string) string {
	return b.table.Qualified() + "." + name
}

// ---------- Columns ----------

// newColumn builds a column from a ColumnDefinition without attaching it.
// Inline constraints are left to inlineConstraints.
func (b *tableBuilder) newColumn(def *ast.Node) *catalog.Column {
	col := b.ctx.catalog.NewColumn(identifierName(def.Child(ast.Identifier)))
	typ := def.Child(ast.DataType)
	// the charset default depends on table options that may follow
	col.DataType = extractDataType(typ, b.ctx, "")
	if slices.Equal(typ.Words(), []string{"SERIAL"}) {
		col.NotNull = true
		col.AutoIncrement = true
	}

	for _, c := range def.Children {
		switch c.Kind {
		case ast.ColumnAttribute:
			b.columnAttribute(col, c)
		case ast.GeneratedClause:
			col.Generated = true
			if e := c.Child(ast.Expr); e != nil {
				col.GenerationExpression = e.Text
			}
			col.GeneratedStorage = "VIRTUAL"
			if c.HasKeyword("STORED") {
				col.GeneratedStorage = "STORED"
			}
		}
	}
	return col
}

func (b *tableBuilder) columnAttribute(col *catalog.Column, attr *ast.Node) {
	switch attr.FirstKeyword() {
	case "NOT":
		if attr.HasKeyword("NULL") {
			col.NotNull = true
		}
	case "NULL":
		col.NotNull = false
	case "AUTO_INCREMENT":
		col.AutoIncrement = true
	case "VISIBLE":
		col.Invisible = false
	case "INVISIBLE":
		col.Invisible = true
	case "DEFAULT":
		col.Default = exprText(attr)
		col.HasDefault = true
	case "ON":
		col.OnUpdate = exprText(attr)
	case "SERIAL":
		col.NotNull = true
		col.AutoIncrement = true
	case "COMMENT":
		col.Comment = textValue(attr.Child(ast.TextLiteral))
	case "COLLATE":
		col.DataType.Collation = nameValue(attr.Child(ast.CollationName))
	case "COLUMN_FORMAT":
		col.ColumnFormat = wordAfter(attr, "COLUMN_FORMAT")
	case "STORAGE":
		col.Storage = wordAfter(attr, "STORAGE")
	case "SRID":
		if tok, ok := numberOf(attr); ok {
			col.SRID = tok.Literal
		}
	}
}

// inlineConstraints applies the column level keys, references and checks of
// an attached column.
func (b *tableBuilder) inlineConstraints(col *catalog.Column, def *ast.Node) {
	unique := slices.Equal(def.Child(ast.DataType).Words(), []string{"SERIAL"})
	for _, c := range def.Children {
		switch c.Kind {
		case ast.ColumnAttribute:
			switch c.FirstKeyword() {
			case "PRIMARY", "KEY":
				idx := b.ctx.catalog.NewIndex("PRIMARY", catalog.IndexPrimary)
				idx.Columns = []*catalog.IndexColumn{{Name: col.Name}}
				b.addIndex(idx, c)
			case "UNIQUE", "SERIAL":
				unique = true
			case "CONSTRAINT", "CHECK":
				if e := c.Child(ast.Expr); e != nil {
					b.table.Checks = append(b.table.Checks, e.Text)
				}
			}
		case ast.References:
			b.addForeignKey("", "", []string{col.Name}, c, c)
		}
	}
	if unique {
		idx := b.ctx.catalog.NewIndex(b.indexName(col.Name), catalog.IndexUnique)
		idx.Columns = []*catalog.IndexColumn{{Name: col.Name}}
		b.addIndex(idx, def)
	}
}

// addColumn appends the column of a CREATE TABLE element list.
func (b *tableBuilder) addColumn(def *ast.Node) {
	b.insertColumn(def, nil)
}

// insertColumn adds a column at the position given by a Place node (FIRST,
// AFTER col), or at the end when place is nil.
func (b *tableBuilder) insertColumn(def, place *ast.Node) {
	col := b.newColumn(def)
	if b.table.FindColumn(col.Name, b.cs()) != nil {
		b.ctx.duplicate(catalog.KindColumn, b.object(col.Name), def, false)
		b.ctx.release(col)
		return
	}
	first, after, ok := b.placement(place)
	if !ok {
		b.ctx.release(col)
		return
	}
	b.table.InsertColumn(col, first, after, b.cs())
	b.inlineConstraints(col, def)
}

// placement reads a Place node. It reports false when AFTER names a column
// that does not exist.
func (b *tableBuilder) placement(place *ast.Node) (first bool, after string, ok bool) {
	if place == nil {
		return false, "", true
	}
	if place.HasKeyword("FIRST") {
		return true, "", true
	}
	after = identifierName(place.Child(ast.Identifier))
	if b.table.FindColumn(after, b.cs()) == nil {
		b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(after), place, "unknown column %s in AFTER clause", after)
		return false, "", false
	}
	return false, after, true
}

// changeColumn replaces the column named old with the definition def
// (CHANGE and MODIFY).
func (b *tableBuilder) changeColumn(old string, def, place *ast.Node) {
	existing := b.table.FindColumn(old, b.cs())
	if existing == nil {
		b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(old), def, "unknown column %s", old)
		return
	}
	col := b.newColumn(def)
	if !catalog.NameEqual(col.Name, existing.Name, b.cs()) && b.table.FindColumn(col.Name, b.cs()) != nil {
		b.ctx.duplicate(catalog.KindColumn, b.object(col.Name), def, false)
		b.ctx.release(col)
		return
	}

	pos := slices.Index(b.table.Columns, existing)
	col.Owner = b.table
	b.table.Columns[pos] = col
	if place != nil {
		first, after, ok := b.placement(place)
		if ok {
			b.table.RemoveColumn(col)
			b.table.InsertColumn(col, first, after, b.cs())
		}
	}
	b.renameColumnRefs(existing.Name, col.Name)
	// links bound by an earlier resolution pass
	for _, idx := range b.table.Indexes {
		for _, ic := range idx.Columns {
			if ic.Column == existing {
				ic.Column = col
			}
		}
	}
	for _, fk := range b.table.ForeignKeys {
		for i, c := range fk.Columns {
			if c == existing {
				fk.Columns[i] = col
			}
		}
	}
	b.ctx.release(existing)
	b.inlineConstraints(col, def)
}

// renameColumnRefs rewrites the column names held by indexes and foreign
// keys of the table.
func (b *tableBuilder) renameColumnRefs(old, name string) {
	if old == name {
		return
	}
	for _, idx := range b.table.Indexes {
		for _, ic := range idx.Columns {
			if ic.Name != "" && catalog.NameEqual(ic.Name, old, b.cs()) {
				ic.Name = name
			}
		}
	}
	for _, fk := range b.table.ForeignKeys {
		for i, n := range fk.ColumnNames {
			if catalog.NameEqual(n, old, b.cs()) {
				fk.ColumnNames[i] = name
			}
		}
	}
}

// dropColumn removes a column and its key parts; indexes left without key
// parts are dropped too.
func (b *tableBuilder) dropColumn(name string, at *ast.Node) {
	col := b.table.FindColumn(name, b.cs())
	if col == nil {
		b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(name), at, "cannot drop column %s: not found", name)
		return
	}
	b.table.RemoveColumn(col)
	for _, idx := range slices.Clone(b.table.Indexes) {
		idx.Columns = slices.DeleteFunc(idx.Columns, func(ic *catalog.IndexColumn) bool {
			return ic.Name != "" && catalog.NameEqual(ic.Name, name, b.cs())
		})
		if len(idx.Columns) == 0 {
			b.table.RemoveIndex(idx)
			b.ctx.release(idx)
		}
	}
	b.ctx.release(col)
}

// ---------- Indexes ----------

// constraintKind returns the leading keyword of a TableConstraintDef:
// PRIMARY, UNIQUE, FOREIGN, CHECK, KEY, INDEX, FULLTEXT or SPATIAL.
func constraintKind(def *ast.Node) string {
	for _, w := range def.Words() {
		if w != "CONSTRAINT" {
			return w
		}
	}
	return ""
}

var indexTypes = map[string]catalog.IndexType{
	"PRIMARY":  catalog.IndexPrimary,
	"UNIQUE":   catalog.IndexUnique,
	"KEY":      catalog.IndexPlain,
	"INDEX":    catalog.IndexPlain,
	"FULLTEXT": catalog.IndexFulltext,
	"SPATIAL":  catalog.IndexSpatial,
}

// addConstraint handles a TableConstraintDef.
func (b *tableBuilder) addConstraint(def *ast.Node) {
	kind := constraintKind(def)
	symbol := identifierName(def.Child(ast.Identifier))
	explicit := identifierName(def.Child(ast.IndexName))

	switch kind {
	case "CHECK":
		if e := def.Child(ast.Expr); e != nil {
			b.table.Checks = append(b.table.Checks, e.Text)
		}
		return
	case "FOREIGN":
		b.addForeignKey(symbol, explicit, b.keyPartNames(def.Child(ast.KeyList)), def.Child(ast.References), def)
		return
	}

	typ, ok := indexTypes[kind]
	if !ok {
		b.ctx.reportf(SeverityWarning, CodeUnsupported, b.table.Qualified(), def, "unsupported constraint %s", kind)
		return
	}
	idx := b.ctx.catalog.NewIndex("", typ)
	b.indexDetails(idx, def)
	switch {
	case typ == catalog.IndexPrimary:
		idx.Name = "PRIMARY"
	case explicit != "":
		idx.Name = explicit
	case symbol != "" && typ == catalog.IndexUnique:
		idx.Name = symbol
	default:
		idx.Name = b.indexName(firstKeyName(idx))
	}
	b.addIndex(idx, def)
}

// indexDetails reads index type, key parts and options from the direct
// children of n.
func (b *tableBuilder) indexDetails(idx *catalog.Index, n *ast.Node) {
	for _, c := range n.Children {
		switch c.Kind {
		case ast.IndexType:
			idx.Algorithm = strings.ToUpper(c.Value())
		case ast.IndexOption:
			b.indexOption(idx, c)
		case ast.KeyList:
			idx.Columns = b.keyParts(c)
		}
	}
}

func (b *tableBuilder) indexOption(idx *catalog.Index, opt *ast.Node) {
	switch opt.FirstKeyword() {
	case "KEY_BLOCK_SIZE":
		if tok, ok := numberOf(opt); ok {
			idx.KeyBlockSize = tok.Literal
		}
	case "COMMENT":
		idx.Comment = textValue(opt.Child(ast.TextLiteral))
	case "WITH":
		idx.Parser = identifierName(opt.Child(ast.Identifier))
	case "VISIBLE":
		idx.Invisible = false
	case "INVISIBLE":
		idx.Invisible = true
	}
}

// keyParts reads a KeyList.
func (b *tableBuilder) keyParts(list *ast.Node) []*catalog.IndexColumn {
	var out []*catalog.IndexColumn
	for _, kp := range list.ChildrenOf(ast.KeyPart) {
		ic := &catalog.IndexColumn{Descending: kp.HasKeyword("DESC")}
		if e := kp.Child(ast.Expr); e != nil {
			ic.Expression = e.Text
		} else {
			ic.Name = identifierName(kp.Child(ast.Identifier))
			if n, ok := b.ctx.intValue(kp, b.object(ic.Name)); ok {
				ic.Length = n
			}
		}
		out = append(out, ic)
	}
	return out
}

func (b *tableBuilder) keyPartNames(list *ast.Node) []string {
	var out []string
	for _, ic := range b.keyParts(list) {
		out = append(out, ic.Name)
	}
	return out
}

func firstKeyName(idx *catalog.Index) string {
	if len(idx.Columns) == 0 || idx.Columns[0].Name == "" {
		return "functional_index"
	}
	return idx.Columns[0].Name
}

// indexName returns base, or base_2, base_3, ... when taken.
func (b *tableBuilder) indexName(base string) string {
	name := base
	for i := 2; b.table.FindIndex(name, b.cs()) != nil; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	return name
}

// addIndex attaches idx unless its name is taken. It reports whether idx
// was kept.
func (b *tableBuilder) addIndex(idx *catalog.Index, at *ast.Node) bool {
	if idx.Type == catalog.IndexPrimary && b.table.PrimaryKey != nil {
		b.ctx.reportf(SeverityError, CodeDuplicate, b.object("PRIMARY"), at, "multiple primary keys defined")
		b.ctx.release(idx)
		return false
	}
	if b.table.FindIndex(idx.Name, b.cs()) != nil {
		b.ctx.duplicate(catalog.KindIndex, b.object(idx.Name), at, false)
		b.ctx.release(idx)
		return false
	}
	b.table.AddIndex(idx)
	b.refs = append(b.refs, indexRefFor(b.table, idx))
	return true
}

// dropIndex removes the named index.
func (b *tableBuilder) dropIndex(name string, at *ast.Node) {
	idx := b.table.FindIndex(name, b.cs())
	if idx == nil {
		b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(name), at, "cannot drop index %s: not found", name)
		return
	}
	b.table.RemoveIndex(idx)
	for _, fk := range b.table.ForeignKeys {
		if fk.Index == idx {
			fk.Index = nil
		}
	}
	b.ctx.release(idx)
}

// ---------- Foreign keys ----------

// addForeignKey creates a foreign key from a References node. symbol is the
// CONSTRAINT name and indexName the name given after FOREIGN KEY.
func (b *tableBuilder) addForeignKey(symbol, indexName string, columns []string, refs, at *ast.Node) {
	if refs == nil {
		return
	}
	target := IdentifierParts(refs.Child(ast.TableRef))
	_, targetName := splitQualified(target)

	name := symbol
	if name == "" && b.ctx.opts.AutoGenerateFkNames {
		name = b.foreignKeyName(targetName)
	}
	if name != "" && b.foreignKeyNameTaken(name) {
		b.ctx.duplicate(catalog.KindForeignKey, b.object(name), at, false)
		return
	}

	fk := b.ctx.catalog.NewForeignKey(name)
	fk.ColumnNames = columns
	fk.ReferencedTableName = strings.Join(target, ".")
	fk.ReferencedColumnNames = columnListNames(refs.Child(ast.ColumnList))
	fk.Match = wordAfter(refs, "MATCH")
	for _, opt := range refs.ChildrenOf(ast.ReferenceOption) {
		words := opt.Words()
		if len(words) < 3 {
			continue
		}
		action := strings.Join(words[2:], " ")
		switch words[1] {
		case "DELETE":
			fk.OnDelete = action
		case "UPDATE":
			fk.OnUpdate = action
		}
	}

	b.table.AddForeignKey(fk)
	b.refs = append(b.refs, foreignKeyRefs(b.table, fk, target)...)
	b.fks = append(b.fks, pendingForeignKey{fk: fk, indexName: indexName})
}

func (b *tableBuilder) foreignKeyNameTaken(name string) bool {
	if b.table.FindForeignKey(name, b.cs()) != nil {
		return true
	}
	return b.table.Owner != nil && b.table.Owner.ForeignKeyNameTaken(name, b.cs())
}

// foreignKeyName synthesises fk_<table>_<target>, adding 1, 2, ... on
// collision within the schema.
func (b *tableBuilder) foreignKeyName(target string) string {
	base := fmt.Sprintf("fk_%s_%s", b.table.Name, target)
	name := base
	for i := 1; b.foreignKeyNameTaken(name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

// dropForeignKey removes the named foreign key. Its supporting index stays,
// as it does in MySQL.
func (b *tableBuilder) dropForeignKey(name string, at *ast.Node) {
	fk := b.table.FindForeignKey(name, b.cs())
	if fk == nil {
		b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(name), at, "cannot drop foreign key %s: not found", name)
		return
	}
	b.table.RemoveForeignKey(fk)
	b.ctx.release(fk)
}

// supportingIndex links fk to an index whose leading key parts are the
// foreign key columns, creating one when there is none.
func (b *tableBuilder) supportingIndex(fk *catalog.ForeignKey, indexName string) {
	for _, idx := range b.table.Indexes {
		if b.coversColumns(idx, fk.ColumnNames) {
			fk.Index = idx
			return
		}
	}
	name := indexName
	if name == "" {
		name = fk.Name
	}
	if name == "" && len(fk.ColumnNames) > 0 {
		name = b.indexName(fk.ColumnNames[0])
	}
	if idx := b.table.FindIndex(name, b.cs()); idx != nil {
		fk.Index = idx
		return
	}
	idx := b.ctx.catalog.NewIndex(name, catalog.IndexForeign)
	for _, c := range fk.ColumnNames {
		idx.Columns = append(idx.Columns, &catalog.IndexColumn{Name: c})
	}
	b.table.AddIndex(idx)
	b.refs = append(b.refs, indexRefFor(b.table, idx))
	fk.Index = idx
}

func (b *tableBuilder) coversColumns(idx *catalog.Index, names []string) bool {
	if idx.Type == catalog.IndexFulltext || idx.Type == catalog.IndexSpatial || len(idx.Columns) < len(names) {
		return false
	}
	for i, n := range names {
		ic := idx.Columns[i]
		if ic.Length != 0 || !catalog.NameEqual(ic.Name, n, b.cs()) {
			return false
		}
	}
	return len(names) > 0
}

// ---------- Options and partitioning ----------

// option applies a CreateTableOption.
func (b *tableBuilder) option(opt *ast.Node) {
	o := &b.table.Options
	words := opt.Words()
	if len(words) > 0 && words[0] == "DEFAULT" {
		words = words[1:]
	}
	kw := ""
	if len(words) > 0 {
		kw = words[0]
	}

	switch {
	case opt.Child(ast.CharsetNameOrDefault) != nil:
		o.Charset = b.orDefault(opt.Child(ast.CharsetNameOrDefault), b.ctx.opts.DefaultCharsetName)
		return
	case opt.Child(ast.CollationNameOrDefault) != nil:
		o.Collation = b.orDefault(opt.Child(ast.CollationNameOrDefault), b.ctx.opts.DefaultCollationName)
		return
	}

	switch kw {
	case "COMMENT":
		o.Comment = textValue(opt.Child(ast.TextLiteral))
	case "CONNECTION":
		o.Connection = textValue(opt.Child(ast.TextLiteral))
	case "PASSWORD":
		o.Password = textValue(opt.Child(ast.TextLiteral))
	case "COMPRESSION":
		o.Compression = textValue(opt.Child(ast.TextLiteral))
	case "ENCRYPTION":
		o.Encryption = textValue(opt.Child(ast.TextLiteral))
	case "DATA":
		o.DataDirectory = textValue(opt.Child(ast.TextLiteral))
	case "INDEX":
		o.IndexDirectory = textValue(opt.Child(ast.TextLiteral))
	case "UNION":
		o.MergeUnion = nil
		for _, ref := range opt.ChildrenOf(ast.TableRef) {
			o.MergeUnion = append(o.MergeUnion, strings.Join(IdentifierParts(ref), "."))
		}
	case "TABLESPACE":
		o.Tablespace = identifierName(opt.Child(ast.Identifier))
		if s := wordAfter(opt, "STORAGE"); s != "" {
			o.Storage = s
		}
	case "STORAGE":
		o.Storage = wordAfter(opt, "STORAGE")
	default:
		b.simpleOption(kw, opt.Value())
	}
}

func (b *tableBuilder) simpleOption(kw, value string) {
	o := &b.table.Options
	switch kw {
	case "ENGINE", "TYPE":
		o.Engine = value
	case "AUTO_INCREMENT":
		o.AutoIncrement = value
	case "AVG_ROW_LENGTH":
		o.AvgRowLength = value
	case "MAX_ROWS":
		o.MaxRows = value
	case "MIN_ROWS":
		o.MinRows = value
	case "KEY_BLOCK_SIZE":
		o.KeyBlockSize = value
	case "PACK_KEYS":
		o.PackKeys = strings.ToUpper(value)
	case "CHECKSUM", "TABLE_CHECKSUM":
		o.Checksum = value == "1"
	case "DELAY_KEY_WRITE":
		o.DelayKeyWrite = value == "1"
	case "ROW_FORMAT":
		o.RowFormat = strings.ToUpper(value)
	case "STATS_AUTO_RECALC":
		o.StatsAutoRecalc = strings.ToUpper(value)
	case "STATS_PERSISTENT":
		o.StatsPersistent = strings.ToUpper(value)
	case "STATS_SAMPLE_PAGES":
		o.StatsSamplePages = strings.ToUpper(value)
	case "INSERT_METHOD":
		o.InsertMethod = strings.ToUpper(value)
	default:
		if o.Other == nil {
			o.Other = make(map[string]string)
		}
		o.Other[kw] = value
	}
}

// orDefault reads a charset or collation name, mapping DEFAULT to def.
func (b *tableBuilder) orDefault(n *ast.Node, def string) string {
	v := nameValue(n)
	if v == "default" {
		return def
	}
	return v
}

// ---------- Finishing ----------

// finish adds the supporting indexes of new foreign keys, marks primary key
// columns NOT NULL, fills in column charsets and hands the buffered
// references to the cache.
func (b *tableBuilder) finish() {
	for _, p := range b.fks {
		if slices.Contains(b.table.ForeignKeys, p.fk) && p.fk.Index == nil {
			b.supportingIndex(p.fk, p.indexName)
		}
	}
	b.fks = nil

	if pk := b.table.PrimaryKey; pk != nil {
		for _, name := range pk.ColumnNames() {
			if col := b.table.FindColumn(name, b.cs()); col != nil {
				col.NotNull = true
			}
		}
	}

	charset := b.table.Options.Charset
	if charset == "" && b.table.Owner != nil {
		charset = b.table.Owner.Charset
	}
	if charset == "" {
		charset = b.ctx.opts.DefaultCharsetName
	}
	for _, col := range b.table.Columns {
		dt := &col.DataType
		if dt.Charset == "" && dt.Simple != nil && dt.Simple.CharacterType {
			dt.Charset = charset
		}
	}

	b.ctx.refs.Push(b.refs...)
	b.refs = nil
}

// copyDefinition copies the columns, indexes, options and partitioning of
// src onto b's table (CREATE TABLE ... LIKE). Foreign keys are not copied.
func (b *tableBuilder) copyDefinition(src *catalog.Table) {
	for _, col := range src.Columns {
		clone := b.ctx.catalog.NewColumn(col.Name)
		named := clone.Named
		*clone = *col
		clone.Named = named
		clone.DataType.Flags = slices.Clone(col.DataType.Flags)
		b.table.AddColumn(clone)
	}
	for _, idx := range src.Indexes {
		typ := idx.Type
		if typ == catalog.IndexForeign {
			typ = catalog.IndexPlain
		}
		clone := b.ctx.catalog.NewIndex(idx.Name, typ)
		clone.Algorithm = idx.Algorithm
		clone.Comment = idx.Comment
		clone.Parser = idx.Parser
		clone.KeyBlockSize = idx.KeyBlockSize
		clone.Invisible = idx.Invisible
		for _, ic := range idx.Columns {
			c := *ic
			c.Column = nil
			clone.Columns = append(clone.Columns, &c)
		}
		b.addIndex(clone, nil)
	}
	opts := src.Options
	opts.Other = maps.Clone(src.Options.Other)
	opts.MergeUnion = slices.Clone(src.Options.MergeUnion)
	b.table.Options = opts
	if src.Partitioning != nil {
		p := *src.Partitioning
		b.table.Partitioning = &p
	}
	b.table.Checks = append(b.table.Checks, src.Checks...)
}

// columnListNames returns the names of a ColumnList node.
func columnListNames(n *ast.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, id := range n.ChildrenOf(ast.Identifier) {
		out = append(out, identifierName(id))
	}
	return out
}

// exprText returns the source text of the Expr child of n, or "".
func exprText(n *ast.Node) string {
	if e := n.Child(ast.Expr); e != nil {
		return e.Text
	}
	return ""
}
