package ddl

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewTableAlterListener returns the listener for ALTER TABLE. Items are applied
// in order when the table is already known. Otherwise the whole statement is
// replayed from the resolution pass once the table has been defined.
func NewTableAlterListener(ctx *Context) *ast.Listener {
	var (
		b      *tableBuilder
		schema *catalog.Schema
		parts  []string
	)

	return ast.NewListener().
		OnEnter(ast.AlterTable, func(n *ast.Node) {
			parts = IdentifierParts(n.Child(ast.TableRef))
			schemaName, _ := splitQualified(parts)
			schema = ctx.lookupSchema(schemaName)
			if t := ctx.findTable(parts); t != nil {
				b = newTableBuilder(ctx, t)
			}
		}).
		OnExit(ast.AlterListItem, func(n *ast.Node) {
			if b != nil {
				b.alterItem(n)
			}
		}).
		OnExit(ast.AlterTable, func(n *ast.Node) {
			if b != nil {
				if p := n.Child(ast.Partition); p != nil {
					b.table.Partitioning = ctx.partitioning(p, b.table.Qualified())
				}
				b.finish()
				return
			}
			ctx.logger.Debug("deferring alter table", "table", strings.Join(parts, "."))
			ctx.refs.Push(&ObjectReference{
				Target:    catalog.KindTable,
				Name:      parts,
				Schema:    schema,
				OwnerName: strings.Join(parts, "."),
				Bind: func(obj catalog.Object) {
					t := obj.(*catalog.Table)
					replay := newTableBuilder(ctx, t)
					for _, item := range n.Child(ast.AlterList).ChildrenOf(ast.AlterListItem) {
						replay.alterItem(item)
					}
					if p := n.Child(ast.Partition); p != nil {
						t.Partitioning = ctx.partitioning(p, t.Qualified())
					}
					replay.finish()
				},
			})
		})
}

// alterItem applies one AlterListItem.
func (b *tableBuilder) alterItem(n *ast.Node) {
	if opt := n.Child(ast.CreateTableOption); opt != nil && len(n.Terminals()) == 0 {
		b.option(opt)
		return
	}

	switch n.FirstKeyword() {
	case "ADD":
		b.alterAdd(n)
	case "CHANGE":
		old := identifierName(n.Child(ast.Identifier))
		b.changeColumn(old, n.Child(ast.ColumnDefinition), n.Child(ast.Place))
	case "MODIFY":
		def := n.Child(ast.ColumnDefinition)
		b.changeColumn(identifierName(def.Child(ast.Identifier)), def, n.Child(ast.Place))
	case "DROP":
		b.alterDrop(n)
	case "RENAME":
		b.alterRename(n)
	case "ALTER":
		b.alterAlter(n)
	case "CONVERT":
		charset := nameValue(n.Child(ast.CharsetName))
		collation := nameValue(n.Child(ast.CollationName))
		b.table.Options.Charset = charset
		b.table.Options.Collation = collation
		for _, col := range b.table.Columns {
			if dt := &col.DataType; dt.Simple != nil && dt.Simple.CharacterType {
				dt.Charset = charset
				dt.Collation = collation
			}
		}
	default:
		b.ctx.reportf(SeverityInfo, CodeUnsupported, b.table.Qualified(), n,
			"alter table item %s is not analysed", firstWords(n))
	}
}

func (b *tableBuilder) alterAdd(n *ast.Node) {
	switch {
	case n.Child(ast.TableConstraintDef) != nil:
		b.addConstraint(n.Child(ast.TableConstraintDef))
	case n.Child(ast.TableElementList) != nil:
		list := n.Child(ast.TableElementList)
		for _, c := range list.Children {
			switch c.Kind {
			case ast.ColumnDefinition:
				b.addColumn(c)
			case ast.TableConstraintDef:
				b.addConstraint(c)
			}
		}
	case n.Child(ast.ColumnDefinition) != nil:
		b.insertColumn(n.Child(ast.ColumnDefinition), n.Child(ast.Place))
	default:
		b.ctx.reportf(SeverityInfo, CodeUnsupported, b.table.Qualified(), n,
			"alter table item %s is not analysed", firstWords(n))
	}
}

func (b *tableBuilder) alterDrop(n *ast.Node) {
	words := n.Words()
	name := identifierName(n.Child(ast.Identifier))
	what := ""
	if len(words) > 1 {
		what = words[1]
	}
	switch what {
	case "INDEX", "KEY":
		b.dropIndex(name, n)
	case "PRIMARY":
		if b.table.PrimaryKey == nil {
			b.ctx.reportf(SeverityError, CodeUnknownObject, b.object("PRIMARY"), n, "cannot drop primary key: not defined")
			return
		}
		b.dropIndex(b.table.PrimaryKey.Name, n)
	case "FOREIGN":
		b.dropForeignKey(name, n)
	case "CHECK", "CONSTRAINT", "PARTITION":
		b.ctx.reportf(SeverityInfo, CodeUnsupported, b.table.Qualified(), n,
			"alter table item %s is not analysed", firstWords(n))
	default:
		b.dropColumn(name, n)
	}
}

func (b *tableBuilder) alterRename(n *ast.Node) {
	words := n.Words()
	ids := n.ChildrenOf(ast.Identifier)
	if len(words) > 1 && len(ids) == 2 {
		from, to := identifierName(ids[0]), identifierName(ids[1])
		switch words[1] {
		case "INDEX", "KEY":
			idx := b.table.FindIndex(from, b.cs())
			switch {
			case idx == nil:
				b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(from), n, "cannot rename index %s: not found", from)
			case b.table.FindIndex(to, b.cs()) != nil:
				b.ctx.duplicate(catalog.KindIndex, b.object(to), n, false)
			default:
				idx.Name = to
			}
			return
		case "COLUMN":
			col := b.table.FindColumn(from, b.cs())
			switch {
			case col == nil:
				b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(from), n, "cannot rename column %s: not found", from)
			case !catalog.NameEqual(from, to, b.cs()) && b.table.FindColumn(to, b.cs()) != nil:
				b.ctx.duplicate(catalog.KindColumn, b.object(to), n, false)
			default:
				col.Name = to
				b.renameColumnRefs(from, to)
			}
			return
		}
	}

	schemaName, name := splitQualified(IdentifierParts(n.Child(ast.TableName)))
	target := b.table.Owner
	if schemaName != "" {
		target = b.ctx.EnsureSchemaExists(schemaName)
	}
	if existing := target.FindTable(name, b.cs()); existing != nil && existing != b.table {
		b.ctx.duplicate(catalog.KindTable, target.Name+"."+name, n, false)
		return
	}
	if target != b.table.Owner {
		b.table.Owner.RemoveTable(b.table)
		target.AddTable(b.table)
	}
	b.table.Name = name
}

func (b *tableBuilder) alterAlter(n *ast.Node) {
	name := identifierName(n.Child(ast.Identifier))
	if n.HasKeyword("INDEX") {
		idx := b.table.FindIndex(name, b.cs())
		if idx == nil {
			b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(name), n, "unknown index %s", name)
			return
		}
		idx.Invisible = n.HasKeyword("INVISIBLE")
		return
	}

	col := b.table.FindColumn(name, b.cs())
	if col == nil {
		b.ctx.reportf(SeverityError, CodeUnknownObject, b.object(name), n, "unknown column %s", name)
		return
	}
	switch {
	case n.HasKeyword("VISIBLE"):
		col.Invisible = false
	case n.HasKeyword("INVISIBLE"):
		col.Invisible = true
	case n.HasKeyword("SET"):
		col.Default = exprText(n)
		col.HasDefault = true
	default:
		col.Default = ""
		col.HasDefault = false
	}
}

// firstWords renders the leading words of an item for diagnostics.
func firstWords(n *ast.Node) string {
	words := n.Words()
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}
