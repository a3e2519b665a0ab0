package ddl

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewTableListener returns the listener for CREATE TABLE. The table is built
// detached from its schema and only attached when the statement completes, so
// a rejected duplicate leaves the catalog untouched.
func NewTableListener(ctx *Context) *ast.Listener {
	var (
		b      *tableBuilder
		schema *catalog.Schema
		like   *ObjectReference
	)

	return ast.NewListener().
		OnExit(ast.TableName, func(n *ast.Node) {
			schemaName, name := splitQualified(IdentifierParts(n))
			schema = ctx.schemaFor(schemaName)
			t := ctx.catalog.NewTable(name)
			// set for naming only; AddTable attaches for real
			t.Owner = schema
			t.Temporary = hasWord(n.Parent, "TEMPORARY")
			b = newTableBuilder(ctx, t)
		}).
		OnExit(ast.ColumnDefinition, func(n *ast.Node) {
			b.addColumn(n)
		}).
		OnExit(ast.TableConstraintDef, func(n *ast.Node) {
			b.addConstraint(n)
		}).
		OnExit(ast.CreateTableOption, func(n *ast.Node) {
			b.option(n)
		}).
		OnExit(ast.Partition, func(n *ast.Node) {
			b.table.Partitioning = ctx.partitioning(n, b.table.Qualified())
		}).
		OnExit(ast.TableCreationSource, func(n *ast.Node) {
			if n.HasKeyword("LIKE") {
				parts := IdentifierParts(n.Child(ast.TableRef))
				b.table.LikeTable = strings.Join(parts, ".")
				like = likeReference(b, parts, schema)
				return
			}
			b.table.AsSelect = exprText(n)
		}).
		OnExit(ast.CreateTable, func(n *ast.Node) {
			if b == nil {
				return
			}
			t := b.table
			if existing := schema.FindTable(t.Name, ctx.CaseSensitive()); existing != nil {
				if !existing.IsStub {
					ctx.duplicate(catalog.KindTable, t.Qualified(), n, n.Child(ast.IfNotExists) != nil)
					ctx.releaseTable(t)
					return
				}
				// a real definition replaces the stub made for a foreign key
				schema.RemoveTable(existing)
				ctx.releaseTable(existing)
				rebindStubReferences(ctx, existing)
			}
			schema.AddTable(t)
			b.finish()
			if like != nil {
				ctx.refs.Push(like)
			}
			ctx.logger.Debug("created table", "table", t.Qualified(), "columns", len(t.Columns))
		})
}

// rebindStubReferences records the foreign keys that were bound to a replaced
// stub again, so the resolution pass binds them to the real definition.
func rebindStubReferences(ctx *Context, stub *catalog.Table) {
	target := []string{stub.Owner.Name, stub.Name}
	for _, s := range ctx.catalog.Schemas {
		for _, t := range s.Tables {
			for _, fk := range t.ForeignKeys {
				if fk.ReferencedTable != stub {
					continue
				}
				fk.ReferencedTable = nil
				fk.ReferencedColumns = nil
				ctx.refs.Push(&ReferencedReference{Table: t, ForeignKey: fk, Target: target})
			}
		}
	}
}

// likeReference defers the definition copy of CREATE TABLE ... LIKE until the
// source table is known.
func likeReference(b *tableBuilder, source []string, schema *catalog.Schema) *ObjectReference {
	return &ObjectReference{
		Target:    catalog.KindTable,
		Name:      source,
		Schema:    schema,
		Owner:     b.table,
		OwnerName: b.table.Qualified(),
		Defines:   b.table,
		Bind: func(obj catalog.Object) {
			b.copyDefinition(obj.(*catalog.Table))
			b.finish()
		},
	}
}
