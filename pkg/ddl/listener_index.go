package ddl

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewIndexListener returns the listener for CREATE INDEX. The index is always
// attached from the resolution pass, so it does not matter whether the table
// is defined before or after the statement.
func NewIndexListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateIndex, func(n *ast.Node) {
			target := n.Child(ast.CreateIndexTarget)
			parts := IdentifierParts(target.Child(ast.TableRef))
			schemaName, _ := splitQualified(parts)
			name := identifierName(n.Child(ast.IndexName))

			typ := catalog.IndexPlain
			switch {
			case hasWord(n, "UNIQUE"):
				typ = catalog.IndexUnique
			case hasWord(n, "FULLTEXT"):
				typ = catalog.IndexFulltext
			case hasWord(n, "SPATIAL"):
				typ = catalog.IndexSpatial
			}

			ctx.refs.Push(&ObjectReference{
				Target:    catalog.KindTable,
				Name:      parts,
				Schema:    ctx.lookupSchema(schemaName),
				OwnerName: strings.Join(parts, ".") + "." + name,
				Bind: func(obj catalog.Object) {
					b := newTableBuilder(ctx, obj.(*catalog.Table))
					idx := ctx.catalog.NewIndex(name, typ)
					b.indexDetails(idx, n)
					idx.Columns = b.keyParts(target.Child(ast.KeyList))
					if opt := n.Child(ast.AlterAlgorithmOption); opt != nil {
						idx.OnlineAlgorithm = strings.ToUpper(opt.Value())
					}
					if opt := n.Child(ast.AlterLockOption); opt != nil {
						idx.OnlineLock = strings.ToUpper(opt.Value())
					}
					b.addIndex(idx, n)
					b.finish()
				},
			})
		})
}
