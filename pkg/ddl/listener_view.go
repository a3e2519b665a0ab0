package ddl

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewViewListener returns the listener for CREATE [OR REPLACE] VIEW. Views and
// tables share a namespace.
func NewViewListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateView, func(n *ast.Node) {
			schemaName, name := splitQualified(IdentifierParts(n.Child(ast.TableName)))
			schema := ctx.schemaFor(schemaName)
			object := schema.Name + "." + name
			cs := ctx.CaseSensitive()

			if t := schema.FindTable(name, cs); t != nil && !t.IsStub {
				ctx.duplicate(catalog.KindTable, object, n, false)
				return
			}
			existing := schema.FindView(name, cs)
			replace := hasWord(n, "OR") && hasWord(n, "REPLACE")
			if existing != nil && !replace {
				ctx.duplicate(catalog.KindView, object, n, false)
				return
			}

			v := ctx.catalog.NewView(name)
			v.Definer = ctx.definer(n)
			v.Columns = columnListNames(n.Child(ast.ColumnList))
			v.Query = exprText(n)
			v.Algorithm = strings.ToUpper(n.Child(ast.ViewAlgorithm).Value())
			v.Security = strings.ToUpper(n.Child(ast.ViewSuid).Value())
			if opt := n.Child(ast.ViewCheckOption); opt != nil {
				v.WithCheck = true
				v.CheckOption = "CASCADED"
				if opt.HasKeyword("LOCAL") {
					v.CheckOption = "LOCAL"
				}
			}

			if existing != nil {
				schema.ReplaceView(existing, v)
				ctx.release(existing)
				ctx.logger.Debug("replaced view", "view", object)
				return
			}
			schema.AddView(v)
			ctx.logger.Debug("created view", "view", object)
		})
}
