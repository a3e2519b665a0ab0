package ddl

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewTriggerListener returns the listener for CREATE TRIGGER. A trigger on a
// table that is not defined yet is attached from the resolution pass.
func NewTriggerListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateTrigger, func(n *ast.Node) {
			schemaName, name := splitQualified(IdentifierParts(n.Child(ast.QualifiedIdentifier)))
			table := IdentifierParts(n.Child(ast.TableRef))
			if schemaName == "" {
				// the trigger lives in the schema of its table
				schemaName, _ = splitQualified(table)
			}
			schema := ctx.schemaFor(schemaName)
			object := schema.Name + "." + name

			if schema.FindTrigger(name, ctx.CaseSensitive()) != nil {
				ctx.duplicate(catalog.KindTrigger, object, n, n.Child(ast.IfNotExists) != nil)
				return
			}

			tr := ctx.catalog.NewTrigger(name)
			tr.Definer = ctx.definer(n)
			tr.TableName = strings.Join(table, ".")
			tr.Body = bodyText(n)
			for _, w := range n.Words() {
				switch {
				case w == "BEFORE" || w == "AFTER":
					tr.Timing = w
				case slices.Contains([]string{"INSERT", "UPDATE", "DELETE"}, w):
					tr.Event = w
				}
			}
			if order := n.Child(ast.TriggerFollowsPrecedesClause); order != nil {
				tr.OrderType = order.FirstKeyword()
				tr.OtherTrigger = identifierName(order.Child(ast.Identifier))
			}

			if t := ctx.findTable(table); t != nil {
				t.AddTrigger(tr)
				ctx.logger.Debug("created trigger", "trigger", object, "table", t.Qualified())
				return
			}
			tableSchema, _ := splitQualified(table)
			ctx.refs.Push(&ObjectReference{
				Target:    catalog.KindTable,
				Name:      table,
				Schema:    ctx.lookupSchema(tableSchema),
				Owner:     tr,
				OwnerName: object,
				Bind: func(obj catalog.Object) {
					t := obj.(*catalog.Table)
					if t.Owner.FindTrigger(name, ctx.CaseSensitive()) != nil {
						ctx.duplicate(catalog.KindTrigger, object, n, false)
						ctx.release(tr)
						return
					}
					t.AddTrigger(tr)
				},
			})
		})
}
