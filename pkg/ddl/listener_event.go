package ddl

import (
	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewEventListener returns the listener for CREATE EVENT. Schedule
// expressions are kept as written.
func NewEventListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateEvent, func(n *ast.Node) {
			schemaName, name := splitQualified(IdentifierParts(n.Child(ast.QualifiedIdentifier)))
			schema := ctx.schemaFor(schemaName)
			object := schema.Name + "." + name

			if schema.FindEvent(name, ctx.CaseSensitive()) != nil {
				ctx.duplicate(catalog.KindEvent, object, n, n.Child(ast.IfNotExists) != nil)
				return
			}

			e := ctx.catalog.NewEvent(name)
			e.Definer = ctx.definer(n)
			e.Body = bodyText(n)
			if sched := n.Child(ast.Schedule); sched != nil {
				schedule(e, sched)
			}
			for _, opt := range n.ChildrenOf(ast.EventOption) {
				switch opt.FirstKeyword() {
				case "ON":
					e.Preserve = !opt.HasKeyword("NOT")
				case "ENABLE":
					e.Enabled = true
					e.SlaveSide = false
				case "DISABLE":
					e.Enabled = false
					e.SlaveSide = opt.HasKeyword("ON")
				case "COMMENT":
					e.Comment = textValue(opt.Child(ast.TextLiteral))
				}
			}

			schema.AddEvent(e)
			ctx.logger.Debug("created event", "event", object)
		})
}

// schedule reads AT expr, or EVERY expr unit [STARTS expr] [ENDS expr]. The
// Expr children follow the order of the keywords that introduce them.
func schedule(e *catalog.Event, n *ast.Node) {
	exprs := n.ChildrenOf(ast.Expr)
	next := func() string {
		if len(exprs) == 0 {
			return ""
		}
		s := exprs[0].Text
		exprs = exprs[1:]
		return s
	}

	if n.HasKeyword("AT") {
		e.At = next()
		return
	}
	e.Every = next()
	words := n.Words()
	if len(words) > 1 {
		e.IntervalUnit = words[1]
	}
	if n.HasKeyword("STARTS") {
		e.Starts = next()
	}
	if n.HasKeyword("ENDS") {
		e.Ends = next()
	}
}
