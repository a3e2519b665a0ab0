package ddl

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewRoutineListener returns the listener for CREATE PROCEDURE, CREATE
// FUNCTION and loadable function declarations.
func NewRoutineListener(ctx *Context) *ast.Listener {
	add := func(n *ast.Node, typ catalog.RoutineType) {
		schemaName, name := splitQualified(IdentifierParts(n.Child(ast.QualifiedIdentifier)))
		schema := ctx.schemaFor(schemaName)
		object := schema.Name + "." + name

		if schema.FindRoutine(name, typ, ctx.CaseSensitive()) != nil {
			ctx.duplicate(catalog.KindRoutine, object, n, n.Child(ast.IfNotExists) != nil)
			return
		}

		r := ctx.catalog.NewRoutine(name, typ)
		r.Definer = ctx.definer(n)
		r.Body = bodyText(n)
		for _, c := range n.Children {
			switch c.Kind {
			case ast.ProcedureParameter:
				mode := "IN"
				if w := c.Words(); len(w) > 0 && (w[0] == "OUT" || w[0] == "INOUT" || w[0] == "IN") {
					mode = w[0]
				}
				r.Params = append(r.Params, &catalog.RoutineParam{
					Name:     identifierName(c.Child(ast.Identifier)),
					Mode:     mode,
					DataType: ExtractDataType(c.Child(ast.DataType), ctx),
				})
			case ast.FunctionParameter:
				r.Params = append(r.Params, &catalog.RoutineParam{
					Name:     identifierName(c.Child(ast.Identifier)),
					DataType: ExtractDataType(c.Child(ast.DataType), ctx),
				})
			case ast.ReturnsClause:
				if dt := c.Child(ast.DataType); dt != nil {
					ret := ExtractDataType(dt, ctx)
					r.ReturnType = &ret
				} else if w := c.Words(); len(w) > 1 {
					r.UDFReturn = w[1]
				}
			case ast.RoutineOption:
				routineOption(r, c)
			case ast.TextLiteral:
				r.Soname = textValue(c)
			}
		}
		if typ == catalog.RoutineUDF {
			r.Aggregate = hasWord(n, "AGGREGATE")
		}

		schema.AddRoutine(r)
		ctx.logger.Debug("created routine", "routine", object, "type", string(typ))
	}

	return ast.NewListener().
		OnExit(ast.CreateProcedure, func(n *ast.Node) { add(n, catalog.RoutineProcedure) }).
		OnExit(ast.CreateFunction, func(n *ast.Node) { add(n, catalog.RoutineFunction) }).
		OnExit(ast.CreateUdf, func(n *ast.Node) { add(n, catalog.RoutineUDF) })
}

func routineOption(r *catalog.Routine, opt *ast.Node) {
	words := opt.Words()
	switch opt.FirstKeyword() {
	case "COMMENT":
		r.Comment = textValue(opt.Child(ast.TextLiteral))
	case "LANGUAGE":
		r.Language = "SQL"
	case "DETERMINISTIC":
		r.Deterministic = true
	case "NOT":
		r.Deterministic = false
	case "CONTAINS", "NO", "READS", "MODIFIES":
		r.DataAccess = strings.Join(words, " ")
	case "SQL":
		r.Security = words[len(words)-1]
	}
}
