package ddl

import (
	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewSchemaListener returns the listener for CREATE DATABASE and USE. A schema
// created implicitly by an earlier qualified name is adopted rather than
// reported as a duplicate.
func NewSchemaListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateDatabase, func(n *ast.Node) {
			name := identifierName(n.Child(ast.Identifier))
			cs := ctx.CaseSensitive()
			ifNotExists := n.Child(ast.IfNotExists) != nil

			s := ctx.catalog.FindSchema(name, cs)
			switch {
			case s != nil && !s.Implicit:
				ctx.duplicate(catalog.KindSchema, name, n, ifNotExists)
				return
			case s == nil:
				s = ctx.catalog.NewSchema(name)
				ctx.catalog.AddSchema(s)
			}
			s.Implicit = false
			s.IgnoreIfExists = ifNotExists
			s.Charset = ctx.opts.DefaultCharsetName
			s.Collation = ctx.opts.DefaultCollationName

			for _, opt := range n.ChildrenOf(ast.CreateDatabaseOption) {
				schemaOption(ctx, s, opt)
			}
			ctx.logger.Debug("created schema", "schema", s.Name, "charset", s.Charset)
		}).
		OnExit(ast.UseStatement, func(n *ast.Node) {
			s := ctx.UseSchema(identifierName(n.Child(ast.Identifier)))
			ctx.logger.Debug("switched schema", "schema", s.Name)
		})
}

func schemaOption(ctx *Context, s *catalog.Schema, opt *ast.Node) {
	switch {
	case opt.Child(ast.CharsetNameOrDefault) != nil:
		cs := nameValue(opt.Child(ast.CharsetNameOrDefault))
		if cs == "default" {
			s.Charset = ctx.opts.DefaultCharsetName
			s.Collation = ctx.opts.DefaultCollationName
			return
		}
		if cs != s.Charset {
			// the collation follows the charset unless named after it
			s.Collation = ""
		}
		s.Charset = cs
	case opt.Child(ast.CollationNameOrDefault) != nil:
		coll := nameValue(opt.Child(ast.CollationNameOrDefault))
		if coll == "default" {
			coll = ctx.opts.DefaultCollationName
		}
		s.Collation = coll
	case opt.HasKeyword("COMMENT"):
		s.Comment = textValue(opt.Child(ast.TextLiteral))
	case opt.HasKeyword("ENCRYPTION"):
		s.Encryption = textValue(opt.Child(ast.TextLiteral))
	case opt.HasKeyword("READ"):
		s.ReadOnly = opt.Value() == "1"
	}
}
