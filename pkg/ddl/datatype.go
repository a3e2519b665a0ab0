package ddl

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

var (
	// fractional seconds precision for TIME, DATETIME and TIMESTAMP
	fractionalSecondsVersion = catalog.MustParseVersion("5.6.4")
)

// ExtractDataType builds a data type descriptor from a DataType subtree.
//
// The type name is resolved against the catalog's built-in type list by name,
// synonym or alias. Problems (unknown names, out-of-range numbers, syntax the
// server version does not support) are recorded as diagnostics on ctx and
// leave the affected attribute unset; extraction always returns a descriptor.
func ExtractDataType(n *ast.Node, ctx *Context) catalog.DataType {
	return extractDataType(n, ctx, ctx.opts.DefaultCharsetName)
}

func extractDataType(n *ast.Node, ctx *Context, defaultCharset string) catalog.DataType {
	dt := catalog.NewDataType()
	if n == nil {
		return dt
	}
	object := typeOwnerName(n)

	var words []string
	for _, w := range n.Words() {
		if w != "COLLATE" {
			words = append(words, w)
		}
	}
	name := strings.Join(words, " ")
	dt.Name = name

	simple, alias := ctx.catalog.ResolveDatatype(name)
	switch {
	case simple == nil:
		ctx.reportf(SeverityWarning, CodeUnsupported, object, n, "unknown data type %s", name)
	case !ctx.opts.ServerVersion.AtLeast(simple.MinVersion):
		ctx.reportf(SeverityWarning, CodeUnsupported, object, n,
			"data type %s requires server version %s", simple.Name, simple.MinVersion)
	default:
		dt.Simple = simple
		dt.Name = simple.Name
	}

	if alias != nil {
		if alias.Length != catalog.Unset && alias.Length != 0 {
			dt.Length = alias.Length
		}
		dt.Charset = alias.Charset
		dt.Flags = append(dt.Flags, alias.Flags...)
	}

	var valueList string
	for _, c := range n.Children {
		switch c.Kind {
		case ast.FieldLength:
			v, ok := typeNumber(ctx, c, object)
			if !ok {
				continue
			}
			if simple != nil && simple.NumericPrecision {
				dt.Precision = v
			} else {
				dt.Length = v
			}

		case ast.Precision:
			var vals []int
			for _, tok := range c.Terminals() {
				if tok.Type != token.NUMBER {
					continue
				}
				v, ok := parseInt32(tok.Literal)
				if !ok {
					ctx.reportf(SeverityError, CodeValueOutOfRange, object, c,
						"value %s is out of range", tok.Literal)
					v = catalog.Unset
				}
				vals = append(vals, v)
			}
			if len(vals) == 2 {
				dt.Precision, dt.Scale = vals[0], vals[1]
			}

		case ast.TypeDatetimePrecision:
			if !ctx.opts.ServerVersion.AtLeast(fractionalSecondsVersion) {
				ctx.reportf(SeverityWarning, CodeUnsupported, object, c,
					"fractional seconds precision requires server version %s, ignored", fractionalSecondsVersion)
				continue
			}
			if v, ok := typeNumber(ctx, c, object); ok {
				dt.Precision = v
			}

		case ast.StringList:
			var values []string
			for _, lit := range c.ChildrenOf(ast.TextLiteral) {
				values = append(values, lit.Text)
			}
			valueList = "(" + strings.Join(values, ",") + ")"

		case ast.FieldOptions:
			for _, w := range c.Words() {
				dt.Flags = addFlag(dt.Flags, w)
			}

		case ast.StringBinary:
			applyStringBinary(&dt, c)

		case ast.CollationName:
			dt.Collation = nameValue(c)
		}
	}

	parts := dt.Flags
	if valueList != "" {
		parts = append([]string{valueList}, dt.Flags...)
	}
	dt.ExplicitParams = strings.Join(parts, " ")

	if dt.Charset == "" && simple != nil && simple.CharacterType {
		dt.Charset = defaultCharset
	}
	return dt
}

// typeNumber reads the single number of a length or precision clause.
func typeNumber(ctx *Context, n *ast.Node, object string) (int, bool) {
	tok, ok := numberOf(n)
	if !ok {
		return 0, false
	}
	v, ok := parseInt32(tok.Literal)
	if !ok {
		ctx.reportf(SeverityError, CodeValueOutOfRange, object, n, "value %s is out of range", tok.Literal)
		return 0, false
	}
	return v, true
}

// applyStringBinary reads the charset shorthands: ASCII, UNICODE, BYTE,
// BINARY and CHARACTER SET name.
func applyStringBinary(dt *catalog.DataType, n *ast.Node) {
	words := n.Words()
	if slices.Contains(words, "BINARY") {
		dt.Flags = addFlag(dt.Flags, "BINARY")
	}
	switch {
	case n.Child(ast.CharsetName) != nil:
		dt.Charset = nameValue(n.Child(ast.CharsetName))
	case slices.Contains(words, "ASCII"):
		dt.Charset = "latin1"
	case slices.Contains(words, "UNICODE"):
		dt.Charset = "ucs2"
	case slices.Contains(words, "BYTE"):
		dt.Charset = "binary"
	}
}

func addFlag(flags []string, flag string) []string {
	if slices.Contains(flags, flag) {
		return flags
	}
	return append(flags, flag)
}

// typeOwnerName names the column or parameter a data type belongs to, for
// diagnostics.
func typeOwnerName(n *ast.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		switch p.Kind {
		case ast.ColumnDefinition, ast.ProcedureParameter, ast.FunctionParameter:
			return identifierName(p.Child(ast.Identifier))
		case ast.ReturnsClause:
			return "RETURNS"
		}
	}
	return ""
}
