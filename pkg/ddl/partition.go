package ddl

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// partitioning reads a PARTITION BY clause. The partition count is only
// taken from PARTITIONS n; definitions are kept in declared order.
func (c *Context) partitioning(n *ast.Node, object string) *catalog.Partitioning {
	p := catalog.NewPartitioning()

	switch {
	case n.Child(ast.PartitionDefHash) != nil:
		def := n.Child(ast.PartitionDefHash)
		p.Type = "HASH"
		p.Linear = def.HasKeyword("LINEAR")
		p.Expression = exprText(def)
	case n.Child(ast.PartitionDefKey) != nil:
		def := n.Child(ast.PartitionDefKey)
		p.Type = "KEY"
		p.Linear = def.HasKeyword("LINEAR")
		if v, ok := c.intValue(def, object); ok {
			p.KeyAlgorithm = v
		}
		p.ColumnNames = columnListNames(def.Child(ast.ColumnList))
	case n.Child(ast.PartitionDefRangeList) != nil:
		def := n.Child(ast.PartitionDefRangeList)
		p.Type = def.FirstKeyword()
		if def.HasKeyword("COLUMNS") {
			p.Columns = true
			p.ColumnNames = columnListNames(def.Child(ast.ColumnList))
		} else {
			p.Expression = exprText(def)
		}
	}

	if n.HasKeyword("PARTITIONS") {
		if v, ok := c.intValue(n, object); ok {
			p.Count = v
		}
	}

	if sub := n.Child(ast.SubPartitions); sub != nil {
		p.SubLinear = sub.HasKeyword("LINEAR")
		if sub.HasKeyword("HASH") {
			p.SubType = "HASH"
			p.SubExpression = exprText(sub)
		} else {
			p.SubType = "KEY"
			p.SubColumnNames = columnListNames(sub.Child(ast.ColumnList))
		}
		if sub.HasKeyword("SUBPARTITIONS") {
			if v, ok := c.intValue(lastNumber(sub), object); ok {
				p.SubCount = v
			}
		}
	}

	for _, def := range n.Child(ast.PartitionDefinitions).ChildrenOf(ast.PartitionDefinition) {
		pd := partitionDefinition(def)
		for _, s := range def.ChildrenOf(ast.SubpartitionDefinition) {
			pd.Subpartitions = append(pd.Subpartitions, partitionDefinition(s))
		}
		p.Definitions = append(p.Definitions, pd)
	}
	return p
}

// lastNumber wraps the last NUMBER terminal of n in a node of its own, so
// that SUBPARTITIONS n is not confused with ALGORITHM = n.
func lastNumber(n *ast.Node) *ast.Node {
	terms := n.Terminals()
	for i := len(terms) - 1; i >= 0; i-- {
		if terms[i].Type == token.NUMBER {
			out := &ast.Node{Kind: ast.Expr, Span: terms[i].Span()}
			out.Append(ast.NewTerminal(terms[i]))
			return out
		}
	}
	return nil
}

func partitionDefinition(n *ast.Node) *catalog.PartitionDefinition {
	pd := &catalog.PartitionDefinition{Name: identifierName(n.Child(ast.Identifier))}

	if v := n.Child(ast.PartitionValues); v != nil {
		if v.HasKeyword("MAXVALUE") {
			pd.Values = "LESS THAN MAXVALUE"
		} else {
			var items []string
			for _, e := range v.ChildrenOf(ast.Expr) {
				items = append(items, e.Text)
			}
			list := "(" + strings.Join(items, ",") + ")"
			if v.HasKeyword("IN") {
				pd.Values = "IN " + list
			} else {
				pd.Values = "LESS THAN " + list
			}
		}
	}

	for _, opt := range n.ChildrenOf(ast.PartitionOption) {
		words := opt.Words()
		if len(words) > 0 && words[0] == "STORAGE" {
			words = words[1:]
		}
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "ENGINE":
			pd.Engine = identifierName(opt.Child(ast.Identifier))
		case "COMMENT":
			pd.Comment = textValue(opt.Child(ast.TextLiteral))
		case "DATA":
			pd.DataDirectory = textValue(opt.Child(ast.TextLiteral))
		case "INDEX":
			pd.IndexDirectory = textValue(opt.Child(ast.TextLiteral))
		case "TABLESPACE":
			pd.Tablespace = identifierName(opt.Child(ast.Identifier))
		case "MAX_ROWS":
			pd.MaxRows = opt.Value()
		case "MIN_ROWS":
			pd.MinRows = opt.Value()
		case "NODEGROUP":
			pd.NodeGroup = opt.Value()
		}
	}
	return pd
}
