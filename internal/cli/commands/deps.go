package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/internal/deps"
)

// DepsOptions holds options for the deps command.
type DepsOptions struct {
	Dependents   string // List what references this table
	Dependencies string // List what this table references
}

// NewDepsCommand creates the deps command.
func NewDepsCommand() *cobra.Command {
	opts := &DepsOptions{}
	cmd := &cobra.Command{
		Use:   "deps [files or directories...]",
		Short: "Show the foreign key dependencies between tables",
		Long: `Build the catalog and show the order in which its tables can be created,
each after every table its foreign keys reference.

Tables are also grouped into levels: a table references only tables of
lower levels, so the tables of one level are independent of each other.
A foreign key cycle is reported instead of an order.`,
		Example: `  # Creation order of a schema directory
  leapddl deps ./schema

  # Tables a DROP TABLE of customers would break
  leapddl deps ./schema --dependents shop.customers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dependents, "dependents", "", "List the tables that reference this table, directly or not")
	cmd.Flags().StringVar(&opts.Dependencies, "dependencies", "", "List the tables this table references, directly or not")
	cmd.MarkFlagsMutuallyExclusive("dependents", "dependencies")

	return cmd
}

func runDeps(cmd *cobra.Command, args []string, opts *DepsOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	files, err := CollectFiles(args)
	if err != nil {
		return err
	}
	sources, err := ReadSources(files, cmd.InOrStdin())
	if err != nil {
		return err
	}
	results, err := cmdCtx.Analyse(cmd.Context(), sources, false)
	if err != nil {
		return err
	}
	res := results[0]
	g := deps.Build(res.Catalog)
	cmdCtx.Logger.Debug("dependency graph built", "tables", g.Len(), "references", g.EdgeCount())

	r := cmdCtx.Renderer
	if name := opts.Dependents + opts.Dependencies; name != "" {
		t := findTable(res.Catalog, cmdCtx.Cfg.DefaultSchema, name, cmdCtx.Cfg.CaseSensitive)
		if t == nil {
			return fmt.Errorf("table %s not found", name)
		}
		id := deps.ID(t)
		if opts.Dependents != "" {
			return r.TableList("Tables referencing "+id, g.Dependents(id))
		}
		return r.TableList("Tables referenced by "+id, g.Dependencies(id))
	}

	out := output.DependencyOutput{SelfReferencing: g.SelfReferencing()}
	order, err := g.CreationOrder()
	var cycle *deps.CycleError
	switch {
	case errors.As(err, &cycle):
		out.Cycle = cycle.Path
	case err != nil:
		return err
	default:
		for _, n := range order {
			out.Order = append(out.Order, output.OrderRow{Table: n.ID, References: g.References(n.ID)})
		}
		if out.Levels, err = g.Levels(); err != nil {
			return err
		}
	}
	return r.Dependencies(out)
}
