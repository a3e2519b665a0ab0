package commands

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// Result is the outcome of one parsing unit.
type Result struct {
	Source  string
	Catalog *catalog.Catalog
	Report  *ddl.Report
}

// Analyse runs the sources through parsing units. By default every source
// goes into one unit, in order, so scripts may refer to each other. With
// separate set each source gets its own unit and catalog, and the units run
// concurrently.
func (c *CommandContext) Analyse(ctx context.Context, sources []Source, separate bool) ([]Result, error) {
	if !separate || len(sources) < 2 {
		return []Result{c.analyseTogether(sources)}, nil
	}

	results := make([]Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unit := c.NewUnit()
			unit.ApplySQL(src.SQL)
			results[i] = Result{Source: src.Name(), Catalog: unit.Catalog(), Report: unit.Finish()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *CommandContext) analyseTogether(sources []Source) Result {
	unit := c.NewUnit()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		c.Logger.Debug("applying script", "source", src.Name(), "unit", unit.ID.String())
		unit.ApplySQL(src.SQL)
		names = append(names, src.Name())
	}
	report := unit.Finish()
	c.Logger.Info("analysis finished",
		"unit", unit.ID.String(),
		"statements", report.Statements,
		"diagnostics", len(report.Diagnostics),
		"unresolved", len(report.Unresolved))
	return Result{Source: strings.Join(names, ", "), Catalog: unit.Catalog(), Report: report}
}

// ParseOutput is the structured output of the parse command.
type ParseOutput struct {
	Catalog *catalog.Catalog    `json:"catalog" yaml:"catalog"`
	Report  output.ReportOutput `json:"report" yaml:"report"`
}
