package ddl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// Unit is one parsing unit: a script, or a sequence of scripts, applied to a
// catalog and resolved together. A Unit is not safe for concurrent use; run
// separate units for concurrent work, each over its own catalog.
type Unit struct {
	ID uuid.UUID

	ctx         *Context
	statements  int
	parseErrors []error
	unresolved  []*ResolutionError
}

// Report summarises a unit.
type Report struct {
	UnitID      uuid.UUID          `json:"unit_id" yaml:"unit_id"`
	Statements  int                `json:"statements" yaml:"statements"`
	ParseErrors []error            `json:"-" yaml:"-"`
	Diagnostics []*Diagnostic      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Unresolved  []*ResolutionError `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// NewUnit creates a unit over cat.
func NewUnit(cat *catalog.Catalog, opts Options) *Unit {
	id := uuid.New()
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	opts.Logger = opts.Logger.With("unit", id.String())
	return &Unit{
		ID:  id,
		ctx: NewContext(cat, opts),
	}
}

// Context returns the listener context of the unit.
func (u *Unit) Context() *Context { return u.ctx }

// Catalog returns the catalog being populated.
func (u *Unit) Catalog() *catalog.Catalog { return u.ctx.catalog }

// ApplySQL parses sql and applies every statement. Statements that fail to
// parse are recorded and skipped.
func (u *Unit) ApplySQL(sql string) {
	root, errs := parser.Parse(sql, parser.Options{ServerVersion: u.ctx.opts.ServerVersion.Number()})
	for _, err := range errs {
		u.ctx.logger.Warn("parse error", "error", err)
	}
	u.parseErrors = append(u.parseErrors, errs...)
	u.Apply(root)
}

// Apply walks a script, or a single statement, with the listeners for each
// statement kind.
func (u *Unit) Apply(root *ast.Node) {
	if root == nil {
		return
	}
	if root.IsStatement() {
		u.applyStatement(root)
		return
	}
	for _, stmt := range root.Children {
		if stmt.IsStatement() {
			u.applyStatement(stmt)
		}
	}
}

func (u *Unit) applyStatement(stmt *ast.Node) {
	listeners := u.listenersFor(stmt.Kind)
	if len(listeners) == 0 {
		return
	}
	u.statements++
	u.ctx.logger.Debug("applying statement", "kind", stmt.Kind.String(), "line", stmt.Span.Start.Line)

	defer func() {
		if r := recover(); r != nil {
			u.ctx.reportf(SeverityError, CodeUnsupported, "", stmt, "statement could not be analysed: %v", r)
		}
	}()
	ast.Walk(stmt, listeners...)
}

// listenersFor builds fresh listeners for one statement, so no state leaks
// from one statement into the next.
func (u *Unit) listenersFor(kind ast.Kind) []*ast.Listener {
	ctx := u.ctx
	switch kind {
	case ast.CreateDatabase, ast.UseStatement:
		return []*ast.Listener{NewSchemaListener(ctx)}
	case ast.CreateTable:
		return []*ast.Listener{NewTableListener(ctx)}
	case ast.AlterTable:
		return []*ast.Listener{NewTableAlterListener(ctx)}
	case ast.CreateIndex:
		return []*ast.Listener{NewIndexListener(ctx)}
	case ast.CreateProcedure, ast.CreateFunction, ast.CreateUdf:
		return []*ast.Listener{NewRoutineListener(ctx)}
	case ast.CreateTrigger:
		return []*ast.Listener{NewTriggerListener(ctx)}
	case ast.CreateView:
		return []*ast.Listener{NewViewListener(ctx)}
	case ast.CreateServer:
		return []*ast.Listener{NewServerListener(ctx)}
	case ast.CreateTablespace:
		return []*ast.Listener{NewTablespaceListener(ctx)}
	case ast.CreateLogfileGroup:
		return []*ast.Listener{NewLogfileGroupListener(ctx)}
	case ast.CreateEvent:
		return []*ast.Listener{NewEventListener(ctx)}
	}
	return nil
}

// Finish runs the resolution pass over the references recorded since the
// last call and returns the report of the unit so far. It may be called again
// after more statements were applied.
func (u *Unit) Finish() *Report {
	u.unresolved = append(u.unresolved, Resolve(u.ctx)...)
	return &Report{
		UnitID:      u.ID,
		Statements:  u.statements,
		ParseErrors: u.parseErrors,
		Diagnostics: u.ctx.Diagnostics(),
		Unresolved:  u.unresolved,
	}
}

// HasErrors reports whether the unit had parse errors, error diagnostics or
// unresolved references.
func (r *Report) HasErrors() bool {
	if len(r.ParseErrors) > 0 || len(r.Unresolved) > 0 {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err joins every error of the report, or returns nil.
func (r *Report) Err() error {
	var errs []error
	errs = append(errs, r.ParseErrors...)
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	for _, e := range r.Unresolved {
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("unit %s: %w", r.UnitID, errors.Join(errs...))
}
