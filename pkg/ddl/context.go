package ddl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// Context is the state shared by every listener of a parsing unit: the
// catalog, the case policy, the reference cache and the current schema.
//
// A Context is not safe for concurrent use.
type Context struct {
	catalog *catalog.Catalog
	opts    Options
	refs    *RefCache
	logger  *slog.Logger

	current     *catalog.Schema
	diagnostics []*Diagnostic
}

// NewContext creates a listener context over cat. The current schema starts as
// opts.DefaultSchema; it is created on first use.
func NewContext(cat *catalog.Catalog, opts Options) *Context {
	opts = opts.withDefaults(cat)
	return &Context{
		catalog: cat,
		opts:    opts,
		refs:    NewRefCache(),
		logger:  opts.Logger,
	}
}

// Catalog returns the catalog being populated.
func (c *Context) Catalog() *catalog.Catalog { return c.catalog }

// Options returns the effective options.
func (c *Context) Options() Options { return c.opts }

// Refs returns the deferred reference cache of the unit.
func (c *Context) Refs() *RefCache { return c.refs }

// CaseSensitive reports the identifier case policy.
func (c *Context) CaseSensitive() bool { return c.opts.CaseSensitiveIdentifiers }

// Diagnostics returns everything recorded so far.
func (c *Context) Diagnostics() []*Diagnostic { return c.diagnostics }

// EnsureSchemaExists returns the schema matching name under the case policy,
// creating and attaching it when there is none. Repeated calls with equal
// names return the same schema.
func (c *Context) EnsureSchemaExists(name string) *catalog.Schema {
	if s := c.catalog.FindSchema(name, c.CaseSensitive()); s != nil {
		return s
	}
	s := c.catalog.NewSchema(name)
	s.Charset = c.opts.DefaultCharsetName
	s.Collation = c.opts.DefaultCollationName
	s.Implicit = true
	c.catalog.AddSchema(s)
	c.logger.Debug("created schema", "schema", name)
	return s
}

// CurrentSchema returns the schema unqualified names bind to.
func (c *Context) CurrentSchema() *catalog.Schema {
	if c.current == nil {
		c.current = c.EnsureSchemaExists(c.opts.DefaultSchema)
	}
	return c.current
}

// UseSchema switches the current schema.
func (c *Context) UseSchema(name string) *catalog.Schema {
	c.current = c.EnsureSchemaExists(name)
	return c.current
}

// schemaFor returns the named schema, or the current one for "".
func (c *Context) schemaFor(name string) *catalog.Schema {
	if name == "" {
		return c.CurrentSchema()
	}
	return c.EnsureSchemaExists(name)
}

// lookupSchema is schemaFor without creating anything.
func (c *Context) lookupSchema(name string) *catalog.Schema {
	if name == "" {
		return c.CurrentSchema()
	}
	return c.catalog.FindSchema(name, c.CaseSensitive())
}

// findTable looks up a table by its name parts without creating anything.
func (c *Context) findTable(parts []string) *catalog.Table {
	schema, name := splitQualified(parts)
	s := c.lookupSchema(schema)
	if s == nil {
		return nil
	}
	return s.FindTable(name, c.CaseSensitive())
}

// report records a diagnostic and logs it.
func (c *Context) report(d *Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	level := slog.LevelWarn
	if d.Severity == SeverityInfo {
		level = slog.LevelDebug
	}
	c.logger.Log(context.Background(), level, "diagnostic",
		"code", string(d.Code), "object", d.Object, "message", d.Message)
}

func (c *Context) reportf(sev Severity, code Code, object string, at *ast.Node, format string, args ...any) {
	c.report(&Diagnostic{
		Severity: sev,
		Code:     code,
		Object:   object,
		Message:  fmt.Sprintf(format, args...),
		Pos:      nodePos(at),
	})
}

// duplicate records a rejected duplicate definition. ifNotExists downgrades it
// to info.
func (c *Context) duplicate(kind catalog.Kind, object string, at *ast.Node, ifNotExists bool) {
	sev := SeverityError
	if ifNotExists {
		sev = SeverityInfo
	}
	c.reportf(sev, CodeDuplicate, object, at, "%s %s already exists", kind, object)
}

// release forgets the handles of a discarded object tree.
func (c *Context) release(objs ...catalog.Object) {
	for _, o := range objs {
		c.catalog.Release(o)
	}
}

// releaseTable forgets the handles of a discarded table and everything it owns.
func (c *Context) releaseTable(t *catalog.Table) {
	for _, col := range t.Columns {
		c.catalog.Release(col)
	}
	for _, idx := range t.Indexes {
		c.catalog.Release(idx)
	}
	for _, fk := range t.ForeignKeys {
		c.catalog.Release(fk)
	}
	for _, tr := range t.Triggers {
		c.catalog.Release(tr)
	}
	c.catalog.Release(t)
}
