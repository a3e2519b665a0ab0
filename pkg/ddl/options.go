package ddl

import (
	"log/slog"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// Options configures a parsing unit.
type Options struct {
	// CaseSensitiveIdentifiers applies to every name comparison: schemas, tables,
	// columns, indexes and all other objects.
	CaseSensitiveIdentifiers bool
	// AutoGenerateFkNames synthesises fk_<table>_<referenced table> for foreign
	// keys declared without a name.
	AutoGenerateFkNames bool
	// DefaultCharsetName is used for schemas and character columns that do not
	// name a charset. Empty means the catalog default.
	DefaultCharsetName string
	// DefaultCollationName is used for schemas that do not name a collation.
	// Empty means the catalog default.
	DefaultCollationName string
	// ServerVersion gates version dependent syntax. The zero Version accepts
	// everything.
	ServerVersion catalog.Version
	// DefaultSchema is the schema unqualified names bind to until a USE
	// statement switches it.
	DefaultSchema string
	// StubUnresolvedTables creates stub tables for foreign key targets that do
	// not exist instead of reporting them.
	StubUnresolvedTables bool
	// ParallelResolve runs the lookups of the resolution pass concurrently.
	ParallelResolve bool
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		AutoGenerateFkNames: true,
		DefaultSchema:       "mydb",
	}
}

func (o Options) withDefaults(cat *catalog.Catalog) Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.DefaultCharsetName == "" {
		o.DefaultCharsetName = cat.DefaultCharset
	}
	if o.DefaultCollationName == "" {
		o.DefaultCollationName = cat.DefaultCollation
	}
	if o.DefaultSchema == "" {
		o.DefaultSchema = "mydb"
	}
	if o.ServerVersion.IsZero() {
		o.ServerVersion = cat.Version
	}
	return o
}
