// Package config provides the analysis settings shared by the CLI and any
// other front end that drives a ddl.Unit. It is decoupled from CLI concerns.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// AnalysisConfig holds the options of a parsing unit as they appear in
// leapddl.yaml, environment variables and flags.
type AnalysisConfig struct {
	ServerVersion    catalog.Version `koanf:"server_version"`
	DefaultSchema    string          `koanf:"default_schema"`
	DefaultCharset   string          `koanf:"default_charset"`
	DefaultCollation string          `koanf:"default_collation"`
	CaseSensitive    bool            `koanf:"case_sensitive"`
	AutoFkNames      bool            `koanf:"auto_fk_names"`
	StubUnresolved   bool            `koanf:"stub_unresolved"`
	ParallelResolve  bool            `koanf:"parallel_resolve"`
}

// Options converts the configuration to unit options logging to logger.
func (c AnalysisConfig) Options(logger *slog.Logger) ddl.Options {
	return ddl.Options{
		CaseSensitiveIdentifiers: c.CaseSensitive,
		AutoGenerateFkNames:      c.AutoFkNames,
		DefaultCharsetName:       c.DefaultCharset,
		DefaultCollationName:     c.DefaultCollation,
		ServerVersion:            c.ServerVersion,
		DefaultSchema:            c.DefaultSchema,
		StubUnresolvedTables:     c.StubUnresolved,
		ParallelResolve:          c.ParallelResolve,
		Logger:                   logger,
	}
}

// NewCatalog returns an empty catalog for the configured server version with
// the configured defaults applied.
func (c AnalysisConfig) NewCatalog() *catalog.Catalog {
	cat := catalog.New(c.ServerVersion)
	if c.DefaultCharset != "" {
		cat.DefaultCharset = c.DefaultCharset
	}
	if c.DefaultCollation != "" {
		cat.DefaultCollation = c.DefaultCollation
	}
	return cat
}
