// Package ddl builds a catalog model from MySQL DDL syntax trees.
//
// # Usage
//
//	cat := catalog.New(catalog.MustParseVersion("8.0.32"))
//	unit := ddl.NewUnit(cat, ddl.DefaultOptions())
//	unit.ApplySQL(script)
//	report := unit.Finish()
//	if err := report.Err(); err != nil {
//	    // parse errors, error diagnostics and unresolved references
//	}
//
// # Single Pass With Deferred References
//
// Each statement is walked once by the listener for its kind. Names that can
// only be checked once the whole unit is known (index key parts, foreign key
// columns and targets, CREATE INDEX / ALTER TABLE / LIKE / triggers on tables
// defined later, logfile groups of tablespaces) are recorded in the unit's
// RefCache. Resolve matches them against the completed catalog in insertion
// order, so the result does not depend on declaration order.
//
// # Diagnostics
//
// Nothing stops the walk. Duplicates, out of range values and unsupported
// clauses become Diagnostics; references that do not resolve become
// ResolutionErrors. Both unwrap to the sentinel errors of this package.
package ddl
