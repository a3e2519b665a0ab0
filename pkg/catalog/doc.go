// Package catalog defines the object model built by the DDL analyser.
//
// A Catalog owns Schemas, Servers, Tablespaces, LogfileGroups and Users. A
// Schema owns Tables, Views, Routines and Events; a Table owns Columns,
// Indexes, ForeignKeys and Triggers.
//
// Every object carries a stable ID handed out by its catalog and a non-owning
// Owner pointer back to its container. Cross references between objects (a
// foreign key's referenced table, an index column's column, a tablespace's
// logfile group) are also plain non-owning pointers, filled in by the resolution
// pass in package ddl. They are excluded from JSON and YAML encoding; the name
// fields next to them carry the same information.
//
// Name comparison follows the catalog's case policy: see NameEqual and Find.
package catalog
