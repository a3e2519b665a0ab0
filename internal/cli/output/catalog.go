package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// Catalog renders the objects of cat, one table per schema followed by the
// server-level objects.
func (r *Renderer) Catalog(cat *catalog.Catalog) error {
	if ok, err := r.Structured(cat); ok {
		return err
	}

	r.Header(1, "Catalog")
	version := cat.Version.String()
	if version == "" {
		version = "latest"
	}
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatKeyValue("Server version", version))
		r.Println(FormatKeyValue("Default charset", cat.DefaultCharset))
		r.Println(FormatKeyValue("Default collation", cat.DefaultCollation))
		r.Println("")
	} else {
		r.Muted(fmt.Sprintf("server %s, %s / %s", version, cat.DefaultCharset, cat.DefaultCollation))
	}

	for _, s := range cat.Schemas {
		title := "Schema " + s.Name
		if s.Implicit {
			title += " (implicit)"
		}
		r.Header(2, title)
		rows := SchemaObjects(s)
		if len(rows) == 0 {
			r.Muted("(empty)")
			continue
		}
		r.objectTable(rows)
	}

	if rows := GlobalObjects(cat); len(rows) > 0 {
		r.Header(2, "Server objects")
		r.objectTable(rows)
	}
	return nil
}

// ObjectRow is one line of an object listing.
type ObjectRow struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

func (r *Renderer) objectTable(rows []ObjectRow) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Kind", "Details"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Name, row.Kind, orDash(row.Details)})
	}
	r.renderTable(t)
}

// SchemaObjects lists the objects of s in declaration order, grouped by kind.
func SchemaObjects(s *catalog.Schema) []ObjectRow {
	var rows []ObjectRow
	for _, t := range s.Tables {
		rows = append(rows, ObjectRow{Name: t.Name, Kind: t.Kind().String(), Details: tableDetails(t)})
	}
	for _, v := range s.Views {
		rows = append(rows, ObjectRow{Name: v.Name, Kind: v.Kind().String(), Details: joinNonEmpty(v.Algorithm, securityOf(v.Security), v.CheckOption)})
	}
	for _, rt := range s.Routines {
		rows = append(rows, ObjectRow{Name: rt.Name, Kind: strings.ToLower(string(rt.Type)), Details: routineDetails(rt)})
	}
	for _, t := range s.Tables {
		for _, tr := range t.Triggers {
			rows = append(rows, ObjectRow{Name: tr.Name, Kind: tr.Kind().String(), Details: tr.Describe() + " ON " + t.Name})
		}
	}
	for _, e := range s.Events {
		rows = append(rows, ObjectRow{Name: e.Name, Kind: e.Kind().String(), Details: eventDetails(e)})
	}
	return rows
}

// GlobalObjects lists the servers, tablespaces, logfile groups and users of cat.
func GlobalObjects(cat *catalog.Catalog) []ObjectRow {
	var rows []ObjectRow
	for _, s := range cat.Servers {
		rows = append(rows, ObjectRow{Name: s.Name, Kind: s.Kind().String(), Details: joinNonEmpty(s.Wrapper, s.Host, s.Database)})
	}
	for _, ts := range cat.Tablespaces {
		details := []string{ts.DataFile}
		if ts.Undo {
			details = append(details, "undo")
		}
		if ts.InitialSize > 0 {
			details = append(details, "initial "+FormatSize(ts.InitialSize))
		}
		if ts.LogfileGroupName != "" {
			details = append(details, "logfile group "+ts.LogfileGroupName)
		}
		details = append(details, ts.Engine)
		rows = append(rows, ObjectRow{Name: ts.Name, Kind: ts.Kind().String(), Details: joinNonEmpty(details...)})
	}
	for _, lg := range cat.LogfileGroups {
		details := []string{lg.UndoFile}
		if lg.InitialSize > 0 {
			details = append(details, "initial "+FormatSize(lg.InitialSize))
		}
		if lg.UndoBufferSize > 0 {
			details = append(details, "undo buffer "+FormatSize(lg.UndoBufferSize))
		}
		details = append(details, lg.Engine)
		rows = append(rows, ObjectRow{Name: lg.Name, Kind: lg.Kind().String(), Details: joinNonEmpty(details...)})
	}
	for _, u := range cat.Users {
		rows = append(rows, ObjectRow{Name: u.Account(), Kind: u.Kind().String()})
	}
	return rows
}

func tableDetails(t *catalog.Table) string {
	parts := []string{
		FormatCount(len(t.Columns), "column", "columns"),
	}
	if n := len(t.Indexes); n > 0 {
		parts = append(parts, FormatCount(n, "index", "indexes"))
	}
	if n := len(t.ForeignKeys); n > 0 {
		parts = append(parts, FormatCount(n, "foreign key", "foreign keys"))
	}
	if t.Partitioning != nil {
		parts = append(parts, "partitioned by "+t.Partitioning.Type)
	}
	if t.Temporary {
		parts = append(parts, "temporary")
	}
	if t.IsStub {
		parts = append(parts, "stub")
	}
	return strings.Join(parts, ", ")
}

func routineDetails(rt *catalog.Routine) string {
	switch {
	case rt.Type == catalog.RoutineUDF:
		return joinNonEmpty("RETURNS "+rt.UDFReturn, "SONAME "+rt.Soname)
	case rt.ReturnType != nil:
		return "RETURNS " + rt.ReturnType.String()
	}
	return FormatCount(len(rt.Params), "parameter", "parameters")
}

func eventDetails(e *catalog.Event) string {
	schedule := "AT " + e.At
	if e.Every != "" {
		schedule = "EVERY " + e.Every + " " + e.IntervalUnit
	}
	state := "disabled"
	if e.Enabled {
		state = "enabled"
	}
	return joinNonEmpty(schedule, state)
}

func securityOf(s string) string {
	if s == "" {
		return ""
	}
	return "SQL SECURITY " + s
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Table renders the columns, indexes and foreign keys of t.
func (r *Renderer) Table(t *catalog.Table) error {
	if ok, err := r.Structured(t); ok {
		return err
	}

	name := t.Name
	if t.Owner != nil {
		name = t.Owner.Name + "." + t.Name
	}
	r.Header(2, "Table "+name)

	cols := table.NewWriter()
	cols.AppendHeader(table.Row{"Column", "Type", "Null", "Key", "Default", "Extra"})
	for _, c := range t.Columns {
		null := "YES"
		if c.NotNull {
			null = "NO"
		}
		def := "-"
		if c.HasDefault {
			def = c.Default
		}
		cols.AppendRow(table.Row{c.Name, c.DataType.String(), null, orDash(ColumnKey(t, c.Name)), def, orDash(columnExtra(c))})
	}
	r.renderTable(cols)

	if len(t.Indexes) > 0 {
		idx := table.NewWriter()
		idx.AppendHeader(table.Row{"Index", "Type", "Columns"})
		for _, i := range t.Indexes {
			idx.AppendRow(table.Row{i.Name, string(i.Type), strings.Join(i.ColumnNames(), ", ")})
		}
		r.renderTable(idx)
	}

	if len(t.ForeignKeys) > 0 {
		fks := table.NewWriter()
		fks.AppendHeader(table.Row{"Foreign key", "Columns", "References", "On delete", "On update"})
		for _, fk := range t.ForeignKeys {
			ref := fk.ReferencedTableName + " (" + strings.Join(fk.ReferencedColumnNames, ", ") + ")"
			fks.AppendRow(table.Row{fk.Name, strings.Join(fk.ColumnNames, ", "), ref, orDash(fk.OnDelete), orDash(fk.OnUpdate)})
		}
		r.renderTable(fks)
	}
	return nil
}

// ColumnKey returns the SHOW COLUMNS key marker of a column: PRI, UNI, MUL
// or "".
func ColumnKey(t *catalog.Table, column string) string {
	if t.PrimaryKey != nil {
		for _, name := range t.PrimaryKey.ColumnNames() {
			if catalog.NameEqual(name, column, false) {
				return "PRI"
			}
		}
	}
	key := ""
	for _, i := range t.Indexes {
		if len(i.Columns) == 0 || !catalog.NameEqual(i.Columns[0].Name, column, false) {
			continue
		}
		switch i.Type {
		case catalog.IndexPrimary:
			return "PRI"
		case catalog.IndexUnique:
			if len(i.Columns) == 1 {
				key = "UNI"
				continue
			}
		}
		if key == "" {
			key = "MUL"
		}
	}
	return key
}

func columnExtra(c *catalog.Column) string {
	var extra []string
	if c.AutoIncrement {
		extra = append(extra, "auto_increment")
	}
	if c.Generated {
		extra = append(extra, strings.ToUpper(orDefault(c.GeneratedStorage, "VIRTUAL"))+" GENERATED")
	}
	if c.OnUpdate != "" {
		extra = append(extra, "on update "+c.OnUpdate)
	}
	if c.Invisible {
		extra = append(extra, "INVISIBLE")
	}
	return strings.Join(extra, " ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
