package catalog

import "strings"

// Table is a base table.
type Table struct {
	Named `yaml:",inline"`
	Owner *Schema `json:"-" yaml:"-"`

	Temporary bool `json:"temporary,omitempty" yaml:"temporary,omitempty"`
	// IsStub marks a placeholder created for an unresolved foreign key target.
	IsStub bool `json:"is_stub,omitempty" yaml:"is_stub,omitempty"`

	Columns     []*Column     `json:"columns,omitempty" yaml:"columns,omitempty"`
	Indexes     []*Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	ForeignKeys []*ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	Triggers    []*Trigger    `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	// PrimaryKey points into Indexes.
	PrimaryKey   *Index        `json:"-" yaml:"-"`
	Partitioning *Partitioning `json:"partitioning,omitempty" yaml:"partitioning,omitempty"`
	Options      TableOptions  `json:"options" yaml:"options"`
	Checks       []string      `json:"checks,omitempty" yaml:"checks,omitempty"`

	// LikeTable is the source of CREATE TABLE ... LIKE, as written.
	LikeTable string `json:"like_table,omitempty" yaml:"like_table,omitempty"`
	// AsSelect is the query text of CREATE TABLE ... AS SELECT.
	AsSelect string `json:"as_select,omitempty" yaml:"as_select,omitempty"`
}

// TableOptions holds the CREATE TABLE options. Values are kept as written,
// except for the charset and collation which are normalised to lower case.
type TableOptions struct {
	Engine           string   `json:"engine,omitempty" yaml:"engine,omitempty"`
	RowFormat        string   `json:"row_format,omitempty" yaml:"row_format,omitempty"`
	Charset          string   `json:"charset,omitempty" yaml:"charset,omitempty"`
	Collation        string   `json:"collation,omitempty" yaml:"collation,omitempty"`
	Comment          string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	AutoIncrement    string   `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	AvgRowLength     string   `json:"avg_row_length,omitempty" yaml:"avg_row_length,omitempty"`
	MinRows          string   `json:"min_rows,omitempty" yaml:"min_rows,omitempty"`
	MaxRows          string   `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
	KeyBlockSize     string   `json:"key_block_size,omitempty" yaml:"key_block_size,omitempty"`
	PackKeys         string   `json:"pack_keys,omitempty" yaml:"pack_keys,omitempty"`
	Checksum         bool     `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	DelayKeyWrite    bool     `json:"delay_key_write,omitempty" yaml:"delay_key_write,omitempty"`
	StatsAutoRecalc  string   `json:"stats_auto_recalc,omitempty" yaml:"stats_auto_recalc,omitempty"`
	StatsPersistent  string   `json:"stats_persistent,omitempty" yaml:"stats_persistent,omitempty"`
	StatsSamplePages string   `json:"stats_sample_pages,omitempty" yaml:"stats_sample_pages,omitempty"`
	Connection       string   `json:"connection,omitempty" yaml:"connection,omitempty"`
	Password         string   `json:"password,omitempty" yaml:"password,omitempty"`
	Compression      string   `json:"compression,omitempty" yaml:"compression,omitempty"`
	Encryption       string   `json:"encryption,omitempty" yaml:"encryption,omitempty"`
	MergeUnion       []string `json:"merge_union,omitempty" yaml:"merge_union,omitempty"`
	InsertMethod     string   `json:"insert_method,omitempty" yaml:"insert_method,omitempty"`
	DataDirectory    string   `json:"data_directory,omitempty" yaml:"data_directory,omitempty"`
	IndexDirectory   string   `json:"index_directory,omitempty" yaml:"index_directory,omitempty"`
	Tablespace       string   `json:"tablespace,omitempty" yaml:"tablespace,omitempty"`
	Storage          string   `json:"storage,omitempty" yaml:"storage,omitempty"`
	// Other keeps options without a dedicated field, keyed by upper-cased name.
	Other map[string]string `json:"other,omitempty" yaml:"other,omitempty"`
}

// Kind implements Object.
func (t *Table) Kind() Kind { return KindTable }

// Qualified returns schema.table, or just the table name when unattached.
func (t *Table) Qualified() string {
	if t.Owner == nil {
		return t.Name
	}
	return t.Owner.Name + "." + t.Name
}

// FindColumn returns the column with the given name, or nil.
func (t *Table) FindColumn(name string, caseSensitive bool) *Column {
	return Find(t.Columns, name, caseSensitive)
}

// AddColumn appends col to the table.
func (t *Table) AddColumn(col *Column) {
	col.Owner = t
	t.Columns = append(t.Columns, col)
}

// InsertColumn places col right after the column named after. An empty
// after with first set places it at the front; an unknown after appends.
func (t *Table) InsertColumn(col *Column, first bool, after string, caseSensitive bool) {
	col.Owner = t
	pos := len(t.Columns)
	switch {
	case first:
		pos = 0
	case after != "":
		for i, c := range t.Columns {
			if NameEqual(c.Name, after, caseSensitive) {
				pos = i + 1
				break
			}
		}
	}
	t.Columns = append(t.Columns, nil)
	copy(t.Columns[pos+1:], t.Columns[pos:])
	t.Columns[pos] = col
}

// RemoveColumn detaches col. It reports whether col was found.
func (t *Table) RemoveColumn(col *Column) bool {
	var ok bool
	t.Columns, ok = remove(t.Columns, col)
	return ok
}

// FindIndex returns the index with the given name, or nil.
func (t *Table) FindIndex(name string, caseSensitive bool) *Index {
	return Find(t.Indexes, name, caseSensitive)
}

// AddIndex appends idx and records it as the primary key when it is one.
func (t *Table) AddIndex(idx *Index) {
	idx.Owner = t
	t.Indexes = append(t.Indexes, idx)
	if idx.Type == IndexPrimary {
		t.PrimaryKey = idx
	}
}

// RemoveIndex detaches idx. It reports whether idx was found.
func (t *Table) RemoveIndex(idx *Index) bool {
	var ok bool
	t.Indexes, ok = remove(t.Indexes, idx)
	if ok && t.PrimaryKey == idx {
		t.PrimaryKey = nil
	}
	return ok
}

// FindForeignKey returns the foreign key with the given name, or nil.
func (t *Table) FindForeignKey(name string, caseSensitive bool) *ForeignKey {
	return Find(t.ForeignKeys, name, caseSensitive)
}

// AddForeignKey appends fk to the table.
func (t *Table) AddForeignKey(fk *ForeignKey) {
	fk.Owner = t
	t.ForeignKeys = append(t.ForeignKeys, fk)
}

// RemoveForeignKey detaches fk. It reports whether fk was found.
func (t *Table) RemoveForeignKey(fk *ForeignKey) bool {
	var ok bool
	t.ForeignKeys, ok = remove(t.ForeignKeys, fk)
	return ok
}

// AddTrigger appends tr to the table.
func (t *Table) AddTrigger(tr *Trigger) {
	tr.Owner = t
	t.Triggers = append(t.Triggers, tr)
}

// =============================================================================
// Columns
// =============================================================================

// Column is a table column.
type Column struct {
	Named    `yaml:",inline"`
	Owner    *Table   `json:"-" yaml:"-"`
	DataType DataType `json:"data_type" yaml:"data_type"`

	NotNull       bool `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	AutoIncrement bool `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	Invisible     bool `json:"invisible,omitempty" yaml:"invisible,omitempty"`
	// Default is the default value as written; HasDefault separates DEFAULT ''
	// from no default at all.
	Default    string `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault bool   `json:"has_default,omitempty" yaml:"has_default,omitempty"`
	OnUpdate   string `json:"on_update,omitempty" yaml:"on_update,omitempty"`
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`

	Generated            bool   `json:"generated,omitempty" yaml:"generated,omitempty"`
	GenerationExpression string `json:"generation_expression,omitempty" yaml:"generation_expression,omitempty"`
	GeneratedStorage     string `json:"generated_storage,omitempty" yaml:"generated_storage,omitempty"` // VIRTUAL or STORED

	ColumnFormat string `json:"column_format,omitempty" yaml:"column_format,omitempty"`
	Storage      string `json:"storage,omitempty" yaml:"storage,omitempty"`
	SRID         string `json:"srid,omitempty" yaml:"srid,omitempty"`
}

// Kind implements Object.
func (c *Column) Kind() Kind { return KindColumn }

// =============================================================================
// Indexes
// =============================================================================

// IndexType is the kind of an index.
type IndexType string

// Index types.
const (
	IndexPrimary  IndexType = "PRIMARY"
	IndexUnique   IndexType = "UNIQUE"
	IndexPlain    IndexType = "INDEX"
	IndexFulltext IndexType = "FULLTEXT"
	IndexSpatial  IndexType = "SPATIAL"
	IndexForeign  IndexType = "FOREIGN"
)

// Index is a table index or key.
type Index struct {
	Named `yaml:",inline"`
	Owner *Table    `json:"-" yaml:"-"`
	Type  IndexType `json:"type" yaml:"type"`
	// Algorithm is the index structure (BTREE, HASH, RTREE).
	Algorithm    string         `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Columns      []*IndexColumn `json:"columns" yaml:"columns"`
	Comment      string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Parser       string         `json:"parser,omitempty" yaml:"parser,omitempty"`
	KeyBlockSize string         `json:"key_block_size,omitempty" yaml:"key_block_size,omitempty"`
	Invisible    bool           `json:"invisible,omitempty" yaml:"invisible,omitempty"`
	// Incomplete is set when some column names did not resolve.
	Incomplete bool `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
	// OnlineAlgorithm and OnlineLock are the ALGORITHM= and LOCK= clauses of CREATE INDEX.
	OnlineAlgorithm string `json:"online_algorithm,omitempty" yaml:"online_algorithm,omitempty"`
	OnlineLock      string `json:"online_lock,omitempty" yaml:"online_lock,omitempty"`
}

// Kind implements Object.
func (i *Index) Kind() Kind { return KindIndex }

// ColumnNames returns the names of the index columns as written.
func (i *Index) ColumnNames() []string {
	out := make([]string, 0, len(i.Columns))
	for _, c := range i.Columns {
		out = append(out, c.Name)
	}
	return out
}

// IndexColumn is one key part of an index.
type IndexColumn struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Column is set by the resolution pass.
	Column     *Column `json:"-" yaml:"-"`
	Length     int     `json:"length,omitempty" yaml:"length,omitempty"` // prefix length, 0 for none
	Descending bool    `json:"descending,omitempty" yaml:"descending,omitempty"`
	// Expression is set for functional key parts, which have no column.
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// =============================================================================
// Foreign keys
// =============================================================================

// ForeignKey is a foreign key constraint.
type ForeignKey struct {
	Named `yaml:",inline"`
	Owner *Table `json:"-" yaml:"-"`

	ColumnNames []string  `json:"columns" yaml:"columns"`
	Columns     []*Column `json:"-" yaml:"-"`

	// ReferencedTableName is the target as written, possibly schema qualified.
	ReferencedTableName   string    `json:"referenced_table" yaml:"referenced_table"`
	ReferencedTable       *Table    `json:"-" yaml:"-"`
	ReferencedColumnNames []string  `json:"referenced_columns" yaml:"referenced_columns"`
	ReferencedColumns     []*Column `json:"-" yaml:"-"`

	OnDelete string `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	OnUpdate string `json:"on_update,omitempty" yaml:"on_update,omitempty"`
	Match    string `json:"match,omitempty" yaml:"match,omitempty"`

	// Index is the supporting index, if any.
	Index      *Index `json:"-" yaml:"-"`
	Incomplete bool   `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
}

// Kind implements Object.
func (f *ForeignKey) Kind() Kind { return KindForeignKey }

// =============================================================================
// Partitioning
// =============================================================================

// Partitioning describes PARTITION BY.
type Partitioning struct {
	Type         string   `json:"type" yaml:"type"` // HASH, KEY, RANGE, LIST
	Linear       bool     `json:"linear,omitempty" yaml:"linear,omitempty"`
	Columns      bool     `json:"columns,omitempty" yaml:"columns,omitempty"` // RANGE COLUMNS / LIST COLUMNS
	Expression   string   `json:"expression,omitempty" yaml:"expression,omitempty"`
	ColumnNames  []string `json:"column_names,omitempty" yaml:"column_names,omitempty"`
	KeyAlgorithm int      `json:"key_algorithm,omitempty" yaml:"key_algorithm,omitempty"`
	Count        int      `json:"count" yaml:"count"` // Unset when not given

	SubType        string   `json:"sub_type,omitempty" yaml:"sub_type,omitempty"`
	SubLinear      bool     `json:"sub_linear,omitempty" yaml:"sub_linear,omitempty"`
	SubExpression  string   `json:"sub_expression,omitempty" yaml:"sub_expression,omitempty"`
	SubColumnNames []string `json:"sub_column_names,omitempty" yaml:"sub_column_names,omitempty"`
	SubCount       int      `json:"sub_count" yaml:"sub_count"`

	Definitions []*PartitionDefinition `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// NewPartitioning returns a Partitioning with unset counts.
func NewPartitioning() *Partitioning {
	return &Partitioning{Count: Unset, SubCount: Unset}
}

// PartitionDefinition is one PARTITION or SUBPARTITION clause.
type PartitionDefinition struct {
	Name string `json:"name" yaml:"name"`
	// Values is the bound as written: "LESS THAN (10)", "LESS THAN MAXVALUE", "IN (1,2)".
	Values         string                 `json:"values,omitempty" yaml:"values,omitempty"`
	Engine         string                 `json:"engine,omitempty" yaml:"engine,omitempty"`
	Comment        string                 `json:"comment,omitempty" yaml:"comment,omitempty"`
	DataDirectory  string                 `json:"data_directory,omitempty" yaml:"data_directory,omitempty"`
	IndexDirectory string                 `json:"index_directory,omitempty" yaml:"index_directory,omitempty"`
	MaxRows        string                 `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
	MinRows        string                 `json:"min_rows,omitempty" yaml:"min_rows,omitempty"`
	Tablespace     string                 `json:"tablespace,omitempty" yaml:"tablespace,omitempty"`
	NodeGroup      string                 `json:"node_group,omitempty" yaml:"node_group,omitempty"`
	Subpartitions  []*PartitionDefinition `json:"subpartitions,omitempty" yaml:"subpartitions,omitempty"`
}

// =============================================================================
// Triggers
// =============================================================================

// Trigger is a table trigger.
type Trigger struct {
	Named   `yaml:",inline"`
	Owner   *Table `json:"-" yaml:"-"`
	Definer string `json:"definer,omitempty" yaml:"definer,omitempty"`
	Timing  string `json:"timing" yaml:"timing"` // BEFORE, AFTER
	Event   string `json:"event" yaml:"event"`   // INSERT, UPDATE, DELETE
	// OrderType is FOLLOWS or PRECEDES; OtherTrigger names the trigger it refers to.
	OrderType    string `json:"order_type,omitempty" yaml:"order_type,omitempty"`
	OtherTrigger string `json:"other_trigger,omitempty" yaml:"other_trigger,omitempty"`
	Body         string `json:"body,omitempty" yaml:"body,omitempty"`
	// TableName is the table as written, kept for display while unresolved.
	TableName string `json:"table" yaml:"table"`
}

// Kind implements Object.
func (t *Trigger) Kind() Kind { return KindTrigger }

// Describe renders the trigger's timing and event, e.g. "BEFORE INSERT".
func (t *Trigger) Describe() string {
	return strings.TrimSpace(t.Timing + " " + t.Event)
}
