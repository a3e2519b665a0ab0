package catalog

// =============================================================================
// Schema
// =============================================================================

// Schema is a database (CREATE DATABASE / CREATE SCHEMA).
type Schema struct {
	Named     `yaml:",inline"`
	Owner     *Catalog `json:"-" yaml:"-"`
	Charset   string   `json:"charset,omitempty" yaml:"charset,omitempty"`
	Collation string   `json:"collation,omitempty" yaml:"collation,omitempty"`
	Comment   string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	// Encryption is the DEFAULT ENCRYPTION option ('Y' or 'N').
	Encryption string `json:"encryption,omitempty" yaml:"encryption,omitempty"`
	ReadOnly   bool   `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	// Implicit is set for schemas created because something referred to them
	// before (or without) a CREATE DATABASE statement.
	Implicit bool `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	// IgnoreIfExists records IF NOT EXISTS on the CREATE DATABASE statement.
	IgnoreIfExists bool `json:"ignore_if_exists,omitempty" yaml:"ignore_if_exists,omitempty"`

	Tables   []*Table   `json:"tables,omitempty" yaml:"tables,omitempty"`
	Views    []*View    `json:"views,omitempty" yaml:"views,omitempty"`
	Routines []*Routine `json:"routines,omitempty" yaml:"routines,omitempty"`
	Events   []*Event   `json:"events,omitempty" yaml:"events,omitempty"`
}

// Kind implements Object.
func (s *Schema) Kind() Kind { return KindSchema }

// AddTable attaches t to the schema.
func (s *Schema) AddTable(t *Table) {
	t.Owner = s
	s.Tables = append(s.Tables, t)
}

// FindTable returns the table with the given name, or nil.
func (s *Schema) FindTable(name string, caseSensitive bool) *Table {
	return Find(s.Tables, name, caseSensitive)
}

// RemoveTable detaches t. It reports whether t was found.
func (s *Schema) RemoveTable(t *Table) bool {
	var ok bool
	s.Tables, ok = remove(s.Tables, t)
	return ok
}

// AddView attaches v to the schema.
func (s *Schema) AddView(v *View) {
	v.Owner = s
	s.Views = append(s.Views, v)
}

// FindView returns the view with the given name, or nil.
func (s *Schema) FindView(name string, caseSensitive bool) *View {
	return Find(s.Views, name, caseSensitive)
}

// ReplaceView swaps old for v in place, keeping its position.
func (s *Schema) ReplaceView(old, v *View) {
	v.Owner = s
	for i, cur := range s.Views {
		if cur == old {
			s.Views[i] = v
			return
		}
	}
	s.Views = append(s.Views, v)
}

// AddRoutine attaches r to the schema.
func (s *Schema) AddRoutine(r *Routine) {
	r.Owner = s
	s.Routines = append(s.Routines, r)
}

// FindRoutine returns the routine of the given type and name, or nil.
// Procedures and functions live in separate namespaces.
func (s *Schema) FindRoutine(name string, typ RoutineType, caseSensitive bool) *Routine {
	for _, r := range s.Routines {
		if r.Type.namespace() == typ.namespace() && NameEqual(r.Name, name, caseSensitive) {
			return r
		}
	}
	return nil
}

// AddEvent attaches e to the schema.
func (s *Schema) AddEvent(e *Event) {
	e.Owner = s
	s.Events = append(s.Events, e)
}

// FindEvent returns the event with the given name, or nil.
func (s *Schema) FindEvent(name string, caseSensitive bool) *Event {
	return Find(s.Events, name, caseSensitive)
}

// FindTrigger searches every table of the schema for a trigger. Trigger names
// are unique per schema.
func (s *Schema) FindTrigger(name string, caseSensitive bool) *Trigger {
	for _, t := range s.Tables {
		if tr := Find(t.Triggers, name, caseSensitive); tr != nil {
			return tr
		}
	}
	return nil
}

// ForeignKeyNameTaken reports whether any table of the schema has a foreign key
// with the given name. Foreign key names are unique per schema.
func (s *Schema) ForeignKeyNameTaken(name string, caseSensitive bool) bool {
	for _, t := range s.Tables {
		if Find(t.ForeignKeys, name, caseSensitive) != nil {
			return true
		}
	}
	return false
}

// =============================================================================
// Views
// =============================================================================

// View is a stored query.
type View struct {
	Named       `yaml:",inline"`
	Owner       *Schema  `json:"-" yaml:"-"`
	Definer     string   `json:"definer,omitempty" yaml:"definer,omitempty"`
	Algorithm   string   `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Security    string   `json:"security,omitempty" yaml:"security,omitempty"`
	Columns     []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Query       string   `json:"query" yaml:"query"`
	CheckOption string   `json:"check_option,omitempty" yaml:"check_option,omitempty"` // CASCADED, LOCAL or ""
	WithCheck   bool     `json:"with_check,omitempty" yaml:"with_check,omitempty"`
}

// Kind implements Object.
func (v *View) Kind() Kind { return KindView }

// =============================================================================
// Routines
// =============================================================================

// RoutineType distinguishes stored procedures, stored functions and loadable
// functions.
type RoutineType string

// Routine types.
const (
	RoutineProcedure RoutineType = "PROCEDURE"
	RoutineFunction  RoutineType = "FUNCTION"
	RoutineUDF       RoutineType = "UDF"
)

// stored functions and loadable functions share one namespace
func (t RoutineType) namespace() RoutineType {
	if t == RoutineUDF {
		return RoutineFunction
	}
	return t
}

// Routine is a stored procedure, stored function or loadable function.
type Routine struct {
	Named   `yaml:",inline"`
	Owner   *Schema         `json:"-" yaml:"-"`
	Type    RoutineType     `json:"type" yaml:"type"`
	Definer string          `json:"definer,omitempty" yaml:"definer,omitempty"`
	Params  []*RoutineParam `json:"params,omitempty" yaml:"params,omitempty"`
	// ReturnType is set for stored functions.
	ReturnType *DataType `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	// UDFReturn is the declared result kind of a loadable function (STRING, INTEGER, REAL, DECIMAL).
	UDFReturn     string `json:"udf_return,omitempty" yaml:"udf_return,omitempty"`
	Soname        string `json:"soname,omitempty" yaml:"soname,omitempty"`
	Aggregate     bool   `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Language      string `json:"language,omitempty" yaml:"language,omitempty"`
	Deterministic bool   `json:"deterministic,omitempty" yaml:"deterministic,omitempty"`
	DataAccess    string `json:"data_access,omitempty" yaml:"data_access,omitempty"` // CONTAINS SQL, NO SQL, READS SQL DATA, MODIFIES SQL DATA
	Security      string `json:"security,omitempty" yaml:"security,omitempty"`
	Body          string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Kind implements Object.
func (r *Routine) Kind() Kind { return KindRoutine }

// RoutineParam is a routine parameter.
type RoutineParam struct {
	Name     string   `json:"name" yaml:"name"`
	Mode     string   `json:"mode,omitempty" yaml:"mode,omitempty"` // IN, OUT, INOUT; empty for functions
	DataType DataType `json:"data_type" yaml:"data_type"`
}

// =============================================================================
// Events
// =============================================================================

// Event is a scheduled event.
type Event struct {
	Named   `yaml:",inline"`
	Owner   *Schema `json:"-" yaml:"-"`
	Definer string  `json:"definer,omitempty" yaml:"definer,omitempty"`
	// At is the one-time execution timestamp expression.
	At string `json:"at,omitempty" yaml:"at,omitempty"`
	// Every and IntervalUnit describe a recurring schedule.
	Every        string `json:"every,omitempty" yaml:"every,omitempty"`
	IntervalUnit string `json:"interval_unit,omitempty" yaml:"interval_unit,omitempty"`
	Starts       string `json:"starts,omitempty" yaml:"starts,omitempty"`
	Ends         string `json:"ends,omitempty" yaml:"ends,omitempty"`
	Preserve     bool   `json:"preserve,omitempty" yaml:"preserve,omitempty"`
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	// SlaveSide marks DISABLE ON SLAVE.
	SlaveSide bool   `json:"slave_side,omitempty" yaml:"slave_side,omitempty"`
	Comment   string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Body      string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Kind implements Object.
func (e *Event) Kind() Kind { return KindEvent }
