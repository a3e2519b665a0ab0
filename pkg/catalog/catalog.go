package catalog

import "fmt"

// ID is a stable handle for a catalog object. IDs are unique within one Catalog.
type ID uint64

// Kind identifies the type of a catalog object.
type Kind int

// Object kinds.
const (
	KindUnknown Kind = iota
	KindSchema
	KindTable
	KindColumn
	KindIndex
	KindForeignKey
	KindTrigger
	KindView
	KindRoutine
	KindEvent
	KindServer
	KindTablespace
	KindLogfileGroup
	KindUser
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	KindSchema:       "schema",
	KindTable:        "table",
	KindColumn:       "column",
	KindIndex:        "index",
	KindForeignKey:   "foreign key",
	KindTrigger:      "trigger",
	KindView:         "view",
	KindRoutine:      "routine",
	KindEvent:        "event",
	KindServer:       "server",
	KindTablespace:   "tablespace",
	KindLogfileGroup: "logfile group",
	KindUser:         "user",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Object is implemented by every catalog object.
type Object interface {
	ObjectID() ID
	ObjectName() string
	Kind() Kind
}

// Named holds the identity shared by all catalog objects.
type Named struct {
	ID   ID     `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ObjectID returns the object's handle.
func (n *Named) ObjectID() ID { return n.ID }

// ObjectName returns the object's name as written in the source.
func (n *Named) ObjectName() string { return n.Name }

// Catalog is the root of the object model.
//
// A Catalog is not safe for concurrent mutation. Concurrent reads are fine once
// nothing writes to it any more.
type Catalog struct {
	DefaultCharset   string  `json:"default_charset" yaml:"default_charset"`
	DefaultCollation string  `json:"default_collation" yaml:"default_collation"`
	Version          Version `json:"version" yaml:"version"`

	Schemas       []*Schema       `json:"schemas" yaml:"schemas"`
	Servers       []*Server       `json:"servers,omitempty" yaml:"servers,omitempty"`
	Tablespaces   []*Tablespace   `json:"tablespaces,omitempty" yaml:"tablespaces,omitempty"`
	LogfileGroups []*LogfileGroup `json:"logfile_groups,omitempty" yaml:"logfile_groups,omitempty"`
	Users         []*User         `json:"users,omitempty" yaml:"users,omitempty"`

	// SimpleDatatypes is the list of built-in types data types resolve against.
	SimpleDatatypes []*SimpleDatatype `json:"-" yaml:"-"`
	// DatatypeAliases maps alternative type spellings onto SimpleDatatypes.
	DatatypeAliases []Alias `json:"-" yaml:"-"`

	lastID  ID
	objects map[ID]Object
}

// New creates an empty catalog for the given server version with the built-in
// type list.
func New(version Version) *Catalog {
	return &Catalog{
		DefaultCharset:   "utf8mb4",
		DefaultCollation: "utf8mb4_0900_ai_ci",
		Version:          version,
		SimpleDatatypes:  DefaultDatatypes(),
		DatatypeAliases:  DefaultAliases(),
		objects:          make(map[ID]Object),
	}
}

// register assigns the next handle to n and indexes obj under it.
func (c *Catalog) register(n *Named, obj Object) {
	if c.objects == nil {
		c.objects = make(map[ID]Object)
	}
	c.lastID++
	n.ID = c.lastID
	c.objects[n.ID] = obj
}

// Lookup returns the object with the given handle, or nil.
func (c *Catalog) Lookup(id ID) Object {
	return c.objects[id]
}

// Release forgets the handle of an object that was discarded or replaced.
func (c *Catalog) Release(obj Object) {
	delete(c.objects, obj.ObjectID())
}

// ObjectCount returns the number of live objects.
func (c *Catalog) ObjectCount() int {
	return len(c.objects)
}

// ---------- Constructors ----------

// NewSchema creates a schema with a fresh handle. It is not attached yet.
func (c *Catalog) NewSchema(name string) *Schema {
	s := &Schema{Named: Named{Name: name}}
	c.register(&s.Named, s)
	return s
}

// NewTable creates a table with a fresh handle.
func (c *Catalog) NewTable(name string) *Table {
	t := &Table{Named: Named{Name: name}}
	c.register(&t.Named, t)
	return t
}

// NewColumn creates a column with a fresh handle and an unset data type.
func (c *Catalog) NewColumn(name string) *Column {
	col := &Column{Named: Named{Name: name}, DataType: NewDataType()}
	c.register(&col.Named, col)
	return col
}

// NewIndex creates an index with a fresh handle.
func (c *Catalog) NewIndex(name string, typ IndexType) *Index {
	idx := &Index{Named: Named{Name: name}, Type: typ}
	c.register(&idx.Named, idx)
	return idx
}

// NewForeignKey creates a foreign key with a fresh handle.
func (c *Catalog) NewForeignKey(name string) *ForeignKey {
	fk := &ForeignKey{Named: Named{Name: name}}
	c.register(&fk.Named, fk)
	return fk
}

// NewTrigger creates a trigger with a fresh handle.
func (c *Catalog) NewTrigger(name string) *Trigger {
	t := &Trigger{Named: Named{Name: name}}
	c.register(&t.Named, t)
	return t
}

// NewView creates a view with a fresh handle.
func (c *Catalog) NewView(name string) *View {
	v := &View{Named: Named{Name: name}}
	c.register(&v.Named, v)
	return v
}

// NewRoutine creates a routine with a fresh handle.
func (c *Catalog) NewRoutine(name string, typ RoutineType) *Routine {
	r := &Routine{Named: Named{Name: name}, Type: typ}
	c.register(&r.Named, r)
	return r
}

// NewEvent creates an event with a fresh handle.
func (c *Catalog) NewEvent(name string) *Event {
	e := &Event{Named: Named{Name: name}, Enabled: true}
	c.register(&e.Named, e)
	return e
}

// NewServer creates a server with a fresh handle.
func (c *Catalog) NewServer(name string) *Server {
	s := &Server{Named: Named{Name: name}}
	c.register(&s.Named, s)
	return s
}

// NewTablespace creates a tablespace with a fresh handle.
func (c *Catalog) NewTablespace(name string) *Tablespace {
	ts := &Tablespace{Named: Named{Name: name}, NodeGroup: Unset}
	c.register(&ts.Named, ts)
	return ts
}

// NewLogfileGroup creates a logfile group with a fresh handle.
func (c *Catalog) NewLogfileGroup(name string) *LogfileGroup {
	lg := &LogfileGroup{Named: Named{Name: name}, NodeGroup: Unset}
	c.register(&lg.Named, lg)
	return lg
}

// ---------- Attach and Find ----------

// AddSchema attaches s to the catalog.
func (c *Catalog) AddSchema(s *Schema) {
	s.Owner = c
	c.Schemas = append(c.Schemas, s)
}

// FindSchema returns the schema with the given name, or nil.
func (c *Catalog) FindSchema(name string, caseSensitive bool) *Schema {
	return Find(c.Schemas, name, caseSensitive)
}

// AddServer attaches s to the catalog.
func (c *Catalog) AddServer(s *Server) {
	s.Owner = c
	c.Servers = append(c.Servers, s)
}

// FindServer returns the server with the given name, or nil.
func (c *Catalog) FindServer(name string, caseSensitive bool) *Server {
	return Find(c.Servers, name, caseSensitive)
}

// AddTablespace attaches ts to the catalog.
func (c *Catalog) AddTablespace(ts *Tablespace) {
	ts.Owner = c
	c.Tablespaces = append(c.Tablespaces, ts)
}

// FindTablespace returns the tablespace with the given name, or nil.
func (c *Catalog) FindTablespace(name string, caseSensitive bool) *Tablespace {
	return Find(c.Tablespaces, name, caseSensitive)
}

// AddLogfileGroup attaches lg to the catalog.
func (c *Catalog) AddLogfileGroup(lg *LogfileGroup) {
	lg.Owner = c
	c.LogfileGroups = append(c.LogfileGroups, lg)
}

// FindLogfileGroup returns the logfile group with the given name, or nil.
func (c *Catalog) FindLogfileGroup(name string, caseSensitive bool) *LogfileGroup {
	return Find(c.LogfileGroups, name, caseSensitive)
}

// EnsureUser returns the user account name@host, creating it when missing.
// Account names are always compared case-sensitively.
func (c *Catalog) EnsureUser(name, host string) *User {
	for _, u := range c.Users {
		if u.Name == name && u.Host == host {
			return u
		}
	}
	u := &User{Named: Named{Name: name}, Host: host}
	c.register(&u.Named, u)
	u.Owner = c
	c.Users = append(c.Users, u)
	return u
}

// FindTable resolves a table by schema and table name.
func (c *Catalog) FindTable(schema, table string, caseSensitive bool) *Table {
	s := c.FindSchema(schema, caseSensitive)
	if s == nil {
		return nil
	}
	return s.FindTable(table, caseSensitive)
}
