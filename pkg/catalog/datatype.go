package catalog

import (
	"strconv"
	"strings"
)

// Unset marks a numeric attribute that was not specified. It is distinct from
// an explicit 0.
const Unset = -1

// TypeGroup classifies the built-in data types.
type TypeGroup string

// Type groups.
const (
	GroupNumeric  TypeGroup = "numeric"
	GroupDateTime TypeGroup = "datetime"
	GroupString   TypeGroup = "string"
	GroupBlob     TypeGroup = "blob"
	GroupEnum     TypeGroup = "enum"
	GroupSpatial  TypeGroup = "spatial"
	GroupJSON     TypeGroup = "json"
	GroupBit      TypeGroup = "bit"
)

// SimpleDatatype is one entry of the built-in type list.
type SimpleDatatype struct {
	Name     string    `json:"name" yaml:"name"`
	Synonyms []string  `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Group    TypeGroup `json:"group" yaml:"group"`
	// NumericPrecision is set when a single length clause means precision (DECIMAL, FLOAT).
	NumericPrecision bool `json:"numeric_precision,omitempty" yaml:"numeric_precision,omitempty"`
	// DateTimePrecision is set for types taking fractional seconds precision.
	DateTimePrecision bool `json:"datetime_precision,omitempty" yaml:"datetime_precision,omitempty"`
	// CharacterType is set for types carrying a charset and collation.
	CharacterType bool `json:"character_type,omitempty" yaml:"character_type,omitempty"`
	// MinVersion is the first server version that knows the type.
	MinVersion Version `json:"min_version,omitempty" yaml:"min_version,omitempty"`
}

// Alias maps an alternative spelling onto a built-in type, optionally with
// fixed parameters (BOOL is TINYINT(1)).
type Alias struct {
	Name    string
	Target  string
	Length  int
	Charset string
	Flags   []string
}

// DataType describes the type of a column, parameter or function result.
type DataType struct {
	// Simple is the built-in type the name resolved to, nil when unknown.
	Simple    *SimpleDatatype `json:"-" yaml:"-"`
	Name      string          `json:"name" yaml:"name"`
	Length    int             `json:"length" yaml:"length"`
	Precision int             `json:"precision" yaml:"precision"`
	Scale     int             `json:"scale" yaml:"scale"`
	Charset   string          `json:"charset,omitempty" yaml:"charset,omitempty"`
	Collation string          `json:"collation,omitempty" yaml:"collation,omitempty"`
	// ExplicitParams is the ENUM/SET value list followed by the field options,
	// in source order, e.g. "('a','b') BINARY" or "UNSIGNED ZEROFILL".
	// Flags carries the same options one per entry.
	ExplicitParams string   `json:"explicit_params,omitempty" yaml:"explicit_params,omitempty"`
	Flags          []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// NewDataType returns a descriptor with every numeric attribute unset.
func NewDataType() DataType {
	return DataType{Length: Unset, Precision: Unset, Scale: Unset}
}

// HasFlag reports whether the flag (UNSIGNED, ZEROFILL, BINARY, ...) is set.
func (d DataType) HasFlag(flag string) bool {
	for _, f := range d.Flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

// String renders the type the way SHOW CREATE TABLE would, e.g.
// "DECIMAL(10,2) UNSIGNED" or "ENUM('a','b')".
func (d DataType) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	switch {
	case d.Precision != Unset && d.Scale != Unset:
		sb.WriteString("(" + strconv.Itoa(d.Precision) + "," + strconv.Itoa(d.Scale) + ")")
	case d.Precision != Unset:
		sb.WriteString("(" + strconv.Itoa(d.Precision) + ")")
	case d.Length != Unset:
		sb.WriteString("(" + strconv.Itoa(d.Length) + ")")
	}
	if strings.HasPrefix(d.ExplicitParams, "(") {
		// the value list already carries the flags
		sb.WriteString(d.ExplicitParams)
	} else {
		for _, f := range d.Flags {
			sb.WriteString(" " + f)
		}
	}
	if d.Charset != "" {
		sb.WriteString(" CHARACTER SET " + d.Charset)
	}
	if d.Collation != "" {
		sb.WriteString(" COLLATE " + d.Collation)
	}
	return sb.String()
}

// ResolveDatatype looks a type name up by name, synonym or alias. Names are
// compared case-insensitively and with inner whitespace collapsed. The alias
// is returned when the name was an alias.
func (c *Catalog) ResolveDatatype(name string) (*SimpleDatatype, *Alias) {
	key := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	for i := range c.DatatypeAliases {
		a := &c.DatatypeAliases[i]
		if a.Name == key {
			return c.lookupSimple(a.Target), a
		}
	}
	return c.lookupSimple(key), nil
}

func (c *Catalog) lookupSimple(key string) *SimpleDatatype {
	for _, t := range c.SimpleDatatypes {
		if t.Name == key {
			return t
		}
		for _, s := range t.Synonyms {
			if s == key {
				return t
			}
		}
	}
	return nil
}

// DefaultDatatypes returns the built-in MySQL type list.
func DefaultDatatypes() []*SimpleDatatype {
	v := func(s string) Version { return MustParseVersion(s) }
	return []*SimpleDatatype{
		{Name: "TINYINT", Synonyms: []string{"INT1"}, Group: GroupNumeric},
		{Name: "SMALLINT", Synonyms: []string{"INT2"}, Group: GroupNumeric},
		{Name: "MEDIUMINT", Synonyms: []string{"INT3", "MIDDLEINT"}, Group: GroupNumeric},
		{Name: "INT", Synonyms: []string{"INTEGER", "INT4"}, Group: GroupNumeric},
		{Name: "BIGINT", Synonyms: []string{"INT8"}, Group: GroupNumeric},
		{Name: "DECIMAL", Synonyms: []string{"DEC", "NUMERIC", "FIXED"}, Group: GroupNumeric, NumericPrecision: true},
		{Name: "FLOAT", Synonyms: []string{"FLOAT4"}, Group: GroupNumeric, NumericPrecision: true},
		{Name: "DOUBLE", Synonyms: []string{"DOUBLE PRECISION", "REAL", "FLOAT8"}, Group: GroupNumeric, NumericPrecision: true},
		{Name: "BIT", Group: GroupBit},

		{Name: "DATE", Group: GroupDateTime},
		{Name: "TIME", Group: GroupDateTime, DateTimePrecision: true},
		{Name: "DATETIME", Group: GroupDateTime, DateTimePrecision: true},
		{Name: "TIMESTAMP", Group: GroupDateTime, DateTimePrecision: true},
		{Name: "YEAR", Group: GroupDateTime},

		{Name: "CHAR", Synonyms: []string{"CHARACTER"}, Group: GroupString, CharacterType: true},
		{Name: "VARCHAR", Synonyms: []string{"CHARACTER VARYING", "CHAR VARYING", "VARCHARACTER"}, Group: GroupString, CharacterType: true},
		{Name: "BINARY", Group: GroupString},
		{Name: "VARBINARY", Group: GroupString},
		{Name: "TINYTEXT", Group: GroupString, CharacterType: true},
		{Name: "TEXT", Group: GroupString, CharacterType: true},
		{Name: "MEDIUMTEXT", Group: GroupString, CharacterType: true},
		{Name: "LONGTEXT", Group: GroupString, CharacterType: true},
		{Name: "TINYBLOB", Group: GroupBlob},
		{Name: "BLOB", Group: GroupBlob},
		{Name: "MEDIUMBLOB", Group: GroupBlob},
		{Name: "LONGBLOB", Group: GroupBlob},
		{Name: "ENUM", Group: GroupEnum, CharacterType: true},
		{Name: "SET", Group: GroupEnum, CharacterType: true},

		{Name: "GEOMETRY", Group: GroupSpatial},
		{Name: "POINT", Group: GroupSpatial},
		{Name: "LINESTRING", Group: GroupSpatial},
		{Name: "POLYGON", Group: GroupSpatial},
		{Name: "MULTIPOINT", Group: GroupSpatial},
		{Name: "MULTILINESTRING", Group: GroupSpatial},
		{Name: "MULTIPOLYGON", Group: GroupSpatial},
		{Name: "GEOMETRYCOLLECTION", Synonyms: []string{"GEOMCOLLECTION"}, Group: GroupSpatial},

		{Name: "JSON", Group: GroupJSON, MinVersion: v("5.7.8")},
	}
}

// DefaultAliases returns the type spellings that map onto a built-in type
// with fixed parameters.
func DefaultAliases() []Alias {
	const national = "utf8"
	return []Alias{
		{Name: "BOOL", Target: "TINYINT", Length: 1},
		{Name: "BOOLEAN", Target: "TINYINT", Length: 1},
		{Name: "SERIAL", Target: "BIGINT", Length: Unset, Flags: []string{"UNSIGNED"}},
		{Name: "NCHAR", Target: "CHAR", Length: Unset, Charset: national},
		{Name: "NATIONAL CHAR", Target: "CHAR", Length: Unset, Charset: national},
		{Name: "NATIONAL CHARACTER", Target: "CHAR", Length: Unset, Charset: national},
		{Name: "NVARCHAR", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "NCHAR VARCHAR", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "NCHAR VARYING", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "NATIONAL VARCHAR", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "NATIONAL VARCHARACTER", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "NATIONAL CHAR VARYING", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "NATIONAL CHARACTER VARYING", Target: "VARCHAR", Length: Unset, Charset: national},
		{Name: "LONG", Target: "MEDIUMTEXT", Length: Unset},
		{Name: "LONG VARCHAR", Target: "MEDIUMTEXT", Length: Unset},
		{Name: "LONG VARBINARY", Target: "MEDIUMBLOB", Length: Unset},
	}
}
