package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHandlesAreUniqueAndLookupable(t *testing.T) {
	c := catalog.New(catalog.Version{})
	s := c.NewSchema("shop")
	tbl := c.NewTable("orders")
	col := c.NewColumn("id")

	assert.NotEqual(t, s.ID, tbl.ID)
	assert.NotEqual(t, tbl.ID, col.ID)
	assert.Same(t, tbl, c.Lookup(tbl.ID))
	assert.Equal(t, 3, c.ObjectCount())

	c.Release(col)
	assert.Nil(t, c.Lookup(col.ID))
	assert.Equal(t, 2, c.ObjectCount())
}

func TestNewColumnHasUnsetType(t *testing.T) {
	c := catalog.New(catalog.Version{})
	col := c.NewColumn("id")
	assert.Equal(t, catalog.Unset, col.DataType.Length)
	assert.Equal(t, catalog.Unset, col.DataType.Precision)
	assert.Equal(t, catalog.Unset, col.DataType.Scale)
}

func TestFindCasePolicy(t *testing.T) {
	c := catalog.New(catalog.Version{})
	s := c.NewSchema("Shop")
	c.AddSchema(s)
	tbl := c.NewTable("Customers")
	s.AddTable(tbl)

	tests := []struct {
		name          string
		schema, table string
		caseSensitive bool
		found         bool
	}{
		{"exact, sensitive", "Shop", "Customers", true, true},
		{"exact, insensitive", "Shop", "Customers", false, true},
		{"folded, insensitive", "shop", "customers", false, true},
		{"folded, sensitive", "shop", "customers", true, false},
		{"unknown", "Shop", "Orders", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.FindTable(tt.schema, tt.table, tt.caseSensitive)
			if tt.found {
				assert.Same(t, tbl, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestNameEqualUnicodeFold(t *testing.T) {
	assert.True(t, catalog.NameEqual("Ärger", "ärger", false))
	assert.False(t, catalog.NameEqual("Ärger", "ärger", true))
}

func TestInsertColumnPositions(t *testing.T) {
	c := catalog.New(catalog.Version{})
	tbl := c.NewTable("t")
	for _, n := range []string{"a", "b", "c"} {
		tbl.AddColumn(c.NewColumn(n))
	}
	names := func() []string {
		var out []string
		for _, col := range tbl.Columns {
			out = append(out, col.Name)
		}
		return out
	}

	tbl.InsertColumn(c.NewColumn("first"), true, "", false)
	assert.Equal(t, []string{"first", "a", "b", "c"}, names())

	tbl.InsertColumn(c.NewColumn("after_a"), false, "A", false)
	assert.Equal(t, []string{"first", "a", "after_a", "b", "c"}, names())

	tbl.InsertColumn(c.NewColumn("last"), false, "missing", false)
	assert.Equal(t, []string{"first", "a", "after_a", "b", "c", "last"}, names())

	assert.True(t, tbl.RemoveColumn(tbl.Columns[0]))
	assert.Equal(t, "a", tbl.Columns[0].Name)
}

func TestPrimaryKeyTracking(t *testing.T) {
	c := catalog.New(catalog.Version{})
	tbl := c.NewTable("t")
	pk := c.NewIndex("PRIMARY", catalog.IndexPrimary)
	tbl.AddIndex(pk)
	assert.Same(t, pk, tbl.PrimaryKey)

	require.True(t, tbl.RemoveIndex(pk))
	assert.Nil(t, tbl.PrimaryKey)
	assert.False(t, tbl.RemoveIndex(pk))
}

func TestRoutineNamespaces(t *testing.T) {
	c := catalog.New(catalog.Version{})
	s := c.NewSchema("db")
	s.AddRoutine(c.NewRoutine("calc", catalog.RoutineProcedure))

	assert.NotNil(t, s.FindRoutine("calc", catalog.RoutineProcedure, false))
	assert.Nil(t, s.FindRoutine("calc", catalog.RoutineFunction, false))

	s.AddRoutine(c.NewRoutine("udf", catalog.RoutineUDF))
	assert.NotNil(t, s.FindRoutine("UDF", catalog.RoutineFunction, false))
}

func TestEnsureUserIsCaseSensitive(t *testing.T) {
	c := catalog.New(catalog.Version{})
	a := c.EnsureUser("root", "localhost")
	b := c.EnsureUser("root", "localhost")
	d := c.EnsureUser("Root", "localhost")

	assert.Same(t, a, b)
	assert.NotSame(t, a, d)
	assert.Equal(t, "root@localhost", a.Account())
	assert.Len(t, c.Users, 2)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    catalog.Version
		number  int
		wantErr bool
	}{
		{input: "8.0.32", want: catalog.Version{Major: 8, Release: 32}, number: 80032},
		{input: "5.7", want: catalog.Version{Major: 5, Minor: 7}, number: 50700},
		{input: "80032", want: catalog.Version{Major: 8, Release: 32}, number: 80032},
		{input: "50604", want: catalog.Version{Major: 5, Minor: 6, Release: 4}, number: 50604},
		{input: "8.0.32-log", want: catalog.Version{Major: 8, Release: 32}, number: 80032},
		{input: "", want: catalog.Version{}, number: 0},
		{input: "abc", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := catalog.ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.number, got.Number())
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	v := catalog.MustParseVersion("5.6.3")
	assert.False(t, v.AtLeast(catalog.MustParseVersion("5.6.4")))
	assert.True(t, catalog.MustParseVersion("5.6.4").AtLeast(catalog.MustParseVersion("5.6.4")))
	assert.True(t, catalog.Version{}.AtLeast(catalog.MustParseVersion("9.9.9")))
}

func TestVersionText(t *testing.T) {
	var v catalog.Version
	require.NoError(t, v.UnmarshalText([]byte("5.7.8")))
	assert.Equal(t, "5.7.8", v.String())

	out, err := json.Marshal(struct{ V catalog.Version }{v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"V":"5.7.8"}`, string(out))
}

func TestResolveDatatype(t *testing.T) {
	c := catalog.New(catalog.Version{})

	tests := []struct {
		name   string
		want   string
		alias  bool
		exists bool
	}{
		{name: "int", want: "INT", exists: true},
		{name: "INTEGER", want: "INT", exists: true},
		{name: "numeric", want: "DECIMAL", exists: true},
		{name: "character  varying", want: "VARCHAR", exists: true},
		{name: "double precision", want: "DOUBLE", exists: true},
		{name: "BOOL", want: "TINYINT", alias: true, exists: true},
		{name: "national varchar", want: "VARCHAR", alias: true, exists: true},
		{name: "long varbinary", want: "MEDIUMBLOB", alias: true, exists: true},
		{name: "money"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, alias := c.ResolveDatatype(tt.name)
			if !tt.exists {
				assert.Nil(t, typ)
				return
			}
			require.NotNil(t, typ)
			assert.Equal(t, tt.want, typ.Name)
			assert.Equal(t, tt.alias, alias != nil)
		})
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		name string
		dt   catalog.DataType
		want string
	}{
		{
			name: "decimal",
			dt:   catalog.DataType{Name: "DECIMAL", Length: catalog.Unset, Precision: 10, Scale: 2, Flags: []string{"UNSIGNED"}},
			want: "DECIMAL(10,2) UNSIGNED",
		},
		{
			name: "varchar",
			dt:   catalog.DataType{Name: "VARCHAR", Length: 255, Precision: catalog.Unset, Scale: catalog.Unset, Charset: "latin1"},
			want: "VARCHAR(255) CHARACTER SET latin1",
		},
		{
			name: "enum",
			dt:   catalog.DataType{Name: "ENUM", Length: catalog.Unset, Precision: catalog.Unset, Scale: catalog.Unset, ExplicitParams: "('a','b')"},
			want: "ENUM('a','b')",
		},
		{
			name: "bare",
			dt:   catalog.NewDataType(),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dt.String())
		})
	}
}

func TestYAMLOmitsBackReferences(t *testing.T) {
	c := catalog.New(catalog.MustParseVersion("8.0.32"))
	s := c.NewSchema("db")
	c.AddSchema(s)
	tbl := c.NewTable("t")
	s.AddTable(tbl)

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "name: db")
	assert.Contains(t, text, "version: 8.0.32")
	assert.NotContains(t, text, "owner")
}
