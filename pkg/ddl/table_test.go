package ddl_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnNames(tbl *catalog.Table) []string {
	var out []string
	for _, c := range tbl.Columns {
		out = append(out, c.Name)
	}
	return out
}

func indexNames(tbl *catalog.Table) []string {
	var out []string
	for _, idx := range tbl.Indexes {
		out = append(out, idx.Name)
	}
	return out
}

// ---------- Data Types ----------

func TestExtractDataType(t *testing.T) {
	const unset = catalog.Unset
	tests := []struct {
		name                      string
		typ                       string
		wantName                  string
		length, precision, scale  int
		charset, explicit         string
		flags                     []string
	}{
		{name: "decimal precision and scale", typ: "DECIMAL(10,2)", wantName: "DECIMAL", length: unset, precision: 10, scale: 2},
		{name: "decimal precision only", typ: "DECIMAL(10)", wantName: "DECIMAL", length: unset, precision: 10, scale: unset},
		{name: "varchar length", typ: "VARCHAR(255)", wantName: "VARCHAR", length: 255, precision: unset, scale: unset, charset: "utf8mb4"},
		{name: "plain int", typ: "INT", wantName: "INT", length: unset, precision: unset, scale: unset},
		{name: "integer synonym", typ: "INTEGER", wantName: "INT", length: unset, precision: unset, scale: unset},
		{name: "fractional seconds", typ: "DATETIME(3)", wantName: "DATETIME", length: unset, precision: 3, scale: unset},
		{
			name: "display width with options", typ: "INT(11) UNSIGNED ZEROFILL", wantName: "INT",
			length: 11, precision: unset, scale: unset, explicit: "UNSIGNED ZEROFILL", flags: []string{"UNSIGNED", "ZEROFILL"},
		},
		{
			name: "enum values", typ: "ENUM('a','b')", wantName: "ENUM",
			length: unset, precision: unset, scale: unset, charset: "utf8mb4", explicit: "('a','b')",
		},
		{name: "bool alias", typ: "BOOL", wantName: "TINYINT", length: 1, precision: unset, scale: unset},
		{
			name: "serial alias", typ: "SERIAL", wantName: "BIGINT",
			length: unset, precision: unset, scale: unset, explicit: "UNSIGNED", flags: []string{"UNSIGNED"},
		},
		{name: "national alias", typ: "NVARCHAR(10)", wantName: "VARCHAR", length: 10, precision: unset, scale: unset, charset: "utf8"},
		{name: "explicit charset", typ: "VARCHAR(20) CHARACTER SET latin1", wantName: "VARCHAR", length: 20, precision: unset, scale: unset, charset: "latin1"},
		{name: "text defaults charset", typ: "TEXT", wantName: "TEXT", length: unset, precision: unset, scale: unset, charset: "utf8mb4"},
		{name: "double precision", typ: "DOUBLE PRECISION", wantName: "DOUBLE", length: unset, precision: unset, scale: unset},
		{name: "long varchar", typ: "LONG VARCHAR", wantName: "MEDIUMTEXT", length: unset, precision: unset, scale: unset, charset: "utf8mb4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, report := apply(t, ddl.DefaultOptions(), "CREATE TABLE t (c "+tt.typ+")")
			require.Empty(t, report.Diagnostics)
			col := mustTable(t, cat, "mydb", "t").FindColumn("c", false)
			require.NotNil(t, col)

			dt := col.DataType
			require.NotNil(t, dt.Simple)
			assert.Equal(t, tt.wantName, dt.Name)
			assert.Equal(t, tt.length, dt.Length, "length")
			assert.Equal(t, tt.precision, dt.Precision, "precision")
			assert.Equal(t, tt.scale, dt.Scale, "scale")
			assert.Equal(t, tt.charset, dt.Charset, "charset")
			assert.Equal(t, tt.explicit, dt.ExplicitParams, "explicit params")
			assert.Equal(t, tt.flags, dt.Flags, "flags")
		})
	}
}

func TestDataTypeCharsetFollowsTable(t *testing.T) {
	sql := `
CREATE DATABASE legacy CHARACTER SET latin1;
CREATE TABLE legacy.a (name VARCHAR(10));
CREATE TABLE legacy.b (name VARCHAR(10)) DEFAULT CHARSET=utf8;
CREATE TABLE legacy.c (name VARCHAR(10) CHARACTER SET ascii) CHARSET=utf8;
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)

	charset := func(table string) string {
		return mustTable(t, cat, "legacy", table).FindColumn("name", false).DataType.Charset
	}
	assert.Equal(t, "latin1", charset("a"))
	assert.Equal(t, "utf8", charset("b"))
	assert.Equal(t, "ascii", charset("c"))
}

func TestDataTypeVersionGating(t *testing.T) {
	tests := []struct {
		name    string
		version string
		typ     string
		check   func(t *testing.T, dt catalog.DataType)
	}{
		{
			name: "json before 5.7.8", version: "5.7.0", typ: "JSON",
			check: func(t *testing.T, dt catalog.DataType) {
				assert.Nil(t, dt.Simple)
				assert.Equal(t, "JSON", dt.Name)
			},
		},
		{
			name: "fractional seconds before 5.6.4", version: "5.6.0", typ: "DATETIME(6)",
			check: func(t *testing.T, dt catalog.DataType) {
				require.NotNil(t, dt.Simple)
				assert.Equal(t, catalog.Unset, dt.Precision)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ddl.DefaultOptions()
			opts.ServerVersion = catalog.MustParseVersion(tt.version)
			cat, report := apply(t, opts, "CREATE TABLE t (c "+tt.typ+")")

			require.Len(t, report.Diagnostics, 1)
			d := report.Diagnostics[0]
			assert.Equal(t, ddl.SeverityWarning, d.Severity)
			assert.ErrorIs(t, d, ddl.ErrUnsupported)
			assert.Equal(t, "c", d.Object)
			tt.check(t, mustTable(t, cat, "mydb", "t").FindColumn("c", false).DataType)
		})
	}

	t.Run("accepted on a recent server", func(t *testing.T) {
		opts := ddl.DefaultOptions()
		opts.ServerVersion = catalog.MustParseVersion("8.0.32")
		_, report := apply(t, opts, "CREATE TABLE t (a JSON, b DATETIME(6))")
		assert.Empty(t, report.Diagnostics)
	})
}

func TestDataTypeOutOfRange(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(), "CREATE TABLE t (c VARCHAR(99999999999))")
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, ddl.SeverityError, report.Diagnostics[0].Severity)
	assert.ErrorIs(t, report.Diagnostics[0], ddl.ErrValueOutOfRange)
	assert.Equal(t, catalog.Unset, mustTable(t, cat, "mydb", "t").FindColumn("c", false).DataType.Length)
}

// ---------- Columns And Keys ----------

func TestColumnAttributes(t *testing.T) {
	sql := "CREATE TABLE t (" +
		"id SERIAL, " +
		"a TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP, " +
		"b INT AS (id + 1) STORED, " +
		"d INT DEFAULT -1 COMMENT 'neg' INVISIBLE, " +
		"e VARCHAR(10) NOT NULL UNIQUE)"
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	tbl := mustTable(t, cat, "mydb", "t")

	id := tbl.FindColumn("id", false)
	assert.True(t, id.NotNull)
	assert.True(t, id.AutoIncrement)

	a := tbl.FindColumn("a", false)
	assert.Equal(t, "CURRENT_TIMESTAMP", a.Default)
	assert.True(t, a.HasDefault)
	assert.Equal(t, "CURRENT_TIMESTAMP", a.OnUpdate)

	b := tbl.FindColumn("b", false)
	assert.True(t, b.Generated)
	assert.Equal(t, "id + 1", b.GenerationExpression)
	assert.Equal(t, "STORED", b.GeneratedStorage)

	d := tbl.FindColumn("d", false)
	assert.Equal(t, "-1", d.Default)
	assert.Equal(t, "neg", d.Comment)
	assert.True(t, d.Invisible)

	assert.True(t, tbl.FindColumn("e", false).NotNull)
	assert.Equal(t, []string{"id", "e"}, indexNames(tbl))
	assert.Equal(t, catalog.IndexUnique, tbl.FindIndex("id", false).Type)
}

func TestTableConstraints(t *testing.T) {
	sql := `CREATE TABLE t (
  id INT,
  a INT,
  b VARCHAR(100),
  PRIMARY KEY (id),
  UNIQUE KEY uq_a (a),
  CONSTRAINT uq_sym UNIQUE (b(20)),
  KEY (a, b),
  KEY (a),
  FULLTEXT INDEX ft (b),
  CHECK (a > 0)
)`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	require.Empty(t, report.Unresolved)
	tbl := mustTable(t, cat, "mydb", "t")

	assert.Equal(t, []string{"PRIMARY", "uq_a", "uq_sym", "a", "a_2", "ft"}, indexNames(tbl))
	require.NotNil(t, tbl.PrimaryKey)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey.ColumnNames())
	assert.True(t, tbl.FindColumn("id", false).NotNull)
	assert.Equal(t, 20, tbl.FindIndex("uq_sym", false).Columns[0].Length)
	assert.Equal(t, catalog.IndexFulltext, tbl.FindIndex("ft", false).Type)
	assert.Equal(t, []string{"a > 0"}, tbl.Checks)
}

func TestDuplicateMembersAreRejected(t *testing.T) {
	sql := `CREATE TABLE t (
  id INT,
  id BIGINT,
  KEY k (id),
  KEY k (id),
  PRIMARY KEY (id),
  PRIMARY KEY (id)
)`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	assert.Equal(t, []ddl.Code{ddl.CodeDuplicate, ddl.CodeDuplicate, ddl.CodeDuplicate}, codes(report))
	for _, d := range report.Diagnostics {
		assert.Equal(t, ddl.SeverityError, d.Severity)
	}
	tbl := mustTable(t, cat, "mydb", "t")
	assert.Equal(t, []string{"id"}, columnNames(tbl))
	assert.Equal(t, "INT", tbl.Columns[0].DataType.Name)
	assert.Equal(t, []string{"k", "PRIMARY"}, indexNames(tbl))
}

func TestDuplicateTable(t *testing.T) {
	sql := "CREATE TABLE t (id INT);\nCREATE TABLE t (x INT);\nCREATE TABLE IF NOT EXISTS T (y INT);"
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Len(t, report.Diagnostics, 2)
	assert.Equal(t, ddl.SeverityError, report.Diagnostics[0].Severity)
	assert.Equal(t, ddl.SeverityInfo, report.Diagnostics[1].Severity)
	assert.Equal(t, "mydb.t", report.Diagnostics[0].Object)
	assert.ErrorIs(t, report.Diagnostics[1], ddl.ErrDuplicate)
	assert.Equal(t, []string{"id"}, columnNames(mustTable(t, cat, "mydb", "t")))
}

func TestUnresolvedIndexColumn(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(),
		"CREATE TABLE t (id INT, name VARCHAR(10), KEY idx_missing (nope), KEY idx_name (name))")
	tbl := mustTable(t, cat, "mydb", "t")

	require.Len(t, report.Unresolved, 1)
	e := report.Unresolved[0]
	assert.Equal(t, ddl.RefIndex, e.Kind)
	assert.Equal(t, tbl.ID, e.OwnerID)
	assert.Equal(t, "mydb.t", e.Owner)
	assert.Equal(t, "idx_missing", e.Object)
	assert.Equal(t, catalog.KindColumn, e.Target)
	assert.Equal(t, []string{"nope"}, e.Names)

	assert.Len(t, tbl.Columns, 2)
	assert.Len(t, tbl.Indexes, 2)
	assert.True(t, tbl.FindIndex("idx_missing", false).Incomplete)
	assert.Nil(t, tbl.FindIndex("idx_missing", false).Columns[0].Column)
	assert.Same(t, tbl.FindColumn("name", false), tbl.FindIndex("idx_name", false).Columns[0].Column)
}

func TestTableOptions(t *testing.T) {
	sql := "CREATE TEMPORARY TABLE t (id INT) ENGINE=InnoDB ROW_FORMAT=dynamic AUTO_INCREMENT=10 " +
		"COMMENT='orders' DEFAULT CHARSET=latin1 COLLATE=latin1_bin CHECKSUM=1"
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	tbl := mustTable(t, cat, "mydb", "t")

	assert.True(t, tbl.Temporary)
	assert.Equal(t, "InnoDB", tbl.Options.Engine)
	assert.Equal(t, "DYNAMIC", tbl.Options.RowFormat)
	assert.Equal(t, "10", tbl.Options.AutoIncrement)
	assert.Equal(t, "orders", tbl.Options.Comment)
	assert.Equal(t, "latin1", tbl.Options.Charset)
	assert.Equal(t, "latin1_bin", tbl.Options.Collation)
	assert.True(t, tbl.Options.Checksum)
}

func TestForeignKeyNames(t *testing.T) {
	sql := `
CREATE TABLE p (id INT PRIMARY KEY);
CREATE TABLE c (
  a INT REFERENCES p (id),
  b INT,
  FOREIGN KEY (b) REFERENCES p (id),
  CONSTRAINT named FOREIGN KEY (b) REFERENCES p (id)
);
`
	t.Run("generated", func(t *testing.T) {
		cat, report := apply(t, ddl.DefaultOptions(), sql)
		require.Empty(t, report.Diagnostics)
		require.Empty(t, report.Unresolved)
		var names []string
		for _, fk := range mustTable(t, cat, "mydb", "c").ForeignKeys {
			names = append(names, fk.Name)
		}
		assert.Equal(t, []string{"fk_c_p", "fk_c_p1", "named"}, names)
	})

	t.Run("anonymous", func(t *testing.T) {
		opts := ddl.DefaultOptions()
		opts.AutoGenerateFkNames = false
		cat, report := apply(t, opts, sql)
		require.Empty(t, report.Diagnostics)
		c := mustTable(t, cat, "mydb", "c")
		require.Len(t, c.ForeignKeys, 3)
		assert.Empty(t, c.ForeignKeys[0].Name)
		require.NotNil(t, c.ForeignKeys[0].Index)
		assert.Equal(t, "a", c.ForeignKeys[0].Index.Name)
		// the two keys on b share one supporting index
		assert.Same(t, c.ForeignKeys[1].Index, c.ForeignKeys[2].Index)
	})

	t.Run("duplicate symbol in schema", func(t *testing.T) {
		_, report := apply(t, ddl.DefaultOptions(), sql+
			"CREATE TABLE d (x INT, CONSTRAINT named FOREIGN KEY (x) REFERENCES p (id));")
		require.Len(t, report.Diagnostics, 1)
		assert.ErrorIs(t, report.Diagnostics[0], ddl.ErrDuplicate)
		assert.Equal(t, "mydb.d.named", report.Diagnostics[0].Object)
	})
}

// ---------- Partitioning ----------

func TestHashPartitionDefinitions(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(),
		"CREATE TABLE t (id INT) PARTITION BY HASH (id) PARTITIONS 3 (PARTITION p0, PARTITION p1, PARTITION p2)")
	require.Empty(t, report.Diagnostics)
	p := mustTable(t, cat, "mydb", "t").Partitioning
	require.NotNil(t, p)

	assert.Equal(t, "HASH", p.Type)
	assert.Equal(t, "id", p.Expression)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, catalog.Unset, p.SubCount)
	require.Len(t, p.Definitions, 3)
	for i, def := range p.Definitions {
		assert.Equal(t, []string{"p0", "p1", "p2"}[i], def.Name)
		assert.Empty(t, def.Subpartitions)
	}
}

func TestRangePartitionWithSubpartitions(t *testing.T) {
	sql := "CREATE TABLE t (id INT) PARTITION BY RANGE (id) " +
		"SUBPARTITION BY HASH (id) SUBPARTITIONS 2 (" +
		"PARTITION p0 VALUES LESS THAN (10) ENGINE=InnoDB (SUBPARTITION s0, SUBPARTITION s1), " +
		"PARTITION p1 VALUES LESS THAN MAXVALUE (SUBPARTITION s2, SUBPARTITION s3))"
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	p := mustTable(t, cat, "mydb", "t").Partitioning
	require.NotNil(t, p)

	assert.Equal(t, "RANGE", p.Type)
	assert.Equal(t, catalog.Unset, p.Count)
	assert.Equal(t, "HASH", p.SubType)
	assert.Equal(t, 2, p.SubCount)
	require.Len(t, p.Definitions, 2)
	assert.Equal(t, "LESS THAN (10)", p.Definitions[0].Values)
	assert.Equal(t, "InnoDB", p.Definitions[0].Engine)
	assert.Equal(t, "LESS THAN MAXVALUE", p.Definitions[1].Values)
	require.Len(t, p.Definitions[1].Subpartitions, 2)
	assert.Equal(t, "s3", p.Definitions[1].Subpartitions[1].Name)
}

func TestSubpartitionCountOutOfRange(t *testing.T) {
	sql := "CREATE TABLE t (id INT) PARTITION BY RANGE (id) " +
		"SUBPARTITION BY HASH (id) SUBPARTITIONS 99999999999 (PARTITION p0 VALUES LESS THAN (10))"
	cat, report := apply(t, ddl.DefaultOptions(), sql)

	require.Len(t, report.Diagnostics, 1)
	d := report.Diagnostics[0]
	assert.Equal(t, ddl.CodeValueOutOfRange, d.Code)
	assert.Equal(t, strings.Index(sql, "99999999999"), d.Pos.Offset)
	assert.Equal(t, catalog.Unset, mustTable(t, cat, "mydb", "t").Partitioning.SubCount)
}

func TestKeyPartitioning(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(),
		"CREATE TABLE t (id INT) PARTITION BY LINEAR KEY ALGORITHM=2 (id) PARTITIONS 4")
	require.Empty(t, report.Diagnostics)
	p := mustTable(t, cat, "mydb", "t").Partitioning
	require.NotNil(t, p)
	assert.Equal(t, "KEY", p.Type)
	assert.True(t, p.Linear)
	assert.Equal(t, 2, p.KeyAlgorithm)
	assert.Equal(t, []string{"id"}, p.ColumnNames)
	assert.Equal(t, 4, p.Count)
	assert.Empty(t, p.Definitions)
}

// ---------- LIKE And CREATE INDEX ----------

func TestCreateTableLike(t *testing.T) {
	sql := `
CREATE TABLE copy LIKE source;
CREATE TABLE source (
  id INT PRIMARY KEY,
  name VARCHAR(20) NOT NULL,
  pid INT,
  KEY idx_name (name),
  FOREIGN KEY (pid) REFERENCES source (id)
) ENGINE=MyISAM;
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	require.Empty(t, report.Unresolved)

	src := mustTable(t, cat, "mydb", "source")
	dst := mustTable(t, cat, "mydb", "copy")
	assert.Equal(t, "source", dst.LikeTable)
	assert.Equal(t, columnNames(src), columnNames(dst))
	assert.Equal(t, indexNames(src), indexNames(dst))
	assert.Empty(t, dst.ForeignKeys)
	assert.Equal(t, "MyISAM", dst.Options.Engine)

	require.NotNil(t, dst.PrimaryKey)
	assert.True(t, dst.FindColumn("id", false).NotNull)
	assert.NotEqual(t, src.FindColumn("id", false).ID, dst.FindColumn("id", false).ID)
	for _, idx := range dst.Indexes {
		assert.NotEqual(t, catalog.IndexForeign, idx.Type)
		for _, ic := range idx.Columns {
			require.NotNil(t, ic.Column)
			assert.Same(t, dst, ic.Column.Owner)
		}
	}
}

func TestCreateTableLikeUnknownSource(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(), "CREATE TABLE copy LIKE nowhere")
	require.Len(t, report.Unresolved, 1)
	e := report.Unresolved[0]
	assert.Equal(t, ddl.RefTable, e.Kind)
	assert.Equal(t, catalog.KindTable, e.Target)
	assert.Equal(t, "mydb.copy", e.Owner)
	assert.Empty(t, mustTable(t, cat, "mydb", "copy").Columns)
}

func TestCreateTableLikeChain(t *testing.T) {
	sql := `
CREATE TABLE c2 LIKE b2;
CREATE TABLE b2 LIKE a2;
CREATE TABLE a2 (id INT PRIMARY KEY, name VARCHAR(20), KEY idx_name (name));
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	require.Empty(t, report.Unresolved)

	a2 := mustTable(t, cat, "mydb", "a2")
	for _, name := range []string{"b2", "c2"} {
		copied := mustTable(t, cat, "mydb", name)
		assert.Equal(t, columnNames(a2), columnNames(copied), name)
		assert.Equal(t, indexNames(a2), indexNames(copied), name)
		require.NotNil(t, copied.PrimaryKey, name)
		assert.Same(t, copied, copied.PrimaryKey.Columns[0].Column.Owner, name)
	}
}

func TestCreateTableLikeCycle(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(), "CREATE TABLE a LIKE b; CREATE TABLE b LIKE a;")
	require.Empty(t, report.Unresolved)
	require.Len(t, report.Diagnostics, 2)
	for i, name := range []string{"mydb.a", "mydb.b"} {
		assert.Equal(t, ddl.CodeCircularLike, report.Diagnostics[i].Code)
		assert.ErrorIs(t, report.Diagnostics[i], ddl.ErrCircular)
		assert.Equal(t, ddl.SeverityError, report.Diagnostics[i].Severity)
		assert.Equal(t, name, report.Diagnostics[i].Object)
	}
	assert.Empty(t, mustTable(t, cat, "mydb", "a").Columns)
}

func TestCreateIndexBeforeAndAfterTable(t *testing.T) {
	sql := `
CREATE UNIQUE INDEX early USING BTREE ON t (a(10) DESC, b) COMMENT 'c' ALGORITHM=INPLACE LOCK=NONE;
CREATE TABLE t (a VARCHAR(50), b INT);
CREATE INDEX late ON t (b);
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	require.Empty(t, report.Unresolved)
	tbl := mustTable(t, cat, "mydb", "t")
	assert.Equal(t, []string{"early", "late"}, indexNames(tbl))

	early := tbl.FindIndex("early", false)
	assert.Equal(t, catalog.IndexUnique, early.Type)
	assert.Equal(t, "BTREE", early.Algorithm)
	assert.Equal(t, "c", early.Comment)
	assert.Equal(t, "INPLACE", early.OnlineAlgorithm)
	assert.Equal(t, "NONE", early.OnlineLock)
	require.Len(t, early.Columns, 2)
	assert.Equal(t, 10, early.Columns[0].Length)
	assert.True(t, early.Columns[0].Descending)
	assert.Same(t, tbl.FindColumn("b", false), early.Columns[1].Column)
}

func TestCreateIndexOnUnknownTable(t *testing.T) {
	_, report := apply(t, ddl.DefaultOptions(), "CREATE INDEX i ON nowhere (a)")
	require.Len(t, report.Unresolved, 1)
	assert.Equal(t, ddl.RefTable, report.Unresolved[0].Kind)
	assert.Equal(t, "nowhere.i", report.Unresolved[0].Owner)
	assert.Equal(t, []string{"nowhere"}, report.Unresolved[0].Names)
}
