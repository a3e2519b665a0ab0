package ddl_test

import (
	"testing"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Routines ----------

func TestCreateProcedure(t *testing.T) {
	sql := "DELIMITER $$\n" +
		"CREATE DEFINER=`admin`@`localhost` PROCEDURE shop.p(IN a INT, OUT b VARCHAR(10), INOUT c DECIMAL(5,2))\n" +
		"COMMENT 'copies' READS SQL DATA SQL SECURITY INVOKER\n" +
		"BEGIN\n  SELECT a INTO b;\nEND$$\n" +
		"DELIMITER ;\n"
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)

	s := cat.FindSchema("shop", false)
	require.NotNil(t, s)
	r := s.FindRoutine("p", catalog.RoutineProcedure, false)
	require.NotNil(t, r)

	assert.Equal(t, "admin@localhost", r.Definer)
	assert.Equal(t, "copies", r.Comment)
	assert.Equal(t, "READS SQL DATA", r.DataAccess)
	assert.Equal(t, "INVOKER", r.Security)
	assert.Equal(t, "BEGIN\n  SELECT a INTO b;\nEND", r.Body)

	require.Len(t, r.Params, 3)
	assert.Equal(t, "IN", r.Params[0].Mode)
	assert.Equal(t, "OUT", r.Params[1].Mode)
	assert.Equal(t, "INOUT", r.Params[2].Mode)
	assert.Equal(t, 10, r.Params[1].DataType.Length)
	assert.Equal(t, 5, r.Params[2].DataType.Precision)
	assert.Equal(t, 2, r.Params[2].DataType.Scale)

	require.Len(t, cat.Users, 1)
	assert.Equal(t, "localhost", cat.Users[0].Host)
}

func TestCreateFunctions(t *testing.T) {
	sql := `
CREATE FUNCTION f(x INT) RETURNS VARCHAR(20) DETERMINISTIC RETURN CONCAT('v', x);
CREATE AGGREGATE FUNCTION agg RETURNS REAL SONAME 'udf.so';
CREATE PROCEDURE f() SELECT 1;
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	s := cat.FindSchema("mydb", false)

	f := s.FindRoutine("f", catalog.RoutineFunction, false)
	require.NotNil(t, f)
	require.Len(t, f.Params, 1)
	assert.Empty(t, f.Params[0].Mode)
	require.NotNil(t, f.ReturnType)
	assert.Equal(t, "VARCHAR", f.ReturnType.Name)
	assert.Equal(t, 20, f.ReturnType.Length)
	assert.True(t, f.Deterministic)
	assert.Equal(t, "RETURN CONCAT('v', x)", f.Body)

	udf := s.FindRoutine("agg", catalog.RoutineUDF, false)
	require.NotNil(t, udf)
	assert.True(t, udf.Aggregate)
	assert.Equal(t, "REAL", udf.UDFReturn)
	assert.Equal(t, "udf.so", udf.Soname)
	assert.Nil(t, udf.ReturnType)

	// procedures live in their own namespace
	assert.NotNil(t, s.FindRoutine("f", catalog.RoutineProcedure, false))
}

func TestRoutineNamespaces(t *testing.T) {
	sql := `
CREATE FUNCTION f(x INT) RETURNS INT RETURN x;
CREATE FUNCTION f RETURNS INTEGER SONAME 'f.so';
CREATE PROCEDURE p() SELECT 1;
CREATE PROCEDURE IF NOT EXISTS p() SELECT 2;
`
	_, report := apply(t, ddl.DefaultOptions(), sql)
	require.Len(t, report.Diagnostics, 2)
	assert.Equal(t, ddl.SeverityError, report.Diagnostics[0].Severity)
	assert.Equal(t, "mydb.f", report.Diagnostics[0].Object)
	assert.Equal(t, ddl.SeverityInfo, report.Diagnostics[1].Severity)
	assert.Equal(t, "mydb.p", report.Diagnostics[1].Object)
}

// ---------- Triggers ----------

func TestCreateTrigger(t *testing.T) {
	sql := `
CREATE TRIGGER early BEFORE INSERT ON t FOR EACH ROW SET NEW.a = 1;
CREATE TABLE t (a INT);
CREATE TRIGGER late AFTER UPDATE ON t FOR EACH ROW FOLLOWS early BEGIN SET NEW.a = 2; END;
CREATE TRIGGER late AFTER DELETE ON t FOR EACH ROW SET OLD.a = 0;
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Len(t, report.Diagnostics, 1)
	assert.ErrorIs(t, report.Diagnostics[0], ddl.ErrDuplicate)
	assert.Equal(t, "mydb.late", report.Diagnostics[0].Object)
	require.Empty(t, report.Unresolved)

	tbl := mustTable(t, cat, "mydb", "t")
	require.Len(t, tbl.Triggers, 2)

	late := tbl.Triggers[0]
	assert.Equal(t, "late", late.Name)
	assert.Equal(t, "AFTER UPDATE", late.Describe())
	assert.Equal(t, "FOLLOWS", late.OrderType)
	assert.Equal(t, "early", late.OtherTrigger)
	assert.Equal(t, "BEGIN SET NEW.a = 2; END", late.Body)

	early := tbl.Triggers[1]
	assert.Equal(t, "early", early.Name)
	assert.Equal(t, "BEFORE", early.Timing)
	assert.Equal(t, "INSERT", early.Event)
	assert.Equal(t, "t", early.TableName)
	assert.Same(t, tbl, early.Owner)
}

func TestTriggerOnUnknownTable(t *testing.T) {
	_, report := apply(t, ddl.DefaultOptions(), "CREATE TRIGGER trg BEFORE INSERT ON nowhere FOR EACH ROW SET NEW.a = 1")
	require.Len(t, report.Unresolved, 1)
	e := report.Unresolved[0]
	assert.Equal(t, ddl.RefTable, e.Kind)
	assert.Equal(t, "mydb.trg", e.Owner)
	assert.NotZero(t, e.OwnerID)
	assert.Equal(t, []string{"nowhere"}, e.Names)
}

// ---------- Views ----------

func TestCreateView(t *testing.T) {
	sql := `
CREATE TABLE t (x INT, y INT);
CREATE ALGORITHM=MERGE DEFINER=` + "`root`@`localhost`" + ` SQL SECURITY INVOKER VIEW v (a, b) AS SELECT x, y FROM t WITH CASCADED CHECK OPTION;
CREATE VIEW w AS SELECT 1;
CREATE VIEW w AS SELECT 2;
CREATE OR REPLACE VIEW w AS SELECT 3 WITH LOCAL CHECK OPTION;
CREATE VIEW t AS SELECT 4;
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	assert.Equal(t, []ddl.Code{ddl.CodeDuplicate, ddl.CodeDuplicate}, codes(report))
	s := cat.FindSchema("mydb", false)
	require.Len(t, s.Views, 2)

	v := s.FindView("v", false)
	require.NotNil(t, v)
	assert.Equal(t, "MERGE", v.Algorithm)
	assert.Equal(t, "INVOKER", v.Security)
	assert.Equal(t, "root@localhost", v.Definer)
	assert.Equal(t, []string{"a", "b"}, v.Columns)
	assert.Equal(t, "SELECT x, y FROM t", v.Query)
	assert.True(t, v.WithCheck)
	assert.Equal(t, "CASCADED", v.CheckOption)

	w := s.FindView("w", false)
	require.NotNil(t, w)
	assert.Equal(t, "SELECT 3", w.Query)
	assert.Equal(t, "LOCAL", w.CheckOption)
}

// ---------- Events ----------

func TestCreateEvent(t *testing.T) {
	sql := `
CREATE EVENT cleanup ON SCHEDULE EVERY 1 HOUR STARTS '2024-01-01 00:00:00'
  ON COMPLETION PRESERVE DISABLE ON SLAVE COMMENT 'hourly' DO DELETE FROM t;
CREATE EVENT once ON SCHEDULE AT '2024-06-01 12:00:00' DO DELETE FROM t;
CREATE EVENT IF NOT EXISTS once ON SCHEDULE AT '2024-06-01 12:00:00' DO DELETE FROM t;
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, ddl.SeverityInfo, report.Diagnostics[0].Severity)
	s := cat.FindSchema("mydb", false)

	e := s.FindEvent("cleanup", false)
	require.NotNil(t, e)
	assert.Equal(t, "1", e.Every)
	assert.Equal(t, "HOUR", e.IntervalUnit)
	assert.Equal(t, "'2024-01-01 00:00:00'", e.Starts)
	assert.Empty(t, e.Ends)
	assert.True(t, e.Preserve)
	assert.False(t, e.Enabled)
	assert.True(t, e.SlaveSide)
	assert.Equal(t, "hourly", e.Comment)
	assert.Equal(t, "DELETE FROM t", e.Body)

	once := s.FindEvent("once", false)
	require.NotNil(t, once)
	assert.Equal(t, "'2024-06-01 12:00:00'", once.At)
	assert.Empty(t, once.Every)
	assert.True(t, once.Enabled)
	assert.False(t, once.Preserve)
}

// ---------- Servers, Tablespaces, Logfile Groups ----------

func TestCreateServer(t *testing.T) {
	sql := `
CREATE SERVER s FOREIGN DATA WRAPPER mysql OPTIONS (HOST 'db.local', PORT 3306, USER 'u', DATABASE 'shop');
CREATE SERVER S FOREIGN DATA WRAPPER mysql OPTIONS (HOST 'other');
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Len(t, report.Diagnostics, 1)
	assert.ErrorIs(t, report.Diagnostics[0], ddl.ErrDuplicate)

	require.Len(t, cat.Servers, 1)
	s := cat.Servers[0]
	assert.Equal(t, "mysql", s.Wrapper)
	assert.Equal(t, "db.local", s.Host)
	assert.Equal(t, 3306, s.Port)
	assert.Equal(t, "u", s.User)
	assert.Equal(t, "shop", s.Database)
}

func TestCreateTablespaceAndLogfileGroup(t *testing.T) {
	sql := `
CREATE TABLESPACE ts ADD DATAFILE 'ts.ibd' USE LOGFILE GROUP lg INITIAL_SIZE = 16M EXTENT_SIZE 1M NODEGROUP 2 WAIT ENGINE = NDB;
CREATE LOGFILE GROUP lg ADD UNDOFILE 'undo.log' INITIAL_SIZE 1G UNDO_BUFFER_SIZE 8M COMMENT 'undo' ENGINE NDB;
CREATE UNDO TABLESPACE undo_1 ADD DATAFILE 'undo_1.ibu';
`
	cat, report := apply(t, ddl.DefaultOptions(), sql)
	require.Empty(t, report.Diagnostics)
	require.Empty(t, report.Unresolved)

	ts := cat.FindTablespace("ts", false)
	require.NotNil(t, ts)
	assert.Equal(t, "ts.ibd", ts.DataFile)
	assert.Equal(t, uint64(16<<20), ts.InitialSize)
	assert.Equal(t, uint64(1<<20), ts.ExtentSize)
	assert.Equal(t, 2, ts.NodeGroup)
	assert.True(t, ts.Wait)
	assert.Equal(t, "NDB", ts.Engine)
	assert.False(t, ts.Undo)

	lg := cat.FindLogfileGroup("lg", false)
	require.NotNil(t, lg)
	assert.Same(t, lg, ts.LogfileGroup)
	assert.Equal(t, "lg", ts.LogfileGroupName)
	assert.Equal(t, "undo.log", lg.UndoFile)
	assert.Equal(t, uint64(1<<30), lg.InitialSize)
	assert.Equal(t, uint64(8<<20), lg.UndoBufferSize)
	assert.Equal(t, "undo", lg.Comment)
	assert.Equal(t, catalog.Unset, lg.NodeGroup)

	undo := cat.FindTablespace("undo_1", false)
	require.NotNil(t, undo)
	assert.True(t, undo.Undo)
}

func TestTablespaceUnknownLogfileGroup(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(), "CREATE TABLESPACE ts USE LOGFILE GROUP nowhere ENGINE NDB")
	require.Len(t, report.Unresolved, 1)
	e := report.Unresolved[0]
	assert.Equal(t, catalog.KindLogfileGroup, e.Target)
	assert.Equal(t, "ts", e.Owner)
	assert.Equal(t, cat.FindTablespace("ts", false).ID, e.OwnerID)
}

func TestNodeGroupOutOfRange(t *testing.T) {
	cat, report := apply(t, ddl.DefaultOptions(), "CREATE LOGFILE GROUP lg ADD UNDOFILE 'u.log' NODEGROUP 99999999999")
	require.Len(t, report.Diagnostics, 1)
	assert.ErrorIs(t, report.Diagnostics[0], ddl.ErrValueOutOfRange)
	assert.Equal(t, "lg", report.Diagnostics[0].Object)
	assert.Equal(t, catalog.Unset, cat.FindLogfileGroup("lg", false).NodeGroup)
}
