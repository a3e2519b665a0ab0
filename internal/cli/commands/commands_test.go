// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/internal/cli/config"
	"github.com/leapstack-labs/leapddl/internal/cli/testutil"
	intconfig "github.com/leapstack-labs/leapddl/internal/config"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand()

	assert.Equal(t, "parse [files or directories...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist (output is a global flag on root, not local)
	flags := []string{"separate", "watch", "table"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "w", cmd.Flags().Lookup("watch").Shorthand)
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [files or directories...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"separate", "strict"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl [files or directories...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("history-file"))
}

// loadProject loads the config of a test project and returns its root.
func loadProject(t *testing.T) string {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := testutil.SetupTestProject(t)
	_, err := config.LoadConfig(filepath.Join(root, intconfig.ConfigFileName), nil)
	require.NoError(t, err)
	return root
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand_Directory(t *testing.T) {
	root := loadProject(t)

	out, err := execute(t, NewParseCommand(), filepath.Join(root, "schema"))
	require.NoError(t, err)

	assert.Contains(t, out, "# Catalog")
	assert.Contains(t, out, "## Schema shop")
	assert.Contains(t, out, "| orders | table |")
	assert.Contains(t, out, "| customers | table |")
	assert.Contains(t, out, "0 unresolved references")
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestParseCommand_Table(t *testing.T) {
	root := loadProject(t)

	out, err := execute(t, NewParseCommand(), filepath.Join(root, "schema"), "--table", "shop.customers")
	require.NoError(t, err)
	assert.Contains(t, out, "| email | VARCHAR(255)")
	assert.Contains(t, out, "fk_last_order")

	_, err = execute(t, NewParseCommand(), filepath.Join(root, "schema"), "--table", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table nope not found")
}

func TestCheckCommand_MissingDependency(t *testing.T) {
	root := loadProject(t)

	// customers refers to orders, which its own unit never sees
	out, err := execute(t, NewCheckCommand(),
		filepath.Join(root, "schema", "02_customers.sql"), "--separate")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "1 unresolved reference")
}

func TestParseCommand_Stdin(t *testing.T) {
	loadProject(t)

	cmd := NewParseCommand()
	cmd.SetIn(strings.NewReader("CREATE TABLE t (id INT);"))
	out, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "| t | table |")
}

func TestCheckCommand(t *testing.T) {
	root := loadProject(t)

	_, err := execute(t, NewCheckCommand(), filepath.Join(root, "schema"))
	require.NoError(t, err)

	broken := filepath.Join(root, "broken.sql")
	testutil.WriteFile(t, broken, testutil.BrokenSQL)
	out, err := execute(t, NewCheckCommand(), broken)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "nope")
}

func TestCheckFails(t *testing.T) {
	warning := &ddl.Diagnostic{Severity: ddl.SeverityWarning, Code: ddl.CodeValueOutOfRange}

	tests := []struct {
		name   string
		report *ddl.Report
		strict bool
		want   bool
	}{
		{name: "clean", report: &ddl.Report{}, want: false},
		{name: "warning", report: &ddl.Report{Diagnostics: []*ddl.Diagnostic{warning}}, want: false},
		{name: "warning strict", report: &ddl.Report{Diagnostics: []*ddl.Diagnostic{warning}}, strict: true, want: true},
		{name: "unresolved", report: &ddl.Report{Unresolved: []*ddl.ResolutionError{{}}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkFails(tt.report, tt.strict))
		})
	}
}

func TestCollectFiles(t *testing.T) {
	root := testutil.SetupTestProject(t)
	schema := filepath.Join(root, "schema")
	testutil.WriteFile(t, filepath.Join(schema, "notes.txt"), "not sql")
	require.NoError(t, os.MkdirAll(filepath.Join(schema, ".hidden"), 0o750))
	testutil.WriteFile(t, filepath.Join(schema, ".hidden", "skip.sql"), "CREATE TABLE x (id INT);")

	files, err := CollectFiles([]string{schema})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(schema, "01_orders.sql"),
		filepath.Join(schema, "02_customers.sql"),
	}, files)

	files, err = CollectFiles(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{stdinPath}, files)

	_, err = CollectFiles([]string{filepath.Join(root, "missing.sql")})
	require.Error(t, err)

	_, err = CollectFiles([]string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .sql files found")
}

func TestFindTable(t *testing.T) {
	cat := catalog.New(catalog.Version{})
	unit := ddl.NewUnit(cat, ddl.DefaultOptions())
	unit.ApplySQL("CREATE TABLE shop.orders (id INT); CREATE TABLE mydb.items (id INT);")

	assert.NotNil(t, findTable(cat, "mydb", "shop.orders", false))
	assert.NotNil(t, findTable(cat, "mydb", "items", false))
	assert.NotNil(t, findTable(cat, "mydb", "ITEMS", false))
	assert.Nil(t, findTable(cat, "mydb", "ITEMS", true))
	assert.Nil(t, findTable(cat, "mydb", "orders", false))
}

// newTestSession returns a REPL session writing to a markdown renderer.
func newTestSession(t *testing.T) (*replSession, *testutil.TestRenderer) {
	t.Helper()
	cfg := &config.Config{ProjectRoot: t.TempDir()}
	cfg.AutoFkNames = true
	intconfig.ApplyDefaults(&cfg.AnalysisConfig)

	r := testutil.NewTestRendererMarkdown()
	c := &CommandContext{
		Cfg:      cfg,
		Logger:   slog.New(slog.DiscardHandler),
		Renderer: r.Renderer,
	}
	return newREPLSession(c), r
}

func feedAll(s *replSession, lines ...string) bool {
	for _, line := range lines {
		if s.feed(line) {
			return true
		}
	}
	return false
}

func TestREPLSession_Statements(t *testing.T) {
	s, r := newTestSession(t)

	assert.Equal(t, replPrompt, s.prompt())
	assert.False(t, s.feed("CREATE TABLE t ("))
	assert.Equal(t, replContinuePrompt, s.prompt())
	assert.False(t, feedAll(s, "  id INT PRIMARY KEY", ");"))
	assert.Equal(t, replPrompt, s.prompt())

	require.NotNil(t, s.unit.Catalog().FindTable("mydb", "t", false))

	// duplicates are shown as soon as the statement is applied
	feedAll(s, "CREATE TABLE t (id INT);")
	assert.Contains(t, r.Output(), "Duplicate")
}

func TestREPLSession_ParseErrorsShownImmediately(t *testing.T) {
	s, r := newTestSession(t)

	s.feed("CREATE TABLE (;")
	assert.Contains(t, r.ErrorOutput(), "parse error")
}

func TestREPLSession_Delimiter(t *testing.T) {
	s, _ := newTestSession(t)

	feedAll(s,
		"DELIMITER $$",
		"CREATE PROCEDURE p()",
		"BEGIN SELECT 1; END$$",
	)
	assert.Equal(t, replPrompt, s.prompt())

	schema := s.unit.Catalog().FindSchema("mydb", false)
	require.NotNil(t, schema)
	assert.NotNil(t, schema.FindRoutine("p", catalog.RoutineProcedure, false))
}

func TestREPLSession_ForwardReferences(t *testing.T) {
	s, r := newTestSession(t)

	feedAll(s,
		"CREATE TABLE child (pid INT, CONSTRAINT fk FOREIGN KEY (pid) REFERENCES parent (id));",
		"CREATE TABLE parent (id INT PRIMARY KEY);",
		".resolve",
	)
	assert.Contains(t, r.Output(), "0 references failed overall")

	child := s.unit.Catalog().FindTable("mydb", "child", false)
	require.NotNil(t, child)
	require.Len(t, child.ForeignKeys, 1)
	assert.NotNil(t, child.ForeignKeys[0].ReferencedTable)
}

func TestREPLSession_DotCommands(t *testing.T) {
	s, r := newTestSession(t)
	feedAll(s, "CREATE TABLE shop.orders (id INT PRIMARY KEY);", "USE shop;")

	r.Reset()
	s.feed(".schemas")
	assert.Contains(t, r.Output(), "shop")

	r.Reset()
	s.feed(".tables")
	assert.Equal(t, "orders\n", r.Output())

	r.Reset()
	s.feed(".tables nowhere")
	assert.Contains(t, r.ErrorOutput(), "unknown schema nowhere")

	r.Reset()
	s.feed(".describe orders")
	assert.Contains(t, r.Output(), "| id | INT |")

	r.Reset()
	s.feed(".describe")
	assert.Contains(t, r.ErrorOutput(), "Usage: .describe <table>")

	r.Reset()
	s.feed(".report")
	assert.Contains(t, r.Output(), "- **Statements:** 2")

	r.Reset()
	s.feed(".bogus")
	assert.Contains(t, r.ErrorOutput(), "Unknown command: .bogus")

	s.feed(".reset")
	assert.Nil(t, s.unit.Catalog().FindTable("shop", "orders", false))

	assert.True(t, s.feed(".quit"))
	assert.True(t, s.feed(".EXIT"))
}

func TestREPLSession_Interrupt(t *testing.T) {
	s, _ := newTestSession(t)

	s.feed("CREATE TABLE t (")
	s.reset()
	assert.Equal(t, replPrompt, s.prompt())

	s.feed("CREATE TABLE u (id INT);")
	assert.NotNil(t, s.unit.Catalog().FindTable("mydb", "u", false))
	assert.Nil(t, s.unit.Catalog().FindTable("mydb", "t", false))
}

func TestNewDepsCommand(t *testing.T) {
	cmd := NewDepsCommand()

	assert.Equal(t, "deps [files or directories...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	for _, flag := range []string{"dependents", "dependencies"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestDepsCommand(t *testing.T) {
	root := loadProject(t)
	schema := filepath.Join(root, "schema")

	out, err := execute(t, NewDepsCommand(), schema)
	require.NoError(t, err)
	assert.Contains(t, out, "# Creation order")
	assert.Contains(t, out, "| 1 | shop.orders | - |")
	assert.Contains(t, out, "| 2 | shop.customers | shop.orders |")

	out, err = execute(t, NewDepsCommand(), schema, "--dependents", "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "# Tables referencing shop.orders")
	assert.Contains(t, out, "- shop.customers")

	_, err = execute(t, NewDepsCommand(), schema, "--dependencies", "nope")
	require.Error(t, err)
}

func TestDepsCommand_Cycle(t *testing.T) {
	root := loadProject(t)
	path := filepath.Join(root, "cycle.sql")
	testutil.WriteFile(t, path, `
CREATE TABLE a (id INT PRIMARY KEY, b_id INT, FOREIGN KEY (b_id) REFERENCES b (id));
CREATE TABLE b (id INT PRIMARY KEY, a_id INT, FOREIGN KEY (a_id) REFERENCES a (id));
`)

	out, err := execute(t, NewDepsCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "foreign key cycle: shop.a -> shop.b -> shop.a")
}
