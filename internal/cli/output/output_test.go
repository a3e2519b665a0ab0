package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

const sampleSQL = `
CREATE TABLE customers (id INT PRIMARY KEY AUTO_INCREMENT, email VARCHAR(100) NOT NULL, UNIQUE KEY uq_email (email));
CREATE TABLE orders (
  id INT PRIMARY KEY,
  customer_id INT,
  CONSTRAINT fk_cust FOREIGN KEY (customer_id) REFERENCES customers (id) ON DELETE CASCADE,
  CONSTRAINT fk_missing FOREIGN KEY (id) REFERENCES nowhere (id)
);
CREATE VIEW v AS SELECT id FROM orders;
CREATE TABLESPACE ts1 ADD DATAFILE 'ts1.ibd' INITIAL_SIZE = 16M ENGINE = InnoDB;
`

func analyse(t *testing.T, sql string) (*catalog.Catalog, *ddl.Report) {
	t.Helper()
	cat := catalog.New(catalog.Version{})
	unit := ddl.NewUnit(cat, ddl.DefaultOptions())
	unit.ApplySQL(sql)
	return cat, unit.Finish()
}

func newTestRenderer(mode Mode) (*Renderer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewRendererWithTTY(&out, &errOut, mode, false), &out
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: "text", want: ModeText},
		{in: "md", want: ModeMarkdown},
		{in: "json", want: ModeJSON},
		{in: "yaml", want: ModeYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, &buf, ModeAuto, true).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&buf, &buf, ModeAuto, false).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&buf, &buf, ModeJSON, true).EffectiveMode())
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, &buf, ModeText, false).EffectiveMode())
	assert.False(t, NewRenderer(&buf, &buf, "").IsTTY())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Tables", FormatHeader(2, "Tables"))
	assert.Equal(t, "# x", FormatHeader(0, "x"))
	assert.Equal(t, "- **Name:** orders", FormatKeyValue("Name", "orders"))
	assert.Equal(t, "```sql\nSELECT 1;\n```", FormatCodeBlock("sql", "SELECT 1;\n"))
	assert.Equal(t, "16 MiB", FormatSize(16<<20))
	assert.Equal(t, "-", FormatSize(0))
	assert.Equal(t, "1 table", FormatCount(1, "table", "tables"))
	assert.Equal(t, "1,200 tables", FormatCount(1200, "table", "tables"))
}

func TestReportMarkdown(t *testing.T) {
	_, rep := analyse(t, sampleSQL)
	r, out := newTestRenderer(ModeMarkdown)

	require.NoError(t, r.Report("schema.sql", rep))

	s := out.String()
	assert.Contains(t, s, "# Report: schema.sql")
	assert.Contains(t, s, "- **Statements:** 4")
	assert.Contains(t, s, "## Unresolved references")
	assert.Contains(t, s, "| Referenced |")
	assert.Contains(t, s, "nowhere")
}

func TestReportText(t *testing.T) {
	_, rep := analyse(t, "CREATE TABLE a (id INT);")
	r, out := newTestRenderer(ModeText)

	require.NoError(t, r.Report("", rep))

	s := out.String()
	assert.Contains(t, s, "Report")
	assert.Contains(t, s, "1 statement analysed")
	assert.Contains(t, s, "✓ 0 parse errors, 0 errors, 0 warnings, 0 unresolved references")
}

func TestReportJSON(t *testing.T) {
	_, rep := analyse(t, sampleSQL+"CREATE TABLE customers (id INT);")
	r, out := newTestRenderer(ModeJSON)

	require.NoError(t, r.Report("schema.sql", rep))

	var got struct {
		Source  string        `json:"source"`
		Summary ReportSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "schema.sql", got.Source)
	assert.Equal(t, 1, got.Summary.Errors)
	assert.Equal(t, 1, got.Summary.Unresolved)
	assert.False(t, got.Summary.OK)
	assert.Contains(t, out.String(), `"code": "Duplicate"`)
	assert.Contains(t, out.String(), `"severity": "error"`)
}

func TestCatalogMarkdown(t *testing.T) {
	cat, _ := analyse(t, sampleSQL)
	r, out := newTestRenderer(ModeMarkdown)

	require.NoError(t, r.Catalog(cat))

	s := out.String()
	assert.Contains(t, s, "## Schema mydb (implicit)")
	assert.Contains(t, s, "| customers | table | 2 columns, 2 indexes |")
	assert.Contains(t, s, "| v | view |")
	assert.Contains(t, s, "## Server objects")
	assert.Contains(t, s, "initial 16 MiB")
}

func TestCatalogYAML(t *testing.T) {
	cat, _ := analyse(t, sampleSQL)
	r, out := newTestRenderer(ModeYAML)

	require.NoError(t, r.Catalog(cat))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "utf8mb4", doc["default_charset"])
	schemas, ok := doc["schemas"].([]any)
	require.True(t, ok)
	assert.Len(t, schemas, 1)
}

func TestTableDescribe(t *testing.T) {
	cat, _ := analyse(t, sampleSQL)
	r, out := newTestRenderer(ModeMarkdown)

	require.NoError(t, r.Table(cat.FindTable("mydb", "customers", false)))

	s := out.String()
	assert.Contains(t, s, "## Table mydb.customers")
	assert.Contains(t, s, "| id | INT | NO | PRI | - | auto_increment |")
	assert.Contains(t, s, "| email | VARCHAR(100) CHARACTER SET utf8mb4 | NO | UNI | - | - |")
}

func TestColumnKey(t *testing.T) {
	cat, _ := analyse(t, sampleSQL)
	orders := cat.FindTable("mydb", "orders", false)

	assert.Equal(t, "PRI", ColumnKey(orders, "id"))
	assert.Equal(t, "MUL", ColumnKey(orders, "customer_id"))
	assert.Empty(t, ColumnKey(orders, "nope"))
}
