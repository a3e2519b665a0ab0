// Package main provides tests for the leapddl CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/internal/cli"
	"github.com/leapstack-labs/leapddl/internal/cli/config"
)

const shopSQL = `CREATE DATABASE shop DEFAULT CHARACTER SET utf8mb4;
USE shop;

CREATE TABLE line_items (
  order_id INT NOT NULL,
  sku VARCHAR(32) NOT NULL,
  qty SMALLINT UNSIGNED NOT NULL DEFAULT 1,
  PRIMARY KEY (order_id, sku),
  FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE
);

CREATE TABLE orders (
  id INT AUTO_INCREMENT PRIMARY KEY,
  placed_at DATETIME NOT NULL
);

CREATE VIEW order_sizes AS SELECT order_id, SUM(qty) AS items FROM line_items GROUP BY order_id;
`

// runCLI runs the root command with args and returns its stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapddl")
}

func TestParseFromStdin(t *testing.T) {
	out, err := runCLI(t, shopSQL, "parse", "-o", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "## Schema shop")
	assert.Contains(t, out, "| line_items | table |")
	assert.Contains(t, out, "| order_sizes | view |")
	assert.Contains(t, out, "0 unresolved references")
}

func TestParseDescribeTable(t *testing.T) {
	out, err := runCLI(t, shopSQL, "parse", "--table", "shop.line_items", "-o", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "fk_line_items_orders")
	assert.Contains(t, out, "CASCADE")
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.sql")
	require.NoError(t, os.WriteFile(path, []byte(shopSQL), 0o600))

	_, err := runCLI(t, "", "check", path)
	require.NoError(t, err)

	bad := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(bad, []byte("CREATE TABLE t (id INT, FOREIGN KEY (id) REFERENCES nowhere (id));"), 0o600))
	out, err := runCLI(t, "", "check", bad, "-o", "markdown")
	require.Error(t, err)
	assert.Contains(t, out, "nowhere")
}

func TestServerVersionFlag(t *testing.T) {
	_, err := runCLI(t, "CREATE TABLE t (id INT);", "parse", "--server-version", "not-a-version")
	require.Error(t, err)
}
