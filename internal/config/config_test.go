package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
}

func TestLoadFromDirDefaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, catalog.MustParseVersion(DefaultServerVersion), cfg.ServerVersion)
	assert.Equal(t, DefaultSchema, cfg.DefaultSchema)
	assert.True(t, cfg.AutoFkNames)
	assert.False(t, cfg.CaseSensitive)
	assert.False(t, cfg.StubUnresolved)
}

func TestLoadFromDirFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
server_version: "5.7.44"
default_schema: shop
default_charset: latin1
case_sensitive: true
auto_fk_names: false
stub_unresolved: true
parallel_resolve: true
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, catalog.Version{Major: 5, Minor: 7, Release: 44}, cfg.ServerVersion)
	assert.Equal(t, "shop", cfg.DefaultSchema)
	assert.Equal(t, "latin1", cfg.DefaultCharset)
	assert.True(t, cfg.CaseSensitive)
	assert.False(t, cfg.AutoFkNames)
	assert.True(t, cfg.StubUnresolved)
	assert.True(t, cfg.ParallelResolve)
}

func TestLoadFromDirInvalidVersion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server_version: eight\n")

	_, err := LoadFromDir(dir)
	assert.Error(t, err)
}

func TestVersionHookFunc(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  catalog.Version
	}{
		{name: "string", value: "8.0.32", want: catalog.Version{Major: 8, Minor: 0, Release: 32}},
		{name: "numeric form", value: 80032, want: catalog.Version{Major: 8, Minor: 0, Release: 32}},
		{name: "yaml float", value: 5.7, want: catalog.Version{Major: 5, Minor: 7}},
		{name: "empty", value: "", want: catalog.Version{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := koanf.New(".")
			require.NoError(t, k.Load(confmap.Provider(map[string]any{"server_version": tt.value}, "."), nil))

			var cfg AnalysisConfig
			require.NoError(t, Unmarshal(k, "", &cfg))
			assert.Equal(t, tt.want, cfg.ServerVersion)
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := AnalysisConfig{
		ServerVersion:   catalog.MustParseVersion("8.0.20"),
		DefaultSchema:   "shop",
		CaseSensitive:   true,
		AutoFkNames:     true,
		StubUnresolved:  true,
		ParallelResolve: true,
	}
	opts := cfg.Options(nil)

	assert.True(t, opts.CaseSensitiveIdentifiers)
	assert.True(t, opts.AutoGenerateFkNames)
	assert.True(t, opts.StubUnresolvedTables)
	assert.True(t, opts.ParallelResolve)
	assert.Equal(t, "shop", opts.DefaultSchema)
	assert.Equal(t, 80020, opts.ServerVersion.Number())
}

func TestNewCatalog(t *testing.T) {
	cat := AnalysisConfig{DefaultCharset: "latin1"}.NewCatalog()
	assert.Equal(t, "latin1", cat.DefaultCharset)
	assert.NotEmpty(t, cat.DefaultCollation)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	writeConfig(t, root, "default_schema: x\n")

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileName), FindConfigFile(root))
	assert.Empty(t, FindConfigFile(nested))
}
