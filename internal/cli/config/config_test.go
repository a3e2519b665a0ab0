package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/leapstack-labs/leapddl/internal/config"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

const fixtureConfig = `
server_version: "8.0.20"
default_schema: shop
output: markdown
stub_unresolved: true
profiles:
  legacy:
    server_version: "5.7.44"
    default_schema: legacy_shop
    case_sensitive: true
  strict:
    stub_unresolved: false
`

// setupProject writes a config into a fresh directory and makes it the
// working directory.
func setupProject(t *testing.T, content string) string {
	t.Helper()
	ResetConfig()
	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, intconfig.ConfigFileName), []byte(content), 0o600))
	}
	t.Chdir(dir)
	return dir
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("profile", "", "")
	flags.String("server-version", "", "")
	flags.String("default-schema", "", "")
	flags.Bool("case-sensitive", false, "")
	flags.Bool("stub-unresolved", false, "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := setupProject(t, "")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, intconfig.DefaultSchema, cfg.DefaultSchema)
	assert.Equal(t, catalog.MustParseVersion(intconfig.DefaultServerVersion), cfg.ServerVersion)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.True(t, cfg.AutoFkNames)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())

	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestLoadConfig_File(t *testing.T) {
	setupProject(t, fixtureConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, catalog.Version{Major: 8, Minor: 0, Release: 20}, cfg.ServerVersion)
	assert.Equal(t, "shop", cfg.DefaultSchema)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.True(t, cfg.StubUnresolved)
	assert.NotEmpty(t, GetConfigFileUsed())
	assert.ElementsMatch(t, []string{"legacy", "strict"}, Profiles())
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	setupProject(t, "")
	other := t.TempDir()
	path := filepath.Join(other, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_schema: custom\n"), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.DefaultSchema)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, other, cfg.ProjectRoot)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	setupProject(t, "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_Profile(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		env        string
		wantSchema string
		wantStub   bool
		wantCase   bool
	}{
		{name: "no profile", wantSchema: "shop", wantStub: true},
		{name: "flag", args: []string{"--profile", "legacy"}, wantSchema: "legacy_shop", wantStub: true, wantCase: true},
		{name: "env", env: "strict", wantSchema: "shop", wantStub: false},
		{name: "flag beats env", args: []string{"--profile=legacy"}, env: "strict", wantSchema: "legacy_shop", wantStub: true, wantCase: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t, fixtureConfig)
			if tt.env != "" {
				t.Setenv("LEAPDDL_PROFILE", tt.env)
			}

			cfg, err := LoadConfig("", newFlags(t, tt.args...))
			require.NoError(t, err)

			assert.Equal(t, tt.wantSchema, cfg.DefaultSchema)
			assert.Equal(t, tt.wantStub, cfg.StubUnresolved)
			assert.Equal(t, tt.wantCase, cfg.CaseSensitive)
		})
	}
}

func TestLoadConfig_UnknownProfile(t *testing.T) {
	setupProject(t, fixtureConfig)

	_, err := LoadConfig("", newFlags(t, "--profile", "prod"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "prod" not found`)
	assert.Contains(t, err.Error(), "legacy, strict")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	setupProject(t, fixtureConfig)
	t.Setenv("LEAPDDL_DEFAULT_SCHEMA", "from_env")
	t.Setenv("LEAPDDL_CASE_SENSITIVE", "true")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.DefaultSchema)
	assert.True(t, cfg.CaseSensitive)
}

func TestLoadConfig_EnvPrecedenceOverProfile(t *testing.T) {
	setupProject(t, fixtureConfig)
	t.Setenv("LEAPDDL_DEFAULT_SCHEMA", "from_env")

	cfg, err := LoadConfig("", newFlags(t, "--profile", "legacy"))
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.DefaultSchema)
	assert.Equal(t, catalog.Version{Major: 5, Minor: 7, Release: 44}, cfg.ServerVersion)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	setupProject(t, fixtureConfig)
	t.Setenv("LEAPDDL_DEFAULT_SCHEMA", "from_env")

	cfg, err := LoadConfig("", newFlags(t, "--default-schema", "from_flag", "--server-version", "5.6", "-v", "-o", "json"))
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.DefaultSchema)
	assert.Equal(t, catalog.Version{Major: 5, Minor: 6}, cfg.ServerVersion)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	setupProject(t, "")
	t.Setenv("LEAPDDL_DEFAULT_SCHEMA", "from_env")

	cfg, err := LoadConfig("", newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.DefaultSchema)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{name: "output format", content: "output: xml\n", errPart: "invalid output format"},
		{name: "server version", content: "server_version: eight\n", errPart: "invalid server version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t, tt.content)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{AnalysisConfig: AnalysisConfig{DefaultSchema: "x"}, OutputFormat: "yaml"}
	require.NoError(t, cfg.Validate())

	cfg.DefaultSchema = ""
	assert.Error(t, cfg.Validate())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := GetLogger(context.Background()).With("k", "v")
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
