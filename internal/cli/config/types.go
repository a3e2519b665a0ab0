// Package config provides configuration management for the leapddl CLI.
//
// It layers CLI-only settings (verbosity, output format, profile selection)
// over the analysis settings defined in internal/config.
package config

import (
	intconfig "github.com/leapstack-labs/leapddl/internal/config"
)

// AnalysisConfig is an alias for the shared analysis configuration.
type AnalysisConfig = intconfig.AnalysisConfig

// Config holds all CLI configuration options.
type Config struct {
	AnalysisConfig `koanf:",squash"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	// Profile names the entry of the profiles map merged over the top-level
	// analysis settings.
	Profile string `koanf:"profile"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix     = "LEAPDDL_"
)
