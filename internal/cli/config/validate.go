package config

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DefaultSchema == "" {
		return fmt.Errorf("default_schema is required")
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	return nil
}
