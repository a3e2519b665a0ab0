package config

// Default configuration values.
const (
	DefaultSchema        = "mydb"
	DefaultServerVersion = "8.0.32"
)

// DefaultMap returns the defaults in the flat key form koanf loads first.
func DefaultMap() map[string]any {
	return map[string]any{
		"server_version":    DefaultServerVersion,
		"default_schema":    DefaultSchema,
		"default_charset":   "",
		"default_collation": "",
		"case_sensitive":    false,
		"auto_fk_names":     true,
		"stub_unresolved":   false,
		"parallel_resolve":  false,
	}
}

// ApplyDefaults fills unset values of an AnalysisConfig.
func ApplyDefaults(c *AnalysisConfig) {
	if c == nil {
		return
	}
	if c.DefaultSchema == "" {
		c.DefaultSchema = DefaultSchema
	}
}
