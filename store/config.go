package store

// Config holds configuration for the Store.
type Config struct {
	// ConstraintTable is the name of the uniqueness constraints table.
	// Default: "hearth_constraints"
	ConstraintTable string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ConstraintTable: "hearth_constraints",
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.ConstraintTable == "" {
		c.ConstraintTable = "hearth_constraints"
	}
}
