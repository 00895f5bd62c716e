// Package config loads service configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for hearth tooling.
type Config struct {
	AWS     AWSConfig     `yaml:"aws"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// AWSConfig contains AWS client settings.
type AWSConfig struct {
	Region string `yaml:"region"`
}

// StoreConfig contains table store settings.
type StoreConfig struct {
	ConstraintTable string `yaml:"constraint_table"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the YAML configuration at path. A missing file
// is not an error; defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
