// Package config loads and validates the runner configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggingSettings defines logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Config holds the configuration for a conformance run.
type Config struct {
	Device struct {
		Preferred        string `yaml:"preferred"` // GPU name or "auto"
		EnableValidation bool   `yaml:"enable_validation"`
	} `yaml:"device"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Run struct {
		Filter string `yaml:"filter"` // substring match on case identifiers
	} `yaml:"run"`

	Output struct {
		Format string `yaml:"format"` // table, json, csv
	} `yaml:"output"`

	Logging LoggingSettings `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Device.Preferred = "auto"
	cfg.Database.Path = "vkconform.db"
	cfg.Output.Format = "table"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	return cfg
}

// Load reads and parses a configuration file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every configured value is usable.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}

	switch c.Output.Format {
	case "", "table", "json", "csv":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Device.Preferred == "" {
		return fmt.Errorf("device preference must not be empty (use \"auto\")")
	}
	return nil
}
