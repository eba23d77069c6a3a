package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
	if cfg.Device.Preferred != "auto" {
		t.Errorf("default device preference = %q, want %q", cfg.Device.Preferred, "auto")
	}
	if cfg.Database.Path != "vkconform.db" {
		t.Errorf("default database path = %q, want %q", cfg.Database.Path, "vkconform.db")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
device:
  preferred: "NVIDIA GeForce RTX 3080"
  enable_validation: true
database:
  path: /tmp/runs.db
run:
  filter: 2d/optimal
output:
  format: json
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Preferred != "NVIDIA GeForce RTX 3080" {
		t.Errorf("device preference = %q", cfg.Device.Preferred)
	}
	if !cfg.Device.EnableValidation {
		t.Error("enable_validation not parsed")
	}
	if cfg.Database.Path != "/tmp/runs.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Run.Filter != "2d/optimal" {
		t.Errorf("run filter = %q", cfg.Run.Filter)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output format = %q", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
run:
  filter: ycbcr
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Filter != "ycbcr" {
		t.Errorf("run filter = %q, want %q", cfg.Run.Filter, "ycbcr")
	}
	if cfg.Device.Preferred != "auto" {
		t.Errorf("unset device preference = %q, want the default %q", cfg.Device.Preferred, "auto")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unset logging level = %q, want the default %q", cfg.Logging.Level, "info")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load on a missing file returned no error")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "device: [not, a, mapping")
	if _, err := Load(path); err == nil {
		t.Error("Load on malformed yaml returned no error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"bad logging level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad logging format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"bad output format", func(c *Config) { c.Output.Format = "yaml" }, true},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"empty device preference", func(c *Config) { c.Device.Preferred = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
