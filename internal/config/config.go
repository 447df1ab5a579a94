package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/menucli"
	DefaultConfigFile = "config.yaml"
)

// Config holds per-user defaults. Every field is optional; CLI flags
// always win over config values.
type Config struct {
	// Output is the default output format when --output is not given.
	// One of: auto, json, compact, ndjson, table, path, id.
	Output string `yaml:"output" json:"output"`
	// Limit is the default search result limit.
	Limit int `yaml:"limit" json:"limit"`
	// Alternates includes Option-key alternate items by default.
	Alternates bool `yaml:"alternates" json:"alternates"`
	// Depth is the default maximum menu nesting depth (0 = unlimited).
	Depth int `yaml:"depth" json:"depth"`
	// Timeout is the default per-walk deadline (0 = none).
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

var validOutputs = map[string]bool{
	"": true, "auto": true, "json": true, "compact": true,
	"ndjson": true, "table": true, "path": true, "id": true,
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if !validOutputs[c.Output] {
		return fmt.Errorf("unknown output format: %s", c.Output)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", c.Limit)
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must be >= 0, got %d", c.Depth)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	return nil
}

// Load loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/menucli/config.yaml, falling back to
// config.json. A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Config{Limit: 10}, nil
		}
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return &Config{Limit: 10}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadFromBytes(data, ext)
}

// LoadFromBytes loads configuration from raw bytes.
// format should be "yaml" or "json".
func LoadFromBytes(data []byte, format string) (*Config, error) {
	cfg := Config{Limit: 10}

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Path returns the default config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}
