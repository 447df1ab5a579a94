package config

import (
	"testing"
	"time"
)

func TestLoadFromBytes_YAML(t *testing.T) {
	data := []byte(`
output: json
limit: 5
alternates: true
depth: 3
timeout: 2s
`)
	cfg, err := LoadFromBytes(data, "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "json" || cfg.Limit != 5 || !cfg.Alternates {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Depth != 3 || cfg.Timeout != 2*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromBytes_JSON(t *testing.T) {
	data := []byte(`{"output": "table", "limit": 20}`)
	cfg, err := LoadFromBytes(data, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "table" || cfg.Limit != 20 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromBytes_Defaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("{}"), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Limit != 10 {
		t.Errorf("limit default = %d, want 10", cfg.Limit)
	}
	if cfg.Output != "" {
		t.Errorf("output default = %q, want empty", cfg.Output)
	}
}

func TestLoadFromBytes_UnknownFormat(t *testing.T) {
	if _, err := LoadFromBytes([]byte("{}"), "toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestValidate_BadOutput(t *testing.T) {
	cfg := Config{Output: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestValidate_NegativeLimit(t *testing.T) {
	cfg := Config{Limit: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative limit")
	}
}
