package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Definition.Path != "domainlang.yaml" {
		t.Errorf("expected default definition path domainlang.yaml, got %s", cfg.Definition.Path)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL nats://localhost:4222, got %s", cfg.NATS.URL)
	}
	if cfg.NATS.RequestSubject != "domainlang.validate" {
		t.Errorf("expected default request subject domainlang.validate, got %s", cfg.NATS.RequestSubject)
	}
	if !cfg.Definition.Watch {
		t.Error("expected definition watching by default")
	}
	if cfg.Validation.StrictProvenance {
		t.Error("expected lenient provenance by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing definition path",
			modify:  func(c *Config) { c.Definition.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing nats url",
			modify:  func(c *Config) { c.NATS.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing request subject",
			modify:  func(c *Config) { c.NATS.RequestSubject = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
definition:
  path: worlds/pharma.yaml
  watch: false
  reload_debounce: 2s
nats:
  url: nats://nats.internal:4222
validation:
  strict_provenance: true
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Definition.Path != "worlds/pharma.yaml" {
		t.Errorf("expected definition path worlds/pharma.yaml, got %s", cfg.Definition.Path)
	}
	if cfg.Definition.ReloadDebounce != 2*time.Second {
		t.Errorf("expected reload debounce 2s, got %s", cfg.Definition.ReloadDebounce)
	}
	if cfg.NATS.URL != "nats://nats.internal:4222" {
		t.Errorf("expected NATS URL nats://nats.internal:4222, got %s", cfg.NATS.URL)
	}
	// Unset fields keep their defaults.
	if cfg.NATS.RequestSubject != "domainlang.validate" {
		t.Errorf("expected default request subject, got %s", cfg.NATS.RequestSubject)
	}
	if !cfg.Validation.StrictProvenance {
		t.Error("expected strict provenance from file")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{
		Definition: DefinitionConfig{Path: "other.yaml"},
		NATS:       NATSConfig{GraphSubject: "graph.custom"},
		Validation: ValidationConfig{StrictProvenance: true},
	}

	base.Merge(other)

	if base.Definition.Path != "other.yaml" {
		t.Errorf("expected merged definition path other.yaml, got %s", base.Definition.Path)
	}
	if base.NATS.GraphSubject != "graph.custom" {
		t.Errorf("expected merged graph subject graph.custom, got %s", base.NATS.GraphSubject)
	}
	if base.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected base NATS URL preserved, got %s", base.NATS.URL)
	}
	if !base.Validation.StrictProvenance {
		t.Error("expected strict provenance merged in")
	}
}
