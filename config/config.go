// Package config provides configuration loading and management for the
// domainlang validation service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	Definition DefinitionConfig `yaml:"definition"`
	NATS       NATSConfig       `yaml:"nats"`
	Validation ValidationConfig `yaml:"validation"`
	Log        LogConfig        `yaml:"log"`
}

// DefinitionConfig configures the domain-language definition source
type DefinitionConfig struct {
	// Path is the YAML definition file the service validates against
	Path string `yaml:"path"`
	// Watch reloads the definition when the file changes on disk
	Watch bool `yaml:"watch"`
	// ReloadDebounce coalesces bursts of file events into one reload
	ReloadDebounce time.Duration `yaml:"reload_debounce"`
}

// NATSConfig configures the NATS connection and subjects
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// RequestSubject is where world validation requests arrive
	RequestSubject string `yaml:"request_subject"`
	// GraphSubject is where validation report triples are published
	GraphSubject string `yaml:"graph_subject"`
	// Name is the connection name reported to the server
	Name string `yaml:"name"`
}

// ValidationConfig configures validation behavior
type ValidationConfig struct {
	// StrictProvenance makes missing provenance fail the Traceability
	// condition instead of producing an advisory detail
	StrictProvenance bool `yaml:"strict_provenance"`
}

// LogConfig configures logging output
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Definition: DefinitionConfig{
			Path:           "domainlang.yaml",
			Watch:          true,
			ReloadDebounce: 500 * time.Millisecond,
		},
		NATS: NATSConfig{
			URL:            "nats://localhost:4222",
			RequestSubject: "domainlang.validate",
			GraphSubject:   "graph.ingest.entity",
			Name:           "domainlang-validator",
		},
		Validation: ValidationConfig{
			StrictProvenance: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Definition.Path == "" {
		return fmt.Errorf("definition.path is required")
	}
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required")
	}
	if c.NATS.RequestSubject == "" {
		return fmt.Errorf("nats.request_subject is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Definition.Path != "" {
		c.Definition.Path = other.Definition.Path
	}
	if other.Definition.Watch {
		c.Definition.Watch = true
	}
	if other.Definition.ReloadDebounce != 0 {
		c.Definition.ReloadDebounce = other.Definition.ReloadDebounce
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.RequestSubject != "" {
		c.NATS.RequestSubject = other.NATS.RequestSubject
	}
	if other.NATS.GraphSubject != "" {
		c.NATS.GraphSubject = other.NATS.GraphSubject
	}
	if other.NATS.Name != "" {
		c.NATS.Name = other.NATS.Name
	}

	if other.Validation.StrictProvenance {
		c.Validation.StrictProvenance = true
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
