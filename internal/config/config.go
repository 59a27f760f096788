// Package config holds all coteach configuration: database location,
// dashboard behavior, the ordered classification table and the urgency and
// recommendation tables. Values come from defaults, overlaid by an optional
// YAML file, overlaid by environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"coteach/internal/classify"
	"coteach/internal/insights"
	"coteach/internal/logview"
)

// Config holds all coteach configuration.
type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Dashboard behavior
	Dashboard DashboardConfig `yaml:"dashboard"`

	// Classification and urgency keyword tables. The classifier rules are an
	// ordered list: earlier rules win ties, so order is semantic.
	Classifier ClassifierConfig `yaml:"classifier"`

	// Per-topic recommended actions
	Recommendations insights.RecommendationTable `yaml:"recommendations"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatabaseConfig configures the interaction store.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"COTEACH_DB"`
}

// DashboardConfig configures the faculty dashboard.
type DashboardConfig struct {
	PageSize      int    `yaml:"page_size" env:"COTEACH_PAGE_SIZE"`
	DefaultFilter string `yaml:"default_filter"`
}

// ClassifierConfig holds the keyword tables.
type ClassifierConfig struct {
	Rules           classify.Ruleset `yaml:"rules"`
	UrgencyKeywords []string         `yaml:"urgency_keywords"`
}

// LoggingConfig configures zap construction.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"COTEACH_LOG_LEVEL"` // debug, info, warn, error
	Format string `yaml:"format"`                        // json, console
	File   string `yaml:"file"`                          // empty: stderr
}

// DefaultConfigPath returns the per-user config location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "coteach", "config.yaml")
}

// DefaultDatabasePath returns the per-user database location.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "coteach", "classroom.db")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: DefaultDatabasePath(),
		},
		Dashboard: DashboardConfig{
			PageSize:      logview.DefaultPageSize,
			DefaultFilter: classify.FilterAll,
		},
		Classifier: ClassifierConfig{
			Rules:           classify.DefaultRuleset(),
			UrgencyKeywords: logview.DefaultUrgencyKeywords(),
		},
		Recommendations: insights.DefaultRecommendations(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file overlaid on the defaults, then
// applies environment overrides. A missing file is not an error; the
// defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("config: database path is required")
	}
	if c.Dashboard.PageSize <= 0 {
		return fmt.Errorf("config: dashboard page_size must be positive, got %d", c.Dashboard.PageSize)
	}
	if len(c.Classifier.Rules) == 0 {
		return fmt.Errorf("config: classifier needs at least one rule")
	}
	for i, rule := range c.Classifier.Rules {
		if rule.Topic == "" {
			return fmt.Errorf("config: classifier rule %d: topic is required", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("config: classifier rule %d (%s): keywords are required", i, rule.Topic)
		}
	}
	return nil
}
