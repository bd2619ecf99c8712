// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     config
// Description: Application configuration (TOML, YAML, JSON5)
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"

	"github.com/msto63/logchain/internal/chain"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general" json:"general"`
	Chain     ChainConfig     `toml:"chain" yaml:"chain" json:"chain"`
	Store     StoreConfig     `toml:"store" yaml:"store" json:"store"`
	Telemetry TelemetryConfig `toml:"telemetry" yaml:"telemetry" json:"telemetry"`
	Startup   []MessageConfig `toml:"startup" yaml:"startup" json:"startup"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name" json:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format" json:"log_format"`
}

// ChainConfig describes the handler chain
type ChainConfig struct {
	// Order lists severities from head to tail
	Order []string `toml:"order" yaml:"order" json:"order"`
	// Style is "plain" or "color"
	Style string `toml:"style" yaml:"style" json:"style"`
}

// StoreConfig holds dispatch history settings
type StoreConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled" json:"enabled"`
	Path      string   `toml:"path" yaml:"path" json:"path"`
	Retention Duration `toml:"retention" yaml:"retention" json:"retention"`
}

// TelemetryConfig holds OpenTelemetry exporter settings
type TelemetryConfig struct {
	Enabled        bool     `toml:"enabled" yaml:"enabled" json:"enabled"`
	Traces         bool     `toml:"traces" yaml:"traces" json:"traces"`
	Metrics        bool     `toml:"metrics" yaml:"metrics" json:"metrics"`
	PrettyPrint    bool     `toml:"pretty_print" yaml:"pretty_print" json:"pretty_print"`
	MetricInterval Duration `toml:"metric_interval" yaml:"metric_interval" json:"metric_interval"`
}

// MessageConfig is a message enqueued at startup by "logchain run"
type MessageConfig struct {
	Severity string `toml:"severity" yaml:"severity" json:"severity"`
	Message  string `toml:"message" yaml:"message" json:"message"`
	// Entry names the handler the message enters the chain at. Empty means head.
	Entry string `toml:"entry" yaml:"entry" json:"entry"`
}

// Duration wraps time.Duration for config parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalJSON accepts a quoted duration string
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json5.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns the built-in configuration. Its startup messages reproduce
// the classic three-line demo.
func Default() *Config {
	cfg := &Config{
		Store: StoreConfig{Enabled: true},
		Startup: []MessageConfig{
			{Severity: "INFO", Message: "System started successfully."},
			{Severity: "DEBUG", Message: "Debugging connection issue.", Entry: "debug"},
			{Severity: "ERROR", Message: "Error detected in module X.", Entry: "error"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a file. The decoder is chosen by extension.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json", ".json5":
		err = json5.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPaths lists the locations probed by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/logchain.toml",
		"./logchain.toml",
		"./logchain.yaml",
		"./logchain.json5",
		filepath.Join(os.Getenv("HOME"), ".config/logchain/config.toml"),
	}
}

// LoadFromEnv loads configuration from LOGCHAIN_CONFIG or the first default
// location that exists. Without any file it returns Default().
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("LOGCHAIN_CONFIG")
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "logchain"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if len(c.Chain.Order) == 0 {
		for _, sev := range chain.AllSeverities() {
			c.Chain.Order = append(c.Chain.Order, sev.String())
		}
	}
	if c.Chain.Style == "" {
		c.Chain.Style = "plain"
	}

	if c.Store.Path == "" {
		c.Store.Path = "./data/history.db"
	}
	if c.Store.Retention.Duration == 0 {
		c.Store.Retention.Duration = 30 * 24 * time.Hour
	}

	if c.Telemetry.MetricInterval.Duration == 0 {
		c.Telemetry.MetricInterval.Duration = 10 * time.Second
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Severities returns the parsed chain order
func (c *Config) Severities() ([]chain.Severity, error) {
	order := make([]chain.Severity, 0, len(c.Chain.Order))
	for _, name := range c.Chain.Order {
		sev, err := chain.ParseSeverity(name)
		if err != nil {
			return nil, err
		}
		order = append(order, sev)
	}
	return order, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	order, err := c.Severities()
	if err != nil {
		return fmt.Errorf("%w: chain.order: %v", ErrInvalidConfig, err)
	}

	seen := make(map[chain.Severity]bool, len(order))
	for _, sev := range order {
		if seen[sev] {
			return fmt.Errorf("%w: chain.order: duplicate severity %s", ErrInvalidConfig, sev)
		}
		seen[sev] = true
	}

	switch strings.ToLower(c.Chain.Style) {
	case "plain", "color":
	default:
		return fmt.Errorf("%w: chain.style: unknown style %q", ErrInvalidConfig, c.Chain.Style)
	}

	if c.Store.Retention.Duration < 0 {
		return fmt.Errorf("%w: store.retention must not be negative", ErrInvalidConfig)
	}

	for i, msg := range c.Startup {
		if _, err := chain.ParseSeverity(msg.Severity); err != nil {
			return fmt.Errorf("%w: startup[%d]: %v", ErrInvalidConfig, i, err)
		}
		if msg.Entry != "" {
			sev, err := chain.ParseSeverity(msg.Entry)
			if err != nil || !seen[sev] {
				return fmt.Errorf("%w: startup[%d]: unknown entry handler %q", ErrInvalidConfig, i, msg.Entry)
			}
		}
	}

	return nil
}
