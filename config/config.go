// Package config loads the fleetview configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration.
type Config struct {
	Version  string    `yaml:"version"`
	Accounts []Account `yaml:"accounts,omitempty"`
	Fixtures []string  `yaml:"fixtures,omitempty"`
	Watch    Watch     `yaml:"watch,omitempty"`
}

// Account is one cloud account a provider source serves.
type Account struct {
	Name     string `yaml:"name"`
	Provider string `yaml:"provider"`
	Region   string `yaml:"region"`
}

// Watch configures the continuous listing loop.
type Watch struct {
	Interval     time.Duration `yaml:"interval,omitempty"`
	MetricsAddr  string        `yaml:"metrics_addr,omitempty"`
	Applications []string      `yaml:"applications,omitempty"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures required fields are set.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(c.Accounts) == 0 && len(c.Fixtures) == 0 {
		return fmt.Errorf("at least one account or fixture is required")
	}
	for i, account := range c.Accounts {
		if account.Name == "" {
			return fmt.Errorf("accounts[%d]: name is required", i)
		}
		if account.Provider == "" {
			return fmt.Errorf("account %s: provider is required", account.Name)
		}
		if account.Region == "" {
			return fmt.Errorf("account %s: region is required", account.Name)
		}
	}
	if c.Watch.Interval < 0 {
		return fmt.Errorf("watch interval must not be negative")
	}
	return nil
}

// WatchInterval returns the configured loop interval or the default.
func (c *Config) WatchInterval() time.Duration {
	if c.Watch.Interval == 0 {
		return 5 * time.Minute
	}
	return c.Watch.Interval
}

// MetricsAddr returns the configured metrics address or the default.
func (c *Config) MetricsAddr() string {
	if c.Watch.MetricsAddr == "" {
		return ":9090"
	}
	return c.Watch.MetricsAddr
}
