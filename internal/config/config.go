// Package config provides configuration management for netaudit.
//
// The config file carries the service's identity and defaults: listen
// address, database path, inventory file, and per-check default
// parameters. The database stores what netaudit knows (the snapshot and
// run results) and can be wiped without losing configuration.
//
// Config file locations (priority order):
//  1. $NETAUDIT_CONFIG
//  2. ./netaudit.yaml
//  3. ~/.config/netaudit/config.yaml
//  4. /etc/netaudit/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Listen:   ":3000",
		Database: DatabaseConfig{Path: "./netaudit.db"},
		Checks:   map[string]CheckDefaults{},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Listen == "" {
		c.Listen = ":3000"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./netaudit.db"
	}
	if c.Checks == nil {
		c.Checks = map[string]CheckDefaults{}
	}
}
