package config

import "netaudit/internal/check"

// Config is the root configuration structure
type Config struct {
	Version   int                      `yaml:"version"`
	Listen    string                   `yaml:"listen"`
	Database  DatabaseConfig           `yaml:"database"`
	Inventory InventoryConfig          `yaml:"inventory"`
	Logging   LoggingConfig            `yaml:"logging"`
	Checks    map[string]CheckDefaults `yaml:"checks,omitempty"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// InventoryConfig points at the inventory snapshot source. When Watch is
// set, the server re-imports the file whenever it changes on disk.
type InventoryConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// LoggingConfig controls the process log
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// Development switches to zap's console encoding
	Development bool `yaml:"development,omitempty"`
}

// CheckDefaults are per-check default parameters, applied when a run
// request does not supply its own. Keyed by check name in the Checks map.
type CheckDefaults struct {
	Locations     []string `yaml:"locations,omitempty"`
	Roles         []string `yaml:"roles,omitempty"`
	DeviceTypes   []string `yaml:"device_types,omitempty"`
	HostnameRegex string   `yaml:"hostname_regex,omitempty"`
}

// Params converts the defaults into run parameters
func (d CheckDefaults) Params() check.Params {
	return check.Params{
		Locations:     d.Locations,
		Roles:         d.Roles,
		DeviceTypes:   d.DeviceTypes,
		HostnameRegex: d.HostnameRegex,
	}
}

// ParamsFor returns the configured defaults for a check, or zero params
func (c *Config) ParamsFor(checkName string) check.Params {
	if d, ok := c.Checks[checkName]; ok {
		return d.Params()
	}
	return check.Params{}
}
