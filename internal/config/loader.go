package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory for file discovery. This
// is the testable entry point — Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first
// config file that exists. Empty string means defaults-only mode.
func discoverConfigPath(dir string) (string, error) {
	// 1. ./loupe.yaml (relative to working dir)
	local := filepath.Join(dir, "loupe.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/loupe/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "loupe", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge applies override onto base. Scalar fields override when non-zero;
// pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.LogScrollSpeed != 0 {
		base.UI.LogScrollSpeed = override.UI.LogScrollSpeed
	}
	if override.UI.Follow != nil {
		base.UI.Follow = override.UI.Follow
	}

	if override.Search.DebounceMs != 0 {
		base.Search.DebounceMs = override.Search.DebounceMs
	}
	if override.Search.CaseSensitive != nil {
		base.Search.CaseSensitive = override.Search.CaseSensitive
	}

	if override.Session.Persist != nil {
		base.Session.Persist = override.Session.Persist
	}

	if override.Telemetry.Enabled != nil {
		base.Telemetry.Enabled = override.Telemetry.Enabled
	}
	if override.Telemetry.Path != "" {
		base.Telemetry.Path = override.Telemetry.Path
	}
}

// applyEnvOverrides applies LOUPE_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOUPE_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("LOUPE_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.DebounceMs = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: LOUPE_DEBOUNCE_MS=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("LOUPE_SCROLL_SPEED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.LogScrollSpeed = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: LOUPE_SCROLL_SPEED=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("LOUPE_NO_TELEMETRY"); v != "" {
		cfg.Telemetry.Enabled = boolPtr(false)
	}
	if v := os.Getenv("LOUPE_NO_SESSION"); v != "" {
		cfg.Session.Persist = boolPtr(false)
	}
}
