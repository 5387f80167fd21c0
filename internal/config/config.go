// Package config loads the optional zxpman configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Config holds optional user settings. Zero values mean "use defaults";
// the scope root overrides exist mainly for testing against throwaway
// directories and for non-standard Adobe installs.
type Config struct {
	SystemRoot string `toml:"system_root"`
	UserRoot   string `toml:"user_root"`
	LogLevel   string `toml:"log_level"`
}

// DefaultPath returns the conventional config file location
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "zxpman", "config.toml"), nil
}

// Load reads the config at path. A missing file yields the zero config;
// a present but malformed file is an error worth surfacing.
func Load(path string) (*Config, error) {
	cfg := &Config{LogLevel: "info"}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
