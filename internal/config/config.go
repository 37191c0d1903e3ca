// Package config loads taskdeck settings: defaults, then the user config
// file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the full configuration.
type Config struct {
	// DataFile is where the task collection is persisted.
	DataFile string `toml:"data_file"`

	// ExportDir is where CSV/JSON exports are written.
	ExportDir string `toml:"export_dir"`
}

// Env overrides.
const (
	envDataFile  = "TASKDECK_DATA_FILE"
	envExportDir = "TASKDECK_EXPORT_DIR"
)

// Load assembles configuration in priority order: defaults, user config
// file (~/.config/taskdeck/config.toml), environment variables. A missing
// config file is fine; a malformed one is an error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := setDefaults(cfg); err != nil {
		return nil, err
	}

	path, err := userConfigFile()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, cfg); decErr != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, decErr)
			}
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) error {
	confDir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg.DataFile = filepath.Join(confDir, "taskdeck", "tasks.json")

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home dir: %w", err)
	}
	cfg.ExportDir = home
	return nil
}

func userConfigFile() (string, error) {
	confDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(confDir, "taskdeck", "config.toml"), nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv(envDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(envExportDir); v != "" {
		cfg.ExportDir = v
	}
}
