// Package config loads accio settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides the default
// config file location.
const EnvConfigPath = "ACCIO_CONFIG"

// MaxWorkers caps the parallel slot count.
const MaxWorkers = 1000

// Config represents accio configuration options
type Config struct {
	// Parallel selects the search strategy. Nil means ask the user.
	Parallel *bool `yaml:"parallel"`

	// Workers is the parallel slot count (0 = NumCPU * 4)
	Workers int `yaml:"workers"`

	// FollowSymlinks recurses into symlinks that point at directories
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// Progress shows the directory spinner when stdout is a terminal
	Progress bool `yaml:"progress"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile is an optional file that receives a copy of every log line
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Parallel:       nil, // Prompt
		Workers:        0,   // Auto
		FollowSymlinks: true,
		Progress:       true,
		LogLevel:       "warn",
		LogFile:        "",
	}
}

// DefaultPath returns <user config dir>/accio/config.yaml, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "accio", "config.yaml")
}

// ResolvePath picks the config file to load: the explicit path if given,
// else $ACCIO_CONFIG, else DefaultPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultPath()
}

// LoadConfig loads configuration from the specified file path.
// A missing file (or an empty path) yields the defaults without error;
// a file that exists but cannot be read or parsed is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell "absent" apart from an explicit zero value.
	type yamlConfig struct {
		Parallel       *bool   `yaml:"parallel"`
		Workers        *int    `yaml:"workers"`
		FollowSymlinks *bool   `yaml:"follow_symlinks"`
		Progress       *bool   `yaml:"progress"`
		LogLevel       *string `yaml:"log_level"`
		LogFile        *string `yaml:"log_file"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if yamlCfg.Parallel != nil {
		cfg.Parallel = yamlCfg.Parallel
	}
	if yamlCfg.Workers != nil {
		cfg.Workers = *yamlCfg.Workers
	}
	if yamlCfg.FollowSymlinks != nil {
		cfg.FollowSymlinks = *yamlCfg.FollowSymlinks
	}
	if yamlCfg.Progress != nil {
		cfg.Progress = *yamlCfg.Progress
	}
	if yamlCfg.LogLevel != nil && *yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*yamlCfg.LogLevel)
	}
	if yamlCfg.LogFile != nil {
		cfg.LogFile = *yamlCfg.LogFile
	}

	return cfg, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be <= %d, got %d", MaxWorkers, c.Workers)
	}

	validLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}
