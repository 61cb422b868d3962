// Package config loads the client configuration from ~/.sefy/config.yaml,
// applies environment overrides, and validates the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or individual keys are absent.
const (
	DefaultAPIURL         = "https://proyecto-sefy-backend-8m76.onrender.com"
	DefaultTimeoutSeconds = 15
	DefaultLogLevel       = "info"
)

// Config holds the client settings.
type Config struct {
	APIURL         string `yaml:"api_url" validate:"required,backend_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=1,lte=300"`
	LogLevel       string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	StateDir       string `yaml:"state_dir"`
}

// DefaultDir returns the per-user state directory (~/.sefy).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sefy"), nil
}

// Load reads the configuration file at path, falling back to defaults when the
// file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file, defaults only.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SEFY_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("SEFY_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.TimeoutSeconds = seconds
		}
	}
	if v := os.Getenv("SEFY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SEFY_STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

func (c *Config) applyDefaults() error {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.StateDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return fmt.Errorf("failed to resolve state directory: %w", err)
		}
		c.StateDir = dir
	}
	return nil
}

// StatePath returns the location of the durable key/value state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, "state.json")
}

// LogPath returns the location of the TUI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "sefy.log")
}

// ConfigPath returns the conventional config file location inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, "config.yaml")
}
