package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"otrctx/internal/logging"
)

// Environment variables that override the config file.
const (
	EnvHome     = "OTRCTX_HOME"
	EnvLogLevel = "OTRCTX_LOG_LEVEL"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string `yaml:"home"`       // state directory, e.g. $HOME/.otrctx
	LogLevel  string `yaml:"log_level"`  // debug, info, warn or error
	LogFormat string `yaml:"log_format"` // text or json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	home := ".otrctx"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".otrctx")
	}
	return Config{Home: home, LogLevel: "info", LogFormat: "text"}
}

// LoadConfig reads a YAML config from path on top of the defaults, then
// applies environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config load: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("config unmarshal: %w", err)
		}
	}
	applyEnvOverrides(&c)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		c.Home = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the fields that have a fixed set of values.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("config: home must be set")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
