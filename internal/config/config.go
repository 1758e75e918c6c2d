// Package config loads the response-mapper configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"response-mapper/internal/evescout"
	"response-mapper/internal/logging"
)

// Environment variables that override the file.
const (
	EnvLogLevel        = "RESPONSE_MAPPER_LOG_LEVEL"
	EnvEveScoutBaseURL = "EVESCOUT_BASE_URL"
)

// Config is the root of the configuration file.
type Config struct {
	// LogLevel is one of error, warn, info, debug.
	LogLevel string `yaml:"log_level"`

	// EveScout configures the EVE Scout client.
	EveScout EveScout `yaml:"evescout"`

	// TablesDir optionally holds YAML mapping tables that extend or replace
	// the built-in ones.
	TablesDir string `yaml:"tables_dir,omitempty"`
}

// EveScout configures the EVE Scout client.
type EveScout struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	// Retries is a pointer so an explicit 0 survives defaulting.
	Retries *int `yaml:"retries"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads the file at path, applies defaults and environment overrides
// looked up through getenv, and validates the result. An empty path yields
// the defaults; a nil getenv reads the process environment.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		cfg = parsed
	}

	applyEnv(cfg, getenv)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse parses YAML data into a Config without applying defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.EveScout.BaseURL == "" {
		cfg.EveScout.BaseURL = evescout.DefaultBaseURL
	}

	if cfg.EveScout.Timeout == 0 {
		cfg.EveScout.Timeout = evescout.DefaultTimeout
	}

	if cfg.EveScout.UserAgent == "" {
		cfg.EveScout.UserAgent = evescout.DefaultUserAgent
	}

	if cfg.EveScout.Retries == nil {
		retries := evescout.DefaultRetries
		cfg.EveScout.Retries = &retries
	}
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}

	if v := strings.TrimSpace(getenv(EnvEveScoutBaseURL)); v != "" {
		cfg.EveScout.BaseURL = v
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "error", "warn", "warning", "info", "debug":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	if c.EveScout.Timeout < 0 {
		errs = append(errs, fmt.Errorf("evescout.timeout: must not be negative, got %s", c.EveScout.Timeout))
	}

	if c.EveScout.Retries != nil && *c.EveScout.Retries < 0 {
		errs = append(errs, fmt.Errorf("evescout.retries: must not be negative, got %d", *c.EveScout.Retries))
	}

	if c.TablesDir != "" {
		if fi, err := os.Stat(c.TablesDir); err != nil || !fi.IsDir() {
			errs = append(errs, fmt.Errorf("tables_dir: %s is not a directory", c.TablesDir))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// ClientOptions returns the EVE Scout client options of the config.
func (c *Config) ClientOptions() []evescout.Option {
	opts := []evescout.Option{
		evescout.WithTimeout(c.EveScout.Timeout),
		evescout.WithUserAgent(c.EveScout.UserAgent),
	}

	if c.EveScout.Retries != nil {
		opts = append(opts, evescout.WithRetries(*c.EveScout.Retries))
	}

	return opts
}
