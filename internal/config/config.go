// Package config loads and validates connector configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the dialect CLI and the connection layer.
type Config struct {
	Connection ConnectionConfig `yaml:"connection"`

	// Dialect overrides URL-based dialect selection when set.
	Dialect string `yaml:"dialect"`

	// Verbosity is the log level: debug, info, warn, or error.
	Verbosity string `yaml:"verbosity"`
}

// ConnectionConfig identifies the target database connection.
type ConnectionConfig struct {
	// URL is the JDBC-style connection URL, e.g. "jdbc:exa:localhost:8563".
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ConnectionURL returns the configured connection URL.
func (c *Config) ConnectionURL() string { return c.Connection.URL }

// ConnectionUser returns the configured connection user.
func (c *Config) ConnectionUser() string { return c.Connection.User }

// ConnectionPassword returns the configured connection password.
func (c *Config) ConnectionPassword() string { return c.Connection.Password }

// Load reads configuration from a YAML file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Verbosity == "" {
		c.Verbosity = "info"
	}
	// Allow the password to come from the environment so config files can be
	// committed without secrets.
	if c.Connection.Password == "" {
		c.Connection.Password = os.Getenv("CONNECTION_PASSWORD")
	}
	c.Dialect = strings.ToLower(c.Dialect)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Connection.URL == "" {
		return fmt.Errorf("connection.url is required")
	}
	switch c.Verbosity {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid verbosity %q (valid: debug, info, warn, error)", c.Verbosity)
	}
	return nil
}
