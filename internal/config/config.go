// Package config loads the tracker's YAML configuration and applies
// defaults and TRACKER_* environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Theme    ColorScheme    `yaml:"theme"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Debug puts gin into debug mode.
	Debug bool `yaml:"debug"`
}

// DatabaseConfig selects the backing store. Driver is "sqlite" or
// "postgres"; DSN is a file path for sqlite and a connection URL for
// postgres.
type DatabaseConfig struct {
	Driver       string   `yaml:"driver"`
	DSN          string   `yaml:"dsn"`
	SeedStatuses []string `yaml:"seed_statuses"`
}

// AuthConfig configures credential checks and bearer tokens.
type AuthConfig struct {
	// JWTSecret signs bearer tokens. When empty a random secret is
	// generated at startup, so tokens do not survive a restart.
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // empty logs to stderr
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config file at path. An empty path uses the default
// location; a missing file yields the defaults. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			path = ""
		}
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	config.applyDefaults()
	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the config to path, or to the default location when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pgx":
	default:
		return fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl: must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost: must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	return nil
}

// DefaultPath returns the config file location used when no path is given
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tasktracker", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tasktracker", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.SeedStatuses == nil {
		c.Database.SeedStatuses = []string{"NEW", "IN PROGRESS", "DONE"}
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	c.Theme.ApplyDefaults()
}

// applyEnv overrides values from TRACKER_* environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("TRACKER_ADDR", &c.Server.Addr)
	str("TRACKER_DB_DRIVER", &c.Database.Driver)
	str("TRACKER_DB_DSN", &c.Database.DSN)
	str("TRACKER_JWT_SECRET", &c.Auth.JWTSecret)
	str("TRACKER_LOG_LEVEL", &c.Log.Level)
	str("TRACKER_LOG_FORMAT", &c.Log.Format)
	str("TRACKER_LOG_FILE", &c.Log.File)

	if v, ok := lookup("TRACKER_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRACKER_TOKEN_TTL: %w", err)
		}
		c.Auth.TokenTTL = d
	}
	if v, ok := lookup("TRACKER_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRACKER_BCRYPT_COST: %w", err)
		}
		c.Auth.BcryptCost = n
	}
	if v, ok := lookup("TRACKER_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRACKER_DEBUG: %w", err)
		}
		c.Server.Debug = b
	}
	return nil
}
