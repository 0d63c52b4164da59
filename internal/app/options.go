package app

import (
	"log/slog"

	"github.com/thenoetrevino/tasktracker/internal/clock"
	"github.com/thenoetrevino/tasktracker/internal/config"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger *slog.Logger
	clock  clock.Clock
	auth   config.AuthConfig
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock sets the clock used for created/updated timestamps
func WithClock(c clock.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = c
	}
}

// WithAuthConfig sets the token secret, token lifetime and bcrypt cost
func WithAuthConfig(auth config.AuthConfig) Option {
	return func(cfg *appConfig) {
		cfg.auth = auth
	}
}
