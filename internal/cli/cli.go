// Package cli holds the pieces shared by the admin commands: the
// application handle, output formatting and exit codes.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/app"
	"github.com/thenoetrevino/tasktracker/internal/config"
	"github.com/thenoetrevino/tasktracker/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App
	Config *config.Config
	// ConfigPath is the --config value; empty means config.DefaultPath.
	ConfigPath string
	db         *sql.DB
}

// NewCLI opens the configured database and builds the application on top of it
func NewCLI(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*CLI, error) {
	db, dialect, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := app.New(database.NewRepository(db, dialect),
		app.WithLogger(logger),
		app.WithAuthConfig(cfg.Auth),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &CLI{App: a, Config: cfg, db: db}, nil
}

// SkipDatabase is the annotation key marking commands that run without
// opening the database.
const SkipDatabase = "skip-database"

// NeedsDatabase reports whether cmd or any of its parents is annotated
// with SkipDatabase.
func NeedsDatabase(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[SkipDatabase]; ok {
			return false
		}
	}
	return true
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.App != nil {
		if err := c.App.Close(); err != nil {
			return err
		}
	}
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
