// Package database handles the connection to the backing SQL store and the
// repositories built on top of it.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/tasktracker/internal/config"
)

// InitDB opens the configured database, applies connection settings and
// runs migrations. An empty sqlite DSN places the database file under
// ~/.tasktracker.
func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	dsn := cfg.DSN
	if dialect == DialectSQLite && dsn == "" {
		dsn, err = defaultSQLitePath()
		if err != nil {
			return nil, "", err
		}
	}
	if dialect == DialectPostgres && dsn == "" {
		return nil, "", fmt.Errorf("postgres driver requires a dsn")
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		if err := configureSQLite(ctx, db); err != nil {
			closeDB(db)
			return nil, "", err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, "", fmt.Errorf("database ping failed: %w", err)
	}

	if err := Migrate(ctx, db, dialect); err != nil {
		closeDB(db)
		return nil, "", fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedStatuses(ctx, db, dialect, cfg.SeedStatuses); err != nil {
		closeDB(db)
		return nil, "", fmt.Errorf("failed to seed statuses: %w", err)
	}

	return db, dialect, nil
}

func defaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".tasktracker")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	return filepath.Join(dir, "tracker.db"), nil
}

// configureSQLite pins the pool to one connection so the PRAGMAs, and an
// in-memory database, survive for the life of the handle.
func configureSQLite(ctx context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			slog.Error("failed to apply pragma", "pragma", p, "error", err)
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
