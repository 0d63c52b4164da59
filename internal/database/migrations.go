package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Task references to projects, statuses and users are plain columns with no
// foreign key: those rows may be deleted while tasks still point at them.
// Descriptions and comments cascade with their task.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(20) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(20) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		date_joined DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auth_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(150) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS auth_user_groups (
		user_id INTEGER NOT NULL,
		group_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, group_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (group_id) REFERENCES auth_groups(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(100) NOT NULL,
		project_id INTEGER NOT NULL,
		status_id INTEGER NOT NULL,
		assignee_id INTEGER NOT NULL,
		reporter_id INTEGER NOT NULL,
		created DATETIME NOT NULL,
		updated DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS descriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		created DATETIME NOT NULL,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		author_id INTEGER NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		created DATETIME NOT NULL,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(20) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		date_joined TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auth_groups (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(150) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS auth_user_groups (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		group_id BIGINT NOT NULL REFERENCES auth_groups(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, group_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		project_id BIGINT NOT NULL,
		status_id BIGINT NOT NULL,
		assignee_id BIGINT NOT NULL,
		reporter_id BIGINT NOT NULL,
		created TIMESTAMPTZ NOT NULL,
		updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS descriptions (
		id BIGSERIAL PRIMARY KEY,
		task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		text TEXT NOT NULL DEFAULT '',
		created TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		author_id BIGINT NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		created TIMESTAMPTZ NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id)`,
	`CREATE INDEX IF NOT EXISTS idx_descriptions_task ON descriptions(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id, created)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema := sqliteSchema
	if dialect == DialectPostgres {
		schema = postgresSchema
	}

	for _, stmt := range append(schema, indexes...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}

// seedStatuses inserts the given statuses if the statuses table is empty
func seedStatuses(ctx context.Context, db *sql.DB, dialect Dialect, names []string) error {
	if len(names) == 0 {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM statuses").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range names {
		if _, err := db.ExecContext(ctx, dialect.Rebind("INSERT INTO statuses (name) VALUES (?)"), name); err != nil {
			return fmt.Errorf("failed to insert status %q: %w", name, err)
		}
	}
	return nil
}
