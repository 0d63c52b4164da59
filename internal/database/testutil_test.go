package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db, DialectSQLite))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t), DialectSQLite)
}

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	projects map[string]*models.Project
	statuses map[string]*models.Status
	users    map[string]*models.User
}

// seedFixture creates projects TEST and IT, statuses NEW and DONE and
// users alice and bob.
func seedFixture(t *testing.T, repo *Repository) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		projects: map[string]*models.Project{},
		statuses: map[string]*models.Status{},
		users:    map[string]*models.User{},
	}
	for _, name := range []string{"TEST", "IT"} {
		p, err := repo.CreateProject(ctx, name)
		require.NoError(t, err)
		f.projects[name] = p
	}
	for _, name := range []string{"NEW", "DONE"} {
		s, err := repo.CreateStatus(ctx, name)
		require.NoError(t, err)
		f.statuses[name] = s
	}
	for i, name := range []string{"alice", "bob"} {
		u := &models.User{Username: name, DateJoined: baseTime.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.CreateUser(ctx, u))
		f.users[name] = u
	}
	return f
}

func (f *fixture) newTask(title, project, status, assignee, reporter string, at time.Time) *models.Task {
	return &models.Task{
		Title:      title,
		ProjectID:  f.projects[project].ID,
		StatusID:   f.statuses[status].ID,
		AssigneeID: f.users[assignee].ID,
		ReporterID: f.users[reporter].ID,
		Created:    at,
		Updated:    at,
	}
}
