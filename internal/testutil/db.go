// Package testutil holds shared helpers for package tests: an in-memory
// store and seed data.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/clock"
	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(context.Background(), db, database.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database.
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t), database.DialectSQLite)
}

// CreateTestProject inserts a project
func CreateTestProject(t *testing.T, repo database.DataStore, name string) *models.Project {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), name)
	require.NoError(t, err)
	return p
}

// CreateTestStatus inserts a status
func CreateTestStatus(t *testing.T, repo database.DataStore, name string) *models.Status {
	t.Helper()
	s, err := repo.CreateStatus(context.Background(), name)
	require.NoError(t, err)
	return s
}

// CreateTestUser inserts a user with a cheaply hashed password
func CreateTestUser(t *testing.T, repo database.DataStore, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		DateJoined:   clock.System.Now(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

// TaskSeed describes a task to insert directly.
type TaskSeed struct {
	Title        string
	Project      *models.Project
	Status       *models.Status
	Assignee     *models.User
	Reporter     *models.User
	Descriptions []string
}

// CreateTestTask inserts a task and its descriptions, bypassing services
func CreateTestTask(t *testing.T, repo database.DataStore, seed TaskSeed) *models.Task {
	t.Helper()
	ctx := context.Background()
	now := clock.System.Now()

	task := &models.Task{
		Title:      seed.Title,
		ProjectID:  seed.Project.ID,
		StatusID:   seed.Status.ID,
		AssigneeID: seed.Assignee.ID,
		ReporterID: seed.Reporter.ID,
		Created:    now,
		Updated:    now,
	}
	require.NoError(t, repo.CreateTask(ctx, task))
	for _, text := range seed.Descriptions {
		_, err := repo.CreateDescription(ctx, task.ID, text, now)
		require.NoError(t, err)
	}
	return task
}

// CreateTestComment inserts a comment without touching its task
func CreateTestComment(t *testing.T, repo database.DataStore, task *models.Task, author *models.User, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{TaskID: task.ID, AuthorID: author.ID, Text: text, Created: clock.System.Now()}
	require.NoError(t, repo.CreateComment(context.Background(), c))
	return c
}

// Fixture is the seeded tracker data shared by API and service tests.
type Fixture struct {
	Repo     *database.Repository
	Projects map[string]*models.Project
	Statuses map[string]*models.Status
	Users    map[string]*models.User
	Tasks    []*models.Task
}

// Passwords of the seeded users.
const (
	AdminUsername = "test_admin"
	AdminPassword = "admin-password"
	UserPassword  = "user-password"
)

// SeedTracker creates projects TEST and IT, statuses NEW, IN PROGRESS and
// DONE, users test_admin, test_user_1 and test_user_2, and when withTasks
// is set ten tasks: "task #0".."task #4" in each project, each with two
// descriptions "description#1 for task<n>" and "description#2 for task<n>".
// test_admin is the reporter of every task and test_user_2 the assignee.
func SeedTracker(t *testing.T, repo *database.Repository, withTasks bool) *Fixture {
	t.Helper()
	f := &Fixture{
		Repo:     repo,
		Projects: map[string]*models.Project{},
		Statuses: map[string]*models.Status{},
		Users:    map[string]*models.User{},
	}

	for _, name := range []string{"TEST", "IT"} {
		f.Projects[name] = CreateTestProject(t, repo, name)
	}
	for _, name := range []string{"NEW", "IN PROGRESS", "DONE"} {
		f.Statuses[name] = CreateTestStatus(t, repo, name)
	}
	f.Users[AdminUsername] = CreateTestUser(t, repo, AdminUsername, AdminPassword)
	for _, name := range []string{"test_user_1", "test_user_2"} {
		f.Users[name] = CreateTestUser(t, repo, name, UserPassword)
	}

	if !withTasks {
		return f
	}
	for _, project := range []string{"TEST", "IT"} {
		for i := range 5 {
			f.Tasks = append(f.Tasks, CreateTestTask(t, repo, TaskSeed{
				Title:    fmt.Sprintf("task #%d", i),
				Project:  f.Projects[project],
				Status:   f.Statuses["NEW"],
				Assignee: f.Users["test_user_2"],
				Reporter: f.Users[AdminUsername],
				Descriptions: []string{
					fmt.Sprintf("description#1 for task%d", i),
					fmt.Sprintf("description#2 for task%d", i),
				},
			}))
		}
	}
	return f
}
