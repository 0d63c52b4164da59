package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// stepClock advances one second per reading
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func setupService(t *testing.T, withTasks bool) (Service, *testutil.Fixture) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	f := testutil.SeedTracker(t, repo, withTasks)
	return NewService(repo, newStepClock()), f
}

func createRequest(f *testutil.Fixture, title string, descriptions ...string) CreateTaskRequest {
	return CreateTaskRequest{
		Title:        title,
		ProjectID:    f.Projects["TEST"].ID,
		StatusID:     f.Statuses["NEW"].ID,
		AssigneeID:   f.Users["test_user_1"].ID,
		ReporterID:   f.Users[testutil.AdminUsername].ID,
		Descriptions: descriptions,
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateTask(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)

	task, err := svc.CreateTask(context.Background(), createRequest(f, "Fix login", "first", "second"))
	require.NoError(t, err)

	assert.NotZero(t, task.ID)
	assert.Equal(t, "Fix login", task.Title)
	assert.Equal(t, "TEST", task.Project.Name)
	assert.Equal(t, "NEW", task.Status.Name)
	assert.Equal(t, "test_user_1", task.Assignee.Username)
	assert.Equal(t, testutil.AdminUsername, task.Reporter.Username)
	assert.Equal(t, task.Created, task.Updated)
	assert.Empty(t, task.Comments)

	require.Len(t, task.Descriptions, 2)
	assert.Equal(t, "first", task.Descriptions[0].Text)
	assert.Equal(t, "second", task.Descriptions[1].Text)
	assert.Equal(t, task.Created, task.Descriptions[0].Created)
}

func TestCreateTask_NoDescriptions(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)

	task, err := svc.CreateTask(context.Background(), createRequest(f, "Bare"))
	require.NoError(t, err)
	assert.Empty(t, task.Descriptions)
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)

	tests := []struct {
		name   string
		mutate func(*CreateTaskRequest)
		want   error
	}{
		{"empty title", func(r *CreateTaskRequest) { r.Title = "" }, ErrEmptyTitle},
		{"long title", func(r *CreateTaskRequest) { r.Title = strings.Repeat("a", 101) }, ErrTitleTooLong},
		{"missing project", func(r *CreateTaskRequest) { r.ProjectID = 0 }, ErrInvalidProjectID},
		{"missing status", func(r *CreateTaskRequest) { r.StatusID = 0 }, ErrInvalidStatusID},
		{"missing assignee", func(r *CreateTaskRequest) { r.AssigneeID = -1 }, ErrInvalidAssigneeID},
		{"missing reporter", func(r *CreateTaskRequest) { r.ReporterID = 0 }, ErrInvalidReporterID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest(f, "Valid")
			tt.mutate(&req)
			_, err := svc.CreateTask(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateTask_TitleAtLimit(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)

	title := strings.Repeat("é", models.MaxTaskTitleLength)
	task, err := svc.CreateTask(context.Background(), createRequest(f, title))
	require.NoError(t, err)
	assert.Equal(t, title, task.Title)
}

// ============================================================================
// READ
// ============================================================================

func TestGetTask(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, true)
	seeded := f.Tasks[3]
	testutil.CreateTestComment(t, f.Repo, seeded, f.Users["test_user_1"], "older")
	testutil.CreateTestComment(t, f.Repo, seeded, f.Users["test_user_2"], "newer")

	task, err := svc.GetTask(context.Background(), seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, seeded.Title, task.Title)
	require.Len(t, task.Descriptions, 2)
	assert.Equal(t, "description#1 for task3", task.Descriptions[0].Text)
	require.Len(t, task.Comments, 2)
	assert.Equal(t, "newer", task.Comments[0].Text)
	assert.Equal(t, "older", task.Comments[1].Text)
}

func TestGetTask_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, false)

	_, err := svc.GetTask(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetTask_InvalidID(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, false)

	_, err := svc.GetTask(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidTaskID)
}

func TestListTasks(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, true)

	tasks, err := svc.ListTasks(context.Background(), database.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 10)
	for i, task := range tasks {
		assert.Equal(t, f.Tasks[i].ID, task.ID)
		assert.Len(t, task.Descriptions, 2)
	}

	filtered, err := svc.ListTasks(context.Background(), database.TaskFilter{
		Conditions: []database.TaskCondition{{Column: database.TaskProjectName, Mode: database.MatchExact, Value: "IT"}},
	})
	require.NoError(t, err)
	assert.Len(t, filtered, 5)
}

// ============================================================================
// UPDATE
// ============================================================================

func TestUpdateTask(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, createRequest(f, "Movable", "keep me"))
	require.NoError(t, err)

	done := f.Statuses["DONE"].ID
	assignee := f.Users["test_user_2"].ID
	updated, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: created.ID, StatusID: &done, AssigneeID: &assignee})
	require.NoError(t, err)

	assert.Equal(t, "DONE", updated.Status.Name)
	assert.Equal(t, "test_user_2", updated.Assignee.Username)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Created, updated.Created)
	assert.True(t, updated.Updated.After(created.Updated))
	require.Len(t, updated.Descriptions, 1)
	assert.Equal(t, "keep me", updated.Descriptions[0].Text)
}

func TestUpdateTask_SameValuesStillBumpsUpdated(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, createRequest(f, "Same"))
	require.NoError(t, err)

	status := created.StatusID
	updated, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: created.ID, StatusID: &status})
	require.NoError(t, err)
	assert.True(t, updated.Updated.After(created.Updated))
}

func TestUpdateTask_NothingToChange(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, false)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, createRequest(f, "Untouched"))
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.Updated, updated.Updated)
}

func TestUpdateTask_Errors(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, true)
	ctx := context.Background()

	zero := 0
	_, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: 0})
	assert.ErrorIs(t, err, ErrInvalidTaskID)

	_, err = svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: f.Tasks[0].ID, StatusID: &zero})
	assert.ErrorIs(t, err, ErrInvalidStatusID)

	_, err = svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: f.Tasks[0].ID, AssigneeID: &zero})
	assert.ErrorIs(t, err, ErrInvalidAssigneeID)

	status := f.Statuses["DONE"].ID
	_, err = svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: 999, StatusID: &status})
	assert.True(t, errors.Is(err, ErrTaskNotFound))
}

// ============================================================================
// DELETE
// ============================================================================

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	svc, f := setupService(t, true)
	ctx := context.Background()
	victim := f.Tasks[0]
	testutil.CreateTestComment(t, f.Repo, victim, f.Users["test_user_1"], "bye")

	require.NoError(t, svc.DeleteTask(ctx, victim.ID))

	_, err := svc.GetTask(ctx, victim.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	descriptions, err := f.Repo.GetDescriptionsByTask(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, descriptions)

	comments, err := f.Repo.GetCommentsByTask(ctx, victim.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	remaining, err := svc.ListTasks(ctx, database.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 9)
}

func TestDeleteTask_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, false)

	err := svc.DeleteTask(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, svc.DeleteTask(context.Background(), -1), ErrInvalidTaskID)
}
