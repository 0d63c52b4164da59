package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

func TestProjectRepo_CRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	p, err := repo.CreateProject(ctx, "TEST")
	require.NoError(t, err)
	assert.Positive(t, p.ID)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := repo.CreateProject(ctx, "TEST")
		assert.ErrorIs(t, err, models.ErrAlreadyExists)
	})

	t.Run("lookup by name", func(t *testing.T) {
		got, err := repo.GetProjectByName(ctx, "TEST")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)

		_, err = repo.GetProjectByName(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("rename and delete", func(t *testing.T) {
		require.NoError(t, repo.UpdateProject(ctx, p.ID, "OPS"))
		got, err := repo.GetProjectByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "OPS", got.Name)

		require.NoError(t, repo.DeleteProject(ctx, p.ID))
		assert.ErrorIs(t, repo.DeleteProject(ctx, p.ID), models.ErrNotFound)
	})
}

func TestStatusRepo_List(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"NEW", "IN PROGRESS", "DONE"} {
		_, err := repo.CreateStatus(ctx, name)
		require.NoError(t, err)
	}

	statuses, err := repo.GetAllStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "NEW", statuses[0].Name)
	assert.Equal(t, "DONE", statuses[2].Name)
}

func TestUserRepo_Groups(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	admins, err := repo.CreateGroup(ctx, "admins")
	require.NoError(t, err)
	devs, err := repo.CreateGroup(ctx, "devs")
	require.NoError(t, err)

	u := &models.User{Username: "alice", Email: "alice@example.com", DateJoined: baseTime}
	require.NoError(t, repo.CreateUser(ctx, u))
	require.NoError(t, repo.SetUserGroups(ctx, u.ID, []int{admins.ID, devs.ID}))

	got, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "admins", got.Groups[0].Name)
	assert.True(t, baseTime.Equal(got.DateJoined))

	require.NoError(t, repo.DeleteGroup(ctx, admins.ID))
	got, err = repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "devs", got.Groups[0].Name)
}

func TestUserRepo_ListNewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		u := &models.User{Username: name, DateJoined: baseTime.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.CreateUser(ctx, u))
	}

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "third", users[0].Username)
	assert.Equal(t, "first", users[2].Username)
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	f := seedFixture(t, repo)
	ctx := context.Background()

	task := f.newTask("write docs", "TEST", "NEW", "alice", "bob", baseTime)
	require.NoError(t, repo.CreateTask(ctx, task))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write docs", got.Title)
	require.NotNil(t, got.Project)
	assert.Equal(t, "TEST", got.Project.Name)
	assert.Equal(t, "NEW", got.Status.Name)
	assert.Equal(t, "alice", got.Assignee.Username)
	assert.Equal(t, "bob", got.Reporter.Username)
	assert.True(t, baseTime.Equal(got.Created))

	_, err = repo.GetTaskByID(ctx, task.ID+100)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTaskRepo_DanglingReferences(t *testing.T) {
	repo := setupTestRepo(t)
	f := seedFixture(t, repo)
	ctx := context.Background()

	task := f.newTask("orphan", "TEST", "NEW", "alice", "bob", baseTime)
	require.NoError(t, repo.CreateTask(ctx, task))

	require.NoError(t, repo.DeleteProject(ctx, f.projects["TEST"].ID))
	require.NoError(t, repo.DeleteUser(ctx, f.users["alice"].ID))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Project)
	assert.Nil(t, got.Assignee)
	assert.Equal(t, f.projects["TEST"].ID, got.ProjectID)
	assert.NotNil(t, got.Status)
	assert.NotNil(t, got.Reporter)
}

func TestTaskRepo_DeleteCascades(t *testing.T) {
	repo := setupTestRepo(t)
	f := seedFixture(t, repo)
	ctx := context.Background()

	task := f.newTask("cascade", "TEST", "NEW", "alice", "bob", baseTime)
	require.NoError(t, repo.CreateTask(ctx, task))
	_, err := repo.CreateDescription(ctx, task.ID, "first", baseTime)
	require.NoError(t, err)
	require.NoError(t, repo.CreateComment(ctx, &models.Comment{TaskID: task.ID, AuthorID: f.users["bob"].ID, Text: "hi", Created: baseTime}))

	require.NoError(t, repo.DeleteTask(ctx, task.ID))

	descriptions, err := repo.GetDescriptionsByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, descriptions)

	comments, err := repo.GetCommentsByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestTaskRepo_UpdateAndTouch(t *testing.T) {
	repo := setupTestRepo(t)
	f := seedFixture(t, repo)
	ctx := context.Background()

	task := f.newTask("move me", "TEST", "NEW", "alice", "bob", baseTime)
	require.NoError(t, repo.CreateTask(ctx, task))

	task.StatusID = f.statuses["DONE"].ID
	task.Updated = baseTime.Add(time.Minute)
	require.NoError(t, repo.UpdateTask(ctx, task))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "DONE", got.Status.Name)
	assert.True(t, got.Updated.After(got.Created))

	later := baseTime.Add(time.Hour)
	require.NoError(t, repo.TouchTask(ctx, task.ID, later))
	got, err = repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, later.Equal(got.Updated))

	assert.ErrorIs(t, repo.TouchTask(ctx, 999, later), models.ErrNotFound)
}

func TestCommentRepo_NewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	f := seedFixture(t, repo)
	ctx := context.Background()

	task := f.newTask("chatty", "TEST", "NEW", "alice", "bob", baseTime)
	require.NoError(t, repo.CreateTask(ctx, task))

	for i, text := range []string{"one", "two", "three"} {
		c := &models.Comment{
			TaskID:   task.ID,
			AuthorID: f.users["alice"].ID,
			Text:     text,
			Created:  baseTime.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.CreateComment(ctx, c))
	}

	comments, err := repo.GetCommentsByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "three", comments[0].Text)
	assert.Equal(t, "one", comments[2].Text)
	assert.Equal(t, "alice", comments[0].Author.Username)

	all, err := repo.GetAllComments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	err := WithTx(ctx, repo, func(tx DataStore) error {
		if _, err := tx.CreateProject(ctx, "TEMP"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.GetProjectByName(ctx, "TEMP")
	assert.ErrorIs(t, err, models.ErrNotFound)

	t.Run("nested begin is rejected", func(t *testing.T) {
		err := WithTx(ctx, repo, func(tx DataStore) error {
			_, err := tx.BeginTx(ctx)
			return err
		})
		assert.ErrorIs(t, err, ErrNestedTx)
	})
}
