package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentBody struct {
	ID      int     `json:"id"`
	Author  *string `json:"author"`
	Created string  `json:"created"`
	Text    string  `json:"text"`
	Task    int     `json:"task"`
}

func commentPath(id int) string {
	return fmt.Sprintf("/api/comment/%d/", id)
}

func TestCreateComment_TouchesTask(t *testing.T) {
	env := setupTestEnv(t, true)
	task := env.Tasks[0]
	before := decode[taskBody](t, env.do(t, http.MethodGet, taskPath(task.ID), nil))

	w := env.do(t, http.MethodPost, "/api/comment/", map[string]any{
		"author": "test_user_1",
		"task":   task.ID,
		"text":   "Comment #1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	comment := decode[commentBody](t, w)
	assert.Equal(t, "test_user_1", *comment.Author)
	assert.Equal(t, task.ID, comment.Task)
	assert.Equal(t, "Comment #1", comment.Text)

	after := decode[taskBody](t, env.do(t, http.MethodGet, taskPath(task.ID), nil))
	assert.True(t, parseTimestamp(t, after.Updated).After(parseTimestamp(t, before.Updated)))
	assert.Equal(t, before.Created, after.Created)
	require.Len(t, after.Comments, 1)
	assert.Equal(t, comment.ID, after.Comments[0].ID)
}

func TestCreateComment_TaskIDAsString(t *testing.T) {
	env := setupTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/comment/", map[string]any{
		"author": "test_user_2",
		"task":   fmt.Sprint(env.Tasks[1].ID),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode[commentBody](t, w)
	assert.Equal(t, env.Tasks[1].ID, comment.Task)
	assert.Equal(t, "", comment.Text)
}

func TestCreateComment_Errors(t *testing.T) {
	env := setupTestEnv(t, true)

	tests := []struct {
		name string
		body map[string]any
		want map[string][]string
	}{
		{
			name: "missing fields",
			body: map[string]any{"text": "orphan"},
			want: map[string][]string{
				"author": {"This field is required."},
				"task":   {"This field is required."},
			},
		},
		{
			name: "unknown references",
			body: map[string]any{"author": "ghost", "task": 999},
			want: map[string][]string{
				"author": {"User ghost not found"},
				"task":   {"Task 999 not found"},
			},
		},
		{
			name: "non integer task",
			body: map[string]any{"author": "test_user_1", "task": "abc"},
			want: map[string][]string{"task": {"abc: task id must be integer"}},
		},
		{
			name: "null text",
			body: map[string]any{"author": "test_user_1", "task": env.Tasks[0].ID, "text": nil},
			want: map[string][]string{"text": {"This field may not be null."}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/comment/", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode[map[string][]string](t, w))
		})
	}

	comments := decode[[]commentBody](t, env.do(t, http.MethodGet, "/api/comment/", nil))
	assert.Empty(t, comments)
}

func TestTaskComments_NewestFirst(t *testing.T) {
	env := setupTestEnv(t, true)
	task := env.Tasks[0]

	for _, text := range []string{"first", "second"} {
		w := env.do(t, http.MethodPost, "/api/comment/", map[string]any{"author": "test_user_1", "task": task.ID, "text": text})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	got := decode[taskBody](t, env.do(t, http.MethodGet, taskPath(task.ID), nil))
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "second", got.Comments[0].Text)
	assert.True(t, parseTimestamp(t, got.Comments[0].Created).After(parseTimestamp(t, got.Comments[1].Created)))

	all := decode[[]commentBody](t, env.do(t, http.MethodGet, "/api/comment/", nil))
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Text)
}

func TestUpdateComment(t *testing.T) {
	env := setupTestEnv(t, true)
	task := env.Tasks[0]

	created := decode[commentBody](t, env.do(t, http.MethodPost, "/api/comment/", map[string]any{
		"author": "test_user_1", "task": task.ID, "text": "draft",
	}))
	before := decode[taskBody](t, env.do(t, http.MethodGet, taskPath(task.ID), nil))

	w := env.do(t, http.MethodPatch, commentPath(created.ID), map[string]any{"text": "final"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode[commentBody](t, w)
	assert.Equal(t, "final", patched.Text)
	assert.Equal(t, "test_user_1", *patched.Author)
	assert.Equal(t, created.Created, patched.Created)

	after := decode[taskBody](t, env.do(t, http.MethodGet, taskPath(task.ID), nil))
	assert.Equal(t, before.Updated, after.Updated)

	w = env.do(t, http.MethodPut, commentPath(created.ID), map[string]any{"text": "no refs"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, commentPath(created.ID), map[string]any{
		"author": "test_user_2", "task": env.Tasks[1].ID, "text": "moved",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved := decode[commentBody](t, w)
	assert.Equal(t, env.Tasks[1].ID, moved.Task)
	assert.Equal(t, "test_user_2", *moved.Author)
}

func TestDeleteComment(t *testing.T) {
	env := setupTestEnv(t, true)

	created := decode[commentBody](t, env.do(t, http.MethodPost, "/api/comment/", map[string]any{
		"author": "test_user_1", "task": env.Tasks[0].ID,
	}))

	w := env.do(t, http.MethodDelete, commentPath(created.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := env.Repo.GetCommentByID(context.Background(), created.ID)
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, commentPath(created.ID), nil).Code)
}
