package resolvers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

type fakeStore struct {
	projects map[string]*models.Project
	tasks    map[int]*models.Task
	fail     error
}

func (f *fakeStore) GetProjectByName(_ context.Context, name string) (*models.Project, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if p, ok := f.projects[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("project %q: %w", name, models.ErrNotFound)
}

func (f *fakeStore) GetTaskByID(_ context.Context, id int) (*models.Task, error) {
	if t, ok := f.tasks[id]; ok {
		return t, nil
	}
	return nil, models.ErrNotFound
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: map[string]*models.Project{"TEST": {ID: 1, Name: "TEST"}, "123": {ID: 2, Name: "123"}},
		tasks:    map[int]*models.Task{7: {ID: 7, Title: "seven"}},
	}
}

func fieldError(t *testing.T, err error) *FieldError {
	t.Helper()
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected a field error, got %v", err)
	return fe
}

func TestProjectResolver(t *testing.T) {
	ctx := context.Background()
	r := ProjectResolver{Projects: newFakeStore()}

	t.Run("decodes by name", func(t *testing.T) {
		p, err := r.Decode(ctx, json.RawMessage(`"TEST"`))
		require.NoError(t, err)
		assert.Equal(t, 1, p.ID)
	})

	t.Run("numbers are looked up as text", func(t *testing.T) {
		p, err := r.Decode(ctx, json.RawMessage(`123`))
		require.NoError(t, err)
		assert.Equal(t, 2, p.ID)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.Decode(ctx, json.RawMessage(`"another_project"`))
		fe := fieldError(t, err)
		assert.Equal(t, KindNotFound, fe.Kind)
		assert.Equal(t, "Project another_project not found", fe.Message)
	})

	t.Run("objects are rejected", func(t *testing.T) {
		_, err := r.Decode(ctx, json.RawMessage(`{"name":"TEST"}`))
		assert.Equal(t, KindInvalidType, fieldError(t, err).Kind)
	})

	t.Run("storage failures are not field errors", func(t *testing.T) {
		store := newFakeStore()
		store.fail = errors.New("disk on fire")
		_, err := ProjectResolver{Projects: store}.Decode(ctx, json.RawMessage(`"TEST"`))
		require.Error(t, err)
		_, ok := Messages(err)
		assert.False(t, ok)
	})

	t.Run("encode", func(t *testing.T) {
		assert.Equal(t, "TEST", r.Encode(&models.Project{Name: "TEST"}))
		assert.Nil(t, r.Encode(nil))
	})
}

func TestTaskResolver(t *testing.T) {
	ctx := context.Background()
	r := TaskResolver{Tasks: newFakeStore()}

	tests := []struct {
		name    string
		raw     string
		wantID  int
		wantErr string
	}{
		{"integer", `7`, 7, ""},
		{"numeric string", `"7"`, 7, ""},
		{"float", `7.5`, 0, "7.5: task id must be integer"},
		{"word", `"abc"`, 0, "abc: task id must be integer"},
		{"bool", `true`, 0, "true: task id must be integer"},
		{"missing task", `42`, 0, "Task 42 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := r.Decode(ctx, json.RawMessage(tt.raw))
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, fieldError(t, err).Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, task.ID)
		})
	}

	assert.Equal(t, 7, r.Encode(&models.Task{ID: 7}))
}

func TestDescriptionsMany(t *testing.T) {
	ctx := context.Background()
	m := Many[string]{Child: Description{}}

	t.Run("keeps order", func(t *testing.T) {
		got, err := m.Decode(ctx, json.RawMessage(`["first", "", "third"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "", "third"}, got)
	})

	t.Run("collects every bad element", func(t *testing.T) {
		_, err := m.Decode(ctx, json.RawMessage(`[123, "ok", {"a": 1}]`))
		msgs, ok := Messages(err)
		require.True(t, ok)
		assert.Equal(t, []string{
			"123: description must be a string or empty",
			`{"a":1}: description must be a string or empty`,
		}, msgs)
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := m.Decode(ctx, json.RawMessage(`"description"`))
		assert.Equal(t, `Expected a list of items but got type "str".`, fieldError(t, err).Message)
	})

	t.Run("encode empty", func(t *testing.T) {
		assert.Equal(t, []any{}, m.Encode(nil))
	})
}

func TestText(t *testing.T) {
	ctx := context.Background()
	title := Text{MaxLength: 10}

	got, err := title.Decode(ctx, json.RawMessage(`"  hello  "`))
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = title.Decode(ctx, json.RawMessage(`42`))
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	_, err = title.Decode(ctx, json.RawMessage(`"   "`))
	assert.Equal(t, "This field may not be blank.", fieldError(t, err).Message)

	_, err = title.Decode(ctx, json.RawMessage(`"this is far too long"`))
	assert.Equal(t, "Ensure this field has no more than 10 characters.", fieldError(t, err).Message)

	_, err = title.Decode(ctx, json.RawMessage(`["x"]`))
	assert.Equal(t, "Not a valid string.", fieldError(t, err).Message)

	blank, err := Text{AllowBlank: true}.Decode(ctx, json.RawMessage(`""`))
	require.NoError(t, err)
	assert.Empty(t, blank)
}

func TestEmail(t *testing.T) {
	ctx := context.Background()
	e := Email{MaxLength: 254}

	got, err := e.Decode(ctx, json.RawMessage(`"alice@example.com"`))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	got, err = e.Decode(ctx, json.RawMessage(`""`))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = e.Decode(ctx, json.RawMessage(`"not-an-email"`))
	assert.Equal(t, "Enter a valid email address.", fieldError(t, err).Message)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(json.RawMessage(` null `)))
	assert.False(t, IsNull(json.RawMessage(`"null"`)))
}
