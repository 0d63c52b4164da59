package serializers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/testutil"
)

func payload(t *testing.T, body string) Payload {
	t.Helper()
	p, err := ParsePayload([]byte(body))
	require.NoError(t, err)
	return p
}

func validationErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func TestTaskSerializer_ValidCreate(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	f := testutil.SeedTracker(t, repo, false)
	s := NewTaskSerializer(repo)

	in, err := s.Validate(context.Background(), payload(t, `{
		"title": "New task",
		"project": "TEST",
		"status": "NEW",
		"assignee": "test_user_1",
		"reporter": "test_admin",
		"descriptions": ["first", "second"],
		"comments": "ignored",
		"id": 999
	}`), false)
	require.NoError(t, err)

	assert.Equal(t, "New task", *in.Title)
	assert.Equal(t, f.Projects["TEST"].ID, in.Project.ID)
	assert.Equal(t, f.Statuses["NEW"].ID, in.Status.ID)
	assert.Equal(t, f.Users["test_user_1"].ID, in.Assignee.ID)
	assert.Equal(t, f.Users["test_admin"].ID, in.Reporter.ID)
	assert.Equal(t, []string{"first", "second"}, in.Descriptions)
}

func TestTaskSerializer_CreateErrors(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	testutil.SeedTracker(t, repo, false)
	s := NewTaskSerializer(repo)
	ctx := context.Background()

	t.Run("wrong references", func(t *testing.T) {
		_, err := s.Validate(ctx, payload(t, `{
			"title": "New task",
			"project": "another_project",
			"status": "another_status",
			"assignee": "another_user",
			"reporter": "another_user",
			"descriptions": [123, "description #2"]
		}`), false)

		assert.Equal(t, ValidationErrors{
			"project":      {"Project another_project not found"},
			"status":       {"Status another_status not found"},
			"assignee":     {"User another_user not found"},
			"reporter":     {"User another_user not found"},
			"descriptions": {"123: description must be a string or empty"},
		}, validationErrors(t, err))
	})

	t.Run("all null", func(t *testing.T) {
		_, err := s.Validate(ctx, payload(t, `{
			"title": null, "project": null, "status": null,
			"assignee": null, "reporter": null, "descriptions": null
		}`), false)

		verrs := validationErrors(t, err)
		assert.Len(t, verrs, 6)
		for field, msgs := range verrs {
			assert.Equal(t, []string{"This field may not be null."}, msgs, field)
		}
	})

	t.Run("all missing", func(t *testing.T) {
		_, err := s.Validate(ctx, Payload{}, false)

		verrs := validationErrors(t, err)
		assert.Len(t, verrs, 6)
		assert.Equal(t, []string{"This field is required."}, verrs["descriptions"])
	})

	t.Run("title rules", func(t *testing.T) {
		long, _ := json.Marshal(strings.Repeat("a", models.MaxTaskTitleLength+1))
		_, err := s.Validate(ctx, Payload{"title": long}, true)
		assert.Equal(t, []string{"Ensure this field has no more than 100 characters."}, validationErrors(t, err)["title"])

		_, err = s.Validate(ctx, payload(t, `{"title": ""}`), true)
		assert.Equal(t, []string{"This field may not be blank."}, validationErrors(t, err)["title"])
	})
}

func TestTaskSerializer_Partial(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	f := testutil.SeedTracker(t, repo, false)
	s := NewTaskSerializer(repo)
	ctx := context.Background()

	t.Run("only submitted fields are checked", func(t *testing.T) {
		_, err := s.Validate(ctx, payload(t, `{"project": "another_project", "reporter": "another_user"}`), true)

		assert.Equal(t, ValidationErrors{
			"project":  {"Project another_project not found"},
			"reporter": {"User another_user not found"},
		}, validationErrors(t, err))
	})

	t.Run("omitted fields stay nil", func(t *testing.T) {
		in, err := s.Validate(ctx, payload(t, `{"status": "DONE"}`), true)
		require.NoError(t, err)

		assert.Equal(t, f.Statuses["DONE"].ID, in.Status.ID)
		assert.Nil(t, in.Title)
		assert.Nil(t, in.Assignee)
		assert.Nil(t, in.Descriptions)
	})

	t.Run("empty patch is valid", func(t *testing.T) {
		_, err := s.Validate(ctx, Payload{}, true)
		assert.NoError(t, err)
	})
}

func TestTaskSerializer_Represent(t *testing.T) {
	s := NewTaskSerializer(testutil.SetupTestRepo(t))
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	task := &models.Task{
		ID:       4,
		Title:    "orphan",
		Project:  &models.Project{Name: "TEST"},
		Reporter: &models.User{Username: "test_admin"},
		Created:  created,
		Updated:  created.Add(1500 * time.Microsecond),
		Descriptions: []*models.Description{
			{Text: "one"}, {Text: "two"},
		},
	}

	body, err := json.Marshal(s.Represent(task))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 4,
		"title": "orphan",
		"project": "TEST",
		"status": null,
		"assignee": null,
		"reporter": "test_admin",
		"created": "2024-01-02T03:04:05.000000Z",
		"updated": "2024-01-02T03:04:05.001500Z",
		"descriptions": ["one", "two"],
		"comments": []
	}`, string(body))
}
