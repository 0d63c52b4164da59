package serializers

import (
	"context"

	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/resolvers"
)

// Lookups is the read access the serializers need to resolve references.
type Lookups interface {
	resolvers.ProjectLookup
	resolvers.StatusLookup
	resolvers.UserLookup
	resolvers.GroupLookup
	resolvers.TaskLookup
}

// TaskSerializer validates task writes and renders tasks.
type TaskSerializer struct {
	title        resolvers.Text
	project      resolvers.ProjectResolver
	status       resolvers.StatusResolver
	user         resolvers.UserResolver
	descriptions resolvers.Many[string]
	comments     *CommentSerializer
}

// NewTaskSerializer creates a TaskSerializer resolving references through store.
func NewTaskSerializer(store Lookups) *TaskSerializer {
	return &TaskSerializer{
		title:        resolvers.Text{MaxLength: models.MaxTaskTitleLength},
		project:      resolvers.ProjectResolver{Projects: store},
		status:       resolvers.StatusResolver{Statuses: store},
		user:         resolvers.UserResolver{Users: store},
		descriptions: resolvers.Many[string]{Child: resolvers.Description{}},
		comments:     NewCommentSerializer(store),
	}
}

// TaskInput holds the validated fields of a task write. A nil field was
// not submitted.
type TaskInput struct {
	Title        *string
	Project      *models.Project
	Status       *models.Status
	Assignee     *models.User
	Reporter     *models.User
	Descriptions []string // nil when not submitted
}

// Validate checks every field of p and returns all failures at once as
// ValidationErrors. With partial set, only submitted fields are checked;
// otherwise all six fields are required.
func (s *TaskSerializer) Validate(ctx context.Context, p Payload, partial bool) (*TaskInput, error) {
	errs := ValidationErrors{}
	in := &TaskInput{}
	required := !partial

	title, ok, err := decodeField(ctx, p, "title", required, s.title.Decode, errs)
	if err != nil {
		return nil, err
	}
	if ok {
		in.Title = &title
	}

	if in.Project, _, err = decodeField(ctx, p, "project", required, s.project.Decode, errs); err != nil {
		return nil, err
	}
	if in.Status, _, err = decodeField(ctx, p, "status", required, s.status.Decode, errs); err != nil {
		return nil, err
	}
	if in.Assignee, _, err = decodeField(ctx, p, "assignee", required, s.user.Decode, errs); err != nil {
		return nil, err
	}
	if in.Reporter, _, err = decodeField(ctx, p, "reporter", required, s.user.Decode, errs); err != nil {
		return nil, err
	}
	if in.Descriptions, _, err = decodeField(ctx, p, "descriptions", required, s.descriptions.Decode, errs); err != nil {
		return nil, err
	}

	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// TaskRepresentation is the response body of a task.
type TaskRepresentation struct {
	ID           int                     `json:"id"`
	Title        string                  `json:"title"`
	Project      any                     `json:"project"`
	Status       any                     `json:"status"`
	Assignee     any                     `json:"assignee"`
	Reporter     any                     `json:"reporter"`
	Created      Timestamp               `json:"created"`
	Updated      Timestamp               `json:"updated"`
	Descriptions any                     `json:"descriptions"`
	Comments     []CommentRepresentation `json:"comments"`
}

// Represent renders t. Dangling references render as null.
func (s *TaskSerializer) Represent(t *models.Task) TaskRepresentation {
	texts := make([]string, 0, len(t.Descriptions))
	for _, d := range t.Descriptions {
		texts = append(texts, d.Text)
	}

	return TaskRepresentation{
		ID:           t.ID,
		Title:        t.Title,
		Project:      s.project.Encode(t.Project),
		Status:       s.status.Encode(t.Status),
		Assignee:     s.user.Encode(t.Assignee),
		Reporter:     s.user.Encode(t.Reporter),
		Created:      Timestamp(t.Created),
		Updated:      Timestamp(t.Updated),
		Descriptions: s.descriptions.Encode(texts),
		Comments:     s.comments.RepresentList(t.Comments),
	}
}

// RepresentList renders tasks; an empty list renders as [].
func (s *TaskSerializer) RepresentList(tasks []*models.Task) []TaskRepresentation {
	out := make([]TaskRepresentation, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.Represent(t))
	}
	return out
}
