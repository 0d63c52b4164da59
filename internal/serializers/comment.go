package serializers

import (
	"context"

	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/resolvers"
)

// CommentSerializer validates comment writes and renders comments.
type CommentSerializer struct {
	author resolvers.UserResolver
	task   resolvers.TaskResolver
	text   resolvers.Text
}

func NewCommentSerializer(store Lookups) *CommentSerializer {
	return &CommentSerializer{
		author: resolvers.UserResolver{Users: store},
		task:   resolvers.TaskResolver{Tasks: store},
		text:   resolvers.Text{},
	}
}

// CommentInput holds the validated fields of a comment write. A nil field
// was not submitted.
type CommentInput struct {
	Author *models.User
	Task   *models.Task
	Text   *string
}

// Validate checks p. author and task are required on a full write; text is
// optional.
func (s *CommentSerializer) Validate(ctx context.Context, p Payload, partial bool) (*CommentInput, error) {
	errs := ValidationErrors{}
	in := &CommentInput{}
	required := !partial

	var err error
	if in.Author, _, err = decodeField(ctx, p, "author", required, s.author.Decode, errs); err != nil {
		return nil, err
	}

	text, ok, err := decodeField(ctx, p, "text", false, s.text.Decode, errs)
	if err != nil {
		return nil, err
	}
	if ok {
		in.Text = &text
	}

	if in.Task, _, err = decodeField(ctx, p, "task", required, s.task.Decode, errs); err != nil {
		return nil, err
	}

	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// CommentRepresentation is the response body of a comment.
type CommentRepresentation struct {
	ID      int       `json:"id"`
	Author  any       `json:"author"`
	Created Timestamp `json:"created"`
	Text    string    `json:"text"`
	Task    int       `json:"task"`
}

func (s *CommentSerializer) Represent(c *models.Comment) CommentRepresentation {
	return CommentRepresentation{
		ID:      c.ID,
		Author:  s.author.Encode(c.Author),
		Created: Timestamp(c.Created),
		Text:    c.Text,
		Task:    c.TaskID,
	}
}

// RepresentList renders comments in the order given; an empty list renders as [].
func (s *CommentSerializer) RepresentList(comments []*models.Comment) []CommentRepresentation {
	out := make([]CommentRepresentation, 0, len(comments))
	for _, c := range comments {
		out = append(out, s.Represent(c))
	}
	return out
}
