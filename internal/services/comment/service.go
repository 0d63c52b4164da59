package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/clock"
	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// Service defines all comment-related business operations
type Service interface {
	ListComments(ctx context.Context) ([]*models.Comment, error)
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// CreateCommentRequest encapsulates data for creating a comment
type CreateCommentRequest struct {
	TaskID   int
	AuthorID int
	Text     string
}

// UpdateCommentRequest carries the fields to change; nil leaves a field as is
type UpdateCommentRequest struct {
	ID       int
	TaskID   *int
	AuthorID *int
	Text     *string
}

type service struct {
	repo  database.DataStore
	clock clock.Clock
}

// NewService creates a new comment service
func NewService(repo database.DataStore, c clock.Clock) Service {
	if c == nil {
		c = clock.System
	}
	return &service{repo: repo, clock: c}
}

// ListComments returns every comment, newest first
func (s *service) ListComments(ctx context.Context) ([]*models.Comment, error) {
	return s.repo.GetAllComments(ctx)
}

func (s *service) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	if id <= 0 {
		return nil, ErrInvalidCommentID
	}
	c, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return c, nil
}

// CreateComment stores the comment and refreshes the parent task's updated
// timestamp in the same transaction
func (s *service) CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.AuthorID <= 0 {
		return nil, ErrInvalidAuthorID
	}

	var commentID int
	err := database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		c := &models.Comment{
			TaskID:   req.TaskID,
			AuthorID: req.AuthorID,
			Text:     req.Text,
			Created:  s.clock.Now(),
		}
		if err := tx.CreateComment(ctx, c); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		if err := tx.TouchTask(ctx, req.TaskID, s.clock.Now()); err != nil {
			return fmt.Errorf("failed to touch task %d: %w", req.TaskID, err)
		}
		commentID = c.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetComment(ctx, commentID)
}

// UpdateComment applies the submitted fields. The parent task is left alone.
func (s *service) UpdateComment(ctx context.Context, req UpdateCommentRequest) (*models.Comment, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidCommentID
	}
	if req.TaskID != nil && *req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.AuthorID != nil && *req.AuthorID <= 0 {
		return nil, ErrInvalidAuthorID
	}

	c, err := s.repo.GetCommentByID(ctx, req.ID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if req.TaskID == nil && req.AuthorID == nil && req.Text == nil {
		return c, nil
	}

	if req.TaskID != nil {
		c.TaskID = *req.TaskID
	}
	if req.AuthorID != nil {
		c.AuthorID = *req.AuthorID
	}
	if req.Text != nil {
		c.Text = *req.Text
	}
	if err := s.repo.UpdateComment(ctx, c); err != nil {
		return nil, translateNotFound(err)
	}
	return s.GetComment(ctx, req.ID)
}

func (s *service) DeleteComment(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidCommentID
	}
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		return translateNotFound(err)
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrCommentNotFound, err)
	}
	return err
}
