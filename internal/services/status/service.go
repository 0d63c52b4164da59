// Package status manages the workflow states a task can be in.
package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// Service defines status operations
type Service interface {
	GetAllStatuses(ctx context.Context) ([]*models.Status, error)
	GetStatusByName(ctx context.Context, name string) (*models.Status, error)
	CreateStatus(ctx context.Context, name string) (*models.Status, error)
	DeleteStatus(ctx context.Context, id int, force bool) error
}

type repository interface {
	database.StatusRepository
	ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error)
}

type service struct {
	repo repository
}

// NewService creates a new status service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAllStatuses(ctx context.Context) ([]*models.Status, error) {
	return s.repo.GetAllStatuses(ctx)
}

func (s *service) GetStatusByName(ctx context.Context, name string) (*models.Status, error) {
	st, err := s.repo.GetStatusByName(ctx, name)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrStatusNotFound, name)
	}
	return st, err
}

func (s *service) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxStatusNameLength {
		return nil, ErrNameTooLong
	}

	st, err := s.repo.CreateStatus(ctx, name)
	if errors.Is(err, models.ErrAlreadyExists) {
		return nil, fmt.Errorf("%w: %s", ErrStatusExists, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	return st, nil
}

// DeleteStatus removes a status. Without force it refuses while any task
// is in that status.
func (s *service) DeleteStatus(ctx context.Context, id int, force bool) error {
	if id <= 0 {
		return ErrInvalidStatusID
	}

	if !force {
		st, err := s.repo.GetStatusByID(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return ErrStatusNotFound
		}
		if err != nil {
			return err
		}
		tasks, err := s.repo.ListTasks(ctx, database.TaskFilter{
			Conditions: []database.TaskCondition{{Column: database.TaskStatusName, Mode: database.MatchExact, Value: st.Name}},
		})
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if len(tasks) > 0 {
			return fmt.Errorf("%w (%d tasks)", ErrStatusInUse, len(tasks))
		}
	}

	err := s.repo.DeleteStatus(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return ErrStatusNotFound
	}
	return err
}
