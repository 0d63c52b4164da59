package task

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/thenoetrevino/tasktracker/internal/clock"
	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error)
	GetTask(ctx context.Context, id int) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// CreateTaskRequest encapsulates data for creating a task. Descriptions
// are stored in the order given.
type CreateTaskRequest struct {
	Title        string
	ProjectID    int
	StatusID     int
	AssigneeID   int
	ReporterID   int
	Descriptions []string
}

// UpdateTaskRequest encapsulates the mutable fields of a task. Only status
// and assignee can change after creation; nil leaves a field as is.
type UpdateTaskRequest struct {
	TaskID     int
	StatusID   *int
	AssigneeID *int
}

// service implements Service
type service struct {
	repo  database.DataStore
	clock clock.Clock
}

// NewService creates a new task service
func NewService(repo database.DataStore, c clock.Clock) Service {
	if c == nil {
		c = clock.System
	}
	return &service{repo: repo, clock: c}
}

// ListTasks returns the tasks matching filter, ordered by ID, each with its
// descriptions and comments loaded
func (s *service) ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if err := s.loadChildren(ctx, task); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// GetTask returns one task with its descriptions and comments
func (s *service) GetTask(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if err := s.loadChildren(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) loadChildren(ctx context.Context, task *models.Task) error {
	var err error
	if task.Descriptions, err = s.repo.GetDescriptionsByTask(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to load descriptions: %w", err)
	}
	if task.Comments, err = s.repo.GetCommentsByTask(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	return nil
}

// CreateTask stores the task row and its descriptions in one transaction
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validateCreateTask(req); err != nil {
		return nil, err
	}

	var taskID int
	err := database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		now := s.clock.Now()
		task := &models.Task{
			Title:      req.Title,
			ProjectID:  req.ProjectID,
			StatusID:   req.StatusID,
			AssigneeID: req.AssigneeID,
			ReporterID: req.ReporterID,
			Created:    now,
			Updated:    now,
		}
		if err := tx.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		for i, text := range req.Descriptions {
			if _, err := tx.CreateDescription(ctx, task.ID, text, now); err != nil {
				return fmt.Errorf("failed to create description %d: %w", i, err)
			}
		}
		taskID = task.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTask(ctx, taskID)
}

// UpdateTask applies a new status and/or assignee. When neither is given
// nothing is written and the task is returned unchanged; otherwise the
// row is saved and updated moves forward, even if the values are the same.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.StatusID != nil && *req.StatusID <= 0 {
		return nil, ErrInvalidStatusID
	}
	if req.AssigneeID != nil && *req.AssigneeID <= 0 {
		return nil, ErrInvalidAssigneeID
	}

	task, err := s.repo.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if req.StatusID == nil && req.AssigneeID == nil {
		return s.GetTask(ctx, req.TaskID)
	}

	if req.StatusID != nil {
		task.StatusID = *req.StatusID
	}
	if req.AssigneeID != nil {
		task.AssigneeID = *req.AssigneeID
	}
	task.Updated = s.clock.Now()

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, translateNotFound(err)
	}
	return s.GetTask(ctx, req.TaskID)
}

// DeleteTask removes a task with its descriptions and comments
func (s *service) DeleteTask(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}

	return database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		if err := tx.DeleteDescriptionsByTask(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteCommentsByTask(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteTask(ctx, id); err != nil {
			return translateNotFound(err)
		}
		return nil
	})
}

// validateCreateTask validates a CreateTaskRequest
func (s *service) validateCreateTask(req CreateTaskRequest) error {
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(req.Title) > models.MaxTaskTitleLength {
		return ErrTitleTooLong
	}
	if req.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	if req.StatusID <= 0 {
		return ErrInvalidStatusID
	}
	if req.AssigneeID <= 0 {
		return ErrInvalidAssigneeID
	}
	if req.ReporterID <= 0 {
		return ErrInvalidReporterID
	}
	return nil
}

// translateNotFound maps a storage miss to ErrTaskNotFound, keeping
// models.ErrNotFound in the chain.
func translateNotFound(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrTaskNotFound, err)
	}
	return err
}
