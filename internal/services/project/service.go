package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	GetTaskCount(ctx context.Context, projectID int) (int, error)

	// Write operations
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	DeleteProject(ctx context.Context, id int, force bool) error
}

// repository defines the data access methods needed by the project service
type repository interface {
	database.ProjectRepository
	ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error)
}

type service struct {
	repo repository
}

// NewService creates a new project service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// GetAllProjects retrieves all projects
func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetAllProjects(ctx)
}

func (s *service) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	p, err := s.repo.GetProjectByName(ctx, name)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return p, err
}

// GetTaskCount returns the number of tasks referencing a project
func (s *service) GetTaskCount(ctx context.Context, projectID int) (int, error) {
	if projectID <= 0 {
		return 0, ErrInvalidProjectID
	}
	p, err := s.repo.GetProjectByID(ctx, projectID)
	if errors.Is(err, models.ErrNotFound) {
		return 0, ErrProjectNotFound
	}
	if err != nil {
		return 0, err
	}

	tasks, err := s.repo.ListTasks(ctx, database.TaskFilter{
		Conditions: []database.TaskCondition{{Column: database.TaskProjectName, Mode: database.MatchExact, Value: p.Name}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return len(tasks), nil
}

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxProjectNameLength {
		return nil, ErrNameTooLong
	}

	p, err := s.repo.CreateProject(ctx, name)
	if errors.Is(err, models.ErrAlreadyExists) {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// DeleteProject deletes a project. Tasks keep their reference and render
// it as null afterwards, so deleting a project that is still in use
// requires force.
func (s *service) DeleteProject(ctx context.Context, id int, force bool) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}

	if !force {
		count, err := s.GetTaskCount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w (%d tasks)", ErrProjectHasTasks, count)
		}
	}

	err := s.repo.DeleteProject(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}
