package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	conn
}

// CreateProject inserts a project. A duplicate name yields models.ErrAlreadyExists.
func (r *ProjectRepo) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	id, err := r.insert(ctx, `INSERT INTO projects (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", name, uniqueViolation(err))
	}
	return &models.Project{ID: id, Name: name}, nil
}

// GetProjectByID retrieves a project by its ID
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	project := &models.Project{}
	err := r.queryRow(ctx, `SELECT id, name FROM projects WHERE id = ?`, id).
		Scan(&project.ID, &project.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, notFound(err))
	}
	return project, nil
}

// GetProjectByName retrieves a project by its unique name
func (r *ProjectRepo) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	project := &models.Project{}
	err := r.queryRow(ctx, `SELECT id, name FROM projects WHERE name = ?`, name).
		Scan(&project.ID, &project.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get project '%s': %w", name, notFound(err))
	}
	return project, nil
}

// GetAllProjects retrieves all projects ordered by ID
func (r *ProjectRepo) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.query(ctx, `SELECT id, name FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all projects: %w", err)
	}
	defer closeRows(rows)

	projects := make([]*models.Project, 0, 10)
	for rows.Next() {
		project := &models.Project{}
		if err := rows.Scan(&project.ID, &project.Name); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// UpdateProject renames a project
func (r *ProjectRepo) UpdateProject(ctx context.Context, id int, name string) error {
	if err := r.execOne(ctx, `UPDATE projects SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("failed to update project %d: %w", id, uniqueViolation(err))
	}
	return nil
}

// DeleteProject removes a project. Tasks that reference it are left in place.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int) error {
	if err := r.execOne(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return nil
}
