package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// StatusRepo handles all status-related database operations.
type StatusRepo struct {
	conn
}

// CreateStatus inserts a status. A duplicate name yields models.ErrAlreadyExists.
func (r *StatusRepo) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	id, err := r.insert(ctx, `INSERT INTO statuses (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert status '%s': %w", name, uniqueViolation(err))
	}
	return &models.Status{ID: id, Name: name}, nil
}

func (r *StatusRepo) GetStatusByID(ctx context.Context, id int) (*models.Status, error) {
	status := &models.Status{}
	err := r.queryRow(ctx, `SELECT id, name FROM statuses WHERE id = ?`, id).
		Scan(&status.ID, &status.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get status %d: %w", id, notFound(err))
	}
	return status, nil
}

func (r *StatusRepo) GetStatusByName(ctx context.Context, name string) (*models.Status, error) {
	status := &models.Status{}
	err := r.queryRow(ctx, `SELECT id, name FROM statuses WHERE name = ?`, name).
		Scan(&status.ID, &status.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get status '%s': %w", name, notFound(err))
	}
	return status, nil
}

func (r *StatusRepo) GetAllStatuses(ctx context.Context) ([]*models.Status, error) {
	rows, err := r.query(ctx, `SELECT id, name FROM statuses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all statuses: %w", err)
	}
	defer closeRows(rows)

	statuses := make([]*models.Status, 0, 8)
	for rows.Next() {
		status := &models.Status{}
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		statuses = append(statuses, status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status rows: %w", err)
	}
	return statuses, nil
}

func (r *StatusRepo) UpdateStatus(ctx context.Context, id int, name string) error {
	if err := r.execOne(ctx, `UPDATE statuses SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("failed to update status %d: %w", id, uniqueViolation(err))
	}
	return nil
}

// DeleteStatus removes a status. Tasks that reference it are left in place.
func (r *StatusRepo) DeleteStatus(ctx context.Context, id int) error {
	if err := r.execOne(ctx, `DELETE FROM statuses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete status %d: %w", id, err)
	}
	return nil
}
