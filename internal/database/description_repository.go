package database

import (
	"context"
	"fmt"
	"time"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// DescriptionRepo handles the description paragraphs of tasks.
type DescriptionRepo struct {
	conn
}

func (r *DescriptionRepo) CreateDescription(ctx context.Context, taskID int, text string, created time.Time) (*models.Description, error) {
	id, err := r.insert(ctx,
		`INSERT INTO descriptions (task_id, text, created) VALUES (?, ?, ?)`,
		taskID, text, created,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert description for task %d: %w", taskID, err)
	}
	return &models.Description{ID: id, TaskID: taskID, Text: text, Created: created}, nil
}

// GetDescriptionsByTask returns a task's descriptions in insertion order
func (r *DescriptionRepo) GetDescriptionsByTask(ctx context.Context, taskID int) ([]*models.Description, error) {
	rows, err := r.query(ctx,
		`SELECT id, task_id, text, created FROM descriptions WHERE task_id = ? ORDER BY id`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions for task %d: %w", taskID, err)
	}
	defer closeRows(rows)

	descriptions := make([]*models.Description, 0, 4)
	for rows.Next() {
		d := &models.Description{}
		if err := rows.Scan(&d.ID, &d.TaskID, &d.Text, &d.Created); err != nil {
			return nil, fmt.Errorf("failed to scan description row: %w", err)
		}
		d.Created = d.Created.UTC()
		descriptions = append(descriptions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating description rows: %w", err)
	}
	return descriptions, nil
}

func (r *DescriptionRepo) DeleteDescriptionsByTask(ctx context.Context, taskID int) error {
	if _, err := r.exec(ctx, `DELETE FROM descriptions WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("failed to delete descriptions for task %d: %w", taskID, err)
	}
	return nil
}
