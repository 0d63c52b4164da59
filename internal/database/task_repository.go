package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// TaskRepo handles task rows. References are LEFT JOINed so a task whose
// project, status or user was deleted still loads.
type TaskRepo struct {
	conn
}

const taskSelect = `
	SELECT t.id, t.title, t.project_id, t.status_id, t.assignee_id, t.reporter_id,
	       t.created, t.updated, p.name, s.name, a.username, r.username
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN statuses s ON s.id = t.status_id
	LEFT JOIN users a ON a.id = t.assignee_id
	LEFT JOIN users r ON r.id = t.reporter_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var projectName, statusName, assigneeName, reporterName sql.NullString
	err := row.Scan(
		&task.ID, &task.Title, &task.ProjectID, &task.StatusID, &task.AssigneeID, &task.ReporterID,
		&task.Created, &task.Updated, &projectName, &statusName, &assigneeName, &reporterName,
	)
	if err != nil {
		return nil, err
	}
	task.Created = task.Created.UTC()
	task.Updated = task.Updated.UTC()

	if projectName.Valid {
		task.Project = &models.Project{ID: task.ProjectID, Name: projectName.String}
	}
	if statusName.Valid {
		task.Status = &models.Status{ID: task.StatusID, Name: statusName.String}
	}
	if assigneeName.Valid {
		task.Assignee = &models.User{ID: task.AssigneeID, Username: assigneeName.String}
	}
	if reporterName.Valid {
		task.Reporter = &models.User{ID: task.ReporterID, Username: reporterName.String}
	}
	return task, nil
}

// CreateTask inserts task and sets its ID.
func (r *TaskRepo) CreateTask(ctx context.Context, task *models.Task) error {
	id, err := r.insert(ctx, `
		INSERT INTO tasks (title, project_id, status_id, assignee_id, reporter_id, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.Title, task.ProjectID, task.StatusID, task.AssigneeID, task.ReporterID,
		task.Created, task.Updated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task '%s': %w", task.Title, err)
	}
	task.ID = id
	return nil
}

// GetTaskByID retrieves a task with its references resolved
func (r *TaskRepo) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	task, err := scanTask(r.queryRow(ctx, taskSelect+` WHERE t.id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, notFound(err))
	}
	return task, nil
}

// ListTasks retrieves the tasks matching filter ordered by ID. A task
// appears at most once however many of its descriptions match.
func (r *TaskRepo) ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error) {
	where, args, err := filter.where()
	if err != nil {
		return nil, fmt.Errorf("invalid task filter: %w", err)
	}

	query := taskSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY t.id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer closeRows(rows)

	tasks := make([]*models.Task, 0, 16)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// UpdateTask saves every column of the task row except created.
func (r *TaskRepo) UpdateTask(ctx context.Context, task *models.Task) error {
	err := r.execOne(ctx, `
		UPDATE tasks
		SET title = ?, project_id = ?, status_id = ?, assignee_id = ?, reporter_id = ?, updated = ?
		WHERE id = ?`,
		task.Title, task.ProjectID, task.StatusID, task.AssigneeID, task.ReporterID, task.Updated,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return nil
}

// TouchTask sets the task's updated timestamp.
func (r *TaskRepo) TouchTask(ctx context.Context, id int, updated time.Time) error {
	if err := r.execOne(ctx, `UPDATE tasks SET updated = ? WHERE id = ?`, updated, id); err != nil {
		return fmt.Errorf("failed to touch task %d: %w", id, err)
	}
	return nil
}

// DeleteTask removes the task row. Its descriptions and comments go with it
// through the schema's cascade; callers that cannot rely on the cascade
// delete them first.
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	if err := r.execOne(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
