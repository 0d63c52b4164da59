package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// CommentRepo handles comment rows. Authors are LEFT JOINed; lists are
// newest first.
type CommentRepo struct {
	conn
}

const commentSelect = `
	SELECT c.id, c.task_id, c.author_id, c.text, c.created, u.username
	FROM comments c
	LEFT JOIN users u ON u.id = c.author_id`

const commentOrder = ` ORDER BY c.created DESC, c.id DESC`

func scanComment(row rowScanner) (*models.Comment, error) {
	comment := &models.Comment{}
	var authorName sql.NullString
	if err := row.Scan(&comment.ID, &comment.TaskID, &comment.AuthorID, &comment.Text, &comment.Created, &authorName); err != nil {
		return nil, err
	}
	comment.Created = comment.Created.UTC()
	if authorName.Valid {
		comment.Author = &models.User{ID: comment.AuthorID, Username: authorName.String}
	}
	return comment, nil
}

// CreateComment inserts comment and sets its ID
func (r *CommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	id, err := r.insert(ctx,
		`INSERT INTO comments (task_id, author_id, text, created) VALUES (?, ?, ?, ?)`,
		comment.TaskID, comment.AuthorID, comment.Text, comment.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment on task %d: %w", comment.TaskID, err)
	}
	comment.ID = id
	return nil
}

func (r *CommentRepo) GetCommentByID(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := scanComment(r.queryRow(ctx, commentSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, notFound(err))
	}
	return comment, nil
}

func (r *CommentRepo) GetAllComments(ctx context.Context) ([]*models.Comment, error) {
	return r.list(ctx, commentSelect+commentOrder)
}

func (r *CommentRepo) GetCommentsByTask(ctx context.Context, taskID int) ([]*models.Comment, error) {
	return r.list(ctx, commentSelect+` WHERE c.task_id = ?`+commentOrder, taskID)
}

func (r *CommentRepo) list(ctx context.Context, query string, args ...any) ([]*models.Comment, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer closeRows(rows)

	comments := make([]*models.Comment, 0, 8)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// UpdateComment writes task, author and text. created is immutable.
func (r *CommentRepo) UpdateComment(ctx context.Context, comment *models.Comment) error {
	err := r.execOne(ctx,
		`UPDATE comments SET task_id = ?, author_id = ?, text = ? WHERE id = ?`,
		comment.TaskID, comment.AuthorID, comment.Text, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", comment.ID, err)
	}
	return nil
}

func (r *CommentRepo) DeleteComment(ctx context.Context, id int) error {
	if err := r.execOne(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return nil
}

func (r *CommentRepo) DeleteCommentsByTask(ctx context.Context, taskID int) error {
	if _, err := r.exec(ctx, `DELETE FROM comments WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("failed to delete comments for task %d: %w", taskID, err)
	}
	return nil
}
