package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// GroupRepo handles all group-related database operations.
type GroupRepo struct {
	conn
}

func (r *GroupRepo) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	id, err := r.insert(ctx, `INSERT INTO auth_groups (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group '%s': %w", name, uniqueViolation(err))
	}
	return &models.Group{ID: id, Name: name}, nil
}

func (r *GroupRepo) GetGroupByID(ctx context.Context, id int) (*models.Group, error) {
	group := &models.Group{}
	err := r.queryRow(ctx, `SELECT id, name FROM auth_groups WHERE id = ?`, id).
		Scan(&group.ID, &group.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", id, notFound(err))
	}
	return group, nil
}

func (r *GroupRepo) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	group := &models.Group{}
	err := r.queryRow(ctx, `SELECT id, name FROM auth_groups WHERE name = ?`, name).
		Scan(&group.ID, &group.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get group '%s': %w", name, notFound(err))
	}
	return group, nil
}

func (r *GroupRepo) GetAllGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := r.query(ctx, `SELECT id, name FROM auth_groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all groups: %w", err)
	}
	defer closeRows(rows)

	groups := make([]*models.Group, 0)
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

func (r *GroupRepo) UpdateGroup(ctx context.Context, id int, name string) error {
	if err := r.execOne(ctx, `UPDATE auth_groups SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("failed to update group %d: %w", id, uniqueViolation(err))
	}
	return nil
}

// DeleteGroup removes a group and its memberships
func (r *GroupRepo) DeleteGroup(ctx context.Context, id int) error {
	if _, err := r.exec(ctx, `DELETE FROM auth_user_groups WHERE group_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete memberships of group %d: %w", id, err)
	}
	if err := r.execOne(ctx, `DELETE FROM auth_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete group %d: %w", id, err)
	}
	return nil
}
