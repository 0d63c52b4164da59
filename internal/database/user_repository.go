package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// UserRepo handles user rows and their group membership.
type UserRepo struct {
	conn
}

const userColumns = `id, username, email, password_hash, date_joined`

// CreateUser inserts user and sets its ID. Group membership is written
// separately with SetUserGroups.
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	id, err := r.insert(ctx,
		`INSERT INTO users (username, email, password_hash, date_joined) VALUES (?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.DateJoined,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user '%s': %w", user.Username, uniqueViolation(err))
	}
	user.ID = id
	return nil
}

// GetUserByID retrieves a user together with its groups
func (r *UserRepo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DateJoined)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, notFound(err))
	}
	user.DateJoined = user.DateJoined.UTC()
	if user.Groups, err = r.groupsForUser(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by its unique username
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DateJoined)
	if err != nil {
		return nil, fmt.Errorf("failed to get user '%s': %w", username, notFound(err))
	}
	user.DateJoined = user.DateJoined.UTC()
	if user.Groups, err = r.groupsForUser(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers retrieves all users, most recently joined first
func (r *UserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY date_joined DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}

	users := make([]*models.User, 0, 10)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DateJoined); err != nil {
			closeRows(rows)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.DateJoined = user.DateJoined.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		closeRows(rows)
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	// Release the cursor before issuing the membership queries; sqlite runs
	// on a single connection.
	closeRows(rows)

	for _, user := range users {
		if user.Groups, err = r.groupsForUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// UpdateUser writes username, email and password hash
func (r *UserRepo) UpdateUser(ctx context.Context, user *models.User) error {
	err := r.execOne(ctx,
		`UPDATE users SET username = ?, email = ?, password_hash = ? WHERE id = ?`,
		user.Username, user.Email, user.PasswordHash, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, uniqueViolation(err))
	}
	return nil
}

// SetUserGroups replaces the user's group membership with groupIDs
func (r *UserRepo) SetUserGroups(ctx context.Context, userID int, groupIDs []int) error {
	if _, err := r.exec(ctx, `DELETE FROM auth_user_groups WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear groups for user %d: %w", userID, err)
	}
	for _, groupID := range groupIDs {
		if _, err := r.exec(ctx,
			`INSERT INTO auth_user_groups (user_id, group_id) VALUES (?, ?)`,
			userID, groupID,
		); err != nil {
			return fmt.Errorf("failed to add user %d to group %d: %w", userID, groupID, err)
		}
	}
	return nil
}

// DeleteUser removes a user and its memberships. Tasks and comments that
// reference the user are left in place.
func (r *UserRepo) DeleteUser(ctx context.Context, id int) error {
	if _, err := r.exec(ctx, `DELETE FROM auth_user_groups WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete memberships of user %d: %w", id, err)
	}
	if err := r.execOne(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepo) groupsForUser(ctx context.Context, userID int) ([]*models.Group, error) {
	rows, err := r.query(ctx, `
		SELECT g.id, g.name
		FROM auth_groups g
		INNER JOIN auth_user_groups ug ON ug.group_id = g.id
		WHERE ug.user_id = ?
		ORDER BY g.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %d: %w", userID, err)
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
