// Package identity manages users, their passwords and group membership.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/clock"
	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// Service defines user and group operations
type Service interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error

	ListGroups(ctx context.Context) ([]*models.Group, error)
	GetGroup(ctx context.Context, id int) (*models.Group, error)
	CreateGroup(ctx context.Context, name string) (*models.Group, error)
	RenameGroup(ctx context.Context, id int, name string) (*models.Group, error)
	DeleteGroup(ctx context.Context, id int) error
}

// CreateUserRequest encapsulates data for creating a user. An empty
// password leaves the account unable to log in.
type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	GroupIDs []int
}

// UpdateUserRequest carries the fields to change. nil pointers and a nil
// GroupIDs leave the current value; an empty non-nil GroupIDs clears
// membership.
type UpdateUserRequest struct {
	ID       int
	Username *string
	Email    *string
	Password *string
	GroupIDs []int
}

type service struct {
	repo       database.DataStore
	clock      clock.Clock
	bcryptCost int
}

// NewService creates an identity service hashing passwords at bcryptCost
func NewService(repo database.DataStore, c clock.Clock, bcryptCost int) Service {
	if c == nil {
		c = clock.System
	}
	return &service{repo: repo, clock: c, bcryptCost: bcryptCost}
}

// ListUsers returns users, most recently joined first
func (s *service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *service) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, wrapErr(err, ErrUserNotFound, ErrUsernameTaken)
	}
	return u, nil
}

// CreateUser stores the user with a bcrypt hash and its group membership
// in one transaction
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, ErrEmptyUsername
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		DateJoined:   s.clock.Now(),
	}
	err = database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.SetUserGroups(ctx, user.ID, req.GroupIDs)
	})
	if err != nil {
		return nil, wrapErr(err, ErrUserNotFound, ErrUsernameTaken)
	}

	return s.GetUser(ctx, user.ID)
}

func (s *service) UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidUserID
	}
	if req.Username != nil && *req.Username == "" {
		return nil, ErrEmptyUsername
	}

	user, err := s.repo.GetUserByID(ctx, req.ID)
	if err != nil {
		return nil, wrapErr(err, ErrUserNotFound, ErrUsernameTaken)
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		if user.PasswordHash, err = s.hash(*req.Password); err != nil {
			return nil, err
		}
	}

	err = database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		if req.GroupIDs == nil {
			return nil
		}
		return tx.SetUserGroups(ctx, user.ID, req.GroupIDs)
	})
	if err != nil {
		return nil, wrapErr(err, ErrUserNotFound, ErrUsernameTaken)
	}

	return s.GetUser(ctx, user.ID)
}

func (s *service) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidUserID
	}
	err := database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		return tx.DeleteUser(ctx, id)
	})
	return wrapErr(err, ErrUserNotFound, ErrUsernameTaken)
}

func (s *service) hash(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return auth.HashPassword(password, s.bcryptCost)
}

func (s *service) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.repo.GetAllGroups(ctx)
}

func (s *service) GetGroup(ctx context.Context, id int) (*models.Group, error) {
	if id <= 0 {
		return nil, ErrInvalidGroupID
	}
	g, err := s.repo.GetGroupByID(ctx, id)
	if err != nil {
		return nil, wrapErr(err, ErrGroupNotFound, ErrGroupNameTaken)
	}
	return g, nil
}

func (s *service) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	if name == "" {
		return nil, ErrEmptyGroupName
	}
	g, err := s.repo.CreateGroup(ctx, name)
	if err != nil {
		return nil, wrapErr(err, ErrGroupNotFound, ErrGroupNameTaken)
	}
	return g, nil
}

func (s *service) RenameGroup(ctx context.Context, id int, name string) (*models.Group, error) {
	if id <= 0 {
		return nil, ErrInvalidGroupID
	}
	if name == "" {
		return nil, ErrEmptyGroupName
	}
	if err := s.repo.UpdateGroup(ctx, id, name); err != nil {
		return nil, wrapErr(err, ErrGroupNotFound, ErrGroupNameTaken)
	}
	return s.GetGroup(ctx, id)
}

func (s *service) DeleteGroup(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidGroupID
	}
	err := database.WithTx(ctx, s.repo, func(tx database.DataStore) error {
		return tx.DeleteGroup(ctx, id)
	})
	return wrapErr(err, ErrGroupNotFound, ErrGroupNameTaken)
}

// wrapErr prefixes storage misses and uniqueness violations with the
// service's own sentinels, keeping the model errors in the chain.
func wrapErr(err, notFound, taken error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("%w: %w", notFound, err)
	case errors.Is(err, models.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", taken, err)
	default:
		return err
	}
}
