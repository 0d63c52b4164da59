package identity

import "errors"

// Identity errors
var (
	// Validation errors
	ErrEmptyUsername  = errors.New("username cannot be empty")
	ErrEmptyGroupName = errors.New("group name cannot be empty")
	ErrInvalidUserID  = errors.New("invalid user ID")
	ErrInvalidGroupID = errors.New("invalid group ID")

	// Business logic errors
	ErrUserNotFound   = errors.New("user not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrGroupNameTaken = errors.New("group name already taken")
)
