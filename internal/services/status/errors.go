package status

import "errors"

// Domain errors for status service
var (
	ErrEmptyName       = errors.New("status name cannot be empty")
	ErrNameTooLong     = errors.New("status name cannot exceed 20 characters")
	ErrInvalidStatusID = errors.New("invalid status ID")

	ErrStatusNotFound = errors.New("status not found")
	ErrStatusExists   = errors.New("status already exists")
	ErrStatusInUse    = errors.New("cannot delete status used by tasks")
)
