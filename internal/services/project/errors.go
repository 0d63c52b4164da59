package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 20 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")

	// Business logic errors
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
	ErrProjectHasTasks = errors.New("cannot delete project with tasks")
)
