package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle        = errors.New("task title cannot be empty")
	ErrTitleTooLong      = errors.New("task title cannot exceed 100 characters")
	ErrInvalidTaskID     = errors.New("invalid task ID")
	ErrInvalidProjectID  = errors.New("invalid project ID")
	ErrInvalidStatusID   = errors.New("invalid status ID")
	ErrInvalidAssigneeID = errors.New("invalid assignee ID")
	ErrInvalidReporterID = errors.New("invalid reporter ID")

	// Business logic errors
	ErrTaskNotFound = errors.New("task not found")
)
