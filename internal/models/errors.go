package models

import "errors"

// Domain-wide errors returned by the storage layer
var (
	// ErrNotFound indicates that the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness violation on a name column
	ErrAlreadyExists = errors.New("already exists")
)
