package comment

import "errors"

// Comment-related errors
var (
	ErrInvalidCommentID = errors.New("invalid comment ID")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidAuthorID  = errors.New("invalid author ID")
	ErrCommentNotFound  = errors.New("comment not found")
)
