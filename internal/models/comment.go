package models

import "time"

// Comment is a note on a task written by a user.
type Comment struct {
	ID       int
	TaskID   int
	AuthorID int
	Author   *User // nil when the author row no longer exists
	Text     string
	Created  time.Time
}

// GetID returns the comment ID
func (c *Comment) GetID() int { return c.ID }
