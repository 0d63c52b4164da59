package models

import "time"

// User is an account that can authenticate against the API and be
// referenced as a task assignee, task reporter or comment author.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	DateJoined   time.Time
	Groups       []*Group
}

// GetID returns the user ID
func (u *User) GetID() int { return u.ID }

// Group is a named set of users.
type Group struct {
	ID   int
	Name string
}

// GetID returns the group ID
func (g *Group) GetID() int { return g.ID }
