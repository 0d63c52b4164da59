package models

import "time"

// Task is a unit of tracked work.
//
// The *ID fields always carry the stored reference. Project, Status,
// Assignee and Reporter are populated when the referenced row exists and
// are nil when the reference dangles, since referenced rows may be deleted
// independently of the tasks pointing at them.
type Task struct {
	ID         int
	Title      string
	ProjectID  int
	StatusID   int
	AssigneeID int
	ReporterID int
	Created    time.Time
	Updated    time.Time

	Project  *Project
	Status   *Status
	Assignee *User
	Reporter *User

	Descriptions []*Description
	Comments     []*Comment
}

// GetID returns the task ID
func (t *Task) GetID() int { return t.ID }

// Description is one free-text paragraph owned by a task.
type Description struct {
	ID      int
	TaskID  int
	Text    string
	Created time.Time
}
