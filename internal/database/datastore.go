package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/thenoetrevino/tasktracker/internal/models"
)

// DataStore defines the unified interface for all data operations.
// It is composed of smaller, domain-specific interfaces; consumers can
// depend on the smaller ones (e.g. ProjectRepository) when that is all
// they need.
type DataStore interface {
	ProjectRepository
	StatusRepository
	UserRepository
	GroupRepository
	TaskRepository
	DescriptionRepository
	CommentRepository

	BeginTx(ctx context.Context) (*sql.Tx, error)
	WithTx(tx *sql.Tx) DataStore
}

// ProjectRepository defines project persistence.
type ProjectRepository interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	UpdateProject(ctx context.Context, id int, name string) error
	DeleteProject(ctx context.Context, id int) error
}

// StatusRepository defines status persistence.
type StatusRepository interface {
	CreateStatus(ctx context.Context, name string) (*models.Status, error)
	GetStatusByID(ctx context.Context, id int) (*models.Status, error)
	GetStatusByName(ctx context.Context, name string) (*models.Status, error)
	GetAllStatuses(ctx context.Context) ([]*models.Status, error)
	UpdateStatus(ctx context.Context, id int, name string) error
	DeleteStatus(ctx context.Context, id int) error
}

// UserRepository defines user persistence, including group membership.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SetUserGroups(ctx context.Context, userID int, groupIDs []int) error
	DeleteUser(ctx context.Context, id int) error
}

// GroupRepository defines group persistence.
type GroupRepository interface {
	CreateGroup(ctx context.Context, name string) (*models.Group, error)
	GetGroupByID(ctx context.Context, id int) (*models.Group, error)
	GetGroupByName(ctx context.Context, name string) (*models.Group, error)
	GetAllGroups(ctx context.Context) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, id int, name string) error
	DeleteGroup(ctx context.Context, id int) error
}

// TaskRepository defines task persistence. Loaded tasks carry their
// resolved references but not their descriptions or comments.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	TouchTask(ctx context.Context, id int, updated time.Time) error
	DeleteTask(ctx context.Context, id int) error
}

// DescriptionRepository defines description persistence.
type DescriptionRepository interface {
	CreateDescription(ctx context.Context, taskID int, text string, created time.Time) (*models.Description, error)
	GetDescriptionsByTask(ctx context.Context, taskID int) ([]*models.Description, error)
	DeleteDescriptionsByTask(ctx context.Context, taskID int) error
}

// CommentRepository defines comment persistence. Comment lists are ordered
// newest first.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id int) (*models.Comment, error)
	GetAllComments(ctx context.Context) ([]*models.Comment, error)
	GetCommentsByTask(ctx context.Context, taskID int) ([]*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int) error
	DeleteCommentsByTask(ctx context.Context, taskID int) error
}

var _ DataStore = (*Repository)(nil)
