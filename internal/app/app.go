package app

import (
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/clock"
	"github.com/thenoetrevino/tasktracker/internal/config"
	"github.com/thenoetrevino/tasktracker/internal/database"
	commentservice "github.com/thenoetrevino/tasktracker/internal/services/comment"
	identityservice "github.com/thenoetrevino/tasktracker/internal/services/identity"
	projectservice "github.com/thenoetrevino/tasktracker/internal/services/project"
	statusservice "github.com/thenoetrevino/tasktracker/internal/services/status"
	taskservice "github.com/thenoetrevino/tasktracker/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	Logger *slog.Logger
	Auth   *auth.Authenticator

	// Service layer (business logic)
	TaskService     taskservice.Service
	CommentService  commentservice.Service
	IdentityService identityservice.Service
	ProjectService  projectservice.Service
	StatusService   statusservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) (*App, error) {
	cfg := &appConfig{
		logger: slog.Default(),
		clock:  clock.System,
		auth:   config.Default().Auth,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	authenticator, err := auth.NewAuthenticator(repo, cfg.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	return &App{
		repo:            repo,
		Logger:          cfg.logger,
		Auth:            authenticator,
		TaskService:     taskservice.NewService(repo, cfg.clock),
		CommentService:  commentservice.NewService(repo, cfg.clock),
		IdentityService: identityservice.NewService(repo, cfg.clock, cfg.auth.BcryptCost),
		ProjectService:  projectservice.NewService(repo),
		StatusService:   statusservice.NewService(repo),
	}, nil
}

// Repo returns the underlying repository. Serializers use it to resolve
// names and ids.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close performs cleanup of application resources.
// The database handle is owned by the caller.
func (a *App) Close() error {
	return nil
}
