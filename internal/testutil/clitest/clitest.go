// Package clitest builds CLI instances over an in-memory store for
// command tests.
package clitest

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tasktracker/internal/app"
	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/config"
	"github.com/thenoetrevino/tasktracker/internal/database"
	"github.com/thenoetrevino/tasktracker/internal/logging"
	"github.com/thenoetrevino/tasktracker/internal/testutil"
)

// Env is a CLI over a fresh in-memory store.
type Env struct {
	Repo *database.Repository
	ctx  context.Context
}

// Setup creates an Env
func Setup(t *testing.T) *Env {
	t.Helper()

	repo := testutil.SetupTestRepo(t)
	cfg := config.Default()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	a, err := app.New(repo, app.WithLogger(logging.Discard()), app.WithAuthConfig(cfg.Auth))
	require.NoError(t, err)

	return &Env{
		Repo: repo,
		ctx:  cli.WithCLI(context.Background(), &cli.CLI{App: a, Config: cfg}),
	}
}

// Run executes cmd with args and returns its stdout and stderr
func (e *Env) Run(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd.SetContext(e.ctx)
	return testutil.ExecuteCommand(t, cmd, args...)
}

// RunInput is Run with stdin set to input
func (e *Env) RunInput(t *testing.T, input string, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd.SetIn(strings.NewReader(input))
	return e.Run(t, cmd, args...)
}
