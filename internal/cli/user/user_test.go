package user

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/testutil"
	"github.com/thenoetrevino/tasktracker/internal/testutil/clitest"
)

func TestCreateUser(t *testing.T) {
	env := clitest.Setup(t)
	ctx := context.Background()
	admins, err := env.Repo.CreateGroup(ctx, "admins")
	require.NoError(t, err)

	out, _, err := env.Run(t, CreateCmd(),
		"--username", "alice",
		"--email", "alice@example.com",
		"--password", "s3cret",
		"--group", strconv.Itoa(admins.ID),
		"--json",
	)
	require.NoError(t, err)

	data := testutil.ParseJSON(t, out)["data"].(map[string]any)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, []any{"admins"}, data["groups"])
	assert.NotContains(t, out, "s3cret")

	u, err := env.Repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword("s3cret", u.PasswordHash))
}

func TestCreateUser_Errors(t *testing.T) {
	env := clitest.Setup(t)
	testutil.CreateTestUser(t, env.Repo, "bob", "pw")

	_, _, err := env.Run(t, CreateCmd(), "--username", "bob", "--quiet")
	assert.Equal(t, cli.ExitDataErr, cli.ExitCode(err))

	_, _, err = env.Run(t, CreateCmd(), "--username", "", "--quiet")
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestListUsers(t *testing.T) {
	env := clitest.Setup(t)

	out, _, err := env.Run(t, ListCmd())
	require.NoError(t, err)
	assert.Equal(t, "No users found\n", out)

	for _, name := range []string{"first", "second"} {
		_, _, err := env.Run(t, CreateCmd(), "--username", name, "--quiet")
		require.NoError(t, err)
	}

	out, _, err = env.Run(t, ListCmd(), "--json")
	require.NoError(t, err)
	var listed struct {
		Users []cli.UserView `json:"users"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed.Users, 2)
	assert.Equal(t, "second", listed.Users[0].Username)

	out, _, err = env.Run(t, ListCmd(), "--quiet")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 2)
}
