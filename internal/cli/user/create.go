package user

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	identityservice "github.com/thenoetrevino/tasktracker/internal/services/identity"
)

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long: `Create a user that can authenticate against the API.

Examples:
  tasktracker user create --username=alice --password=secret
  tasktracker user create --username=bob --email=bob@example.com --password=secret --group=1 --group=2
`,
		RunE: runCreate,
	}

	cmd.Flags().String("username", "", "Username (required)")
	if err := cmd.MarkFlagRequired("username"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password; without one the user cannot log in")
	cmd.Flags().IntSlice("group", nil, "Group ID (repeatable)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	groups, _ := cmd.Flags().GetIntSlice("group")
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}

	user, err := cliInstance.App.IdentityService.CreateUser(ctx, identityservice.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		GroupIDs: groups,
	})
	switch {
	case errors.Is(err, identityservice.ErrEmptyUsername):
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err, "")
	case errors.Is(err, identityservice.ErrUsernameTaken):
		return formatter.Fail(cli.ExitDataErr, "USERNAME_TAKEN", err, "")
	case err != nil:
		return formatter.Fail(cli.ExitError, "USER_CREATE_ERROR", err, "")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(cli.NewUserView(user))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Check(fmt.Sprintf("User '%s' created (ID: %d)", user.Username, user.ID)))
	return err
}
