package user

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
)

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, most recently joined first",
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}

	users, err := cliInstance.App.IdentityService.ListUsers(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "USER_FETCH_ERROR", err, "")
	}

	return cli.List(formatter, "users", cli.Views(users, cli.NewUserView), "No users found")
}
