package status

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
)

// ListCmd returns the status list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all statuses",
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

	statuses, err := cliInstance.App.StatusService.GetAllStatuses(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "STATUS_FETCH_ERROR", err, "")
	}

	return cli.List(formatter, "statuses", cli.Views(statuses, cli.NewStatusView), "No statuses found")
}
