package status

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	statusservice "github.com/thenoetrevino/tasktracker/internal/services/status"
)

// CreateCmd returns the status create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new status",
		Long: `Create a status that tasks can reference by name.

Examples:
  tasktracker status create --name="BLOCKED"
  STATUS_ID=$(tasktracker status create --name="BLOCKED" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Status name, at most 20 characters (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name, _ := cmd.Flags().GetString("name")
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}

	status, err := cliInstance.App.StatusService.CreateStatus(ctx, name)
	switch {
	case errors.Is(err, statusservice.ErrEmptyName), errors.Is(err, statusservice.ErrNameTooLong):
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err, "")
	case errors.Is(err, statusservice.ErrStatusExists):
		return formatter.Fail(cli.ExitDataErr, "STATUS_EXISTS", err, "")
	case err != nil:
		return formatter.Fail(cli.ExitError, "STATUS_CREATE_ERROR", err, "")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(cli.NewStatusView(status))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Check(fmt.Sprintf("Status '%s' created (ID: %d)", status.Name, status.ID)))
	return err
}
