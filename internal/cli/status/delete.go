package status

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	statusservice "github.com/thenoetrevino/tasktracker/internal/services/status"
)

// DeleteCmd returns the status delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a status",
		Long: `Delete a status by --id or --name.

Tasks in the status keep the reference and show it as null, so deleting a
status that is still in use requires --force.`,
		RunE: runDelete,
	}

	cmd.Flags().Int("id", 0, "Status ID")
	cmd.Flags().String("name", "", "Status name")
	cmd.MarkFlagsOneRequired("id", "name")
	cmd.MarkFlagsMutuallyExclusive("id", "name")
	cmd.Flags().Bool("force", false, "Delete even if tasks are in this status")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	statusID, _ := cmd.Flags().GetInt("id")
	name, _ := cmd.Flags().GetString("name")
	force, _ := cmd.Flags().GetBool("force")
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	service := cliInstance.App.StatusService

	if name != "" {
		st, err := service.GetStatusByName(ctx, name)
		if err != nil {
			return failDelete(formatter, err)
		}
		statusID = st.ID
	}

	if err := service.DeleteStatus(ctx, statusID, force); err != nil {
		return failDelete(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Success(map[string]any{"status_id": statusID})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Check(fmt.Sprintf("Status %d deleted", statusID)))
	return err
}

func failDelete(formatter *cli.OutputFormatter, err error) error {
	switch {
	case errors.Is(err, statusservice.ErrInvalidStatusID):
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err, "")
	case errors.Is(err, statusservice.ErrStatusNotFound):
		return formatter.Fail(cli.ExitNotFound, "STATUS_NOT_FOUND", err, "")
	case errors.Is(err, statusservice.ErrStatusInUse):
		return formatter.Fail(cli.ExitDataErr, "STATUS_IN_USE", err, "Use --force to delete it anyway")
	default:
		return formatter.Fail(cli.ExitError, "DELETE_ERROR", err, "")
	}
}
