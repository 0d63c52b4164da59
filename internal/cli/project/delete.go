package project

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	projectservice "github.com/thenoetrevino/tasktracker/internal/services/project"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		Long: `Delete a project by ID (requires confirmation unless --force or --quiet).

Tasks that reference the project keep the reference and show it as null.
Deleting a project that tasks still reference requires --force.`,
		RunE: runDelete,
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().Bool("force", false, "Skip confirmation and delete even if tasks reference it")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	projectID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	service := cliInstance.App.ProjectService

	// Look the project up first so a missing id is reported before asking
	count, err := service.GetTaskCount(ctx, projectID)
	if err != nil {
		return failDelete(formatter, projectID, err)
	}

	// Ask for confirmation unless force or quiet mode
	if !force && !formatter.Quiet && !formatter.JSON {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete project #%d (%d tasks)? (y/N): ", projectID, count)
		var response string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
			log.Printf("Error reading user input: %v", err)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := service.DeleteProject(ctx, projectID, force); err != nil {
		return failDelete(formatter, projectID, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Success(map[string]any{"project_id": projectID})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Check(fmt.Sprintf("Project %d deleted successfully", projectID)))
	return err
}

func failDelete(formatter *cli.OutputFormatter, projectID int, err error) error {
	switch {
	case errors.Is(err, projectservice.ErrInvalidProjectID):
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err, "")
	case errors.Is(err, projectservice.ErrProjectNotFound):
		return formatter.Fail(cli.ExitNotFound, "PROJECT_NOT_FOUND", fmt.Errorf("project %d not found", projectID), "")
	case errors.Is(err, projectservice.ErrProjectHasTasks):
		return formatter.Fail(cli.ExitDataErr, "PROJECT_IN_USE", err, "Use --force to delete it anyway")
	default:
		return formatter.Fail(cli.ExitError, "DELETE_ERROR", err, "")
	}
}
