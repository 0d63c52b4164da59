package project

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	projectservice "github.com/thenoetrevino/tasktracker/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project that tasks can reference by name.

Examples:
  # Simple project (human-readable output)
  tasktracker project create --name="Backend"

  # JSON output for scripts
  tasktracker project create --name="Backend" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(tasktracker project create --name="Backend" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Project name, at most 20 characters (required)")
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

	project, err := cliInstance.App.ProjectService.CreateProject(ctx, name)
	switch {
	case errors.Is(err, projectservice.ErrEmptyName), errors.Is(err, projectservice.ErrNameTooLong):
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", err, "")
	case errors.Is(err, projectservice.ErrProjectExists):
		return formatter.Fail(cli.ExitDataErr, "PROJECT_EXISTS", err, "Project names are unique; run 'tasktracker project list'")
	case err != nil:
		return formatter.Fail(cli.ExitError, "PROJECT_CREATE_ERROR", err, "")
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(cli.NewProjectView(project, nil))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Check(fmt.Sprintf("Project '%s' created successfully (ID: %d)", project.Name, project.ID)))
	return err
}
