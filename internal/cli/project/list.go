package project

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects with the number of tasks referencing each.",
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

	service := cliInstance.App.ProjectService
	projects, err := service.GetAllProjects(ctx)
	if err != nil {
		return formatter.Fail(cli.ExitError, "PROJECT_FETCH_ERROR", err, "")
	}

	views := make([]cli.ProjectView, 0, len(projects))
	for _, p := range projects {
		count, err := service.GetTaskCount(ctx, p.ID)
		if err != nil {
			return formatter.Fail(cli.ExitError, "PROJECT_FETCH_ERROR", err, "")
		}
		views = append(views, cli.NewProjectView(p, &count))
	}

	return cli.List(formatter, "projects", views, "No projects found")
}
