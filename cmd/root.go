// Package cmd wires the tasktracker command tree.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/configure"
	"github.com/thenoetrevino/tasktracker/internal/cli/project"
	"github.com/thenoetrevino/tasktracker/internal/cli/serve"
	"github.com/thenoetrevino/tasktracker/internal/cli/status"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	"github.com/thenoetrevino/tasktracker/internal/cli/user"
	"github.com/thenoetrevino/tasktracker/internal/config"
	"github.com/thenoetrevino/tasktracker/internal/logging"
)

// resources opened by the pre-run hook, released by Execute
type resources struct {
	cli    *cli.CLI
	logOut io.Closer
}

func (r *resources) Close() {
	if r.cli != nil {
		if err := r.cli.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close database: %v\n", err)
		}
	}
	if r.logOut != nil {
		_ = r.logOut.Close()
	}
}

// newRootCmd builds the command tree. Resources the commands open are
// recorded in res.
func newRootCmd(res *resources) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tasktracker",
		Short: "Task tracker - a JSON API for projects, tasks and comments",
		Long: `Task tracker serves a JSON API for tasks, their descriptions and comments,
and administers the projects, statuses and users those tasks reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return cli.WithExitCode(cli.ExitUsage, err)
			}

			if res.logOut, err = logging.Init(cfg.Log); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			styles.Init(cfg.Theme)

			c := &cli.CLI{Config: cfg}
			if cli.NeedsDatabase(cmd) {
				if c, err = cli.NewCLI(cmd.Context(), cfg, logging.Logger); err != nil {
					return err
				}
			}
			c.ConfigPath = path
			res.cli = c

			cmd.SetContext(cli.WithCLI(cmd.Context(), c))
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.WithExitCode(cli.ExitUsage, err)
	})
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/tasktracker/config.yaml)")

	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(status.StatusCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(configure.ConfigCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	res := &resources{}
	defer res.Close()

	err := newRootCmd(res).Execute()
	if err != nil && !cli.Reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}
