// Package configure holds the cli commands that inspect and write the
// configuration file
//
// e.g., tasktracker config ...
package configure

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tasktracker/internal/cli"
	"github.com/thenoetrevino/tasktracker/internal/cli/styles"
	"github.com/thenoetrevino/tasktracker/internal/config"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect or create the configuration file",
		Annotations: map[string]string{cli.SkipDatabase: "true"},
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// InitCmd returns the config init subcommand
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		RunE:  runInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return err
	}

	path := cliInstance.ConfigPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return cli.WithExitCode(cli.ExitUsage, fmt.Errorf("%s already exists (use --force to overwrite)", path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), styles.Check("Wrote "+path))
	return err
}

// ShowCmd returns the config show subcommand
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration, including environment overrides",
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return err
	}

	shown := *cliInstance.Config
	if shown.Auth.JWTSecret != "" {
		shown.Auth.JWTSecret = "********"
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(&shown); err != nil {
		return err
	}
	return enc.Close()
}
