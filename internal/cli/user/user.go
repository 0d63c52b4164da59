// Package user holds the cli commands that manage API accounts
//
// e.g., tasktracker user ...
package user

import (
	"github.com/spf13/cobra"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}
