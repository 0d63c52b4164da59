// Package status holds the cli commands that manage task statuses
//
// e.g., tasktracker status ...
package status

import (
	"github.com/spf13/cobra"
)

// StatusCmd returns the status parent command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage task statuses",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}
