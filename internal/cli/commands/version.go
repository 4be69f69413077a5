package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/fringe"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of fringe.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fringe %s\n", fringe.Version)
		},
	}
}
