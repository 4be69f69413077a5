// Package cli provides the command-line interface for fringe.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deixis/fringe/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this).
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	global := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "fringe",
		Short: "Learn state machines from trace files with flexfringe",
		Long: `fringe wraps the flexfringe state machine learner.

It learns automata from trace files (Abbadingo or csv format), scores
further traces against a learned model, and renders the result via
Graphviz. The flexfringe binary does the learning; fringe drives it and
parses the result files it writes back to disk.

Exit codes:
  0 - Success
  1 - Operation failure (missing output files, malformed results)
  2 - Usage or configuration error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&global.Binary, "binary", "", "Path to the flexfringe binary (default: PATH lookup)")
	pf.StringVar(&global.Config, "config", "", "Path to a .fringe config file (default: search upward from the working directory)")
	pf.DurationVar(&global.Timeout, "timeout", 0, "Per-run deadline, e.g. 5m (default: none)")
	pf.StringArrayVar(&global.Flags, "flag", nil, "flexfringe flag as key=value, passed as --key=value (can be repeated)")
	pf.BoolVarP(&global.Verbose, "verbose", "v", false, "Log command lines and captured output to stderr")

	// Add subcommands
	rootCmd.AddCommand(commands.NewLearnCommand(global))
	rootCmd.AddCommand(commands.NewPredictCommand(global))
	rootCmd.AddCommand(commands.NewRenderCommand(global))
	rootCmd.AddCommand(commands.NewTracesCommand())
	rootCmd.AddCommand(commands.NewMCPCommand(global))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
