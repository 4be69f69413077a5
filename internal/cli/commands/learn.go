package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/fringe/internal/report"
)

// LearnOptions holds command-line options for the learn command.
type LearnOptions struct {
	JSON bool
}

// NewLearnCommand creates the learn command.
func NewLearnCommand(global *GlobalOptions) *cobra.Command {
	opts := &LearnOptions{}

	cmd := &cobra.Command{
		Use:   "learn <tracefile>",
		Short: "Learn a state machine from a trace file",
		Long: `Run flexfringe on a trace file, learning an automaton from it.

The trace file must be in Abbadingo or csv format. On success the model
files appear next to it:

  <tracefile>.ff.final.json   the learned automaton
  <tracefile>.ff.final.dot    its Graphviz source

The flexfringe exit code is reported but not judged: the run succeeds
when the model files exist afterwards. Pass flexfringe flags with the
global --flag option.

Example:
  fringe learn traces/train.dat
  fringe learn --flag ini=batch.ini --flag heuristic=alergia train.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearn(cmd, args, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the run result as JSON")

	return cmd
}

func runLearn(cmd *cobra.Command, args []string, global *GlobalOptions, opts *LearnOptions) error {
	settings, err := global.Resolve()
	if err != nil {
		return err
	}
	client, err := settings.Client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := client.Fit(ctx, args[0], nil)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "learn: %v\n", err)
		ExitCode = 1
		return nil
	}

	run := &report.RunResult{
		ID:        res.RunID,
		Kind:      report.Learn,
		TraceFile: args[0],
		ExitCode:  res.ExitCode,
		DotPath:   res.DotPath,
		ModelPath: res.ModelPath,
	}

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Learned a model from %s\n", args[0])
	fmt.Fprintf(out, "Run: %s\n", res.RunID)
	fmt.Fprintf(out, "Exit code: %d\n\n", res.ExitCode)
	fmt.Fprintf(out, "Model: %s\n", res.ModelPath)
	fmt.Fprintf(out, "Dot:   %s\n", res.DotPath)
	return nil
}
