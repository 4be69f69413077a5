package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deixis/fringe/internal/report"
	"github.com/deixis/fringe/result"
)

// PredictOptions holds command-line options for the predict command.
type PredictOptions struct {
	Apta string
	JSON bool
	Rows bool
}

// NewPredictCommand creates the predict command.
func NewPredictCommand(global *GlobalOptions) *cobra.Command {
	opts := &PredictOptions{}

	cmd := &cobra.Command{
		Use:   "predict <tracefile>",
		Short: "Score traces against a learned model",
		Long: `Run flexfringe in predict mode, scoring every trace in the trace
file against a model learned earlier.

The model is the .ff.final.json file a learn run produced. The scored
rows land in a .result.csv file next to it, which is parsed and
summarised. Low min scores mark traces the model explains poorly.

Example:
  fringe predict --apta train.dat.ff.final.json test.dat
  fringe predict --apta train.dat.ff.final.json --rows test.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, args, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Apta, "apta", "", "Model file from an earlier learn run (required)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the run result as JSON")
	cmd.Flags().BoolVar(&opts.Rows, "rows", false, "Print the scored rows, not just the summary")
	_ = cmd.MarkFlagRequired("apta")

	return cmd
}

func runPredict(cmd *cobra.Command, args []string, global *GlobalOptions, opts *PredictOptions) error {
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

	res, err := client.PredictWith(ctx, args[0], opts.Apta, nil)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "predict: %v\n", err)
		ExitCode = 1
		return nil
	}

	run := &report.RunResult{
		ID:         res.RunID,
		Kind:       report.Predict,
		TraceFile:  args[0],
		AptaFile:   opts.Apta,
		ExitCode:   res.ExitCode,
		ResultPath: res.ResultPath,
		Table:      res.Table,
	}

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scored %s\n", args[0])
	fmt.Fprintf(out, "Run: %s\n", res.RunID)
	fmt.Fprintf(out, "Exit code: %d\n", res.ExitCode)
	fmt.Fprintf(out, "Result: %s\n\n", res.ResultPath)
	fmt.Fprint(out, result.FormatSummary(res.Table))
	if opts.Rows {
		fmt.Fprintf(out, "\n%s", res.Table.Format())
	}
	return nil
}
