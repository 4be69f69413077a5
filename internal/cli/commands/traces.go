package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deixis/fringe/abbadingo"
)

// TracesOptions holds command-line options for the traces command.
type TracesOptions struct {
	JSON bool
}

// tracesReport is the JSON shape of the traces command output.
type tracesReport struct {
	Traces   int            `json:"traces"`
	Alphabet []string       `json:"alphabet"`
	Labels   map[string]int `json:"labels"`
	Shortest int            `json:"shortest"`
	Longest  int            `json:"longest"`
}

// NewTracesCommand creates the traces command.
func NewTracesCommand() *cobra.Command {
	opts := &TracesOptions{}

	cmd := &cobra.Command{
		Use:   "traces <tracefile>",
		Short: "Summarise an Abbadingo trace file",
		Long: `Parse an Abbadingo trace file and report its shape: trace count,
alphabet, label histogram and length range. Useful for checking a file
before learning from it.

Example:
  fringe traces train.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraces(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the summary as JSON")

	return cmd
}

func runTraces(cmd *cobra.Command, args []string, opts *TracesOptions) error {
	traces, err := abbadingo.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "traces: %v\n", err)
		ExitCode = 1
		return nil
	}

	rep := summariseTraces(traces)

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Traces: %d\n", rep.Traces)
	fmt.Fprintf(out, "Alphabet: %d symbols\n", len(rep.Alphabet))

	labels := make([]string, 0, len(rep.Labels))
	for l := range rep.Labels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(out, "Label %q: %d\n", l, rep.Labels[l])
	}

	if rep.Traces > 0 {
		fmt.Fprintf(out, "Length: %d to %d symbols\n", rep.Shortest, rep.Longest)
	}
	return nil
}

func summariseTraces(traces []abbadingo.Trace) *tracesReport {
	rep := &tracesReport{
		Traces:   len(traces),
		Alphabet: abbadingo.Alphabet(traces),
		Labels:   make(map[string]int),
	}
	for i, tr := range traces {
		rep.Labels[tr.Label]++
		n := len(tr.Symbols)
		if i == 0 || n < rep.Shortest {
			rep.Shortest = n
		}
		if n > rep.Longest {
			rep.Longest = n
		}
	}
	return rep
}
