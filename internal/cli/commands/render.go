package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// RenderOptions holds command-line options for the render command.
type RenderOptions struct {
	Trace  string
	Format string
	Output string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(global *GlobalOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a learned model with Graphviz dot",
		Long: `Render the .ff.final.dot file of an earlier learn run to an image.

The --trace flag names the trace file the model was learned from; the
dot file is expected next to it. Requires the dot binary on PATH.

Example:
  fringe render --trace train.dat
  fringe render --trace train.dat --format svg --output model.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Trace, "trace", "", "Trace file of the learn run to render (required)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Graphviz output format (default from config, else png)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output path (default <dotfile>.<format>)")
	_ = cmd.MarkFlagRequired("trace")

	return cmd
}

func runRender(cmd *cobra.Command, global *GlobalOptions, opts *RenderOptions) error {
	settings, err := global.Resolve()
	if err != nil {
		return err
	}
	client, err := settings.Client()
	if err != nil {
		return err
	}
	client.SetTraceFile(opts.Trace)

	format := opts.Format
	if format == "" {
		format = settings.Config.RenderFormat()
	}

	output := opts.Output
	if output == "" {
		dot, err := client.DotPath()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "render: %v\n", err)
			ExitCode = 1
			return nil
		}
		output = dot + "." + format
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := client.RenderTo(ctx, format, output); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "render: %v\n", err)
		ExitCode = 1
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered the automaton to %s\n", output)
	return nil
}
