package fringe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deixis/fringe/abbadingo"
	"github.com/deixis/fringe/result"
)

// PredictResult holds the outcome of a predict run: the run metadata
// and the parsed result table.
type PredictResult struct {
	RunID    string
	ExitCode int
	Stdout   []byte
	Stderr   []byte

	ResultPath string
	Table      *result.Table
}

// Predict runs flexfringe in predict mode over the trace file at path,
// scoring it against the model learned by the last Fit. ErrNotFitted is
// returned when no model has been learned yet.
func (c *Client) Predict(ctx context.Context, tracefile string, extra Flags) (*PredictResult, error) {
	model, err := c.ModelPath()
	if err != nil {
		return nil, err
	}
	return c.predict(ctx, tracefile, model, extra)
}

// PredictWith is Predict against an explicit apta file from an earlier
// learning run. The result file lands next to that run's trace file,
// and the client's recorded trace file moves there as well.
func (c *Client) PredictWith(ctx context.Context, tracefile, aptafile string, extra Flags) (*PredictResult, error) {
	c.tracefile = aptaBase(aptafile)
	return c.predict(ctx, tracefile, aptafile, extra)
}

// PredictFrame writes frame to a temporary CSV file and predicts on it.
func (c *Client) PredictFrame(ctx context.Context, frame *Frame, extra Flags) (*PredictResult, error) {
	path, err := writeTempCSV(frame)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)
	return c.Predict(ctx, path, extra)
}

// PredictTraces writes traces to a temporary Abbadingo file and
// predicts on it.
func (c *Client) PredictTraces(ctx context.Context, traces []abbadingo.Trace, extra Flags) (*PredictResult, error) {
	path, err := writeTempTraces(traces)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)
	return c.Predict(ctx, path, extra)
}

func (c *Client) predict(ctx context.Context, tracefile, aptafile string, extra Flags) (*PredictResult, error) {
	argv := []string{c.binary, tracefile, "--mode=predict", "--aptafile=" + aptafile}
	argv = append(argv, c.flags.merged(extra).argv()...)

	res, err := c.runner.Run(ctx, argv, "")
	if err != nil {
		return nil, err
	}

	path, err := c.ResultPath()
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", tracefile, err)
	}
	table, err := result.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return &PredictResult{
		RunID:      res.RunID,
		ExitCode:   res.ExitCode,
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
		ResultPath: path,
		Table:      table,
	}, nil
}

// aptaBase is the trace file path an apta file was derived from:
// everything before the first ".ff" marker, or the whole path when the
// marker is absent.
func aptaBase(aptafile string) string {
	if i := strings.Index(aptafile, ".ff"); i >= 0 {
		return aptafile[:i]
	}
	return aptafile
}
