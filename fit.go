package fringe

import (
	"context"
	"fmt"
	"os"

	"github.com/deixis/fringe/abbadingo"
)

// FitResult holds the outcome of a learning run.
type FitResult struct {
	RunID    string
	ExitCode int
	Stdout   []byte
	Stderr   []byte

	// DotPath and ModelPath are the verified output files of the run.
	DotPath   string
	ModelPath string
}

// Fit runs flexfringe on the trace file at path, learning an automaton
// from it. extra overrides the client's default flags for this call.
//
// The exit code is reported, not judged: success means the model files
// exist next to the trace file afterwards. On success the trace file is
// recorded for later Predict and Render calls.
func (c *Client) Fit(ctx context.Context, tracefile string, extra Flags) (*FitResult, error) {
	argv := append([]string{c.binary, tracefile}, c.flags.merged(extra).argv()...)

	res, err := c.runner.Run(ctx, argv, "")
	if err != nil {
		return nil, err
	}

	c.tracefile = tracefile

	dot, err := c.DotPath()
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", tracefile, err)
	}
	model, err := c.ModelPath()
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", tracefile, err)
	}

	return &FitResult{
		RunID:     res.RunID,
		ExitCode:  res.ExitCode,
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		DotPath:   dot,
		ModelPath: model,
	}, nil
}

// FitFrame writes frame to a temporary CSV file and fits on it. The
// temp file is removed afterwards; the learned model files remain next
// to where it was.
func (c *Client) FitFrame(ctx context.Context, frame *Frame, extra Flags) (*FitResult, error) {
	path, err := writeTempCSV(frame)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)
	return c.Fit(ctx, path, extra)
}

// FitTraces writes traces to a temporary Abbadingo file and fits on it.
func (c *Client) FitTraces(ctx context.Context, traces []abbadingo.Trace, extra Flags) (*FitResult, error) {
	path, err := writeTempTraces(traces)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)
	return c.Fit(ctx, path, extra)
}

func writeTempCSV(frame *Frame) (string, error) {
	f, err := os.CreateTemp("", "fringe-*.csv")
	if err != nil {
		return "", fmt.Errorf("creating temp trace file: %w", err)
	}
	if err := frame.WriteCSV(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp trace file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func writeTempTraces(traces []abbadingo.Trace) (string, error) {
	f, err := os.CreateTemp("", "fringe-*.dat")
	if err != nil {
		return "", fmt.Errorf("creating temp trace file: %w", err)
	}
	if err := abbadingo.Write(f, traces); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp trace file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
