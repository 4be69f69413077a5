package fringe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Render pipes the model learned by the last Fit through Graphviz dot
// and returns the rendered image bytes. format defaults to png.
// ErrToolUnavailable is returned when dot is not on PATH.
func (c *Client) Render(ctx context.Context, format string) ([]byte, error) {
	if format == "" {
		format = "png"
	}

	dotBin, err := exec.LookPath(toolDot)
	if err != nil {
		return nil, NewErrToolUnavailable(toolDot)
	}

	dotFile, err := c.DotPath()
	if err != nil {
		return nil, err
	}

	res, err := c.runner.Run(ctx, []string{dotBin, "-T" + format, dotFile}, "")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("dot -T%s failed (exit %d): %s", format, res.ExitCode, res.Stderr)
	}
	return res.Stdout, nil
}

// RenderTo renders the model and writes it to path.
func (c *Client) RenderTo(ctx context.Context, format, path string) error {
	data, err := c.Render(ctx, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rendered model: %w", err)
	}
	return nil
}
