package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/deixis/fringe"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type renderParams struct {
	Output string `json:"output,omitempty" jsonschema:"path to write the rendered image to. Defaults to the model's dot file plus the format extension."`
	Format string `json:"format,omitempty" jsonschema:"Graphviz -T output format (e.g. png, svg, pdf). Defaults to the configured render format."`
}

func (h *handler) renderHandler(ctx context.Context, req *mcp.CallToolRequest, params renderParams) (*mcp.CallToolResult, any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errorResult(fmt.Sprintf("flexfringe is not available: %v", h.newErr))
	}

	format := params.Format
	if format == "" {
		format = h.cfg.RenderFormat()
	}

	output := params.Output
	if output == "" {
		dot, err := h.client.DotPath()
		if err != nil {
			if errors.Is(err, fringe.ErrNotFitted) {
				return errorResult("no model learned yet: run ff_learn first")
			}
			return errorResult(fmt.Sprintf("render failed: %v", err))
		}
		output = dot + "." + format
	}

	if err := h.client.RenderTo(ctx, format, output); err != nil {
		if errors.Is(err, fringe.ErrNotFitted) {
			return errorResult("no model learned yet: run ff_learn first")
		}
		var unavail fringe.ErrToolUnavailable
		if errors.As(err, &unavail) {
			return errorResult(unavail.Error())
		}
		return errorResult(fmt.Sprintf("render failed: %v", err))
	}

	info, err := os.Stat(output)
	if err != nil {
		return errorResult(fmt.Sprintf("rendered file missing: %v", err))
	}
	return textResult(fmt.Sprintf("Rendered the automaton to %s (%s, %d bytes)\n", output, format, info.Size()))
}
