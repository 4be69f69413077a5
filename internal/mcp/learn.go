package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deixis/fringe"
	"github.com/deixis/fringe/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type learnParams struct {
	TraceFile string            `json:"trace_file" jsonschema:"path to the training trace file (Abbadingo or csv format)"`
	Flags     map[string]string `json:"flags,omitempty" jsonschema:"extra flexfringe flags passed as --key=value, overriding configured defaults (e.g. ini: batch.ini)"`
}

func (h *handler) learnHandler(ctx context.Context, req *mcp.CallToolRequest, params learnParams) (*mcp.CallToolResult, any, error) {
	if params.TraceFile == "" {
		return errorResult("trace_file is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errorResult(fmt.Sprintf("flexfringe is not available: %v", h.newErr))
	}

	start := time.Now()
	res, err := h.client.Fit(ctx, params.TraceFile, fringe.Flags(params.Flags))
	runDuration.WithLabelValues("learn").Observe(time.Since(start).Seconds())
	if err != nil {
		runsTotal.WithLabelValues("learn", "error").Inc()
		return errorResult(fmt.Sprintf("learn failed: %v", err))
	}
	runsTotal.WithLabelValues("learn", "ok").Inc()

	_ = h.store.Save(&report.RunResult{
		ID:        res.RunID,
		Kind:      report.Learn,
		TraceFile: params.TraceFile,
		ExitCode:  res.ExitCode,
		DotPath:   res.DotPath,
		ModelPath: res.ModelPath,
	})

	return textResult(formatLearn(res, params.TraceFile))
}

func formatLearn(res *fringe.FitResult, tracefile string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Learned a model from %s\n", tracefile)
	fmt.Fprintf(&b, "Run: %s\n", res.RunID)
	fmt.Fprintf(&b, "Exit code: %d\n", res.ExitCode)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Model: %s\n", res.ModelPath)
	fmt.Fprintf(&b, "Dot:   %s\n", res.DotPath)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Score traces against it with ff_predict, or render it with ff_render.")

	return b.String()
}
