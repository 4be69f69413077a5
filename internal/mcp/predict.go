package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deixis/fringe"
	"github.com/deixis/fringe/internal/report"
	"github.com/deixis/fringe/result"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type predictParams struct {
	TraceFile string            `json:"trace_file" jsonschema:"path to the trace file to score (Abbadingo or csv format)"`
	AptaFile  string            `json:"apta_file,omitempty" jsonschema:"explicit .ff.final.json model file from an earlier learning run. Defaults to the model of the last ff_learn."`
	Flags     map[string]string `json:"flags,omitempty" jsonschema:"extra flexfringe flags passed as --key=value, overriding configured defaults"`
}

func (h *handler) predictHandler(ctx context.Context, req *mcp.CallToolRequest, params predictParams) (*mcp.CallToolResult, any, error) {
	if params.TraceFile == "" {
		return errorResult("trace_file is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client == nil {
		return errorResult(fmt.Sprintf("flexfringe is not available: %v", h.newErr))
	}

	start := time.Now()
	var res *fringe.PredictResult
	var err error
	if params.AptaFile != "" {
		res, err = h.client.PredictWith(ctx, params.TraceFile, params.AptaFile, fringe.Flags(params.Flags))
	} else {
		res, err = h.client.Predict(ctx, params.TraceFile, fringe.Flags(params.Flags))
	}
	runDuration.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	if err != nil {
		runsTotal.WithLabelValues("predict", "error").Inc()
		if errors.Is(err, fringe.ErrNotFitted) {
			return errorResult("no model learned yet: run ff_learn first, or pass apta_file")
		}
		return errorResult(fmt.Sprintf("predict failed: %v", err))
	}
	runsTotal.WithLabelValues("predict", "ok").Inc()
	rowsParsed.Add(float64(len(res.Table.Rows)))

	_ = h.store.Save(&report.RunResult{
		ID:         res.RunID,
		Kind:       report.Predict,
		TraceFile:  params.TraceFile,
		AptaFile:   params.AptaFile,
		ExitCode:   res.ExitCode,
		ResultPath: res.ResultPath,
		Table:      res.Table,
	})

	return textResult(formatPredict(res, params.TraceFile))
}

func formatPredict(res *fringe.PredictResult, tracefile string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scored %s\n", tracefile)
	fmt.Fprintf(&b, "Run: %s\n", res.RunID)
	fmt.Fprintf(&b, "Exit code: %d\n", res.ExitCode)
	fmt.Fprintln(&b)
	fmt.Fprint(&b, result.FormatSummary(res.Table))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Inspect rows with ff_inspect(run_id=%q), filtering by type or max_score.\n", res.RunID)

	return b.String()
}
