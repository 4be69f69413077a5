package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/deixis/fringe/internal/report"
	"github.com/deixis/fringe/result"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectParams struct {
	RunID    string   `json:"run_id" jsonschema:"the run ID from an ff_learn or ff_predict result"`
	Type     string   `json:"type,omitempty" jsonschema:"only return prediction rows with this abbadingo type (e.g. pos, neg)"`
	MaxScore *float64 `json:"max_score,omitempty" jsonschema:"only return prediction rows whose minimum score is at or below this ceiling"`
	Limit    int      `json:"limit,omitempty" jsonschema:"cap the number of rows returned"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	run, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	if run.Kind == report.Learn {
		return textResult(formatLearnRun(run))
	}
	return textResult(formatPredictRun(run, params))
}

func formatLearnRun(run *report.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s (%s)\n", run.ID, run.Kind)
	fmt.Fprintf(&b, "Trace file: %s\n", run.TraceFile)
	fmt.Fprintf(&b, "Exit code: %d\n", run.ExitCode)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Model: %s\n", run.ModelPath)
	fmt.Fprintf(&b, "Dot:   %s\n", run.DotPath)

	return b.String()
}

func formatPredictRun(run *report.RunResult, params inspectParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s (%s)\n", run.ID, run.Kind)
	fmt.Fprintf(&b, "Trace file: %s\n", run.TraceFile)
	if run.AptaFile != "" {
		fmt.Fprintf(&b, "Apta file: %s\n", run.AptaFile)
	}
	fmt.Fprintln(&b)

	if run.Table == nil {
		fmt.Fprintln(&b, "No result table stored for this run.")
		return b.String()
	}

	rows := run.Table.Rows
	var filters []string
	if params.Type != "" {
		rows = report.ByType(run, params.Type)
		filters = append(filters, fmt.Sprintf("type %q", params.Type))
	}
	if params.MaxScore != nil {
		filtered := rows[:0:0]
		for _, r := range rows {
			if r.MinScore <= *params.MaxScore {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
		filters = append(filters, fmt.Sprintf("min score <= %g", *params.MaxScore))
	}
	if params.Limit > 0 && len(rows) > params.Limit {
		rows = rows[:params.Limit]
		filters = append(filters, fmt.Sprintf("first %d", params.Limit))
	}

	if len(filters) > 0 {
		fmt.Fprintf(&b, "Filter: %s\n", strings.Join(filters, ", "))
	}
	if len(rows) == 0 {
		fmt.Fprintln(&b, "No matching rows.")
		return b.String()
	}

	view := &result.Table{Columns: run.Table.Columns, Rows: rows}
	fmt.Fprint(&b, view.Format())

	return b.String()
}
