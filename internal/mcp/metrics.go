package mcp

import "github.com/prometheus/client_golang/prometheus"

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fringe_runs_total",
			Help: "Total flexfringe runs by mode and status.",
		},
		[]string{"mode", "status"},
	)
	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fringe_run_duration_seconds",
			Help: "Duration of flexfringe runs by mode.",
		},
		[]string{"mode"},
	)
	rowsParsed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fringe_rows_parsed_total",
			Help: "Total prediction rows parsed from result files.",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, runDuration, rowsParsed)
}
