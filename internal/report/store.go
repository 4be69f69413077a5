// Package report provides structured persistence and retrieval of
// flexfringe run results. Results are stored as typed structs and can
// be filtered by trace label or score.
package report

import (
	"fmt"

	"github.com/deixis/fringe/result"
)

// Kind identifies the type of a run.
type Kind string

const (
	// Learn is a model learning run.
	Learn Kind = "learn"
	// Predict is a prediction run against a learned model.
	Predict Kind = "predict"
)

// Store persists and retrieves run results.
type Store interface {
	Save(result *RunResult) error
	Load(runID string) (*RunResult, error)
}

// RunResult holds the outcome of one flexfringe run.
type RunResult struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	TraceFile string `json:"trace_file"`
	AptaFile  string `json:"apta_file,omitempty"`
	ExitCode  int    `json:"exit_code"`

	// Learning outputs.
	DotPath   string `json:"dot_path,omitempty"`
	ModelPath string `json:"model_path,omitempty"`

	// Prediction outputs.
	ResultPath string        `json:"result_path,omitempty"`
	Table      *result.Table `json:"table,omitempty"`
}

// Expect returns an error if the run's Kind does not match want.
func (r *RunResult) Expect(want Kind) error {
	if r.Kind != want {
		return fmt.Errorf("run %s is a %s run, not a %s run", r.ID, r.Kind, want)
	}
	return nil
}

// ByType returns the prediction rows whose abbadingo type matches typ.
func ByType(r *RunResult, typ string) []result.Row {
	if r.Table == nil {
		return nil
	}
	var out []result.Row
	for _, row := range r.Table.Rows {
		if row.AbbadingoType == typ {
			out = append(out, row)
		}
	}
	return out
}

// LowScores returns the prediction rows whose minimum score is at or
// below max. Low minimum scores mark traces the model explains poorly.
func LowScores(r *RunResult, max float64) []result.Row {
	if r.Table == nil {
		return nil
	}
	var out []result.Row
	for _, row := range r.Table.Rows {
		if row.MinScore <= max {
			out = append(out, row)
		}
	}
	return out
}
