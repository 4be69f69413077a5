package result

import (
	"fmt"
	"sort"
	"strings"
)

// Column names produced by flexfringe in prediction result files. The
// trace column folds three values into one cell and is split during
// parsing into the type, length and trace columns.
const (
	ColTrace    = "abbadingo trace"
	ColType     = "abbadingo type"
	ColLength   = "abbadingo length"
	ColStateSeq = "state sequence"
	ColScoreSeq = "score sequence"
	ColSum      = "sum scores"
	ColMean     = "mean scores"
	ColMin      = "min score"
)

// Row is one prediction result: a single input trace with the automaton's
// response to it.
type Row struct {
	// AbbadingoType is the first token of the trace cell, the label the
	// trace carried in the input file.
	AbbadingoType string `json:"abbadingo_type"`
	// AbbadingoLength is the second token, kept verbatim as the tool
	// wrote it.
	AbbadingoLength string `json:"abbadingo_length"`
	// AbbadingoTrace holds the remaining tokens, the symbols of the
	// trace. Empty for zero-length traces.
	AbbadingoTrace []string `json:"abbadingo_trace"`

	// StateSequence lists the automaton states visited by the trace.
	StateSequence []string `json:"state_sequence"`
	// ScoreSequence lists the per-transition scores.
	ScoreSequence []float64 `json:"score_sequence"`

	SumScores  float64 `json:"sum_scores"`
	MeanScores float64 `json:"mean_scores"`
	MinScore   float64 `json:"min_score"`

	// Extra holds any further columns by name, values untouched.
	Extra map[string]string `json:"extra,omitempty"`
}

// Table is a fully parsed result file. Columns preserves the file's
// column order, with the trace column expanded in place into type,
// length and trace.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Format renders the table for display: a header line followed by one
// line per row, capped for large tables.
func (t *Table) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows (%s)\n", len(t.Rows), strings.Join(t.Columns, ", "))

	limit := 20
	for i, r := range t.Rows {
		if i >= limit {
			fmt.Fprintf(&b, "  ... and %d more rows\n", len(t.Rows)-limit)
			break
		}
		fmt.Fprintf(&b, "  %d: %s %s [%s] sum=%g mean=%g min=%g\n",
			i, r.AbbadingoType, r.AbbadingoLength, strings.Join(r.AbbadingoTrace, " "),
			r.SumScores, r.MeanScores, r.MinScore)
	}
	return b.String()
}

// Summary holds aggregated score statistics for output formatting.
type Summary struct {
	Rows  int
	Types map[string]int // rows per abbadingo type
	Mean  float64        // average of the mean scores column
	Min   float64        // lowest min score across all rows
}

// Summarise aggregates a table's scores.
func Summarise(t *Table) Summary {
	s := Summary{Rows: len(t.Rows), Types: make(map[string]int)}

	var meanSum float64
	for i, r := range t.Rows {
		s.Types[r.AbbadingoType]++
		meanSum += r.MeanScores
		if i == 0 || r.MinScore < s.Min {
			s.Min = r.MinScore
		}
	}
	if s.Rows > 0 {
		s.Mean = meanSum / float64(s.Rows)
	}
	return s
}

// FormatSummary formats aggregated table statistics for display.
func FormatSummary(t *Table) string {
	var b strings.Builder
	s := Summarise(t)
	fmt.Fprintf(&b, "  Rows: %d\n", s.Rows)

	types := make([]string, 0, len(s.Types))
	for typ := range s.Types {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		fmt.Fprintf(&b, "  Type %q: %d\n", typ, s.Types[typ])
	}

	if s.Rows > 0 {
		fmt.Fprintf(&b, "  Average mean score: %g\n", s.Mean)
		fmt.Fprintf(&b, "  Lowest min score: %g\n", s.Min)
	}
	return b.String()
}
