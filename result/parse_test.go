package result

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

const header = "abbadingo trace; state sequence; score sequence; sum scores; mean scores; min score"

// writeResult writes a result file with the given lines into a temp dir.
func writeResult(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.dat.ff.final.json.result.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- ParseFile: well-formed input ---

func TestParseFile_SingleRow(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 2 a b; [0,1,2]; [0.1,0.2,0.3]; 0.6; 0.2; 0.1",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tbl.Rows))
	}

	r := tbl.Rows[0]
	if r.AbbadingoType != "pos" {
		t.Errorf("AbbadingoType = %q, want pos", r.AbbadingoType)
	}
	if r.AbbadingoLength != "2" {
		t.Errorf("AbbadingoLength = %q, want 2", r.AbbadingoLength)
	}
	if got := strings.Join(r.AbbadingoTrace, " "); got != "a b" {
		t.Errorf("AbbadingoTrace = %q, want 'a b'", got)
	}
	if got := strings.Join(r.StateSequence, ","); got != "0,1,2" {
		t.Errorf("StateSequence = %q, want '0,1,2'", got)
	}
	wantScores := []float64{0.1, 0.2, 0.3}
	if len(r.ScoreSequence) != len(wantScores) {
		t.Fatalf("ScoreSequence = %v, want %v", r.ScoreSequence, wantScores)
	}
	for i, want := range wantScores {
		if r.ScoreSequence[i] != want {
			t.Errorf("ScoreSequence[%d] = %v, want %v", i, r.ScoreSequence[i], want)
		}
	}
	if r.SumScores != 0.6 {
		t.Errorf("SumScores = %v, want 0.6", r.SumScores)
	}
	if r.MeanScores != 0.2 {
		t.Errorf("MeanScores = %v, want 0.2", r.MeanScores)
	}
	if r.MinScore != 0.1 {
		t.Errorf("MinScore = %v, want 0.1", r.MinScore)
	}
}

func TestParseFile_MultipleRows(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 2 a b; [0,1,2]; [0.5,0.5]; 1.0; 0.5; 0.5",
		"neg 1 a; [0,3]; [0.25]; 0.25; 0.25; 0.25",
		"pos 3 a b c; [0,1,2,4]; [0.1,0.2,0.3]; 0.6; 0.2; 0.1",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}
	if tbl.Rows[1].AbbadingoType != "neg" {
		t.Errorf("Rows[1].AbbadingoType = %q, want neg", tbl.Rows[1].AbbadingoType)
	}
	if got := strings.Join(tbl.Rows[2].AbbadingoTrace, " "); got != "a b c" {
		t.Errorf("Rows[2].AbbadingoTrace = %q, want 'a b c'", got)
	}
}

func TestParseFile_QuotedTraceCell(t *testing.T) {
	// A leading space keeps the quotes out of the CSV layer, so the
	// stripping in splitTrace has to deal with them.
	path := writeResult(t,
		header,
		` "pos 2 a b"; [0,1]; [0.5]; 0.5; 0.5; 0.5`,
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := tbl.Rows[0]
	if r.AbbadingoType != "pos" {
		t.Errorf("AbbadingoType = %q, want pos", r.AbbadingoType)
	}
	if got := strings.Join(r.AbbadingoTrace, " "); got != "a b" {
		t.Errorf("AbbadingoTrace = %q, want 'a b'", got)
	}
}

func TestParseFile_CSVQuotedTraceCell(t *testing.T) {
	// Quotes flush against the delimiter are consumed by the CSV layer
	// instead; the cell must still split cleanly.
	path := writeResult(t,
		header,
		`"pos 2 a b"; [0,1]; [0.5]; 0.5; 0.5; 0.5`,
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := tbl.Rows[0].AbbadingoType; got != "pos" {
		t.Errorf("AbbadingoType = %q, want pos", got)
	}
}

func TestParseFile_EmptyTrace(t *testing.T) {
	path := writeResult(t,
		header,
		"neg 0; [0]; [1.0]; 1.0; 1.0; 1.0",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := tbl.Rows[0]
	if len(r.AbbadingoTrace) != 0 {
		t.Errorf("AbbadingoTrace = %v, want empty", r.AbbadingoTrace)
	}
	if r.AbbadingoLength != "0" {
		t.Errorf("AbbadingoLength = %q, want 0", r.AbbadingoLength)
	}
}

func TestParseFile_LengthKeptVerbatim(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 02 a; [0,1]; [0.5]; 0.5; 0.5; 0.5",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	// The length token is not numeric data; leading zeros survive.
	if got := tbl.Rows[0].AbbadingoLength; got != "02" {
		t.Errorf("AbbadingoLength = %q, want 02", got)
	}
}

func TestParseFile_HeaderOnly(t *testing.T) {
	path := writeResult(t, header)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(tbl.Rows))
	}
	if len(tbl.Columns) != 8 {
		t.Errorf("columns = %d, want 8: %v", len(tbl.Columns), tbl.Columns)
	}
}

func TestParseFile_ColumnOrder(t *testing.T) {
	// The three derived columns take the trace column's position.
	path := writeResult(t,
		"state sequence; abbadingo trace; score sequence; sum scores; mean scores; min score",
		"[0,1]; pos 1 a; [0.5]; 0.5; 0.5; 0.5",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	want := "state sequence|abbadingo type|abbadingo length|abbadingo trace|score sequence|sum scores|mean scores|min score"
	if got := strings.Join(tbl.Columns, "|"); got != want {
		t.Errorf("Columns = %q, want %q", got, want)
	}
}

func TestParseFile_ExtraColumns(t *testing.T) {
	path := writeResult(t,
		header+"; row nr; confidence",
		"pos 1 a; [0,1]; [0.5]; 0.5; 0.5; 0.5; 17;  high ",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := tbl.Rows[0]
	if got := r.Extra["row nr"]; got != " 17" {
		t.Errorf("Extra[row nr] = %q, want %q", got, " 17")
	}
	// Extra values pass through untouched.
	if got := r.Extra["confidence"]; got != "  high " {
		t.Errorf("Extra[confidence] = %q, want %q", got, "  high ")
	}
	if got := tbl.Columns[len(tbl.Columns)-1]; got != "confidence" {
		t.Errorf("last column = %q, want confidence", got)
	}
}

func TestParseFile_EmptyStateSequence(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; []; [0.5]; 0.5; 0.5; 0.5",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	// Splitting an empty list gives a single empty element, never nil.
	if got := tbl.Rows[0].StateSequence; len(got) != 1 || got[0] != "" {
		t.Errorf("StateSequence = %#v, want one empty element", got)
	}
}

func TestParseFile_OneBracketPairStripped(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [[5],6]; [0.5]; 0.5; 0.5; 0.5",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := strings.Join(tbl.Rows[0].StateSequence, "|"); got != "[5]|6" {
		t.Errorf("StateSequence = %q, want '[5]|6'", got)
	}
}

func TestParseFile_MissingBracketsTolerated(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; 0,1; 0.5,0.5; 1.0; 0.5; 0.5",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := strings.Join(tbl.Rows[0].StateSequence, ","); got != "0,1" {
		t.Errorf("StateSequence = %q, want '0,1'", got)
	}
	if got := len(tbl.Rows[0].ScoreSequence); got != 2 {
		t.Errorf("ScoreSequence length = %d, want 2", got)
	}
}

func TestParseFile_ScientificNotationScores(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [0,1]; [1e-3,-2.5E2]; 0.6; -1e-1; 1e-3",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r := tbl.Rows[0]
	if r.ScoreSequence[0] != 1e-3 {
		t.Errorf("ScoreSequence[0] = %v, want 1e-3", r.ScoreSequence[0])
	}
	if r.ScoreSequence[1] != -250 {
		t.Errorf("ScoreSequence[1] = %v, want -250", r.ScoreSequence[1])
	}
	if r.MeanScores != -0.1 {
		t.Errorf("MeanScores = %v, want -0.1", r.MeanScores)
	}
}

// --- ParseFile: faults ---

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "no-such-file.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected the wrapped open error to survive unwrapping")
	}

	var mr *MalformedRowError
	if errors.As(err, &mr) {
		t.Error("a missing file must not surface as *MalformedRowError")
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Row != -1 {
		t.Errorf("Row = %d, want -1", mr.Row)
	}
}

func TestParseFile_MissingRequiredColumn(t *testing.T) {
	path := writeResult(t,
		"abbadingo trace; state sequence; score sequence; sum scores; mean scores",
		"pos 1 a; [0]; [0.5]; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Row != -1 {
		t.Errorf("Row = %d, want -1 for a header fault", mr.Row)
	}
	if mr.Column != ColMin {
		t.Errorf("Column = %q, want %q", mr.Column, ColMin)
	}
}

func TestParseFile_RaggedRow(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [0]; [0.5]; 0.5; 0.5; 0.5",
		"neg 1 a; [0]; [0.5]; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Row != 1 {
		t.Errorf("Row = %d, want 1", mr.Row)
	}
}

func TestParseFile_TraceTooShort(t *testing.T) {
	path := writeResult(t,
		header,
		"pos; [0]; [0.5]; 0.5; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Row != 0 {
		t.Errorf("Row = %d, want 0", mr.Row)
	}
	if mr.Column != ColTrace {
		t.Errorf("Column = %q, want %q", mr.Column, ColTrace)
	}
}

func TestParseFile_MalformedScoreElement(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [0]; [0.1,zap,0.3]; 0.5; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Column != ColScoreSeq {
		t.Errorf("Column = %q, want %q", mr.Column, ColScoreSeq)
	}
	if mr.Value != "zap" {
		t.Errorf("Value = %q, want zap", mr.Value)
	}
}

func TestParseFile_EmptyScoreSequence(t *testing.T) {
	// An empty list has one empty element, which is not a float.
	path := writeResult(t,
		header,
		"pos 1 a; [0]; []; 0.5; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Column != ColScoreSeq {
		t.Errorf("Column = %q, want %q", mr.Column, ColScoreSeq)
	}
}

func TestParseFile_MalformedScalar(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [0]; [0.5]; 0.5; 0.5; 0.5",
		"neg 1 b; [0]; [0.5]; not-a-number; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Row != 1 {
		t.Errorf("Row = %d, want 1", mr.Row)
	}
	if mr.Column != ColSum {
		t.Errorf("Column = %q, want %q", mr.Column, ColSum)
	}
	if mr.Value != " not-a-number" {
		t.Errorf("Value = %q, want the raw cell", mr.Value)
	}
}

func TestParseFile_FirstFaultWins(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [0]; [bad]; 0.5; 0.5; 0.5",
		"also-short; [0]; [0.5]; 0.5; 0.5; 0.5",
	)

	_, err := ParseFile(path)
	var mr *MalformedRowError
	if !errors.As(err, &mr) {
		t.Fatalf("error = %v, want *MalformedRowError", err)
	}
	if mr.Row != 0 {
		t.Errorf("Row = %d, want 0 (first fault)", mr.Row)
	}
	if mr.Column != ColScoreSeq {
		t.Errorf("Column = %q, want %q", mr.Column, ColScoreSeq)
	}
}

// --- parse laws ---

func TestParseFile_Idempotent(t *testing.T) {
	path := writeResult(t,
		header+"; extra",
		"pos 2 a b; [0,1,2]; [0.1,0.2,0.3]; 0.6; 0.2; 0.1; x",
		"neg 1 c; [0,4]; [0.9]; 0.9; 0.9; 0.9; y",
	)

	first, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	second, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile (second): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parses differ:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestScoreSequence_RoundTrip(t *testing.T) {
	path := writeResult(t,
		header,
		"pos 1 a; [0,1]; [0.1,0.2,0.30000000000000004]; 0.6; 0.2; 0.1",
	)

	tbl, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	scores := tbl.Rows[0].ScoreSequence

	// Re-render the sequence and parse it again through the same path.
	parts := make([]string, len(scores))
	for i, v := range scores {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	rejoined := "[" + strings.Join(parts, ",") + "]"

	path2 := writeResult(t,
		header,
		"pos 1 a; [0,1]; "+rejoined+"; 0.6; 0.2; 0.1",
	)
	tbl2, err := ParseFile(path2)
	if err != nil {
		t.Fatalf("ParseFile (rejoined): %v", err)
	}
	if !reflect.DeepEqual(tbl2.Rows[0].ScoreSequence, scores) {
		t.Errorf("round-tripped scores = %v, want %v", tbl2.Rows[0].ScoreSequence, scores)
	}
}

func TestParseFile_HeaderPaddingInvariance(t *testing.T) {
	data := "pos 2 a b; [0,1,2]; [0.1,0.2,0.3]; 0.6; 0.2; 0.1"
	padded := writeResult(t,
		"  abbadingo trace ;state sequence;  score sequence  ; sum scores ; mean scores ; min score ",
		data,
	)
	plain := writeResult(t,
		"abbadingo trace;state sequence;score sequence;sum scores;mean scores;min score",
		data,
	)

	a, err := ParseFile(padded)
	if err != nil {
		t.Fatalf("ParseFile (padded): %v", err)
	}
	b, err := ParseFile(plain)
	if err != nil {
		t.Fatalf("ParseFile (plain): %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("padded and plain headers parse differently:\npadded: %#v\nplain:  %#v", a, b)
	}
}

// --- Parse (reader) ---

func TestParse_Reader(t *testing.T) {
	input := header + "\n" + "pos 2 a b; [0,1,2]; [0.1,0.2,0.3]; 0.6; 0.2; 0.1\n"
	tbl, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(tbl.Rows))
	}
}

func TestParse_CRLF(t *testing.T) {
	input := header + "\r\n" + "pos 1 a; [0]; [0.5]; 0.5; 0.5; 0.5\r\n"
	tbl, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Rows[0].MinScore; got != 0.5 {
		t.Errorf("MinScore = %v, want 0.5", got)
	}
}
