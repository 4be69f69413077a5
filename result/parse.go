// Package result parses flexfringe prediction result files into typed
// tables.
//
// A result file is a semicolon delimited CSV written next to the model
// after a predict run. Each data row describes one input trace: the
// "abbadingo trace" cell packs the trace's type, length and symbols into
// one space separated value, the sequence cells hold bracketed comma
// lists, and the remaining score cells hold single floats. Parsing is
// all or nothing: the first fault aborts with a typed error and no
// partial table is returned.
package result

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// requiredColumns must all be present in the header, by trimmed name.
var requiredColumns = []string{ColTrace, ColStateSeq, ColScoreSeq, ColSum, ColMean, ColMin}

// ParseFile parses the result file at path.
//
// A missing or unopenable file yields a *NotFoundError; any content
// fault yields a *MalformedRowError. A file holding only a header row
// parses into a table with zero rows.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses result data from r. See ParseFile for the error
// contract.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	// Stray double quotes inside cells are data, not quoting faults.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MalformedRowError{Row: -1, Reason: "missing header row"}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	names := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		names[i] = name
		index[name] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &MalformedRowError{Row: -1, Column: col, Reason: "required column missing"}
		}
	}

	t := &Table{Columns: outputColumns(names, index[ColTrace])}

	for row := 0; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, &MalformedRowError{
				Row:    row,
				Reason: fmt.Sprintf("has %d fields, want %d", len(record), len(names)),
			}
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		parsed, err := parseRow(row, record, names, index)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, parsed)
	}

	return t, nil
}

// outputColumns is the header order with the trace column expanded in
// place into its three derived columns.
func outputColumns(names []string, traceIdx int) []string {
	out := make([]string, 0, len(names)+2)
	for i, name := range names {
		if i == traceIdx {
			out = append(out, ColType, ColLength, ColTrace)
			continue
		}
		out = append(out, name)
	}
	return out
}

func parseRow(row int, record []string, names []string, index map[string]int) (Row, error) {
	var out Row

	typ, length, trace, err := splitTrace(row, record[index[ColTrace]])
	if err != nil {
		return out, err
	}
	out.AbbadingoType = typ
	out.AbbadingoLength = length
	out.AbbadingoTrace = trace

	out.StateSequence = splitBracketList(record[index[ColStateSeq]])

	elems := splitBracketList(record[index[ColScoreSeq]])
	out.ScoreSequence = make([]float64, len(elems))
	for i, elem := range elems {
		v, err := strconv.ParseFloat(elem, 64)
		if err != nil {
			return out, &MalformedRowError{Row: row, Column: ColScoreSeq, Value: elem, Reason: "parsing float"}
		}
		out.ScoreSequence[i] = v
	}

	if out.SumScores, err = parseFloatCell(row, ColSum, record[index[ColSum]]); err != nil {
		return out, err
	}
	if out.MeanScores, err = parseFloatCell(row, ColMean, record[index[ColMean]]); err != nil {
		return out, err
	}
	if out.MinScore, err = parseFloatCell(row, ColMin, record[index[ColMin]]); err != nil {
		return out, err
	}

	for i, name := range names {
		if isRequired(name) {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]string)
		}
		out.Extra[name] = record[i]
	}

	return out, nil
}

// splitTrace breaks an "abbadingo trace" cell into its parts. The cell
// holds space separated tokens, optionally wrapped in double quotes:
// the type, the declared length, then the trace symbols.
func splitTrace(row int, raw string) (typ, length string, trace []string, err error) {
	s := strings.Trim(strings.TrimSpace(raw), `"`)
	parts := strings.Split(s, " ")
	if len(parts) < 2 {
		return "", "", nil, &MalformedRowError{
			Row:    row,
			Column: ColTrace,
			Value:  raw,
			Reason: "want at least a type token and a length token",
		}
	}
	return parts[0], parts[1], parts[2:], nil
}

// splitBracketList breaks a "[a,b,c]" cell into its comma separated
// elements, trimmed. A single pair of surrounding brackets is removed
// when present. An empty list yields one empty element.
func splitBracketList(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseFloatCell(row int, column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &MalformedRowError{Row: row, Column: column, Value: raw, Reason: "parsing float"}
	}
	return v, nil
}

func isRequired(name string) bool {
	for _, col := range requiredColumns {
		if name == col {
			return true
		}
	}
	return false
}
