package fringe

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Frame is a minimal tabular trace input: named columns and string
// records. FitFrame and PredictFrame stage it through a temporary CSV
// file in the layout flexfringe's csv reader expects, with the column
// names as the header row.
type Frame struct {
	Columns []string
	Records [][]string
}

// Append adds one record to the frame.
func (f *Frame) Append(record ...string) {
	f.Records = append(f.Records, record)
}

// WriteCSV writes the frame as comma separated values with a header
// row. Records must match the column count; a ragged record aborts the
// write.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	for i, rec := range f.Records {
		if len(rec) != len(f.Columns) {
			return fmt.Errorf("record %d has %d fields, want %d", i, len(rec), len(f.Columns))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
