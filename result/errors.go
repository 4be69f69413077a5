package result

import "fmt"

// NotFoundError reports a result file that is missing or could not be
// opened. It is never used for content faults; those are
// MalformedRowError.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("result file %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedRowError reports content that does not match the expected
// result layout. Row is the zero-based data row index; -1 marks a fault
// in the header itself.
type MalformedRowError struct {
	Row    int
	Column string
	Value  string // the offending cell or element, verbatim
	Reason string
}

func (e *MalformedRowError) Error() string {
	var loc string
	switch {
	case e.Row < 0 && e.Column == "":
		loc = "header"
	case e.Row < 0:
		loc = fmt.Sprintf("header column %q", e.Column)
	case e.Column == "":
		loc = fmt.Sprintf("row %d", e.Row)
	default:
		loc = fmt.Sprintf("row %d, column %q", e.Row, e.Column)
	}
	if e.Value != "" {
		return fmt.Sprintf("malformed result: %s: %s (value %q)", loc, e.Reason, e.Value)
	}
	return fmt.Sprintf("malformed result: %s: %s", loc, e.Reason)
}
