// Package abbadingo reads and writes Abbadingo format trace files, the
// input format of the flexfringe learner.
//
// A file opens with a header line holding the trace count and the
// alphabet size, followed by one line per trace:
//
//	<label> <length> <symbol> <symbol> ...
package abbadingo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Trace is a single labelled symbol sequence.
type Trace struct {
	Label   string   `json:"label"`
	Symbols []string `json:"symbols"`
}

// Alphabet returns the distinct symbols across all traces, sorted.
func Alphabet(traces []Trace) []string {
	seen := make(map[string]bool)
	for _, tr := range traces {
		for _, s := range tr.Symbols {
			seen[s] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Write emits traces in Abbadingo format. The header is derived from the
// traces themselves: their count and the size of their alphabet.
func Write(w io.Writer, traces []Trace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(traces), len(Alphabet(traces)))
	for _, tr := range traces {
		fmt.Fprintf(bw, "%s %d", tr.Label, len(tr.Symbols))
		for _, s := range tr.Symbols {
			fmt.Fprintf(bw, " %s", s)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteFile writes traces to path in Abbadingo format.
func WriteFile(path string, traces []Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, traces); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses an Abbadingo trace file. Each trace line must declare a
// length matching its symbol count, and the header's trace count must
// match the number of trace lines. Blank lines are skipped.
func Read(r io.Reader) ([]Trace, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("missing header line")
	}
	head := strings.Fields(sc.Text())
	if len(head) != 2 {
		return nil, fmt.Errorf("header %q: want a trace count and an alphabet size", sc.Text())
	}
	count, err := strconv.Atoi(head[0])
	if err != nil {
		return nil, fmt.Errorf("header trace count %q: %w", head[0], err)
	}
	if _, err := strconv.Atoi(head[1]); err != nil {
		return nil, fmt.Errorf("header alphabet size %q: %w", head[1], err)
	}

	var traces []Trace
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want a label and a length", line)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: length %q: %w", line, fields[1], err)
		}
		symbols := fields[2:]
		if len(symbols) != n {
			return nil, fmt.Errorf("line %d: declared length %d, found %d symbols", line, n, len(symbols))
		}
		traces = append(traces, Trace{Label: fields[0], Symbols: symbols})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(traces) != count {
		return nil, fmt.Errorf("header declares %d traces, found %d", count, len(traces))
	}
	return traces, nil
}

// ReadFile reads an Abbadingo trace file from disk.
func ReadFile(path string) ([]Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	traces, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traces, nil
}
