package fringe

import "os"

// Output file suffixes flexfringe appends to the trace file path.
const (
	dotSuffix    = ".ff.final.dot"
	modelSuffix  = ".ff.final.json"
	resultSuffix = ".ff.final.json.result.csv"
)

// DotPath returns the Graphviz model written by the last Fit.
func (c *Client) DotPath() (string, error) { return c.outFile(dotSuffix) }

// ModelPath returns the serialized automaton written by the last Fit.
// Predict consumes it as its apta file.
func (c *Client) ModelPath() (string, error) { return c.outFile(modelSuffix) }

// ResultPath returns the prediction result file for the recorded trace
// file.
func (c *Client) ResultPath() (string, error) { return c.outFile(resultSuffix) }

// outFile derives an output path from the recorded trace file and
// verifies a regular file exists there.
func (c *Client) outFile(suffix string) (string, error) {
	if c.tracefile == "" {
		return "", ErrNotFitted
	}
	path := c.tracefile + suffix

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", &MissingOutputError{Path: path}
	}
	return path, nil
}
