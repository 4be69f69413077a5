// Package fringe is a Go client for the flexfringe state machine
// learner. It shells out to the flexfringe binary, feeds it trace
// files, and parses the prediction results the tool writes back to
// disk.
//
// A Client learns a model from a trace file with Fit, scores further
// traces against it with Predict, and renders the learned automaton
// with Render. Inputs can be files already on disk, in-memory tabular
// Frames, or Abbadingo traces; the latter two are staged through
// ephemeral temp files.
package fringe

import (
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/deixis/fringe/internal/runner"
	"github.com/sirupsen/logrus"
)

// Tool binary names resolved on PATH.
const (
	toolFlexfringe = "flexfringe"
	toolDot        = "dot"
)

// Client wraps one flexfringe binary. It holds default flags, the
// execution settings, and the trace file of the most recent Fit, which
// later Predict and Render calls resolve their model files against.
//
// A Client is not safe for concurrent use; runs are synchronous and the
// recorded trace file is session state.
type Client struct {
	binary    string
	flags     Flags
	timeout   time.Duration
	maxOutput int
	log       logrus.FieldLogger

	runner commandRunner

	tracefile string
}

// commandRunner executes external commands. Implemented by
// runner.Runner.
type commandRunner interface {
	Run(ctx context.Context, argv []string, dir string) (*runner.Result, error)
}

// Option configures a Client.
type Option func(*Client)

// WithBinary sets an explicit flexfringe binary path, bypassing PATH
// resolution.
func WithBinary(path string) Option {
	return func(c *Client) { c.binary = path }
}

// WithFlags sets default flags passed on every run. Per-call flags
// override them key by key.
func WithFlags(flags Flags) Option {
	return func(c *Client) { c.flags = flags.merged(nil) }
}

// WithLogger sets the logger that receives command lines, exit codes
// and captured output. Logging is off without it.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout bounds each flexfringe invocation. Without it a run
// blocks until the process exits or the caller's context is cancelled.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxOutput caps captured stdout and stderr at n bytes per stream.
func WithMaxOutput(n int) Option {
	return func(c *Client) { c.maxOutput = n }
}

// New creates a Client. Without WithBinary the flexfringe executable is
// resolved from PATH; resolution failure returns ErrToolUnavailable.
func New(opts ...Option) (*Client, error) {
	c := &Client{flags: Flags{}, log: newDiscardLogger()}
	for _, opt := range opts {
		opt(c)
	}

	if c.binary == "" {
		path, err := exec.LookPath(toolFlexfringe)
		if err != nil {
			return nil, NewErrToolUnavailable(toolFlexfringe)
		}
		c.binary = path
	}

	c.runner = &runner.Runner{
		Timeout:   c.timeout,
		MaxOutput: c.maxOutput,
		Log:       c.log,
	}
	return c, nil
}

// Binary returns the resolved flexfringe executable path.
func (c *Client) Binary() string { return c.binary }

// TraceFile returns the trace file recorded by the last Fit, or the
// empty string before any Fit.
func (c *Client) TraceFile() string { return c.tracefile }

// SetTraceFile records tracefile as the session trace file, as if it
// had just been learned from. Later Predict and Render calls resolve
// their model files against it.
func (c *Client) SetTraceFile(tracefile string) { c.tracefile = tracefile }

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
