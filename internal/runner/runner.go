// Package runner executes external commands with captured output,
// optional deadlines, and output size limits.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Runner executes commands and captures their output.
//
// A zero Timeout imposes no deadline: the command runs until it finishes or
// the caller's context is cancelled. A zero MaxOutput captures stdout and
// stderr in full.
type Runner struct {
	Timeout   time.Duration
	MaxOutput int // bytes per stream; 0 = unlimited
	Log       logrus.FieldLogger
}

// discard swallows log output when no logger is injected.
var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Run executes a command with the given argv. The first element is the
// binary (resolved via PATH unless it contains a path separator), and the
// rest are arguments. dir, when non-empty, is the working directory for
// the command.
//
// A non-zero exit code is not an error; it is reported in the Result.
// An error is returned only when the command could not be executed at all.
func (r *Runner) Run(ctx context.Context, argv []string, dir string) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	log := r.Log
	if log == nil {
		log = discard
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	runID := uuid.New().String()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: r.MaxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: r.MaxOutput}

	log.Debugf("running: %s", strings.Join(argv, " "))
	runErr := cmd.Run()

	truncated := r.MaxOutput > 0 &&
		(stdout.Len() >= r.MaxOutput || stderr.Len() >= r.MaxOutput)

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Binary not found or other exec error.
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
	}

	log.Debugf("%s exited with code %d", argv[0], exitCode)
	log.Info(stdout.String())
	log.Info(stderr.String())

	return &Result{
		RunID:     runID,
		ExitCode:  exitCode,
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Truncated: truncated,
	}, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the
// rest. A non-positive limit disables the cap.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.limit <= 0 {
		return w.buf.Write(p)
	}
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
