package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/deixis/fringe"
	"github.com/deixis/fringe/internal/config"
)

// ExitCode is set by commands to indicate the result.
var ExitCode = 0

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	Binary  string
	Config  string
	Timeout time.Duration
	Flags   []string // key=value pairs
	Verbose bool
}

// Settings is the merged view of the .fringe config and the command
// line: flags given on the command line win key by key.
type Settings struct {
	Config *config.Config

	Binary  string
	Timeout time.Duration
	Flags   fringe.Flags
	Log     logrus.FieldLogger // nil unless --verbose
}

// Resolve loads the configuration and layers the command line on top.
func (g *GlobalOptions) Resolve() (*Settings, error) {
	var loaded *config.LoadResult
	var err error
	if g.Config != "" {
		loaded, err = config.LoadFile(g.Config)
	} else {
		wd, werr := os.Getwd()
		if werr != nil {
			return nil, fmt.Errorf("determining working directory: %w", werr)
		}
		loaded, err = config.Load(wd)
	}
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	s := &Settings{
		Config:  cfg,
		Binary:  cfg.Binary,
		Timeout: cfg.Timeout(),
		Flags:   fringe.Flags{},
	}
	if g.Binary != "" {
		s.Binary = g.Binary
	}
	if g.Timeout > 0 {
		s.Timeout = g.Timeout
	}
	for k, v := range cfg.Flags {
		s.Flags[k] = v
	}
	for _, kv := range g.Flags {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --flag %q: want key=value", kv)
		}
		s.Flags[k] = v
	}
	if g.Verbose {
		s.Log = newStderrLogger()
	}
	return s, nil
}

// Client builds a flexfringe client from the resolved settings.
func (s *Settings) Client() (*fringe.Client, error) {
	opts := []fringe.Option{
		fringe.WithMaxOutput(s.Config.MaxOutputBytes()),
	}
	if s.Binary != "" {
		opts = append(opts, fringe.WithBinary(s.Binary))
	}
	if s.Timeout > 0 {
		opts = append(opts, fringe.WithTimeout(s.Timeout))
	}
	if len(s.Flags) > 0 {
		opts = append(opts, fringe.WithFlags(s.Flags))
	}
	if s.Log != nil {
		opts = append(opts, fringe.WithLogger(s.Log))
	}
	return fringe.New(opts...)
}

func newStderrLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}
