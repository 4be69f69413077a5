// Package mcp provides the fringe MCP server, registering all tools
// and publishing model instructions.
package mcp

import (
	"context"
	_ "embed"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/deixis/fringe"
	"github.com/deixis/fringe/internal/config"
	"github.com/deixis/fringe/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers. The mutex
// serialises flexfringe invocations: the client records the trace file
// of the last learning run, and runs are synchronous by design.
type handler struct {
	mu     sync.Mutex
	client *fringe.Client
	newErr error // client construction failure, surfaced per tool call
	cfg    *config.Config
	store  report.Store
	log    logrus.FieldLogger
}

// NewServer creates an MCP server with all fringe tools registered.
// The flexfringe client is built from cfg; when the binary cannot be
// resolved the server still starts, and tools report the failure with
// install instructions.
func NewServer(cfg *config.Config, store report.Store, opts ...ServerOption) *mcp.Server {
	var so serverOptions
	for _, o := range opts {
		o(&so)
	}
	log := so.log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	h := &handler{
		cfg:   cfg,
		store: store,
		log:   log,
	}
	h.client, h.newErr = newClient(cfg, log)

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateConfigFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "fringe", Version: fringe.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "ff_status",
		Description: "Summarise the flexfringe setup: binary, Graphviz, configuration, and recent runs.",
	}, h.statusHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "ff_learn",
		Description: `Learn a state machine from a trace file with flexfringe.

The trace file must be in Abbadingo or csv format. Success means the model
files (.ff.final.json and .ff.final.dot) appear next to the trace file; the
flexfringe exit code is reported but not judged. The learned model becomes
the target for subsequent ff_predict and ff_render calls.`,
	}, h.learnHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "ff_predict",
		Description: `Score a trace file against a learned state machine.

Uses the model from the last ff_learn unless apta_file points at an explicit
.ff.final.json file. Returns per-trace score aggregates and a run id.
Results are stored for drill-down via ff_inspect.`,
	}, h.predictHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "ff_inspect",
		Description: `Drill into results from an ff_learn or ff_predict run.

Use the run_id from the tool output. For prediction runs, filter rows by
abbadingo type (e.g. "pos") or by a score ceiling: max_score=0.1 returns the
traces the model explains worst.`,
	}, h.inspectHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "ff_render",
		Description: `Render the learned automaton to an image via Graphviz dot.

Writes the image next to the model's dot file unless output is given.
Requires a prior ff_learn and the dot binary on PATH.`,
	}, h.renderHandler)

	return s
}

// ServerOption configures the fringe MCP server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	log logrus.FieldLogger
}

// WithLogger routes client and server diagnostics to log. Logging is
// off without it.
func WithLogger(log logrus.FieldLogger) ServerOption {
	return func(o *serverOptions) {
		o.log = log
	}
}

// newClient builds a fringe client from the loaded configuration.
func newClient(cfg *config.Config, log logrus.FieldLogger) (*fringe.Client, error) {
	opts := []fringe.Option{
		fringe.WithMaxOutput(cfg.MaxOutputBytes()),
		fringe.WithLogger(log),
	}
	if cfg.Binary != "" {
		opts = append(opts, fringe.WithBinary(cfg.Binary))
	}
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, fringe.WithTimeout(d))
	}
	if len(cfg.Flags) > 0 {
		opts = append(opts, fringe.WithFlags(fringe.Flags(cfg.Flags)))
	}
	return fringe.New(opts...)
}

// updateConfigFromRoots queries the client for MCP roots and reloads
// the .fringe configuration from the first file root. This is called
// during session initialization, before any tool calls.
func (h *handler) updateConfigFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		return
	}
	if len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}

	loaded, err := config.Load(u.Path)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = loaded.Config
	h.client, h.newErr = newClient(loaded.Config, h.log)
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
