package mcp

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type statusParams struct{}

func (h *handler) statusHandler(ctx context.Context, req *sdkmcp.CallToolRequest, _ statusParams) (*sdkmcp.CallToolResult, any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder

	if h.client != nil {
		fmt.Fprintf(&b, "flexfringe: %s\n", h.client.Binary())
	} else {
		fmt.Fprintf(&b, "flexfringe: not installed (%v)\n", h.newErr)
	}
	if dot, err := exec.LookPath("dot"); err == nil {
		fmt.Fprintf(&b, "dot: %s\n", dot)
	} else {
		fmt.Fprintln(&b, "dot: not installed (ff_render unavailable)")
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Configuration:")
	if d := h.cfg.Timeout(); d > 0 {
		fmt.Fprintf(&b, "  timeout: %s\n", d)
	} else {
		fmt.Fprintln(&b, "  timeout: none (runs block until the process exits)")
	}
	fmt.Fprintf(&b, "  max output: %d bytes\n", h.cfg.MaxOutputBytes())
	fmt.Fprintf(&b, "  render format: %s\n", h.cfg.RenderFormat())
	if len(h.cfg.Flags) > 0 {
		keys := make([]string, 0, len(h.cfg.Flags))
		for k := range h.cfg.Flags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(&b, "  default flags:")
		for _, k := range keys {
			fmt.Fprintf(&b, "    --%s=%s\n", k, h.cfg.Flags[k])
		}
	}
	fmt.Fprintln(&b)

	if h.client != nil && h.client.TraceFile() != "" {
		fmt.Fprintf(&b, "Last learned from: %s\n", h.client.TraceFile())
	} else {
		fmt.Fprintln(&b, "No model learned yet. Start with ff_learn.")
	}

	if recent, ok := h.store.(interface{ RecentIDs() []string }); ok {
		if ids := recent.RecentIDs(); len(ids) > 0 {
			fmt.Fprintln(&b)
			fmt.Fprintf(&b, "Recent runs (%d):\n", len(ids))
			for _, id := range ids {
				fmt.Fprintf(&b, "  %s\n", id)
			}
		}
	}

	return textResult(b.String())
}
