package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	fringemcp "github.com/deixis/fringe/internal/mcp"
	"github.com/deixis/fringe/internal/report"
)

// MCPOptions holds command-line options for the mcp command.
type MCPOptions struct {
	Instructions bool
	HTTP         string
}

// NewMCPCommand creates the mcp command.
func NewMCPCommand(global *GlobalOptions) *cobra.Command {
	opts := &MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Serve the fringe tools over the Model Context Protocol.

By default the server speaks over stdio, for use as a local MCP server.
With --http it listens on the given address instead, exposing the MCP
endpoint alongside /healthz and Prometheus /metrics.

Example:
  fringe mcp
  fringe mcp --http :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Instructions, "instructions", false, "Print model instructions and exit")
	cmd.Flags().StringVar(&opts.HTTP, "http", "", "Listen on address (e.g. :9090) instead of stdio")

	return cmd
}

func runMCP(cmd *cobra.Command, global *GlobalOptions, opts *MCPOptions) error {
	if opts.Instructions {
		fmt.Fprint(cmd.OutOrStdout(), fringemcp.Instructions)
		return nil
	}

	settings, err := global.Resolve()
	if err != nil {
		return err
	}

	// Fold the command line back into the config the server is built
	// from, so tools see the same precedence as the other commands.
	cfg := settings.Config
	cfg.Binary = settings.Binary
	if settings.Timeout > 0 {
		cfg.RawTimeout = settings.Timeout.String()
	}
	if len(settings.Flags) > 0 {
		cfg.Flags = map[string]string(settings.Flags)
	}

	store := report.NewLRUStore(5, report.NewDiskStore())

	var serverOpts []fringemcp.ServerOption
	if settings.Log != nil {
		serverOpts = append(serverOpts, fringemcp.WithLogger(settings.Log))
	}
	server := fringemcp.NewServer(cfg, store, serverOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.HTTP != "" {
		return serveHTTP(ctx, cmd, server, opts.HTTP)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, cmd *cobra.Command, server *mcpsdk.Server, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: fringemcp.NewHTTPHandler(server),
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
