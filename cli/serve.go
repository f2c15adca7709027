// Package cli holds the cobra commands for the retirement-mcp binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/nowcapital/retirement-mcp/pkg/credentials"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
	transportSSE   = "sse"
)

// NewServeCmd creates the "serve" subcommand. The MCP server is built by the
// caller; this command only picks the transport and runs it.
func NewServeCmd(s *server.MCPServer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, s)
		},
	}

	cmd.Flags().String("transport", transportStdio, "Transport: 'stdio' (default), 'http' (streamable), or 'sse' (legacy)")
	cmd.Flags().String("host", "0.0.0.0", "Host to bind to (http/sse only)")
	cmd.Flags().IntP("port", "p", 8000, "Port to bind to (http/sse only)")

	return cmd
}

func runServe(cmd *cobra.Command, s *server.MCPServer) error {
	transport, _ := cmd.Flags().GetString("transport")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")

	switch transport {
	case transportStdio:
		// Blocks until stdin closes. No banner: stdout is the protocol stream.
		return server.ServeStdio(s)
	case transportHTTP:
		addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
		httpServer := server.NewStreamableHTTPServer(s,
			server.WithHTTPContextFunc(credentials.WithForwarded),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Starting streamable HTTP server on %s (endpoint /mcp)\n", addr)
		return serveUntilSignal(cmd.Context(), cmd, func() error { return httpServer.Start(addr) }, httpServer.Shutdown)
	case transportSSE:
		addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
		sseServer := server.NewSSEServer(s,
			server.WithSSEContextFunc(credentials.WithForwarded),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Starting SSE server on %s (endpoint /sse)\n", addr)
		return serveUntilSignal(cmd.Context(), cmd, func() error { return sseServer.Start(addr) }, sseServer.Shutdown)
	default:
		return fmt.Errorf("unknown transport %q (want stdio, http, or sse)", transport)
	}
}

func serveUntilSignal(ctx context.Context, cmd *cobra.Command, start func() error, shutdown func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- start()
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(cmd.OutOrStdout(), "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
