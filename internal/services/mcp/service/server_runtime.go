package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/dicebag/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultHTTPAddr binds HTTP transport to localhost unless configured.
const defaultHTTPAddr = "localhost:8081"

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	transport, err := ParseTransport(string(cfg.Transport))
	if err != nil {
		return err
	}

	dice, err := newDiceClient(ctx, cfg)
	if err != nil {
		return err
	}
	server := New(dice, cfg.Locale)

	switch transport {
	case TransportHTTP:
		defer server.Close()
		addr := cfg.HTTPAddr
		if addr == "" {
			addr = defaultHTTPAddr
		}
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return server.ServeHTTP(ctx, lis)
	default:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP session and closes the dice client on exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close dice client: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close dice client: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeHTTP serves streamable HTTP on lis until ctx ends, then shuts down
// gracefully.
func (s *Server) ServeHTTP(ctx context.Context, lis net.Listener) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if lis == nil {
		return fmt.Errorf("listener is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Handle("/mcp", handler)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("MCP HTTP listening at %s", lis.Addr())
		serveErr <- httpServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP: %w", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	}
}
