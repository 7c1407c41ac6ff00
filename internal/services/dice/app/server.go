// Package app hosts the dice gRPC server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/louisbranch/dicebag/internal/core/roller"
	platformgrpc "github.com/louisbranch/dicebag/internal/platform/grpc"
	diceservice "github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dice"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/dicebag/internal/services/dice/api/grpc/metadata"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// Server hosts the dice service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
}

// New creates a dice server listening on addr.
func New(addr string, r *roller.Roller) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return NewWithListener(listener, r), nil
}

// NewWithListener creates a dice server on an existing listener.
func NewWithListener(listener net.Listener, r *roller.Roller) *Server {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(nil),
			interceptors.LoggingInterceptor(log.Printf),
		),
	)
	dicev1.RegisterDiceServiceServer(grpcServer, diceservice.NewService(r))
	healthServer := platformgrpc.RegisterHealth(grpcServer, dicev1.ServiceName)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
	}
}

// Addr returns the listener address for the dice server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a dice server until the context ends.
func Run(ctx context.Context, addr string, r *roller.Roller) error {
	server, err := New(addr, r)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the dice server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log.Printf("dice server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		return handleErr(err)
	case err := <-serveErr:
		return handleErr(err)
	}
}
