// Package grpc holds client and server plumbing shared by the dice service
// and its callers.
package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/dicebag/internal/platform/timeouts"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dialer describes the gRPC dial behavior used by helpers.
type Dialer interface {
	DialContext(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)
}

// DialerFunc adapts a dial function to the Dialer interface.
type DialerFunc func(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialContext implements Dialer for DialerFunc.
func (fn DialerFunc) DialContext(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	return fn(ctx, addr, opts...)
}

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	// DialStageConnect indicates a dial connection failure.
	DialStageConnect DialStage = "connect"
	// DialStageHealth indicates the health check failed.
	DialStageHealth DialStage = "health"
)

// DialError wraps dial and health check failures with a stage indicator.
type DialError struct {
	Addr  string
	Stage DialStage
	Err   error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	if e.Addr == "" {
		return fmt.Sprintf("gRPC %s error: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("gRPC %s error for %s: %v", e.Stage, e.Addr, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultClientDialOptions returns the dial options used to reach the dice
// service: plaintext transport plus the otelgrpc stats handler, so outbound
// calls carry trace context when a TracerProvider is registered.
func DefaultClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithBlock(),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

type dialConfig struct {
	dialer        Dialer
	timeout       time.Duration
	healthService string
	logf          func(string, ...any)
	grpcOptions   []gogrpc.DialOption
}

// DialOption configures DialWithHealth.
type DialOption func(*dialConfig)

// WithDialer replaces the default gRPC dialer.
func WithDialer(dialer Dialer) DialOption {
	return func(c *dialConfig) {
		c.dialer = dialer
	}
}

// WithDialTimeout bounds both the connection and the health wait.
// A non-positive timeout leaves the caller context in charge.
func WithDialTimeout(timeout time.Duration) DialOption {
	return func(c *dialConfig) {
		c.timeout = timeout
	}
}

// WithHealthService checks a named service instead of the server as a whole.
func WithHealthService(service string) DialOption {
	return func(c *dialConfig) {
		c.healthService = service
	}
}

// WithLogf reports health wait progress.
func WithLogf(logf func(string, ...any)) DialOption {
	return func(c *dialConfig) {
		c.logf = logf
	}
}

// WithGRPCOptions replaces DefaultClientDialOptions.
func WithGRPCOptions(opts ...gogrpc.DialOption) DialOption {
	return func(c *dialConfig) {
		c.grpcOptions = opts
	}
}

// DialWithHealth dials a gRPC endpoint and waits for the health check to
// report SERVING. The connection is closed when the health check fails.
func DialWithHealth(ctx context.Context, addr string, opts ...DialOption) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := dialConfig{
		dialer:      DialerFunc(gogrpc.DialContext),
		timeout:     timeouts.GRPCDial,
		grpcOptions: DefaultClientDialOptions(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.dialer == nil {
		cfg.dialer = DialerFunc(gogrpc.DialContext)
	}

	dialCtx := ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	conn, err := cfg.dialer.DialContext(dialCtx, addr, cfg.grpcOptions...)
	if err != nil {
		return nil, &DialError{Addr: addr, Stage: DialStageConnect, Err: err}
	}
	if err := WaitForHealth(dialCtx, conn, cfg.healthService, cfg.logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Addr: addr, Stage: DialStageHealth, Err: err}
	}
	return conn, nil
}
