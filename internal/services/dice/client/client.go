// Package client gives callers one way to roll dice, either in-process or
// against a remote dice service.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/dicebag/internal/core/roller"
	platerrors "github.com/louisbranch/dicebag/internal/platform/errors"
	platformgrpc "github.com/louisbranch/dicebag/internal/platform/grpc"
	"github.com/louisbranch/dicebag/internal/platform/timeouts"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	grpcmeta "github.com/louisbranch/dicebag/internal/services/dice/api/grpc/metadata"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Dice rolls and parses notation.
type Dice interface {
	Roll(ctx context.Context, req *dicev1.RollRequest) (*dicev1.RollResponse, error)
	Parse(ctx context.Context, req *dicev1.ParseRequest) (*dicev1.ParseResponse, error)
}

// Closer is a Dice that holds resources.
type Closer interface {
	Dice
	Close() error
}

// Open returns a Remote connected to addr, or a Local using r when addr is
// blank.
func Open(ctx context.Context, addr, locale string, r *roller.Roller) (Closer, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return NewLocal(r), nil
	}
	remote, err := Dial(ctx, addr, locale)
	if err != nil {
		return nil, fmt.Errorf("connect to dice service at %s: %w", addr, err)
	}
	return remote, nil
}

// Local rolls in-process. Errors are platform domain errors.
type Local struct {
	roller *roller.Roller
}

// NewLocal creates an in-process client. A nil roller gets the default one.
func NewLocal(r *roller.Roller) *Local {
	if r == nil {
		r = roller.New()
	}
	return &Local{roller: r}
}

// Roll implements Dice.
func (l *Local) Roll(ctx context.Context, req *dicev1.RollRequest) (*dicev1.RollResponse, error) {
	if req == nil {
		req = &dicev1.RollRequest{}
	}
	outcome, err := l.roller.Roll(ctx, req.RollerRequest())
	if err != nil {
		return nil, platerrors.FromRoll(err, req.Notation)
	}
	return dicev1.NewRollResponse(outcome), nil
}

// Close implements Closer. Local holds nothing to release.
func (l *Local) Close() error {
	return nil
}

// Parse implements Dice.
func (l *Local) Parse(_ context.Context, req *dicev1.ParseRequest) (*dicev1.ParseResponse, error) {
	if req == nil {
		req = &dicev1.ParseRequest{}
	}
	spec, err := l.roller.Parse(req.Notation)
	if err != nil {
		return nil, platerrors.FromRoll(err, req.Notation)
	}
	return dicev1.NewParseResponse(spec), nil
}

// Remote calls a dice service over gRPC. Errors are gRPC status errors.
type Remote struct {
	conn   *grpc.ClientConn
	api    dicev1.DiceServiceClient
	locale string
}

// Dial connects to the dice service at addr and waits until it is healthy.
// Errors from the service are localized into locale.
func Dial(ctx context.Context, addr, locale string) (*Remote, error) {
	conn, err := platformgrpc.DialWithHealth(ctx, addr,
		platformgrpc.WithDialTimeout(timeouts.GRPCDial),
		platformgrpc.WithHealthService(dicev1.ServiceName),
	)
	if err != nil {
		return nil, err
	}
	remote := NewRemote(conn, locale)
	remote.conn = conn
	return remote, nil
}

// NewRemote wraps an existing connection. The caller owns cc.
func NewRemote(cc grpc.ClientConnInterface, locale string) *Remote {
	return &Remote{api: dicev1.NewDiceServiceClient(cc), locale: locale}
}

// Close closes a connection opened by Dial.
func (r *Remote) Close() error {
	if r == nil || r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

// Roll implements Dice.
func (r *Remote) Roll(ctx context.Context, req *dicev1.RollRequest) (*dicev1.RollResponse, error) {
	ctx, cancel := r.callContext(ctx)
	defer cancel()
	return r.api.Roll(ctx, req)
}

// Parse implements Dice.
func (r *Remote) Parse(ctx context.Context, req *dicev1.ParseRequest) (*dicev1.ParseResponse, error) {
	ctx, cancel := r.callContext(ctx)
	defer cancel()
	return r.api.Parse(ctx, req)
}

func (r *Remote) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = grpcmeta.WithOutgoingLocale(ctx, r.locale)
	return context.WithTimeout(ctx, timeouts.GRPCRequest)
}

// UserMessage returns the message to show a person for err: the localized
// detail of a gRPC status, the localized form of a domain error, or the
// error text.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	var appErr *platerrors.Error
	if errors.As(err, &appErr) {
		return platerrors.Localize(appErr, locale)
	}
	if st, ok := status.FromError(err); ok {
		for _, detail := range st.Details() {
			if msg, ok := detail.(*errdetails.LocalizedMessage); ok && msg.GetMessage() != "" {
				return msg.GetMessage()
			}
		}
		return st.Message()
	}
	return err.Error()
}

// Code returns the domain error code of err, reading the ErrorInfo reason of
// gRPC status errors.
func Code(err error) platerrors.Code {
	if err == nil {
		return ""
	}
	var appErr *platerrors.Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if st, ok := status.FromError(err); ok {
		for _, detail := range st.Details() {
			if info, ok := detail.(*errdetails.ErrorInfo); ok {
				return platerrors.Code(info.GetReason())
			}
		}
	}
	return platerrors.CodeUnknown
}
