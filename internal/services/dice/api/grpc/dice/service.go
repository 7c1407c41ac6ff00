// Package dice implements the dicebag.dice.v1.DiceService gRPC API.
package dice

import (
	"context"

	"github.com/louisbranch/dicebag/internal/core/roller"
	platerrors "github.com/louisbranch/dicebag/internal/platform/errors"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	grpcmeta "github.com/louisbranch/dicebag/internal/services/dice/api/grpc/metadata"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service implements dicev1.DiceServiceServer on top of a roller.
type Service struct {
	roller *roller.Roller
}

// NewService creates a dice service. A nil roller gets the default one.
func NewService(r *roller.Roller) *Service {
	if r == nil {
		r = roller.New()
	}
	return &Service{roller: r}
}

// Roll parses and rolls the requested notation.
func (s *Service) Roll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := dicev1.RollRequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	outcome, err := s.roller.Roll(ctx, req.RollerRequest())
	if err != nil {
		return nil, platerrors.HandleError(platerrors.FromRoll(err, req.Notation), grpcmeta.LocaleFromContext(ctx))
	}

	return encode(dicev1.NewRollResponse(outcome).ToStruct())
}

// Parse validates notation without rolling it.
func (s *Service) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := dicev1.ParseRequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	spec, err := s.roller.Parse(req.Notation)
	if err != nil {
		return nil, platerrors.HandleError(platerrors.FromRoll(err, req.Notation), grpcmeta.LocaleFromContext(ctx))
	}

	return encode(dicev1.NewParseResponse(spec).ToStruct())
}

func encode(out *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}
