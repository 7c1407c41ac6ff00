// Package dicev1 describes the dicebag.dice.v1.DiceService wire contract.
//
// Messages travel as google.protobuf.Struct so the service needs no generated
// code; the typed request and response values in this package convert to and
// from Struct at the edges.
package dicev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name, also used as the
// health check service name.
const ServiceName = "dicebag.dice.v1.DiceService"

// Full method names.
const (
	DiceService_Roll_FullMethodName  = "/" + ServiceName + "/Roll"
	DiceService_Parse_FullMethodName = "/" + ServiceName + "/Parse"
)

// DiceServiceServer is the server API for DiceService.
type DiceServiceServer interface {
	Roll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Parse(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDiceServiceServer registers srv on s.
func RegisterDiceServiceServer(s grpc.ServiceRegistrar, srv DiceServiceServer) {
	s.RegisterService(&DiceService_ServiceDesc, srv)
}

func _DiceService_Roll_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiceServiceServer).Roll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DiceService_Roll_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiceServiceServer).Roll(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _DiceService_Parse_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiceServiceServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DiceService_Parse_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiceServiceServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// DiceService_ServiceDesc is the grpc.ServiceDesc for DiceService.
var DiceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Roll",
			Handler:    _DiceService_Roll_Handler,
		},
		{
			MethodName: "Parse",
			Handler:    _DiceService_Parse_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dicebag/dice/v1/dice.proto",
}

// DiceServiceClient is the typed client API for DiceService.
type DiceServiceClient interface {
	Roll(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error)
	Parse(ctx context.Context, in *ParseRequest, opts ...grpc.CallOption) (*ParseResponse, error)
}

type diceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDiceServiceClient wraps a connection to the dice service.
func NewDiceServiceClient(cc grpc.ClientConnInterface) DiceServiceClient {
	return &diceServiceClient{cc: cc}
}

func (c *diceServiceClient) Roll(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error) {
	req, err := in.ToStruct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DiceService_Roll_FullMethodName, req, out, opts...); err != nil {
		return nil, err
	}
	return RollResponseFromStruct(out)
}

func (c *diceServiceClient) Parse(ctx context.Context, in *ParseRequest, opts ...grpc.CallOption) (*ParseResponse, error) {
	req, err := in.ToStruct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DiceService_Parse_FullMethodName, req, out, opts...); err != nil {
		return nil, err
	}
	return ParseResponseFromStruct(out)
}
