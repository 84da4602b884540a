package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gacha.v1.GachaService"

// Full method names
const (
	DrawMethod   = "/" + ServiceName + "/Draw"
	StatusMethod = "/" + ServiceName + "/Status"
	ReloadMethod = "/" + ServiceName + "/Reload"
)

// GachaServiceServer is the server API of gacha.v1.GachaService.
// Messages are well-known types so the service needs no generated code:
//
//	Draw({"query": string}) -> {"query", "poolSize", "listings": [...]}
//	Status(Empty) -> {"phase", "listings", "source", "loadedAt", "lastError"}
//	Reload(Empty) -> Status
type GachaServiceServer interface {
	Draw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Status(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Reload(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterGachaServiceServer registers srv on s.
func RegisterGachaServiceServer(s grpc.ServiceRegistrar, srv GachaServiceServer) {
	s.RegisterService(&gachaServiceDesc, srv)
}

var gachaServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GachaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Draw",
			Handler: unaryHandler(DrawMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(srv GachaServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
					return srv.Draw(ctx, req)
				}),
		},
		{
			MethodName: "Status",
			Handler: unaryHandler(StatusMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
				func(srv GachaServiceServer, ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
					return srv.Status(ctx, req)
				}),
		},
		{
			MethodName: "Reload",
			Handler: unaryHandler(ReloadMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
				func(srv GachaServiceServer, ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
					return srv.Reload(ctx, req)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gacha/v1/gacha.proto",
}

// unaryHandler builds a grpc.MethodDesc handler that decodes a Req, runs the
// interceptor chain and dispatches to call.
func unaryHandler[Req any](
	fullMethod string,
	newReq func() Req,
	call func(GachaServiceServer, context.Context, Req) (*structpb.Struct, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GachaServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GachaServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
