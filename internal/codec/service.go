package codec

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region service-desc
// The Diagnoser service carries google.protobuf.Struct messages in both
// directions so no generated stubs are needed.

const (
	ServiceName          = "chd.v1.Diagnoser"
	DiagnoseFullMethod   = "/chd.v1.Diagnoser/Diagnose"
	diagnoseMethodName   = "Diagnose"
	diagnoserProtoSource = "chd/v1/diagnoser.proto"
)

// DiagnoserServer is the server API for the Diagnoser service.
type DiagnoserServer interface {
	Diagnose(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DiagnoserClient is the client API for the Diagnoser service.
type DiagnoserClient interface {
	Diagnose(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type diagnoserClient struct {
	cc grpc.ClientConnInterface
}

// NewDiagnoserClient wraps cc in the Diagnoser client API.
func NewDiagnoserClient(cc grpc.ClientConnInterface) DiagnoserClient {
	return &diagnoserClient{cc: cc}
}

func (c *diagnoserClient) Diagnose(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DiagnoseFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func diagnoseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiagnoserServer).Diagnose(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DiagnoseFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiagnoserServer).Diagnose(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// DiagnoserServiceDesc is the grpc.ServiceDesc for the Diagnoser service.
var DiagnoserServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiagnoserServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: diagnoseMethodName,
			Handler:    diagnoseHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: diagnoserProtoSource,
}

// RegisterDiagnoserServer registers srv on s.
func RegisterDiagnoserServer(s grpc.ServiceRegistrar, srv DiagnoserServer) {
	s.RegisterService(&DiagnoserServiceDesc, srv)
}

// #endregion service-desc
