package grpc

import (
	"context"
	"github.com/litetable/litetable-sheet/internal/table"
	grpc2 "google.golang.org/grpc"
)

const (
	serviceName         = "litetable.sheet.v1.Replica"
	pushFullMethod      = "/" + serviceName + "/Push"
	subscribeFullMethod = "/" + serviceName + "/Subscribe"
)

// PushRequest carries updates produced by another replica.
type PushRequest struct {
	Updates []table.Update `json:"updates"`
}

// PushResponse reports how many updates of the request were applied.
type PushResponse struct {
	Applied int `json:"applied"`
}

// SubscribeRequest opens a stream of every update the replica applies from now on.
type SubscribeRequest struct {
	ClientID string `json:"clientId"`
}

// ReplicaServer is the server API of the replica service.
type ReplicaServer interface {
	Push(ctx context.Context, req *PushRequest) (*PushResponse, error)
	Subscribe(req *SubscribeRequest, stream grpc2.ServerStreamingServer[table.Update]) error
}

func _Replica_Push_Handler(srv any, ctx context.Context, dec func(any) error,
	interceptor grpc2.UnaryServerInterceptor) (any, error) {
	in := new(PushRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReplicaServer).Push(ctx, in)
	}
	info := &grpc2.UnaryServerInfo{
		Server:     srv,
		FullMethod: pushFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReplicaServer).Push(ctx, req.(*PushRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Replica_Subscribe_Handler(srv any, stream grpc2.ServerStream) error {
	m := new(SubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ReplicaServer).Subscribe(m, &grpc2.GenericServerStream[SubscribeRequest, table.Update]{ServerStream: stream})
}

// Replica_ServiceDesc describes the replica service for grpc.Server.RegisterService.
var Replica_ServiceDesc = grpc2.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ReplicaServer)(nil),
	Methods: []grpc2.MethodDesc{
		{
			MethodName: "Push",
			Handler:    _Replica_Push_Handler,
		},
	},
	Streams: []grpc2.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       _Replica_Subscribe_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "litetable/sheet/v1/replica.proto",
}

// ReplicaClient is the client API of the replica service.
type ReplicaClient interface {
	Push(ctx context.Context, in *PushRequest, opts ...grpc2.CallOption) (*PushResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc2.CallOption) (grpc2.ServerStreamingClient[table.Update], error)
}

type replicaClient struct {
	cc grpc2.ClientConnInterface
}

// NewReplicaClient returns a client for the replica service. Calls use the JSON codec.
func NewReplicaClient(cc grpc2.ClientConnInterface) ReplicaClient {
	return &replicaClient{cc: cc}
}

func (c *replicaClient) Push(ctx context.Context, in *PushRequest, opts ...grpc2.CallOption) (*PushResponse, error) {
	opts = append([]grpc2.CallOption{grpc2.CallContentSubtype(codecName)}, opts...)
	out := new(PushResponse)
	if err := c.cc.Invoke(ctx, pushFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *replicaClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc2.CallOption) (grpc2.ServerStreamingClient[table.Update], error) {
	opts = append([]grpc2.CallOption{grpc2.CallContentSubtype(codecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &Replica_ServiceDesc.Streams[0], subscribeFullMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc2.GenericClientStream[SubscribeRequest, table.Update]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
