package roundv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "homerun.round.v1.RoundService"

const (
	RoundService_Initialize_FullMethodName      = "/" + ServiceName + "/Initialize"
	RoundService_Play_FullMethodName            = "/" + ServiceName + "/Play"
	RoundService_Score_FullMethodName           = "/" + ServiceName + "/Score"
	RoundService_Claim_FullMethodName           = "/" + ServiceName + "/Claim"
	RoundService_Pause_FullMethodName           = "/" + ServiceName + "/Pause"
	RoundService_Resume_FullMethodName          = "/" + ServiceName + "/Resume"
	RoundService_Profit_FullMethodName          = "/" + ServiceName + "/Profit"
	RoundService_Kill_FullMethodName            = "/" + ServiceName + "/Kill"
	RoundService_GetRound_FullMethodName        = "/" + ServiceName + "/GetRound"
	RoundService_ListRoundEvents_FullMethodName = "/" + ServiceName + "/ListRoundEvents"
	RoundService_GetBalance_FullMethodName      = "/" + ServiceName + "/GetBalance"
)

// RoundServiceServer is the server API for RoundService.
type RoundServiceServer interface {
	Initialize(context.Context, *CommandRequest) (*CommandResponse, error)
	Play(context.Context, *CommandRequest) (*CommandResponse, error)
	Score(context.Context, *ScoreRequest) (*CommandResponse, error)
	Claim(context.Context, *CommandRequest) (*CommandResponse, error)
	Pause(context.Context, *CommandRequest) (*CommandResponse, error)
	Resume(context.Context, *CommandRequest) (*CommandResponse, error)
	Profit(context.Context, *CommandRequest) (*CommandResponse, error)
	Kill(context.Context, *CommandRequest) (*CommandResponse, error)
	GetRound(context.Context, *GetRoundRequest) (*GetRoundResponse, error)
	ListRoundEvents(context.Context, *ListRoundEventsRequest) (*ListRoundEventsResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	mustEmbedUnimplementedRoundServiceServer()
}

// UnimplementedRoundServiceServer must be embedded by implementations.
type UnimplementedRoundServiceServer struct{}

func (UnimplementedRoundServiceServer) Initialize(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Initialize not implemented")
}
func (UnimplementedRoundServiceServer) Play(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Play not implemented")
}
func (UnimplementedRoundServiceServer) Score(context.Context, *ScoreRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Score not implemented")
}
func (UnimplementedRoundServiceServer) Claim(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Claim not implemented")
}
func (UnimplementedRoundServiceServer) Pause(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Pause not implemented")
}
func (UnimplementedRoundServiceServer) Resume(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Resume not implemented")
}
func (UnimplementedRoundServiceServer) Profit(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Profit not implemented")
}
func (UnimplementedRoundServiceServer) Kill(context.Context, *CommandRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Kill not implemented")
}
func (UnimplementedRoundServiceServer) GetRound(context.Context, *GetRoundRequest) (*GetRoundResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRound not implemented")
}
func (UnimplementedRoundServiceServer) ListRoundEvents(context.Context, *ListRoundEventsRequest) (*ListRoundEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRoundEvents not implemented")
}
func (UnimplementedRoundServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedRoundServiceServer) mustEmbedUnimplementedRoundServiceServer() {}

// RegisterRoundServiceServer registers srv on s.
func RegisterRoundServiceServer(s grpc.ServiceRegistrar, srv RoundServiceServer) {
	s.RegisterService(&RoundService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(RoundServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RoundServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RoundServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RoundService_ServiceDesc is the grpc.ServiceDesc for RoundService.
var RoundService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RoundServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Initialize", Handler: unaryHandler(RoundService_Initialize_FullMethodName, RoundServiceServer.Initialize)},
		{MethodName: "Play", Handler: unaryHandler(RoundService_Play_FullMethodName, RoundServiceServer.Play)},
		{MethodName: "Score", Handler: unaryHandler(RoundService_Score_FullMethodName, RoundServiceServer.Score)},
		{MethodName: "Claim", Handler: unaryHandler(RoundService_Claim_FullMethodName, RoundServiceServer.Claim)},
		{MethodName: "Pause", Handler: unaryHandler(RoundService_Pause_FullMethodName, RoundServiceServer.Pause)},
		{MethodName: "Resume", Handler: unaryHandler(RoundService_Resume_FullMethodName, RoundServiceServer.Resume)},
		{MethodName: "Profit", Handler: unaryHandler(RoundService_Profit_FullMethodName, RoundServiceServer.Profit)},
		{MethodName: "Kill", Handler: unaryHandler(RoundService_Kill_FullMethodName, RoundServiceServer.Kill)},
		{MethodName: "GetRound", Handler: unaryHandler(RoundService_GetRound_FullMethodName, RoundServiceServer.GetRound)},
		{MethodName: "ListRoundEvents", Handler: unaryHandler(RoundService_ListRoundEvents_FullMethodName, RoundServiceServer.ListRoundEvents)},
		{MethodName: "GetBalance", Handler: unaryHandler(RoundService_GetBalance_FullMethodName, RoundServiceServer.GetBalance)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "homerun/round/v1/round.json",
}

// RoundServiceClient is the client API for RoundService.
type RoundServiceClient interface {
	Initialize(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Play(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Score(ctx context.Context, in *ScoreRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Claim(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Pause(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Resume(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Profit(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Kill(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	GetRound(ctx context.Context, in *GetRoundRequest, opts ...grpc.CallOption) (*GetRoundResponse, error)
	ListRoundEvents(ctx context.Context, in *ListRoundEventsRequest, opts ...grpc.CallOption) (*ListRoundEventsResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
}

type roundServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRoundServiceClient wraps a connection.
func NewRoundServiceClient(cc grpc.ClientConnInterface) RoundServiceClient {
	return &roundServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(ContentSubtype)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roundServiceClient) Initialize(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Initialize_FullMethodName, in, opts)
}

func (c *roundServiceClient) Play(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Play_FullMethodName, in, opts)
}

func (c *roundServiceClient) Score(ctx context.Context, in *ScoreRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[ScoreRequest, CommandResponse](ctx, c.cc, RoundService_Score_FullMethodName, in, opts)
}

func (c *roundServiceClient) Claim(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Claim_FullMethodName, in, opts)
}

func (c *roundServiceClient) Pause(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Pause_FullMethodName, in, opts)
}

func (c *roundServiceClient) Resume(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Resume_FullMethodName, in, opts)
}

func (c *roundServiceClient) Profit(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Profit_FullMethodName, in, opts)
}

func (c *roundServiceClient) Kill(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	return invoke[CommandRequest, CommandResponse](ctx, c.cc, RoundService_Kill_FullMethodName, in, opts)
}

func (c *roundServiceClient) GetRound(ctx context.Context, in *GetRoundRequest, opts ...grpc.CallOption) (*GetRoundResponse, error) {
	return invoke[GetRoundRequest, GetRoundResponse](ctx, c.cc, RoundService_GetRound_FullMethodName, in, opts)
}

func (c *roundServiceClient) ListRoundEvents(ctx context.Context, in *ListRoundEventsRequest, opts ...grpc.CallOption) (*ListRoundEventsResponse, error) {
	return invoke[ListRoundEventsRequest, ListRoundEventsResponse](ctx, c.cc, RoundService_ListRoundEvents_FullMethodName, in, opts)
}

func (c *roundServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceRequest, GetBalanceResponse](ctx, c.cc, RoundService_GetBalance_FullMethodName, in, opts)
}
