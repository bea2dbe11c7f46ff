package market

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "market.v1.MarketService"

// Full method names.
const (
	MintToken_FullMethodName           = "/" + ServiceName + "/MintToken"
	GetToken_FullMethodName            = "/" + ServiceName + "/GetToken"
	GetTotalNumberOfNft_FullMethodName = "/" + ServiceName + "/GetTotalNumberOfNft"
	Approve_FullMethodName             = "/" + ServiceName + "/Approve"
	StartAuction_FullMethodName        = "/" + ServiceName + "/StartAuction"
	SetCollaborators_FullMethodName    = "/" + ServiceName + "/SetCollaborators"
	Bid_FullMethodName                 = "/" + ServiceName + "/Bid"
	EndAuction_FullMethodName          = "/" + ServiceName + "/EndAuction"
	WithdrawOverbid_FullMethodName     = "/" + ServiceName + "/WithdrawOverbid"
	GetAuction_FullMethodName          = "/" + ServiceName + "/GetAuction"
	GetWithdrawable_FullMethodName     = "/" + ServiceName + "/GetWithdrawable"
	GetBalance_FullMethodName          = "/" + ServiceName + "/GetBalance"
	GetCustody_FullMethodName          = "/" + ServiceName + "/GetCustody"
	ListEvents_FullMethodName          = "/" + ServiceName + "/ListEvents"
)

// MarketServiceServer is the server API for the marketplace.
type MarketServiceServer interface {
	MintToken(context.Context, *MintTokenRequest) (*MintTokenResponse, error)
	GetToken(context.Context, *GetTokenRequest) (*GetTokenResponse, error)
	GetTotalNumberOfNft(context.Context, *GetTotalNumberOfNftRequest) (*GetTotalNumberOfNftResponse, error)
	Approve(context.Context, *ApproveRequest) (*ApproveResponse, error)
	StartAuction(context.Context, *StartAuctionRequest) (*StartAuctionResponse, error)
	SetCollaborators(context.Context, *SetCollaboratorsRequest) (*SetCollaboratorsResponse, error)
	Bid(context.Context, *BidRequest) (*BidResponse, error)
	EndAuction(context.Context, *EndAuctionRequest) (*EndAuctionResponse, error)
	WithdrawOverbid(context.Context, *WithdrawOverbidRequest) (*WithdrawOverbidResponse, error)
	GetAuction(context.Context, *GetAuctionRequest) (*GetAuctionResponse, error)
	GetWithdrawable(context.Context, *GetWithdrawableRequest) (*GetWithdrawableResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	GetCustody(context.Context, *GetCustodyRequest) (*GetCustodyResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
}

// RegisterMarketServiceServer registers srv on s.
func RegisterMarketServiceServer(s grpc.ServiceRegistrar, srv MarketServiceServer) {
	s.RegisterService(&MarketService_ServiceDesc, srv)
}

func _MarketService_MintToken_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MintTokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).MintToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MintToken_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).MintToken(ctx, req.(*MintTokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_GetToken_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).GetToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetToken_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).GetToken(ctx, req.(*GetTokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_GetTotalNumberOfNft_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTotalNumberOfNftRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).GetTotalNumberOfNft(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetTotalNumberOfNft_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).GetTotalNumberOfNft(ctx, req.(*GetTotalNumberOfNftRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_Approve_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ApproveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).Approve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Approve_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).Approve(ctx, req.(*ApproveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_StartAuction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StartAuctionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).StartAuction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StartAuction_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).StartAuction(ctx, req.(*StartAuctionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_SetCollaborators_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetCollaboratorsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).SetCollaborators(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SetCollaborators_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).SetCollaborators(ctx, req.(*SetCollaboratorsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_Bid_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BidRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).Bid(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Bid_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).Bid(ctx, req.(*BidRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_EndAuction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EndAuctionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).EndAuction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EndAuction_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).EndAuction(ctx, req.(*EndAuctionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_WithdrawOverbid_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(WithdrawOverbidRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).WithdrawOverbid(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: WithdrawOverbid_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).WithdrawOverbid(ctx, req.(*WithdrawOverbidRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_GetAuction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetAuctionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).GetAuction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetAuction_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).GetAuction(ctx, req.(*GetAuctionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_GetWithdrawable_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetWithdrawableRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).GetWithdrawable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetWithdrawable_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).GetWithdrawable(ctx, req.(*GetWithdrawableRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_GetBalance_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetBalance_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).GetBalance(ctx, req.(*GetBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_GetCustody_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetCustodyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).GetCustody(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetCustody_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).GetCustody(ctx, req.(*GetCustodyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MarketService_ListEvents_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListEventsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketServiceServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ListEvents_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MarketServiceServer).ListEvents(ctx, req.(*ListEventsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// MarketService_ServiceDesc is the grpc.ServiceDesc for MarketService.
var MarketService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "MintToken", Handler: _MarketService_MintToken_Handler},
		{MethodName: "GetToken", Handler: _MarketService_GetToken_Handler},
		{MethodName: "GetTotalNumberOfNft", Handler: _MarketService_GetTotalNumberOfNft_Handler},
		{MethodName: "Approve", Handler: _MarketService_Approve_Handler},
		{MethodName: "StartAuction", Handler: _MarketService_StartAuction_Handler},
		{MethodName: "SetCollaborators", Handler: _MarketService_SetCollaborators_Handler},
		{MethodName: "Bid", Handler: _MarketService_Bid_Handler},
		{MethodName: "EndAuction", Handler: _MarketService_EndAuction_Handler},
		{MethodName: "WithdrawOverbid", Handler: _MarketService_WithdrawOverbid_Handler},
		{MethodName: "GetAuction", Handler: _MarketService_GetAuction_Handler},
		{MethodName: "GetWithdrawable", Handler: _MarketService_GetWithdrawable_Handler},
		{MethodName: "GetBalance", Handler: _MarketService_GetBalance_Handler},
		{MethodName: "GetCustody", Handler: _MarketService_GetCustody_Handler},
		{MethodName: "ListEvents", Handler: _MarketService_ListEvents_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "market/v1/market.proto",
}
