package market

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls MarketService over a gRPC connection using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *Client) MintToken(ctx context.Context, in *MintTokenRequest, opts ...grpc.CallOption) (*MintTokenResponse, error) {
	out := new(MintTokenResponse)
	if err := c.invoke(ctx, MintToken_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetToken(ctx context.Context, in *GetTokenRequest, opts ...grpc.CallOption) (*GetTokenResponse, error) {
	out := new(GetTokenResponse)
	if err := c.invoke(ctx, GetToken_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTotalNumberOfNft(ctx context.Context, in *GetTotalNumberOfNftRequest, opts ...grpc.CallOption) (*GetTotalNumberOfNftResponse, error) {
	out := new(GetTotalNumberOfNftResponse)
	if err := c.invoke(ctx, GetTotalNumberOfNft_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Approve(ctx context.Context, in *ApproveRequest, opts ...grpc.CallOption) (*ApproveResponse, error) {
	out := new(ApproveResponse)
	if err := c.invoke(ctx, Approve_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartAuction(ctx context.Context, in *StartAuctionRequest, opts ...grpc.CallOption) (*StartAuctionResponse, error) {
	out := new(StartAuctionResponse)
	if err := c.invoke(ctx, StartAuction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetCollaborators(ctx context.Context, in *SetCollaboratorsRequest, opts ...grpc.CallOption) (*SetCollaboratorsResponse, error) {
	out := new(SetCollaboratorsResponse)
	if err := c.invoke(ctx, SetCollaborators_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Bid(ctx context.Context, in *BidRequest, opts ...grpc.CallOption) (*BidResponse, error) {
	out := new(BidResponse)
	if err := c.invoke(ctx, Bid_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EndAuction(ctx context.Context, in *EndAuctionRequest, opts ...grpc.CallOption) (*EndAuctionResponse, error) {
	out := new(EndAuctionResponse)
	if err := c.invoke(ctx, EndAuction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WithdrawOverbid(ctx context.Context, in *WithdrawOverbidRequest, opts ...grpc.CallOption) (*WithdrawOverbidResponse, error) {
	out := new(WithdrawOverbidResponse)
	if err := c.invoke(ctx, WithdrawOverbid_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAuction(ctx context.Context, in *GetAuctionRequest, opts ...grpc.CallOption) (*GetAuctionResponse, error) {
	out := new(GetAuctionResponse)
	if err := c.invoke(ctx, GetAuction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWithdrawable(ctx context.Context, in *GetWithdrawableRequest, opts ...grpc.CallOption) (*GetWithdrawableResponse, error) {
	out := new(GetWithdrawableResponse)
	if err := c.invoke(ctx, GetWithdrawable_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	out := new(GetBalanceResponse)
	if err := c.invoke(ctx, GetBalance_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustody(ctx context.Context, in *GetCustodyRequest, opts ...grpc.CallOption) (*GetCustodyResponse, error) {
	out := new(GetCustodyResponse)
	if err := c.invoke(ctx, GetCustody_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	out := new(ListEventsResponse)
	if err := c.invoke(ctx, ListEvents_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
