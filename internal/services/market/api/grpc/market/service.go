// Package market exposes the marketplace gateway as the market.v1 gRPC
// service. Messages travel as JSON under the "json" content-subtype.
package market

import (
	"context"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/requestctx"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/auction"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/louisbranch/nftmarket/internal/services/market/gateway"
)

// Service adapts the gateway to MarketServiceServer.
type Service struct {
	gw *gateway.Gateway
}

// NewService creates a market service backed by gw.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) ready() error {
	if s == nil || s.gw == nil {
		return apperrors.New(apperrors.CodeUnknown, "market gateway is not configured")
	}
	return nil
}

func callerFrom(ctx context.Context) core.Address {
	return core.Address(requestctx.CallerFromContext(ctx))
}

// MintToken mints a new asset.
func (s *Service) MintToken(ctx context.Context, in *MintTokenRequest) (*MintTokenResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	recipient, err := parseAddress(in.Recipient, "recipient")
	if err != nil {
		return nil, err
	}
	id, err := s.gw.MintToken(ctx, callerFrom(ctx), in.Title, in.ContentID, recipient)
	if err != nil {
		return nil, err
	}
	return &MintTokenResponse{AssetID: uint64(id)}, nil
}

// GetToken returns one asset.
func (s *Service) GetToken(ctx context.Context, in *GetTokenRequest) (*GetTokenResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	token, err := s.gw.GetToken(ctx, core.AssetID(in.AssetID))
	if err != nil {
		return nil, err
	}
	return &GetTokenResponse{Token: TokenToWire(token)}, nil
}

// GetTotalNumberOfNft returns the number of minted assets.
func (s *Service) GetTotalNumberOfNft(ctx context.Context, _ *GetTotalNumberOfNftRequest) (*GetTotalNumberOfNftResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return &GetTotalNumberOfNftResponse{Count: s.gw.GetTotalNumberOfNft(ctx)}, nil
}

// Approve lets the marketplace transfer the caller's asset at settlement.
func (s *Service) Approve(ctx context.Context, in *ApproveRequest) (*ApproveResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.gw.Approve(ctx, callerFrom(ctx), core.AssetID(in.AssetID)); err != nil {
		return nil, err
	}
	return &ApproveResponse{}, nil
}

// StartAuction opens an auction.
func (s *Service) StartAuction(ctx context.Context, in *StartAuctionRequest) (*StartAuctionResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	started, err := s.gw.StartAuction(ctx, callerFrom(ctx), core.AssetID(in.AssetID), in.DurationHint)
	if err != nil {
		return nil, err
	}
	return &StartAuctionResponse{AuctionStart: AuctionStart{
		Seq:          started.Seq,
		AssetID:      uint64(started.AssetID),
		Seller:       started.Seller.String(),
		DurationHint: started.DurationHint,
		StartedAt:    started.StartedAt,
	}}, nil
}

// SetCollaborators replaces the primary-sale split of an asset.
func (s *Service) SetCollaborators(ctx context.Context, in *SetCollaboratorsRequest) (*SetCollaboratorsResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	addresses := make([]core.Address, 0, len(in.Addresses))
	for _, raw := range in.Addresses {
		addr, err := parseAddress(raw, "collaborator")
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}
	percentages := make([]core.Percent, 0, len(in.Percentages))
	for _, pct := range in.Percentages {
		percentages = append(percentages, core.Percent(pct))
	}
	if err := s.gw.SetCollaborators(ctx, callerFrom(ctx), core.AssetID(in.AssetID), addresses, percentages); err != nil {
		return nil, err
	}
	return &SetCollaboratorsResponse{}, nil
}

// Bid relays a bid.
func (s *Service) Bid(ctx context.Context, in *BidRequest) (*BidResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	previousOwner, err := parseAddress(in.PreviousOwner, "previous_owner")
	if err != nil {
		return nil, err
	}
	bidder, err := parseAddress(in.Bidder, "bidder")
	if err != nil {
		return nil, err
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.gw.Bid(ctx, callerFrom(ctx), core.AssetID(in.AssetID), previousOwner, bidder, amount); err != nil {
		return nil, err
	}
	return &BidResponse{}, nil
}

// EndAuction settles an auction.
func (s *Service) EndAuction(ctx context.Context, in *EndAuctionRequest) (*EndAuctionResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	settlement, err := s.gw.EndAuction(ctx, callerFrom(ctx), core.AssetID(in.AssetID))
	if err != nil {
		return nil, err
	}
	return &EndAuctionResponse{Settlement: SettlementToWire(settlement)}, nil
}

// WithdrawOverbid pays out an escrowed overbid.
func (s *Service) WithdrawOverbid(ctx context.Context, in *WithdrawOverbidRequest) (*WithdrawOverbidResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	account, err := parseAddress(in.Account, "account")
	if err != nil {
		return nil, err
	}
	amount, err := s.gw.WithdrawOverbid(ctx, callerFrom(ctx), core.AssetID(in.AssetID), account)
	if err != nil {
		return nil, err
	}
	return &WithdrawOverbidResponse{Amount: amount.String()}, nil
}

// GetAuction returns an asset's auction record.
func (s *Service) GetAuction(ctx context.Context, in *GetAuctionRequest) (*GetAuctionResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	view, err := s.gw.GetAuction(ctx, core.AssetID(in.AssetID))
	if err != nil {
		return nil, err
	}
	return &GetAuctionResponse{Auction: AuctionToWire(view)}, nil
}

// GetWithdrawable returns an escrowed overbid.
func (s *Service) GetWithdrawable(ctx context.Context, in *GetWithdrawableRequest) (*GetWithdrawableResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	account, err := parseAddress(in.Account, "account")
	if err != nil {
		return nil, err
	}
	return &GetWithdrawableResponse{Amount: s.gw.Withdrawable(ctx, core.AssetID(in.AssetID), account).String()}, nil
}

// GetBalance returns the cumulative payouts to an address.
func (s *Service) GetBalance(ctx context.Context, in *GetBalanceRequest) (*GetBalanceResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	addr, err := parseAddress(in.Address, "address")
	if err != nil {
		return nil, err
	}
	return &GetBalanceResponse{Amount: s.gw.Balance(ctx, addr).String()}, nil
}

// GetCustody returns the funds held by the marketplace.
func (s *Service) GetCustody(ctx context.Context, _ *GetCustodyRequest) (*GetCustodyResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return &GetCustodyResponse{Amount: s.gw.Custody(ctx).String()}, nil
}

// ListEvents returns a page of journal history.
func (s *Service) ListEvents(ctx context.Context, in *ListEventsRequest) (*ListEventsResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	page, err := s.gw.ListEvents(ctx, in.Filter, in.PageSize, in.PageToken)
	if err != nil {
		return nil, err
	}
	resp := &ListEventsResponse{
		Events:        make([]Event, 0, len(page.Events)),
		NextPageToken: page.NextPageToken,
	}
	for _, evt := range page.Events {
		resp.Events = append(resp.Events, EventToWire(evt))
	}
	return resp, nil
}

func parseAddress(raw, field string) (core.Address, error) {
	addr, err := core.ParseAddress(raw)
	if err != nil {
		return "", apperrors.WithMetadata(apperrors.CodeInvalidAddress, err.Error(), map[string]string{"Field": field})
	}
	return addr, nil
}

// TokenToWire converts a gateway token.
func TokenToWire(token gateway.Token) Token {
	return Token{
		ID:        uint64(token.ID),
		Title:     token.Title,
		ContentID: token.ContentID,
		Creator:   token.Creator.String(),
		Artist:    token.Artist.String(),
		Owner:     token.Owner.String(),
		Approved:  token.Approved,
	}
}

// AuctionToWire converts a gateway auction view.
func AuctionToWire(view gateway.AuctionView) Auction {
	out := Auction{
		AssetID:       uint64(view.AssetID),
		Active:        view.Active,
		Seller:        view.Seller.String(),
		HighestBid:    view.HighestBid.String(),
		HighestBidder: view.HighestBidder.String(),
		DurationHint:  view.DurationHint,
		StartedAt:     view.StartedAt,
		SaleCount:     view.SaleCount,
	}
	for _, c := range view.Collaborators {
		out.Collaborators = append(out.Collaborators, Collaborator{Address: c.Address.String(), Percent: int(c.Percent)})
	}
	return out
}

// SettlementToWire converts a gateway settlement.
func SettlementToWire(s gateway.Settlement) Settlement {
	out := Settlement{
		AssetID:  uint64(s.AssetID),
		Seller:   s.Seller.String(),
		Buyer:    s.Buyer.String(),
		Amount:   s.Amount.String(),
		SaleType: string(s.SaleType),
		Payouts:  make([]Payout, 0, len(s.Payouts)),
	}
	for _, p := range s.Payouts {
		out.Payouts = append(out.Payouts, payoutToWire(p))
	}
	return out
}

func payoutToWire(p auction.Payout) Payout {
	return Payout{Address: p.Address.String(), Role: string(p.Role), Amount: p.Amount.String()}
}

// EventToWire converts a journal event.
func EventToWire(evt event.Event) Event {
	return Event{
		Seq:       evt.Seq,
		Type:      string(evt.Type),
		AssetID:   uint64(evt.AssetID),
		ActorID:   evt.ActorID.String(),
		RequestID: evt.RequestID,
		Timestamp: evt.Timestamp,
		Payload:   evt.PayloadJSON,
	}
}

var _ MarketServiceServer = (*Service)(nil)
