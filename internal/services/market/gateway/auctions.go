package gateway

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/auction"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/ledger"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/registry"
	"github.com/shopspring/decimal"
)

// AuctionStart is emitted when an auction opens.
type AuctionStart struct {
	Seq          uint64
	AssetID      core.AssetID
	Seller       core.Address
	DurationHint int64
	StartedAt    time.Time
}

// AuctionView is the external view of an asset's auction record.
type AuctionView struct {
	auction.Auction
	Collaborators []auction.Collaborator
}

// Settlement describes a completed sale.
type Settlement struct {
	AssetID  core.AssetID
	Seller   core.Address
	Buyer    core.Address
	Amount   decimal.Decimal
	SaleType auction.SaleType
	Payouts  []auction.Payout
}

// StartAuction opens an auction for id with the current owner as seller.
func (g *Gateway) StartAuction(ctx context.Context, caller core.Address, id core.AssetID, durationHint int64) (AuctionStart, error) {
	ctx, span := g.start(ctx, "StartAuction", id)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	owner, ownerErr := g.registry.OwnerOf(id)
	cmd, err := g.selfCommand(ctx, auction.CommandTypeStart, id, auction.StartPayload{
		Operator:     caller,
		Seller:       owner,
		DurationHint: durationHint,
	})
	if err != nil {
		return AuctionStart{}, spanError(span, err)
	}
	decision := auction.Decide(g.auctions, cmd, g.clock)
	if ownerErr != nil && (!decision.Rejected() || apperrors.HasCode(decision.Err(), apperrors.CodeInvalidSeller)) {
		return AuctionStart{}, spanError(span, ownerErr)
	}
	stored, err := g.commit(ctx, decision)
	if err != nil {
		return AuctionStart{}, spanError(span, err)
	}
	started := g.auctions.Auction(id)
	return AuctionStart{
		Seq:          stored[0].Seq,
		AssetID:      id,
		Seller:       started.Seller,
		DurationHint: started.DurationHint,
		StartedAt:    started.StartedAt,
	}, nil
}

// SetCollaborators replaces the primary-sale split for id.
func (g *Gateway) SetCollaborators(ctx context.Context, caller core.Address, id core.AssetID, addresses []core.Address, percentages []core.Percent) error {
	ctx, span := g.start(ctx, "SetCollaborators", id)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	cmd, err := g.selfCommand(ctx, auction.CommandTypeSetCollaborators, id, auction.SetCollaboratorsPayload{
		Operator:    caller,
		Addresses:   addresses,
		Percentages: percentages,
	})
	if err != nil {
		return spanError(span, err)
	}
	decision := auction.Decide(g.auctions, cmd, g.clock)
	if decision.Rejected() {
		return spanError(span, decision.Err())
	}
	if _, err := g.registry.Asset(id); err != nil {
		return spanError(span, err)
	}
	_, err = g.commit(ctx, decision)
	return spanError(span, err)
}

// Bid relays a bid of amount on behalf of bidder. The attached payment moves
// into custody.
func (g *Gateway) Bid(ctx context.Context, caller core.Address, id core.AssetID, previousOwner, bidder core.Address, amount decimal.Decimal) error {
	ctx, span := g.start(ctx, "Bid", id)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	bidCmd, err := g.selfCommand(ctx, auction.CommandTypeBid, id, auction.BidPayload{
		Operator:      caller,
		PreviousOwner: previousOwner,
		Bidder:        bidder,
		Amount:        amount,
	})
	if err != nil {
		return spanError(span, err)
	}
	receiveCmd, err := g.selfCommand(ctx, ledger.CommandTypeReceive, id, ledger.ReceivePayload{From: bidder, Amount: amount})
	if err != nil {
		return spanError(span, err)
	}
	_, err = g.commit(ctx,
		auction.Decide(g.auctions, bidCmd, g.clock),
		ledger.Decide(g.ledger, receiveCmd, g.policy, g.clock),
	)
	return spanError(span, err)
}

// EndAuction settles the auction for id: ownership moves to the highest
// bidder and the proceeds are paid out, or nothing happens at all.
func (g *Gateway) EndAuction(ctx context.Context, caller core.Address, id core.AssetID) (Settlement, error) {
	ctx, span := g.start(ctx, "EndAuction", id)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	var artist core.Address
	if asset, err := g.registry.Asset(id); err == nil {
		artist = asset.Artist
	}
	endCmd, err := g.selfCommand(ctx, auction.CommandTypeEnd, id, auction.EndPayload{Operator: caller, Artist: artist})
	if err != nil {
		return Settlement{}, spanError(span, err)
	}
	endDecision := auction.Decide(g.auctions, endCmd, g.clock)
	if endDecision.Rejected() {
		return Settlement{}, spanError(span, endDecision.Err())
	}
	var settled auction.SettledPayload
	if err := endDecision.Events[0].Decode(&settled); err != nil {
		return Settlement{}, spanError(span, apperrors.Wrap(apperrors.CodeUnknown, "decode settlement", err))
	}

	transferCmd, err := g.selfCommand(ctx, registry.CommandTypeTransfer, id, registry.TransferPayload{
		From: settled.Seller,
		To:   settled.Buyer,
	})
	if err != nil {
		return Settlement{}, spanError(span, err)
	}
	payCmd, err := g.selfCommand(ctx, ledger.CommandTypePay, id, ledger.PayPayload{Payments: paymentsFor(settled.Payouts)})
	if err != nil {
		return Settlement{}, spanError(span, err)
	}
	if _, err := g.commit(ctx,
		endDecision,
		registry.Decide(g.registry, transferCmd, g.clock),
		ledger.Decide(g.ledger, payCmd, g.policy, g.clock),
	); err != nil {
		return Settlement{}, spanError(span, err)
	}
	return Settlement{
		AssetID:  id,
		Seller:   settled.Seller,
		Buyer:    settled.Buyer,
		Amount:   settled.Amount,
		SaleType: settled.SaleType,
		Payouts:  settled.Payouts,
	}, nil
}

// WithdrawOverbid pays account everything it is owed for being outbid on id.
func (g *Gateway) WithdrawOverbid(ctx context.Context, caller core.Address, id core.AssetID, account core.Address) (decimal.Decimal, error) {
	ctx, span := g.start(ctx, "WithdrawOverbid", id)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	withdrawCmd, err := g.selfCommand(ctx, auction.CommandTypeWithdraw, id, auction.WithdrawPayload{
		Requester: caller,
		Account:   account,
	})
	if err != nil {
		return decimal.Zero, spanError(span, err)
	}
	decision := auction.Decide(g.auctions, withdrawCmd, g.clock)
	if decision.Rejected() {
		return decimal.Zero, spanError(span, decision.Err())
	}
	amount := g.auctions.Withdrawable(id, account)
	payCmd, err := g.selfCommand(ctx, ledger.CommandTypePay, id, ledger.PayPayload{Payments: []ledger.Payment{
		{Address: account, Amount: amount, Reason: "overbid"},
	}})
	if err != nil {
		return decimal.Zero, spanError(span, err)
	}
	if _, err := g.commit(ctx, decision, ledger.Decide(g.ledger, payCmd, g.policy, g.clock)); err != nil {
		return decimal.Zero, spanError(span, err)
	}
	return amount, nil
}

// GetAuction returns the auction record for a minted asset.
func (g *Gateway) GetAuction(ctx context.Context, id core.AssetID) (AuctionView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := g.registry.Asset(id); err != nil {
		return AuctionView{}, err
	}
	return AuctionView{
		Auction:       g.auctions.Auction(id),
		Collaborators: g.auctions.Collaborators(id),
	}, nil
}

// Withdrawable returns the escrowed overbid owed to account for id.
func (g *Gateway) Withdrawable(ctx context.Context, id core.AssetID, account core.Address) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.auctions.Withdrawable(id, account)
}

func paymentsFor(payouts []auction.Payout) []ledger.Payment {
	payments := make([]ledger.Payment, 0, len(payouts))
	for _, p := range payouts {
		payments = append(payments, ledger.Payment{Address: p.Address, Amount: p.Amount, Reason: string(p.Role)})
	}
	return payments
}
