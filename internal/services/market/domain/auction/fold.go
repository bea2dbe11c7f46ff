package auction

import (
	"fmt"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/shopspring/decimal"
)

// Fold applies an event to engine state. Events owned by other components
// are ignored. It returns an error when an engine event cannot be decoded or
// when the recorded setup disagrees with the state's operator and fees.
func Fold(state State, evt event.Event) (State, error) {
	state.init()
	switch evt.Type {
	case EventTypeCallerConfigured:
		var payload CallerConfiguredPayload
		if err := evt.Decode(&payload); err != nil {
			return state, foldError(evt, err)
		}
		if err := state.matchSetup(payload); err != nil {
			return state, err
		}
		state.Caller = payload.Caller
	case EventTypeStarted:
		var payload StartedPayload
		if err := evt.Decode(&payload); err != nil {
			return state, foldError(evt, err)
		}
		a := state.Auction(evt.AssetID)
		a.Active = true
		a.Seller = payload.Seller
		a.HighestBid = decimal.Zero
		a.HighestBidder = ""
		a.DurationHint = payload.DurationHint
		a.StartedAt = evt.Timestamp
		state.auctions[evt.AssetID] = a
	case EventTypeCollaboratorsSet:
		var payload CollaboratorsSetPayload
		if err := evt.Decode(&payload); err != nil {
			return state, foldError(evt, err)
		}
		if len(payload.Collaborators) == 0 {
			delete(state.collaborators, evt.AssetID)
		} else {
			state.collaborators[evt.AssetID] = payload.Collaborators
		}
	case EventTypeBidPlaced:
		var payload BidPlacedPayload
		if err := evt.Decode(&payload); err != nil {
			return state, foldError(evt, err)
		}
		if !payload.PreviousBidder.IsZero() {
			state.credit(evt.AssetID, payload.PreviousBidder, payload.PreviousBid)
		}
		a := state.Auction(evt.AssetID)
		a.HighestBid = payload.Amount
		a.HighestBidder = payload.Bidder
		state.auctions[evt.AssetID] = a
	case EventTypeOverbidWithdrawn:
		var payload OverbidWithdrawnPayload
		if err := evt.Decode(&payload); err != nil {
			return state, foldError(evt, err)
		}
		if accounts, ok := state.escrow[evt.AssetID]; ok {
			delete(accounts, payload.Account)
			if len(accounts) == 0 {
				delete(state.escrow, evt.AssetID)
			}
		}
	case EventTypeSettled:
		a := state.Auction(evt.AssetID)
		a.Active = false
		a.HighestBid = decimal.Zero
		a.HighestBidder = ""
		a.SaleCount++
		state.auctions[evt.AssetID] = a
		delete(state.collaborators, evt.AssetID)
	}
	return state, nil
}

func foldError(evt event.Event, err error) error {
	return fmt.Errorf("auction fold %s: %w", evt.Type, err)
}

// matchSetup fails when the journaled operator or fee schedule differs from
// the one the engine was built with. Settlements of auctions already running
// depend on the recorded schedule.
func (s State) matchSetup(recorded CallerConfiguredPayload) error {
	if recorded.Operator != s.Operator {
		return apperrors.WithMetadata(apperrors.CodeConfigMismatch, "auction operator differs from the recorded operator",
			map[string]string{"Recorded": recorded.Operator.String(), "Configured": s.Operator.String()})
	}
	if recorded.Fees != s.Fees {
		return apperrors.WithMetadata(apperrors.CodeConfigMismatch, "fee schedule differs from the recorded schedule",
			map[string]string{"Recorded": fmt.Sprintf("%+v", recorded.Fees), "Configured": fmt.Sprintf("%+v", s.Fees)})
	}
	return nil
}

func (s State) credit(id core.AssetID, account core.Address, amount decimal.Decimal) {
	accounts, ok := s.escrow[id]
	if !ok {
		accounts = map[core.Address]decimal.Decimal{}
		s.escrow[id] = accounts
	}
	accounts[account] = s.Withdrawable(id, account).Add(amount)
}
