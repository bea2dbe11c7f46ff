package auction

import (
	"encoding/json"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/command"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

const (
	CommandTypeConfigureCaller  command.Type = "auction.configure_caller"
	CommandTypeStart            command.Type = "auction.start"
	CommandTypeSetCollaborators command.Type = "auction.set_collaborators"
	CommandTypeBid              command.Type = "auction.bid"
	CommandTypeWithdraw         command.Type = "auction.withdraw"
	CommandTypeEnd              command.Type = "auction.end"

	EventTypeCallerConfigured event.Type = "auction.caller_configured"
	EventTypeStarted          event.Type = "auction.started"
	EventTypeCollaboratorsSet event.Type = "auction.collaborators_set"
	EventTypeBidPlaced        event.Type = "auction.bid_placed"
	EventTypeOverbidWithdrawn event.Type = "auction.overbid_withdrawn"
	EventTypeSettled          event.Type = "auction.settled"
)

// BidTooLowMessage is surfaced verbatim when a bid does not beat the current
// highest bid.
const BidTooLowMessage = "a higher bid already exists"

// Decide returns the decision for an auction command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	if cmd.Type == CommandTypeConfigureCaller {
		return decideConfigureCaller(state, cmd, now())
	}
	if state.Caller.IsZero() || cmd.ActorID != state.Caller {
		return command.Rejectf(apperrors.CodeUnauthorized, "caller is not the configured auction caller")
	}
	switch cmd.Type {
	case CommandTypeStart:
		return decideStart(state, cmd, now())
	case CommandTypeSetCollaborators:
		return decideSetCollaborators(state, cmd, now())
	case CommandTypeBid:
		return decideBid(state, cmd, now())
	case CommandTypeWithdraw:
		return decideWithdraw(state, cmd, now())
	case CommandTypeEnd:
		return decideEnd(state, cmd, now())
	default:
		return command.Rejectf(apperrors.CodeUnknown, "unsupported auction command "+string(cmd.Type))
	}
}

func decideConfigureCaller(state State, cmd command.Command, now time.Time) command.Decision {
	if state.Admin.IsZero() || cmd.ActorID != state.Admin {
		return command.Rejectf(apperrors.CodeUnauthorized, "only the auction admin can configure the caller")
	}
	var payload ConfigureCallerPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if payload.Caller.IsZero() {
		return command.Rejectf(apperrors.CodeInvalidAddress, "caller address is required")
	}
	if !state.Caller.IsZero() {
		return command.Rejectf(apperrors.CodeCallerAlreadyConfigured, "auction caller is already configured")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeCallerConfigured, CallerConfiguredPayload{
		Caller:   payload.Caller,
		Operator: state.Operator,
		Fees:     state.Fees,
	}, now))
}

func decideStart(state State, cmd command.Command, now time.Time) command.Decision {
	var payload StartPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if !isOperator(state, payload.Operator) {
		return rejectOperator()
	}
	if state.Auction(cmd.AssetID).Active {
		return command.Rejectf(apperrors.CodeAuctionAlreadyActive, "auction already active")
	}
	if payload.Seller.IsZero() {
		return command.Rejectf(apperrors.CodeInvalidSeller, "auction seller is required")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeStarted, StartedPayload{
		Seller:       payload.Seller,
		DurationHint: payload.DurationHint,
	}, now))
}

func decideSetCollaborators(state State, cmd command.Command, now time.Time) command.Decision {
	var payload SetCollaboratorsPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if !isOperator(state, payload.Operator) {
		return rejectOperator()
	}
	if len(payload.Addresses) != len(payload.Percentages) {
		return command.Rejectf(apperrors.CodeLengthMismatch, "collaborator addresses and percentages differ in length")
	}
	collaborators := make([]Collaborator, 0, len(payload.Addresses))
	total := 0
	for i, addr := range payload.Addresses {
		if addr.IsZero() {
			return command.Reject(command.Rejection{
				Code:     apperrors.CodeInvalidAddress,
				Message:  "collaborator address is required",
				Metadata: map[string]string{"Field": "collaborator"},
			})
		}
		pct := payload.Percentages[i]
		if !pct.Valid() {
			return command.Rejectf(apperrors.CodeInvalidSplit, "collaborator percentage is outside [0,100]")
		}
		total += int(pct)
		collaborators = append(collaborators, Collaborator{Address: addr, Percent: pct})
	}
	if total > 100 {
		return command.Rejectf(apperrors.CodeInvalidSplit, "collaborator percentages exceed 100")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeCollaboratorsSet, CollaboratorsSetPayload{
		Collaborators: collaborators,
	}, now))
}

func decideBid(state State, cmd command.Command, now time.Time) command.Decision {
	var payload BidPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if !isOperator(state, payload.Operator) {
		return rejectOperator()
	}
	current := state.Auction(cmd.AssetID)
	switch {
	case !current.Active:
		return command.Rejectf(apperrors.CodeNoActiveAuction, "no active auction")
	case !payload.Amount.IsPositive():
		return command.Rejectf(apperrors.CodeZeroBid, "bid amount must be greater than zero")
	case payload.Bidder.IsZero():
		return command.Reject(command.Rejection{
			Code:     apperrors.CodeInvalidAddress,
			Message:  "bidder address is required",
			Metadata: map[string]string{"Field": "bidder"},
		})
	case payload.Bidder == payload.PreviousOwner:
		return command.Rejectf(apperrors.CodeSellerCannotBid, "the current owner can not bid")
	case payload.PreviousOwner != current.Seller:
		return command.Rejectf(apperrors.CodeInvalidSeller, "previous owner does not match the auction seller")
	case payload.Amount.LessThanOrEqual(current.HighestBid):
		return command.Rejectf(apperrors.CodeBidTooLow, BidTooLowMessage)
	}
	placed := BidPlacedPayload{
		Bidder:      payload.Bidder,
		Amount:      payload.Amount,
		PreviousBid: current.HighestBid,
	}
	if current.HasBid() {
		placed.PreviousBidder = current.HighestBidder
	}
	return command.Accept(command.NewEvent(cmd, EventTypeBidPlaced, placed, now))
}

func decideWithdraw(state State, cmd command.Command, now time.Time) command.Decision {
	var payload WithdrawPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if payload.Requester.IsZero() || (payload.Requester != state.Operator && payload.Requester != payload.Account) {
		return command.Rejectf(apperrors.CodeUnauthorized, "only the operator or the account may withdraw")
	}
	amount := state.Withdrawable(cmd.AssetID, payload.Account)
	if !amount.IsPositive() {
		return command.Rejectf(apperrors.CodeZeroWithdrawable, "nothing to withdraw")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeOverbidWithdrawn, OverbidWithdrawnPayload{
		Account: payload.Account,
		Amount:  amount,
	}, now))
}

func decideEnd(state State, cmd command.Command, now time.Time) command.Decision {
	var payload EndPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if !isOperator(state, payload.Operator) {
		return rejectOperator()
	}
	current := state.Auction(cmd.AssetID)
	if !current.Active {
		return command.Rejectf(apperrors.CodeNoActiveAuction, "no active auction")
	}
	if !current.HasBid() {
		return command.Rejectf(apperrors.CodeNoBidsPlaced, "auction has no bids")
	}
	settlement := Distribute(state.Fees, Sale{
		Amount:        current.HighestBid,
		Seller:        current.Seller,
		Creator:       payload.Artist,
		SaleCount:     current.SaleCount,
		Collaborators: state.collaborators[cmd.AssetID],
	})
	return command.Accept(command.NewEvent(cmd, EventTypeSettled, SettledPayload{
		Seller:   current.Seller,
		Buyer:    current.HighestBidder,
		Amount:   current.HighestBid,
		SaleType: settlement.SaleType,
		Payouts:  settlement.Payouts,
	}, now))
}

func isOperator(state State, actor core.Address) bool {
	return !state.Operator.IsZero() && actor == state.Operator
}

func rejectOperator() command.Decision {
	return command.Rejectf(apperrors.CodeUnauthorized, "only the platform operator can do this")
}
