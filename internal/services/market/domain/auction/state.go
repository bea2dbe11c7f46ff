package auction

import (
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/shopspring/decimal"
)

// Auction is the per-asset record. It outlives individual auction cycles so
// SaleCount can tell primary sales from secondary ones.
type Auction struct {
	AssetID       core.AssetID
	Active        bool
	Seller        core.Address
	HighestBid    decimal.Decimal
	HighestBidder core.Address
	// DurationHint is stored for callers; it is never enforced.
	DurationHint int64
	StartedAt    time.Time
	SaleCount    uint64
}

// HasBid reports whether the active cycle has received a bid.
func (a Auction) HasBid() bool {
	return !a.HighestBidder.IsZero()
}

// State is the replayed auction engine.
type State struct {
	Admin    core.Address
	Operator core.Address
	Caller   core.Address
	Fees     FeeConfig

	auctions      map[core.AssetID]Auction
	collaborators map[core.AssetID][]Collaborator
	escrow        map[core.AssetID]map[core.Address]decimal.Decimal
}

// NewState returns an engine administered by admin that accepts auction
// operations from operator only.
func NewState(admin, operator core.Address, fees FeeConfig) (State, error) {
	if admin.IsZero() {
		return State{}, apperrors.New(apperrors.CodeInvalidAddress, "auction admin is required")
	}
	if operator.IsZero() {
		return State{}, apperrors.New(apperrors.CodeInvalidAddress, "auction operator is required")
	}
	if err := fees.Validate(); err != nil {
		return State{}, err
	}
	state := State{Admin: admin, Operator: operator, Fees: fees}
	state.init()
	return state, nil
}

func (s *State) init() {
	if s.auctions == nil {
		s.auctions = map[core.AssetID]Auction{}
	}
	if s.collaborators == nil {
		s.collaborators = map[core.AssetID][]Collaborator{}
	}
	if s.escrow == nil {
		s.escrow = map[core.AssetID]map[core.Address]decimal.Decimal{}
	}
}

// Auction returns the record for id. Assets never auctioned return an
// inactive zero record.
func (s State) Auction(id core.AssetID) Auction {
	a, ok := s.auctions[id]
	if !ok {
		return Auction{AssetID: id}
	}
	return a
}

// Collaborators returns the split configured for id.
func (s State) Collaborators(id core.AssetID) []Collaborator {
	return append([]Collaborator(nil), s.collaborators[id]...)
}

// Withdrawable returns the escrowed overbid owed to account for id.
func (s State) Withdrawable(id core.AssetID, account core.Address) decimal.Decimal {
	if amount, ok := s.escrow[id][account]; ok {
		return amount
	}
	return decimal.Zero
}

// Held returns everything the engine is holding: active highest bids plus
// escrowed overbids.
func (s State) Held() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.auctions {
		if a.Active && a.HasBid() {
			total = total.Add(a.HighestBid)
		}
	}
	for _, accounts := range s.escrow {
		for _, amount := range accounts {
			total = total.Add(amount)
		}
	}
	return total
}
