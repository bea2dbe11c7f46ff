package auction

import (
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/shopspring/decimal"
)

// ConfigureCallerPayload sets the single authorized caller.
type ConfigureCallerPayload struct {
	Caller core.Address `json:"caller"`
}

// CallerConfiguredPayload records the caller together with the operator and
// fee schedule the engine was constructed with.
type CallerConfiguredPayload struct {
	Caller   core.Address `json:"caller"`
	Operator core.Address `json:"operator"`
	Fees     FeeConfig    `json:"fees"`
}

// StartPayload opens an auction. Seller is the registry owner at call time.
type StartPayload struct {
	Operator     core.Address `json:"operator"`
	Seller       core.Address `json:"seller"`
	DurationHint int64        `json:"duration_hint"`
}

// StartedPayload is the AuctionStart event body.
type StartedPayload struct {
	Seller       core.Address `json:"seller"`
	DurationHint int64        `json:"duration_hint"`
}

// SetCollaboratorsPayload replaces the split for an asset.
type SetCollaboratorsPayload struct {
	Operator    core.Address   `json:"operator"`
	Addresses   []core.Address `json:"addresses"`
	Percentages []core.Percent `json:"percentages"`
}

// CollaboratorsSetPayload is the committed split.
type CollaboratorsSetPayload struct {
	Collaborators []Collaborator `json:"collaborators"`
}

// BidPayload relays a bid on behalf of Bidder.
type BidPayload struct {
	Operator      core.Address    `json:"operator"`
	PreviousOwner core.Address    `json:"previous_owner"`
	Bidder        core.Address    `json:"bidder"`
	Amount        decimal.Decimal `json:"amount"`
}

// BidPlacedPayload records a new highest bid and the bid it displaced.
type BidPlacedPayload struct {
	Bidder         core.Address    `json:"bidder"`
	Amount         decimal.Decimal `json:"amount"`
	PreviousBidder core.Address    `json:"previous_bidder,omitempty"`
	PreviousBid    decimal.Decimal `json:"previous_bid"`
}

// WithdrawPayload asks for Account's escrowed overbid.
type WithdrawPayload struct {
	Requester core.Address `json:"requester"`
	Account   core.Address `json:"account"`
}

// OverbidWithdrawnPayload records an escrow release.
type OverbidWithdrawnPayload struct {
	Account core.Address    `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// EndPayload settles the auction. Artist is the registry artist paid the
// creator share and royalties.
type EndPayload struct {
	Operator core.Address `json:"operator"`
	Artist   core.Address `json:"artist"`
}

// SettledPayload records the sale and its distribution.
type SettledPayload struct {
	Seller   core.Address    `json:"seller"`
	Buyer    core.Address    `json:"buyer"`
	Amount   decimal.Decimal `json:"amount"`
	SaleType SaleType        `json:"sale_type"`
	Payouts  []Payout        `json:"payouts"`
}
