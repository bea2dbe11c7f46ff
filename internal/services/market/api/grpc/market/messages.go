package market

import (
	"encoding/json"
	"time"
)

// Token is the wire form of a minted asset.
type Token struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	ContentID string `json:"content_id"`
	Creator   string `json:"creator"`
	Artist    string `json:"artist"`
	Owner     string `json:"owner"`
	Approved  bool   `json:"approved"`
}

// Collaborator is one entry of a primary-sale split.
type Collaborator struct {
	Address string `json:"address"`
	Percent int    `json:"percent"`
}

// Auction is the wire form of an asset's auction record.
type Auction struct {
	AssetID       uint64         `json:"asset_id"`
	Active        bool           `json:"active"`
	Seller        string         `json:"seller,omitempty"`
	HighestBid    string         `json:"highest_bid"`
	HighestBidder string         `json:"highest_bidder,omitempty"`
	DurationHint  int64          `json:"duration_hint"`
	StartedAt     time.Time      `json:"started_at,omitzero"`
	SaleCount     uint64         `json:"sale_count"`
	Collaborators []Collaborator `json:"collaborators,omitempty"`
}

// AuctionStart is the wire form of the AuctionStart event.
type AuctionStart struct {
	Seq          uint64    `json:"seq"`
	AssetID      uint64    `json:"asset_id"`
	Seller       string    `json:"seller"`
	DurationHint int64     `json:"duration_hint"`
	StartedAt    time.Time `json:"started_at"`
}

// Payout is one settlement credit.
type Payout struct {
	Address string `json:"address"`
	Role    string `json:"role"`
	Amount  string `json:"amount"`
}

// Settlement is the wire form of a completed sale.
type Settlement struct {
	AssetID  uint64   `json:"asset_id"`
	Seller   string   `json:"seller"`
	Buyer    string   `json:"buyer"`
	Amount   string   `json:"amount"`
	SaleType string   `json:"sale_type"`
	Payouts  []Payout `json:"payouts"`
}

// Event is the wire form of a journal entry.
type Event struct {
	Seq       uint64          `json:"seq"`
	Type      string          `json:"type"`
	AssetID   uint64          `json:"asset_id,omitempty"`
	ActorID   string          `json:"actor_id,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Timestamp time.Time       `json:"ts"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type MintTokenRequest struct {
	Title     string `json:"title"`
	ContentID string `json:"content_id"`
	Recipient string `json:"recipient"`
}

type MintTokenResponse struct {
	AssetID uint64 `json:"asset_id"`
}

type GetTokenRequest struct {
	AssetID uint64 `json:"asset_id"`
}

type GetTokenResponse struct {
	Token Token `json:"token"`
}

type GetTotalNumberOfNftRequest struct{}

type GetTotalNumberOfNftResponse struct {
	Count uint64 `json:"count"`
}

type ApproveRequest struct {
	AssetID uint64 `json:"asset_id"`
}

type ApproveResponse struct{}

type StartAuctionRequest struct {
	AssetID      uint64 `json:"asset_id"`
	DurationHint int64  `json:"duration_hint"`
}

type StartAuctionResponse struct {
	AuctionStart AuctionStart `json:"auction_start"`
}

type SetCollaboratorsRequest struct {
	AssetID     uint64   `json:"asset_id"`
	Addresses   []string `json:"addresses"`
	Percentages []int    `json:"percentages"`
}

type SetCollaboratorsResponse struct{}

type BidRequest struct {
	AssetID       uint64 `json:"asset_id"`
	PreviousOwner string `json:"previous_owner"`
	Bidder        string `json:"bidder"`
	// Amount is a base-10 integer in the smallest native unit.
	Amount string `json:"amount"`
}

type BidResponse struct{}

type EndAuctionRequest struct {
	AssetID uint64 `json:"asset_id"`
}

type EndAuctionResponse struct {
	Settlement Settlement `json:"settlement"`
}

type WithdrawOverbidRequest struct {
	AssetID uint64 `json:"asset_id"`
	Account string `json:"account"`
}

type WithdrawOverbidResponse struct {
	Amount string `json:"amount"`
}

type GetAuctionRequest struct {
	AssetID uint64 `json:"asset_id"`
}

type GetAuctionResponse struct {
	Auction Auction `json:"auction"`
}

type GetWithdrawableRequest struct {
	AssetID uint64 `json:"asset_id"`
	Account string `json:"account"`
}

type GetWithdrawableResponse struct {
	Amount string `json:"amount"`
}

type GetBalanceRequest struct {
	Address string `json:"address"`
}

type GetBalanceResponse struct {
	Amount string `json:"amount"`
}

type GetCustodyRequest struct{}

type GetCustodyResponse struct {
	Amount string `json:"amount"`
}

type ListEventsRequest struct {
	Filter    string `json:"filter,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ListEventsResponse struct {
	Events        []Event `json:"events"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}
