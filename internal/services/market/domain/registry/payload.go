package registry

import "github.com/louisbranch/nftmarket/internal/services/market/domain/core"

// ConfigureCallerPayload sets the single authorized caller.
type ConfigureCallerPayload struct {
	Caller core.Address `json:"caller"`
}

// MintPayload requests a new asset owned by Recipient. OnBehalfOf names the
// operator that asked the gateway to mint.
type MintPayload struct {
	Title      string       `json:"title"`
	ContentID  string       `json:"content_id"`
	Recipient  core.Address `json:"recipient"`
	OnBehalfOf core.Address `json:"on_behalf_of"`
}

// MintedPayload is the committed form of a mint. Creator is the operator
// that minted; Artist is the recipient paid at settlement.
type MintedPayload struct {
	Title      string       `json:"title"`
	ContentID  string       `json:"content_id"`
	ContentKey string       `json:"content_key"`
	Creator    core.Address `json:"creator"`
	Artist     core.Address `json:"artist"`
	Owner      core.Address `json:"owner"`
}

// ApprovePayload records the owner's transfer authorization.
type ApprovePayload struct {
	Owner core.Address `json:"owner"`
}

// TransferPayload moves ownership.
type TransferPayload struct {
	From core.Address `json:"from"`
	To   core.Address `json:"to"`
}
