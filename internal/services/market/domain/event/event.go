// Package event defines the journal envelope shared by every marketplace
// component. Components emit events from their deciders and rebuild state by
// folding them; the journal assigns sequence numbers.
package event

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
)

// Type names an event kind, namespaced by component ("auction.settled").
type Type string

// Event is one committed state change.
type Event struct {
	Seq         uint64
	Type        Type
	AssetID     core.AssetID
	ActorID     core.Address
	RequestID   string
	Timestamp   time.Time
	PayloadJSON []byte
}

// Decode unmarshals the payload into target.
func (e Event) Decode(target any) error {
	return json.Unmarshal(e.PayloadJSON, target)
}
