// Package command defines the write-path envelope evaluated by the component
// deciders and the decision they return.
package command

import (
	"encoding/json"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

// Type names a command kind.
type Type string

// Command is one intent addressed to a component. ActorID is the immediate
// caller, which for the registry and auction engine is the gateway itself.
type Command struct {
	Type        Type
	ActorID     core.Address
	AssetID     core.AssetID
	RequestID   string
	PayloadJSON []byte
}

// New builds a command with a JSON payload.
func New(cmdType Type, actor core.Address, assetID core.AssetID, requestID string, payload any) (Command, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return Command{}, err
	}
	return Command{
		Type:        cmdType,
		ActorID:     actor,
		AssetID:     assetID,
		RequestID:   requestID,
		PayloadJSON: payloadJSON,
	}, nil
}

// Decision represents the pure outcome of handling a command.
type Decision struct {
	Events     []event.Event
	Rejections []Rejection
}

// Rejection captures a domain-level reason a command was declined.
type Rejection struct {
	Code     apperrors.Code
	Message  string
	Metadata map[string]string
}

// Accept returns a decision that emits the provided events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that carries the provided rejections.
func Reject(rejections ...Rejection) Decision {
	return Decision{Rejections: append([]Rejection(nil), rejections...)}
}

// Rejectf is Reject with a single formatted rejection.
func Rejectf(code apperrors.Code, message string) Decision {
	return Reject(Rejection{Code: code, Message: message})
}

// Rejected reports whether the decision carries a rejection.
func (d Decision) Rejected() bool {
	return len(d.Rejections) > 0
}

// Err returns the first rejection as a domain error, or nil.
func (d Decision) Err() error {
	if len(d.Rejections) == 0 {
		return nil
	}
	r := d.Rejections[0]
	return apperrors.WithMetadata(r.Code, r.Message, r.Metadata)
}

// NewEvent builds an event carrying the command envelope and a JSON payload.
func NewEvent(cmd Command, eventType event.Type, payload any, now time.Time) event.Event {
	payloadJSON, _ := json.Marshal(payload)
	return event.Event{
		Type:        eventType,
		AssetID:     cmd.AssetID,
		ActorID:     cmd.ActorID,
		RequestID:   cmd.RequestID,
		Timestamp:   now.UTC(),
		PayloadJSON: payloadJSON,
	}
}
