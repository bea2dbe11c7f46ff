// Package storage defines persistence contracts for the marketplace journal.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

// ErrNotConfigured indicates a store method was called on a nil or closed store.
var ErrNotConfigured = errors.New("storage is not configured")

// EventPage is one page of filtered journal history.
type EventPage struct {
	Events        []event.Event
	NextPageToken string
}

// EventStore persists the append-only event journal.
type EventStore interface {
	// AppendEvents stores events atomically and returns them with Seq set.
	AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error)
	// ListEvents returns up to limit events with Seq > afterSeq in order.
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
	// QueryEvents returns a page of events matching an AIP-160 filter.
	QueryEvents(ctx context.Context, filter string, pageSize int, pageToken string) (EventPage, error)
	Close() error
}
