// Package memory provides an in-process event journal for tests and
// throwaway runs.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/grpc/pagination"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/louisbranch/nftmarket/internal/services/market/storage"
)

// Store keeps events in a slice.
type Store struct {
	mu     sync.Mutex
	events []event.Event
	// FailAppend, when set, is returned by AppendEvents.
	FailAppend error
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// AppendEvents implements storage.EventStore.
func (s *Store) AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend != nil {
		return nil, s.FailAppend
	}
	stored := make([]event.Event, len(events))
	for i, evt := range events {
		evt.Seq = uint64(len(s.events) + 1)
		if evt.Timestamp.IsZero() {
			evt.Timestamp = time.Now().UTC()
		}
		if evt.PayloadJSON == nil {
			evt.PayloadJSON = []byte("{}")
		}
		s.events = append(s.events, evt)
		stored[i] = evt
	}
	return stored, nil
}

// ListEvents implements storage.EventStore.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if afterSeq >= uint64(len(s.events)) {
		return nil, nil
	}
	end := min(int(afterSeq)+limit, len(s.events))
	return append([]event.Event(nil), s.events[afterSeq:end]...), nil
}

// QueryEvents implements storage.EventStore. Filters are not supported.
func (s *Store) QueryEvents(ctx context.Context, filter string, pageSize int, pageToken string) (storage.EventPage, error) {
	if strings.TrimSpace(filter) != "" {
		return storage.EventPage{}, apperrors.New(apperrors.CodeInvalidFilter, "memory journal does not support filters")
	}
	afterSeq, err := pagination.DecodeCursor(pageToken)
	if err != nil {
		return storage.EventPage{}, apperrors.Wrap(apperrors.CodeInvalidFilter, "invalid page token", err)
	}
	events, err := s.ListEvents(ctx, afterSeq, pageSize+1)
	if err != nil {
		return storage.EventPage{}, err
	}
	page := storage.EventPage{Events: events}
	if len(events) > pageSize {
		page.Events = events[:pageSize]
		page.NextPageToken = pagination.EncodeCursor(events[pageSize-1].Seq)
	}
	return page, nil
}

// Close implements storage.EventStore.
func (s *Store) Close() error { return nil }

var _ storage.EventStore = (*Store)(nil)
