// Package sqlite provides the SQLite-backed event journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/grpc/pagination"
	sqlitemigrate "github.com/louisbranch/nftmarket/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/louisbranch/nftmarket/internal/services/market/storage"
	"github.com/louisbranch/nftmarket/internal/services/market/storage/filter"
	"github.com/louisbranch/nftmarket/internal/services/market/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const eventColumns = `seq, event_type, asset_id, actor_id, request_id, ts, payload_json`

// Store persists the event journal in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvents inserts events in one transaction and returns them with the
// assigned sequence numbers.
func (s *Store) AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrNotConfigured
	}
	if len(events) == 0 {
		return nil, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (event_type, asset_id, actor_id, request_id, ts, payload_json)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare append: %w", err)
	}
	defer stmt.Close()

	stored := make([]event.Event, len(events))
	for i, evt := range events {
		if evt.Timestamp.IsZero() {
			evt.Timestamp = time.Now().UTC()
		}
		payload := evt.PayloadJSON
		if payload == nil {
			payload = []byte("{}")
		}
		res, err := stmt.ExecContext(ctx,
			string(evt.Type),
			int64(evt.AssetID),
			string(evt.ActorID),
			evt.RequestID,
			toMillis(evt.Timestamp),
			payload,
		)
		if err != nil {
			return nil, fmt.Errorf("append %s: %w", evt.Type, err)
		}
		seq, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("append %s: %w", evt.Type, err)
		}
		evt.Seq = uint64(seq)
		evt.Timestamp = fromMillis(toMillis(evt.Timestamp))
		evt.PayloadJSON = payload
		stored[i] = evt
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit append: %w", err)
	}
	return stored, nil
}

// ListEvents returns up to limit events after afterSeq in sequence order.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrNotConfigured
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE seq > ? ORDER BY seq ASC LIMIT ?`,
		int64(afterSeq), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows, limit)
}

// QueryEvents returns one page of events matching an AIP-160 filter.
func (s *Store) QueryEvents(ctx context.Context, filterStr string, pageSize int, pageToken string) (storage.EventPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.EventPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.EventPage{}, storage.ErrNotConfigured
	}
	if pageSize <= 0 {
		return storage.EventPage{}, fmt.Errorf("page size must be greater than zero")
	}
	cond, err := filter.Parse(filterStr)
	if err != nil {
		return storage.EventPage{}, err
	}
	afterSeq, err := pagination.DecodeCursor(pageToken)
	if err != nil {
		return storage.EventPage{}, apperrors.Wrap(apperrors.CodeInvalidFilter, "invalid page token", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE seq > ?`
	params := []any{int64(afterSeq)}
	if !cond.Empty() {
		query += ` AND ` + cond.Clause
		params = append(params, cond.Params...)
	}
	query += ` ORDER BY seq ASC LIMIT ?`
	params = append(params, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return storage.EventPage{}, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows, pageSize+1)
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

func scanEvents(rows *sql.Rows, capacity int) ([]event.Event, error) {
	events := make([]event.Event, 0, capacity)
	for rows.Next() {
		var (
			evt       event.Event
			seq       int64
			eventType string
			assetID   int64
			actorID   string
			ts        int64
		)
		if err := rows.Scan(&seq, &eventType, &assetID, &actorID, &evt.RequestID, &ts, &evt.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt.Seq = uint64(seq)
		evt.Type = event.Type(eventType)
		evt.AssetID = core.AssetID(assetID)
		evt.ActorID = core.Address(actorID)
		evt.Timestamp = fromMillis(ts)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}

var _ storage.EventStore = (*Store)(nil)
