package command

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

func TestAcceptCopiesEvents(t *testing.T) {
	events := []event.Event{{Type: "asset.minted"}}
	decision := Accept(events...)
	events[0].Type = "changed"
	if decision.Events[0].Type != "asset.minted" {
		t.Fatalf("event type = %s, want asset.minted", decision.Events[0].Type)
	}
	if decision.Rejected() {
		t.Fatal("expected accepted decision")
	}
	if decision.Err() != nil {
		t.Fatalf("Err() = %v, want nil", decision.Err())
	}
}

func TestRejectErr(t *testing.T) {
	decision := Rejectf(apperrors.CodeBidTooLow, "a higher bid already exists")
	if !decision.Rejected() {
		t.Fatal("expected rejection")
	}
	err := decision.Err()
	if apperrors.CodeOf(err) != apperrors.CodeBidTooLow {
		t.Fatalf("code = %s, want %s", apperrors.CodeOf(err), apperrors.CodeBidTooLow)
	}
	if err.Error() != "a higher bid already exists" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestNewEventCopiesEnvelope(t *testing.T) {
	cmd, err := New("auction.start", "0x00000000000000000000000000000000000000aa", 3, "req-1", map[string]string{"seller": "a"})
	if err != nil {
		t.Fatalf("new command: %v", err)
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	evt := NewEvent(cmd, "auction.started", map[string]int{"n": 1}, now)

	if evt.AssetID != 3 || evt.ActorID != cmd.ActorID || evt.RequestID != "req-1" {
		t.Fatalf("envelope = %+v", evt)
	}
	if !evt.Timestamp.Equal(now) || evt.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp = %v, want UTC %v", evt.Timestamp, now)
	}
	var payload map[string]int
	if err := evt.Decode(&payload); err != nil || payload["n"] != 1 {
		t.Fatalf("payload = %v, %v", payload, err)
	}
}
