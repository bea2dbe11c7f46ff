package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/otel"
	"github.com/louisbranch/nftmarket/internal/platform/requestctx"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/auction"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/command"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/ledger"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/registry"
	"github.com/louisbranch/nftmarket/internal/services/market/storage"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/louisbranch/nftmarket/internal/services/market/gateway"
	replayPageSize  = 200
	defaultPageSize = 20
	maxPageSize     = 200
)

var (
	// ErrJournalRequired indicates a missing event journal.
	ErrJournalRequired = errors.New("event journal is required")
)

// Publisher receives every committed batch of events.
type Publisher interface {
	Publish(events []event.Event)
}

// Config wires a gateway.
type Config struct {
	// Admin deploys the components and may configure their caller once.
	Admin core.Address
	// Operator is the only identity allowed to mint, run auctions and relay bids.
	Operator core.Address
	// Self is the identity the gateway presents to the registry and engine.
	Self core.Address
	Fees auction.FeeConfig
	// Policy decides whether payees can accept funds. Nil accepts everyone.
	Policy    ledger.PayeePolicy
	Journal   storage.EventStore
	Publisher Publisher
	Clock     func() time.Time
}

// Gateway serializes all marketplace operations.
type Gateway struct {
	mu sync.Mutex

	self      core.Address
	operator  core.Address
	admin     core.Address
	policy    ledger.PayeePolicy
	journal   storage.EventStore
	publisher Publisher
	clock     func() time.Time
	tracer    trace.Tracer

	registry registry.State
	auctions auction.State
	ledger   ledger.State
	lastSeq  uint64
}

// New builds a gateway with empty component state. Call Replay to rebuild
// state from an existing journal.
func New(cfg Config) (*Gateway, error) {
	if cfg.Journal == nil {
		return nil, ErrJournalRequired
	}
	if cfg.Self.IsZero() {
		return nil, apperrors.New(apperrors.CodeInvalidAddress, "gateway address is required")
	}
	auctions, err := auction.NewState(cfg.Admin, cfg.Operator, cfg.Fees)
	if err != nil {
		return nil, err
	}
	policy := cfg.Policy
	if policy == nil {
		policy = ledger.AcceptAll{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Gateway{
		self:      cfg.Self,
		operator:  cfg.Operator,
		admin:     cfg.Admin,
		policy:    policy,
		journal:   cfg.Journal,
		publisher: cfg.Publisher,
		clock:     clock,
		tracer:    otel.Tracer(tracerName),
		registry:  registry.NewState(cfg.Admin),
		auctions:  auctions,
		ledger:    ledger.NewState(),
	}, nil
}

// Replay folds every journaled event after the last applied one and returns
// how many were applied.
func (g *Gateway) Replay(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	applied := 0
	for {
		events, err := g.journal.ListEvents(ctx, g.lastSeq, replayPageSize)
		if err != nil {
			return applied, fmt.Errorf("list events: %w", err)
		}
		if len(events) == 0 {
			return applied, nil
		}
		for _, evt := range events {
			if expected := g.lastSeq + 1; evt.Seq != expected {
				return applied, fmt.Errorf("event sequence gap: expected %d got %d", expected, evt.Seq)
			}
			if err := g.apply(evt); err != nil {
				return applied, fmt.Errorf("replay event %d: %w", evt.Seq, err)
			}
			applied++
		}
		if err := g.checkRecordedCaller(); err != nil {
			return applied, err
		}
	}
}

// checkRecordedCaller fails when the journal configured a different gateway
// address than this one.
func (g *Gateway) checkRecordedCaller() error {
	for _, recorded := range []core.Address{g.registry.Caller, g.auctions.Caller} {
		if !recorded.IsZero() && recorded != g.self {
			return apperrors.WithMetadata(apperrors.CodeConfigMismatch, "gateway address differs from the recorded caller",
				map[string]string{"Recorded": recorded.String(), "Configured": g.self.String()})
		}
	}
	return nil
}

// Bootstrap has the administrator configure the gateway as the single caller
// of the registry and the auction engine.
func (g *Gateway) Bootstrap(ctx context.Context, caller core.Address) error {
	ctx, span := g.start(ctx, "Bootstrap", 0)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	regCmd, err := g.newCommand(ctx, registry.CommandTypeConfigureCaller, caller, 0, registry.ConfigureCallerPayload{Caller: g.self})
	if err != nil {
		return spanError(span, err)
	}
	aucCmd, err := g.newCommand(ctx, auction.CommandTypeConfigureCaller, caller, 0, auction.ConfigureCallerPayload{Caller: g.self})
	if err != nil {
		return spanError(span, err)
	}
	_, err = g.commit(ctx,
		registry.Decide(g.registry, regCmd, g.clock),
		auction.Decide(g.auctions, aucCmd, g.clock),
	)
	return spanError(span, err)
}

// Configured reports whether both components trust the gateway.
func (g *Gateway) Configured() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registry.Caller == g.self && g.auctions.Caller == g.self
}

// commit rejects on the first rejected decision; otherwise it journals all
// events as one batch, folds them and publishes them.
func (g *Gateway) commit(ctx context.Context, decisions ...command.Decision) ([]event.Event, error) {
	var pending []event.Event
	for _, decision := range decisions {
		if decision.Rejected() {
			return nil, decision.Err()
		}
		pending = append(pending, decision.Events...)
	}
	if len(pending) == 0 {
		return nil, nil
	}
	stored, err := g.journal.AppendEvents(ctx, pending)
	if err != nil {
		log.Printf("append %d events: %v", len(pending), err)
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "append events", err)
	}
	for _, evt := range stored {
		if err := g.apply(evt); err != nil {
			log.Printf("apply event %d: %v", evt.Seq, err)
			return nil, apperrors.Wrap(apperrors.CodeUnknown, "apply events", err)
		}
	}
	if g.publisher != nil {
		g.publisher.Publish(stored)
	}
	return stored, nil
}

func (g *Gateway) apply(evt event.Event) error {
	reg, err := registry.Fold(g.registry, evt)
	if err != nil {
		return err
	}
	auctions, err := auction.Fold(g.auctions, evt)
	if err != nil {
		return err
	}
	funds, err := ledger.Fold(g.ledger, evt)
	if err != nil {
		return err
	}
	g.registry, g.auctions, g.ledger = reg, auctions, funds
	if evt.Seq > g.lastSeq {
		g.lastSeq = evt.Seq
	}
	return nil
}

func (g *Gateway) newCommand(ctx context.Context, cmdType command.Type, actor core.Address, assetID core.AssetID, payload any) (command.Command, error) {
	cmd, err := command.New(cmdType, actor, assetID, requestctx.RequestIDFromContext(ctx), payload)
	if err != nil {
		return command.Command{}, apperrors.Wrap(apperrors.CodeUnknown, "encode command", err)
	}
	return cmd, nil
}

// selfCommand builds a command the gateway issues to a lower component.
func (g *Gateway) selfCommand(ctx context.Context, cmdType command.Type, assetID core.AssetID, payload any) (command.Command, error) {
	return g.newCommand(ctx, cmdType, g.self, assetID, payload)
}

func (g *Gateway) start(ctx context.Context, op string, assetID core.AssetID) (context.Context, trace.Span) {
	ctx, span := g.tracer.Start(ctx, "market.gateway."+op)
	if assetID != 0 {
		span.SetAttributes(attribute.Int64("market.asset_id", int64(assetID)))
	}
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		span.SetAttributes(attribute.String("market.request_id", requestID))
	}
	return ctx, span
}

func spanError(span trace.Span, err error) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, string(apperrors.CodeOf(err)))
	return err
}
