package gateway

import (
	"context"

	"github.com/louisbranch/nftmarket/internal/platform/grpc/pagination"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/storage"
	"github.com/shopspring/decimal"
)

// Balance returns everything paid out to addr so far.
func (g *Gateway) Balance(ctx context.Context, addr core.Address) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ledger.Balance(addr)
}

// Custody returns the funds the marketplace currently holds.
func (g *Gateway) Custody(ctx context.Context) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ledger.Custody
}

// Held returns what the auction engine accounts for: active highest bids
// plus escrowed overbids. It always equals Custody.
func (g *Gateway) Held(ctx context.Context) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.auctions.Held()
}

// ListEvents returns one page of journal history matching filter.
func (g *Gateway) ListEvents(ctx context.Context, filter string, pageSize int, pageToken string) (storage.EventPage, error) {
	ctx, span := g.start(ctx, "ListEvents", 0)
	defer span.End()

	pageSize = pagination.ClampPageSize(pageSize, pagination.PageSizeConfig{
		Default: defaultPageSize,
		Max:     maxPageSize,
	})
	page, err := g.journal.QueryEvents(ctx, filter, pageSize, pageToken)
	return page, spanError(span, err)
}
