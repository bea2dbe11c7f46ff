package gateway

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/registry"
)

// Token is the external view of a minted asset.
type Token struct {
	ID        core.AssetID
	Title     string
	ContentID string
	Creator   core.Address
	Artist    core.Address
	Owner     core.Address
	Approved  bool
}

func tokenFromAsset(asset registry.Asset) Token {
	return Token{
		ID:        asset.ID,
		Title:     asset.Title,
		ContentID: asset.ContentID,
		Creator:   asset.Creator,
		Artist:    asset.Artist,
		Owner:     asset.Owner,
		Approved:  asset.Approved,
	}
}

// MintToken mints a new asset owned by recipient, who is also the artist
// paid at settlement. The operator, the only identity allowed to mint, is
// recorded as the creator.
func (g *Gateway) MintToken(ctx context.Context, caller core.Address, title, contentID string, recipient core.Address) (core.AssetID, error) {
	ctx, span := g.start(ctx, "MintToken", 0)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	if caller.IsZero() || caller != g.operator {
		return 0, spanError(span, apperrors.New(apperrors.CodeUnauthorized, "only the platform operator can mint"))
	}
	if err := g.checkDuplicate(title, contentID); err != nil {
		return 0, spanError(span, err)
	}
	cmd, err := g.selfCommand(ctx, registry.CommandTypeMint, 0, registry.MintPayload{
		Title:      title,
		ContentID:  contentID,
		Recipient:  recipient,
		OnBehalfOf: caller,
	})
	if err != nil {
		return 0, spanError(span, err)
	}
	stored, err := g.commit(ctx, registry.Decide(g.registry, cmd, g.clock))
	if err != nil {
		return 0, spanError(span, err)
	}
	return stored[0].AssetID, nil
}

// checkDuplicate surfaces title and content clashes with a field-specific
// message before the registry sees the mint.
func (g *Gateway) checkDuplicate(title, contentID string) error {
	if strings.TrimSpace(title) != "" && g.registry.TitleTaken(title) {
		return apperrors.WithMetadata(apperrors.CodeDuplicateAsset,
			"a token with the same title already exists", map[string]string{"Field": "title"})
	}
	if strings.TrimSpace(contentID) != "" && g.registry.ContentTaken(contentID) {
		return apperrors.WithMetadata(apperrors.CodeDuplicateAsset,
			"a token with the same content already exists", map[string]string{"Field": "content"})
	}
	return nil
}

// GetToken returns one asset. Id 0 and ids beyond the current count are not
// found.
func (g *Gateway) GetToken(ctx context.Context, id core.AssetID) (Token, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id == 0 || uint64(id) > g.registry.Count() {
		return Token{}, apperrors.WithMetadata(apperrors.CodeNotFound, "token not found",
			map[string]string{"AssetID": id.String()})
	}
	asset, err := g.registry.Asset(id)
	if err != nil {
		return Token{}, err
	}
	return tokenFromAsset(asset), nil
}

// GetTotalNumberOfNft returns how many assets have been minted.
func (g *Gateway) GetTotalNumberOfNft(ctx context.Context) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registry.Count()
}

// Approve records that the asset owner lets the marketplace transfer the
// asset at settlement.
func (g *Gateway) Approve(ctx context.Context, caller core.Address, id core.AssetID) error {
	ctx, span := g.start(ctx, "Approve", id)
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	cmd, err := g.selfCommand(ctx, registry.CommandTypeApprove, id, registry.ApprovePayload{Owner: caller})
	if err != nil {
		return spanError(span, err)
	}
	_, err = g.commit(ctx, registry.Decide(g.registry, cmd, g.clock))
	return spanError(span, err)
}
