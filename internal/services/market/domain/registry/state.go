package registry

import (
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
)

// Asset is one minted asset.
type Asset struct {
	ID         core.AssetID
	Title      string
	ContentID  string
	ContentKey string
	// Creator is the operator that minted the asset.
	Creator core.Address
	// Artist is fixed at mint and receives primary shares and royalties.
	Artist core.Address
	Owner  core.Address
	// Approved records that Owner authorized the marketplace to transfer.
	Approved bool
	MintedAt time.Time
}

// State is the replayed registry.
type State struct {
	Admin  core.Address
	Caller core.Address
	LastID core.AssetID

	assets   map[core.AssetID]Asset
	titles   map[string]core.AssetID
	contents map[string]core.AssetID
}

// NewState returns an empty registry administered by admin.
func NewState(admin core.Address) State {
	return State{
		Admin:    admin,
		assets:   map[core.AssetID]Asset{},
		titles:   map[string]core.AssetID{},
		contents: map[string]core.AssetID{},
	}
}

// Asset returns the asset with id.
func (s State) Asset(id core.AssetID) (Asset, error) {
	asset, ok := s.assets[id]
	if id == 0 || !ok {
		return Asset{}, apperrors.WithMetadata(apperrors.CodeNotFound, "asset not found",
			map[string]string{"AssetID": id.String()})
	}
	return asset, nil
}

// OwnerOf returns the current owner of id.
func (s State) OwnerOf(id core.AssetID) (core.Address, error) {
	asset, err := s.Asset(id)
	if err != nil {
		return "", err
	}
	return asset.Owner, nil
}

// Count returns the number of minted assets.
func (s State) Count() uint64 {
	return uint64(s.LastID)
}

// TitleTaken reports whether an asset already uses title.
func (s State) TitleTaken(title string) bool {
	_, ok := s.titles[normalizeTitle(title)]
	return ok
}

// ContentTaken reports whether an asset already uses contentID.
func (s State) ContentTaken(contentID string) bool {
	_, ok := s.contents[core.ContentKey(contentID)]
	return ok
}
