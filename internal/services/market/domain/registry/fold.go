package registry

import (
	"fmt"

	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

// Fold applies an event to registry state. Events owned by other components
// are ignored. It returns an error when a registry event carries a payload
// that cannot be decoded.
func Fold(state State, evt event.Event) (State, error) {
	if state.assets == nil {
		state = NewState(state.Admin)
	}
	switch evt.Type {
	case EventTypeCallerConfigured:
		var payload ConfigureCallerPayload
		if err := evt.Decode(&payload); err != nil {
			return state, fmt.Errorf("registry fold %s: %w", evt.Type, err)
		}
		state.Caller = payload.Caller
	case EventTypeMinted:
		var payload MintedPayload
		if err := evt.Decode(&payload); err != nil {
			return state, fmt.Errorf("registry fold %s: %w", evt.Type, err)
		}
		state.assets[evt.AssetID] = Asset{
			ID:         evt.AssetID,
			Title:      payload.Title,
			ContentID:  payload.ContentID,
			ContentKey: payload.ContentKey,
			Creator:    payload.Creator,
			Artist:     payload.Artist,
			Owner:      payload.Owner,
			MintedAt:   evt.Timestamp,
		}
		state.titles[payload.Title] = evt.AssetID
		state.contents[payload.ContentKey] = evt.AssetID
		if evt.AssetID > state.LastID {
			state.LastID = evt.AssetID
		}
	case EventTypeApproved:
		asset, ok := state.assets[evt.AssetID]
		if ok {
			asset.Approved = true
			state.assets[evt.AssetID] = asset
		}
	case EventTypeTransferred:
		var payload TransferPayload
		if err := evt.Decode(&payload); err != nil {
			return state, fmt.Errorf("registry fold %s: %w", evt.Type, err)
		}
		asset, ok := state.assets[evt.AssetID]
		if ok {
			asset.Owner = payload.To
			asset.Approved = false
			state.assets[evt.AssetID] = asset
		}
	}
	return state, nil
}
