package registry

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/command"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
)

const (
	CommandTypeConfigureCaller command.Type = "registry.configure_caller"
	CommandTypeMint            command.Type = "registry.mint"
	CommandTypeApprove         command.Type = "registry.approve"
	CommandTypeTransfer        command.Type = "registry.transfer"

	EventTypeCallerConfigured event.Type = "registry.caller_configured"
	EventTypeMinted           event.Type = "asset.minted"
	EventTypeApproved         event.Type = "asset.approved"
	EventTypeTransferred      event.Type = "asset.transferred"
)

// Decide returns the decision for a registry command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	switch cmd.Type {
	case CommandTypeConfigureCaller:
		return decideConfigureCaller(state, cmd, now())
	case CommandTypeMint:
		return decideMint(state, cmd, now())
	case CommandTypeApprove:
		return decideApprove(state, cmd, now())
	case CommandTypeTransfer:
		return decideTransfer(state, cmd, now())
	default:
		return command.Rejectf(apperrors.CodeUnknown, "unsupported registry command "+string(cmd.Type))
	}
}

func decideConfigureCaller(state State, cmd command.Command, now time.Time) command.Decision {
	if state.Admin.IsZero() || cmd.ActorID != state.Admin {
		return command.Rejectf(apperrors.CodeUnauthorized, "only the registry admin can configure the caller")
	}
	var payload ConfigureCallerPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if payload.Caller.IsZero() {
		return command.Rejectf(apperrors.CodeInvalidAddress, "caller address is required")
	}
	if !state.Caller.IsZero() {
		return command.Rejectf(apperrors.CodeCallerAlreadyConfigured, "registry caller is already configured")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeCallerConfigured, payload, now))
}

func decideMint(state State, cmd command.Command, now time.Time) command.Decision {
	if rejection, ok := requireCaller(state, cmd); !ok {
		return command.Reject(rejection)
	}
	var payload MintPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	title := normalizeTitle(payload.Title)
	contentID := strings.TrimSpace(payload.ContentID)
	switch {
	case title == "":
		return rejectField(apperrors.CodeInvalidAsset, "title is required", "title")
	case contentID == "":
		return rejectField(apperrors.CodeInvalidAsset, "content id is required", "content_id")
	case payload.Recipient.IsZero():
		return rejectField(apperrors.CodeInvalidAddress, "recipient is required", "recipient")
	case state.TitleTaken(title):
		return rejectField(apperrors.CodeDuplicateAsset, "an asset with the same title exists", "title")
	case state.ContentTaken(contentID):
		return rejectField(apperrors.CodeDuplicateAsset, "an asset with the same content id exists", "content")
	}

	cmd.AssetID = state.LastID + 1
	return command.Accept(command.NewEvent(cmd, EventTypeMinted, MintedPayload{
		Title:      title,
		ContentID:  contentID,
		ContentKey: core.ContentKey(contentID),
		Creator:    payload.OnBehalfOf,
		Artist:     payload.Recipient,
		Owner:      payload.Recipient,
	}, now))
}

func decideApprove(state State, cmd command.Command, now time.Time) command.Decision {
	if rejection, ok := requireCaller(state, cmd); !ok {
		return command.Reject(rejection)
	}
	asset, err := state.Asset(cmd.AssetID)
	if err != nil {
		return command.Rejectf(apperrors.CodeNotFound, "asset not found")
	}
	var payload ApprovePayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if payload.Owner.IsZero() || payload.Owner != asset.Owner {
		return command.Rejectf(apperrors.CodeNotOwner, "approve caller is not the owner")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeApproved, payload, now))
}

func decideTransfer(state State, cmd command.Command, now time.Time) command.Decision {
	if rejection, ok := requireCaller(state, cmd); !ok {
		return command.Reject(rejection)
	}
	asset, err := state.Asset(cmd.AssetID)
	if err != nil {
		return command.Rejectf(apperrors.CodeNotFound, "asset not found")
	}
	var payload TransferPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	switch {
	case payload.From != asset.Owner:
		return command.Rejectf(apperrors.CodeNotOwner, "transfer from incorrect owner")
	case !asset.Approved:
		return command.Rejectf(apperrors.CodeNotApproved, "caller is not approved to transfer the asset")
	case payload.To.IsZero():
		return rejectField(apperrors.CodeInvalidAddress, "transfer to the zero address", "recipient")
	}
	return command.Accept(command.NewEvent(cmd, EventTypeTransferred, payload, now))
}

func requireCaller(state State, cmd command.Command) (command.Rejection, bool) {
	if state.Caller.IsZero() || cmd.ActorID != state.Caller {
		return command.Rejection{Code: apperrors.CodeUnauthorized, Message: "caller is not the configured registry caller"}, false
	}
	return command.Rejection{}, true
}

func rejectField(code apperrors.Code, message, field string) command.Decision {
	return command.Reject(command.Rejection{
		Code:     code,
		Message:  message,
		Metadata: map[string]string{"Field": field},
	})
}

func normalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
