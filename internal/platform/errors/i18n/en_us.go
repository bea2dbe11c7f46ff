package i18n

import apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"

var enUSMessages = map[apperrors.Code]string{
	apperrors.CodeUnknown: "An unexpected error occurred",

	apperrors.CodeUnauthorized:    "Unauthorized access",
	apperrors.CodeUnauthenticated: "A valid caller token is required",
	apperrors.CodeNotOwner:        "Only the token owner can do this",
	apperrors.CodeNotApproved:     "The marketplace is not approved to transfer this token",

	apperrors.CodeDuplicateAsset:          "A token with the same {{if .Field}}{{.Field}}{{else}}content or title{{end}} already exists",
	apperrors.CodeInvalidAsset:            "Token {{if .Field}}{{.Field}}{{else}}data{{end}} is required",
	apperrors.CodeInvalidAddress:          "Invalid {{if .Field}}{{.Field}} {{end}}address provided",
	apperrors.CodeCallerAlreadyConfigured: "The authorized caller is already configured",

	apperrors.CodeAuctionAlreadyActive: "An auction is already running for this token",
	apperrors.CodeNoActiveAuction:      "There is no active auction for this token",
	apperrors.CodeNoBidsPlaced:         "The auction has no bids",

	apperrors.CodeZeroBid:         "You can't bid with 0 amount",
	apperrors.CodeSellerCannotBid: "The token current owner can not bid",
	apperrors.CodeInvalidSeller:   "Invalid owner address provided",
	apperrors.CodeBidTooLow:       "A higher bid already exists",
	apperrors.CodeInvalidAmount:   "Amounts must be non-negative whole numbers",

	apperrors.CodeZeroWithdrawable: "Withdraw amount should not be zero",
	apperrors.CodePayoutRejected:   "A payee refused the settlement payout",

	apperrors.CodeLengthMismatch: "Each collaborator needs exactly one percentage",
	apperrors.CodeInvalidSplit:   "Collaborator percentages can not exceed 100",

	apperrors.CodeInvalidFeeConfig: "Invalid fee configuration",
	apperrors.CodeInvalidFilter:    "Invalid event filter",
	apperrors.CodeConfigMismatch:   "Configuration differs from the recorded marketplace setup",

	apperrors.CodeNotFound: "The token doesn't exist",
}
