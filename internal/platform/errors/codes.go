// Package errors provides structured marketplace errors that map cleanly onto
// gRPC and HTTP status codes.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Authorization errors
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeNotOwner        Code = "NOT_OWNER"
	CodeNotApproved     Code = "NOT_APPROVED"

	// Registry errors
	CodeDuplicateAsset          Code = "DUPLICATE_ASSET"
	CodeInvalidAsset            Code = "INVALID_ASSET"
	CodeInvalidAddress          Code = "INVALID_ADDRESS"
	CodeCallerAlreadyConfigured Code = "CALLER_ALREADY_CONFIGURED"

	// Auction state errors
	CodeAuctionAlreadyActive Code = "AUCTION_ALREADY_ACTIVE"
	CodeNoActiveAuction      Code = "NO_ACTIVE_AUCTION"
	CodeNoBidsPlaced         Code = "NO_BIDS_PLACED"

	// Bid errors
	CodeZeroBid         Code = "ZERO_BID"
	CodeSellerCannotBid Code = "SELLER_CANNOT_BID"
	CodeInvalidSeller   Code = "INVALID_SELLER"
	CodeBidTooLow       Code = "BID_TOO_LOW"
	CodeInvalidAmount   Code = "INVALID_AMOUNT"

	// Escrow and payout errors
	CodeZeroWithdrawable Code = "ZERO_WITHDRAWABLE"
	CodePayoutRejected   Code = "PAYOUT_REJECTED"

	// Collaborator errors
	CodeLengthMismatch Code = "COLLABORATOR_LENGTH_MISMATCH"
	CodeInvalidSplit   Code = "COLLABORATOR_INVALID_SPLIT"

	// Configuration and query errors
	CodeInvalidFeeConfig Code = "INVALID_FEE_CONFIG"
	CodeInvalidFilter    Code = "INVALID_FILTER"
	CodeConfigMismatch   Code = "CONFIG_MISMATCH"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidAsset,
		CodeInvalidAddress,
		CodeZeroBid,
		CodeSellerCannotBid,
		CodeInvalidSeller,
		CodeInvalidAmount,
		CodeLengthMismatch,
		CodeInvalidSplit,
		CodeInvalidFeeConfig,
		CodeInvalidFilter:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeNotApproved,
		CodeCallerAlreadyConfigured,
		CodeAuctionAlreadyActive,
		CodeNoActiveAuction,
		CodeNoBidsPlaced,
		CodeBidTooLow,
		CodeZeroWithdrawable,
		CodePayoutRejected,
		CodeConfigMismatch:
		return codes.FailedPrecondition

	// PermissionDenied - authenticated caller lacks the capability
	case CodeUnauthorized,
		CodeNotOwner:
		return codes.PermissionDenied

	case CodeUnauthenticated:
		return codes.Unauthenticated

	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeDuplicateAsset:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes for the read API.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition, codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
