package core

import (
	"encoding/hex"
	"strings"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
)

// Address identifies an account: a 0x-prefixed, 20-byte hex string in lower
// case. The empty string and the all-zero address are both "zero".
type Address string

const addressHexLen = 40

// ZeroAddress is the canonical all-zero account.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// ParseAddress normalizes raw into an Address. Blank input yields the empty
// address without error so callers can decide whether zero is allowed.
func ParseAddress(raw string) (Address, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", nil
	}
	digits, ok := strings.CutPrefix(value, "0x")
	if !ok || len(digits) != addressHexLen {
		return "", apperrors.WithMetadata(apperrors.CodeInvalidAddress,
			"address must be 0x followed by 40 hex digits", map[string]string{"Value": raw})
	}
	if _, err := hex.DecodeString(digits); err != nil {
		return "", apperrors.WithMetadata(apperrors.CodeInvalidAddress,
			"address is not hex", map[string]string{"Value": raw})
	}
	return Address(value), nil
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(raw string) Address {
	addr, err := ParseAddress(raw)
	if err != nil {
		panic(err)
	}
	return addr
}

// IsZero reports whether a is empty or the all-zero account.
func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return string(a)
}
