package core

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
)

// AssetID is a sequential asset identifier. Zero is reserved.
type AssetID uint64

// ParseAssetID parses a decimal asset id. Zero and malformed ids are NotFound
// since no asset can carry them.
func ParseAssetID(raw string) (AssetID, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, apperrors.WithMetadata(apperrors.CodeNotFound, "asset id is invalid", map[string]string{"AssetID": raw})
	}
	return AssetID(value), nil
}

// String implements fmt.Stringer.
func (id AssetID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
