package core

import (
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ContentKey returns the uniqueness key for a content identifier. Values that
// decode as CIDs collapse to their CIDv1 string so v0 and v1 spellings of the
// same content collide; anything else is compared trimmed and verbatim.
func ContentKey(contentID string) string {
	value := strings.TrimSpace(contentID)
	if value == "" {
		return ""
	}
	value = strings.TrimPrefix(value, "ipfs://")
	c, err := cid.Decode(value)
	if err != nil {
		return strings.TrimSpace(contentID)
	}
	if c.Version() == 0 {
		c = cid.NewCidV1(c.Type(), c.Hash())
	}
	return c.String()
}

// ContentIDFromBytes returns the CIDv1 (raw codec, sha2-256) for data.
func ContentIDFromBytes(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
