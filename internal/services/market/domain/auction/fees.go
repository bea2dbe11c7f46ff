package auction

import (
	"fmt"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
)

// FeeConfig is the process-wide fee schedule fixed at construction.
type FeeConfig struct {
	Platform core.Address `json:"platform"`
	Network  core.Address `json:"network"`

	PlatformPrimary   core.Percent `json:"platform_primary"`
	NetworkPrimary    core.Percent `json:"network_primary"`
	PlatformSecondary core.Percent `json:"platform_secondary"`
	NetworkSecondary  core.Percent `json:"network_secondary"`
	ArtistPrimary     core.Percent `json:"artist_primary"`
	ArtistSecondary   core.Percent `json:"artist_secondary"`
}

// DefaultFeeConfig returns the reference schedule: 10/3/87 on primary sales
// and 2/3/10 on secondary sales.
func DefaultFeeConfig(platform, network core.Address) FeeConfig {
	return FeeConfig{
		Platform:          platform,
		Network:           network,
		PlatformPrimary:   10,
		NetworkPrimary:    3,
		PlatformSecondary: 2,
		NetworkSecondary:  3,
		ArtistPrimary:     87,
		ArtistSecondary:   10,
	}
}

// Validate checks addresses and that neither sale type pays out more than
// the full amount.
func (c FeeConfig) Validate() error {
	if c.Platform.IsZero() {
		return invalidFees("platform address is required")
	}
	if c.Network.IsZero() {
		return invalidFees("network address is required")
	}
	named := []struct {
		name  string
		value core.Percent
	}{
		{"platform primary", c.PlatformPrimary},
		{"network primary", c.NetworkPrimary},
		{"platform secondary", c.PlatformSecondary},
		{"network secondary", c.NetworkSecondary},
		{"artist primary", c.ArtistPrimary},
		{"artist secondary", c.ArtistSecondary},
	}
	for _, p := range named {
		if !p.value.Valid() {
			return invalidFees(fmt.Sprintf("%s percentage %d is outside [0,100]", p.name, int(p.value)))
		}
	}
	if sum := core.SumPercents(c.PlatformPrimary, c.NetworkPrimary, c.ArtistPrimary); sum > 100 {
		return invalidFees(fmt.Sprintf("primary percentages sum to %d", sum))
	}
	if sum := core.SumPercents(c.PlatformSecondary, c.NetworkSecondary, c.ArtistSecondary); sum > 100 {
		return invalidFees(fmt.Sprintf("secondary percentages sum to %d", sum))
	}
	return nil
}

func invalidFees(message string) error {
	return apperrors.New(apperrors.CodeInvalidFeeConfig, message)
}
