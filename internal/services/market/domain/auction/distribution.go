package auction

import (
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/shopspring/decimal"
)

// SaleType distinguishes an asset's first settlement from later ones.
type SaleType string

const (
	SalePrimary   SaleType = "primary"
	SaleSecondary SaleType = "secondary"
)

// Role labels why a payout was made.
type Role string

const (
	RoleNetwork      Role = "network"
	RolePlatform     Role = "platform"
	RoleCreator      Role = "creator"
	RoleCollaborator Role = "collaborator"
	RoleRoyalty      Role = "royalty"
	RoleSeller       Role = "seller"
)

// Payout is one credit produced by a settlement.
type Payout struct {
	Address core.Address    `json:"address"`
	Role    Role            `json:"role"`
	Amount  decimal.Decimal `json:"amount"`
}

// Collaborator takes a percentage of the creator's primary share.
type Collaborator struct {
	Address core.Address `json:"address"`
	Percent core.Percent `json:"percent"`
}

// Sale describes a settlement to distribute.
type Sale struct {
	Amount        decimal.Decimal
	Seller        core.Address
	Creator       core.Address
	SaleCount     uint64
	Collaborators []Collaborator
}

// Settlement is the result of Distribute.
type Settlement struct {
	SaleType SaleType `json:"sale_type"`
	Payouts  []Payout `json:"payouts"`
}

// Total sums every payout.
func (s Settlement) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payouts {
		total = total.Add(p.Amount)
	}
	return total
}

// Distribute splits sale.Amount between network, platform, creator,
// collaborators and seller. Each share truncates; whatever truncation leaves
// over stays with the seller, so payouts always sum to the sale amount.
// Zero payouts are omitted.
func Distribute(fees FeeConfig, sale Sale) Settlement {
	amount := sale.Amount
	if sale.SaleCount > 0 {
		network := core.PercentOf(amount, fees.NetworkSecondary)
		platform := core.PercentOf(amount, fees.PlatformSecondary)
		royalty := core.PercentOf(amount, fees.ArtistSecondary)
		seller := amount.Sub(network).Sub(platform).Sub(royalty)

		var out payouts
		out.add(fees.Network, RoleNetwork, network)
		out.add(fees.Platform, RolePlatform, platform)
		out.add(sale.Creator, RoleRoyalty, royalty)
		out.add(sale.Seller, RoleSeller, seller)
		return Settlement{SaleType: SaleSecondary, Payouts: out}
	}

	network := core.PercentOf(amount, fees.NetworkPrimary)
	platform := core.PercentOf(amount, fees.PlatformPrimary)
	creatorShare := core.PercentOf(amount, fees.ArtistPrimary)
	seller := amount.Sub(network).Sub(platform).Sub(creatorShare)

	var out payouts
	out.add(fees.Network, RoleNetwork, network)
	out.add(fees.Platform, RolePlatform, platform)
	creatorNet := creatorShare
	for _, c := range sale.Collaborators {
		cut := core.PercentOf(creatorShare, c.Percent)
		creatorNet = creatorNet.Sub(cut)
		out.add(c.Address, RoleCollaborator, cut)
	}
	out.add(sale.Creator, RoleCreator, creatorNet)
	out.add(sale.Seller, RoleSeller, seller)
	return Settlement{SaleType: SalePrimary, Payouts: out}
}

type payouts []Payout

func (p *payouts) add(addr core.Address, role Role, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	*p = append(*p, Payout{Address: addr, Role: role, Amount: amount})
}
