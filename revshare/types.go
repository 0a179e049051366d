// Package revshare models the five-way revenue split attached to every
// token and the global platform cuts applied at first and further sales.
package revshare

import (
	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/holiman/uint256"
)

// BidShares holds the percentages applied to a token's next sale proceeds.
type BidShares struct {
	PrevOwner decimal.Decimal `json:"prev_owner"`
	Owner     decimal.Decimal `json:"owner"`
	Creator   decimal.Decimal `json:"creator"`
	Platform  decimal.Decimal `json:"platform"`
	Pool      decimal.Decimal `json:"pool"`
}

// PlatformCuts are the global default percentages. First-sale values shape
// the shares written at mint; further-sale values shape the shares written
// after every accepted bid while enforcement is on.
type PlatformCuts struct {
	FirstSalePlatform    decimal.Decimal `json:"first_sale_platform"`
	FirstSalePool        decimal.Decimal `json:"first_sale_pool"`
	FurtherSalesPlatform decimal.Decimal `json:"further_sales_platform"`
	FurtherSalesPool     decimal.Decimal `json:"further_sales_pool"`
	FurtherSalesCreator  decimal.Decimal `json:"further_sales_creator"`
}

// DefaultPlatformCuts returns 10/5 for first sales and 5/5/5 for further sales.
func DefaultPlatformCuts() PlatformCuts {
	return PlatformCuts{
		FirstSalePlatform:    decimal.New(10),
		FirstSalePool:        decimal.New(5),
		FurtherSalesPlatform: decimal.New(5),
		FurtherSalesPool:     decimal.New(5),
		FurtherSalesCreator:  decimal.New(5),
	}
}

// Role names a stakeholder in a payout.
type Role string

const (
	RolePrevOwner Role = "prev_owner"
	RoleCreator   Role = "creator"
	RolePlatform  Role = "platform"
	RolePool      Role = "pool"
	RoleOwner     Role = "owner"
)

// Stakeholders are the payout addresses for each role.
type Stakeholders struct {
	PrevOwner account.Address
	Creator   account.Address
	Platform  account.Address
	Pool      account.Address
	Owner     account.Address
}

// Distribution represents a single payout of a settled sale.
type Distribution struct {
	Role    Role
	Address account.Address
	Amount  uint256.Int
}
