package revshare

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/holiman/uint256"
)

// Distribute splits amount across the stakeholders in the fixed order
// prevOwner, creator, platform, pool, owner. The owner receives
// amount minus the other four payouts, so the five always sum to amount
// and any rounding dust lands with the owner.
func Distribute(amount *uint256.Int, shares BidShares, to Stakeholders) ([]Distribution, error) {
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}

	fixed := []struct {
		role Role
		addr account.Address
		pct  decimal.Decimal
	}{
		{RolePrevOwner, to.PrevOwner, shares.PrevOwner},
		{RoleCreator, to.Creator, shares.Creator},
		{RolePlatform, to.Platform, shares.Platform},
		{RolePool, to.Pool, shares.Pool},
	}

	out := make([]Distribution, 0, len(fixed)+1)
	paid := new(uint256.Int)
	for _, f := range fixed {
		part, err := decimal.SplitShare(amount, f.pct)
		if err != nil {
			return nil, err
		}
		paid.Add(paid, part)
		if paid.Gt(amount) {
			return nil, fmt.Errorf("%w: splits %s exceed amount %s",
				ErrInsufficientPayment, paid.ToBig(), amount.ToBig())
		}
		out = append(out, Distribution{Role: f.role, Address: f.addr, Amount: *part})
	}

	// Owner gets the remainder.
	var rest uint256.Int
	rest.Sub(amount, paid)
	out = append(out, Distribution{Role: RoleOwner, Address: to.Owner, Amount: rest})

	return out, nil
}
