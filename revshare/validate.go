package revshare

import (
	"fmt"

	"github.com/bitfsorg/armarket-go/decimal"
	"github.com/holiman/uint256"
)

// Sum returns the total of the five shares.
func (s BidShares) Sum() (decimal.Decimal, error) {
	total := s.PrevOwner
	for _, d := range []decimal.Decimal{s.Owner, s.Creator, s.Platform, s.Pool} {
		var err error
		if total, err = total.Add(d); err != nil {
			return decimal.Decimal{}, err
		}
	}
	return total, nil
}

// ValidateBidShares checks that the five shares sum to exactly 100.
func ValidateBidShares(s BidShares) error {
	total, err := s.Sum()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBidShares, err)
	}
	if !total.Equal(decimal.Hundred()) {
		return fmt.Errorf("%w: got %s", ErrInvalidBidShares, total)
	}
	return nil
}

// IsSplittable reports whether amount divides across the shares with no
// value lost to rounding: the floored split of every share must add back up
// to exactly amount. A zero amount is never splittable.
func IsSplittable(amount *uint256.Int, s BidShares) bool {
	if amount.IsZero() {
		return false
	}
	total := new(uint256.Int)
	for _, pct := range s.ordered() {
		part, err := decimal.SplitShare(amount, pct)
		if err != nil {
			return false
		}
		if _, overflow := total.AddOverflow(total, part); overflow {
			return false
		}
	}
	return total.Eq(amount)
}

// remainder returns 100 - sum(parts), or ErrSharesExceedTotal.
func remainder(parts ...decimal.Decimal) (decimal.Decimal, error) {
	var used decimal.Decimal
	for _, p := range parts {
		var err error
		if used, err = used.Add(p); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrSharesExceedTotal, err)
		}
	}
	owner, err := decimal.Hundred().Sub(used)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: fixed shares total %s", ErrSharesExceedTotal, used)
	}
	return owner, nil
}

// ordered lists the percentages in payout order, owner last.
func (s BidShares) ordered() []decimal.Decimal {
	return []decimal.Decimal{s.PrevOwner, s.Creator, s.Platform, s.Pool, s.Owner}
}
