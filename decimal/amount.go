package decimal

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Coins returns whole coin units as a base-scaled amount (Coins(1) is 10^18).
func Coins(whole uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(whole), base)
}

// ParseAmount reads a base-10 integer amount in the smallest unit.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "+-") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return v, nil
}

// FormatAmount renders an amount as a base-10 integer.
func FormatAmount(v *uint256.Int) string {
	return v.ToBig().String()
}
