// Package decimal implements base-scaled fixed-point percentages and the
// share-splitting rule applied to money amounts.
//
// A Decimal stores value * 10^18, so 100% is 100 * 10^18. Splitting always
// rounds toward zero:
//
//	SplitShare(amount, pct) = floor(amount * pct / (100 * 10^18))
package decimal

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Precision is the number of fractional decimal digits carried by a Decimal.
const Precision = 18

var (
	base        = uint256.NewInt(1_000_000_000_000_000_000)
	hundredBase = new(uint256.Int).Mul(uint256.NewInt(100), base)
)

// Decimal is a non-negative fixed-point number scaled by 10^18.
type Decimal struct {
	Value uint256.Int
}

// New returns whole percentage points as a Decimal (New(85) is 85%).
func New(whole uint64) Decimal {
	var d Decimal
	d.Value.Mul(uint256.NewInt(whole), base)
	return d
}

// FromValue wraps an already scaled value.
func FromValue(v *uint256.Int) Decimal {
	var d Decimal
	d.Value.Set(v)
	return d
}

// Hundred returns 100%.
func Hundred() Decimal {
	return FromValue(hundredBase)
}

// Base returns a copy of the scaling factor 10^18.
func Base() *uint256.Int {
	return new(uint256.Int).Set(base)
}

// IsZero reports whether d is 0.
func (d Decimal) IsZero() bool {
	return d.Value.IsZero()
}

// Cmp compares d and o and returns -1, 0 or +1.
func (d Decimal) Cmp(o Decimal) int {
	return d.Value.Cmp(&o.Value)
}

// Equal reports whether d == o.
func (d Decimal) Equal(o Decimal) bool {
	return d.Value.Eq(&o.Value)
}

// Add returns d + o.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	var r Decimal
	if _, overflow := r.Value.AddOverflow(&d.Value, &o.Value); overflow {
		return Decimal{}, ErrOverflow
	}
	return r, nil
}

// Sub returns d - o. Negative results are an error; a Decimal is unsigned.
func (d Decimal) Sub(o Decimal) (Decimal, error) {
	if d.Value.Lt(&o.Value) {
		return Decimal{}, fmt.Errorf("%w: %s - %s", ErrUnderflow, d, o)
	}
	var r Decimal
	r.Value.Sub(&d.Value, &o.Value)
	return r, nil
}

// String renders d in percentage points, trimming trailing fractional zeros.
func (d Decimal) String() string {
	var whole, frac uint256.Int
	whole.Div(&d.Value, base)
	frac.Mod(&d.Value, base)
	if frac.IsZero() {
		return whole.ToBig().String()
	}
	digits := frac.ToBig().String()
	digits = strings.Repeat("0", Precision-len(digits)) + digits
	return whole.ToBig().String() + "." + strings.TrimRight(digits, "0")
}

// Parse reads a percentage such as "85", "12.5" or "0.000000000000000001".
func Parse(s string) (Decimal, error) {
	whole, frac, hasFrac := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" || (hasFrac && frac == "") {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	if len(frac) > Precision {
		return Decimal{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidDecimal, s, Precision)
	}

	digits := whole + frac + strings.Repeat("0", Precision-len(frac))
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok || n.Sign() < 0 || strings.ContainsAny(digits, "+-") {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	v, overflow := uint256.FromBig(n)
	if overflow {
		return Decimal{}, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return FromValue(v), nil
}

// MustParse is Parse for constants. It panics on error.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SplitShare returns floor(amount * pct / (100 * 10^18)).
func SplitShare(amount *uint256.Int, pct Decimal) (*uint256.Int, error) {
	prod, overflow := new(uint256.Int).MulOverflow(amount, &pct.Value)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s", ErrOverflow, amount.ToBig(), pct)
	}
	return prod.Div(prod, hundredBase), nil
}
