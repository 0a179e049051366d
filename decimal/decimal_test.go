package decimal

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndString(t *testing.T) {
	tests := []struct {
		name string
		d    Decimal
		want string
	}{
		{"zero", Decimal{}, "0"},
		{"whole", New(85), "85"},
		{"hundred", Hundred(), "100"},
		{"fraction", MustParse("12.5"), "12.5"},
		{"smallest unit", FromValue(uint256.NewInt(1)), "0.000000000000000001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.String())
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("85")
	require.NoError(t, err)
	assert.True(t, d.Equal(New(85)))

	d, err = Parse("0.5")
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", FormatAmount(&d.Value))

	bad := []string{"", ".", "5.", "-1", "+1", "abc", "1.0000000000000000001"}
	for _, s := range bad {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			assert.ErrorIs(t, err, ErrInvalidDecimal)
		})
	}
}

func TestAddSub(t *testing.T) {
	sum, err := New(10).Add(New(5))
	require.NoError(t, err)
	assert.True(t, sum.Equal(New(15)))

	diff, err := Hundred().Sub(sum)
	require.NoError(t, err)
	assert.True(t, diff.Equal(New(85)))

	_, err = New(5).Sub(New(10))
	assert.ErrorIs(t, err, ErrUnderflow)

	max := FromValue(new(uint256.Int).SetAllOne())
	_, err = max.Add(New(1))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSplitShare(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		pct    Decimal
		want   uint64
	}{
		{"exact", 100, New(85), 85},
		{"floor", 101, New(85), 85},
		{"floor small share", 101, New(5), 5},
		{"zero pct", 100, Decimal{}, 0},
		{"zero amount", 0, New(50), 0},
		{"full", 7, Hundred(), 7},
		{"fractional pct", 1000, MustParse("12.5"), 125},
		{"rounds toward zero", 1, New(99), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitShare(uint256.NewInt(tc.amount), tc.pct)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Uint64())
		})
	}

	t.Run("large amounts", func(t *testing.T) {
		got, err := SplitShare(Coins(100), New(15))
		require.NoError(t, err)
		assert.True(t, got.Eq(Coins(15)))
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := SplitShare(new(uint256.Int).SetAllOne(), New(50))
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestDecimalJSON(t *testing.T) {
	type shares struct {
		Owner Decimal `json:"owner"`
	}
	data, err := json.Marshal(shares{Owner: MustParse("70.25")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner":"70.25"}`, string(data))

	var back shares
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Owner.Equal(MustParse("70.25")))
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("1000000000000000000")
	require.NoError(t, err)
	assert.True(t, v.Eq(Coins(1)))
	assert.Equal(t, "1000000000000000000", FormatAmount(v))

	for _, s := range []string{"", "-5", "1.5", "0x10"} {
		_, err := ParseAmount(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, s)
	}
}
