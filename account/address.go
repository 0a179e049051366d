// Package account defines the 20-byte account address used to identify
// callers, creators, bidders and stakeholders.
//
// An address is the last 20 bytes of keccak256(X || Y) of an uncompressed
// secp256k1 public key, rendered in EIP-55 mixed-case form.
package account

import (
	"encoding/hex"
	"fmt"
	"strings"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"golang.org/x/crypto/sha3"
)

// AddressLength is the byte length of an address.
const AddressLength = 20

// Address identifies an account.
type Address [AddressLength]byte

// Zero is the all-zero address. As a currency it denotes the native coin.
var Zero Address

// FromPublicKey derives the address of a secp256k1 public key.
func FromPublicKey(pub *ec.PublicKey) Address {
	var buf [64]byte
	pub.X.FillBytes(buf[:32])
	pub.Y.FillBytes(buf[32:])

	h := sha3.NewLegacyKeccak256()
	h.Write(buf[:])
	sum := h.Sum(nil)

	var a Address
	copy(a[:], sum[12:])
	return a
}

// ForComponent returns the fixed address of a built-in component. It is
// keccak256(name)[12:], so it has no private key.
func ForComponent(name string) Address {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	sum := h.Sum(nil)

	var a Address
	copy(a[:], sum[12:])
	return a
}

// FromBytes copies b into an address. b must be exactly 20 bytes.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// ParseAddress parses a hex address with or without the 0x prefix.
// Mixed-case input must carry a valid EIP-55 checksum.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != AddressLength*2 {
		return a, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	copy(a[:], b)

	if raw != strings.ToLower(raw) && raw != strings.ToUpper(raw) {
		if a.checksumHex()[2:] != raw {
			return Address{}, fmt.Errorf("%w: %q", ErrBadChecksum, s)
		}
	}
	return a, nil
}

// MustParse is ParseAddress for constants and tests. It panics on error.
func MustParse(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Zero
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// Hex returns the EIP-55 checksummed form with a 0x prefix.
func (a Address) Hex() string {
	return a.checksumHex()
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Address) checksumHex() string {
	lower := hex.EncodeToString(a[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i := range out {
		if out[i] < 'a' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] -= 'a' - 'A'
		}
	}
	return "0x" + string(out)
}
