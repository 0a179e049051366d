package account

import "errors"

var (
	// ErrInvalidHex indicates the address text is not 40 hex characters.
	ErrInvalidHex = errors.New("account: invalid hex address")

	// ErrInvalidLength indicates a raw address is not 20 bytes.
	ErrInvalidLength = errors.New("account: invalid address length")

	// ErrBadChecksum indicates a mixed-case address fails EIP-55 validation.
	ErrBadChecksum = errors.New("account: address checksum mismatch")
)
