package wallet

import (
	"errors"

	"github.com/bitfsorg/armarket-go/fault"
)

var (
	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = fault.New(fault.Validation, "wallet: invalid BIP39 mnemonic")

	// ErrInvalidEntropy indicates entropy bits is not 128 or 256.
	ErrInvalidEntropy = fault.New(fault.Validation, "wallet: entropy bits must be 128 or 256")

	// ErrIndexOutOfRange indicates an account or address index at or above the hardened offset.
	ErrIndexOutOfRange = fault.New(fault.Validation, "wallet: index exceeds maximum (2^31-1)")

	// ErrDecryptionFailed indicates wrong password or corrupted keystore data.
	ErrDecryptionFailed = errors.New("wallet: keystore decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates seed checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: seed checksum mismatch")

	// ErrInvalidChain indicates an unknown chain profile name.
	ErrInvalidChain = fault.New(fault.Validation, "wallet: invalid chain profile")

	// ErrInvalidSeed indicates the seed is empty or invalid.
	ErrInvalidSeed = fault.New(fault.Validation, "wallet: invalid seed")

	// ErrDerivationFailed indicates BIP32 key derivation failed.
	ErrDerivationFailed = errors.New("wallet: key derivation failed")
)
