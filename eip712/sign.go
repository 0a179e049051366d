package eip712

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/bitfsorg/armarket-go/account"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// Signature is a recoverable secp256k1 signature in Ethereum form:
// V is 27 or 28.
type Signature struct {
	V uint8
	R [32]byte
	S [32]byte
}

// Bytes returns R || S || V.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, 65)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// SignatureFromBytes parses R || S || V. V may be 0/1 or 27/28.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != 65 {
		return sig, fmt.Errorf("%w: expected 65 bytes, got %d", ErrMalformedSignature, len(b))
	}
	copy(sig.R[:], b[:32])
	copy(sig.S[:], b[32:64])
	sig.V = b[64]
	if sig.V < 27 {
		sig.V += 27
	}
	return sig, nil
}

// MarshalText renders the signature as 0x-prefixed R || S || V hex.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(s.Bytes())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	parsed, err := SignatureFromBytes(b)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

var halfOrder = new(big.Int).Rsh(ec.S256().N, 1)

// Sign produces a recoverable signature over digest.
func Sign(priv *ec.PrivateKey, digest Hash) (Signature, error) {
	if priv == nil {
		return Signature{}, ErrNilKey
	}

	// 1. Compact signature: recovery byte (27 + recid, uncompressed) || R || S.
	compact, err := ec.SignCompact(ec.S256(), priv, digest[:], false)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	if len(compact) != 65 {
		return Signature{}, fmt.Errorf("%w: unexpected compact length %d", ErrSigningFailed, len(compact))
	}

	// 2. Reorder into Ethereum layout.
	var sig Signature
	sig.V = compact[0]
	copy(sig.R[:], compact[1:33])
	copy(sig.S[:], compact[33:65])
	return sig, nil
}

// Recover returns the address that produced sig over digest.
func Recover(digest Hash, sig Signature) (account.Address, error) {
	if sig.V != 27 && sig.V != 28 {
		return account.Zero, fmt.Errorf("%w: v=%d", ErrMalformedSignature, sig.V)
	}
	if new(big.Int).SetBytes(sig.S[:]).Cmp(halfOrder) > 0 {
		return account.Zero, fmt.Errorf("%w: s is not in the lower half order", ErrMalformedSignature)
	}

	compact := make([]byte, 0, 65)
	compact = append(compact, sig.V)
	compact = append(compact, sig.R[:]...)
	compact = append(compact, sig.S[:]...)

	pub, _, err := ec.RecoverCompact(compact, digest[:])
	if err != nil {
		return account.Zero, fmt.Errorf("%w: %w", ErrRecoveryFailed, err)
	}
	return account.FromPublicKey(pub), nil
}

// SignMessage hashes m under d and signs the digest.
func SignMessage(priv *ec.PrivateKey, d Domain, m Message) (Signature, error) {
	return Sign(priv, Digest(d, m))
}

// RecoverMessage returns the signer of m under d.
func RecoverMessage(d Domain, m Message, sig Signature) (account.Address, error) {
	return Recover(Digest(d, m), sig)
}
