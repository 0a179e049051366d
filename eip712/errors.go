package eip712

import "errors"

var (
	// ErrMalformedSignature indicates an unparseable or non-canonical signature.
	ErrMalformedSignature = errors.New("eip712: malformed signature")

	// ErrRecoveryFailed indicates no public key could be recovered.
	ErrRecoveryFailed = errors.New("eip712: signer recovery failed")

	// ErrSigningFailed indicates the signing primitive failed.
	ErrSigningFailed = errors.New("eip712: signing failed")

	// ErrNilKey indicates a nil private key.
	ErrNilKey = errors.New("eip712: nil private key")
)
