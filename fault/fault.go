// Package fault defines the rejection taxonomy shared by every engine
// component.
//
// Component sentinels wrap exactly one kind, so callers can branch on the
// broad class with errors.Is(err, fault.Replay) and still match the precise
// reason with errors.Is(err, media.ErrMintWithSigInvalidNonce).
package fault

import "errors"

var (
	// Authorization marks a caller lacking the owner, approved, authorization
	// layer or creator role.
	Authorization = errors.New("authorization")

	// Validation marks malformed input: zero amounts, empty URIs, zero hashes,
	// unsplittable amounts, mismatched lengths, out of range editions.
	Validation = errors.New("validation")

	// Replay marks a reused nonce or an already minted dedupe key.
	Replay = errors.New("replay")

	// Expiry marks a signature whose deadline has passed.
	Expiry = errors.New("expiry")

	// NotFound marks an operation on a nonexistent token, ask or bid.
	NotFound = errors.New("not found")
)

// Kind is the name of a taxonomy class.
type Kind string

const (
	KindAuthorization Kind = "authorization"
	KindValidation    Kind = "validation"
	KindReplay        Kind = "replay"
	KindExpiry        Kind = "expiry"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

// KindOf classifies err. Errors outside the taxonomy are KindInternal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, Authorization):
		return KindAuthorization
	case errors.Is(err, Validation):
		return KindValidation
	case errors.Is(err, Replay):
		return KindReplay
	case errors.Is(err, Expiry):
		return KindExpiry
	case errors.Is(err, NotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// New returns a sentinel carrying msg that wraps kind.
func New(kind error, msg string) error {
	return &reason{kind: kind, msg: msg}
}

type reason struct {
	kind error
	msg  string
}

func (r *reason) Error() string { return r.msg }

func (r *reason) Unwrap() error { return r.kind }
