package ledger

import "errors"

var (
	// ErrReadOnly indicates a write was attempted inside View.
	ErrReadOnly = errors.New("ledger: write in read-only transaction")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("ledger: store closed")

	// ErrEmptyBucket indicates an empty bucket name.
	ErrEmptyBucket = errors.New("ledger: bucket name must not be empty")

	// ErrEmptyKey indicates an empty key on write.
	ErrEmptyKey = errors.New("ledger: key must not be empty")

	// ErrUnknownBackend indicates an unsupported store backend name.
	ErrUnknownBackend = errors.New("ledger: unknown store backend")
)
