// Package ledger provides the transactional key/value unit of work every
// marketplace call executes in.
//
// A call stages all of its reads and writes in one Tx. The Tx is committed
// only if the call returns nil; any error discards every staged mutation,
// so fund movements, ownership changes and share updates are applied
// together or not at all.
package ledger

// Tx is a unit of work over named buckets. Values returned by Get and Scan
// are copies owned by the caller.
type Tx interface {
	// Get returns the value at key, or nil if absent.
	Get(bucket, key []byte) ([]byte, error)

	// Put stores value at key, creating the bucket as needed.
	Put(bucket, key, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(bucket, key []byte) error

	// Scan visits every key with the given prefix in ascending order.
	// fn must not write to the bucket being scanned.
	Scan(bucket, prefix []byte, fn func(key, value []byte) error) error
}

// Store runs units of work. Update transactions are serializable: at most
// one runs at a time and none observes another's uncommitted writes.
type Store interface {
	// Update runs fn in a read-write Tx and commits iff fn returns nil.
	Update(fn func(Tx) error) error

	// View runs fn against a consistent read-only snapshot.
	View(fn func(Tx) error) error

	// Close releases the store. Further use returns ErrClosed.
	Close() error
}
