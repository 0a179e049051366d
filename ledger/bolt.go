package ledger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

// BoltStore is a Store backed by a bbolt database file. bbolt allows a
// single writer, which gives Update the required serializable isolation.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Update(fn func(Tx) error) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
	if err == bbolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	return err
}

func (s *BoltStore) View(fn func(Tx) error) error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		return fn(&boltTx{tx: tx, readOnly: true})
	})
	if err == bbolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	return err
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *BoltStore) Path() string { return s.db.Path() }

// ---------------------------------------------------------------------------
// boltTx adapts *bbolt.Tx to Tx.
// ---------------------------------------------------------------------------

type boltTx struct {
	tx       *bbolt.Tx
	readOnly bool
}

func (t *boltTx) Get(bucket, key []byte) ([]byte, error) {
	b := t.tx.Bucket(bucket)
	if b == nil {
		return nil, nil
	}
	return clone(b.Get(key)), nil
}

func (t *boltTx) Put(bucket, key, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if err := checkWrite(bucket, key); err != nil {
		return err
	}
	b, err := t.tx.CreateBucketIfNotExists(bucket)
	if err != nil {
		return fmt.Errorf("ledger: create bucket %q: %w", bucket, err)
	}
	if err := b.Put(key, value); err != nil {
		return fmt.Errorf("ledger: put %s/%x: %w", bucket, key, err)
	}
	return nil
}

func (t *boltTx) Delete(bucket, key []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if err := checkWrite(bucket, key); err != nil {
		return err
	}
	b := t.tx.Bucket(bucket)
	if b == nil {
		return nil
	}
	return b.Delete(key)
}

func (t *boltTx) Scan(bucket, prefix []byte, fn func(key, value []byte) error) error {
	b := t.tx.Bucket(bucket)
	if b == nil {
		return nil
	}
	c := b.Cursor()
	k, v := c.First()
	if len(prefix) > 0 {
		k, v = c.Seek(prefix)
	}
	for ; k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if err := fn(clone(k), clone(v)); err != nil {
			return err
		}
	}
	return nil
}
