package ledger

import (
	"errors"
	"fmt"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelStore is a Store backed by goleveldb. Buckets are emulated with a
// "bucket\x00" key prefix. Update runs in a leveldb transaction, which is
// exclusive against other writes; View reads from a snapshot.
type LevelStore struct {
	db *leveldb.DB
}

// Compile-time interface check.
var _ Store = (*LevelStore)(nil)

// OpenLevelStore opens or creates the leveldb database directory at dir.
func OpenLevelStore(dir string) (*LevelStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open leveldb: %w", err)
	}
	return &LevelStore{db: db}, nil
}

func (s *LevelStore) Update(fn func(Tx) error) error {
	tr, err := s.db.OpenTransaction()
	if err != nil {
		return mapLevelErr(err)
	}
	if err := fn(&levelTx{r: tr, w: tr}); err != nil {
		tr.Discard()
		return err
	}
	if err := tr.Commit(); err != nil {
		return fmt.Errorf("ledger: commit: %w", err)
	}
	return nil
}

func (s *LevelStore) View(fn func(Tx) error) error {
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return mapLevelErr(err)
	}
	defer snap.Release()
	return fn(&levelTx{r: snap})
}

// Close closes the underlying database.
func (s *LevelStore) Close() error { return s.db.Close() }

func mapLevelErr(err error) error {
	if errors.Is(err, leveldb.ErrClosed) {
		return ErrClosed
	}
	return err
}

// levelReader is the read surface shared by *leveldb.Transaction and
// *leveldb.Snapshot.
type levelReader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

type levelTx struct {
	r levelReader
	w *leveldb.Transaction // nil for snapshots
}

func levelKey(bucket, key []byte) []byte {
	return Key(bucket, []byte{0}, key)
}

func (t *levelTx) Get(bucket, key []byte) ([]byte, error) {
	v, err := t.r.Get(levelKey(bucket, key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: get %s/%x: %w", bucket, key, err)
	}
	if v == nil {
		v = []byte{}
	}
	return v, nil
}

func (t *levelTx) Put(bucket, key, value []byte) error {
	if t.w == nil {
		return ErrReadOnly
	}
	if err := checkWrite(bucket, key); err != nil {
		return err
	}
	return t.w.Put(levelKey(bucket, key), value, nil)
}

func (t *levelTx) Delete(bucket, key []byte) error {
	if t.w == nil {
		return ErrReadOnly
	}
	if err := checkWrite(bucket, key); err != nil {
		return err
	}
	return t.w.Delete(levelKey(bucket, key), nil)
}

func (t *levelTx) Scan(bucket, prefix []byte, fn func(key, value []byte) error) error {
	it := t.r.NewIterator(util.BytesPrefix(levelKey(bucket, prefix)), nil)
	defer it.Release()

	skip := len(bucket) + 1
	for it.Next() {
		if err := fn(clone(it.Key()[skip:]), clone(it.Value())); err != nil {
			return err
		}
	}
	return it.Error()
}
