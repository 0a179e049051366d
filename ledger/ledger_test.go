package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitfsorg/armarket-go/account"
	"github.com/bitfsorg/armarket-go/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bucketTest = []byte("test")

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	bolt, err := OpenBoltStore(filepath.Join(dir, "bolt", "ledger.db"))
	require.NoError(t, err)
	level, err := OpenLevelStore(filepath.Join(dir, "level"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory":  NewMemStore(),
		"bolt":    bolt,
		"leveldb": level,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

// ---------------------------------------------------------------------------
// Store contract tests, run against every backend.
// ---------------------------------------------------------------------------

func TestStore_PutGetDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(func(tx Tx) error {
				return tx.Put(bucketTest, []byte("k"), []byte("v"))
			}))

			require.NoError(t, s.View(func(tx Tx) error {
				v, err := tx.Get(bucketTest, []byte("k"))
				require.NoError(t, err)
				assert.Equal(t, []byte("v"), v)

				missing, err := tx.Get([]byte("nobucket"), []byte("k"))
				require.NoError(t, err)
				assert.Nil(t, missing)
				return nil
			}))

			require.NoError(t, s.Update(func(tx Tx) error {
				return tx.Delete(bucketTest, []byte("k"))
			}))
			require.NoError(t, s.View(func(tx Tx) error {
				ok, err := Has(tx, bucketTest, []byte("k"))
				assert.False(t, ok)
				return err
			}))
		})
	}
}

func TestStore_RollbackOnError(t *testing.T) {
	boom := errors.New("transfer failed")

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, putCounter(s, []byte("balance"), 100))

			err := s.Update(func(tx Tx) error {
				if err := PutUint64(tx, bucketTest, []byte("balance"), 40); err != nil {
					return err
				}
				if err := tx.Put(bucketTest, []byte("owner"), []byte("B")); err != nil {
					return err
				}
				// Staged writes are visible inside the unit of work.
				n, err := GetUint64(tx, bucketTest, []byte("balance"))
				require.NoError(t, err)
				assert.Equal(t, uint64(40), n)
				return boom
			})
			assert.ErrorIs(t, err, boom)

			require.NoError(t, s.View(func(tx Tx) error {
				n, err := GetUint64(tx, bucketTest, []byte("balance"))
				require.NoError(t, err)
				assert.Equal(t, uint64(100), n)

				owner, err := tx.Get(bucketTest, []byte("owner"))
				require.NoError(t, err)
				assert.Nil(t, owner)
				return nil
			}))
		})
	}
}

func putCounter(s Store, key []byte, n uint64) error {
	return s.Update(func(tx Tx) error { return PutUint64(tx, bucketTest, key, n) })
}

func TestStore_ScanPrefixOrdered(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(func(tx Tx) error {
				for _, n := range []uint64{3, 1, 2} {
					if err := tx.Put(bucketTest, Key([]byte("a/"), U64(n)), U64(n*10)); err != nil {
						return err
					}
				}
				return tx.Put(bucketTest, []byte("b/1"), []byte("x"))
			}))

			require.NoError(t, s.Update(func(tx Tx) error {
				// Staged insert and delete must be reflected by Scan.
				require.NoError(t, tx.Put(bucketTest, Key([]byte("a/"), U64(4)), U64(40)))
				require.NoError(t, tx.Delete(bucketTest, Key([]byte("a/"), U64(2))))

				var got []uint64
				err := tx.Scan(bucketTest, []byte("a/"), func(k, v []byte) error {
					n, err := ParseU64(k[2:])
					got = append(got, n)
					return err
				})
				assert.Equal(t, []uint64{1, 3, 4}, got)
				return err
			}))

			var all int
			require.NoError(t, s.View(func(tx Tx) error {
				return tx.Scan(bucketTest, nil, func(k, v []byte) error {
					all++
					return nil
				})
			}))
			assert.Equal(t, 4, all)
		})
	}
}

func TestStore_ViewIsReadOnly(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.View(func(tx Tx) error {
				return tx.Put(bucketTest, []byte("k"), []byte("v"))
			})
			assert.ErrorIs(t, err, ErrReadOnly)
		})
	}
}

func TestStore_ViewDuringUpdate(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			key := []byte("k")
			require.NoError(t, s.Update(func(tx Tx) error { return tx.Put(bucketTest, key, []byte("old")) }))

			err := s.Update(func(tx Tx) error {
				if err := tx.Put(bucketTest, key, []byte("new")); err != nil {
					return err
				}
				seen := make(chan []byte, 1)
				go func() {
					var v []byte
					s.View(func(tx Tx) error {
						var err error
						v, err = tx.Get(bucketTest, key)
						return err
					})
					seen <- v
				}()
				select {
				case v := <-seen:
					assert.Equal(t, []byte("old"), v, "view sees the last commit")
				case <-time.After(5 * time.Second):
					t.Error("view blocked behind a running update")
				}
				return nil
			})
			require.NoError(t, err)

			require.NoError(t, s.View(func(tx Tx) error {
				v, err := tx.Get(bucketTest, key)
				assert.Equal(t, []byte("new"), v)
				return err
			}))
		})
	}
}

func TestStore_RejectsEmptyNames(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Update(func(tx Tx) error { return tx.Put(nil, []byte("k"), []byte("v")) })
			assert.ErrorIs(t, err, ErrEmptyBucket)
			err = s.Update(func(tx Tx) error { return tx.Put(bucketTest, nil, []byte("v")) })
			assert.ErrorIs(t, err, ErrEmptyKey)
		})
	}
}

// ---------------------------------------------------------------------------
// Persistence and codec tests
// ---------------------------------------------------------------------------

type record struct {
	Name  string
	Count uint64
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(func(tx Tx) error {
		return PutGob(tx, bucketTest, []byte("r"), record{Name: "edition", Count: 107})
	}))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	var got record
	require.NoError(t, s.View(func(tx Tx) error {
		ok, err := GetGob(tx, bucketTest, []byte("r"), &got)
		assert.True(t, ok)
		return err
	}))
	assert.Equal(t, record{Name: "edition", Count: 107}, got)
}

func TestLevelStore_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ldb")

	s, err := OpenLevelStore(dir)
	require.NoError(t, err)
	require.NoError(t, putCounter(s, []byte("n"), 7))
	require.NoError(t, s.Close())

	s, err = OpenLevelStore(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.View(func(tx Tx) error {
		n, err := GetUint64(tx, bucketTest, []byte("n"))
		assert.Equal(t, uint64(7), n)
		return err
	}))
}

func TestMemStore_Closed(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Update(func(Tx) error { return nil }), ErrClosed)
	assert.ErrorIs(t, s.View(func(Tx) error { return nil }), ErrClosed)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{BackendBolt, BackendLevel, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, dir)
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}

	_, err := Open("sqlite", dir)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestU64Keys(t *testing.T) {
	n, err := ParseU64(U64(1 << 40))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), n)

	_, err = ParseU64([]byte{1, 2})
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Frame tests
// ---------------------------------------------------------------------------

func TestFrame_NestedCallsShareEvents(t *testing.T) {
	alice := account.Address{1}
	media := account.Address{2}
	at := time.Unix(1700000000, 0)

	f := NewFrame(nil, alice, at)
	f.Emit(event.AskCreated, 1, nil)

	nested := f.As(media)
	assert.Equal(t, media, nested.Sender)
	assert.Equal(t, alice, f.Sender)
	nested.Emit(event.BidShareUpdated, 1, nil)

	events := f.Events()
	require.Len(t, events, 2)
	assert.Equal(t, event.AskCreated, events[0].Kind)
	assert.Equal(t, event.BidShareUpdated, events[1].Kind)
	assert.Equal(t, at, events[1].Time)
	assert.Equal(t, uint64(1700000000), f.Unix())
}
