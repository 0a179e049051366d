package ledger

import (
	"bytes"
	"sort"
	"sync"
)

// MemStore is an in-memory Store. Update stages writes in an overlay and
// publishes a new committed map only when the callback succeeds. Committed
// maps are never modified in place, so View reads a stable snapshot and
// does not wait for a running Update.
type MemStore struct {
	wmu    sync.Mutex   // serialises Update
	mu     sync.RWMutex // guards data and closed
	data   map[string]map[string][]byte
	closed bool
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]map[string][]byte)}
}

func (s *MemStore) snapshot() (map[string]map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.data, nil
}

func (s *MemStore) Update(fn func(Tx) error) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	base, err := s.snapshot()
	if err != nil {
		return err
	}

	tx := &memTx{base: base, staged: make(map[string]map[string]*[]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.staged) == 0 {
		return nil
	}

	next := make(map[string]map[string][]byte, len(base)+len(tx.staged))
	for b, bucket := range base {
		next[b] = bucket
	}
	for b, writes := range tx.staged {
		bucket := make(map[string][]byte, len(base[b])+len(writes))
		for k, v := range base[b] {
			bucket[k] = v
		}
		for k, v := range writes {
			if v == nil {
				delete(bucket, k)
				continue
			}
			bucket[k] = *v
		}
		next[b] = bucket
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data = next
	return nil
}

func (s *MemStore) View(fn func(Tx) error) error {
	base, err := s.snapshot()
	if err != nil {
		return err
	}
	return fn(&memTx{base: base, readOnly: true})
}

func (s *MemStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// memTx reads through staged writes to the committed map. A nil entry in
// staged records a delete.
type memTx struct {
	base     map[string]map[string][]byte
	staged   map[string]map[string]*[]byte
	readOnly bool
}

func (t *memTx) Get(bucket, key []byte) ([]byte, error) {
	if writes, ok := t.staged[string(bucket)]; ok {
		if v, ok := writes[string(key)]; ok {
			if v == nil {
				return nil, nil
			}
			return clone(*v), nil
		}
	}
	return clone(t.base[string(bucket)][string(key)]), nil
}

func (t *memTx) Put(bucket, key, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if err := checkWrite(bucket, key); err != nil {
		return err
	}
	v := clone(value)
	if v == nil {
		v = []byte{}
	}
	t.stage(bucket)[string(key)] = &v
	return nil
}

func (t *memTx) Delete(bucket, key []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if err := checkWrite(bucket, key); err != nil {
		return err
	}
	t.stage(bucket)[string(key)] = nil
	return nil
}

func (t *memTx) Scan(bucket, prefix []byte, fn func(key, value []byte) error) error {
	merged := make(map[string][]byte)
	for k, v := range t.base[string(bucket)] {
		if bytes.HasPrefix([]byte(k), prefix) {
			merged[k] = v
		}
	}
	for k, v := range t.staged[string(bucket)] {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = *v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn([]byte(k), clone(merged[k])); err != nil {
			return err
		}
	}
	return nil
}

func (t *memTx) stage(bucket []byte) map[string]*[]byte {
	writes := t.staged[string(bucket)]
	if writes == nil {
		writes = make(map[string]*[]byte)
		t.staged[string(bucket)] = writes
	}
	return writes
}
