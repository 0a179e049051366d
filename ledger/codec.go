package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
)

// U64 encodes n as an 8-byte big-endian key so keys sort numerically.
func U64(n uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, n)
	return k
}

// ParseU64 decodes a key produced by U64.
func ParseU64(k []byte) (uint64, error) {
	if len(k) != 8 {
		return 0, fmt.Errorf("ledger: uint64 key must be 8 bytes, got %d", len(k))
	}
	return binary.BigEndian.Uint64(k), nil
}

// Key concatenates key parts.
func Key(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	k := make([]byte, 0, n)
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}

// GetGob decodes the value at key into v. It reports false if absent.
func GetGob(tx Tx, bucket, key []byte, v any) (bool, error) {
	data, err := tx.Get(bucket, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return false, fmt.Errorf("ledger: decode %s/%x: %w", bucket, key, err)
	}
	return true, nil
}

// PutGob gob-encodes v at key.
func PutGob(tx Tx, bucket, key []byte, v any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("ledger: encode %s/%x: %w", bucket, key, err)
	}
	return tx.Put(bucket, key, buf.Bytes())
}

// GetUint64 reads a counter, returning 0 if absent.
func GetUint64(tx Tx, bucket, key []byte) (uint64, error) {
	data, err := tx.Get(bucket, key)
	if err != nil || data == nil {
		return 0, err
	}
	return ParseU64(data)
}

// PutUint64 writes a counter.
func PutUint64(tx Tx, bucket, key []byte, n uint64) error {
	return tx.Put(bucket, key, U64(n))
}

// Has reports whether key is present.
func Has(tx Tx, bucket, key []byte) (bool, error) {
	data, err := tx.Get(bucket, key)
	return data != nil, err
}

func checkWrite(bucket, key []byte) error {
	if len(bucket) == 0 {
		return ErrEmptyBucket
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
