// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

var metadataBucket = []byte("metadata")

// BoltStore is a Store backed by a single Bolt bucket. Each value is an
// 8-byte big-endian expiry (unix nanoseconds, 0 for none) followed by the
// payload.
type BoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

// OpenBolt opens or creates the Bolt database at path.
func OpenBolt(path string, opts ...Option) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt cache requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(metadataBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	o := buildOptions(opts)
	return &BoltStore{db: db, now: o.now}, nil
}

func encodeBoltValue(expiresAt time.Time, value []byte) []byte {
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf, uint64(unixNano(expiresAt)))
	copy(buf[8:], value)
	return buf
}

// decodeBoltValue splits a stored value. ok is false for values too short
// to carry the expiry header.
func decodeBoltValue(raw []byte) (expiresAt int64, value []byte, ok bool) {
	if len(raw) < 8 {
		return 0, nil, false
	}
	return int64(binary.BigEndian.Uint64(raw[:8])), raw[8:], true
}

func boltExpired(expiresAt int64, now time.Time) bool {
	return expiresAt != 0 && expiresAt <= now.UnixNano()
}

func (s *BoltStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(metadataBucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		exp, value, ok := decodeBoltValue(raw)
		if !ok || boltExpired(exp, s.now()) {
			return nil
		}
		// Bolt values are only valid inside the transaction.
		out = append([]byte(nil), value...)
		found = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	return out, found, nil
}

func (s *BoltStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metadataBucket).Put([]byte(key), encodeBoltValue(expiry(s.now(), ttl), value))
	})
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func (s *BoltStore) PurgeExpired(_ context.Context) (int, error) {
	n := 0
	now := s.now()
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(metadataBucket)

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			exp, _, ok := decodeBoltValue(v)
			if !ok || boltExpired(exp, now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purging expired entries: %w", err)
	}
	return n, nil
}

func (s *BoltStore) Len(_ context.Context) (int, error) {
	n := 0
	now := s.now()
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(metadataBucket).ForEach(func(_, v []byte) error {
			if exp, _, ok := decodeBoltValue(v); ok && !boltExpired(exp, now) {
				n++
			}
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
