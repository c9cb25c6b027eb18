// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores resolved metadata records with a time-to-live.
// Backends hold opaque byte values keyed by string; MetadataCache layers
// the JSON record format and key scheme on top.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Store is a byte-oriented key-value store with per-entry expiry. Expired
// entries read as absent. A ttl <= 0 stores the entry without expiry.
// Put overwrites any prior value for the key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// PurgeExpired deletes expired entries and returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)

	// Len returns the number of live entries.
	Len(ctx context.Context) (int, error)

	Close() error
}

// Option configures a Store backend.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for expiry decisions. Tests use it to step
// past a TTL without sleeping.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// expiry returns the absolute expiry for ttl, or the zero time for none.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// Open returns the backend selected by cfg.Backend.
func Open(cfg types.CacheConfig, opts ...Option) (Store, error) {
	switch cfg.Backend {
	case types.CacheMemory:
		return NewMemoryStore(opts...), nil
	case types.CacheSQLite, "":
		return OpenSQLite(cfg.Path, opts...)
	case types.CacheBolt:
		return OpenBolt(cfg.Path, opts...)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q: use memory, sqlite, or bolt", cfg.Backend)
	}
}
