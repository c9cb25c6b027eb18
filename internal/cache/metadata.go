// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// KeyPrefix namespaces metadata records within a shared store.
const KeyPrefix = "paper-meta:"

// ErrCorruptEntry marks a cached payload that does not decode to a record.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// Key returns the store key for sourceURL. The URL is used verbatim: URLs
// that differ only by a trailing slash or query string are distinct keys.
func Key(sourceURL string) string {
	return KeyPrefix + sourceURL
}

// MetadataCache stores MetadataResult records as JSON under Key(sourceURL).
type MetadataCache struct {
	store Store
}

// NewMetadataCache wraps store.
func NewMetadataCache(store Store) *MetadataCache {
	return &MetadataCache{store: store}
}

// Get returns the cached record for sourceURL, or nil on a miss. A payload
// that is not a JSON object returns an error wrapping ErrCorruptEntry.
func (c *MetadataCache) Get(ctx context.Context, sourceURL string) (*types.MetadataResult, error) {
	raw, ok, err := c.store.Get(ctx, Key(sourceURL))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: %s: not a JSON object", ErrCorruptEntry, sourceURL)
	}
	var result types.MetadataResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, sourceURL, err)
	}
	return &result, nil
}

// Put writes result under sourceURL, replacing any previous record.
func (c *MetadataCache) Put(ctx context.Context, sourceURL string, result types.MetadataResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return c.store.Put(ctx, Key(sourceURL), data, ttl)
}
