// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero => no TTL
}

// MemoryStore is a process-local Store. Contents are lost on exit.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{entries: make(map[string]memoryEntry), now: o.now}
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Get returns a copy of the live value for key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.expired(e, s.now()) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: expiry(s.now(), ttl),
	}
	return nil
}

func (s *MemoryStore) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e, now) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close() error { return nil }
