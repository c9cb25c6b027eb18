// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func TestJanitor_Purge(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))
	require.NoError(t, store.Put(ctx, "old", []byte("x"), time.Minute))
	require.NoError(t, store.Put(ctx, "new", []byte("y"), time.Hour))

	j, err := NewJanitor(store, "@every 1h", quietLogger())
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	j.purge()

	store.mu.Lock()
	_, oldPresent := store.entries["old"]
	_, newPresent := store.entries["new"]
	store.mu.Unlock()

	assert.False(t, oldPresent)
	assert.True(t, newPresent)
}

func TestJanitor_StartStop(t *testing.T) {
	j, err := NewJanitor(NewMemoryStore(), "@every 1h", quietLogger())
	require.NoError(t, err)

	j.Start()
	j.Stop()
}

func TestJanitor_NilLogger(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore(WithClock(clock.Now))
	require.NoError(t, store.Put(ctx, "old", []byte("x"), time.Minute))

	j, err := NewJanitor(store, "@every 1h", nil)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	assert.NotPanics(t, j.purge)

	store.mu.Lock()
	_, present := store.entries["old"]
	store.mu.Unlock()
	assert.False(t, present)
}

func TestNewJanitor_BadSchedule(t *testing.T) {
	_, err := NewJanitor(NewMemoryStore(), "not a schedule", quietLogger())
	assert.Error(t, err)
}
