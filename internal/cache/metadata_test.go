// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func sampleResult() types.MetadataResult {
	return types.MetadataResult{
		Title:       types.String("Attention Is All You Need"),
		Abstract:    types.String("The dominant sequence transduction models..."),
		Authors:     types.String("Ashish Vaswani, Noam Shazeer"),
		Tags:        []string{"cs.CL", "cs.LG"},
		PublishedAt: types.String("2017-06-12T17:57:34Z"),
		CanonicalID: types.String("1706.03762"),
	}
}

func TestMetadataCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMetadataCache(NewMemoryStore())
	url := "https://arxiv.org/abs/1706.03762"

	want := sampleResult()
	require.NoError(t, c.Put(ctx, url, want, time.Hour))

	got, err := c.Get(ctx, url)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestMetadataCache_RoundTripKeepsTagShape(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		wantRaw string
	}{
		{"empty list", []string{}, `"tags":[]`},
		{"absent", nil, `"tags":null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			c := NewMetadataCache(store)

			want := types.MetadataResult{Title: types.String("No Categories"), Tags: tt.tags}
			require.NoError(t, c.Put(ctx, "u", want, time.Hour))

			raw, _, err := store.Get(ctx, Key("u"))
			require.NoError(t, err)
			assert.Contains(t, string(raw), tt.wantRaw)

			got, err := c.Get(ctx, "u")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want, *got)
		})
	}
}

func TestMetadataCache_Miss(t *testing.T) {
	c := NewMetadataCache(NewMemoryStore())
	got, err := c.Get(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMetadataCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMetadataCache(NewMemoryStore(WithClock(clock.Now)))
	url := "https://example.com/post"

	require.NoError(t, c.Put(ctx, url, sampleResult(), types.DefaultCacheTTL))

	clock.Advance(types.DefaultCacheTTL - time.Second)
	got, err := c.Get(ctx, url)
	require.NoError(t, err)
	assert.NotNil(t, got)

	clock.Advance(time.Second)
	got, err = c.Get(ctx, url)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMetadataCache_KeysAreExactURLs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewMetadataCache(store)

	require.NoError(t, c.Put(ctx, "https://example.com/a", sampleResult(), time.Hour))

	for _, url := range []string{"https://example.com/a/", "https://example.com/a?x=1", "HTTPS://example.com/a"} {
		got, err := c.Get(ctx, url)
		require.NoError(t, err)
		assert.Nil(t, got, url)
	}

	_, ok, err := store.Get(ctx, "paper-meta:https://example.com/a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMetadataCache_UsesCompatibleFieldNames(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewMetadataCache(store)

	require.NoError(t, c.Put(ctx, "u", sampleResult(), time.Hour))
	raw, _, err := store.Get(ctx, Key("u"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, k := range []string{"title", "abstract", "authors", "tags", "publishedAt", "canonicalId"} {
		assert.Contains(t, fields, k)
	}
}

func TestMetadataCache_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "<<garbage>>"},
		{"json string", `"a string"`},
		{"json null", "null"},
		{"json array", `[1,2]`},
		{"wrong field type", `{"title": 42}`},
		{"truncated", `{"title": "x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			require.NoError(t, store.Put(ctx, Key("u"), []byte(tt.payload), time.Hour))

			got, err := NewMetadataCache(store).Get(ctx, "u")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrCorruptEntry)
		})
	}
}

func TestMetadataCache_LegacyShapeDecodes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	legacy := `{"title":"Old","abstract":"A","authors":"X, Y","tags":["cs.AI"]}`
	require.NoError(t, store.Put(ctx, Key("u"), []byte(legacy), time.Hour))

	got, err := NewMetadataCache(store).Get(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Old", *got.Title)
	assert.Nil(t, got.PublishedAt)
}
