// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-tracker/internal/metadata"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

type resolveCall struct {
	url  string
	ov   types.Overrides
	bust bool
}

type stubResolver struct {
	res   metadata.Resolution
	calls []resolveCall
}

func (s *stubResolver) Resolve(_ context.Context, sourceURL string, ov types.Overrides, bust bool) metadata.Resolution {
	s.calls = append(s.calls, resolveCall{url: sourceURL, ov: ov, bust: bust})
	return s.res
}

func createRouter(res metadata.Resolution) (http.Handler, *stubResolver) {
	gin.SetMode(gin.TestMode)
	r := &stubResolver{res: res}
	return New("paper-tracker", r, nil), r
}

func post(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	router, _ := createRouter(metadata.Resolution{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok": true, "service": "paper-tracker"}`, resp.Body.String())
}

func TestIngest(t *testing.T) {
	router, r := createRouter(metadata.Resolution{
		Origin: metadata.OriginArxiv,
		Metadata: types.MetadataResult{
			Title:       types.String("Swin Transformer"),
			Authors:     types.String("Ze Liu"),
			Abstract:    types.String("A new vision Transformer."),
			CanonicalID: types.String("2103.14030"),
			Tags:        []string{"cs.CV"},
			PublishedAt: types.String("2021-03-25T17:50:00Z"),
		},
	})

	resp := post(t, router, "/papers/ingest", map[string]any{
		"sourceUrl": "https://arxiv.org/abs/2103.14030",
		"title":     "My Title",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.JSONEq(t, `{
		"sourceUrl": "https://arxiv.org/abs/2103.14030",
		"title": "Swin Transformer",
		"authors": "Ze Liu",
		"abstract": "A new vision Transformer.",
		"canonicalId": "2103.14030",
		"tags": ["cs.CV"],
		"publishedAt": "2021-03-25T17:50:00Z",
		"origin": "arxiv"
	}`, resp.Body.String())

	require.Len(t, r.calls, 1)
	assert.Equal(t, "https://arxiv.org/abs/2103.14030", r.calls[0].url)
	assert.Equal(t, "My Title", types.Deref(r.calls[0].ov.Title))
	assert.Nil(t, r.calls[0].ov.Authors)
	assert.False(t, r.calls[0].bust)
}

func TestIngest_DegradedShape(t *testing.T) {
	router, _ := createRouter(metadata.Resolution{
		Origin:   metadata.OriginFallback,
		Metadata: types.MetadataResult{Title: types.String("https://example.com/x")},
	})

	resp := post(t, router, "/papers/ingest", map[string]any{"sourceUrl": "https://example.com/x"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "", body["authors"])
	assert.Equal(t, "", body["abstract"])
	assert.Equal(t, "", body["canonicalId"])
	assert.Equal(t, []any{}, body["tags"])
	assert.NotContains(t, body, "publishedAt")
}

func TestIngest_BustCache(t *testing.T) {
	tests := []struct {
		name string
		path string
		body map[string]any
	}{
		{"body flag", "/papers/ingest", map[string]any{"sourceUrl": "https://example.com/x", "bustCache": true}},
		{"refresh query", "/papers/ingest?refresh=true", map[string]any{"sourceUrl": "https://example.com/x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, r := createRouter(metadata.Resolution{})
			resp := post(t, router, tt.path, tt.body)
			require.Equal(t, http.StatusOK, resp.Code)
			require.Len(t, r.calls, 1)
			assert.True(t, r.calls[0].bust)
		})
	}
}

func TestIngest_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
	}{
		{"missing url", "/papers/ingest", map[string]any{"title": "x"}},
		{"not a url", "/papers/ingest", map[string]any{"sourceUrl": "not a url"}},
		{"wrong type", "/papers/ingest", map[string]any{"sourceUrl": 42}},
		{"bad refresh", "/papers/ingest?refresh=maybe", map[string]any{"sourceUrl": "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, r := createRouter(metadata.Resolution{})
			resp := post(t, router, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Empty(t, r.calls)
		})
	}
}

func TestNoRoute(t *testing.T) {
	router, _ := createRouter(metadata.Resolution{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
