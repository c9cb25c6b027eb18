// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func TestGet_Success(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	client := NewClient(types.HTTPConfig{UserAgent: "PaperTracker/1.0"})
	body, err := Get(context.Background(), client, ts.URL, time.Second)
	require.NoError(t, err)

	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "PaperTracker/1.0", gotUA)
}

func TestGet_ExplicitUserAgentWins(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	client := NewClient(types.HTTPConfig{UserAgent: "PaperTracker/1.0"})
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom/2.0")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "custom/2.0", gotUA)
}

func TestGet_NonSuccessStatus(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, time.Second)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	// No retries.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	_, err := Get(context.Background(), ts.Client(), ts.URL, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet_TruncatesLargeBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(strings.Repeat("a", MaxBodyBytes+100)))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), ts.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Len(t, body, MaxBodyBytes)
}

func TestWrapClient_KeepsOriginal(t *testing.T) {
	orig := &http.Client{Timeout: 3 * time.Second}
	wrapped := WrapClient(orig, "ua")

	assert.Nil(t, orig.Transport)
	assert.Equal(t, 3*time.Second, wrapped.Timeout)
	assert.NotNil(t, wrapped.Transport)
}
