// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP helpers shared by the metadata fetchers.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// MaxBodyBytes caps how much of a response body is read. Larger bodies are
// truncated, which is harmless for metadata that lives in the document head.
const MaxBodyBytes = 5 << 20

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
}

// userAgentTransport sets the User-Agent header on every request that does
// not already carry one.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// NewClient returns an http.Client that identifies itself with
// cfg.UserAgent. cfg.Timeout, when set, applies client-wide on top of any
// per-request deadline passed to Get.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return WrapClient(&http.Client{Timeout: cfg.Timeout}, cfg.UserAgent)
}

// WrapClient returns a shallow copy of client whose transport sets
// userAgent. Tests use it to keep an httptest server's TLS configuration.
func WrapClient(client *http.Client, userAgent string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *client
	wrapped.Transport = &userAgentTransport{base: base, userAgent: userAgent}
	return &wrapped
}

// Get issues a single GET for url and returns at most MaxBodyBytes of the
// body. A positive timeout bounds the whole exchange, body read included.
// Non-2xx responses return a *StatusError. There are no retries.
func Get(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
