// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/pdiddy/paper-tracker/internal/httputil"
)

// Fetch failure kinds. A *FetchError matches its kind with errors.Is.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrTimeout             = errors.New("upstream timeout")
	ErrMalformedDocument   = errors.New("malformed document")
)

// FetchError describes why a fetcher produced no record. The resolver
// logs it and degrades to override values; it never reaches the caller
// as a failure.
type FetchError struct {
	// Source is the fetcher name ("arxiv" or "generic").
	Source string

	// Target is the arXiv identifier or URL that was fetched.
	Target string

	// Kind is one of ErrUpstreamUnavailable, ErrTimeout, ErrMalformedDocument.
	Kind error

	// Err is the underlying cause, if any.
	Err error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s fetch %s: %v", e.Source, e.Target, e.Kind)
	}
	return fmt.Sprintf("%s fetch %s: %v: %v", e.Source, e.Target, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classifyTransportError maps an error from httputil.Get to a FetchError.
func classifyTransportError(source, target string, err error) *FetchError {
	kind := ErrUpstreamUnavailable
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		kind = ErrTimeout
	}
	var se *httputil.StatusError
	if errors.As(err, &se) {
		kind = ErrUpstreamUnavailable
	}
	return &FetchError{Source: source, Target: target, Kind: kind, Err: err}
}
