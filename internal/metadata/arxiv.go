// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-tracker/internal/httputil"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// arxivAPIBase is the arXiv metadata query endpoint. Declared as a var so
// tests can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivFetcher queries the arXiv API for a single identifier.
type ArxivFetcher struct {
	Client  *http.Client
	Timeout time.Duration

	// Limiter, when set, spaces consecutive API calls.
	Limiter *rate.Limiter
}

// NewArxivFetcher builds a fetcher from cfg. A positive
// cfg.ArxivMinInterval enables the call limiter.
func NewArxivFetcher(client *http.Client, cfg types.ResolverConfig) *ArxivFetcher {
	f := &ArxivFetcher{Client: client, Timeout: cfg.ArxivTimeout}
	if cfg.ArxivMinInterval > 0 {
		f.Limiter = rate.NewLimiter(rate.Every(cfg.ArxivMinInterval), 1)
	}
	return f
}

// Name returns the fetcher identifier.
func (f *ArxivFetcher) Name() string { return "arxiv" }

// Fetch returns the record for the arXiv identifier id. CanonicalID is
// left for the resolver to set. On failure it returns a *FetchError.
// Timeout covers both the limiter wait and the request.
func (f *ArxivFetcher) Fetch(ctx context.Context, id string) (*types.MetadataResult, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Source: f.Name(), Target: id, Kind: ErrTimeout, Err: err}
		}
	}

	apiURL := arxivAPIBase + "?id_list=" + url.QueryEscape(id)
	body, err := httputil.Get(ctx, f.Client, apiURL, 0)
	if err != nil {
		return nil, classifyTransportError(f.Name(), id, err)
	}

	result, err := parseArxivFeed(body)
	if err != nil {
		return nil, &FetchError{Source: f.Name(), Target: id, Kind: ErrMalformedDocument, Err: err}
	}
	return result, nil
}

// arXiv Atom feed XML structures. Pointer fields distinguish a missing
// element from an empty one.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      *string         `xml:"title"`
	Summary    *string         `xml:"summary"`
	Published  *string         `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// arxivCategory only matches <category>; <arxiv:primary_category> has a
// different local name and is never collected.
type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// parseArxivFeed extracts the first <entry> of an arXiv API response.
func parseArxivFeed(data []byte) (*types.MetadataResult, error) {
	var feed arxivFeed
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return nil, fmt.Errorf("no entry in arXiv response")
	}

	e := feed.Entries[0]
	// Unknown identifiers come back as a single error entry.
	if strings.Contains(e.ID, "/api/errors") {
		return nil, fmt.Errorf("arXiv API error: %s", collapseSpace(types.Deref(e.Summary)))
	}

	result := &types.MetadataResult{Tags: make([]string, 0, len(e.Categories))}
	if e.Title != nil {
		result.Title = types.String(collapseSpace(*e.Title))
	}
	if e.Summary != nil {
		result.Abstract = types.String(collapseSpace(*e.Summary))
	}
	if e.Published != nil {
		result.PublishedAt = types.String(strings.TrimSpace(*e.Published))
	}

	names := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		names = append(names, strings.TrimSpace(a.Name))
	}
	if len(names) > 0 {
		result.Authors = types.String(strings.Join(names, ", "))
	}

	for _, c := range e.Categories {
		result.Tags = append(result.Tags, c.Term)
	}
	return result, nil
}

// collapseSpace replaces runs of whitespace with one space and trims the ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
