// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/pdiddy/paper-tracker/internal/httputil"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// GenericFetcher scrapes title, description, and publication date from an
// arbitrary web page. Extraction is best effort: pattern matching over the
// raw body, not a document parse.
type GenericFetcher struct {
	Client  *http.Client
	Timeout time.Duration

	// Extract turns a page body into a record. Nil means ExtractPageMetadata.
	Extract func(body []byte) types.MetadataResult
}

// NewGenericFetcher builds a fetcher with the configured page timeout.
func NewGenericFetcher(client *http.Client, cfg types.ResolverConfig) *GenericFetcher {
	return &GenericFetcher{Client: client, Timeout: cfg.GenericTimeout}
}

// Name returns the fetcher identifier.
func (f *GenericFetcher) Name() string { return "generic" }

// Fetch downloads rawURL and extracts its metadata. A page where nothing
// matched is a MalformedDocument so that empty records are never cached.
func (f *GenericFetcher) Fetch(ctx context.Context, rawURL string) (*types.MetadataResult, error) {
	body, err := httputil.Get(ctx, f.Client, rawURL, f.Timeout)
	if err != nil {
		return nil, classifyTransportError(f.Name(), rawURL, err)
	}

	extract := f.Extract
	if extract == nil {
		extract = ExtractPageMetadata
	}
	result := extract(body)
	if result.IsEmpty() {
		return nil, &FetchError{
			Source: f.Name(),
			Target: rawURL,
			Kind:   ErrMalformedDocument,
			Err:    fmt.Errorf("no title, description, or date found"),
		}
	}
	return &result, nil
}

var (
	titleTagPattern      = regexp.MustCompile(`(?is)<title[^>]*>([^<]*)</title>`)
	jsonLDDatePattern    = regexp.MustCompile(`"datePublished"\s*:\s*"([^"]*)"`)
	titleMetaNames       = []string{"og:title", "twitter:title"}
	descriptionMetaNames = []string{"description", "og:description", "twitter:description"}
	dateMetaNames        = []string{"date", "article:published_time"}
	metaPatterns         = map[string][]*regexp.Regexp{}
)

func init() {
	for _, names := range [][]string{titleMetaNames, descriptionMetaNames, dateMetaNames} {
		for _, name := range names {
			metaPatterns[name] = metaTagPatterns(name)
		}
	}
}

// metaTagPatterns matches <meta name|property="name" content="..."> with
// the attributes in either order and either quote style. Each attribute
// must start after whitespace, so data-name or data-content never match.
func metaTagPatterns(name string) []*regexp.Regexp {
	key := `(?:name|property)\s*=\s*["']` + regexp.QuoteMeta(name) + `["']`
	content := `content\s*=\s*(?:"([^"]*)"|'([^']*)')`
	attr := `<meta\s(?:[^>]*?\s)?`
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + attr + key + `[^>]*?\s` + content),
		regexp.MustCompile(`(?i)` + attr + content + `[^>]*?\s` + key),
	}
}

// ExtractPageMetadata applies the per-field priority order:
//
//	title:       <title>, og:title, twitter:title
//	abstract:    description, og:description, twitter:description
//	publishedAt: date, article:published_time, JSON-LD "datePublished"
//
// Values are trimmed and HTML entities decoded. Empty matches fall
// through to the next candidate.
func ExtractPageMetadata(body []byte) types.MetadataResult {
	doc := string(body)
	var result types.MetadataResult

	if v, ok := firstSubmatch(doc, titleTagPattern); ok {
		result.Title = types.String(collapseSpace(v))
	} else if v, ok := firstMeta(doc, titleMetaNames); ok {
		result.Title = types.String(v)
	}

	if v, ok := firstMeta(doc, descriptionMetaNames); ok {
		result.Abstract = types.String(v)
	}

	if v, ok := firstMeta(doc, dateMetaNames); ok {
		result.PublishedAt = types.String(v)
	} else if v, ok := firstSubmatch(doc, jsonLDDatePattern); ok {
		result.PublishedAt = types.String(v)
	}
	return result
}

func firstMeta(doc string, names []string) (string, bool) {
	for _, name := range names {
		for _, re := range metaPatterns[name] {
			if v, ok := firstSubmatch(doc, re); ok {
				return v, true
			}
		}
	}
	return "", false
}

// firstSubmatch returns the first non-empty capture group of the first
// match of re, decoded and trimmed.
func firstSubmatch(doc string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if v := strings.TrimSpace(html.UnescapeString(g)); v != "" {
			return v, true
		}
	}
	return "", false
}
