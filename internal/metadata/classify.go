// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata resolves bibliographic metadata for a source URL. It
// classifies the URL, fetches from the arXiv API or the page itself, merges
// the result with caller overrides, and caches fetched records.
package metadata

import (
	"regexp"
	"strings"
)

// SourceType classifies a source URL.
type SourceType int

const (
	SourceGeneric SourceType = iota
	SourceArxiv
)

func (t SourceType) String() string {
	switch t {
	case SourceArxiv:
		return "arxiv"
	default:
		return "generic"
	}
}

// arxivURLPattern matches abstract and PDF links with or without a scheme
// or "www." prefix. The identifier is either legacy
// ("hep-th/9901001", "math.GT/0309136") or modern ("2103.14030"), with an
// optional version suffix.
var arxivURLPattern = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/((?:[A-Za-z][\w.-]*/)?[\d.]+(?:v\d+)?)`)

// ExtractArxivID returns the arXiv identifier carried by rawURL, or ""
// when the URL is not an arXiv abstract or PDF link. The query string,
// fragment, and a trailing ".pdf" are dropped before matching, and a
// trailing "." is removed from the match.
func ExtractArxivID(rawURL string) string {
	clean := rawURL
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	clean = strings.TrimSuffix(clean, ".pdf")

	m := arxivURLPattern.FindStringSubmatch(clean)
	if m == nil {
		return ""
	}
	return strings.TrimSuffix(m[1], ".")
}

// Classify returns the source type for rawURL and, for arXiv links, the
// identifier.
func Classify(rawURL string) (SourceType, string) {
	if id := ExtractArxivID(rawURL); id != "" {
		return SourceArxiv, id
	}
	return SourceGeneric, ""
}
