// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MetadataResult is the bibliographic record resolved for a source URL.
// Every field is optional: a nil pointer or nil slice means the source did
// not provide a value, which is distinct from an empty string. Fetchers
// never default fields; the resolver fills the caller-facing shape.
//
// JSON field names match the payloads already written to the metadata
// cache, so records stay readable across versions.
type MetadataResult struct {
	// Title is the paper or article title.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Abstract is the summary or page description.
	Abstract *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors is a single comma-joined author string in source order.
	Authors *string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Tags lists category or subject labels in source order. An empty
	// list and a nil list encode differently so they survive the cache.
	Tags []string `json:"tags" yaml:"tags,omitempty"`

	// PublishedAt is the ISO-8601 publication timestamp, when known.
	PublishedAt *string `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`

	// CanonicalID is the normalized arXiv identifier. Set only for
	// arXiv-sourced records.
	CanonicalID *string `json:"canonicalId,omitempty" yaml:"canonicalId,omitempty"`
}

// IsEmpty reports whether no field carries a value.
func (m MetadataResult) IsEmpty() bool {
	return m.Title == nil && m.Abstract == nil && m.Authors == nil &&
		m.Tags == nil && m.PublishedAt == nil && m.CanonicalID == nil
}

// Overrides holds caller-supplied values used when a fetch did not
// produce the corresponding field.
type Overrides struct {
	Title       *string `json:"title,omitempty" yaml:"title,omitempty"`
	Authors     *string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Abstract    *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	CanonicalID *string `json:"canonicalId,omitempty" yaml:"canonicalId,omitempty"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Deref returns *p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
