// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import "github.com/pdiddy/paper-tracker/pkg/types"

// Merge builds the caller-facing record. Per field, a fetched value wins,
// then the override, then the default: the source URL for the title, ""
// for authors, abstract, and canonical ID, and an empty list for tags.
// PublishedAt has no default and stays nil when the source lacked it.
// fetched may be nil.
func Merge(fetched *types.MetadataResult, ov types.Overrides, sourceURL string) types.MetadataResult {
	var f types.MetadataResult
	if fetched != nil {
		f = *fetched
	}

	out := types.MetadataResult{
		Title:       pick(f.Title, ov.Title, sourceURL),
		Authors:     pick(f.Authors, ov.Authors, ""),
		Abstract:    pick(f.Abstract, ov.Abstract, ""),
		CanonicalID: pick(f.CanonicalID, ov.CanonicalID, ""),
		Tags:        append([]string{}, f.Tags...),
	}
	if f.PublishedAt != nil {
		out.PublishedAt = types.String(*f.PublishedAt)
	}
	return out
}

func pick(fetched, override *string, fallback string) *string {
	switch {
	case fetched != nil:
		return types.String(*fetched)
	case override != nil:
		return types.String(*override)
	default:
		return types.String(fallback)
	}
}
