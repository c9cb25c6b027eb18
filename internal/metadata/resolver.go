// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Fetcher produces a record for one target: an arXiv identifier or a URL.
// A failed fetch returns a nil record and a *FetchError.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, target string) (*types.MetadataResult, error)
}

// Cache is the typed metadata cache consumed by the resolver. Get returns
// nil with a nil error on a miss.
type Cache interface {
	Get(ctx context.Context, sourceURL string) (*types.MetadataResult, error)
	Put(ctx context.Context, sourceURL string, result types.MetadataResult, ttl time.Duration) error
}

// Origin records where a resolution's fields came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginArxiv    Origin = "arxiv"
	OriginGeneric  Origin = "generic"
	OriginFallback Origin = "fallback"
)

// Resolution is the outcome of one Resolve call. Metadata is always the
// complete caller-facing shape; the error fields only explain a degraded
// or uncached result.
type Resolution struct {
	Metadata types.MetadataResult
	Origin   Origin

	// FetchErr is set when the upstream fetch failed and Metadata fell
	// back to overrides.
	FetchErr error

	// CacheErr is set when a cache read or write failed.
	CacheErr error
}

// Resolver orchestrates cache lookup, classification, fetching, merging,
// and cache population. It holds no per-call state and is safe for
// concurrent use; concurrent resolutions of the same URL are not
// coordinated and the last cache write wins.
type Resolver struct {
	cache   Cache
	arxiv   Fetcher
	generic Fetcher
	ttl     time.Duration
	log     logrus.FieldLogger
}

// NewResolver wires a resolver. cache may be nil to disable caching; log
// may be nil to discard logs.
func NewResolver(cache Cache, arxiv, generic Fetcher, ttl time.Duration, log logrus.FieldLogger) *Resolver {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Resolver{cache: cache, arxiv: arxiv, generic: generic, ttl: ttl, log: log}
}

// Resolve returns metadata for sourceURL. Unless bustCache is set, a
// usable cached record is returned without touching the network. On a
// miss the URL is classified and fetched, the fetched record is cached,
// and the merged record is returned. Resolve never fails: when nothing
// could be fetched, the result is built from ov and sourceURL alone.
func (r *Resolver) Resolve(ctx context.Context, sourceURL string, ov types.Overrides, bustCache bool) Resolution {
	log := r.log.WithField("source_url", sourceURL)
	srcType, arxivID := Classify(sourceURL)

	var res Resolution
	if !bustCache && r.cache != nil {
		cached, err := r.cache.Get(ctx, sourceURL)
		switch {
		case err != nil:
			res.CacheErr = err
			log.WithError(err).Warn("cache read failed, treating as miss")
		case cached == nil:
			log.Debug("cache miss")
		case srcType == SourceArxiv && cached.PublishedAt == nil:
			log.Debug("stale cache shape, refetching")
		default:
			log.Debug("cache hit")
			res.Metadata = Merge(cached, ov, sourceURL)
			res.Origin = OriginCache
			return res
		}
	}

	fetched, err := r.fetch(ctx, srcType, arxivID, sourceURL)
	if err != nil {
		entry := log.WithError(err).WithField("source", srcType.String())
		var fe *FetchError
		if errors.As(err, &fe) {
			entry = entry.WithField("kind", fe.Kind.Error())
		}
		entry.Warn("metadata fetch failed, using overrides")

		res.FetchErr = err
		res.Metadata = Merge(nil, ov, sourceURL)
		res.Origin = OriginFallback
		return res
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, sourceURL, *fetched, r.ttl); err != nil {
			res.CacheErr = err
			log.WithError(err).Warn("cache write failed")
		}
	}

	res.Metadata = Merge(fetched, ov, sourceURL)
	res.Origin = OriginGeneric
	if srcType == SourceArxiv {
		res.Origin = OriginArxiv
	}
	return res
}

func (r *Resolver) fetch(ctx context.Context, srcType SourceType, arxivID, sourceURL string) (*types.MetadataResult, error) {
	log := r.log.WithField("source_url", sourceURL)

	var (
		f      Fetcher
		target string
	)
	switch srcType {
	case SourceArxiv:
		f, target = r.arxiv, arxivID
	default:
		f, target = r.generic, sourceURL
	}
	if f == nil {
		return nil, &FetchError{Source: srcType.String(), Target: target, Kind: ErrUpstreamUnavailable,
			Err: fmt.Errorf("no fetcher configured")}
	}

	log.WithField("source", f.Name()).Debug("fetching metadata")
	result, err := f.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, &FetchError{Source: f.Name(), Target: target, Kind: ErrMalformedDocument}
	}

	if srcType == SourceArxiv {
		out := *result
		out.CanonicalID = types.String(arxivID)
		result = &out
	}
	return result, nil
}
