package main

import (
	"fmt"

	"github.com/pdiddy/paper-tracker/internal/cache"
	"github.com/pdiddy/paper-tracker/internal/httputil"
	"github.com/pdiddy/paper-tracker/internal/metadata"
)

// openResolver wires the configured cache store and both fetchers. The
// caller closes the returned store.
func openResolver() (*metadata.Resolver, cache.Store, error) {
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	client := httputil.NewClient(cfg.Resolver.HTTPConfig)
	r := metadata.NewResolver(
		cache.NewMetadataCache(store),
		metadata.NewArxivFetcher(client, cfg.Resolver),
		metadata.NewGenericFetcher(client, cfg.Resolver),
		cfg.Cache.TTL,
		logger,
	)
	return r, store, nil
}
