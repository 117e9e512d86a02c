package routing

import (
	"context"
	"encoding/json"
	"strings"

	"parcel-router/internal/cache"
	"parcel-router/internal/common/logging"
)

// CachedRouter memoizes full resolutions keyed on the normalized input, so
// the reference store is traversed at most once per distinct destination.
//
// The cache can never diverge from the uncached path: values are stored as
// the JSON encoding of the RouteInfo the uncached path produced, and a
// backend failure degrades to a recomputation. On a concurrent miss for the
// same key both callers compute the same value from the immutable dataset;
// the duplicate work is harmless and the last write wins.
type CachedRouter struct {
	router *Router
	cache  cache.Cache
}

// NewCachedRouter wraps a router with the given cache backend.
func NewCachedRouter(router *Router, c cache.Cache) *CachedRouter {
	return &CachedRouter{router: router, cache: c}
}

// Resolve resolves a destination, serving repeated lookups for an equal
// normalized input from the cache. Failed resolutions are not cached.
func (c *CachedRouter) Resolve(ctx context.Context, dest Destination) (*RouteInfo, error) {
	key := c.cacheKey(dest)

	if data, found := c.cache.Get(ctx, key); found {
		info := &RouteInfo{}
		if err := json.Unmarshal(data, info); err == nil {
			return info, nil
		}
		// An undecodable entry is dropped and recomputed.
		_ = c.cache.Delete(ctx, key)
	}

	info, err := c.router.Route(dest)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(info)
	if err == nil {
		if err := c.cache.Set(ctx, key, data, 0); err != nil {
			logging.Warn("failed to cache resolved route", logging.String("key", key), logging.Err(err))
		}
	}

	return info, nil
}

// ResolveUncached performs a full resolution, neither reading nor populating
// the cache. It exists to cross-check cache correctness.
func (c *CachedRouter) ResolveUncached(ctx context.Context, dest Destination) (*RouteInfo, error) {
	return c.router.Route(dest)
}

// cacheKey builds the memoization key from the normalized destination, so
// inputs that normalize identically share one cache entry.
func (c *CachedRouter) cacheKey(dest Destination) string {
	d := c.router.Normalize(dest)
	return strings.Join([]string{d.Country, d.PostCode, d.City, d.ServiceCode}, "|")
}
