package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// QueryConfig configures a Query
type QueryConfig struct {
	Cache QueryCache
	// StaleTime is how long a response is served without refetching.
	StaleTime time.Duration
	// ServeStale decides whether a failed refetch may fall back to a stale
	// entry. Nil never serves stale data.
	ServeStale func(error) bool
	Now        func() time.Time
	Logger     *slog.Logger
}

// Query runs cache-aside fetches with stale times. Concurrent fetches of the
// same key share one upstream call.
type Query struct {
	cache      QueryCache
	stale      time.Duration
	serveStale func(error) bool
	now        func() time.Time
	sf         singleflight.Group
	log        *slog.Logger
}

// NewQuery creates a query runner. A nil cfg.Cache disables caching.
func NewQuery(cfg QueryConfig) *Query {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ServeStale == nil {
		cfg.ServeStale = func(error) bool { return false }
	}
	return &Query{
		cache:      cfg.Cache,
		stale:      cfg.StaleTime,
		serveStale: cfg.ServeStale,
		now:        cfg.Now,
		log:        cfg.Logger.With("component", "query"),
	}
}

// Stats reports the counters of the underlying cache.
func (q *Query) Stats() StatsSnapshot {
	if q == nil || q.cache == nil {
		return StatsSnapshot{}
	}
	return q.cache.Stats()
}

// Invalidate drops cached responses under each prefix. Failures are logged.
func (q *Query) Invalidate(ctx context.Context, prefixes ...string) {
	if q == nil || q.cache == nil {
		return
	}
	for _, p := range prefixes {
		if err := q.cache.Invalidate(ctx, p); err != nil {
			q.log.Warn("failed to invalidate", "prefix", p, "error", err)
		}
	}
}

// Fetch returns the cached value for key while it is fresh, and otherwise
// calls fetch and caches its result.
func Fetch[T any](ctx context.Context, q *Query, key string, fetch func(context.Context) (T, error)) (T, error) {
	if q == nil || q.cache == nil {
		return fetch(ctx)
	}

	var zero T
	entry, err := q.cache.Get(ctx, key)
	if err != nil {
		q.log.Warn("cache read failed", "key", key, "error", err)
		entry = nil
	}

	var cached T
	haveCached := false
	if entry != nil {
		if err := json.Unmarshal(entry.Data, &cached); err != nil {
			q.log.Warn("cache entry undecodable", "key", key, "error", err)
		} else {
			haveCached = true
			if q.now().Sub(entry.FetchedAt) < q.stale {
				q.log.Debug("cache hit", "key", key)
				return cached, nil
			}
		}
	}

	val, err, _ := q.sf.Do(key, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := q.cache.Set(ctx, key, v, q.now()); err != nil {
			q.log.Warn("cache write failed", "key", key, "error", err)
		}
		return v, nil
	})
	if err != nil {
		if haveCached && q.serveStale(err) {
			q.log.Warn("serving stale response", "key", key, "error", err)
			return cached, nil
		}
		return zero, err
	}

	v, ok := val.(T)
	if !ok {
		return zero, nil
	}
	return v, nil
}
