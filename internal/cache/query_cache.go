package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one cached query response.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// QueryCache stores query responses under string keys. Entries live for the
// cache's gc time; staleness is judged by the caller from FetchedAt.
type QueryCache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value interface{}, fetchedAt time.Time) error
	// Invalidate drops every key starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
	Stats() StatsSnapshot
}

// Key joins key parts with ":".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

type stats struct {
	hits    atomic.Uint64
	misses  atomic.Uint64
	sets    atomic.Uint64
	deletes atomic.Uint64
	errors  atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of cache counters
type StatsSnapshot struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Sets      uint64  `json:"sets"`
	Deletes   uint64  `json:"deletes"`
	Errors    uint64  `json:"errors"`
	HitRate   float64 `json:"hitRate"`
	TotalGets uint64  `json:"totalGets"`
}

func (s *stats) snapshot() StatsSnapshot {
	hits := s.hits.Load()
	misses := s.misses.Load()
	total := hits + misses

	var rate float64
	if total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return StatsSnapshot{
		Hits:      hits,
		Misses:    misses,
		Sets:      s.sets.Load(),
		Deletes:   s.deletes.Load(),
		Errors:    s.errors.Load(),
		HitRate:   rate,
		TotalGets: total,
	}
}

type redisQueryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  stats
}

// NewRedisQueryCache creates a query cache in Redis. Keys are namespaced with
// prefix and expire after gcTime.
func NewRedisQueryCache(client *redis.Client, prefix string, gcTime time.Duration) QueryCache {
	return &redisQueryCache{
		client: client,
		prefix: prefix,
		ttl:    gcTime,
	}
}

func (c *redisQueryCache) key(key string) string {
	return c.prefix + key
}

func (c *redisQueryCache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		c.stats.misses.Add(1)
		return nil, nil
	}
	if err != nil {
		c.stats.errors.Add(1)
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.stats.errors.Add(1)
		return nil, fmt.Errorf("cache unmarshal error: %w", err)
	}
	c.stats.hits.Add(1)
	return &entry, nil
}

func (c *redisQueryCache) Set(ctx context.Context, key string, value interface{}, fetchedAt time.Time) error {
	raw, err := json.Marshal(value)
	if err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache marshal error: %w", err)
	}
	data, err := json.Marshal(Entry{Data: raw, FetchedAt: fetchedAt})
	if err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache set error: %w", err)
	}
	c.stats.sets.Add(1)
	return nil
}

func (c *redisQueryCache) Invalidate(ctx context.Context, prefix string) error {
	pattern := c.key(prefix) + "*"

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.stats.errors.Add(1)
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.stats.errors.Add(1)
				return fmt.Errorf("cache delete error: %w", err)
			}
			c.stats.deletes.Add(uint64(len(keys)))
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisQueryCache) Stats() StatsSnapshot {
	return c.stats.snapshot()
}

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

type memoryQueryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
	stats stats
}

// NewMemoryQueryCache keeps entries in process memory. It serves single
// process tools and tests.
func NewMemoryQueryCache(gcTime time.Duration) QueryCache {
	return &memoryQueryCache{
		items: make(map[string]memoryItem),
		ttl:   gcTime,
		now:   time.Now,
	}
}

func (c *memoryQueryCache) Get(_ context.Context, key string) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if ok && c.ttl > 0 && !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.stats.misses.Add(1)
		return nil, nil
	}
	c.stats.hits.Add(1)
	entry := item.entry
	return &entry, nil
}

func (c *memoryQueryCache) Set(_ context.Context, key string, value interface{}, fetchedAt time.Time) error {
	raw, err := json.Marshal(value)
	if err != nil {
		c.stats.errors.Add(1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryItem{
		entry:     Entry{Data: raw, FetchedAt: fetchedAt},
		expiresAt: c.now().Add(c.ttl),
	}
	c.stats.sets.Add(1)
	return nil
}

func (c *memoryQueryCache) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			c.stats.deletes.Add(1)
		}
	}
	return nil
}

func (c *memoryQueryCache) Stats() StatsSnapshot {
	return c.stats.snapshot()
}
