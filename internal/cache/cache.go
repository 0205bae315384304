// Package cache is the process-wide request cache. Entries live in an
// in-memory map with lazy TTL expiry and, when Redis is configured, are
// mirrored to a shared Redis tier so that replicas reuse each other's results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
)

// Endpoint TTLs.
const (
	OneHour   = time.Hour
	OneDay    = 24 * time.Hour
	SevenDays = 7 * OneDay
)

// Tier and outcome labels reported to the Observer.
const (
	TierMemory = "memory"
	TierRedis  = "redis"

	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
	OutcomeSet  = "set"
)

// Observer receives cache events.
type Observer interface {
	ObserveCache(prefix, tier, outcome string)
}

// Stats describes the in-memory tier. Expired counts entries that have not
// been read since they expired.
type Stats struct {
	Total         int  `json:"total_entries"`
	Valid         int  `json:"valid_entries"`
	Expired       int  `json:"expired_entries"`
	RemoteEnabled bool `json:"remote_enabled"`
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// RequestCache maps (prefix, params) to a JSON-encoded response. There is
// no capacity bound: entries leave memory only when read after expiry or
// on Clear.
type RequestCache struct {
	mu       sync.Mutex
	entries  map[string]entry
	remote   *RedisTier
	observer Observer
	now      func() time.Time
	log      logger.Logger
}

// Option configures a RequestCache.
type Option func(*RequestCache)

// WithRedisTier mirrors entries to Redis.
func WithRedisTier(t *RedisTier) Option {
	return func(c *RequestCache) { c.remote = t }
}

func WithObserver(o Observer) Option {
	return func(c *RequestCache) { c.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(c *RequestCache) { c.now = now }
}

func New(log logger.Logger, opts ...Option) *RequestCache {
	c := &RequestCache{
		entries: make(map[string]entry),
		now:     time.Now,
		log:     log.With(logger.Component("cache")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the lookup key. encoding/json writes map keys in sorted
// order, so field insertion order never changes the key.
func Key(prefix string, params map[string]string) string {
	canonical, err := json.Marshal(params)
	if err != nil {
		// map[string]string always marshals
		panic(err)
	}
	sum := sha256.Sum256(canonical)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Get decodes the cached value into dest and reports whether it was found.
// An expired memory entry is deleted by the read that finds it.
func (c *RequestCache) Get(ctx context.Context, prefix string, params map[string]string, dest any) bool {
	key := Key(prefix, params)

	if raw, ok := c.getLocal(key); ok {
		if err := json.Unmarshal(raw, dest); err == nil {
			c.observe(prefix, TierMemory, OutcomeHit)
			return true
		}
		c.deleteLocal(key)
	}
	c.observe(prefix, TierMemory, OutcomeMiss)

	if c.remote == nil {
		return false
	}

	raw, ttl, found, err := c.remote.Get(ctx, key)
	if err != nil {
		c.log.Warn("Redis cache read failed, continuing without it",
			logger.String("prefix", prefix),
			logger.Error(err),
		)
		return false
	}
	if !found || json.Unmarshal(raw, dest) != nil {
		c.observe(prefix, TierRedis, OutcomeMiss)
		return false
	}

	c.setLocal(key, raw, ttl)
	c.observe(prefix, TierRedis, OutcomeHit)
	return true
}

// Set stores value under (prefix, params) for ttl. A non-positive ttl
// stores an entry that is already expired and removes any Redis copy.
func (c *RequestCache) Set(ctx context.Context, prefix string, params map[string]string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value for %s: %w", prefix, err)
	}

	key := Key(prefix, params)
	c.setLocal(key, raw, ttl)
	c.observe(prefix, TierMemory, OutcomeSet)

	if c.remote == nil {
		return nil
	}
	if ttl <= 0 {
		if err = c.remote.Delete(ctx, key); err != nil {
			c.log.Warn("Redis cache delete failed, stale entry may be served",
				logger.String("prefix", prefix),
				logger.Error(err),
			)
		}
		return nil
	}
	if err = c.remote.Set(ctx, key, raw, ttl); err != nil {
		c.log.Warn("Redis cache write failed, entry kept in memory only",
			logger.String("prefix", prefix),
			logger.Error(err),
		)
		return nil
	}
	c.observe(prefix, TierRedis, OutcomeSet)
	return nil
}

// Clear drops every entry from both tiers.
func (c *RequestCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	if c.remote == nil {
		return nil
	}
	if err := c.remote.Clear(ctx); err != nil {
		return fmt.Errorf("clear redis tier: %w", err)
	}
	return nil
}

func (c *RequestCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Stats{Total: len(c.entries), RemoteEnabled: c.remote != nil}
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			stats.Valid++
		} else {
			stats.Expired++
		}
	}
	return stats
}

func (c *RequestCache) getLocal(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *RequestCache) setLocal(key string, raw []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: raw, expiresAt: c.now().Add(ttl)}
}

func (c *RequestCache) deleteLocal(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *RequestCache) observe(prefix, tier, outcome string) {
	if c.observer != nil {
		c.observer.ObserveCache(prefix, tier, outcome)
	}
}
