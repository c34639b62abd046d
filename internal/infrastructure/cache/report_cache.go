// Package cache provides the in-memory TTL report cache. Expired entries are
// dropped lazily on read and swept by a cron janitor.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// ReportCache is a TTL key/value cache with prefix-pattern invalidation.
type ReportCache struct {
	mu     sync.RWMutex
	items  map[string]entry
	logger *zap.Logger
}

// NewReportCache creates an empty cache.
func NewReportCache(logger *zap.Logger) *ReportCache {
	return &ReportCache{
		items:  make(map[string]entry),
		logger: logger.Named("cache"),
	}
}

// Get returns the cached value if present and not expired.
func (c *ReportCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores a value with a TTL. A non-positive TTL is a no-op.
func (c *ReportCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate drops every key matching the pattern. A pattern ending in "*"
// matches by prefix; anything else matches exactly.
func (c *ReportCache) Invalidate(pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		for key := range c.items {
			if strings.HasPrefix(key, prefix) {
				delete(c.items, key)
			}
		}
		return
	}
	delete(c.items, pattern)
}

// Purge removes every expired entry and returns how many were dropped.
func (c *ReportCache) Purge() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries, expired ones included.
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// ScheduleJanitor registers the purge sweep on the given cron runner.
func (c *ReportCache) ScheduleJanitor(runner *cron.Cron, spec string) error {
	_, err := runner.AddFunc(spec, func() {
		if dropped := c.Purge(); dropped > 0 {
			c.logger.Debug("purged expired cache entries", zap.Int("dropped", dropped))
		}
	})
	return err
}
