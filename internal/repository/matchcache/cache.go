// Package matchcache caches ranked match results and facet lists in a key-value store.
package matchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/db"
	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
)

var (
	matchKeyPrefix = domain.KeyPrefix + "match:"
	facetKeyPrefix = domain.KeyPrefix + "facet:"
)

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores ranked results and facet lists as JSON with a fixed TTL.
// Store failures are logged and behave as misses.
type Cache struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cache. ttl <= 0 stores entries without expiry.
func New(s store, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, ttl: ttl, logger: logger}
}

// Get returns the ranked results cached under a criteria key.
func (c *Cache) Get(ctx context.Context, criteriaKey string) ([]result.Scored, bool) {
	var out []result.Scored
	if !c.load(ctx, matchKey(criteriaKey), &out) {
		return nil, false
	}
	return out, true
}

// Put caches ranked results under a criteria key.
func (c *Cache) Put(ctx context.Context, criteriaKey string, results []result.Scored) {
	c.save(ctx, matchKey(criteriaKey), results)
}

// GetFacet returns a cached facet list.
func (c *Cache) GetFacet(ctx context.Context, name string) ([]string, bool) {
	var out []string
	if !c.load(ctx, facetKeyPrefix+name, &out) {
		return nil, false
	}
	return out, true
}

// PutFacet caches a facet list.
func (c *Cache) PutFacet(ctx context.Context, name string, values []string) {
	c.save(ctx, facetKeyPrefix+name, values)
}

func (c *Cache) load(ctx context.Context, key string, dst any) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Failed to decode cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to write cache", zap.String("key", key), zap.Error(err))
	}
}

func matchKey(criteriaKey string) string {
	h := sha256.Sum256([]byte(criteriaKey))
	return matchKeyPrefix + hex.EncodeToString(h[:])
}
