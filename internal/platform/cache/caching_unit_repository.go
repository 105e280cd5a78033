// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/feature/products/usecase"
)

// CachingUnitRepository decorates a UnitRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Units change rarely, so a TTL-based
// cache is sufficient.
type CachingUnitRepository struct {
	inner usecase.UnitRepository
	rdb   *redis.Client
	ttl   time.Duration
	key   string
}

// NewCachingUnitRepository decorates a UnitRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "units".
func NewCachingUnitRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UnitRepository, namespace string) *CachingUnitRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "units"
	}
	return &CachingUnitRepository{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		key:   namespace + ":all",
	}
}

// List retrieves units, checking cache first then falling back to the database.
func (c *CachingUnitRepository) List(ctx context.Context) ([]entity.Unit, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Unit
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, c.key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, c.key, b, c.ttl).Err()
	}

	return out, nil
}
