package adapters

import (
	"context"
	"encoding/json"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// CachedCatalog decorates a ProductCatalog with a TTL cache. A cached
// entry is reused only while fresh AND holding at least the requested
// limit, so a small earlier lookup cannot starve a larger one.
type CachedCatalog struct {
	inner      ports.ProductCatalog
	cache      ports.Cache
	ttlSeconds int
}

func NewCachedCatalog(inner ports.ProductCatalog, cache ports.Cache, ttlSeconds int) *CachedCatalog {
	return &CachedCatalog{inner: inner, cache: cache, ttlSeconds: ttlSeconds}
}

func (c *CachedCatalog) Products(ctx context.Context, tenant string, limit int) ([]ports.Product, error) {
	key := "products:" + tenant

	if data, ok := c.cache.Get(ctx, key); ok {
		var cached []ports.Product
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	products, err := c.inner.Products(ctx, tenant, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttlSeconds)
	}
	return products, nil
}

// Invalidate drops the cached catalog for a tenant, e.g. after a
// product import.
func (c *CachedCatalog) Invalidate(ctx context.Context, tenant string) error {
	return c.cache.Delete(ctx, "products:"+tenant)
}

var _ ports.ProductCatalog = (*CachedCatalog)(nil)
