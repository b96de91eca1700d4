package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

const productTTL = 10 * time.Minute

// ProductCache is a read-through JSON cache for single-product lookups.
// Key format: product:<owner_id>:<product_id>
type ProductCache struct {
	client *redis.Client
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// Get returns the cached product, or (nil, nil) on a miss.
func (c *ProductCache) Get(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID, productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &p, nil
}

// Set stores the product for productTTL.
func (c *ProductCache) Set(ctx context.Context, p *domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(p.OwnerID, p.ID), raw, productTTL).Err()
}

// Invalidate drops the cached entry after an edit or delete.
func (c *ProductCache) Invalidate(ctx context.Context, ownerID, productID string) error {
	return c.client.Del(ctx, c.key(ownerID, productID)).Err()
}

func (c *ProductCache) key(ownerID, productID string) string {
	return fmt.Sprintf("product:%s:%s", ownerID, productID)
}
