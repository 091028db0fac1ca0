package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"elite_market/internal/models"
)

const ProductListTTL = 10 * time.Minute

func productListKey(country string) string {
	return "products:country:" + country
}

// ProductCache keeps the storefront listing of each country in Redis.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ProductListTTL}
}

// GetCountry returns the cached listing and whether it was found. Redis errors
// count as a miss.
func (c *ProductCache) GetCountry(ctx context.Context, country string) ([]models.Product, bool) {
	data, err := c.rdb.Get(ctx, productListKey(country)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ Redis read failed for %s: %v", country, err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("⚠️ Corrupted product cache for %s: %v", country, err)
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetCountry(ctx context.Context, country string, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	return c.rdb.Set(ctx, productListKey(country), data, c.ttl).Err()
}

func (c *ProductCache) InvalidateCountry(ctx context.Context, country string) error {
	return c.rdb.Del(ctx, productListKey(country)).Err()
}
