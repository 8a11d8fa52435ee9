package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lifelink-health/donation-backend/internal/centers/domain"
)

const (
	centerKeyPrefix = "centers:center:" // Cached center record: centers:center:{id}
	centerCacheTTL  = 5 * time.Minute
)

// CenterCache is a read-through cache for center lookups. It is strictly
// best-effort: a cache failure is reported so callers can log it, but the
// service always falls back to the store.
type CenterCache struct {
	client *redis.Client
}

func NewCenterCache(client *redis.Client) *CenterCache {
	return &CenterCache{client: client}
}

func (c *CenterCache) key(id string) string {
	return centerKeyPrefix + id
}

// Get returns the cached center, or (nil, nil) on a miss.
func (c *CenterCache) Get(ctx context.Context, id string) (*domain.DonationCenter, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var center domain.DonationCenter
	if err := json.Unmarshal([]byte(data), &center); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		c.client.Del(ctx, c.key(id))
		return nil, nil
	}

	return &center, nil
}

func (c *CenterCache) Set(ctx context.Context, center *domain.DonationCenter) error {
	data, err := json.Marshal(center)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(center.ID), data, centerCacheTTL).Err()
}

// Invalidate drops the cached record after an update or delete.
func (c *CenterCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
