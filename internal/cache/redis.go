package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crowdsourceapp/place-recommendation-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(userID int64, page, pageSize int, query string) string {
	return fmt.Sprintf("rec:user:%d:page:%d:size:%d:q:%s", userID, page, pageSize, query)
}

// Get a cached recommendation page. The second return reports a hit.
func (c *Cache) Get(ctx context.Context, userID int64, page, pageSize int, query string) (*domain.RecommendationPage, bool, error) {
	key := buildKey(userID, page, pageSize, query)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var rec domain.RecommendationPage
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached page %s: %w", key, err)
	}
	return &rec, true, nil
}

// Set stores one recommendation page under the request's key.
func (c *Cache) Set(ctx context.Context, userID int64, page, pageSize int, query string, rec *domain.RecommendationPage) error {
	key := buildKey(userID, page, pageSize, query)
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal page %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ClearUser drops every cached page for a user. Called whenever an
// interaction is recorded or the saved set changes, since either can
// shift the signals behind any page.
func (c *Cache) ClearUser(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
