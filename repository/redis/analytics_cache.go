package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/plandeck/backend/domain"
	"github.com/plandeck/backend/repository"
)

type analyticsCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewAnalyticsCache creates a Redis-backed habit analytics snapshot cache.
func NewAnalyticsCache(client *redislib.Client, ttl time.Duration) repository.AnalyticsCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &analyticsCache{
		client: client,
		prefix: "habit:analytics:",
		ttl:    ttl,
	}
}

func (c *analyticsCache) Get(ctx context.Context, habitID string) (*domain.HabitAnalytics, error) {
	result, err := c.client.Get(ctx, c.key(habitID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var analytics domain.HabitAnalytics
	if err := json.Unmarshal([]byte(result), &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (c *analyticsCache) Put(ctx context.Context, analytics *domain.HabitAnalytics) error {
	if analytics == nil || analytics.HabitID == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(analytics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(analytics.HabitID), payload, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context, habitID string) error {
	return c.client.Del(ctx, c.key(habitID)).Err()
}

func (c *analyticsCache) key(habitID string) string {
	return fmt.Sprintf("%s%s", c.prefix, habitID)
}
