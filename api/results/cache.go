package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "pulso:results:"

// Cache keeps rendered results for a short while so repeated reads of a busy
// survey do not recompute them.
type Cache interface {
	Get(ctx context.Context, surveyID string) (*ResultsView, error)
	Set(ctx context.Context, surveyID string, view *ResultsView) error
	Invalidate(ctx context.Context, surveyID string) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisClient opens a client for redisURL and checks that it answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return client, nil
}

// Get returns nil without an error on a miss.
func (c *RedisCache) Get(ctx context.Context, surveyID string) (*ResultsView, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+surveyID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading cached results: %w", err)
	}

	var view ResultsView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("error decoding cached results: %w", err)
	}
	return &view, nil
}

func (c *RedisCache) Set(ctx context.Context, surveyID string, view *ResultsView) error {
	if c.ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("error encoding results: %w", err)
	}

	if err := c.client.Set(ctx, cacheKeyPrefix+surveyID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("error caching results: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, surveyID string) error {
	if err := c.client.Del(ctx, cacheKeyPrefix+surveyID).Err(); err != nil {
		return fmt.Errorf("error invalidating cached results: %w", err)
	}
	return nil
}
