package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cooldown with a shared SET NX EX key so every instance
// sees the same window.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "cooldown:",
	}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, "1", window).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
