package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces session keys in a shared Redis.
const DefaultKeyPrefix = "reserve:"

// RedisStore keeps values in Redis, for deployments where the session mirror
// should be shared or outlive the local filesystem.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if client == nil {
		return nil
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("redis store not configured")
	}
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if s == nil {
		return fmt.Errorf("redis store not configured")
	}
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if s == nil {
		return fmt.Errorf("redis store not configured")
	}
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}
