package tokenstore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
)

// RedisStore keeps the token under workmatch:<profile>:token without expiry.
// The backend decides when a token is no longer valid.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(rdb *redis.Client, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{rdb: rdb, key: "workmatch:" + profile + ":" + Key}
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	token, err := s.rdb.WithContext(ctx).Get(s.key).Result()
	if err == redis.Nil || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	return s.rdb.WithContext(ctx).Set(s.key, token, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context) error {
	return s.rdb.WithContext(ctx).Del(s.key).Err()
}
