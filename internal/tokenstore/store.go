// Package tokenstore persists the bearer token between runs. It is the only
// client state that survives a restart.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghaniswara/workmatch/internal/config"
	redisClient "github.com/ghaniswara/workmatch/internal/datastore/redis"
)

// Key is the well-known name the token is stored under.
const Key = "token"

var ErrNoToken = errors.New("no token stored")

type Store interface {
	// Get returns ErrNoToken when nothing is stored.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// FromConfig builds the store selected by TOKEN_STORE (file, redis or memory).
func FromConfig(cfg *config.Config) (Store, error) {
	switch kind := cfg.Get("TOKEN_STORE"); kind {
	case "", "file":
		path := cfg.Get("TOKEN_FILE")
		if path == "" {
			return DefaultFileStore(cfg.Get("TOKEN_PROFILE"))
		}
		return NewFileStore(path), nil
	case "redis":
		rdb, err := redisClient.Connect(cfg.Get("REDIS_HOST"), cfg.Get("REDIS_PORT"), cfg.Get("REDIS_PASSWORD"))
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb.Client, cfg.Get("TOKEN_PROFILE")), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", kind)
	}
}
