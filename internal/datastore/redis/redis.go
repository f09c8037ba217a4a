package redisClient

import (
	"fmt"

	"github.com/go-redis/redis"
)

type RedisClient struct {
	Client *redis.Client
}

func NewRedis(redisClient *redis.Client) *RedisClient {
	return &RedisClient{Client: redisClient}
}

// Connect dials host:port and verifies the connection with a PING.
func Connect(host, port, password string) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       0,
	})

	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s:%s: %w", host, port, err)
	}

	return NewRedis(client), nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}
