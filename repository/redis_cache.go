package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "debt-payoff:snapshot:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache stores snapshots under a fixed prefix. A zero ttl keeps
// entries until they are evicted by Redis.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, snapshotKeyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, snapshotKeyPrefix+key, value, r.ttl).Err()
}

// NewRedisClient opens a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
