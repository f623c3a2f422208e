package redis

import (
	"context"
	"fmt"
	"time"

	"social-system/config"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// InitRedis opens the redis connection pool.
func InitRedis(cfg config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	return nil
}

// GetClient returns the redis client.
func GetClient() *redis.Client {
	return client
}

// Close closes the redis connection pool.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings redis.
func HealthCheck() error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Set stores a key with expiration.
func Set(key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get fetches a key.
func Get(key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes keys.
func Del(keys ...string) error {
	return client.Del(ctx, keys...).Err()
}

// Exists reports how many of the given keys exist.
func Exists(keys ...string) (int64, error) {
	return client.Exists(ctx, keys...).Result()
}

// Expire sets a TTL on a key.
func Expire(key string, expiration time.Duration) error {
	return client.Expire(ctx, key, expiration).Err()
}

// TTL returns the remaining TTL of a key.
func TTL(key string) (time.Duration, error) {
	return client.TTL(ctx, key).Result()
}
