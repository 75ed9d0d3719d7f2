package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keysai/keysai/internal/pkg/env"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// SetupCache initializes the Redis connection used for statistics and sessions.
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: could not connect to cache: %v", err)
	} else {
		log.Printf("Connected to cache: %s", pong)
	}
}

// GetClient returns the Redis client instance, initializing it on first use.
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Set stores a value with the given key and expiration.
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get retrieves a string value by key.
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

// GetInt retrieves an integer value by key.
func GetInt(key string) (int, error) {
	return GetClient().Get(ctx, key).Int()
}

// GetInt64 retrieves a 64-bit integer value by key.
func GetInt64(key string) (int64, error) {
	return GetClient().Get(ctx, key).Int64()
}

// Delete removes a value by key.
func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}
