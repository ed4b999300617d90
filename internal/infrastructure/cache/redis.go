package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisFromURL creates a Redis client from a REDIS_URL style connection
// string and verifies connectivity with a ping. The client is still returned
// when the ping fails; callers of the vote cache fail open on runtime errors.
func NewRedisFromURL(ctx context.Context, url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis ping failed (continuing, cache will fail open): %v", err)
	}
	return rdb
}

// Close closes the Redis client, logging any error.
func Close(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}
}
