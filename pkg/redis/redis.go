package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Init connects the package-level client. The package is optional: when
// Init is never called every operation reports ErrNotConfigured and callers
// fall back to SQL.
func Init(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	client = c
	return nil
}

// ErrNotConfigured is reported when no Redis client was initialized
var ErrNotConfigured = fmt.Errorf("redis client not initialized")

// Close disconnects the client
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
