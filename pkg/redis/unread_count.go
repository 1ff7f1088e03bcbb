package redis

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefix for per-user unread message counters
const unreadCountKeyPrefix = "sociafam:unread:"

// Counters expire so a missed invalidation self-heals from SQL
const unreadCountTTL = 24 * time.Hour

func unreadKey(userID uint) string {
	return fmt.Sprintf("%s%d", unreadCountKeyPrefix, userID)
}

// IncrementUnreadCount bumps a user's unread message counter
func IncrementUnreadCount(userID uint) error {
	if client == nil {
		return ErrNotConfigured
	}

	key := unreadKey(userID)
	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("increment unread count: %w", err)
	}
	if err := client.Expire(ctx, key, unreadCountTTL).Err(); err != nil {
		return fmt.Errorf("set unread count TTL: %w", err)
	}
	return nil
}

// GetUnreadCount reads a user's unread counter. A missing key returns -1 so
// the caller knows to consult the database.
func GetUnreadCount(userID uint) (int64, error) {
	if client == nil {
		return 0, ErrNotConfigured
	}

	result, err := client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return 0, fmt.Errorf("get unread count: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse unread count: %w", err)
	}
	return count, nil
}

// SetUnreadCount seeds a user's counter from the authoritative SQL count
func SetUnreadCount(userID uint, count int64) error {
	if client == nil {
		return ErrNotConfigured
	}
	if err := client.Set(ctx, unreadKey(userID), count, unreadCountTTL).Err(); err != nil {
		return fmt.Errorf("set unread count: %w", err)
	}
	return nil
}

// ResetUnreadCount drops a user's counter, equivalent to resetting it to 0
func ResetUnreadCount(userID uint) error {
	if client == nil {
		return ErrNotConfigured
	}
	if err := client.Del(ctx, unreadKey(userID)).Err(); err != nil {
		return fmt.Errorf("reset unread count: %w", err)
	}
	return nil
}
