package redis

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Unread-notification counters. The counter is a cache over the durable
// notification rows; a missing key means the caller must recount from the
// database and resync with SetUnreadNotifications.
const (
	UnreadNotifyKeyPrefix = "sns:notify:unread:"
	unreadNotifyTTL       = 24 * time.Hour
)

// IncrementUnreadNotifications bumps a receiver's unread counter.
func IncrementUnreadNotifications(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadNotifyKeyPrefix, userID)

	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("incr unread notifications: %w", err)
	}
	if err := client.Expire(ctx, key, unreadNotifyTTL).Err(); err != nil {
		return fmt.Errorf("expire unread notifications: %w", err)
	}
	return nil
}

// DecrementUnreadNotifications lowers a receiver's unread counter, dropping
// the key once it reaches zero.
func DecrementUnreadNotifications(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadNotifyKeyPrefix, userID)

	if err := client.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("decr unread notifications: %w", err)
	}

	count, err := client.Get(ctx, key).Int64()
	if err == nil && count <= 0 {
		client.Del(ctx, key)
	}
	return nil
}

// GetUnreadNotifications returns the cached counter, or -1 when the key is
// absent and the caller should recount from the database.
func GetUnreadNotifications(userID uint) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadNotifyKeyPrefix, userID)

	result, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return 0, fmt.Errorf("get unread notifications: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse unread notifications: %w", err)
	}
	return count, nil
}

// SetUnreadNotifications resyncs the counter from a database count.
func SetUnreadNotifications(userID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadNotifyKeyPrefix, userID)

	if err := client.Set(ctx, key, count, unreadNotifyTTL).Err(); err != nil {
		return fmt.Errorf("set unread notifications: %w", err)
	}
	return nil
}

// ResetUnreadNotifications clears the counter after a mark-all-read.
func ResetUnreadNotifications(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", UnreadNotifyKeyPrefix, userID)

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset unread notifications: %w", err)
	}
	return nil
}
