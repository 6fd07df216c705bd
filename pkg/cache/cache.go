// Package cache wraps the shared Redis client. Redis backs cross-instance
// counters (rate limiting) and short-TTL read caching (the admin reservation
// listing). All helpers degrade to no-ops when Redis is unreachable so the
// app keeps serving without it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/zaika/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the Redis client and verifies the connection with a
// ping. Returns an error so the caller can react (log warning and continue,
// or abort).
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so helpers no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Incr atomically increments key and sets its expiry on first increment.
// Returns (count, true) on success, (0, false) when Redis is unavailable —
// callers fall back to local state.
func Incr(key string, ttl time.Duration) (int64, bool) {
	if RDB == nil {
		return 0, false
	}

	count, err := RDB.Incr(Ctx, key).Result()
	if err != nil {
		return 0, false
	}
	if count == 1 {
		_ = RDB.Expire(Ctx, key, ttl).Err()
	}
	return count, true
}

// Del removes one or more keys.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}
