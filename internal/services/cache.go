package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/daybook/daybook-backend/internal/database"
)

const (
	// ProfileCacheKeyPrefix is the Redis key prefix for cached profiles
	ProfileCacheKeyPrefix = "cache:profile:"
	// ProfileCacheTTL bounds how stale a cached profile can get
	ProfileCacheTTL = 1 * time.Hour
)

// GetCachedProfile retrieves a cached profile by user ID. A miss is not an error.
func GetCachedProfile(userID string, dest interface{}) bool {
	ctx := context.Background()

	val, err := database.RedisClient.Get(ctx, ProfileCacheKeyPrefix+userID).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}
	return true
}

// SetCachedProfile stores a profile in cache
func SetCachedProfile(userID string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return database.RedisClient.Set(ctx, ProfileCacheKeyPrefix+userID, data, ProfileCacheTTL).Err()
}

// InvalidateCachedProfile drops the cached profile after a write so reads
// never serve stale reminder preferences or a stale email mirror
func InvalidateCachedProfile(userID string) error {
	ctx := context.Background()
	return database.RedisClient.Del(ctx, ProfileCacheKeyPrefix+userID).Err()
}
