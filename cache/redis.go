package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initializes Redis connection
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// CloseRedis closes Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

// ==================== CACHE KEYS ====================

const (
	// Per-game content lists
	CategoriesCachePrefix = "game:categories:" // game:categories:123
	ItemsCachePrefix      = "game:items:"      // game:items:123

	// User caching
	UserCachePrefix = "user:" // user:123

	// Statistics caching
	StatsCacheKey = "stats:dashboard"

	// Rate limiting
	RateLimitPrefix = "ratelimit:user:" // ratelimit:user:123
)

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves value from cache
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes key from cache
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// DeletePattern removes all keys matching pattern
func DeletePattern(pattern string) error {
	if !IsRedisAvailable() {
		return nil
	}

	iter := RedisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ==================== GAME CONTENT CACHING ====================

// SetCategories caches a game's category list for 10 minutes. Categories have
// no per-viewer visibility, so one entry serves every member.
func SetCategories(gameID uint, categories interface{}) error {
	key := fmt.Sprintf("%s%d", CategoriesCachePrefix, gameID)
	return Set(key, categories, 10*time.Minute)
}

// GetCategories fills dest with a game's cached category list
func GetCategories(gameID uint, dest interface{}) error {
	key := fmt.Sprintf("%s%d", CategoriesCachePrefix, gameID)
	return Get(key, dest)
}

// InvalidateCategories removes a game's category cache
func InvalidateCategories(gameID uint) error {
	key := fmt.Sprintf("%s%d", CategoriesCachePrefix, gameID)
	return Delete(key)
}

// InvalidateGameContent drops all cached lists for a game
func InvalidateGameContent(gameID uint) error {
	if err := Delete(fmt.Sprintf("%s%d", CategoriesCachePrefix, gameID)); err != nil {
		return err
	}
	return Delete(fmt.Sprintf("%s%d", ItemsCachePrefix, gameID))
}

// ==================== USER CACHING ====================

// SetUser caches a user profile for 30 minutes
func SetUser(userID uint, user interface{}) error {
	key := fmt.Sprintf("%s%d", UserCachePrefix, userID)
	return Set(key, user, 30*time.Minute)
}

// GetUser fills dest with a cached user profile
func GetUser(userID uint, dest interface{}) error {
	key := fmt.Sprintf("%s%d", UserCachePrefix, userID)
	return Get(key, dest)
}

// InvalidateUser removes user from cache
func InvalidateUser(userID uint) error {
	key := fmt.Sprintf("%s%d", UserCachePrefix, userID)
	return Delete(key)
}

// ==================== STATISTICS CACHING ====================

// SetDashboardStats caches dashboard statistics for 5 minutes
func SetDashboardStats(stats interface{}) error {
	return Set(StatsCacheKey, stats, 5*time.Minute)
}

// GetDashboardStats fills dest with cached dashboard statistics
func GetDashboardStats(dest interface{}) error {
	return Get(StatsCacheKey, dest)
}

// InvalidateDashboardStats removes dashboard statistics cache
func InvalidateDashboardStats() error {
	return Delete(StatsCacheKey)
}

// ==================== RATE LIMITING ====================

// CheckRateLimit implements fixed-window rate limiting per user
func CheckRateLimit(userID uint, maxRequests int, window time.Duration) (bool, int, error) {
	if !IsRedisAvailable() {
		return true, maxRequests, nil // Allow if Redis unavailable
	}

	key := fmt.Sprintf("%s%d", RateLimitPrefix, userID)

	count, err := RedisClient.Get(ctx, key).Int()
	if err == redis.Nil {
		// First request - initialize counter
		if err := RedisClient.Set(ctx, key, 1, window).Err(); err != nil {
			return false, 0, err
		}
		return true, maxRequests - 1, nil
	}
	if err != nil {
		return false, 0, err
	}

	// Exceeded is not an error; a non-nil error always means a Redis fault
	// so callers can fail open on it.
	if count >= maxRequests {
		return false, 0, nil
	}

	newCount, err := RedisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	remaining := maxRequests - int(newCount)
	return true, remaining, nil
}

// ResetRateLimit resets rate limit for a user
func ResetRateLimit(userID uint) error {
	key := fmt.Sprintf("%s%d", RateLimitPrefix, userID)
	return Delete(key)
}
