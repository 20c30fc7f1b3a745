// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mindhaven/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CalendarCacheClient caches resolved therapist calendars.
	CalendarCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

// InitRedis initializes all Redis clients up front so a bad address fails at
// boot rather than on first request.
func InitRedis() {
	GetCalendarCacheClient()
	GetAuthCacheClient()
}

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// GetCalendarCacheClient returns the client for calendar caching.
func GetCalendarCacheClient() *redis.Client {
	if CalendarCacheClient == nil {
		CalendarCacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	}
	return CalendarCacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}
