package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pos-backend/internal/config"
)

const summaryTTL = 5 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when
// Redis is unreachable the client stays nil and every lookup misses.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

func summaryKey(shopID int, rangeKey string) string {
	return fmt.Sprintf("report:summary:%d:%s", shopID, rangeKey)
}

// GetCachedShopSummary returns a cached summary payload if available.
func GetCachedShopSummary(ctx context.Context, shopID int, rangeKey string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, summaryKey(shopID, rangeKey)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheShopSummary caches a summary payload for a few minutes.
func CacheShopSummary(ctx context.Context, shopID int, rangeKey string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, summaryKey(shopID, rangeKey), data, summaryTTL)
}

// InvalidateShopSummaries drops every cached summary for a shop. Called
// after checkout so dashboards never show stale totals.
func InvalidateShopSummaries(ctx context.Context, shopID int) {
	if client == nil {
		return
	}
	pattern := fmt.Sprintf("report:summary:%d:*", shopID)
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
