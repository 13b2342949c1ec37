package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
)

// redis_rate stores its buckets under this prefix
const redisKeyPrefix = "rate:"

// InvalidateIP resets the limit for a client IP
func (rl *RateLimiter) InvalidateIP(ctx context.Context, ip string) error {
	key := ipKey(ip)

	rl.fallbackMutex.Lock()
	delete(rl.fallbackLimiters, key)
	rl.fallbackMutex.Unlock()

	if rl.redisLimiter != nil && rl.redisClient.IsEnabled() {
		if err := rl.redisLimiter.Reset(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}

	slog.Info("Invalidated IP rate limit", "ip", ip)
	return nil
}

// InvalidateAll drops every rate limit bucket
func (rl *RateLimiter) InvalidateAll(ctx context.Context) error {
	rl.fallbackMutex.Lock()
	count := len(rl.fallbackLimiters)
	rl.fallbackLimiters = make(map[string]*bucket)
	rl.fallbackMutex.Unlock()

	slog.Warn("Invalidated all in-memory rate limits", "count", count)

	if rl.redisLimiter == nil || !rl.redisClient.IsEnabled() {
		return nil
	}
	return rl.deleteByPattern(ctx, redisKeyPrefix+"ratelimit:*")
}

func (rl *RateLimiter) deleteByPattern(ctx context.Context, pattern string) error {
	client := rl.redisClient.GetClient()

	var cursor uint64
	deletedCount := 0
	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
			deletedCount += int(deleted)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	slog.Info("Deleted rate limit keys by pattern", "pattern", pattern, "count", deletedCount)
	return nil
}
