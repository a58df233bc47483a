// Package ratelimit implements the shared rate limiter behind the
// resend-verification flow. The redis implementation is the production
// one: state keyed per user lives in redis, so the bound holds across
// all application instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boostline-inc/boostline/internal/application/verification/usecases"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
)

// Config tunes the limiter: a short cooldown between consecutive sends
// and a capped number of sends per rolling window.
type Config struct {
	Cooldown    time.Duration
	MaxAttempts int
	ResetWindow time.Duration
}

type RedisLimiter struct {
	client *redis.Client
	cfg    Config
}

func NewRedisLimiter(client *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{client: client, cfg: cfg}
}

// Allow implements usecases.RateLimiter. Two keys per limited key: a
// cooldown marker whose TTL is the remaining cooldown, and an attempt
// counter whose TTL is the remaining window. The counter's expiry is set
// only on the first attempt, so later attempts never extend the window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (*usecases.RateLimitDecision, error) {
	cooldownKey := l.redisKey(key, "cooldown")
	countKey := l.redisKey(key, "count")

	ttl, err := l.client.TTL(ctx, cooldownKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if ttl > 0 {
		return &usecases.RateLimitDecision{
			Allowed:                  false,
			RemainingCooldownSeconds: int(ceilSeconds(ttl)),
		}, nil
	}

	count, err := l.client.Incr(ctx, countKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment attempt counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, countKey, l.cfg.ResetWindow).Err(); err != nil {
			return nil, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	if count > int64(l.cfg.MaxAttempts) {
		windowTTL, err := l.client.TTL(ctx, countKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check window expiry: %w", err)
		}
		if windowTTL < 0 {
			windowTTL = l.cfg.ResetWindow
		}
		return &usecases.RateLimitDecision{
			Allowed:   false,
			ResetTime: biztime.NowUTC().Add(windowTTL),
			Attempts:  int(count),
		}, nil
	}

	if err := l.client.Set(ctx, cooldownKey, 1, l.cfg.Cooldown).Err(); err != nil {
		return nil, fmt.Errorf("failed to set cooldown: %w", err)
	}

	return &usecases.RateLimitDecision{
		Allowed:  true,
		Attempts: int(count),
	}, nil
}

func (l *RedisLimiter) redisKey(key, suffix string) string {
	return fmt.Sprintf("boostline:ratelimit:%s:%s", key, suffix)
}

func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}
