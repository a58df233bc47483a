package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/boostline-inc/boostline/internal/application/verification/usecases"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
)

type memoryEntry struct {
	attempts    int
	windowStart time.Time
	lastAttempt time.Time
}

// MemoryLimiter is an in-process fallback with the same semantics as the
// redis limiter, for development setups without redis. Its state is local
// to one process, so it must not be used behind a load balancer.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	cfg     Config
	now     func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		cfg:     cfg,
		now:     biztime.NowUTC,
	}
}

// Allow implements usecases.RateLimiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (*usecases.RateLimitDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) >= l.cfg.ResetWindow {
		entry = &memoryEntry{windowStart: now}
		l.entries[key] = entry
	}

	if !entry.lastAttempt.IsZero() {
		elapsed := now.Sub(entry.lastAttempt)
		if elapsed < l.cfg.Cooldown {
			return &usecases.RateLimitDecision{
				Allowed:                  false,
				RemainingCooldownSeconds: int(ceilSeconds(l.cfg.Cooldown - elapsed)),
			}, nil
		}
	}

	if entry.attempts >= l.cfg.MaxAttempts {
		return &usecases.RateLimitDecision{
			Allowed:   false,
			ResetTime: entry.windowStart.Add(l.cfg.ResetWindow),
			Attempts:  entry.attempts,
		}, nil
	}

	entry.attempts++
	entry.lastAttempt = now
	return &usecases.RateLimitDecision{
		Allowed:  true,
		Attempts: entry.attempts,
	}, nil
}
