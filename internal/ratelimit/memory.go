// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedKeys bounds the limiter map; it is reset when exceeded.
const maxTrackedKeys = 10000

// MemoryLimiter keeps one token bucket per key. Each bucket holds limit
// tokens and refills completely over window.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}
}

func (l *MemoryLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxTrackedKeys {
			l.evictIdle()
		}
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// evictIdle drops buckets that have refilled completely, since a fresh
// bucket behaves the same. Only when every bucket is in use is the whole
// table cleared. Callers hold l.mu.
func (l *MemoryLimiter) evictIdle() {
	for key, lim := range l.limiters {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.limiters, key)
		}
	}
	if len(l.limiters) >= maxTrackedKeys {
		l.limiters = make(map[string]*rate.Limiter)
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	r := l.limiter(key).Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return false, delay, nil
	}
	return true, 0, nil
}
