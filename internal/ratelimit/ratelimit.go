// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit throttles sign-in attempts per client key.
//
// Two backends exist: a Redis fixed-window counter shared by every server
// instance and an in-process token bucket for single-node deployments.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
)

// Limiter decides whether another attempt for key is allowed. When it is
// not, the returned duration tells the client when to retry.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// New returns a Redis limiter when an address is configured and an
// in-process limiter otherwise. The Redis server is pinged once; an
// unreachable server falls back to the in-process limiter.
func New(ctx context.Context, server config.Server, cfg config.Redis, log *logger.Logger) (Limiter, func() error) {
	if cfg.Address == "" {
		return NewMemoryLimiter(server.LoginRateLimit, server.LoginRateWindow), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Err(err).Str("func", "ratelimit.New").Str("address", cfg.Address).Msg("redis is unreachable, limiting in-process")
		_ = client.Close()
		return NewMemoryLimiter(server.LoginRateLimit, server.LoginRateWindow), func() error { return nil }
	}

	log.Info().Str("func", "ratelimit.New").Str("address", cfg.Address).Msg("login rate limiting backed by redis")
	return NewRedisLimiter(client, "repair-desk:login", server.LoginRateLimit, server.LoginRateWindow), client.Close
}

// RedisLimiter counts attempts in fixed windows with INCR and EXPIRE.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + ":" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis rate limit: %w", err)
	}

	if incr.Val() <= l.limit {
		return true, 0, nil
	}

	retry := ttl.Val()
	if retry <= 0 {
		retry = l.window
	}
	return false, retry, nil
}
