package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/jobtrack-backend/internal/platform/logger"
)

// LoginLimiter bounds failed login attempts per email within a fixed window.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type redisLoginLimiter struct {
	rdb         redis.UniversalClient
	log         *logger.Logger
	prefix      string
	maxAttempts int64
	window      time.Duration
}

func NewRedisLoginLimiter(rdb redis.UniversalClient, log *logger.Logger, prefix string, maxAttempts int, window time.Duration) LoginLimiter {
	if rdb == nil || maxAttempts <= 0 {
		return NewNoopLoginLimiter()
	}
	if prefix == "" {
		prefix = "jobtrack"
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &redisLoginLimiter{
		rdb:         rdb,
		log:         log.With("service", "LoginLimiter"),
		prefix:      prefix,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (l *redisLoginLimiter) key(email string) string {
	return loginAttemptKey(l.prefix, email)
}

func (l *redisLoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	n, err := l.rdb.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login attempts: %w", err)
	}
	return n < l.maxAttempts, nil
}

func (l *redisLoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if incr.Val() >= l.maxAttempts {
		l.log.Warn("login attempts exhausted", "attempts", incr.Val(), "window", l.window.String())
	}
	return nil
}

func (l *redisLoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.rdb.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

// loginAttemptKey hashes the folded email so raw addresses never land in redis.
func loginAttemptKey(prefix, email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return prefix + ":login_attempts:" + hex.EncodeToString(sum[:16])
}

type noopLoginLimiter struct{}

func NewNoopLoginLimiter() LoginLimiter { return noopLoginLimiter{} }

func (noopLoginLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopLoginLimiter) RecordFailure(context.Context, string) error { return nil }
func (noopLoginLimiter) Reset(context.Context, string) error         { return nil }
