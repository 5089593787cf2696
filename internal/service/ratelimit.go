package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle limits login attempts per roll number using a redis counter.
// A nil redis client disables throttling entirely.
type LoginThrottle struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewLoginThrottle(rdb *redis.Client, max int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{rdb: rdb, max: max, window: window}
}

func (t *LoginThrottle) key(rollNumber string) string {
	return fmt.Sprintf("login_attempts:%s", rollNumber)
}

// Allow records one attempt and reports whether it is within the limit.
func (t *LoginThrottle) Allow(ctx context.Context, rollNumber string) (bool, error) {
	if t == nil || t.rdb == nil {
		return true, nil
	}

	key := t.key(rollNumber)
	attempts, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count login attempts in redis: %w", err)
	}
	if attempts == 1 {
		if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set login attempt window: %w", err)
		}
	}

	return attempts <= int64(t.max), nil
}

// Reset clears the attempt counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, rollNumber string) error {
	if t == nil || t.rdb == nil {
		return nil
	}
	_, err := t.rdb.Del(ctx, t.key(rollNumber)).Result()
	return err
}
