package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultFailureWindow = 15 * time.Minute
	DefaultMaxFailures   = 10
)

// LoginThrottle counts failed logins per email in fixed windows.
// Key format: login:fail:<lowercased email>
type LoginThrottle struct {
	client      *redis.Client
	window      time.Duration
	maxFailures int64
}

// NewLoginThrottle wraps client. A non-positive window falls back to
// DefaultFailureWindow; maxFailures <= 0 disables the limit.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration) *LoginThrottle {
	if window <= 0 {
		window = DefaultFailureWindow
	}
	return &LoginThrottle{client: client, window: window, maxFailures: int64(maxFailures)}
}

// Exceeded reports whether the email has reached the failure limit inside
// the current window.
func (t *LoginThrottle) Exceeded(ctx context.Context, email string) (bool, error) {
	if t.maxFailures <= 0 {
		return false, nil
	}
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure increments the counter. The window starts at the first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if t.maxFailures <= 0 {
		return nil
	}
	key := t.key(email)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if t.maxFailures <= 0 {
		return nil
	}
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login:fail:" + strings.ToLower(strings.TrimSpace(email))
}
