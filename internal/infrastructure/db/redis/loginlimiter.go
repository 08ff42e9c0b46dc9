package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// failureWindow is the fixed window over which failures accumulate; the
	// counter expires with the window, so a quiet quarter hour clears it.
	failureWindow = 15 * time.Minute
	failureLimit  = 10
)

// LoginLimiter damps brute-force login attempts with a per-email failure
// counter in Redis. Key format: login_failures:<email>
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// TooManyFailures reports whether email has exceeded the failure budget
// inside the current window.
func (l *LoginLimiter) TooManyFailures(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n >= failureLimit, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, l.key(email))
	pipe.Expire(ctx, l.key(email), failureWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_failures:" + email
}
