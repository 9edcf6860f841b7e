package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultResendWindow = time.Minute

// ResendThrottle rate-limits verification reissues per identifier, backed by
// Redis. Key format: resend:<identifier>
type ResendThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewResendThrottle creates a ResendThrottle wrapping the given Redis client.
// A non-positive window falls back to defaultResendWindow.
func NewResendThrottle(client *redis.Client, window time.Duration) *ResendThrottle {
	if window <= 0 {
		window = defaultResendWindow
	}
	return &ResendThrottle{client: client, window: window}
}

// Allow reports whether a resend for this identifier may proceed. The first
// call inside a window claims the key; subsequent calls are denied until the
// key expires.
func (t *ResendThrottle) Allow(ctx context.Context, identifier string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(identifier), "1", t.window).Result()
	if err != nil {
		return false, fmt.Errorf("resend throttle: %w", err)
	}
	return ok, nil
}

func (t *ResendThrottle) key(identifier string) string {
	return "resend:" + identifier
}
