package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or has expired.
var ErrMiss = errors.New("cache: key not found")

// KV is the minimal key-value contract the OTP store and the SMS gateway
// client consume. Implementations: Redis (production), Memory (dev/tests).
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
