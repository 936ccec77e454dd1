package cache

import (
	"context"
	"time"
)

// Store caches opaque values under string keys. A miss returns
// (nil, false, nil); errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Counter backs fixed-window rate limiting.
type Counter interface {
	// Incr increments key and returns the new count. The first increment
	// of a window starts a window of the given length; the count resets
	// once it elapses.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Backend is a Store that also counts.
type Backend interface {
	Store
	Counter
}
