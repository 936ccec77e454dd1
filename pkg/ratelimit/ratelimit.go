// Package ratelimit implements a fixed-window limiter over a shared counter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/fintrack/pkg/cache"
)

// FixedWindow allows at most Max calls per key within each Window.
type FixedWindow struct {
	counter cache.Counter
	prefix  string
	max     int
	window  time.Duration
}

// NewFixedWindow builds a limiter. Keys are namespaced with prefix so
// several limiters can share one counter backend.
func NewFixedWindow(counter cache.Counter, prefix string, max int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		counter: counter,
		prefix:  prefix,
		max:     max,
		window:  window,
	}
}

// Allow records one call for key and reports whether it is within the
// limit. A non-positive max disables limiting.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	if l.max <= 0 {
		return true, nil
	}
	n, err := l.counter.Incr(ctx, l.prefix+key, l.window)
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return n <= int64(l.max), nil
}
