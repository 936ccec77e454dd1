package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestMemoryCache_GetSetExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "quote:AAPL")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "quote:AAPL", []byte("v1"), time.Minute))
	val, ok, err := c.Get(ctx, "quote:AAPL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), val)

	clock.Advance(59 * time.Second)
	_, ok, _ = c.Get(ctx, "quote:AAPL")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = c.Get(ctx, "quote:AAPL")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_SetCopiesValue(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'z'

	val, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), val)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, _ := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_IncrFixedWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := c.Incr(ctx, "rl:user", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	clock.Advance(30 * time.Second)
	n, _ := c.Incr(ctx, "rl:user", time.Minute)
	assert.Equal(t, int64(4), n, "window does not slide")

	clock.Advance(30 * time.Second)
	n, _ = c.Incr(ctx, "rl:user", time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCache_Purge(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Second))
	require.NoError(t, c.Set(ctx, "long", []byte("v"), time.Hour))
	clock.Advance(2 * time.Second)

	c.Purge()
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_SweepsExpiredOnWrite(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := NewMemoryCache(WithClock(clock.Now), WithSweepAt(4))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "quote:AAPL", []byte("v"), time.Second))
	require.NoError(t, c.Set(ctx, "quote:MSFT", []byte("v"), time.Second))
	_, err := c.Incr(ctx, "rl:alice", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	clock.Advance(2 * time.Second)
	require.NoError(t, c.Set(ctx, "quote:TSLA", []byte("v"), time.Hour))
	assert.Equal(t, 1, c.Len())

	// Live keys are kept and the next sweep waits for the map to grow.
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, key, []byte("v"), time.Hour))
	}
	assert.Equal(t, 4, c.Len())
	_, ok, _ := c.Get(ctx, "quote:TSLA")
	assert.True(t, ok)
}

func TestMemoryCache_ConcurrentIncr(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Incr(ctx, "k", time.Minute)
		}()
	}
	wg.Wait()
	n, _ := c.Incr(ctx, "k", time.Minute)
	assert.Equal(t, int64(51), n)
}
