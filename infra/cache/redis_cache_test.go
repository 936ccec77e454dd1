package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisCache starts a Redis container using testcontainers-go. It
// skips when running with -short or when no Docker daemon is reachable.
func setupRedisCache(tb testing.TB) *RedisCache {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping redis integration test in short mode")
	}
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0.5",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		tb.Skipf("redis container unavailable: %v", err)
	}
	tb.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(tb, err)
	host, err := container.Host(ctx)
	require.NoError(tb, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	rc, err := NewRedisCache(ctx, "redis://"+host+":"+port.Port(), "test:", logger)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestRedisCache_GetSet(t *testing.T) {
	rc := setupRedisCache(t)
	ctx := context.Background()

	_, ok, err := rc.Get(ctx, "quote:MSFT")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.Set(ctx, "quote:MSFT", []byte(`{"price":1}`), time.Minute))
	val, ok, err := rc.Get(ctx, "quote:MSFT")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"price":1}`, string(val))

	require.NoError(t, rc.Delete(ctx, "quote:MSFT"))
	_, ok, _ = rc.Get(ctx, "quote:MSFT")
	assert.False(t, ok)
}

func TestRedisCache_IncrWindowExpires(t *testing.T) {
	rc := setupRedisCache(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := rc.Incr(ctx, "rl:u1", time.Second)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	ttl, err := rc.client.PTTL(ctx, rc.key("rl:u1")).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
	assert.LessOrEqual(t, ttl, time.Second)

	require.Eventually(t, func() bool {
		n, err := rc.Incr(ctx, "rl:u1", time.Second)
		return err == nil && n == 1
	}, 5*time.Second, 200*time.Millisecond)
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not a url", "", nil)
	assert.Error(t, err)
}
