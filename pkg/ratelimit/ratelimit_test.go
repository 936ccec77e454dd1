package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/infra/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func TestFixedWindow_RejectsOverLimitAndResets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewMemoryCache(cache.WithClock(func() time.Time { return now }))
	l := NewFixedWindow(store, "market:", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, ok, "call %d", i+1)
	}
	ok, err := l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "user-2")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "user-1")
	assert.True(t, ok)
}

func TestFixedWindow_PrefixesKeys(t *testing.T) {
	c := new(mockCounter)
	c.On("Incr", mock.Anything, "market:u1", 30*time.Second).Return(int64(1), nil)
	l := NewFixedWindow(c, "market:", 5, 30*time.Second)

	ok, err := l.Allow(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	c.AssertExpectations(t)
}

func TestFixedWindow_CounterError(t *testing.T) {
	c := new(mockCounter)
	c.On("Incr", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("down"))
	l := NewFixedWindow(c, "", 5, time.Minute)

	ok, err := l.Allow(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestFixedWindow_DisabledWhenMaxNotPositive(t *testing.T) {
	c := new(mockCounter)
	l := NewFixedWindow(c, "", 0, time.Minute)

	ok, err := l.Allow(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	c.AssertNotCalled(t, "Incr", mock.Anything, mock.Anything, mock.Anything)
}
