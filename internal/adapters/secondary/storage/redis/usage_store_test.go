//go:build integration

package redis

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

func newTestStore(t *testing.T) *UsageStore {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis not available at %s: %v", addr, err)
	}

	prefix := "test:" + t.Name() + ":"
	t.Cleanup(func() {
		iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
		client.Close()
	})

	return NewUsageStore(client, prefix, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestUsageStore_IncrementUntilLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= domain.DefaultUsageLimit; want++ {
		count, err := store.IncrementIfAllowed(ctx, "10.0.0.1", domain.DefaultUsageLimit)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	_, err := store.IncrementIfAllowed(ctx, "10.0.0.1", domain.DefaultUsageLimit)
	assert.ErrorIs(t, err, domain.ErrLimitReached)

	count, err := store.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUsageLimit, count)
}

func TestUsageStore_GetAbsent(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Get(context.Background(), "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUsageStore_ConcurrentIncrements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var allowed, denied atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementIfAllowed(ctx, "10.0.0.3", domain.DefaultUsageLimit)
			if err == nil {
				allowed.Add(1)
			} else if assert.ErrorIs(t, err, domain.ErrLimitReached) {
				denied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.DefaultUsageLimit, allowed.Load())
	assert.Equal(t, 20-domain.DefaultUsageLimit, denied.Load())

	count, err := store.Get(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUsageLimit, count)
}
