package inmemory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin/web-apps/banner-ai/internal/domain"
)

func TestUsageStore_IncrementUntilLimit(t *testing.T) {
	store := NewUsageStore()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := store.IncrementIfAllowed(ctx, "a", 3)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	count, err := store.IncrementIfAllowed(ctx, "a", 3)
	assert.ErrorIs(t, err, domain.ErrLimitReached)
	assert.Zero(t, count)

	count, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUsageStore_GetAbsentIsZero(t *testing.T) {
	store := NewUsageStore()

	count, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUsageStore_ZeroLimit(t *testing.T) {
	store := NewUsageStore()
	ctx := context.Background()

	_, err := store.IncrementIfAllowed(ctx, "a", 0)
	assert.ErrorIs(t, err, domain.ErrLimitReached)

	count, _ := store.Get(ctx, "a")
	assert.Equal(t, int64(0), count)
}

func TestUsageStore_ClientsAreIndependent(t *testing.T) {
	store := NewUsageStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.IncrementIfAllowed(ctx, "a", 3)
		require.NoError(t, err)
	}

	count, err := store.IncrementIfAllowed(ctx, "b", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUsageStore_ConcurrentIncrements(t *testing.T) {
	store := NewUsageStore()
	ctx := context.Background()

	var allowed, denied atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.IncrementIfAllowed(ctx, "a", 3); err != nil {
				denied.Add(1)
				return
			}
			allowed.Add(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), allowed.Load())
	assert.Equal(t, int64(47), denied.Load())

	count, _ := store.Get(ctx, "a")
	assert.Equal(t, int64(3), count)
}
