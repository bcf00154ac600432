package market

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrumbCache_ConcurrentCallersShareOneHandshake(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	cache := NewCrumbCache(func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "crumb-1", nil
	})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get(context.Background())
		}(i)
	}

	// Give every caller a chance to block on the in-flight handshake.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "crumb-1", results[i])
	}
	assert.True(t, cache.Verified())
}

func TestCrumbCache_FailureIsNotCached(t *testing.T) {
	var calls atomic.Int32
	cache := NewCrumbCache(func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("handshake refused")
		}
		return "crumb-2", nil
	})

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindCredential))
	assert.False(t, cache.Verified())

	crumb, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "crumb-2", crumb)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCrumbCache_WaiterHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	cache := NewCrumbCache(func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	})

	go func() { _, _ = cache.Get(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := cache.Get(ctx)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindCredential))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
