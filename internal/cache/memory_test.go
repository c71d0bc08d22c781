package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/employee-api/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
}

func newMemory(t *testing.T) *cache.MemoryCache[item] {
	t.Helper()
	cfg := cache.DefaultConfig()
	cfg.Capacity = 100
	cfg.NumShards = 4
	require.NoError(t, cfg.Validate())
	return cache.NewMemory[item](cfg)
}

func TestMemoryCache_GetOrLoad(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()

	var calls atomic.Int32
	load := func(ctx context.Context) (item, error) {
		calls.Add(1)
		return item{Name: "loaded"}, nil
	}

	t.Run("MissLoads", func(t *testing.T) {
		v, err := c.GetOrLoad(ctx, "k1", load)
		require.NoError(t, err)
		assert.Equal(t, "loaded", v.Name)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("HitSkipsLoader", func(t *testing.T) {
		v, err := c.GetOrLoad(ctx, "k1", load)
		require.NoError(t, err)
		assert.Equal(t, "loaded", v.Name)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestMemoryCache_LoaderErrorIsNotCached(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()
	notFound := errors.New("not found")

	_, err := c.GetOrLoad(ctx, "missing", func(ctx context.Context) (item, error) {
		return item{}, notFound
	})
	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, 0, c.Len())

	// запись появилась позже: повторная попытка должна её загрузить
	v, err := c.GetOrLoad(ctx, "missing", func(ctx context.Context) (item, error) {
		return item{Name: "appeared"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "appeared", v.Name)
}

func TestMemoryCache_PutOverwritesAndEvictRemoves(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", item{Name: "first"}))
	require.NoError(t, c.Put(ctx, "k", item{Name: "second"}))

	v, err := c.GetOrLoad(ctx, "k", func(ctx context.Context) (item, error) {
		t.Fatal("loader must not run on hit")
		return item{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "second", v.Name)

	require.NoError(t, c.Evict(ctx, "k"))
	require.NoError(t, c.Evict(ctx, "never-cached"))

	v, err = c.GetOrLoad(ctx, "k", func(ctx context.Context) (item, error) {
		return item{Name: "reloaded"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "reloaded", v.Name)
}

func TestMemoryCache_ConcurrentMissesLoadOnce(t *testing.T) {
	c := newMemory(t)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) (item, error) {
		calls.Add(1)
		<-release
		return item{Name: "shared"}, nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]item, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad(ctx, "hot", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r.Name)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "employee", cache.Key("employee"))
	assert.Equal(t, "employee::42", cache.Key("employee", int64(42)))
	assert.Equal(t, "a::1::b", cache.Key("a", 1, "b"))
}
