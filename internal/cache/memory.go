package cache

import (
	"context"

	"github.com/viccon/sturdyc"
)

// MemoryCache - кэш в памяти процесса на основе sturdyc.
// sturdyc отслеживает загрузки в полёте, поэтому параллельные промахи
// по одному ключу выполняют загрузчик один раз.
type MemoryCache[V any] struct {
	client *sturdyc.Client[V]
}

// NewMemory создаёт кэш в памяти. Конфигурация должна быть проверена заранее.
func NewMemory[V any](cfg Config) *MemoryCache[V] {
	var opts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	// WithMissingRecordStorage не включаем: отсутствующие записи не кэшируются
	client := sturdyc.New[V](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		opts...,
	)

	return &MemoryCache[V]{client: client}
}

func (c *MemoryCache[V]) GetOrLoad(ctx context.Context, key string, load LoadFunc[V]) (V, error) {
	return c.client.GetOrFetch(ctx, key, sturdyc.FetchFn[V](load))
}

func (c *MemoryCache[V]) Put(_ context.Context, key string, value V) error {
	c.client.Set(key, value)
	return nil
}

func (c *MemoryCache[V]) Evict(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

// Len возвращает число записей в кэше
func (c *MemoryCache[V]) Len() int {
	return c.client.Size()
}

func (c *MemoryCache[V]) Close() error {
	return nil
}
