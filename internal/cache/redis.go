package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RedisCache - разделяемый кэш в Redis. Значения хранятся в JSON,
// время жизни задаётся на стороне сервера при каждой записи.
type RedisCache[V any] struct {
	client *redis.Client
	cfg    Config
	group  singleflight.Group
	logger *slog.Logger
}

// NewRedis подключается к Redis и проверяет соединение
func NewRedis[V any](ctx context.Context, cfg Config, logger *slog.Logger) (*RedisCache[V], error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	return &RedisCache[V]{client: client, cfg: cfg, logger: logger}, nil
}

func (c *RedisCache[V]) GetOrLoad(ctx context.Context, key string, load LoadFunc[V]) (V, error) {
	var zero V

	value, ok, err := c.get(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		return value, nil
	}

	// Промахи по одному ключу внутри процесса объединяются в одну загрузку
	res, err, _ := c.group.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			c.logger.Debug("cache load failed", slog.String("key", key), slog.Any("error", err))
			return nil, err
		}
		// запись в кэш переживает отмену запроса, инициировавшего загрузку
		if err := c.Put(context.WithoutCancel(ctx), key, loaded); err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(V), nil
}

func (c *RedisCache[V]) Put(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.cfg.TTL).Err(); err != nil {
		c.logger.Warn("cache put failed", slog.String("key", key), slog.Any("error", err))
		return err
	}
	return nil
}

func (c *RedisCache[V]) Evict(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.logger.Warn("cache evict failed", slog.String("key", key), slog.Any("error", err))
		return err
	}
	return nil
}

func (c *RedisCache[V]) Close() error {
	return c.client.Close()
}

func (c *RedisCache[V]) get(ctx context.Context, key string) (V, bool, error) {
	var value V

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode cache value: %w", err)
	}
	return value, true, nil
}

func (c *RedisCache[V]) key(key string) string {
	return c.cfg.Redis.KeyPrefix + key
}
