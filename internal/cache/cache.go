// Package cache содержит кэш представлений с фиксированным временем жизни записей.
//
// Кэш реализует три операции: GetOrLoad (чтение со сквозной загрузкой),
// Put и Evict. Ошибка загрузчика, в том числе «не найдено», в кэш не попадает.
// Одновременные промахи по одному ключу приводят к одному вызову загрузчика.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// KeySeparator разделяет сегменты ключа
const KeySeparator = "::"

// LoadFunc загружает значение из источника данных при промахе
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Cache - контракт кэша, которым пользуется сервис
type Cache[V any] interface {
	GetOrLoad(ctx context.Context, key string, load LoadFunc[V]) (V, error)
	Put(ctx context.Context, key string, value V) error
	Evict(ctx context.Context, key string) error
}

// Store - кэш с управляемым жизненным циклом
type Store[V any] interface {
	Cache[V]
	Close() error
}

// Key строит ключ из пространства имён и частей
func Key(namespace string, parts ...any) string {
	if len(parts) == 0 {
		return namespace
	}
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, namespace)
	for _, p := range parts {
		segments = append(segments, fmt.Sprint(p))
	}
	return strings.Join(segments, KeySeparator)
}

// New создаёт кэш выбранного в конфигурации типа
func New[V any](ctx context.Context, cfg Config, logger *slog.Logger) (Store[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	switch cfg.Backend {
	case BackendRedis:
		store, err := NewRedis[V](ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("cache initialized",
			slog.String("backend", cfg.Backend),
			slog.String("addr", cfg.Redis.Addr),
			slog.Duration("ttl", cfg.TTL),
		)
		return store, nil
	default:
		store := NewMemory[V](cfg)
		logger.Info("cache initialized",
			slog.String("backend", cfg.Backend),
			slog.Int("capacity", cfg.Capacity),
			slog.Duration("ttl", cfg.TTL),
		)
		return store, nil
	}
}
