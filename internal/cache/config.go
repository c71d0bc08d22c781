package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Поддерживаемые хранилища кэша
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config - настройки кэша
type Config struct {
	Backend string
	// TTL отсчитывается от последней записи значения
	TTL time.Duration

	Capacity           int
	NumShards          int
	EvictionPercentage int
	EvictionInterval   time.Duration

	Redis RedisConfig
}

// RedisConfig - настройки подключения к Redis
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	KeyPrefix    string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		TTL:                60 * time.Minute,
		Capacity:           10000,
		NumShards:          256,
		EvictionPercentage: 10,
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			KeyPrefix:    "employees:",
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
		},
	}
}

// Validate проверяет корректность настроек
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendRedis)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return err
	}

	if c.Backend == BackendRedis {
		return c.Redis.validate()
	}
	return nil
}

func (c RedisConfig) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DB, validation.Min(0)),
		validation.Field(&c.PoolSize, validation.Min(0)),
	)
}
