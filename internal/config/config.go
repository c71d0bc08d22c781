package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/employee-api/internal/cache"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config содержит настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     cache.Config
	RateLimit RateLimitConfig
	LogLevel  string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port   string
	APIKey string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string
	ConnectAttempts int
}

// RateLimitConfig - лимит запросов на клиента. RPS=0 отключает лимит.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Validate проверяет настройки подключения
func (c DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
		validation.Field(&c.Host, validation.When(c.Driver == DriverPostgres, validation.Required)),
		validation.Field(&c.Port, validation.When(c.Driver == DriverPostgres, validation.Required)),
		validation.Field(&c.DBName, validation.When(c.Driver == DriverPostgres, validation.Required)),
		validation.Field(&c.Path, validation.When(c.Driver == DriverSQLite, validation.Required)),
		validation.Field(&c.ConnectAttempts, validation.Required, validation.Min(1)),
	)
}

// Validate проверяет конфигурацию целиком
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required),
		validation.Field(&c.Server.APIKey, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	err = validation.ValidateStruct(&c.RateLimit,
		validation.Field(&c.RateLimit.RPS, validation.Min(0.0)),
		validation.Field(&c.RateLimit.Burst, validation.When(c.RateLimit.RPS > 0, validation.Required, validation.Min(1))),
	)
	if err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	err = validation.Validate(strings.ToLower(c.LogLevel),
		validation.In("debug", "info", "warn", "error"),
	)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// SlogLevel переводит LOG_LEVEL в уровень slog
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setDefaults задаёт значения по умолчанию
func setDefaults(v *viper.Viper) {
	defCache := cache.DefaultConfig()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("API_KEY", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "employees")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "employees.db")
	v.SetDefault("DB_CONNECT_ATTEMPTS", 30)

	v.SetDefault("CACHE_BACKEND", defCache.Backend)
	v.SetDefault("CACHE_TTL", defCache.TTL)
	v.SetDefault("CACHE_CAPACITY", defCache.Capacity)
	v.SetDefault("CACHE_SHARDS", defCache.NumShards)
	v.SetDefault("CACHE_EVICTION_PERCENTAGE", defCache.EvictionPercentage)
	v.SetDefault("CACHE_EVICTION_INTERVAL", time.Duration(0))

	v.SetDefault("REDIS_ADDR", defCache.Redis.Addr)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", defCache.Redis.KeyPrefix)
}

// Load читает конфигурацию из окружения и необязательного файла .env.
// v может содержать заранее привязанные флаги командной строки.
func Load(v *viper.Viper) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	setDefaults(v)
	v.AutomaticEnv()

	cacheCfg := cache.DefaultConfig()
	cacheCfg.Backend = v.GetString("CACHE_BACKEND")
	cacheCfg.TTL = v.GetDuration("CACHE_TTL")
	cacheCfg.Capacity = v.GetInt("CACHE_CAPACITY")
	cacheCfg.NumShards = v.GetInt("CACHE_SHARDS")
	cacheCfg.EvictionPercentage = v.GetInt("CACHE_EVICTION_PERCENTAGE")
	cacheCfg.EvictionInterval = v.GetDuration("CACHE_EVICTION_INTERVAL")
	cacheCfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cacheCfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cacheCfg.Redis.DB = v.GetInt("REDIS_DB")
	cacheCfg.Redis.KeyPrefix = v.GetString("REDIS_PREFIX")

	cfg := &Config{
		Server: ServerConfig{
			Port:   v.GetString("SERVER_PORT"),
			APIKey: v.GetString("API_KEY"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			Path:            v.GetString("DB_PATH"),
			ConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		},
		Cache: cacheCfg,
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
