package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/employee-api/internal/cache"
	"github.com/employee-api/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "secret")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=employees sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 30, cfg.Database.ConnectAttempts)
	assert.Equal(t, cache.BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 60*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "employees:", cfg.Cache.Redis.KeyPrefix)
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/emp.db")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/emp.db", cfg.Database.Path)
	assert.Equal(t, cache.BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_FlagOverride(t *testing.T) {
	t.Setenv("API_KEY", "secret")

	v := viper.New()
	v.Set("SERVER_PORT", "7000")

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing api key", map[string]string{"API_KEY": ""}},
		{"unknown driver", map[string]string{"API_KEY": "k", "DB_DRIVER": "mysql"}},
		{"unknown cache backend", map[string]string{"API_KEY": "k", "CACHE_BACKEND": "memcached"}},
		{"zero connect attempts", map[string]string{"API_KEY": "k", "DB_CONNECT_ATTEMPTS": "0"}},
		{"negative rate", map[string]string{"API_KEY": "k", "RATE_LIMIT_RPS": "-1"}},
		{"unknown log level", map[string]string{"API_KEY": "k", "LOG_LEVEL": "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(viper.New())
			assert.Error(t, err)
		})
	}
}
