package database_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/database"
	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sqliteConfig(path string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		Path:            path,
		ConnectAttempts: 1,
	}
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(filepath.Join(t.TempDir(), "employees.db"))

	db, err := database.Connect(ctx, cfg, discardLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(ctx, sqlDB, cfg.Driver))
	// повторный запуск ничего не меняет
	require.NoError(t, database.Migrate(ctx, sqlDB, cfg.Driver))

	repo := repository.NewEmployeeRepository(db)
	emp := &domain.Employee{Name: "Peter Kwan", Salary: 9000, Department: "Engineering"}
	require.NoError(t, repo.Create(ctx, emp))
	assert.Equal(t, int64(1), emp.ID)

	found, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, *emp, *found)
}

func TestConnect_GivesUp(t *testing.T) {
	cfg := sqliteConfig(filepath.Join(t.TempDir(), "missing", "employees.db"))

	_, err := database.Connect(context.Background(), cfg, discardLogger())
	assert.ErrorContains(t, err, "after 1 attempts")
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := database.Connect(context.Background(), config.DatabaseConfig{Driver: "mysql", ConnectAttempts: 1}, discardLogger())
	assert.Error(t, err)
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	assert.Error(t, database.Migrate(context.Background(), nil, "mysql"))
}
