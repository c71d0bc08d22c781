package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-api/internal/cache"
	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/database"
	"github.com/employee-api/internal/dto"
	"github.com/employee-api/internal/handler"
	"github.com/employee-api/internal/middleware"
	"github.com/employee-api/internal/repository"
	"github.com/employee-api/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Клиенты, молчащие дольше rateLimitIdle, забываются ограничителем
const (
	rateLimitSweepInterval = time.Minute
	rateLimitIdle          = 10 * time.Minute
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "employee-api",
		Short:         "HTTP API для учёта сотрудников",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	root.PersistentFlags().String("port", "", "порт HTTP сервера (SERVER_PORT)")
	root.PersistentFlags().String("log-level", "", "уровень логирования (LOG_LEVEL)")
	_ = v.BindPFlag("SERVER_PORT", root.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции и выйти",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), v)
		},
	})

	return root
}

// bootstrap загружает конфигурацию, настраивает логгер и открывает БД
func bootstrap(ctx context.Context, v *viper.Viper) (*config.Config, *slog.Logger, *gorm.DB, error) {
	bootLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(v)
	if err != nil {
		bootLogger.Error("failed to load config", slog.Any("error", err))
		return nil, nil, nil, err
	}

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		return nil, nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		return nil, nil, nil, err
	}

	// Запуск миграций
	if err := database.Migrate(ctx, sqlDB, cfg.Database.Driver); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		sqlDB.Close()
		return nil, nil, nil, err
	}

	return cfg, logger, db, nil
}

func runMigrate(ctx context.Context, v *viper.Viper) error {
	_, logger, db, err := bootstrap(ctx, v)
	if err != nil {
		return err
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	logger.Info("migrations applied")
	return nil
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, logger, db, err := bootstrap(ctx, v)
	if err != nil {
		return err
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	viewCache, err := cache.New[dto.EmployeeView](ctx, cfg.Cache, logger)
	if err != nil {
		logger.Error("failed to initialize cache", slog.Any("error", err))
		return err
	}
	defer viewCache.Close()

	empRepo := repository.NewEmployeeRepository(db)
	empService := service.NewEmployeeService(empRepo, viewCache)
	empHandler := handler.NewEmployeeHandler(empService, logger)

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.RunSweeper(ctx, rateLimitSweepInterval, rateLimitIdle)
	}

	router := handler.NewRouter(empHandler, cfg.Server.APIKey, limiter, logger)

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("db_driver", cfg.Database.Driver),
		slog.String("cache_backend", cfg.Cache.Backend),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		return fmt.Errorf("listen: %w", err)
	}

	<-done
	logger.Info("server stopped")
	return nil
}
