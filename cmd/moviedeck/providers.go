package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/amaumene/moviedeck/internal/api"
	"github.com/amaumene/moviedeck/internal/auth"
	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/amaumene/moviedeck/internal/favorites"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/scheduler"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/amaumene/moviedeck/internal/tracing"
	"github.com/amaumene/moviedeck/internal/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// App is everything the serve command runs
type App struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Gateway   *tmdb.Gateway
	Auth      *auth.Service
	Server    *api.Server
	Scheduler *scheduler.Scheduler
}

// favoritesEnv is what the favorites commands need
type favoritesEnv struct {
	Storage favorites.Storage
	Logger  *logrus.Logger
}

func provideLogger(cfg *config.Config) *logrus.Logger {
	return utils.NewLogger(cfg.LogLevel, cfg.LogFile)
}

// provideCLILogger keeps stdout free for command output
func provideCLILogger(cfg *config.Config) *logrus.Logger {
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
	if cfg.LogFile == "" {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func provideDatabase(cfg *config.Config, logger *logrus.Logger) (*models.Database, func(), error) {
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.WithField("path", cfg.DatabaseFile).Debug("Database initialized")

	return db, func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("Failed to close database")
		}
	}, nil
}

func provideStorage(cfg *config.Config, db *models.Database, logger *logrus.Logger) (favorites.Storage, func(), error) {
	switch cfg.FavoritesBackend {
	case config.BackendSQLite:
		storage, err := favorites.NewSQLiteStorage(cfg.SQLiteFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open favorites database: %w", err)
		}
		logger.WithField("path", cfg.SQLiteFile).Debug("SQLite favorites storage initialized")
		return storage, func() {
			if err := storage.Close(); err != nil {
				logger.WithError(err).Error("Failed to close favorites database")
			}
		}, nil
	case config.BackendMemory:
		logger.Warn("Favorites are kept in memory and will be lost on restart")
		return favorites.NewMemoryStorage(), func() {}, nil
	default:
		return db, func() {}, nil
	}
}

func provideTracing(cfg *config.Config, logger *logrus.Logger) (*tracing.Provider, func()) {
	provider := tracing.NewProvider(cfg.TracingEnabled, "moviedeck", logger)
	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Failed to shut down tracer provider")
		}
	}
}

func provideTracerProvider(provider *tracing.Provider) trace.TracerProvider {
	return provider
}

func provideRegistry(cfg *config.Config, gateway *tmdb.Gateway, storage favorites.Storage, m *metrics.Metrics, logger *logrus.Logger) *controllers.Registry {
	return controllers.NewRegistry(gateway, storage, m, cfg.FavoritesFetchConcurrency, logger)
}

func provideScheduler(cfg *config.Config, gateway *tmdb.Gateway, registry *controllers.Registry, logger *logrus.Logger) *scheduler.Scheduler {
	return scheduler.NewScheduler(gateway, registry, cfg.HealthSchedule, cfg.TMDBTimeout, logger)
}
