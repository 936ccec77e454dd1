package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/infra"
	infracache "github.com/amirasaad/fintrack/infra/cache"
	infraprovider "github.com/amirasaad/fintrack/infra/provider"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/internal/migrations"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/cache"
	"github.com/amirasaad/fintrack/pkg/config"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"gorm.io/gorm"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := SetupLogger(cfg.Log, nil)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if cfg.DB.Migrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(sqlDB); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Database schema is up to date")
	}
	return BuildDeps(cfg, db, logger)
}

// BuildDeps wires everything that hangs off an open database. Tests call
// it with an in-memory database.
func BuildDeps(cfg *config.App, db *gorm.DB, logger *slog.Logger) (*app.Deps, error) {
	backend, err := NewCacheBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	market, err := infraprovider.NewMarketData(cfg.Market, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize market data provider: %w", err)
	}
	logger.Info("Market data provider ready", "provider", market.Name())

	return &app.Deps{
		Uow:        infrarepo.NewUoW(db),
		Cache:      backend,
		MarketData: market,
		Notifier:   authsvc.LogNotifier{Logger: logger},
		Logger:     logger,
	}, nil
}

// NewCacheBackend returns a Redis backend when REDIS_URL is set and a
// process-local one otherwise.
func NewCacheBackend(cfg *config.App, logger *slog.Logger) (cache.Backend, error) {
	if !cfg.UsesRedis() {
		logger.Info("Using in-memory cache backend")
		return infracache.NewMemoryCache(infracache.WithSweepAt(cfg.Market.CacheSweep)), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rc, err := infracache.NewRedisCacheFromConfig(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cache: %w", err)
	}
	logger.Info("Using Redis cache backend", "key_prefix", cfg.Redis.KeyPrefix)
	return rc, nil
}
