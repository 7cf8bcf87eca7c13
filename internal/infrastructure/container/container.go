// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/savorly/engine/internal/application/engagement"
	"github.com/savorly/engine/internal/application/recommendation"
	"github.com/savorly/engine/internal/infrastructure/ai/openai"
	"github.com/savorly/engine/internal/infrastructure/config"
	"github.com/savorly/engine/internal/infrastructure/http/apiserver"
	"github.com/savorly/engine/internal/infrastructure/monitoring"
	gormRepo "github.com/savorly/engine/internal/infrastructure/persistence/gorm"
	"github.com/savorly/engine/internal/infrastructure/persistence/memory"
	"github.com/savorly/engine/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/savorly/engine/internal/infrastructure/persistence/redis"
	"github.com/savorly/engine/internal/infrastructure/persistence/sqlite"
	"github.com/savorly/engine/internal/infrastructure/security"
	"github.com/savorly/engine/internal/ports/inbound"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules for the API server
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides Prometheus metrics
var MonitoringModule = fx.Provide(
	monitoring.NewMetrics,
)

// DatabaseModule provides the database connection. Production uses
// PostgreSQL; anything else gets a seeded SQLite database.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" && cfg.IsProduction() {
			return postgres.Connect(cfg, log)
		}

		dbPath := ""
		if cfg.Database.Database != "" && cfg.Database.Database != "savorly" {
			dbPath = cfg.Database.Database + ".db"
		}

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(dbPath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if err := sqlite.SeedDatabase(db); err != nil {
			log.Warn("Failed to seed database", zap.Error(err))
		}

		log.Info("Connected to SQLite database",
			zap.Bool("in_memory", dbPath == ""),
		)
		return db, nil
	},
)

// CacheModule provides the preference profile cache. Production uses
// Redis; development falls back to the in-memory cache.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.IsProduction() {
			client, err := redisRepo.NewClient(cfg, log)
			if err == nil {
				return redisRepo.NewCacheRepository(client, log)
			}
			log.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		}
		return memory.NewCacheRepository()
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewRecipeRepository,
	gormRepo.NewAchievementRepository,
	gormRepo.NewEngagementStore,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Preference analyzer
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *openai.Client {
			return openai.NewClient(cfg.AI, log)
		},
		fx.As(new(outbound.PreferenceAnalyzer)),
	),

	// Feed pipeline
	func(
		analyzer outbound.PreferenceAnalyzer,
		cache outbound.CacheRepository,
		cfg *config.Config,
		metrics *monitoring.Metrics,
		log *zap.Logger,
	) *recommendation.PreferenceExtractor {
		return recommendation.NewPreferenceExtractor(analyzer, cache, cfg.Recommendation.ProfileCacheTTL, metrics, log)
	},
	recommendation.NewCandidateFilter,
	func(cfg *config.Config) *recommendation.Ranker {
		return recommendation.NewRanker(cfg.Recommendation.PageSize, cfg.Recommendation.TieBand, randomSeed())
	},

	// Recommendation service
	fx.Annotate(
		func(
			users outbound.UserRepository,
			recipes outbound.RecipeRepository,
			extractor *recommendation.PreferenceExtractor,
			filter *recommendation.CandidateFilter,
			ranker *recommendation.Ranker,
			cfg *config.Config,
			metrics *monitoring.Metrics,
			log *zap.Logger,
		) *recommendation.Service {
			return recommendation.NewService(users, recipes, extractor, filter, ranker,
				cfg.Recommendation.NextBatchSize, metrics, log)
		},
		fx.As(new(inbound.RecommendationService)),
	),

	// Engagement service
	fx.Annotate(
		func(
			users outbound.UserRepository,
			recipes outbound.RecipeRepository,
			achievements outbound.AchievementRepository,
			store outbound.EngagementStore,
			recommender inbound.RecommendationService,
			metrics *monitoring.Metrics,
			log *zap.Logger,
		) *engagement.Service {
			return engagement.NewService(users, recipes, achievements, store, recommender, metrics, log)
		},
		fx.As(new(inbound.EngagementService)),
	),

	// Auth service
	security.NewAuthService,
)

func randomSeed() int64 {
	return time.Now().UnixNano()
}

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule registers application lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the API server on application start and
// shuts it down cleanly on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Savorly engine",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Savorly engine")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
