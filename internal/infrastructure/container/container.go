// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appai "github.com/tastevine/v1/internal/application/ai"
	"github.com/tastevine/v1/internal/application/recipe"
	"github.com/tastevine/v1/internal/application/remedy"
	"github.com/tastevine/v1/internal/application/user"
	"github.com/tastevine/v1/internal/application/vote"
	"github.com/tastevine/v1/internal/infrastructure/ai/gemini"
	"github.com/tastevine/v1/internal/infrastructure/cache"
	"github.com/tastevine/v1/internal/infrastructure/config"
	"github.com/tastevine/v1/internal/infrastructure/http/server"
	"github.com/tastevine/v1/internal/infrastructure/monitoring"
	"github.com/tastevine/v1/internal/infrastructure/persistence/database"
	gormRepo "github.com/tastevine/v1/internal/infrastructure/persistence/gorm"
	"github.com/tastevine/v1/internal/infrastructure/security"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
	"github.com/tastevine/v1/pkg/logger"
)

// Module assembles every dependency of the API application
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
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

// DatabaseModule provides the GORM database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		return database.Connect(cfg, log)
	},
)

// CacheModule provides caching. Redis can be disabled entirely,
// in which case services see a nil cache and skip it.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enable {
			log.Info("redis disabled, response caching is off")
			return nil, nil
		}
		return cache.NewRedisCache(cfg, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewRemedyRepository,
	gormRepo.NewUserRepository,
	gormRepo.NewSavedRecipeRepository,
	gormRepo.NewVoteStore,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	monitoring.NewMetricsCollector,
	security.NewJWTService,

	// Gemini model client
	fx.Annotate(
		gemini.NewClient,
		fx.As(new(outbound.ModelClient)),
	),

	// AI service
	func(model outbound.ModelClient, cacheRepo outbound.CacheRepository, metrics *monitoring.MetricsCollector, cfg *config.Config, log *zap.Logger) *appai.Service {
		opts := appai.Options{
			Timeout:           cfg.AITimeout(),
			RequestsPerMinute: cfg.AI.RequestsPerMin,
			Metrics:           metrics,
		}
		if cfg.AI.EnableCache {
			opts.CacheTTL = cfg.AI.CacheTTL
		}
		return appai.NewService(model, cacheRepo, opts, log)
	},
	func(svc *appai.Service) inbound.AIService { return svc },
	func(svc *appai.Service) remedy.Generator { return svc },

	// Vote service
	func(store outbound.VoteStore, metrics *monitoring.MetricsCollector, log *zap.Logger) inbound.VoteService {
		return vote.NewService(store, metrics, log)
	},

	// Recipe service
	func(
		recipes outbound.RecipeRepository,
		saved outbound.SavedRecipeRepository,
		users outbound.UserRepository,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) inbound.RecipeService {
		return recipe.NewService(recipes, saved, users, metrics, log)
	},

	// Remedy service
	func(remedies outbound.RemedyRepository, users outbound.UserRepository, generator remedy.Generator, metrics *monitoring.MetricsCollector, log *zap.Logger) inbound.RemedyService {
		return remedy.NewService(remedies, users, generator, metrics, log)
	},

	// User service
	func(users outbound.UserRepository, jwtService *security.JWTService, metrics *monitoring.MetricsCollector, log *zap.Logger) inbound.UserService {
		return user.NewService(users, jwtService, metrics, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.New,
)

// LifecycleModule registers start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks ties the HTTP server and database to the fx lifecycle
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("http server shutdown failed", zap.Error(err))
			}

			if err := database.Close(db); err != nil {
				log.Error("closing database failed", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
