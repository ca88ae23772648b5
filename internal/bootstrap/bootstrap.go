package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/htiportal/internal/app/auth"
	appControllers "github.com/yigit/htiportal/internal/app/controllers"
	appMigrations "github.com/yigit/htiportal/internal/app/migrations"
	appRepos "github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/app/repositories/inmem"
	appRoutes "github.com/yigit/htiportal/internal/app/routes"
	appServices "github.com/yigit/htiportal/internal/app/services"
	"github.com/yigit/htiportal/internal/config"
	"github.com/yigit/htiportal/internal/db"
	appMiddleware "github.com/yigit/htiportal/internal/middleware"
	pkgAuth "github.com/yigit/htiportal/internal/pkg/auth"
	"github.com/yigit/htiportal/internal/pkg/cache"
	"github.com/yigit/htiportal/internal/pkg/helpers"
	"github.com/yigit/htiportal/internal/pkg/logger"
	"github.com/yigit/htiportal/internal/seed"
)

// Storage is the repository set together with its backing store's lifecycle.
type Storage struct {
	Repos *appRepos.Repositories
	Ping  appControllers.PingFunc
	Close func()
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	JWTService  *pkgAuth.JWTService
	Guard       *appAuth.Guard
	Controllers appRoutes.Controllers
	Registry    *prometheus.Registry
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured store. PostgreSQL is migrated on start;
// the in-memory store is loaded with a demo catalog. Both get the seed admin.
func SetupStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var storage *Storage

	if cfg.UsesMemoryStore() {
		logger.Warn().Msg("Using in-memory storage; data is lost on restart")
		mem := inmem.Open()
		seed.DemoCatalog(mem)
		storage = &Storage{
			Repos: mem.Repositories(),
			Ping:  func(context.Context) error { return mem.Ping() },
			Close: func() {},
		}
	} else {
		logger.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Database connection successfully established.")

		migrator := appMigrations.NewMigrator(database.Pool)
		if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		logger.Info().Msg("Database migrations successfully applied.")

		storage = &Storage{
			Repos: appRepos.NewRepositories(database.Pool),
			Ping:  database.Ping,
			Close: database.Close,
		}
	}

	admin := seed.Admin{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword}
	if err := seed.CreateDefaultData(ctx, storage.Repos, admin); err != nil {
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return storage, nil
}

// SetupCache connects to Redis when an address is configured. Without one the
// catalog is read straight from storage.
func SetupCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	if cfg.Redis.Addr == "" {
		return cache.Noop{}, func() {}, nil
	}

	rc, err := cache.NewRedisCache(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
	return rc, func() { _ = rc.Close() }, nil
}

// BuildDependencies initializes services, guards and controllers on top of the repositories.
func BuildDependencies(cfg *config.Config, storage *Storage, c cache.Cache) *Dependencies {
	deps := &Dependencies{Repos: storage.Repos}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: helpers.ParseDuration(cfg.Auth.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.Auth.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, appServices.Deps{
		Tokens:   deps.JWTService,
		Cache:    c,
		CacheTTL: helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute),
	})

	deps.Guard = appAuth.NewGuard(
		appAuth.NewIdentityResolver(deps.JWTService, cfg.Auth.SessionCookie),
		deps.Repos.Profiles,
		deps.Repos.Students,
		appAuth.PageConfig{SignInPath: cfg.Auth.SignInPath, DashboardPath: cfg.Auth.DashboardPath},
	)

	checks := map[string]appControllers.Pinger{"database": storage.Ping}
	if _, ok := c.(cache.Noop); !ok && c != nil {
		checks["redis"] = c
	}

	svc := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(svc.Auth, appControllers.CookieConfig{Name: cfg.Auth.SessionCookie, Secure: cfg.Auth.SecureCookie}),
		Admin:   appControllers.NewAdminController(svc.Offerings, svc.Students, svc.Staff, svc.Catalog),
		Exams:   appControllers.NewExamsController(svc.Offerings, svc.Enrollments, svc.Results),
		Student: appControllers.NewStudentController(svc.Enrollments, svc.Results),
		Catalog: appControllers.NewCatalogController(svc.Catalog),
		Bursary: appControllers.NewBursaryController(svc.Receipts),
		Health:  appControllers.NewHealthController(checks),
		Pages:   appControllers.NewPageController(),
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "production") {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := appMiddleware.RegisterValidators(); err != nil {
		logger.Error().Err(err).Msg("Failed to register validation rules")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.NewMetrics(deps.Registry).Handler(),
		appMiddleware.ErrorPolicy(cfg.Errors.RedactBackend),
	)

	metrics := promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})
	appRoutes.SetupRouter(router, deps.Controllers, deps.Guard, metrics)

	return router
}
