package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-builder/internal/account"
	"resume-builder/internal/pages"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/session"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Redis          *redis.Client
	Sessions       session.Store
	Issuer         *auth.Issuer
	Metrics        *metrics.Registry
	Health         *health.Service
	UsersRepo      users.Repo
	ResumesRepo    resumes.Repo
	UsersService   *users.Service
	ResumesService *resumes.Service
	AccountService *account.Service
	UsersHandler   *users.Handler
	ResumesHandler *resumes.Handler
	AccountHandler *account.Handler
	PagesHandler   *pages.Handler
}

// Build connects storage, constructs services and handlers, and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Metrics: metrics.New(),
		Health:  health.NewService(),
	}

	if err := buildSessions(ctx, app); err != nil {
		app.Close()
		return nil, err
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env, cfg.SessionTTL)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Issuer = issuer

	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Issuer:         app.Issuer,
		Sessions:       app.Sessions,
		Metrics:        app.Metrics,
		Health:         app.Health,
		UserHandler:    app.UsersHandler,
		ResumeHandler:  app.ResumesHandler,
		AccountHandler: app.AccountHandler,
		PageHandler:    app.PagesHandler,
	})

	return app, nil
}

// Close releases the database pool and the redis client.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildSessions(ctx context.Context, app *App) error {
	cfg := app.Config
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		if !cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_sessions", map[string]any{"reason": "REDIS_ADDR empty"})
		}
		app.Sessions = session.NewMemoryStore()
		return nil
	}

	rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_sessions", map[string]any{"reason": "redis unreachable", "error": err})
			app.Sessions = session.NewMemoryStore()
			return nil
		}
		return err
	}
	app.Redis = rdb
	app.Sessions = session.NewRedisStore(rdb)
	app.Health.Add("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	return nil
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.Health.Add("database", app.DB.PingContext)
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ResumesService = resumes.NewService(app.ResumesRepo)
	app.AccountService = account.NewService(app.UsersRepo, app.ResumesRepo)

	secure := app.Config.CookieSecure
	app.UsersHandler = users.NewHandler(app.UsersService, app.Issuer, app.Sessions, app.Metrics, secure)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService, app.Metrics)
	app.AccountHandler = account.NewHandler(app.AccountService, app.Sessions, secure)

	pagesHandler, err := pages.NewHandler(app.ResumesService)
	if err != nil {
		return fmt.Errorf("build pages: %w", err)
	}
	app.PagesHandler = pagesHandler
	return nil
}
