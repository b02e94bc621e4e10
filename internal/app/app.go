package app

import (
	"context"
	"time"

	"go-hrdocs/internal/bootstrap"
	"go-hrdocs/internal/config"
	"go-hrdocs/internal/middleware"
	"go-hrdocs/internal/models"
	"go-hrdocs/internal/shared/connection"
	"go-hrdocs/internal/shared/keylock"
	"go-hrdocs/internal/storage"
	"go-hrdocs/internal/tenant"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	configLockTTL   = 10 * time.Second
	configLockRetry = 50 * time.Millisecond
)

// Infra is the process-wide state shared by the api, worker and consumer
// binaries.
type Infra struct {
	Config   *config.Config
	Redis    *redis.Client
	Blob     storage.Blob
	Registry *tenant.Registry[*models.Models]
	Audit    bootstrap.AuditLogger
}

// NewInfra connects the control-plane database, redis and blob storage
// and builds the tenant registry. Tenant stores open lazily.
func NewInfra(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	controlDB, err := connection.ConnectGORMWithRetry(cfg.ControlDB.DSN(""), cfg.ControlDB.MaxRetries)
	if err != nil {
		return nil, err
	}
	if err := controlDB.WithContext(ctx).AutoMigrate(&tenant.Tenant{}); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.ControlDB.MaxRetries)
	if err != nil {
		return nil, err
	}

	blob, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	audit := bootstrap.NewStdoutAuditLogger(logger)
	builder := models.NewBuilder(models.Shared{
		Redis:  rdb,
		Locker: keylock.NewRedis(rdb, configLockTTL, configLockRetry),
		Blob:   blob,
		Audit:  audit,
		Logger: logger,
	})

	registry := tenant.NewRegistry(
		tenant.NewDirectory(controlDB),
		tenant.NewPostgresOpener(cfg.TenantDB, models.Provision, cfg.Timeouts.Store),
		builder,
		tenant.RegistryConfig{ResolveTimeout: cfg.Timeouts.TenantResolve, Logger: logger},
	)

	return &Infra{
		Config:   cfg,
		Redis:    rdb,
		Blob:     blob,
		Registry: registry,
		Audit:    audit,
	}, nil
}

// Closers releases tenant stores first, then the shared clients.
func (i *Infra) Closers() []bootstrap.Closer {
	return []bootstrap.Closer{
		func(context.Context) error { return i.Registry.Close() },
		func(context.Context) error { return i.Blob.Close() },
		func(context.Context) error { return i.Redis.Close() },
	}
}

// NewRouter builds the gin engine with the global middleware chain and all
// tenant-scoped routes under /api/v1.
func NewRouter(infra *Infra, logger *zap.Logger) (*gin.Engine, error) {
	cfg := infra.Config
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Idempotency-Key", "X-Request-ID")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "tenants": len(infra.Registry.Tenants())})
	})

	api := r.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.TenantContext(func(ctx context.Context, tenantID string) error {
			_, err := infra.Registry.Resolve(ctx, tenantID)
			return err
		}),
		middleware.ContextLogger(logger),
	)

	if err := registerModules(api, infra); err != nil {
		return nil, err
	}
	return r, nil
}
