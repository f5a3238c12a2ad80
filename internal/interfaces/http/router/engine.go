package router

import (
	"fmt"

	"github.com/garments-erp/backend/internal/infrastructure/auth"
	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/garments-erp/backend/internal/infrastructure/logger"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/garments-erp/backend/internal/interfaces/http/handler"
	"github.com/garments-erp/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineOptions carries everything NewEngine mounts
type EngineOptions struct {
	Config      *config.Config
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	Revocations middleware.RevocationChecker
	Permissions middleware.PermissionChecker
	// Idempotency is optional; without it Idempotency-Key headers are ignored
	Idempotency middleware.IdempotencyStore
	Metrics     *telemetry.Metrics
	Health      *handler.HealthHandler
	Handlers    Handlers
	// Limiters are created by the caller so their sweepers can be stopped
	GlobalLimiter *middleware.RateLimiter
	AuthLimiter   *middleware.RateLimiter
}

// NewEngine builds the gin engine with the full middleware chain, health checks,
// metrics, swagger and every API route.
//
// Order: recovery, request id, access log, tracing, metrics, security
// headers, CORS, body limit, global rate limit; then for /api/v1 the JWT
// check, span enrichment and idempotency.
func NewEngine(opts EngineOptions) (*gin.Engine, *Router, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, nil, fmt.Errorf("set trusted proxies: %w", err)
		}
	}

	metricsPath := cfg.Telemetry.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	opsPaths := []string{"/health", "/health/detailed", "/health/database", "/health/redis", metricsPath}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   opsPaths,
	}))
	if cfg.Telemetry.MetricsEnabled && opts.Metrics != nil {
		engine.Use(middleware.HTTPMetrics(opts.Metrics, opsPaths...))
	}

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.App.Env == "production"
	engine.Use(middleware.SecureWithConfig(security))

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	cors.AllowHeaders = appendMissing(cors.AllowHeaders, cfg.HTTP.CORSAllowHeaders...)
	engine.Use(middleware.CORSWithConfig(cors))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled && opts.GlobalLimiter != nil {
		engine.Use(middleware.RateLimit(opts.GlobalLimiter))
		log.Info("rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if opts.Health != nil {
		engine.GET("/health", opts.Health.Live)
		engine.GET("/health/detailed", opts.Health.Detailed)
		engine.GET("/health/database", opts.Health.Database)
		engine.GET("/health/redis", opts.Health.Redis)
	}
	if cfg.Telemetry.MetricsEnabled && opts.Metrics != nil {
		engine.GET(metricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	jwt := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:  opts.JWTService,
		Revocations: opts.Revocations,
		SkipPaths:   publicPaths("/api/v1"),
		Logger:      log,
	})

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, jwt),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	var authLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled && opts.AuthLimiter != nil {
		authLimit = middleware.RateLimit(opts.AuthLimiter)
	}

	guard := middleware.NewPermissionGuard(opts.Permissions, log)
	r := NewRouter(engine, WithAPIVersion("v1"), WithAuthorizer(guard.Require))
	r.Use(jwt, middleware.SpanEnricher())
	if opts.Idempotency != nil {
		r.Use(middleware.Idempotency(opts.Idempotency, log))
	}
	for _, group := range APIGroups(opts.Handlers, authLimit) {
		r.Register(group)
	}
	if err := r.Setup(); err != nil {
		return nil, nil, err
	}

	return engine, r, nil
}

func publicPaths(base string) []string {
	out := make([]string, len(PublicAuthPaths))
	for i, p := range PublicAuthPaths {
		out[i] = base + p
	}
	return out
}

func appendMissing(list []string, extra ...string) []string {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		seen[v] = struct{}{}
	}
	for _, v := range extra {
		if _, ok := seen[v]; !ok {
			list = append(list, v)
			seen[v] = struct{}{}
		}
	}
	return list
}
