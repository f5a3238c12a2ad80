package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/garments-erp/backend/internal/bootstrap"
	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/garments-erp/backend/internal/infrastructure/logger"
	"github.com/garments-erp/backend/internal/infrastructure/scheduler"
	"github.com/garments-erp/backend/internal/interfaces/http/handler"
	"github.com/garments-erp/backend/internal/interfaces/http/middleware"
	"github.com/garments-erp/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/garments-erp/backend/docs"
)

//	@title			Garments ERP API
//	@version		1.0
//	@description	Accounting backend for a garments manufacturer: categories, chart of accounts, journal entries, cash book and trial balance.

//	@contact.name	API Support
//	@contact.url	https://github.com/garments-erp/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.ForEnvironment(cfg.App.Env, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting Garments ERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.Close(closeCtx); err != nil {
			log.Error("error releasing resources", zap.Error(err))
		}
	}()

	log = c.Logger

	if err := c.Seed(ctx); err != nil {
		return err
	}

	jobs := scheduler.New(cfg.Scheduler, log)
	if err := scheduler.NewTrialBalanceWarmer(c.Services.TrialBalance, log).Register(jobs, cfg.Scheduler.TrialBalanceCron); err != nil {
		return err
	}
	jobs.Start()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	sweepStop := make(chan struct{})
	defer close(sweepStop)
	globalLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	globalLimiter.StartSweeper(time.Minute, sweepStop)
	authLimiter.StartSweeper(time.Minute, sweepStop)

	// an untyped nil keeps the redis check reporting "disabled"
	var redisPinger handler.Pinger
	if c.Redis != nil {
		redisPinger = c.Cache
	}

	svc := c.Services
	engine, _, err := router.NewEngine(router.EngineOptions{
		Config:        cfg,
		Logger:        log,
		JWTService:    c.JWT,
		Revocations:   svc.Auth,
		Permissions:   svc.Permission,
		Idempotency:   c.Idempotency,
		Metrics:       c.Metrics,
		Health:        handler.NewHealthHandler(c.DB, redisPinger, cfg.App.Version),
		GlobalLimiter: globalLimiter,
		AuthLimiter:   authLimiter,
		Handlers: router.Handlers{
			Auth:           handler.NewAuthHandler(svc.Auth),
			User:           handler.NewUserHandler(svc.User),
			Role:           handler.NewRoleHandler(svc.Role),
			Permission:     handler.NewPermissionHandler(svc.Permission),
			Category:       handler.NewCategoryHandler(svc.Category),
			Account:        handler.NewAccountHandler(svc.Account),
			Journal:        handler.NewJournalEntryHandler(svc.Journal),
			CashBook:       handler.NewCashBookHandler(svc.CashBook),
			CashBookImport: handler.NewCashBookImportHandler(svc.CashBookImport),
			TrialBalance:   handler.NewTrialBalanceHandler(svc.TrialBalance),
			Balance:        handler.NewBalanceHandler(svc.Balance),
			Contact:        handler.NewContactHandler(svc.Contact),
		},
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Warn("scheduler did not stop cleanly", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
