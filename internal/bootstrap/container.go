// Package bootstrap assembles repositories, caches and application services
// from configuration. The API server and the operator CLI share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	identityapp "github.com/garments-erp/backend/internal/application/identity"
	partnerapp "github.com/garments-erp/backend/internal/application/partner"
	"github.com/garments-erp/backend/internal/infrastructure/auth"
	"github.com/garments-erp/backend/internal/infrastructure/cache"
	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/garments-erp/backend/internal/infrastructure/event"
	"github.com/garments-erp/backend/internal/infrastructure/logger"
	"github.com/garments-erp/backend/internal/infrastructure/persistence"
	"github.com/garments-erp/backend/internal/infrastructure/storage"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// idempotencyTTL is how long a replayable POST response is kept
const idempotencyTTL = 24 * time.Hour

// Services are the application services the interfaces layer calls
type Services struct {
	Auth             *identityapp.AuthService
	User             *identityapp.UserService
	Role             *identityapp.RoleService
	Permission       *identityapp.PermissionService
	PermissionSeeder *identityapp.PermissionSeeder
	Category         *financeapp.CategoryService
	CategorySeeder   *financeapp.CategorySeeder
	Account          *financeapp.AccountService
	Journal          *financeapp.JournalService
	CashBook         *financeapp.CashBookService
	CashBookImport   *financeapp.CashBookImportService
	TrialBalance     *financeapp.TrialBalanceService
	Balance          *financeapp.BalanceService
	Contact          *partnerapp.ContactService
}

// Container owns every long-lived dependency of a process
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *persistence.Database
	Cache       cache.Store
	Redis       *redis.Client
	Metrics     *telemetry.Metrics
	Tracer      *telemetry.TracerProvider
	Logs        *telemetry.LogExporter
	Profiler    *telemetry.Profiler
	Events      *event.InMemoryEventBus
	JWT         *auth.JWTService
	Blacklist   auth.TokenBlacklist
	Idempotency *cache.IdempotencyStore
	// Archive is nil unless storage is enabled
	Archive     *storage.S3Archive
	Services    Services
}

// Build connects to the database and cache and wires the services.
// On error everything opened so far is closed again.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (c *Container, err error) {
	c = &Container{
		Config:  cfg,
		Logger:  log,
		Metrics: telemetry.NewMetrics(),
	}
	defer func() {
		if err != nil {
			_ = c.Close(context.Background())
			c = nil
		}
	}()

	c.Logs, err = telemetry.NewLogExporter(ctx, cfg.Telemetry, cfg.App.Version)
	if err != nil {
		return c, err
	}
	log = c.Logs.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	c.Logger = log

	c.Tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		return c, err
	}
	c.Profiler, err = telemetry.NewProfiler(cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		return c, err
	}

	gormLog := logger.NewGormLogger(log.Named("gorm"), logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	c.DB, err = persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return c, err
	}
	if err = telemetry.NewDBTracing(cfg.Telemetry, log).Register(c.DB.DB); err != nil {
		return c, fmt.Errorf("register db tracing: %w", err)
	}
	sqlDB, err := c.DB.DB.DB()
	if err != nil {
		return c, fmt.Errorf("get sql.DB: %w", err)
	}
	if err = c.Metrics.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
		return c, fmt.Errorf("register db metrics: %w", err)
	}
	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	c.Cache, c.Redis, err = cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Open(ctx)
	if err != nil {
		return c, err
	}
	if c.Redis != nil {
		c.Blacklist = auth.NewRedisTokenBlacklist(c.Redis)
	} else {
		c.Blacklist = auth.NewInMemoryTokenBlacklist()
	}
	c.Idempotency = cache.NewIdempotencyStore(c.Cache, idempotencyTTL)
	c.JWT = auth.NewJWTService(cfg.JWT)
	c.Events = event.NewInMemoryEventBus(log.Named("events"))

	if cfg.Storage.Enabled {
		c.Archive, err = storage.NewS3Archive(ctx, cfg.Storage, storage.WithLogger(log.Named("storage")))
		if err != nil {
			return c, err
		}
		if err = c.Archive.EnsureBucket(ctx); err != nil {
			return c, err
		}
		log.Info("export archive enabled", zap.String("bucket", c.Archive.Bucket()))
	}

	c.Services = wireServices(c, c.DB.DB)
	return c, nil
}

func wireServices(c *Container, db *gorm.DB) Services {
	cfg, log := c.Config, c.Logger
	tx := c.DB

	users := persistence.NewGormUserRepository(db)
	roles := persistence.NewGormRoleRepository(db)
	permissions := persistence.NewGormPermissionRepository(db)
	categories := persistence.NewGormCategoryRepository(db)
	accounts := persistence.NewGormAccountRepository(db)
	journals := persistence.NewGormJournalEntryRepository(db)
	contacts := persistence.NewGormContactRepository(db)

	permissionSvc := identityapp.NewPermissionService(permissions, users,
		cache.NewPermissionCache(c.Cache, cfg.Cache.PermissionTTL), c.Metrics, log)
	journalSvc := financeapp.NewJournalService(journals, accounts, categories, tx, c.Events, c.Metrics, log)
	if c.Archive != nil {
		journalSvc.WithArchive(c.Archive, cfg.Storage.ExportPrefix)
	}
	trialBalanceSvc := financeapp.NewTrialBalanceService(journals, accounts,
		cache.NewTrialBalanceCache(c.Cache, cfg.Cache.TrialBalanceTTL), c.Metrics, log)

	balanceSvc := financeapp.NewBalanceService(journals, accounts,
		cache.NewBalanceCache(c.Cache, cfg.Cache.BalanceTTL, cfg.Cache.BalanceSummaryTTL), c.Metrics, log)

	cashBookSvc := financeapp.NewCashBookService(journalSvc, accounts, categories, tx, c.Metrics, log)
	contactSvc := partnerapp.NewContactService(contacts, categories, tx, log)

	invalidator := financeapp.NewTrialBalanceCacheInvalidator(trialBalanceSvc)
	c.Events.Subscribe(invalidator, invalidator.EventTypes()...)
	balanceInvalidator := financeapp.NewBalanceCacheInvalidator(balanceSvc)
	c.Events.Subscribe(balanceInvalidator, balanceInvalidator.EventTypes()...)

	return Services{
		Auth: identityapp.NewAuthService(users, roles, permissionSvc, tx, c.JWT, c.Blacklist,
			cfg.Auth, c.Metrics, log),
		User: identityapp.NewUserService(users, roles, permissionSvc, tx, c.Blacklist,
			cfg.JWT.RefreshTokenExpiration, log),
		Role:             identityapp.NewRoleService(roles, permissions, permissionSvc, tx, log),
		Permission:       permissionSvc,
		PermissionSeeder: identityapp.NewPermissionSeeder(roles, permissions, permissionSvc, tx, log),
		Category:         financeapp.NewCategoryService(categories, log),
		CategorySeeder:   financeapp.NewCategorySeeder(categories, tx, log),
		Account:          financeapp.NewAccountService(accounts, log),
		Journal:          journalSvc,
		CashBook:         cashBookSvc,
		CashBookImport:   financeapp.NewCashBookImportService(cashBookSvc, contactSvc, c.Metrics, log),
		TrialBalance:     trialBalanceSvc,
		Balance:          balanceSvc,
		Contact:          contactSvc,
	}
}

// Seed runs the seeders enabled in configuration
func (c *Container) Seed(ctx context.Context) error {
	if c.Config.Seed.Permissions {
		summary, err := c.Services.PermissionSeeder.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed permissions: %w", err)
		}
		c.Logger.Info("permissions seeded",
			zap.Int("permissions_created", summary.PermissionsCreated),
			zap.Int("permissions_updated", summary.PermissionsUpdated),
			zap.Int("roles_created", summary.RolesCreated),
			zap.Int("links_created", summary.LinksCreated),
		)
	}
	if c.Config.Seed.Categories {
		created, err := c.Services.CategorySeeder.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		c.Logger.Info("categories seeded", zap.Int("created", created))
	}
	return nil
}

// Close releases everything Build opened, in reverse order
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.Events != nil {
		errs = append(errs, c.Events.Stop(ctx))
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Profiler != nil {
		errs = append(errs, c.Profiler.Stop())
	}
	if c.Tracer != nil {
		errs = append(errs, c.Tracer.Shutdown(ctx))
	}
	if c.Logs != nil {
		errs = append(errs, c.Logs.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
