package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const memorySweepInterval = time.Minute

// Factory opens the cache backend named by configuration
type Factory struct {
	cfg           config.RedisConfig
	logger        *zap.Logger
	allowFallback bool
	pingTimeout   time.Duration
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithMemoryFallback controls whether an unreachable Redis degrades to a MemoryStore (default true)
func WithMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowFallback = allow
	}
}

// NewFactory creates a cache factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:           cfg,
		logger:        zap.NewNop(),
		allowFallback: true,
		pingTimeout:   3 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewRedisClient builds a client from configuration without connecting
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Open returns a RedisStore when Redis is enabled and answers a ping, otherwise a MemoryStore.
// The Redis client is nil when the memory store is used.
func (f *Factory) Open(ctx context.Context) (Store, *redis.Client, error) {
	if !f.cfg.Enabled {
		f.logger.Info("redis disabled, using in-memory cache")
		return NewMemoryStore(memorySweepInterval), nil, nil
	}

	client := NewRedisClient(f.cfg)
	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	err := client.Ping(pingCtx).Err()
	if err == nil {
		f.logger.Info("connected to redis", zap.String("addr", f.cfg.Addr()), zap.Int("db", f.cfg.DB))
		return NewRedisStore(client), client, nil
	}
	_ = client.Close()

	if !f.allowFallback {
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", f.cfg.Addr(), err)
	}
	f.logger.Warn("redis unavailable, falling back to in-memory cache; cached data is not shared between instances",
		zap.String("addr", f.cfg.Addr()),
		zap.Error(err),
	)
	return NewMemoryStore(memorySweepInterval), nil, nil
}
