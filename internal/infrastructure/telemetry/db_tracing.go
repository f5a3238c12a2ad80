package telemetry

import (
	"errors"
	"time"

	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// queryStartKey holds the statement start time in gorm's per-statement settings
const queryStartKey = "erp:query_start"

// DBTracing installs otelgorm and tags slow statements on their spans
type DBTracing struct {
	enabled   bool
	fullSQL   bool
	threshold time.Duration
	logger    *zap.Logger
}

func NewDBTracing(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracing {
	threshold := cfg.DBSlowQueryThresh
	if threshold <= 0 {
		threshold = 200 * time.Millisecond
	}
	return &DBTracing{
		enabled:   cfg.Enabled && cfg.DBTraceEnabled,
		fullSQL:   cfg.DBLogFullSQL,
		threshold: threshold,
		logger:    logger,
	}
}

type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// Register attaches the plugin and callbacks to db
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.enabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !t.fullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	// after hooks run ahead of otelgorm's, which end the span and restore the parent context
	cb := db.Callback()
	hooks := []struct {
		op     string
		before callbackRegistrar
		after  callbackRegistrar
	}{
		{"create", cb.Create().Before("gorm:create"), cb.Create().After("gorm:create").Before("otel:after:create")},
		{"query", cb.Query().Before("gorm:query"), cb.Query().After("gorm:query").Before("otel:after:select")},
		{"update", cb.Update().Before("gorm:update"), cb.Update().After("gorm:update").Before("otel:after:update")},
		{"delete", cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete").Before("otel:after:delete")},
		{"row", cb.Row().Before("gorm:row"), cb.Row().After("gorm:row").Before("otel:after:row")},
		{"raw", cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw").Before("otel:after:raw")},
	}
	for _, h := range hooks {
		if err := h.before.Register("erp_slow_query:before_"+h.op, t.before); err != nil {
			return err
		}
		if err := h.after.Register("erp_slow_query:after_"+h.op, t.after); err != nil {
			return err
		}
	}

	t.logger.Info("database tracing enabled",
		zap.Bool("full_sql", t.fullSQL),
		zap.Duration("slow_query_threshold", t.threshold))
	return nil
}

func (t *DBTracing) before(tx *gorm.DB) {
	tx.InstanceSet(queryStartKey, time.Now())
}

func (t *DBTracing) after(tx *gorm.DB) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
	}

	v, ok := tx.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > t.threshold {
		span.SetAttributes(attribute.Bool("db.slow_query", true))
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", t.threshold.Milliseconds()),
		))
	}
}
