package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/garments-erp/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogExporter ships log records to the collector over OTLP
type LogExporter struct {
	provider    *sdklog.LoggerProvider
	serviceName string
}

// NewLogExporter returns a no-op exporter unless cfg.LogsEnabled is set
func NewLogExporter(ctx context.Context, cfg config.TelemetryConfig, version string) (*LogExporter, error) {
	le := &LogExporter{serviceName: cfg.ServiceName}
	if !cfg.LogsEnabled {
		return le, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp log exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	le.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(le.provider)
	return le, nil
}

// newLogExporterWithProvider is used by tests to export into an in-memory processor
func newLogExporterWithProvider(serviceName string, provider *sdklog.LoggerProvider) *LogExporter {
	return &LogExporter{provider: provider, serviceName: serviceName}
}

// Enabled reports whether records leave the process
func (le *LogExporter) Enabled() bool {
	return le.provider != nil
}

// Bridge returns a logger writing to base and, when enabled, to the collector.
// Records below minLevel are not exported.
func (le *LogExporter) Bridge(base *zap.Logger, minLevel zapcore.Level) *zap.Logger {
	if le.provider == nil {
		return base
	}
	otelCore := &levelCore{
		Core:     otelzap.NewCore(le.serviceName, otelzap.WithLoggerProvider(le.provider)),
		minLevel: minLevel,
	}
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}

// Shutdown flushes pending records, waiting at most ten seconds
func (le *LogExporter) Shutdown(ctx context.Context) error {
	if le.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := le.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown logger provider: %w", err)
	}
	return nil
}

type levelCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}
