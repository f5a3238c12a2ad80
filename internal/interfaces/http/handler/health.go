package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/garments-erp/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and dependency checks
type HealthHandler struct {
	db        Pinger
	redis     Pinger
	version   string
	startTime time.Time
	timeout   time.Duration
}

// NewHealthHandler creates a HealthHandler. redis may be nil when the cache runs in memory.
func NewHealthHandler(db, redis Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		version:   version,
		startTime: time.Now(),
		timeout:   3 * time.Second,
	}
}

// DependencyStatus is the outcome of one dependency check
type DependencyStatus struct {
	Status    string `json:"status" example:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HealthResponse is the body of every health endpoint
type HealthResponse struct {
	Status       string                      `json:"status" example:"healthy"`
	Time         string                      `json:"time" example:"2026-01-23T12:00:00Z"`
	Version      string                      `json:"version,omitempty" example:"1.0.0"`
	GoVersion    string                      `json:"go_version,omitempty" example:"go1.25.5"`
	Uptime       string                      `json:"uptime,omitempty" example:"1h30m45s"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

func (h *HealthHandler) check(ctx context.Context, p Pinger) DependencyStatus {
	if p == nil {
		return DependencyStatus{Status: statusDisabled}
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	st := DependencyStatus{Status: statusHealthy, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		st.Status = statusUnhealthy
		st.Error = err.Error()
	}
	return st
}

func (h *HealthHandler) respond(c *gin.Context, resp HealthResponse) {
	resp.Status = statusHealthy
	for name, dep := range resp.Dependencies {
		if dep.Status == statusUnhealthy {
			resp.Status = statusUnhealthy
			logger.GetGinLogger(c).Warn("Health check failed",
				zap.String("dependency", name),
				zap.String("error", dep.Error),
			)
		}
	}
	resp.Time = time.Now().UTC().Format(time.RFC3339)

	code := http.StatusOK
	if resp.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Live godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	h.respond(c, HealthResponse{})
}

// Detailed godoc
// @Summary      Dependency health
// @Description  Pings the database and redis and reports uptime and version
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health/detailed [get]
func (h *HealthHandler) Detailed(c *gin.Context) {
	ctx := c.Request.Context()
	h.respond(c, HealthResponse{
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Dependencies: map[string]DependencyStatus{
			"database": h.check(ctx, h.db),
			"redis":    h.check(ctx, h.redis),
		},
	})
}

// Database godoc
// @Summary      Database health
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health/database [get]
func (h *HealthHandler) Database(c *gin.Context) {
	h.respond(c, HealthResponse{
		Dependencies: map[string]DependencyStatus{"database": h.check(c.Request.Context(), h.db)},
	})
}

// Redis godoc
// @Summary      Redis health
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health/redis [get]
func (h *HealthHandler) Redis(c *gin.Context) {
	h.respond(c, HealthResponse{
		Dependencies: map[string]DependencyStatus{"redis": h.check(c.Request.Context(), h.redis)},
	})
}
