//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/bootstrap"
	"github.com/garments-erp/backend/internal/infrastructure/config"
	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/garments-erp/backend/internal/interfaces/http/handler"
	"github.com/garments-erp/backend/internal/interfaces/http/middleware"
	"github.com/garments-erp/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminUsername = "admin"
	adminPassword = "Admin@12345"
)

// TestServer is the full HTTP stack on top of a migrated database.
// Redis is disabled, so caches and the token blacklist run in memory.
type TestServer struct {
	DB        *TestDB
	Container *bootstrap.Container
	Engine    *gin.Engine
}

func testConfig(db config.DatabaseConfig) *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "garments-erp", Env: "test", Version: "test"},
		Database: db,
		JWT: config.JWTConfig{
			Secret:                 "integration-secret-integration-secret",
			RefreshSecret:          "integration-refresh-secret-integration",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "garments-erp-test",
			MaxRefreshCount:        10,
		},
		Auth: config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute},
		Log:  config.LogConfig{Level: "error"},
		HTTP: config.HTTPConfig{
			MaxBodySize:           1 << 20,
			AuthRateLimitRequests: 1000,
			AuthRateLimitWindow:   time.Minute,
		},
		Cache: config.CacheConfig{
			TrialBalanceTTL: 5 * time.Minute,
			PermissionTTL:   time.Minute,
		},
		Telemetry: config.TelemetryConfig{ServiceName: "garments-erp", MetricsEnabled: true, MetricsPath: "/metrics"},
		Seed:      config.SeedConfig{Permissions: true, Categories: true},
	}
}

// NewTestServer builds and seeds the application against a fresh database
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := NewTestDB(t)
	cfg := testConfig(db.Database)
	log := zap.NewNop()
	ctx := context.Background()

	c, err := bootstrap.Build(ctx, cfg, log)
	require.NoError(t, err, "Failed to build container")
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	require.NoError(t, c.Seed(ctx), "Failed to seed")

	svc := c.Services
	engine, _, err := router.NewEngine(router.EngineOptions{
		Config:      cfg,
		Logger:      log,
		JWTService:  c.JWT,
		Revocations: svc.Auth,
		Permissions: svc.Permission,
		Idempotency: c.Idempotency,
		Metrics:     c.Metrics,
		Health:      handler.NewHealthHandler(c.DB, nil, cfg.App.Version),
		AuthLimiter: middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow),
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
	require.NoError(t, err, "Failed to build engine")

	return &TestServer{DB: db, Container: c, Engine: engine}
}

// Request sends a JSON request, authenticated when token is given
func (ts *TestServer) Request(method, path string, body any, token ...string) *httptest.ResponseRecorder {
	headers := map[string]string{}
	if len(token) > 0 && token[0] != "" {
		headers["Authorization"] = "Bearer " + token[0]
	}
	return ts.Do(method, path, body, headers)
}

// Do sends a request under /api/v1 with explicit headers; a string body is sent raw
func (ts *TestServer) Do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Engine.ServeHTTP(rec, req)
	return rec
}

// SetupAdmin creates the first administrator and returns its access token
func (ts *TestServer) SetupAdmin(t *testing.T) string {
	t.Helper()

	rec := ts.Request(http.MethodPost, "/auth/setup-admin", map[string]string{
		"username":   adminUsername,
		"email":      "admin@garments.test",
		"password":   adminPassword,
		"first_name": "System",
		"last_name":  "Admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authResult](t, rec).AccessToken
}

// Register creates an Employee and returns its access token
func (ts *TestServer) Register(t *testing.T, username, password string) string {
	t.Helper()

	rec := ts.Request(http.MethodPost, "/auth/register", map[string]string{
		"username":   username,
		"email":      username + "@garments.test",
		"password":   password,
		"first_name": "Test",
		"last_name":  "Employee",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authResult](t, rec).AccessToken
}

// Login returns the token pair for username
func (ts *TestServer) Login(t *testing.T, username, password string) authResult {
	t.Helper()

	rec := ts.Request(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[authResult](t, rec)
}

type authResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID       string   `json:"id"`
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	} `json:"user"`
}

// decode unwraps the data field of a success envelope
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.True(t, envelope.Success, rec.Body.String())
	return envelope.Data
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.NotNil(t, resp.Error, rec.Body.String())
	return resp.Error.Code
}
