package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/garments-erp/backend/internal/infrastructure/cache"
	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader   = "Idempotency-Key"
	IdempotentReplayHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLen   = 128
)

// IdempotencyStore is the subset of cache.IdempotencyStore the middleware needs
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Lookup(ctx context.Context, key string) (*cache.IdempotentResponse, error)
	Complete(ctx context.Context, key string, resp cache.IdempotentResponse) error
	Release(ctx context.Context, key string) error
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a POST that repeats an Idempotency-Key.
// Keys are scoped per user and route. A key still in flight gets 409; a request
// that ends in a 5xx releases its key so the client can retry.
func Idempotency(store IdempotencyStore, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(IdempotencyKeyHeader)
		if header == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(header) > maxIdempotencyKeyLen {
			abortWith(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		ctx := c.Request.Context()
		key := GetJWTUserID(c) + ":" + c.Request.Method + ":" + c.Request.URL.Path + ":" + header

		stored, err := store.Lookup(ctx, key)
		if err != nil {
			logger.Warn("Idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if stored != nil {
			c.Header(IdempotentReplayHeader, "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		reserved, err := store.Reserve(ctx, key)
		if err != nil {
			logger.Warn("Idempotency reserve failed", zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			abortWith(c, http.StatusConflict, dto.ErrCodeIdempotencyInUse, "A request with this Idempotency-Key is already being processed")
			return
		}

		w := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		// the request context may already be cancelled once the handler returns
		bg := context.WithoutCancel(ctx)
		status := w.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(bg, key); err != nil {
				logger.Warn("Idempotency release failed", zap.Error(err))
			}
			return
		}
		resp := cache.IdempotentResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err := store.Complete(bg, key, resp); err != nil {
			logger.Warn("Idempotency store failed", zap.Error(err))
		}
	}
}
