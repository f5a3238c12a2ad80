package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

type MockPermissionChecker struct {
	mock.Mock
}

func (m *MockPermissionChecker) HasPermission(ctx context.Context, userID uuid.UUID, resource, action string) (bool, error) {
	args := m.Called(ctx, userID, resource, action)
	return args.Bool(0), args.Error(1)
}

func TestRequirePermission(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	serve := func(checker PermissionChecker, token string) *httptest.ResponseRecorder {
		router := gin.New()
		if token != "" {
			router.Use(JWTAuthMiddleware(svc, nil))
		}
		guard := NewPermissionGuard(checker, zaptest.NewLogger(t))
		router.DELETE("/api/v1/categories/:id", guard.Require("Category", "Delete"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+uuid.NewString(), nil)
		if token != "" {
			req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no claims is unauthorized", func(t *testing.T) {
		checker := new(MockPermissionChecker)

		rec := serve(checker, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, rec).Code)
		checker.AssertNotCalled(t, "HasPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("token permission is a fast path", func(t *testing.T) {
		checker := new(MockPermissionChecker)
		token, _ := issueToken(t, svc, "category:delete")

		rec := serve(checker, token)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		checker.AssertNotCalled(t, "HasPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("checker grants", func(t *testing.T) {
		checker := new(MockPermissionChecker)
		token, userID := issueToken(t, svc)
		checker.On("HasPermission", mock.Anything, userID, "Category", "Delete").Return(true, nil)

		rec := serve(checker, token)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		checker.AssertExpectations(t)
	})

	t.Run("checker denies", func(t *testing.T) {
		checker := new(MockPermissionChecker)
		token, userID := issueToken(t, svc, "category:view")
		checker.On("HasPermission", mock.Anything, userID, "Category", "Delete").Return(false, nil)

		rec := serve(checker, token)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		errInfo := decodeError(t, rec)
		assert.Equal(t, dto.ErrCodeForbidden, errInfo.Code)
		assert.Equal(t, "Access denied: insufficient permissions", errInfo.Message)
	})

	t.Run("checker failure is internal error", func(t *testing.T) {
		checker := new(MockPermissionChecker)
		token, userID := issueToken(t, svc)
		checker.On("HasPermission", mock.Anything, userID, "Category", "Delete").Return(false, errors.New("db down"))

		rec := serve(checker, token)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, dto.ErrCodeInternal, decodeError(t, rec).Code)
	})
}
