package middleware

import (
	"context"
	"net/http"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionChecker answers whether a user holds resource/action right now
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID uuid.UUID, resource, action string) (bool, error)
}

// PermissionGuard builds RequirePermission handlers sharing one checker
type PermissionGuard struct {
	checker PermissionChecker
	logger  *zap.Logger
}

func NewPermissionGuard(checker PermissionChecker, logger *zap.Logger) *PermissionGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionGuard{checker: checker, logger: logger}
}

// Require is shorthand for RequirePermission with the guard's checker
func (g *PermissionGuard) Require(resource, action string) gin.HandlerFunc {
	return RequirePermission(g.checker, resource, action, g.logger)
}

// RequirePermission rejects requests whose user lacks resource/action.
// Codes embedded in the token are trusted first; otherwise checker decides.
//
//	no claims     -> 401 UNAUTHORIZED
//	denied        -> 403 FORBIDDEN
//	checker error -> 500 INTERNAL_ERROR
func RequirePermission(checker PermissionChecker, resource, action string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	code := identity.PermissionCode(resource, action)

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if claims.HasPermission(code) {
			c.Next()
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		allowed, err := checker.HasPermission(c.Request.Context(), userID, resource, action)
		if err != nil {
			logger.Error("Permission check failed",
				zap.String("user_id", claims.UserID),
				zap.String("permission", code),
				zap.Error(err),
			)
			abortWith(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Failed to check permissions")
			return
		}
		if !allowed {
			logger.Warn("Permission denied",
				zap.String("user_id", claims.UserID),
				zap.String("permission", code),
				zap.String("path", c.FullPath()),
			)
			abortWith(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

func abortWith(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
