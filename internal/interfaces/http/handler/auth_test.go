package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/application/identity"
	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(authenticated bool) (*gin.Engine, *MockAuthService) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	r := newTestRouter(authenticated)
	g := r.Group("/api/v1/auth")
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
	g.POST("/setup-admin", h.SetupAdmin)
	g.POST("/refresh", h.RefreshToken)
	g.POST("/logout", h.Logout)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/change-password", h.ChangePassword)
	g.GET("/roles", h.ListRoles)
	return r, svc
}

func sampleAuthResult() *identity.AuthResult {
	return &identity.AuthResult{
		AccessToken:          "access.jwt",
		RefreshToken:         "refresh.jwt",
		AccessTokenExpiresAt: time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC),
		TokenType:            "Bearer",
		User:                 identity.UserDTO{ID: testUserID, Username: "admin", Roles: []string{"Admin"}},
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("Login", mock.Anything, mock.MatchedBy(func(in identity.LoginInput) bool {
			return in.Login == "admin" && in.Password == "Admin@12345" && in.IP != ""
		})).Return(sampleAuthResult(), nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "admin", Password: "Admin@12345"})

		require.Equal(t, http.StatusOK, rec.Code)
		var got identity.AuthResult
		decodeData(t, rec, &got)
		assert.Equal(t, "access.jwt", got.AccessToken)
		assert.Equal(t, "admin", got.User.Username)
		svc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("Login", mock.Anything, mock.Anything).Return(nil, identity.ErrInvalidCredentials)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "admin", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rec))
	})

	t.Run("locked account", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("Login", mock.Anything, mock.Anything).Return(nil, identity.ErrAccountLocked)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "admin", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "ACCOUNT_LOCKED", errorCode(t, rec))
	})

	t.Run("missing fields", func(t *testing.T) {
		r, svc := setupAuthRouter(false)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/login", `{"username":"ad"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, rec))
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	body := RegisterRequest{
		Username:  "rahim",
		Email:     "rahim@example.com",
		Password:  "Secret@123",
		FirstName: "Rahim",
		LastName:  "Uddin",
	}

	t.Run("created", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("Register", mock.Anything, body.toInput()).Return(sampleAuthResult(), nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/register", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, identity.ErrDuplicateEmail)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/register", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		r, _ := setupAuthRouter(false)
		weak := body
		weak.Password = "short"

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/register", weak)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("setup admin refused once an admin exists", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("SetupAdmin", mock.Anything, body.toInput()).Return(nil, identity.ErrAdminExists)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/setup-admin", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "ADMIN_ALREADY_EXISTS", errorCode(t, rec))
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("RefreshToken", mock.Anything, "refresh.jwt").Return(sampleAuthResult(), nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: "refresh.jwt"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("revoked", func(t *testing.T) {
		r, svc := setupAuthRouter(false)
		svc.On("RefreshToken", mock.Anything, "old.jwt").Return(nil, identity.ErrTokenRevoked)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: "old.jwt"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_REVOKED", errorCode(t, rec))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes access and refresh token", func(t *testing.T) {
		r, svc := setupAuthRouter(true)
		svc.On("Logout", mock.Anything, mock.MatchedBy(func(in identity.LogoutInput) bool {
			return in.AccessClaims != nil && in.AccessClaims.UserID == testUserID.String() && in.RefreshToken == "refresh.jwt"
		})).Return(nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/logout", LogoutRequest{RefreshToken: "refresh.jwt"})

		require.Equal(t, http.StatusOK, rec.Code)
		var got LogoutResponse
		decodeData(t, rec, &got)
		assert.Equal(t, "Logged out successfully", got.Message)
		svc.AssertExpectations(t)
	})

	t.Run("body is optional", func(t *testing.T) {
		r, svc := setupAuthRouter(true)
		svc.On("Logout", mock.Anything, mock.MatchedBy(func(in identity.LogoutInput) bool {
			return in.RefreshToken == ""
		})).Return(nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/logout", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r, svc := setupAuthRouter(false)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/logout", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		r, svc := setupAuthRouter(true)
		svc.On("GetProfile", mock.Anything, testUserID).Return(&identity.UserDTO{ID: testUserID, Username: "tester"}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/auth/profile", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got identity.UserDTO
		decodeData(t, rec, &got)
		assert.Equal(t, "tester", got.Username)
	})

	t.Run("get without token", func(t *testing.T) {
		r, _ := setupAuthRouter(false)

		rec := doRequest(r, http.MethodGet, "/api/v1/auth/profile", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		r, svc := setupAuthRouter(true)
		want := identity.UpdateProfileInput{UserID: testUserID, FirstName: "Karim", LastName: "Ali", Email: "karim@example.com"}
		svc.On("UpdateProfile", mock.Anything, want).Return(&identity.UserDTO{ID: testUserID, FirstName: "Karim"}, nil)

		rec := doRequest(r, http.MethodPut, "/api/v1/auth/profile", UpdateProfileRequest{FirstName: "Karim", LastName: "Ali", Email: "karim@example.com"})

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupAuthRouter(true)
		svc.On("ChangePassword", mock.Anything, identity.ChangePasswordInput{
			UserID:      testUserID,
			OldPassword: "Old@12345",
			NewPassword: "New@12345",
		}).Return(nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/change-password", ChangePasswordRequest{OldPassword: "Old@12345", NewPassword: "New@12345"})

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		r, svc := setupAuthRouter(true)
		svc.On("ChangePassword", mock.Anything, mock.Anything).Return(identity.ErrInvalidCredentials)

		rec := doRequest(r, http.MethodPost, "/api/v1/auth/change-password", ChangePasswordRequest{OldPassword: "nope", NewPassword: "New@12345"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_ListRoles(t *testing.T) {
	r, svc := setupAuthRouter(true)
	svc.On("ListRoles", mock.Anything).Return([]identity.RoleDTO{{Name: "Admin"}, {Name: "Accountant"}}, nil)

	rec := doRequest(r, http.MethodGet, "/api/v1/auth/roles", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []identity.RoleDTO
	decodeData(t, rec, &got)
	assert.Len(t, got, 2)
}
