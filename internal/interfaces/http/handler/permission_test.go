package handler

import (
	"net/http"
	"testing"

	"github.com/garments-erp/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPermissionRouter() (*gin.Engine, *MockPermissionService) {
	svc := new(MockPermissionService)
	h := NewPermissionHandler(svc)

	r := newTestRouter(true)
	g := r.Group("/api/v1/permissions")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/check", h.Check)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/users/:userId", h.UserPermissions)
	g.GET("/users/:userId/effective", h.EffectivePermissions)
	g.POST("/users/:userId/:permissionId", h.Grant)
	g.DELETE("/users/:userId/:permissionId", h.Revoke)
	return r, svc
}

func TestPermissionHandler_List(t *testing.T) {
	for _, tc := range []struct {
		query      string
		activeOnly bool
	}{
		{"", false},
		{"?active_only=true", true},
	} {
		r, svc := setupPermissionRouter()
		svc.On("List", mock.Anything, tc.activeOnly).Return([]identity.PermissionDTO{}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/permissions"+tc.query, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	}
}

func TestPermissionHandler_CreateUpdateDelete(t *testing.T) {
	id := uuid.New()

	t.Run("create", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("Create", mock.Anything, identity.CreatePermissionInput{Name: "Export Journal", Resource: "JournalEntry", Action: "Export"}).
			Return(&identity.PermissionDTO{ID: id, Code: "JournalEntry:Export"}, nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/permissions", CreatePermissionRequest{Name: "Export Journal", Resource: "JournalEntry", Action: "Export"})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("create duplicate", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, identity.ErrDuplicatePerm)

		rec := doRequest(r, http.MethodPost, "/api/v1/permissions", CreatePermissionRequest{Name: "x", Resource: "Category", Action: "View"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("update requires is_active", func(t *testing.T) {
		r, _ := setupPermissionRouter()

		rec := doRequest(r, http.MethodPut, "/api/v1/permissions/"+id.String(), `{"name":"x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("Update", mock.Anything, identity.UpdatePermissionInput{ID: id, Name: "x", IsActive: false}).
			Return(&identity.PermissionDTO{ID: id}, nil)

		rec := doRequest(r, http.MethodPut, "/api/v1/permissions/"+id.String(), `{"name":"x","is_active":false}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("Delete", mock.Anything, id).Return(nil)

		rec := doRequest(r, http.MethodDelete, "/api/v1/permissions/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestPermissionHandler_UserGrants(t *testing.T) {
	userID := uuid.New()
	permID := uuid.New()

	t.Run("grant", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("GrantToUser", mock.Anything, userID, permID).Return(nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/permissions/users/"+userID.String()+"/"+permID.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("revoke unknown permission", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("RevokeFromUser", mock.Anything, userID, permID).Return(identity.ErrPermissionNotFound)

		rec := doRequest(r, http.MethodDelete, "/api/v1/permissions/users/"+userID.String()+"/"+permID.String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad permission id", func(t *testing.T) {
		r, _ := setupPermissionRouter()

		rec := doRequest(r, http.MethodPost, "/api/v1/permissions/users/"+userID.String()+"/nope", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("effective", func(t *testing.T) {
		r, svc := setupPermissionRouter()
		svc.On("EffectivePermissions", mock.Anything, userID).Return([]string{"Category:View", "TrialBalance:View"}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/permissions/users/"+userID.String()+"/effective", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []string
		decodeData(t, rec, &got)
		assert.Contains(t, got, "TrialBalance:View")
	})
}

func TestPermissionHandler_Check(t *testing.T) {
	userID := uuid.New()
	r, svc := setupPermissionRouter()
	svc.On("Check", mock.Anything, userID, "JournalEntry", "Approve").
		Return(&identity.PermissionCheckResult{UserID: userID, Resource: "JournalEntry", Action: "Approve", HasPermission: true}, nil)

	rec := doRequest(r, http.MethodPost, "/api/v1/permissions/check", CheckPermissionRequest{UserID: userID, Resource: "JournalEntry", Action: "Approve"})

	require.Equal(t, http.StatusOK, rec.Code)
	var got identity.PermissionCheckResult
	decodeData(t, rec, &got)
	assert.True(t, got.HasPermission)
}
