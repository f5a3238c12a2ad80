package handler

import (
	"net/http"
	"testing"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCategoryRouter(authenticated bool) (*gin.Engine, *MockCategoryService) {
	svc := new(MockCategoryService)
	h := NewCategoryHandler(svc)

	r := newTestRouter(authenticated)
	g := r.Group("/api/v1/categories")
	g.GET("", h.GetAll)
	g.POST("", h.Create)
	g.GET("/search", h.Search)
	g.GET("/type/:type", h.GetByType)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/usage", h.Usage)
	g.PATCH("/:id/toggle-status", h.ToggleStatus)
	return r, svc
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("accepts the type by name and records the user", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in financeapp.CategoryInput) bool {
			return in.Name == "Fabric Purchase" && in.Type == finance.CategoryTypeDebit &&
				in.UserID != nil && *in.UserID == testUserID
		})).Return(&financeapp.CategoryDTO{ID: uuid.New(), Name: "Fabric Purchase", Type: "Debit", TypeValue: 1, IsActive: true}, nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/categories", CategoryRequest{Name: "Fabric Purchase", Type: "debit"})

		require.Equal(t, http.StatusCreated, rec.Code)
		var got financeapp.CategoryDTO
		decodeData(t, rec, &got)
		assert.Equal(t, "Debit", got.Type)
		svc.AssertExpectations(t)
	})

	t.Run("accepts the ordinal", func(t *testing.T) {
		r, svc := setupCategoryRouter(false)
		svc.On("Create", mock.Anything, financeapp.CategoryInput{Name: "Export Sales", Type: finance.CategoryTypeCredit}).
			Return(&financeapp.CategoryDTO{Name: "Export Sales"}, nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/categories", CategoryRequest{Name: "Export Sales", Type: "0"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown type", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)

		rec := doRequest(r, http.MethodPost, "/api/v1/categories", CategoryRequest{Name: "Misc", Type: "Sideways"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_CATEGORY_TYPE", errorCode(t, rec))
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("name too long", func(t *testing.T) {
		r, _ := setupCategoryRouter(true)
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}

		rec := doRequest(r, http.MethodPost, "/api/v1/categories", CategoryRequest{Name: string(long), Type: "Debit"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("DUPLICATE_CATEGORY", "A category with this name already exists for this type"))

		rec := doRequest(r, http.MethodPost, "/api/v1/categories", CategoryRequest{Name: "Rent", Type: "Debit"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCategoryHandler_Queries(t *testing.T) {
	t.Run("by type", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("GetByType", mock.Anything, finance.CategoryTypeCredit).Return([]financeapp.CategoryDTO{{Name: "Export Sales"}}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/categories/type/Credit", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("by bad type", func(t *testing.T) {
		r, _ := setupCategoryRouter(true)

		rec := doRequest(r, http.MethodGet, "/api/v1/categories/type/7", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("search", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("Search", mock.Anything, "fab").Return([]financeapp.CategoryDTO{}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/categories/search?searchTerm=fab", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found"))

		rec := doRequest(r, http.MethodGet, "/api/v1/categories/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("usage", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		id := uuid.New()
		svc.On("UsageCount", mock.Anything, id).Return(&financeapp.CategoryUsage{CategoryID: id, UsageCount: 3}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/categories/"+id.String()+"/usage", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got financeapp.CategoryUsage
		decodeData(t, rec, &got)
		assert.Equal(t, int64(3), got.UsageCount)
		assert.False(t, got.CanDelete)
	})
}

func TestCategoryHandler_DeleteAndToggle(t *testing.T) {
	id := uuid.New()

	t.Run("delete", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("Delete", mock.Anything, id, &testUserID).Return(nil)

		rec := doRequest(r, http.MethodDelete, "/api/v1/categories/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("delete in use", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("Delete", mock.Anything, id, mock.Anything).
			Return(shared.NewDomainError("CATEGORY_IN_USE", "Category is used by existing transactions"))

		rec := doRequest(r, http.MethodDelete, "/api/v1/categories/"+id.String(), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "CATEGORY_IN_USE", errorCode(t, rec))
	})

	t.Run("toggle", func(t *testing.T) {
		r, svc := setupCategoryRouter(true)
		svc.On("ToggleActive", mock.Anything, id, &testUserID).Return(&financeapp.CategoryDTO{ID: id, IsActive: false}, nil)

		rec := doRequest(r, http.MethodPatch, "/api/v1/categories/"+id.String()+"/toggle-status", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got financeapp.CategoryDTO
		decodeData(t, rec, &got)
		assert.False(t, got.IsActive)
	})
}
