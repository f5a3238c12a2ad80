package handler

import (
	"context"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryService is what CategoryHandler needs from finance.CategoryService
type CategoryService interface {
	GetAll(ctx context.Context) ([]financeapp.CategoryDTO, error)
	GetByType(ctx context.Context, categoryType finance.CategoryType) ([]financeapp.CategoryDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financeapp.CategoryDTO, error)
	Search(ctx context.Context, term string) ([]financeapp.CategoryDTO, error)
	Create(ctx context.Context, in financeapp.CategoryInput) (*financeapp.CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, in financeapp.CategoryInput) (*financeapp.CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*financeapp.CategoryDTO, error)
	UsageCount(ctx context.Context, id uuid.UUID) (*financeapp.CategoryUsage, error)
}

// CategoryHandler handles cash book category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CategoryRequest is the body of category create and update
// @Description Request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"Fabric Purchase"`
	Description string `json:"description" binding:"max=500" example:"Woven and knit fabric"`
	Type        string `json:"type" binding:"required" example:"Debit"` // Credit or Debit
}

func (h *CategoryHandler) input(c *gin.Context, req CategoryRequest) (financeapp.CategoryInput, bool) {
	categoryType, err := finance.ParseCategoryType(req.Type)
	if err != nil {
		h.HandleError(c, err)
		return financeapp.CategoryInput{}, false
	}
	return financeapp.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        categoryType,
		UserID:      optionalUserID(c),
	}, true
}

// GetAll godoc
// @Summary      List active categories
// @Description  Active categories ordered by type then name
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]financeapp.CategoryDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryService.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// GetByID godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response{data=financeapp.CategoryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// GetByType godoc
// @Summary      List categories of a type
// @Tags         categories
// @Produce      json
// @Param        type path string true "Credit, Debit, 0 or 1"
// @Success      200 {object} dto.Response{data=[]financeapp.CategoryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/type/{type} [get]
func (h *CategoryHandler) GetByType(c *gin.Context) {
	categoryType, err := finance.ParseCategoryType(c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	categories, err := h.categoryService.GetByType(c.Request.Context(), categoryType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Search godoc
// @Summary      Search categories
// @Description  Case-insensitive match on name or description. An empty term lists all active categories.
// @Tags         categories
// @Produce      json
// @Param        searchTerm query string false "Search term"
// @Success      200 {object} dto.Response{data=[]financeapp.CategoryDTO}
// @Security     BearerAuth
// @Router       /categories/search [get]
func (h *CategoryHandler) Search(c *gin.Context) {
	categories, err := h.categoryService.Search(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Usage godoc
// @Summary      Category usage
// @Description  Number of journal lines tagged with the category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response{data=financeapp.CategoryUsage}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id}/usage [get]
func (h *CategoryHandler) Usage(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	usage, err := h.categoryService.UsageCount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usage)
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CategoryRequest true "Category"
// @Success      201 {object} dto.Response{data=financeapp.CategoryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        request body CategoryRequest true "Category"
// @Success      200 {object} dto.Response{data=financeapp.CategoryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @Summary      Delete a category
// @Description  Soft delete. Categories used by journal lines cannot be deleted.
// @Tags         categories
// @Param        id path string true "Category ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id, optionalUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ToggleStatus godoc
// @Summary      Toggle a category active flag
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response{data=financeapp.CategoryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id}/toggle-status [patch]
func (h *CategoryHandler) ToggleStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryService.ToggleActive(c.Request.Context(), id, optionalUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}
