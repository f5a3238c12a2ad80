package handler

import (
	"context"

	"github.com/garments-erp/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PermissionService is what PermissionHandler needs from identity.PermissionService
type PermissionService interface {
	List(ctx context.Context, activeOnly bool) ([]identity.PermissionDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identity.PermissionDTO, error)
	Create(ctx context.Context, input identity.CreatePermissionInput) (*identity.PermissionDTO, error)
	Update(ctx context.Context, input identity.UpdatePermissionInput) (*identity.PermissionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UserPermissions(ctx context.Context, userID uuid.UUID) ([]identity.PermissionDTO, error)
	GrantToUser(ctx context.Context, userID, permissionID uuid.UUID) error
	RevokeFromUser(ctx context.Context, userID, permissionID uuid.UUID) error
	Check(ctx context.Context, userID uuid.UUID, resource, action string) (*identity.PermissionCheckResult, error)
	EffectivePermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// PermissionHandler handles permission administration and checks
type PermissionHandler struct {
	BaseHandler
	permissionService PermissionService
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(permissionService PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// CreatePermissionRequest represents a request to create a permission
type CreatePermissionRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"View Reports"`
	Resource    string `json:"resource" binding:"required,max=50" example:"Report"`
	Action      string `json:"action" binding:"required,max=50" example:"View"`
	Description string `json:"description" binding:"max=500"`
}

// UpdatePermissionRequest represents a request to update a permission
type UpdatePermissionRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	IsActive    *bool  `json:"is_active" binding:"required"`
}

// CheckPermissionRequest asks whether a user holds resource:action
type CheckPermissionRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Resource string    `json:"resource" binding:"required"`
	Action   string    `json:"action" binding:"required"`
}

// List godoc
// @Summary      List permissions
// @Tags         permissions
// @Produce      json
// @Param        active_only query bool false "Only active permissions"
// @Success      200 {object} dto.Response{data=[]identity.PermissionDTO}
// @Security     BearerAuth
// @Router       /permissions [get]
func (h *PermissionHandler) List(c *gin.Context) {
	perms, err := h.permissionService.List(c.Request.Context(), c.Query("active_only") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, perms)
}

// GetByID godoc
// @Summary      Get a permission
// @Tags         permissions
// @Produce      json
// @Param        id path string true "Permission ID"
// @Success      200 {object} dto.Response{data=identity.PermissionDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/{id} [get]
func (h *PermissionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	perm, err := h.permissionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, perm)
}

// Create godoc
// @Summary      Create a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        request body CreatePermissionRequest true "Permission"
// @Success      201 {object} dto.Response{data=identity.PermissionDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions [post]
func (h *PermissionHandler) Create(c *gin.Context) {
	var req CreatePermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	perm, err := h.permissionService.Create(c.Request.Context(), identity.CreatePermissionInput{
		Name:        req.Name,
		Resource:    req.Resource,
		Action:      req.Action,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, perm)
}

// Update godoc
// @Summary      Update a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Permission ID"
// @Param        request body UpdatePermissionRequest true "Permission"
// @Success      200 {object} dto.Response{data=identity.PermissionDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/{id} [put]
func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	perm, err := h.permissionService.Update(c.Request.Context(), identity.UpdatePermissionInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    *req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, perm)
}

// Delete godoc
// @Summary      Delete a permission
// @Tags         permissions
// @Param        id path string true "Permission ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/{id} [delete]
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.permissionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UserPermissions godoc
// @Summary      Direct permissions of a user
// @Tags         permissions
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=[]identity.PermissionDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/users/{userId} [get]
func (h *PermissionHandler) UserPermissions(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "userId")
	if !ok {
		return
	}
	perms, err := h.permissionService.UserPermissions(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, perms)
}

// EffectivePermissions godoc
// @Summary      Effective permission codes of a user
// @Description  Direct grants merged with grants of the user's active roles
// @Tags         permissions
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=[]string}
// @Security     BearerAuth
// @Router       /permissions/users/{userId}/effective [get]
func (h *PermissionHandler) EffectivePermissions(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "userId")
	if !ok {
		return
	}
	codes, err := h.permissionService.EffectivePermissions(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, codes)
}

// Grant godoc
// @Summary      Grant a permission directly to a user
// @Tags         permissions
// @Param        userId path string true "User ID"
// @Param        permissionId path string true "Permission ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/users/{userId}/{permissionId} [post]
func (h *PermissionHandler) Grant(c *gin.Context) {
	h.withGrant(c, h.permissionService.GrantToUser)
}

// Revoke godoc
// @Summary      Revoke a direct permission from a user
// @Tags         permissions
// @Param        userId path string true "User ID"
// @Param        permissionId path string true "Permission ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/users/{userId}/{permissionId} [delete]
func (h *PermissionHandler) Revoke(c *gin.Context) {
	h.withGrant(c, h.permissionService.RevokeFromUser)
}

func (h *PermissionHandler) withGrant(c *gin.Context, op func(ctx context.Context, userID, permissionID uuid.UUID) error) {
	userID, ok := h.parseIDParam(c, "userId")
	if !ok {
		return
	}
	permissionID, ok := h.parseIDParam(c, "permissionId")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), userID, permissionID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Check godoc
// @Summary      Check a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        request body CheckPermissionRequest true "Check"
// @Success      200 {object} dto.Response{data=identity.PermissionCheckResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /permissions/check [post]
func (h *PermissionHandler) Check(c *gin.Context) {
	var req CheckPermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.permissionService.Check(c.Request.Context(), req.UserID, req.Resource, req.Action)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
