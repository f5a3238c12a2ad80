package handler

import (
	"context"

	"github.com/garments-erp/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoleService is what RoleHandler needs from identity.RoleService
type RoleService interface {
	List(ctx context.Context) ([]identity.RoleDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identity.RoleDTO, error)
	Create(ctx context.Context, input identity.CreateRoleInput) (*identity.RoleDTO, error)
	Update(ctx context.Context, input identity.UpdateRoleInput) (*identity.RoleDTO, error)
	Enable(ctx context.Context, id uuid.UUID) (*identity.RoleDTO, error)
	Disable(ctx context.Context, id uuid.UUID) (*identity.RoleDTO, error)
	Permissions(ctx context.Context, id uuid.UUID) ([]identity.PermissionDTO, error)
	SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (*identity.RoleDTO, error)
}

// RoleHandler handles role administration
type RoleHandler struct {
	BaseHandler
	roleService RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// CreateRoleRequest represents a request to create a role
type CreateRoleRequest struct {
	Name          string      `json:"name" binding:"required,min=2,max=50" example:"Accountant"`
	Description   string      `json:"description" binding:"max=200"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// UpdateRoleRequest represents a request to rename or redescribe a role
type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=200"`
}

// SetPermissionsRequest replaces the permissions of a role
type SetPermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permission_ids" binding:"required"`
}

// List godoc
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.RoleDTO}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// GetByID godoc
// @Summary      Get a role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=identity.RoleDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id} [get]
func (h *RoleHandler) GetByID(c *gin.Context) {
	h.withRole(c, h.roleService.GetByID)
}

// Create godoc
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request body CreateRoleRequest true "Role"
// @Success      201 {object} dto.Response{data=identity.RoleDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), identity.CreateRoleInput{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// Update godoc
// @Summary      Update a role
// @Description  System roles cannot be renamed
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        request body UpdateRoleRequest true "Role"
// @Success      200 {object} dto.Response{data=identity.RoleDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), identity.UpdateRoleInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Enable godoc
// @Summary      Enable a role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=identity.RoleDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id}/enable [patch]
func (h *RoleHandler) Enable(c *gin.Context) {
	h.withRole(c, h.roleService.Enable)
}

// Disable godoc
// @Summary      Disable a role
// @Description  Permissions of a disabled role stop counting for its users
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=identity.RoleDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id}/disable [patch]
func (h *RoleHandler) Disable(c *gin.Context) {
	h.withRole(c, h.roleService.Disable)
}

func (h *RoleHandler) withRole(c *gin.Context, op func(context.Context, uuid.UUID) (*identity.RoleDTO, error)) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	role, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Permissions godoc
// @Summary      Permissions of a role
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} dto.Response{data=[]identity.PermissionDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id}/permissions [get]
func (h *RoleHandler) Permissions(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	perms, err := h.roleService.Permissions(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, perms)
}

// SetPermissions godoc
// @Summary      Replace the permissions of a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        request body SetPermissionsRequest true "Permission IDs"
// @Success      200 {object} dto.Response{data=identity.RoleDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetPermissionsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.SetPermissions(c.Request.Context(), id, req.PermissionIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}
