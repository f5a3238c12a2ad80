package handler

import (
	"context"

	"github.com/garments-erp/backend/internal/application/identity"
	domainIdentity "github.com/garments-erp/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserService is what UserHandler needs from identity.UserService
type UserService interface {
	List(ctx context.Context, filter domainIdentity.UserFilter) (*identity.UserListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error)
	Activate(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error)
	Unlock(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error)
	ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error
	AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (*identity.UserDTO, error)
}

// UserHandler handles user administration
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsersRequest filters the user listing
type ListUsersRequest struct {
	Keyword  string `form:"keyword" binding:"max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive locked"`
	RoleID   string `form:"role_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ResetPasswordRequest sets a new password for a user
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// AssignRolesRequest replaces the roles of a user
type AssignRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required,min=1"`
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        keyword query string false "Username, email or name"
// @Param        status query string false "active, inactive or locked"
// @Param        role_id query string false "Role ID"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]identity.UserDTO,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := domainIdentity.NewUserFilter()
	filter.Keyword = req.Keyword
	if req.Status != "" {
		status := domainIdentity.UserStatus(req.Status)
		filter.Status = &status
	}
	if req.RoleID != "" {
		roleID := uuid.MustParse(req.RoleID)
		filter.RoleID = &roleID
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	result, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	h.withUser(c, h.userService.GetByID)
}

// Activate godoc
// @Summary      Activate a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/activate [patch]
func (h *UserHandler) Activate(c *gin.Context) {
	h.withUser(c, h.userService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a user
// @Description  Deactivated users cannot log in and their tokens are revoked
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [patch]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.withUser(c, h.userService.Deactivate)
}

// Unlock godoc
// @Summary      Unlock a user
// @Description  Clears a lockout caused by failed logins
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/unlock [patch]
func (h *UserHandler) Unlock(c *gin.Context) {
	h.withUser(c, h.userService.Unlock)
}

func (h *UserHandler) withUser(c *gin.Context, op func(context.Context, uuid.UUID) (*identity.UserDTO, error)) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ResetPassword godoc
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} dto.Response{data=MessageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ResetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageResponse{Message: "Password reset successfully"})
}

// AssignRoles godoc
// @Summary      Replace a user's roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body AssignRolesRequest true "Role IDs"
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/roles [put]
func (h *UserHandler) AssignRoles(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AssignRolesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.AssignRoles(c.Request.Context(), id, req.RoleIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
