package identity

import (
	"sort"
	"time"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Login    string // username or email
	Password string
	IP       string // Client IP for login tracking
}

// RegisterInput contains the input for self registration and admin setup
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by login, register, setup and refresh
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserDTO   `json:"user"`
}

// LogoutInput contains the tokens to revoke on logout
type LogoutInput struct {
	AccessClaims *auth.Claims
	RefreshToken string // optional
}

// UpdateProfileInput contains the editable profile fields
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	FullName    string      `json:"full_name"`
	Status      string      `json:"status"`
	Roles       []string    `json:"roles"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
	Permissions []string    `json:"permissions,omitempty"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// RoleDTO represents a role with its permission codes
type RoleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	IsSystem    bool      `json:"is_system"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// PermissionDTO represents a permission
type PermissionDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
}

// CreatePermissionInput contains input for creating a permission
type CreatePermissionInput struct {
	Name        string
	Resource    string
	Action      string
	Description string
}

// UpdatePermissionInput contains input for updating a permission
type UpdatePermissionInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
}

// CreateRoleInput contains input for creating a role
type CreateRoleInput struct {
	Name          string
	Description   string
	PermissionIDs []uuid.UUID
}

// UpdateRoleInput contains input for updating a role
type UpdateRoleInput struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// PermissionCheckResult answers a single resource/action check
type PermissionCheckResult struct {
	UserID        uuid.UUID `json:"user_id"`
	Resource      string    `json:"resource"`
	Action        string    `json:"action"`
	HasPermission bool      `json:"has_permission"`
}

// SeedSummary reports what the permission seeder changed
type SeedSummary struct {
	PermissionsCreated int `json:"permissions_created"`
	PermissionsUpdated int `json:"permissions_updated"`
	RolesCreated       int `json:"roles_created"`
	LinksCreated       int `json:"links_created"`
}

// Changed reports whether the seeder wrote anything
func (s SeedSummary) Changed() bool {
	return s.PermissionsCreated+s.PermissionsUpdated+s.RolesCreated+s.LinksCreated > 0
}

func toUserDTO(user *identity.User, roles []*identity.Role) UserDTO {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.IsActive {
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)

	roleIDs := make([]uuid.UUID, len(user.RoleIDs))
	copy(roleIDs, user.RoleIDs)

	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Status:      string(user.Status),
		Roles:       names,
		RoleIDs:     roleIDs,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func toRoleDTO(role *identity.Role) RoleDTO {
	codes := role.PermissionCodes()
	sort.Strings(codes)
	return RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		IsSystem:    role.IsSystemRole(),
		Permissions: codes,
		CreatedAt:   role.CreatedAt,
	}
}

func toPermissionDTO(p *identity.Permission) PermissionDTO {
	return PermissionDTO{
		ID:          p.ID,
		Name:        p.Name,
		Resource:    p.Resource,
		Action:      p.Action,
		Code:        p.Code(),
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

func toPermissionDTOs(perms []*identity.Permission) []PermissionDTO {
	out := make([]PermissionDTO, len(perms))
	for i, p := range perms {
		out[i] = toPermissionDTO(p)
	}
	return out
}
