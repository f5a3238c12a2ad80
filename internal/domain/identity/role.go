package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Built-in role names
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

var permissionPartRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Permission is a grantable right on a resource, e.g. JournalEntry/Approve
type Permission struct {
	ID          uuid.UUID
	Name        string
	Resource    string
	Action      string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// NewPermission creates an active permission
func NewPermission(name, resource, action, description string) (*Permission, error) {
	resource = strings.TrimSpace(resource)
	action = strings.TrimSpace(action)
	if err := validatePermissionPart("resource", resource, 100); err != nil {
		return nil, err
	}
	if err := validatePermissionPart("action", action, 50); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = action + " " + resource
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission name cannot exceed 100 characters")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission description cannot exceed 500 characters")
	}

	return &Permission{
		ID:          uuid.New(),
		Name:        name,
		Resource:    resource,
		Action:      action,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Code returns the lowercase resource:action form carried in tokens
func (p *Permission) Code() string {
	return PermissionCode(p.Resource, p.Action)
}

// Matches reports whether the permission covers resource/action, ignoring case
func (p *Permission) Matches(resource, action string) bool {
	return strings.EqualFold(p.Resource, resource) && strings.EqualFold(p.Action, action)
}

// Update changes the display fields; resource and action are immutable
func (p *Permission) Update(name, description string, active bool) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission name must be 1-100 characters")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission description cannot exceed 500 characters")
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.IsActive = active
	return nil
}

// PermissionCode builds the canonical permission code
func PermissionCode(resource, action string) string {
	return strings.ToLower(strings.TrimSpace(resource)) + ":" + strings.ToLower(strings.TrimSpace(action))
}

// Role groups permissions that are granted to users together
type Role struct {
	shared.BaseAggregateRoot
	Name          string
	Description   string
	IsActive      bool
	PermissionIDs []uuid.UUID // Stored in role_permissions
	Permissions   []Permission
}

// NewRole creates an active role
func NewRole(name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		IsActive:          true,
		PermissionIDs:     make([]uuid.UUID, 0),
		Permissions:       make([]Permission, 0),
	}, nil
}

// Update changes name and description
func (r *Role) Update(name, description string) error {
	if err := validateRoleName(name); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(name)
	r.Description = strings.TrimSpace(description)
	r.IncrementVersion()
	return nil
}

// Enable activates the role
func (r *Role) Enable() {
	r.IsActive = true
	r.IncrementVersion()
}

// Disable deactivates the role; its permissions stop counting for members
func (r *Role) Disable() {
	r.IsActive = false
	r.IncrementVersion()
}

// IsSystemRole reports whether the role is one of the built-in roles
func (r *Role) IsSystemRole() bool {
	switch r.Name {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// GrantPermission links a permission to the role; it returns false if already linked
func (r *Role) GrantPermission(perm *Permission) bool {
	if r.HasPermissionID(perm.ID) {
		return false
	}
	r.PermissionIDs = append(r.PermissionIDs, perm.ID)
	r.Permissions = append(r.Permissions, *perm)
	r.IncrementVersion()
	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
	return true
}

// RevokePermission removes a permission link
func (r *Role) RevokePermission(permissionID uuid.UUID) error {
	if !r.HasPermissionID(permissionID) {
		return shared.NewDomainError("PERMISSION_NOT_FOUND", "Role does not have this permission")
	}

	ids := make([]uuid.UUID, 0, len(r.PermissionIDs))
	for _, id := range r.PermissionIDs {
		if id != permissionID {
			ids = append(ids, id)
		}
	}
	perms := make([]Permission, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p.ID != permissionID {
			perms = append(perms, p)
		}
	}

	r.PermissionIDs = ids
	r.Permissions = perms
	r.IncrementVersion()
	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
	return nil
}

// HasPermissionID checks the role's permission links
func (r *Role) HasPermissionID(permissionID uuid.UUID) bool {
	for _, id := range r.PermissionIDs {
		if id == permissionID {
			return true
		}
	}
	return false
}

// PermissionCodes returns the codes of the role's active permissions
func (r *Role) PermissionCodes() []string {
	codes := make([]string, 0, len(r.Permissions))
	for i := range r.Permissions {
		if r.Permissions[i].IsActive {
			codes = append(codes, r.Permissions[i].Code())
		}
	}
	return codes
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}

func validatePermissionPart(field, value string, maxLen int) error {
	if value == "" {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission "+field+" cannot be empty")
	}
	if len(value) > maxLen {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission "+field+" is too long")
	}
	if !permissionPartRegex.MatchString(value) {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission "+field+" must start with a letter and contain only letters, digits and underscores")
	}
	return nil
}
