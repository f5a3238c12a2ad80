package identity

import (
	"context"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role persistence operations
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *Role) error

	// Update updates an existing role
	Update(ctx context.Context, role *Role) error

	// FindByID finds a role by ID with its permissions loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByName finds a role by name (case-insensitive) with its permissions loaded
	FindByName(ctx context.Context, name string) (*Role, error)

	// FindAll returns every role ordered by name, permissions loaded
	FindAll(ctx context.Context) ([]*Role, error)

	// FindByIDs finds multiple roles by IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Role, error)

	// AddPermissions inserts the given role-permission links, skipping existing ones
	AddPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (int, error)

	// RemovePermission deletes a role-permission link
	RemovePermission(ctx context.Context, roleID, permissionID uuid.UUID) error

	// CountUsersWithRole counts how many users have this role
	CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error)
}

// PermissionRepository persists permissions and the direct user grants
type PermissionRepository interface {
	// Create creates a new permission
	Create(ctx context.Context, perm *Permission) error

	// Update updates name, description and active flag
	Update(ctx context.Context, perm *Permission) error

	// FindByID finds a permission by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Permission, error)

	// FindByResourceAction finds a permission by resource and action (case-insensitive)
	FindByResourceAction(ctx context.Context, resource, action string) (*Permission, error)

	// FindAll returns every permission ordered by resource then action
	FindAll(ctx context.Context) ([]*Permission, error)

	// FindDirectForUser returns active permissions granted straight to the user
	FindDirectForUser(ctx context.Context, userID uuid.UUID) ([]*Permission, error)

	// FindViaRolesForUser returns active permissions held through the user's active roles
	FindViaRolesForUser(ctx context.Context, userID uuid.UUID) ([]*Permission, error)

	// GrantToUser adds a direct user grant; it is a no-op when the grant exists
	GrantToUser(ctx context.Context, userID, permissionID uuid.UUID) error

	// RevokeFromUser removes a direct user grant
	RevokeFromUser(ctx context.Context, userID, permissionID uuid.UUID) error
}
