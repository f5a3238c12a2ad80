package identity

import (
	"errors"

	"github.com/garments-erp/backend/internal/domain/shared"
)

var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrAccountLocked      = shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact an administrator")
	ErrAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	ErrUserNotFound       = shared.NewDomainError("USER_NOT_FOUND", "User not found")
	ErrRoleNotFound       = shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
	ErrPermissionNotFound = shared.NewDomainError("PERMISSION_NOT_FOUND", "Permission not found")
	ErrDuplicateUsername  = shared.NewDomainError("DUPLICATE_USERNAME", "Username is already taken")
	ErrDuplicateEmail     = shared.NewDomainError("DUPLICATE_EMAIL", "Email is already registered")
	ErrDuplicateRole      = shared.NewDomainError("DUPLICATE_ROLE", "A role with this name already exists")
	ErrDuplicatePerm      = shared.NewDomainError("DUPLICATE_PERMISSION", "Permission already exists for this resource and action")
	ErrAdminExists        = shared.NewDomainError("ADMIN_ALREADY_EXISTS", "An administrator account already exists")
	ErrRolesNotSeeded     = shared.NewDomainError("ROLES_NOT_SEEDED", "Built-in roles are missing; run the permission seeder first")
	ErrSystemRole         = shared.NewDomainError("SYSTEM_ROLE", "Built-in roles cannot be renamed or disabled")
	ErrTokenExpired       = shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	ErrTokenInvalid       = shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	ErrTokenRevoked       = shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	ErrTokenMaxRefresh    = shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
)

func internalError(message string) *shared.DomainError {
	return shared.NewDomainError("INTERNAL_ERROR", message)
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
