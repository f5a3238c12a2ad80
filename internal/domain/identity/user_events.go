package identity

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeUser = "User"
	AggregateTypeRole = "Role"
)

// Identity domain event types
const (
	EventTypeUserCreated            = "UserCreated"
	EventTypeUserPasswordChanged    = "UserPasswordChanged"
	EventTypeUserRolesChanged       = "UserRolesChanged"
	EventTypeRolePermissionsChanged = "RolePermissionsChanged"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Email:           user.Email,
	}
}

// UserPasswordChangedEvent is published when a user's password is changed
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Username  string    `json:"username"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID),
		Username:        user.Username,
		ChangedAt:       time.Now().UTC(),
	}
}

// UserRolesChangedEvent is published when role membership of a user changes
type UserRolesChangedEvent struct {
	shared.BaseDomainEvent
	RoleIDs []uuid.UUID `json:"role_ids"`
}

// NewUserRolesChangedEvent creates a new UserRolesChangedEvent
func NewUserRolesChangedEvent(user *User) *UserRolesChangedEvent {
	roleIDs := make([]uuid.UUID, len(user.RoleIDs))
	copy(roleIDs, user.RoleIDs)
	return &UserRolesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRolesChanged, AggregateTypeUser, user.ID),
		RoleIDs:         roleIDs,
	}
}

// RolePermissionsChangedEvent is published when a role gains or loses a permission
type RolePermissionsChangedEvent struct {
	shared.BaseDomainEvent
	RoleName string `json:"role_name"`
}

// NewRolePermissionsChangedEvent creates a new RolePermissionsChangedEvent
func NewRolePermissionsChangedEvent(role *Role) *RolePermissionsChangedEvent {
	return &RolePermissionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionsChanged, AggregateTypeRole, role.ID),
		RoleName:        role.Name,
	}
}
