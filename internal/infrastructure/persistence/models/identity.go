package models

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username          string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email             string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash      string              `gorm:"type:varchar(255);not null"`
	FirstName         string              `gorm:"type:varchar(100)"`
	LastName          string              `gorm:"type:varchar(100)"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a User; RoleIDs are loaded by the repository.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Status:            m.Status,
		RoleIDs:           make([]uuid.UUID, 0),
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
}

// UserModelFromDomain creates a model from a User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:          u.Username,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Status:            u.Status,
		LastLoginAt:       u.LastLoginAt,
		LastLoginIP:       u.LastLoginIP,
		FailedAttempts:    u.FailedAttempts,
		LockedUntil:       u.LockedUntil,
		PasswordChangedAt: u.PasswordChangedAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// UserRoleModel links users to roles.
type UserRoleModel struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// RoleModel is the persistence model for the Role domain entity.
type RoleModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(200)"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the model to a Role; permissions are loaded by the repository.
func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		IsActive:          m.IsActive,
		PermissionIDs:     make([]uuid.UUID, 0),
		Permissions:       make([]identity.Permission, 0),
	}
}

// RoleModelFromDomain creates a model from a Role
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}

// PermissionModel is the persistence model for a Permission.
type PermissionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Resource    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_resource_action,priority:1"`
	Action      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_permissions_resource_action,priority:2"`
	Description string    `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}

// ToDomain converts the model to a Permission
func (m *PermissionModel) ToDomain() *identity.Permission {
	return &identity.Permission{
		ID:          m.ID,
		Name:        m.Name,
		Resource:    m.Resource,
		Action:      m.Action,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// PermissionModelFromDomain creates a model from a Permission
func PermissionModelFromDomain(p *identity.Permission) *PermissionModel {
	return &PermissionModel{
		ID:          p.ID,
		Name:        p.Name,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// RolePermissionModel links roles to permissions.
type RolePermissionModel struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	GrantedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// UserPermissionModel grants a permission straight to a user.
type UserPermissionModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	GrantedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserPermissionModel) TableName() string {
	return "user_permissions"
}
