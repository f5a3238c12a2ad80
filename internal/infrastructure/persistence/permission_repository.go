package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPermissionRepository implements identity.PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)

// Create creates a new permission
func (r *GormPermissionRepository) Create(ctx context.Context, perm *identity.Permission) error {
	return translateError(conn(ctx, r.db).Create(models.PermissionModelFromDomain(perm)).Error)
}

// Update updates name, description and active flag
func (r *GormPermissionRepository) Update(ctx context.Context, perm *identity.Permission) error {
	result := conn(ctx, r.db).Model(&models.PermissionModel{}).
		Where("id = ?", perm.ID).
		Select("name", "description", "is_active").
		Updates(models.PermissionModelFromDomain(perm))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a permission by ID
func (r *GormPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Permission, error) {
	var model models.PermissionModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByResourceAction finds a permission by resource and action, ignoring case
func (r *GormPermissionRepository) FindByResourceAction(ctx context.Context, resource, action string) (*identity.Permission, error) {
	var model models.PermissionModel
	if err := conn(ctx, r.db).
		Where("LOWER(resource) = ? AND LOWER(action) = ?",
			strings.ToLower(strings.TrimSpace(resource)), strings.ToLower(strings.TrimSpace(action))).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every permission ordered by resource then action
func (r *GormPermissionRepository) FindAll(ctx context.Context) ([]*identity.Permission, error) {
	return r.find(conn(ctx, r.db).Model(&models.PermissionModel{}))
}

// FindDirectForUser returns active permissions granted straight to the user
func (r *GormPermissionRepository) FindDirectForUser(ctx context.Context, userID uuid.UUID) ([]*identity.Permission, error) {
	return r.find(conn(ctx, r.db).Model(&models.PermissionModel{}).
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ? AND permissions.is_active = ?", userID, true))
}

// FindViaRolesForUser returns active permissions held through the user's active roles
func (r *GormPermissionRepository) FindViaRolesForUser(ctx context.Context, userID uuid.UUID) ([]*identity.Permission, error) {
	return r.find(conn(ctx, r.db).Model(&models.PermissionModel{}).
		Distinct("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND roles.is_active = ? AND permissions.is_active = ?", userID, true, true))
}

func (r *GormPermissionRepository) find(query *gorm.DB) ([]*identity.Permission, error) {
	var permModels []models.PermissionModel
	if err := query.Order("permissions.resource ASC, permissions.action ASC").Find(&permModels).Error; err != nil {
		return nil, err
	}
	perms := make([]*identity.Permission, len(permModels))
	for i := range permModels {
		perms[i] = permModels[i].ToDomain()
	}
	return perms, nil
}

// GrantToUser adds a direct user grant; it is a no-op when the grant exists
func (r *GormPermissionRepository) GrantToUser(ctx context.Context, userID, permissionID uuid.UUID) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserPermissionModel{
		UserID:       userID,
		PermissionID: permissionID,
		GrantedAt:    time.Now().UTC(),
	}).Error
}

// RevokeFromUser removes a direct user grant
func (r *GormPermissionRepository) RevokeFromUser(ctx context.Context, userID, permissionID uuid.UUID) error {
	result := conn(ctx, r.db).
		Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&models.UserPermissionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
