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

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)

// Create inserts the role and links its permissions
func (r *GormRoleRepository) Create(ctx context.Context, role *identity.Role) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.RoleModelFromDomain(role)).Error; err != nil {
			return translateError(err)
		}
		_, err := addRolePermissions(tx, role.ID, role.PermissionIDs)
		return err
	})
}

// Update saves name, description, active flag and version
func (r *GormRoleRepository) Update(ctx context.Context, role *identity.Role) error {
	result := conn(ctx, r.db).Model(&models.RoleModel{}).
		Where("id = ?", role.ID).
		Select("*").Omit("id", "created_at").
		Updates(models.RoleModelFromDomain(role))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a role by ID with its permissions loaded
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName finds a role by name, ignoring case
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	return r.findOne(ctx, "LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
}

func (r *GormRoleRepository) findOne(ctx context.Context, query string, arg any) (*identity.Role, error) {
	db := conn(ctx, r.db)
	var model models.RoleModel
	if err := db.Where(query, arg).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	role := model.ToDomain()
	if err := loadRolePermissions(db, role); err != nil {
		return nil, err
	}
	return role, nil
}

// FindAll returns every role ordered by name
func (r *GormRoleRepository) FindAll(ctx context.Context) ([]*identity.Role, error) {
	return r.findMany(conn(ctx, r.db).Order("name ASC"))
}

// FindByIDs finds multiple roles by IDs
func (r *GormRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	if len(ids) == 0 {
		return []*identity.Role{}, nil
	}
	return r.findMany(conn(ctx, r.db).Where("id IN ?", ids).Order("name ASC"))
}

func (r *GormRoleRepository) findMany(query *gorm.DB) ([]*identity.Role, error) {
	var roleModels []models.RoleModel
	if err := query.Find(&roleModels).Error; err != nil {
		return nil, err
	}
	roles := make([]*identity.Role, len(roleModels))
	for i := range roleModels {
		roles[i] = roleModels[i].ToDomain()
		if err := loadRolePermissions(query.Session(&gorm.Session{NewDB: true}), roles[i]); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

// AddPermissions links permissions to the role and reports how many links were new
func (r *GormRoleRepository) AddPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (int, error) {
	return addRolePermissions(conn(ctx, r.db), roleID, permissionIDs)
}

// RemovePermission deletes a role-permission link
func (r *GormRoleRepository) RemovePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	result := conn(ctx, r.db).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&models.RolePermissionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountUsersWithRole counts how many users have this role
func (r *GormRoleRepository) CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.UserRoleModel{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

func addRolePermissions(tx *gorm.DB, roleID uuid.UUID, permissionIDs []uuid.UUID) (int, error) {
	if len(permissionIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	links := make([]models.RolePermissionModel, len(permissionIDs))
	for i, id := range permissionIDs {
		links[i] = models.RolePermissionModel{RoleID: roleID, PermissionID: id, GrantedAt: now}
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func loadRolePermissions(db *gorm.DB, role *identity.Role) error {
	var permModels []models.PermissionModel
	if err := db.Model(&models.PermissionModel{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", role.ID).
		Order("permissions.resource ASC, permissions.action ASC").
		Find(&permModels).Error; err != nil {
		return err
	}
	for i := range permModels {
		role.PermissionIDs = append(role.PermissionIDs, permModels[i].ID)
		role.Permissions = append(role.Permissions, *permModels[i].ToDomain())
	}
	return nil
}
