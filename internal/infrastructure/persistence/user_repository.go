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
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// Create inserts the user and its role links
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.UserModelFromDomain(user)).Error; err != nil {
			return translateError(err)
		}
		return insertUserRoles(tx, user)
	})
}

// Update saves every column of an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := conn(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUsername finds a user by username, ignoring case
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	return r.findOne(ctx, "LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))
}

// FindByEmail finds a user by email, ignoring case
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *GormUserRepository) findOne(ctx context.Context, query string, arg any) (*identity.User, error) {
	db := conn(ctx, r.db)
	var model models.UserModel
	if err := db.Where(query, arg).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	user := model.ToDomain()
	if err := loadUserRoles(db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindAll returns a page of users ordered by username
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	db := conn(ctx, r.db)
	query := db.Model(&models.UserModel{})

	if filter.Keyword != "" {
		pattern := likePattern(filter.Keyword)
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RoleID != nil {
		query = query.Where("id IN (?)",
			db.Model(&models.UserRoleModel{}).Select("user_id").Where("role_id = ?", *filter.RoleID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []models.UserModel
	if err := query.Order("username ASC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, len(userModels))
	for i := range userModels {
		users[i] = userModels[i].ToDomain()
		if err := loadUserRoles(db, users[i]); err != nil {
			return nil, 0, err
		}
	}
	return users, total, nil
}

// ExistsByUsername checks if a username already exists
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))
}

// ExistsByEmail checks if an email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	return r.exists(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *GormUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.UserModel{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveUserRoles replaces the user's role links
func (r *GormUserRepository) SaveUserRoles(ctx context.Context, user *identity.User) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		return insertUserRoles(tx, user)
	})
}

func insertUserRoles(tx *gorm.DB, user *identity.User) error {
	if len(user.RoleIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	links := make([]models.UserRoleModel, len(user.RoleIDs))
	for i, roleID := range user.RoleIDs {
		links[i] = models.UserRoleModel{UserID: user.ID, RoleID: roleID, AssignedAt: now}
	}
	return tx.Create(&links).Error
}

func loadUserRoles(db *gorm.DB, user *identity.User) error {
	var roleIDs []uuid.UUID
	if err := db.Model(&models.UserRoleModel{}).
		Where("user_id = ?", user.ID).
		Order("assigned_at ASC").
		Pluck("role_id", &roleIDs).Error; err != nil {
		return err
	}
	if roleIDs != nil {
		user.RoleIDs = roleIDs
	}
	return nil
}
