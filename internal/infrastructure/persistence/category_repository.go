package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements finance.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

var _ finance.CategoryRepository = (*GormCategoryRepository)(nil)

// FindByID finds a category by ID regardless of its active flag
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, categoryError(err)
	}
	return model.ToDomain(), nil
}

// FindAllActive returns active categories ordered by type then name
func (r *GormCategoryRepository) FindAllActive(ctx context.Context) ([]*finance.Category, error) {
	return r.find(r.active(ctx).Order("type ASC, name ASC"))
}

// FindByType returns active categories of one type ordered by name
func (r *GormCategoryRepository) FindByType(ctx context.Context, categoryType finance.CategoryType) ([]*finance.Category, error) {
	return r.find(r.active(ctx).Where("type = ?", categoryType).Order("name ASC"))
}

// Search matches active categories by name or description, ignoring case
func (r *GormCategoryRepository) Search(ctx context.Context, term string) ([]*finance.Category, error) {
	pattern := likePattern(term)
	return r.find(r.active(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("type ASC, name ASC"))
}

// FindActiveByName finds an active category by name and type, ignoring case
func (r *GormCategoryRepository) FindActiveByName(ctx context.Context, name string, categoryType finance.CategoryType) (*finance.Category, error) {
	var model models.CategoryModel
	if err := r.active(ctx).
		Where("LOWER(name) = ? AND type = ?", strings.ToLower(strings.TrimSpace(name)), categoryType).
		First(&model).Error; err != nil {
		return nil, categoryError(err)
	}
	return model.ToDomain(), nil
}

// ExistsActiveByName checks name uniqueness within a type among active categories
func (r *GormCategoryRepository) ExistsActiveByName(ctx context.Context, name string, categoryType finance.CategoryType, excludeID *uuid.UUID) (bool, error) {
	query := r.active(ctx).Model(&models.CategoryModel{}).
		Where("LOWER(name) = ? AND type = ?", strings.ToLower(strings.TrimSpace(name)), categoryType)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUsage counts journal entry lines tagged with the category
func (r *GormCategoryRepository) CountUsage(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.JournalEntryLineModel{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// Create inserts a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *finance.Category) error {
	if err := translateError(conn(ctx, r.db).Create(models.CategoryModelFromDomain(category)).Error); err != nil {
		return err
	}
	category.MarkStored()
	return nil
}

// Update saves an existing category at the version it was loaded with
func (r *GormCategoryRepository) Update(ctx context.Context, category *finance.Category) error {
	err := updateVersioned(conn(ctx, r.db), &models.CategoryModel{}, category.ID, category.StoredVersion(),
		models.CategoryModelFromDomain(category), finance.ErrCategoryNotFound, "id", "created_at", "created_by")
	if err != nil {
		return err
	}
	category.MarkStored()
	return nil
}

func (r *GormCategoryRepository) active(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Where("is_active = ?", true)
}

func (r *GormCategoryRepository) find(query *gorm.DB) ([]*finance.Category, error) {
	var categoryModels []models.CategoryModel
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]*finance.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToDomain()
	}
	return categories, nil
}

func categoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return finance.ErrCategoryNotFound
	}
	return err
}

