package finance

import (
	"context"
	"strings"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService manages cash book categories
type CategoryService struct {
	repo   finance.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo finance.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// GetAll returns active categories ordered by type then name
func (s *CategoryService) GetAll(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list categories")
	}
	return toCategoryDTOs(categories), nil
}

// GetByType returns active categories of one type
func (s *CategoryService) GetByType(ctx context.Context, categoryType finance.CategoryType) ([]CategoryDTO, error) {
	if !categoryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type must be Credit or Debit")
	}
	categories, err := s.repo.FindByType(ctx, categoryType)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list categories")
	}
	return toCategoryDTOs(categories), nil
}

// GetByID returns a category whether active or not
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get category")
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Search matches active categories by name or description; an empty term lists all
func (s *CategoryService) Search(ctx context.Context, term string) ([]CategoryDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetAll(ctx)
	}
	categories, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to search categories")
	}
	return toCategoryDTOs(categories), nil
}

// Create adds a category; names are unique per type among active categories
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*CategoryDTO, error) {
	category, err := finance.NewCategory(in.Name, in.Description, in.Type, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, category.Name, category.Type, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, passDomain(s.logger, err, "Failed to create category")
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
		zap.String("type", category.Type.String()),
	)
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Update changes name, description and type of a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get category")
	}
	if err := category.Update(in.Name, in.Description, in.Type, in.UserID); err != nil {
		return nil, err
	}
	if category.IsActive {
		if err := s.ensureUnique(ctx, category.Name, category.Type, &category.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, passDomain(s.logger, err, "Failed to update category")
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Delete deactivates a category that no journal line uses
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to get category")
	}
	if err := s.ensureUnused(ctx, id); err != nil {
		return err
	}

	category.Deactivate(userID)
	if err := s.repo.Update(ctx, category); err != nil {
		return passDomain(s.logger, err, "Failed to delete category")
	}
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

// ToggleActive flips the active flag. In-use categories cannot be deactivated and
// reactivation must not clash with an active namesake.
func (s *CategoryService) ToggleActive(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get category")
	}

	if category.IsActive {
		if err := s.ensureUnused(ctx, id); err != nil {
			return nil, err
		}
		category.Deactivate(userID)
	} else {
		if err := s.ensureUnique(ctx, category.Name, category.Type, &category.ID); err != nil {
			return nil, err
		}
		category.Activate(userID)
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, passDomain(s.logger, err, "Failed to update category")
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// UsageCount counts the journal lines tagged with the category
func (s *CategoryService) UsageCount(ctx context.Context, id uuid.UUID) (*CategoryUsage, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, passDomain(s.logger, err, "Failed to get category")
	}
	count, err := s.repo.CountUsage(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to count category usage")
	}
	return &CategoryUsage{CategoryID: id, UsageCount: count, CanDelete: count == 0}, nil
}

func (s *CategoryService) ensureUnique(ctx context.Context, name string, t finance.CategoryType, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsActiveByName(ctx, name, t, excludeID)
	if err != nil {
		return passDomain(s.logger, err, "Failed to check category name")
	}
	if exists {
		return finance.ErrDuplicateCategory
	}
	return nil
}

func (s *CategoryService) ensureUnused(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountUsage(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to count category usage")
	}
	if count > 0 {
		return finance.ErrCategoryInUse
	}
	return nil
}
