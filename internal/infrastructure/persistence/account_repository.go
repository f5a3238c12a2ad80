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

// GormAccountRepository implements finance.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

var _ finance.AccountRepository = (*GormAccountRepository)(nil)

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ChartOfAccount, error) {
	return r.findOne(conn(ctx, r.db).Where("id = ?", id))
}

// FindByCode finds an account by its code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*finance.ChartOfAccount, error) {
	return r.findOne(conn(ctx, r.db).Where("account_code = ?", strings.TrimSpace(code)))
}

// FindActiveByName finds an active account by name and type, ignoring case
func (r *GormAccountRepository) FindActiveByName(ctx context.Context, name string, accountType finance.AccountType) (*finance.ChartOfAccount, error) {
	return r.findOne(conn(ctx, r.db).
		Where("is_active = ? AND account_type = ? AND LOWER(account_name) = ?",
			true, accountType, strings.ToLower(strings.TrimSpace(name))).
		Order("account_code ASC"))
}

func (r *GormAccountRepository) findOne(query *gorm.DB) (*finance.ChartOfAccount, error) {
	var model models.ChartOfAccountModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrAccountNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of accounts ordered by code, plus the total count
func (r *GormAccountRepository) FindAll(ctx context.Context, filter finance.AccountFilter) ([]*finance.ChartOfAccount, int64, error) {
	query := conn(ctx, r.db).Model(&models.ChartOfAccountModel{})
	if filter.AccountType != nil {
		query = query.Where("account_type = ?", *filter.AccountType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if strings.TrimSpace(filter.Search) != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(account_code) LIKE ? OR LOWER(account_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("account_code ASC")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	accounts, err := r.find(query)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// FindActiveOrdered returns every active account ordered by code
func (r *GormAccountRepository) FindActiveOrdered(ctx context.Context) ([]*finance.ChartOfAccount, error) {
	return r.find(conn(ctx, r.db).Where("is_active = ?", true).Order("account_code ASC"))
}

func (r *GormAccountRepository) find(query *gorm.DB) ([]*finance.ChartOfAccount, error) {
	var accountModels []models.ChartOfAccountModel
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*finance.ChartOfAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToDomain()
	}
	return accounts, nil
}

// ExistsByCode checks code uniqueness
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.ChartOfAccountModel{}).Where("account_code = ?", strings.TrimSpace(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CodesWithPrefix lists account codes starting with prefix
func (r *GormAccountRepository) CodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	err := conn(ctx, r.db).Model(&models.ChartOfAccountModel{}).
		Where("account_code LIKE ?", prefix+"%").
		Order("account_code ASC").
		Pluck("account_code", &codes).Error
	return codes, err
}

// CountLines counts journal entry lines posted to the account
func (r *GormAccountRepository) CountLines(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.JournalEntryLineModel{}).Where("account_id = ?", id).Count(&count).Error
	return count, err
}

// CountActiveChildren counts active accounts whose parent is id
func (r *GormAccountRepository) CountActiveChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ChartOfAccountModel{}).
		Where("parent_account_id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count, err
}

// Create inserts a new account
func (r *GormAccountRepository) Create(ctx context.Context, account *finance.ChartOfAccount) error {
	err := translateError(conn(ctx, r.db).Create(models.ChartOfAccountModelFromDomain(account)).Error)
	if isAlreadyExists(err) {
		return finance.ErrDuplicateAccountCode
	}
	if err == nil {
		account.MarkStored()
	}
	return err
}

// Update saves an existing account, failing with a concurrency conflict when
// another writer changed it since it was loaded
func (r *GormAccountRepository) Update(ctx context.Context, account *finance.ChartOfAccount) error {
	err := updateVersioned(conn(ctx, r.db), &models.ChartOfAccountModel{}, account.ID, account.StoredVersion(),
		models.ChartOfAccountModelFromDomain(account), finance.ErrAccountNotFound, "id", "created_at")
	if isAlreadyExists(err) {
		return finance.ErrDuplicateAccountCode
	}
	if err == nil {
		account.MarkStored()
	}
	return err
}
