package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/garments-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormContactRepository implements partner.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

var _ partner.ContactRepository = (*GormContactRepository)(nil)

// FindByID finds a contact by ID regardless of its active flag
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	var model models.ContactModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, contactError(err)
	}
	return model.ToDomain(), nil
}

// FindActive lists active contacts ordered by company name
func (r *GormContactRepository) FindActive(ctx context.Context, filter partner.ContactFilter) ([]*partner.Contact, error) {
	query := conn(ctx, r.db).Where("is_active = ?", true)
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := likePattern(term)
		if filter.NameOnly {
			query = query.Where("LOWER(name) LIKE ? OR LOWER(company_name) LIKE ?", pattern, pattern)
		} else {
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR mobile LIKE ?",
				pattern, pattern, pattern, pattern, pattern)
		}
	}
	if len(filter.Types) > 0 {
		query = query.Where("contact_type IN ?", filter.Types)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return r.find(query.Order("company_name ASC, name ASC"))
}

// FindByCategory lists active contacts actively assigned to a category
func (r *GormContactRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*partner.Contact, error) {
	assigned := conn(ctx, r.db).Model(&models.CategoryContactModel{}).
		Select("contact_id").
		Where("category_id = ? AND is_active = ?", categoryID, true)
	return r.find(conn(ctx, r.db).
		Where("is_active = ? AND id IN (?)", true, assigned).
		Order("company_name ASC, name ASC"))
}

// FindByName finds a contact whose name or company name equals name, ignoring case.
// Active contacts win over inactive ones.
func (r *GormContactRepository) FindByName(ctx context.Context, name string) (*partner.Contact, error) {
	folded := strings.ToLower(strings.TrimSpace(name))
	var model models.ContactModel
	if err := conn(ctx, r.db).
		Where("LOWER(name) = ? OR LOWER(company_name) = ?", folded, folded).
		Order("is_active DESC, created_at ASC").
		First(&model).Error; err != nil {
		return nil, contactError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks email uniqueness, ignoring case
func (r *GormContactRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&models.ContactModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new contact
func (r *GormContactRepository) Create(ctx context.Context, contact *partner.Contact) error {
	if err := translateError(conn(ctx, r.db).Create(models.ContactModelFromDomain(contact)).Error); err != nil {
		if isAlreadyExists(err) {
			return partner.ErrDuplicateEmail
		}
		return err
	}
	contact.MarkStored()
	return nil
}

// Update saves an existing contact at the version it was loaded with
func (r *GormContactRepository) Update(ctx context.Context, contact *partner.Contact) error {
	err := updateVersioned(conn(ctx, r.db), &models.ContactModel{}, contact.ID, contact.StoredVersion(),
		models.ContactModelFromDomain(contact), partner.ErrContactNotFound, "id", "created_at")
	if isAlreadyExists(err) {
		return partner.ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	contact.MarkStored()
	return nil
}

// FindAssignment finds the link between a contact and a category, active or not
func (r *GormContactRepository) FindAssignment(ctx context.Context, contactID, categoryID uuid.UUID) (*partner.CategoryAssignment, error) {
	var model models.CategoryContactModel
	err := conn(ctx, r.db).Where("contact_id = ? AND category_id = ?", contactID, categoryID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, partner.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAssignments lists the active category links of a contact
func (r *GormContactRepository) FindAssignments(ctx context.Context, contactID uuid.UUID) ([]*partner.CategoryAssignment, error) {
	var rows []models.CategoryContactModel
	if err := conn(ctx, r.db).
		Where("contact_id = ? AND is_active = ?", contactID, true).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*partner.CategoryAssignment, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// SaveAssignment inserts or updates a category link
func (r *GormContactRepository) SaveAssignment(ctx context.Context, assignment *partner.CategoryAssignment) error {
	return translateError(conn(ctx, r.db).Save(models.CategoryContactModelFromDomain(assignment)).Error)
}

// DeactivateAssignments deactivates every category link of a contact
func (r *GormContactRepository) DeactivateAssignments(ctx context.Context, contactID uuid.UUID) error {
	return conn(ctx, r.db).Model(&models.CategoryContactModel{}).
		Where("contact_id = ? AND is_active = ?", contactID, true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()}).Error
}

// HasTransactions reports whether any journal line reference contains text
func (r *GormContactRepository) HasTransactions(ctx context.Context, text string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.JournalEntryLineModel{}).
		Where("LOWER(reference) LIKE ?", likePattern(text)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

type contactTransactionRow struct {
	TransactionDate time.Time
	JournalNumber   string
	ReferenceNumber string
	Description     string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	Status          finance.JournalStatus
}

// FindTransactions lists journal lines whose reference contains text, newest first
func (r *GormContactRepository) FindTransactions(ctx context.Context, text string, from, to *time.Time) ([]partner.ContactTransaction, error) {
	query := r.referencedLines(ctx, text).
		Select(`e.transaction_date, e.journal_number, e.reference_number,
			COALESCE(NULLIF(l.description, ''), e.description) AS description,
			l.debit_amount AS debit, l.credit_amount AS credit, e.status`)
	if from != nil {
		query = query.Where("e.transaction_date >= ?", startOfDay(*from))
	}
	if to != nil {
		query = query.Where("e.transaction_date < ?", startOfDay(*to).AddDate(0, 0, 1))
	}

	var rows []contactTransactionRow
	if err := query.Order("e.transaction_date DESC, e.journal_number ASC, l.line_order ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]partner.ContactTransaction, len(rows))
	for i, row := range rows {
		out[i] = partner.ContactTransaction(row)
	}
	return out, nil
}

// SumTransactions totals the debits and credits of lines whose reference contains text
func (r *GormContactRepository) SumTransactions(ctx context.Context, text string, statuses []finance.JournalStatus) (decimal.Decimal, decimal.Decimal, error) {
	query := r.referencedLines(ctx, text).
		Select("COALESCE(SUM(l.debit_amount), 0) AS debit, COALESCE(SUM(l.credit_amount), 0) AS credit")
	if len(statuses) > 0 {
		query = query.Where("e.status IN ?", statuses)
	}
	var totals struct {
		Debit  decimal.Decimal
		Credit decimal.Decimal
	}
	if err := query.Scan(&totals).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return totals.Debit, totals.Credit, nil
}

func (r *GormContactRepository) referencedLines(ctx context.Context, text string) *gorm.DB {
	return conn(ctx, r.db).Table("journal_entry_lines AS l").
		Joins("JOIN journal_entries AS e ON e.id = l.journal_entry_id").
		Where("LOWER(l.reference) LIKE ?", likePattern(text))
}

func (r *GormContactRepository) find(query *gorm.DB) ([]*partner.Contact, error) {
	var rows []models.ContactModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	contacts := make([]*partner.Contact, len(rows))
	for i := range rows {
		contacts[i] = rows[i].ToDomain()
	}
	return contacts, nil
}

func contactError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return partner.ErrContactNotFound
	}
	return err
}
