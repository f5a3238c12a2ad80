package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements finance.JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

var _ finance.JournalEntryRepository = (*GormJournalEntryRepository)(nil)

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("line_order ASC")
}

// FindByID finds an entry with its lines ordered by line order
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := conn(ctx, r.db).Preload("Lines", orderedLines).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, finance.ErrJournalEntryNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns matching entries with lines, plus the total count
func (r *GormJournalEntryRepository) FindAll(ctx context.Context, filter finance.JournalEntryFilter) ([]*finance.JournalEntry, int64, error) {
	query := conn(ctx, r.db).Model(&models.JournalEntryModel{})
	query = applyJournalFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, JournalEntrySortFields, "transaction_date")
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query = query.Order(sortField + " " + direction).Order("journal_number " + direction)
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var entryModels []models.JournalEntryModel
	if err := query.Preload("Lines", orderedLines).Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]*finance.JournalEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

func applyJournalFilter(query *gorm.DB, filter finance.JournalEntryFilter) *gorm.DB {
	if filter.DateFrom != nil {
		query = query.Where("transaction_date >= ?", startOfDay(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("transaction_date < ?", startOfDay(*filter.DateTo).AddDate(0, 0, 1))
	}
	if len(filter.Types) > 0 {
		query = query.Where("journal_type IN ?", filter.Types)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if strings.TrimSpace(filter.Search) != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"LOWER(journal_number) LIKE ? OR LOWER(reference_number) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.MinAmount != nil {
		query = query.Where("total_debit >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("total_debit <= ?", *filter.MaxAmount)
	}
	return query
}

// LastNumberWithPrefix returns the highest journal number starting with prefix and how many there are.
// Sequences are zero-padded to four digits, so a longer number is always the larger one.
func (r *GormJournalEntryRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, int64, error) {
	withPrefix := func() *gorm.DB {
		return conn(ctx, r.db).Model(&models.JournalEntryModel{}).Where("journal_number LIKE ?", prefix+"%")
	}

	var total int64
	if err := withPrefix().Count(&total).Error; err != nil {
		return "", 0, err
	}
	if total == 0 {
		return "", 0, nil
	}

	var last []string
	err := withPrefix().
		Order("LENGTH(journal_number) DESC, journal_number DESC").
		Limit(1).
		Pluck("journal_number", &last).Error
	if err != nil {
		return "", 0, err
	}
	if len(last) == 0 {
		return "", total, nil
	}
	return last[0], total, nil
}

type ledgerRow struct {
	JournalEntryID  uuid.UUID
	AccountID       uuid.UUID
	TransactionDate time.Time
	CreatedAt       time.Time
	JournalType     finance.JournalType
	ReferenceNumber string
	Particulars     string
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
}

// FindLedgerLines returns lines of entries in statuses dated within [from, to]
func (r *GormJournalEntryRepository) FindLedgerLines(ctx context.Context, from, to time.Time, statuses []finance.JournalStatus, accountID *uuid.UUID) ([]finance.LedgerLine, error) {
	query := conn(ctx, r.db).Table("journal_entry_lines AS l").
		Select(`l.journal_entry_id, l.account_id, e.transaction_date, e.created_at, e.journal_type,
			e.reference_number, COALESCE(NULLIF(l.description, ''), e.description) AS particulars,
			l.debit_amount, l.credit_amount`).
		Joins("JOIN journal_entries AS e ON e.id = l.journal_entry_id").
		Where("e.transaction_date >= ? AND e.transaction_date < ?", startOfDay(from), startOfDay(to).AddDate(0, 0, 1))
	if len(statuses) > 0 {
		query = query.Where("e.status IN ?", statuses)
	}
	if accountID != nil {
		query = query.Where("l.account_id = ?", *accountID)
	}

	var rows []ledgerRow
	if err := query.Order("e.transaction_date ASC, e.created_at ASC, l.line_order ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]finance.LedgerLine, len(rows))
	for i, row := range rows {
		lines[i] = finance.LedgerLine{
			JournalEntryID:  row.JournalEntryID,
			AccountID:       row.AccountID,
			TransactionDate: row.TransactionDate,
			CreatedAt:       row.CreatedAt,
			JournalType:     row.JournalType,
			ReferenceNumber: row.ReferenceNumber,
			Particulars:     row.Particulars,
			Debit:           row.DebitAmount,
			Credit:          row.CreditAmount,
		}
	}
	return lines, nil
}

type movementRow struct {
	AccountID   uuid.UUID
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// SumByAccount totals line amounts per account, optionally up to and including asOf
func (r *GormJournalEntryRepository) SumByAccount(ctx context.Context, asOf *time.Time, statuses []finance.JournalStatus, accountID *uuid.UUID) ([]finance.AccountMovement, error) {
	query := conn(ctx, r.db).Table("journal_entry_lines AS l").
		Select("l.account_id, COALESCE(SUM(l.debit_amount), 0) AS total_debit, COALESCE(SUM(l.credit_amount), 0) AS total_credit").
		Joins("JOIN journal_entries AS e ON e.id = l.journal_entry_id")
	if asOf != nil {
		query = query.Where("e.transaction_date < ?", startOfDay(*asOf).AddDate(0, 0, 1))
	}
	if len(statuses) > 0 {
		query = query.Where("e.status IN ?", statuses)
	}
	if accountID != nil {
		query = query.Where("l.account_id = ?", *accountID)
	}

	var rows []movementRow
	if err := query.Group("l.account_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.AccountMovement, len(rows))
	for i, row := range rows {
		out[i] = finance.AccountMovement{AccountID: row.AccountID, TotalDebit: row.TotalDebit, TotalCredit: row.TotalCredit}
	}
	return out, nil
}

// Create inserts an entry and its lines
func (r *GormJournalEntryRepository) Create(ctx context.Context, entry *finance.JournalEntry) error {
	header, lines := models.JournalEntryModelFromDomain(entry)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(header).Error; err != nil {
			return translateError(err)
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return err
	}
	entry.MarkStored()
	return nil
}

// Update saves the header and replaces the lines. The stored row must still
// be at the version the entry was loaded with.
func (r *GormJournalEntryRepository) Update(ctx context.Context, entry *finance.JournalEntry) error {
	header, lines := models.JournalEntryModelFromDomain(entry)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := updateVersioned(tx, &models.JournalEntryModel{}, entry.ID, entry.StoredVersion(), header,
			finance.ErrJournalEntryNotFound, "id", "created_at", "Lines")
		if err != nil {
			return err
		}
		if err := tx.Where("journal_entry_id = ?", entry.ID).Delete(&models.JournalEntryLineModel{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return err
	}
	entry.MarkStored()
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
