package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRepository defines persistence for cash book categories
type CategoryRepository interface {
	// FindByID finds a category by ID regardless of its active flag
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAllActive returns active categories ordered by type then name
	FindAllActive(ctx context.Context) ([]*Category, error)

	// FindByType returns active categories of one type ordered by name
	FindByType(ctx context.Context, categoryType CategoryType) ([]*Category, error)

	// Search matches active categories by name or description, ignoring case
	Search(ctx context.Context, term string) ([]*Category, error)

	// FindActiveByName finds an active category by name and type, ignoring case
	FindActiveByName(ctx context.Context, name string, categoryType CategoryType) (*Category, error)

	// ExistsActiveByName checks name uniqueness within a type among active categories
	ExistsActiveByName(ctx context.Context, name string, categoryType CategoryType, excludeID *uuid.UUID) (bool, error)

	// CountUsage counts journal entry lines tagged with the category
	CountUsage(ctx context.Context, id uuid.UUID) (int64, error)

	// Create inserts a new category
	Create(ctx context.Context, category *Category) error

	// Update saves an existing category
	Update(ctx context.Context, category *Category) error
}

// AccountFilter defines filtering options for chart of account queries
type AccountFilter struct {
	AccountType *AccountType
	IsActive    *bool
	Search      string
	Page        int
	PageSize    int
}

// Offset returns the row offset of the page
func (f AccountFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// AccountRepository defines persistence for the chart of accounts
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ChartOfAccount, error)

	// FindByCode finds an account by its code
	FindByCode(ctx context.Context, code string) (*ChartOfAccount, error)

	// FindAll returns a page of accounts ordered by code, plus the total count
	FindAll(ctx context.Context, filter AccountFilter) ([]*ChartOfAccount, int64, error)

	// FindActiveOrdered returns every active account ordered by code
	FindActiveOrdered(ctx context.Context) ([]*ChartOfAccount, error)

	// FindActiveByName finds an active account by name and type, ignoring case
	FindActiveByName(ctx context.Context, name string, accountType AccountType) (*ChartOfAccount, error)

	// ExistsByCode checks code uniqueness
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)

	// CodesWithPrefix lists account codes starting with prefix
	CodesWithPrefix(ctx context.Context, prefix string) ([]string, error)

	// CountLines counts journal entry lines posted to the account
	CountLines(ctx context.Context, id uuid.UUID) (int64, error)

	// CountActiveChildren counts active accounts whose parent is id
	CountActiveChildren(ctx context.Context, id uuid.UUID) (int64, error)

	// Create inserts a new account
	Create(ctx context.Context, account *ChartOfAccount) error

	// Update saves an existing account
	Update(ctx context.Context, account *ChartOfAccount) error
}

// JournalEntryFilter defines filtering options for journal entry queries
type JournalEntryFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Types     []JournalType
	Statuses  []JournalStatus
	Search    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Page      int
	PageSize  int // 0 returns every match
	SortBy    string
	SortDesc  bool
}

// Offset returns the row offset of the page
func (f JournalEntryFilter) Offset() int {
	if f.Page < 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// JournalEntryRepository defines persistence for journal entries and their lines
type JournalEntryRepository interface {
	// FindByID finds an entry with its lines ordered by line order
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)

	// FindAll returns matching entries with lines, plus the total count
	FindAll(ctx context.Context, filter JournalEntryFilter) ([]*JournalEntry, int64, error)

	// LastNumberWithPrefix returns the highest journal number starting with prefix and the count of such numbers
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, int64, error)

	// FindLedgerLines returns lines of entries in statuses dated within [from, to],
	// ordered by transaction date then creation time. accountID narrows to one account.
	FindLedgerLines(ctx context.Context, from, to time.Time, statuses []JournalStatus, accountID *uuid.UUID) ([]LedgerLine, error)

	// SumByAccount totals debits and credits per account over entries in statuses
	// dated on or before asOf; a nil asOf takes every date. accountID narrows to one account.
	SumByAccount(ctx context.Context, asOf *time.Time, statuses []JournalStatus, accountID *uuid.UUID) ([]AccountMovement, error)

	// Create inserts an entry and its lines
	Create(ctx context.Context, entry *JournalEntry) error

	// Update saves the header and replaces the lines
	Update(ctx context.Context, entry *JournalEntry) error
}
