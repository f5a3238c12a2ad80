package models

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for a cash book Category.
type CategoryModel struct {
	AuditedModel
	Name        string               `gorm:"type:varchar(200);not null;index"`
	Description string               `gorm:"type:varchar(500)"`
	Type        finance.CategoryType `gorm:"not null;index"`
	IsActive    bool                 `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a Category
func (m *CategoryModel) ToDomain() *finance.Category {
	return &finance.Category{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Name:                 m.Name,
		Description:          m.Description,
		Type:                 m.Type,
		IsActive:             m.IsActive,
	}
}

// CategoryModelFromDomain creates a model from a Category
func CategoryModelFromDomain(c *finance.Category) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type,
		IsActive:    c.IsActive,
	}
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	return m
}

// ChartOfAccountModel is the persistence model for a ledger account.
type ChartOfAccountModel struct {
	AggregateModel
	AccountCode       string              `gorm:"type:varchar(10);not null;uniqueIndex"`
	AccountName       string              `gorm:"type:varchar(200);not null"`
	AccountType       finance.AccountType `gorm:"type:varchar(20);not null;index"`
	ParentAccountID   *uuid.UUID          `gorm:"type:uuid;index"`
	Description       string              `gorm:"type:varchar(500)"`
	OpeningBalance    decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	CurrentBalance    decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	IsActive          bool                `gorm:"not null;index"`
	IsDynamic         bool                `gorm:"not null"`
	CategoryGroup     string              `gorm:"type:varchar(100)"`
	SortOrder         int                 `gorm:"not null;default:0"`
	AllowTransactions bool                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChartOfAccountModel) TableName() string {
	return "chart_of_accounts"
}

// ToDomain converts the model to a ChartOfAccount
func (m *ChartOfAccountModel) ToDomain() *finance.ChartOfAccount {
	return &finance.ChartOfAccount{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AccountCode:       m.AccountCode,
		AccountName:       m.AccountName,
		AccountType:       m.AccountType,
		ParentAccountID:   m.ParentAccountID,
		Description:       m.Description,
		OpeningBalance:    m.OpeningBalance,
		CurrentBalance:    m.CurrentBalance,
		IsActive:          m.IsActive,
		IsDynamic:         m.IsDynamic,
		CategoryGroup:     m.CategoryGroup,
		SortOrder:         m.SortOrder,
		AllowTransactions: m.AllowTransactions,
	}
}

// ChartOfAccountModelFromDomain creates a model from a ChartOfAccount
func ChartOfAccountModelFromDomain(a *finance.ChartOfAccount) *ChartOfAccountModel {
	m := &ChartOfAccountModel{
		AccountCode:       a.AccountCode,
		AccountName:       a.AccountName,
		AccountType:       a.AccountType,
		ParentAccountID:   a.ParentAccountID,
		Description:       a.Description,
		OpeningBalance:    a.OpeningBalance,
		CurrentBalance:    a.CurrentBalance,
		IsActive:          a.IsActive,
		IsDynamic:         a.IsDynamic,
		CategoryGroup:     a.CategoryGroup,
		SortOrder:         a.SortOrder,
		AllowTransactions: a.AllowTransactions,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// JournalEntryModel is the persistence model for a journal entry header.
type JournalEntryModel struct {
	AggregateModel
	JournalNumber    string                `gorm:"type:varchar(20);not null;uniqueIndex"`
	TransactionDate  time.Time             `gorm:"type:date;not null;index"`
	JournalType      finance.JournalType   `gorm:"type:varchar(20);not null;index"`
	ReferenceNumber  string                `gorm:"type:varchar(50);index"`
	Description      string                `gorm:"type:varchar(500)"`
	TotalDebit       decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	TotalCredit      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status           finance.JournalStatus `gorm:"type:varchar(20);not null;default:'Draft';index"`
	CreatedByUserID  uuid.UUID             `gorm:"type:uuid;not null"`
	ApprovedByUserID *uuid.UUID            `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	ApprovalNotes    string     `gorm:"type:varchar(500)"`
	ReversedByUserID *uuid.UUID `gorm:"type:uuid"`
	ReversedAt       *time.Time
	ReversalReason   string                  `gorm:"type:varchar(500)"`
	Lines            []JournalEntryLineModel `gorm:"foreignKey:JournalEntryID"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the model and its loaded lines to a JournalEntry
func (m *JournalEntryModel) ToDomain() *finance.JournalEntry {
	lines := make([]finance.JournalEntryLine, len(m.Lines))
	for i := range m.Lines {
		lines[i] = m.Lines[i].ToDomain()
	}
	return &finance.JournalEntry{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		JournalNumber:     m.JournalNumber,
		TransactionDate:   m.TransactionDate,
		JournalType:       m.JournalType,
		ReferenceNumber:   m.ReferenceNumber,
		Description:       m.Description,
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		Status:            m.Status,
		CreatedByUserID:   m.CreatedByUserID,
		ApprovedByUserID:  m.ApprovedByUserID,
		ApprovedAt:        m.ApprovedAt,
		ApprovalNotes:     m.ApprovalNotes,
		ReversedByUserID:  m.ReversedByUserID,
		ReversedAt:        m.ReversedAt,
		ReversalReason:    m.ReversalReason,
		Lines:             lines,
	}
}

// JournalEntryModelFromDomain creates a header model; lines are returned separately
func JournalEntryModelFromDomain(e *finance.JournalEntry) (*JournalEntryModel, []JournalEntryLineModel) {
	m := &JournalEntryModel{
		JournalNumber:    e.JournalNumber,
		TransactionDate:  e.TransactionDate,
		JournalType:      e.JournalType,
		ReferenceNumber:  e.ReferenceNumber,
		Description:      e.Description,
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		Status:           e.Status,
		CreatedByUserID:  e.CreatedByUserID,
		ApprovedByUserID: e.ApprovedByUserID,
		ApprovedAt:       e.ApprovedAt,
		ApprovalNotes:    e.ApprovalNotes,
		ReversedByUserID: e.ReversedByUserID,
		ReversedAt:       e.ReversedAt,
		ReversalReason:   e.ReversalReason,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)

	lines := make([]JournalEntryLineModel, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalEntryLineModel{
			ID:             l.ID,
			JournalEntryID: e.ID,
			AccountID:      l.AccountID,
			CategoryID:     l.CategoryID,
			Description:    l.Description,
			DebitAmount:    l.Debit,
			CreditAmount:   l.Credit,
			Reference:      l.Reference,
			LineOrder:      l.LineOrder,
			CreatedAt:      e.UpdatedAt,
		}
	}
	return m, lines
}

// JournalEntryLineModel is one debit or credit line.
type JournalEntryLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	Description    string          `gorm:"type:varchar(500)"`
	DebitAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreditAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reference      string          `gorm:"type:varchar(200)"`
	LineOrder      int             `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalEntryLineModel) TableName() string {
	return "journal_entry_lines"
}

// ToDomain converts the model to a JournalEntryLine
func (m *JournalEntryLineModel) ToDomain() finance.JournalEntryLine {
	return finance.JournalEntryLine{
		ID:             m.ID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		CategoryID:     m.CategoryID,
		Description:    m.Description,
		Debit:          m.DebitAmount,
		Credit:         m.CreditAmount,
		Reference:      m.Reference,
		LineOrder:      m.LineOrder,
	}
}

// All returns every model, in dependency order, for AutoMigrate in tests and tools
func All() []any {
	return []any{
		&UserModel{}, &RoleModel{}, &PermissionModel{},
		&UserRoleModel{}, &RolePermissionModel{}, &UserPermissionModel{},
		&CategoryModel{}, &ChartOfAccountModel{},
		&JournalEntryModel{}, &JournalEntryLineModel{},
		&ContactModel{}, &CategoryContactModel{},
	}
}
