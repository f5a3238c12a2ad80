package finance

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO represents a cash book category
type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	TypeValue   int        `json:"type_value"`
	IsActive    bool       `json:"is_active"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryInput carries the fields of a category create or update
type CategoryInput struct {
	Name        string
	Description string
	Type        finance.CategoryType
	UserID      *uuid.UUID
}

// CategoryUsage reports how many journal lines use a category
type CategoryUsage struct {
	CategoryID uuid.UUID `json:"category_id"`
	UsageCount int64     `json:"usage_count"`
	CanDelete  bool      `json:"can_delete"`
}

// AccountDTO represents a chart of accounts entry
type AccountDTO struct {
	ID                uuid.UUID       `json:"id"`
	AccountCode       string          `json:"account_code"`
	AccountName       string          `json:"account_name"`
	AccountType       string          `json:"account_type"`
	CategoryName      string          `json:"category_name"`
	ParentAccountID   *uuid.UUID      `json:"parent_account_id,omitempty"`
	Description       string          `json:"description"`
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	IsActive          bool            `json:"is_active"`
	AllowTransactions bool            `json:"allow_transactions"`
	SortOrder         int             `json:"sort_order"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AccountInput carries the fields of an account create or update
type AccountInput struct {
	AccountCode       string
	AccountName       string
	AccountType       finance.AccountType
	ParentAccountID   *uuid.UUID
	Description       string
	OpeningBalance    decimal.Decimal
	AllowTransactions *bool
	SortOrder         int
}

// AccountTypeDTO describes an account type for pickers
type AccountTypeDTO struct {
	Value        string `json:"value"`
	CodePrefix   string `json:"code_prefix"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}

// AccountListResult is a page of accounts
type AccountListResult struct {
	Accounts   []AccountDTO `json:"accounts"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// JournalLineDTO is one line of a journal entry
type JournalLineDTO struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Reference   string          `json:"reference,omitempty"`
	LineOrder   int             `json:"line_order"`
}

// JournalEntryDTO represents a journal entry with its lines
type JournalEntryDTO struct {
	ID               uuid.UUID        `json:"id"`
	JournalNumber    string           `json:"journal_number"`
	TransactionDate  time.Time        `json:"transaction_date"`
	JournalType      string           `json:"journal_type"`
	ReferenceNumber  string           `json:"reference_number"`
	Description      string           `json:"description"`
	TotalDebit       decimal.Decimal  `json:"total_debit"`
	TotalCredit      decimal.Decimal  `json:"total_credit"`
	Status           string           `json:"status"`
	CreatedByUserID  uuid.UUID        `json:"created_by_user_id"`
	ApprovedByUserID *uuid.UUID       `json:"approved_by_user_id,omitempty"`
	ApprovedAt       *time.Time       `json:"approved_at,omitempty"`
	ApprovalNotes    string           `json:"approval_notes,omitempty"`
	ReversedAt       *time.Time       `json:"reversed_at,omitempty"`
	ReversalReason   string           `json:"reversal_reason,omitempty"`
	Lines            []JournalLineDTO `json:"lines"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// JournalEntryInput carries the fields of a journal entry create or update
type JournalEntryInput struct {
	TransactionDate time.Time
	JournalType     finance.JournalType
	ReferenceNumber string
	Description     string
	Lines           []finance.LineInput
	Post            bool // post immediately after create
	UserID          uuid.UUID
}

// JournalEntryListResult is a page of journal entries
type JournalEntryListResult struct {
	Entries    []JournalEntryDTO `json:"entries"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// JournalStatistics aggregates journal entries over a date range
type JournalStatistics struct {
	DateFrom     *time.Time                 `json:"date_from,omitempty"`
	DateTo       *time.Time                 `json:"date_to,omitempty"`
	TotalEntries int                        `json:"total_entries"`
	TotalDebits  decimal.Decimal            `json:"total_debits"`
	TotalCredits decimal.Decimal            `json:"total_credits"`
	ByType       map[string]int             `json:"by_type"`
	ByStatus     map[string]int             `json:"by_status"`
	ByMonth      []MonthlyJournalStatistics `json:"by_month"`
}

// MonthlyJournalStatistics is one month of JournalStatistics
type MonthlyJournalStatistics struct {
	Month        string          `json:"month"` // yyyy-MM
	Count        int             `json:"count"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
}

// JournalValidationDTO is the balance report of a stored entry
type JournalValidationDTO struct {
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	IsValid        bool            `json:"is_valid"`
	IsBalanced     bool            `json:"is_balanced"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	Difference     decimal.Decimal `json:"difference"`
	Errors         []string        `json:"errors"`
	Warnings       []string        `json:"warnings"`
}

// CashTransactionInput is a one-sided cash book record
type CashTransactionInput struct {
	Date         time.Time
	CategoryName string
	Particulars  string
	Amount       decimal.Decimal
	ContactName  string // buyer or supplier
	UserID       uuid.UUID
}

// CashTransactionDTO is a saved cash book transaction
type CashTransactionDTO struct {
	ID              uuid.UUID       `json:"id"`
	JournalNumber   string          `json:"journal_number"`
	ReferenceNumber string          `json:"reference_number"`
	Date            time.Time       `json:"date"`
	Direction       string          `json:"direction"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName    string          `json:"category_name"`
	AccountID       uuid.UUID       `json:"account_id"`
	AccountCode     string          `json:"account_code"`
	AccountName     string          `json:"account_name"`
	Particulars     string          `json:"particulars"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	AccountCreated  bool            `json:"account_created,omitempty"`
}

// RecentTransactions lists the latest cash book transactions with totals
type RecentTransactions struct {
	Transactions []CashTransactionDTO `json:"transactions"`
	TotalCredits decimal.Decimal      `json:"total_credits"`
	TotalDebits  decimal.Decimal      `json:"total_debits"`
	NetAmount    decimal.Decimal      `json:"net_amount"`
}

// CashBookEntryInput is a balanced multi-line cash book entry
type CashBookEntryInput struct {
	Date            time.Time
	JournalType     finance.JournalType // CashReceipt or CashPayment
	ReferenceNumber string
	Description     string
	Lines           []finance.LineInput
	UserID          uuid.UUID
}

func toCategoryDTO(c *finance.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        c.Type.String(),
		TypeValue:   int(c.Type),
		IsActive:    c.IsActive,
		CreatedBy:   c.CreatedBy,
		UpdatedBy:   c.UpdatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryDTOs(categories []*finance.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = toCategoryDTO(c)
	}
	return out
}

func toAccountDTO(a *finance.ChartOfAccount) AccountDTO {
	return AccountDTO{
		ID:                a.ID,
		AccountCode:       a.AccountCode,
		AccountName:       a.AccountName,
		AccountType:       string(a.AccountType),
		CategoryName:      a.AccountType.CategoryName(),
		ParentAccountID:   a.ParentAccountID,
		Description:       a.Description,
		OpeningBalance:    a.OpeningBalance,
		CurrentBalance:    a.CurrentBalance,
		IsActive:          a.IsActive,
		AllowTransactions: a.AllowTransactions,
		SortOrder:         a.SortOrder,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toAccountDTOs(accounts []*finance.ChartOfAccount) []AccountDTO {
	out := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountDTO(a)
	}
	return out
}

func toJournalEntryDTO(e *finance.JournalEntry, accounts map[uuid.UUID]*finance.ChartOfAccount) JournalEntryDTO {
	lines := make([]JournalLineDTO, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineDTO{
			ID:          l.ID,
			AccountID:   l.AccountID,
			CategoryID:  l.CategoryID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Reference:   l.Reference,
			LineOrder:   l.LineOrder,
		}
		if a, ok := accounts[l.AccountID]; ok {
			lines[i].AccountCode = a.AccountCode
			lines[i].AccountName = a.AccountName
		}
	}

	return JournalEntryDTO{
		ID:               e.ID,
		JournalNumber:    e.JournalNumber,
		TransactionDate:  e.TransactionDate,
		JournalType:      string(e.JournalType),
		ReferenceNumber:  e.ReferenceNumber,
		Description:      e.Description,
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		Status:           string(e.Status),
		CreatedByUserID:  e.CreatedByUserID,
		ApprovedByUserID: e.ApprovedByUserID,
		ApprovedAt:       e.ApprovedAt,
		ApprovalNotes:    e.ApprovalNotes,
		ReversedAt:       e.ReversedAt,
		ReversalReason:   e.ReversalReason,
		Lines:            lines,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
