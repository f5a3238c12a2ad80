package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Limits of the recent transactions listing
const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Cash book directions
const (
	DirectionCredit = "Credit"
	DirectionDebit  = "Debit"
)

var cashTypes = []finance.JournalType{finance.JournalTypeCashReceipt, finance.JournalTypeCashPayment}

// cashSide describes how one direction of a cash book record is booked
type cashSide struct {
	direction    string
	categoryType finance.CategoryType
	accountType  finance.AccountType
	journalType  finance.JournalType
}

var (
	creditSide = cashSide{DirectionCredit, finance.CategoryTypeCredit, finance.AccountTypeRevenue, finance.JournalTypeCashReceipt}
	debitSide  = cashSide{DirectionDebit, finance.CategoryTypeDebit, finance.AccountTypeExpense, finance.JournalTypeCashPayment}
)

// CashBookService records one-sided cash receipts and payments
type CashBookService struct {
	journals   *JournalService
	accounts   finance.AccountRepository
	categories finance.CategoryRepository
	tx         shared.TxRunner
	metrics    *telemetry.Metrics
	logger     *zap.Logger
}

// NewCashBookService creates a new CashBookService
func NewCashBookService(
	journals *JournalService,
	accounts finance.AccountRepository,
	categories finance.CategoryRepository,
	tx shared.TxRunner,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *CashBookService {
	return &CashBookService{
		journals:   journals,
		accounts:   accounts,
		categories: categories,
		tx:         tx,
		metrics:    metrics,
		logger:     logger,
	}
}

// SaveCredit records money received under a credit category
func (s *CashBookService) SaveCredit(ctx context.Context, in CashTransactionInput) (*CashTransactionDTO, error) {
	return s.save(ctx, creditSide, in)
}

// SaveDebit records money paid under a debit category
func (s *CashBookService) SaveDebit(ctx context.Context, in CashTransactionInput) (*CashTransactionDTO, error) {
	return s.save(ctx, debitSide, in)
}

func (s *CashBookService) save(ctx context.Context, side cashSide, in CashTransactionInput) (_ *CashTransactionDTO, err error) {
	ctx, span := telemetry.StartSpan(ctx, "CashBookService", "Save"+side.direction)
	defer func() { telemetry.EndSpan(span, err) }()

	if err := validateCashInput(in); err != nil {
		return nil, err
	}

	var (
		entry    *finance.JournalEntry
		category *finance.Category
		account  *finance.ChartOfAccount
		created  bool
	)
	err = s.journals.withRetry(ctx, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			category, err = s.categoryFor(ctx, side, in)
			if err != nil {
				return err
			}
			account, created, err = s.accountFor(ctx, side, category.Name)
			if err != nil {
				return err
			}

			line := finance.LineInput{
				AccountID:   account.ID,
				CategoryID:  &category.ID,
				Description: in.Particulars,
				Reference:   in.ContactName,
			}
			if side.direction == DirectionCredit {
				line.Credit = in.Amount
			} else {
				line.Debit = in.Amount
			}

			entry, err = s.journals.create(ctx, finance.JournalEntryParams{
				TransactionDate: in.Date,
				JournalType:     side.journalType,
				ReferenceNumber: finance.NewCashBookReference(in.Date),
				Description:     in.Particulars,
				CreatedBy:       in.UserID,
				Lines:           []finance.LineInput{line},
			}, true)
			return err
		})
	})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to save cash book transaction")
	}

	s.journals.afterCommit(ctx, entry, "created")
	s.metrics.CashBookTransaction(side.direction)
	s.logger.Info("Cash book transaction saved",
		zap.String("direction", side.direction),
		zap.String("journal_number", entry.JournalNumber),
		zap.String("category", category.Name),
		zap.String("amount", in.Amount.StringFixed(2)),
	)

	dto := toCashTransactionDTO(entry, map[uuid.UUID]*finance.Category{category.ID: category},
		map[uuid.UUID]*finance.ChartOfAccount{account.ID: account})
	dto.AccountCreated = created
	return &dto, nil
}

// categoryFor returns the active category named in.CategoryName, creating it when missing
func (s *CashBookService) categoryFor(ctx context.Context, side cashSide, in CashTransactionInput) (*finance.Category, error) {
	category, err := s.categories.FindActiveByName(ctx, in.CategoryName, side.categoryType)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, finance.ErrCategoryNotFound) {
		return nil, err
	}

	var createdBy *uuid.UUID
	if in.UserID != uuid.Nil {
		createdBy = &in.UserID
	}
	category, err = finance.NewCategory(in.CategoryName, "", side.categoryType, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Cash book category created", zap.String("name", category.Name), zap.String("type", category.Type.String()))
	return category, nil
}

// accountFor returns the active account named after the category, creating it with the next code when missing.
// The flag reports whether the account was created.
func (s *CashBookService) accountFor(ctx context.Context, side cashSide, name string) (*finance.ChartOfAccount, bool, error) {
	account, err := s.accounts.FindActiveByName(ctx, name, side.accountType)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, finance.ErrAccountNotFound) {
		return nil, false, err
	}

	codes, err := s.accounts.CodesWithPrefix(ctx, side.accountType.CodePrefix())
	if err != nil {
		return nil, false, err
	}
	account, err = finance.NewChartOfAccount(finance.NextAccountCode(side.accountType, codes), name, side.accountType,
		fmt.Sprintf("Cash book %s account", strings.ToLower(side.direction)))
	if err != nil {
		return nil, false, err
	}
	account.IsDynamic = true
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, false, err
	}
	s.logger.Info("Cash book account created", zap.String("code", account.AccountCode), zap.String("name", account.AccountName))
	return account, true, nil
}

// RecentTransactions lists the latest ledger cash book records, newest first
func (s *CashBookService) RecentTransactions(ctx context.Context, limit int) (*RecentTransactions, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	entries, _, err := s.journals.journals.FindAll(ctx, finance.JournalEntryFilter{
		Types:    cashTypes,
		Statuses: finance.LedgerStatuses(),
		Page:     1,
		PageSize: limit,
		SortBy:   "createdat",
		SortDesc: true,
	})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to load recent transactions")
	}
	categories, err := s.categoryIndex(ctx, entries)
	if err != nil {
		return nil, err
	}
	accounts, err := s.journals.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := &RecentTransactions{
		Transactions: make([]CashTransactionDTO, 0, len(entries)),
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}
	for _, e := range entries {
		out.Transactions = append(out.Transactions, toCashTransactionDTO(e, categories, accounts))
		out.TotalCredits = out.TotalCredits.Add(e.TotalCredit)
		out.TotalDebits = out.TotalDebits.Add(e.TotalDebit)
	}
	out.NetAmount = out.TotalCredits.Sub(out.TotalDebits)
	return out, nil
}

// CreateEntry records a balanced multi-line cash book entry as a draft
func (s *CashBookService) CreateEntry(ctx context.Context, in CashBookEntryInput) (*JournalEntryDTO, error) {
	if in.JournalType == "" {
		in.JournalType = finance.JournalTypeCashReceipt
	}
	if !in.JournalType.IsCash() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_TYPE", "Cash book entries must be CashReceipt or CashPayment")
	}
	if len(in.Lines) < 2 {
		return nil, shared.NewDomainError("INVALID_CASH_BOOK_ENTRY", "Cash book entries need at least two lines")
	}
	return s.journals.Create(ctx, JournalEntryInput{
		TransactionDate: in.Date,
		JournalType:     in.JournalType,
		ReferenceNumber: in.ReferenceNumber,
		Description:     in.Description,
		Lines:           in.Lines,
		UserID:          in.UserID,
	})
}

// CompleteEntry posts a draft cash book entry
func (s *CashBookService) CompleteEntry(ctx context.Context, id uuid.UUID) (*JournalEntryDTO, error) {
	entry, err := s.journals.journals.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get cash book entry")
	}
	if !entry.JournalType.IsCash() {
		return nil, finance.ErrJournalEntryNotFound
	}
	dto, err := s.journals.Post(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.CashBookTransaction("completed")
	return dto, nil
}

// ListEntries pages cash book entries in any status
func (s *CashBookService) ListEntries(ctx context.Context, in JournalListInput) (*JournalEntryListResult, error) {
	in.Filter.Types = cashTypes
	return s.journals.List(ctx, in)
}

func (s *CashBookService) categoryIndex(ctx context.Context, entries []*finance.JournalEntry) (map[uuid.UUID]*finance.Category, error) {
	index := make(map[uuid.UUID]*finance.Category)
	for _, e := range entries {
		for _, l := range e.Lines {
			if l.CategoryID == nil {
				continue
			}
			if _, ok := index[*l.CategoryID]; ok {
				continue
			}
			c, err := s.categories.FindByID(ctx, *l.CategoryID)
			if errors.Is(err, finance.ErrCategoryNotFound) {
				continue
			}
			if err != nil {
				return nil, passDomain(s.logger, err, "Failed to load categories")
			}
			index[c.ID] = c
		}
	}
	return index, nil
}

func validateCashInput(in CashTransactionInput) error {
	if in.Date.IsZero() {
		return shared.NewDomainError("INVALID_TRANSACTION_DATE", "Transaction date is required")
	}
	if strings.TrimSpace(in.CategoryName) == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name is required")
	}
	if strings.TrimSpace(in.Particulars) == "" {
		return shared.NewDomainError("INVALID_PARTICULARS", "Particulars are required")
	}
	if !in.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	return nil
}

func toCashTransactionDTO(e *finance.JournalEntry, categories map[uuid.UUID]*finance.Category, accounts map[uuid.UUID]*finance.ChartOfAccount) CashTransactionDTO {
	dto := CashTransactionDTO{
		ID:              e.ID,
		JournalNumber:   e.JournalNumber,
		ReferenceNumber: e.ReferenceNumber,
		Date:            e.TransactionDate,
		Particulars:     e.Description,
		Status:          string(e.Status),
	}
	if e.JournalType == finance.JournalTypeCashReceipt {
		dto.Direction = DirectionCredit
		dto.Amount = e.TotalCredit
	} else {
		dto.Direction = DirectionDebit
		dto.Amount = e.TotalDebit
	}
	if len(e.Lines) == 0 {
		return dto
	}

	l := e.Lines[0]
	dto.AccountID = l.AccountID
	if a, ok := accounts[l.AccountID]; ok {
		dto.AccountCode = a.AccountCode
		dto.AccountName = a.AccountName
	}
	if l.CategoryID != nil {
		dto.CategoryID = l.CategoryID
		if c, ok := categories[*l.CategoryID]; ok {
			dto.CategoryName = c.Name
		}
	}
	return dto
}
