package finance

import (
	"context"
	"errors"
	"strings"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Page size bounds of account listings
const (
	defaultAccountPageSize = 50
	maxAccountPageSize     = 200
)

// AccountListInput filters an account listing
type AccountListInput struct {
	AccountType *finance.AccountType
	IsActive    *bool
	Search      string
	Page        int
	PageSize    int
}

// AccountService manages the chart of accounts
type AccountService struct {
	repo   finance.AccountRepository
	logger *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(repo finance.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// List returns a page of accounts ordered by code
func (s *AccountService) List(ctx context.Context, in AccountListInput) (*AccountListResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize <= 0 {
		in.PageSize = defaultAccountPageSize
	}
	if in.PageSize > maxAccountPageSize {
		in.PageSize = maxAccountPageSize
	}

	accounts, total, err := s.repo.FindAll(ctx, finance.AccountFilter{
		AccountType: in.AccountType,
		IsActive:    in.IsActive,
		Search:      in.Search,
		Page:        in.Page,
		PageSize:    in.PageSize,
	})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list accounts")
	}

	return &AccountListResult{
		Accounts:   toAccountDTOs(accounts),
		Total:      total,
		Page:       in.Page,
		PageSize:   in.PageSize,
		TotalPages: totalPages(total, in.PageSize),
	}, nil
}

// GetByID returns one account
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get account")
	}
	dto := toAccountDTO(account)
	return &dto, nil
}

// Create adds an account. Codes are unique and a parent must exist and share the type.
func (s *AccountService) Create(ctx context.Context, in AccountInput) (*AccountDTO, error) {
	account, err := finance.NewChartOfAccount(in.AccountCode, in.AccountName, in.AccountType, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, account.AccountCode, nil); err != nil {
		return nil, err
	}
	if err := s.applyParent(ctx, account, in.ParentAccountID); err != nil {
		return nil, err
	}
	s.applyOptions(account, in)
	if !in.OpeningBalance.IsZero() {
		account.SetOpeningBalance(in.OpeningBalance)
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, passDomain(s.logger, err, "Failed to create account")
	}

	s.logger.Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("code", account.AccountCode),
		zap.String("type", string(account.AccountType)),
	)
	dto := toAccountDTO(account)
	return &dto, nil
}

// Update changes an account's fields; the opening balance shifts the current balance by the difference
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, in AccountInput) (*AccountDTO, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get account")
	}
	if err := account.Update(in.AccountCode, in.AccountName, in.AccountType, in.Description); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, account.AccountCode, &account.ID); err != nil {
		return nil, err
	}
	if err := s.applyParent(ctx, account, in.ParentAccountID); err != nil {
		return nil, err
	}
	s.applyOptions(account, in)
	if !in.OpeningBalance.Equal(account.OpeningBalance) {
		account.SetOpeningBalance(in.OpeningBalance)
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, passDomain(s.logger, err, "Failed to update account")
	}
	dto := toAccountDTO(account)
	return &dto, nil
}

// Delete deactivates an account with no journal lines and no active sub-accounts
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to get account")
	}

	lines, err := s.repo.CountLines(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to count account lines")
	}
	children, err := s.repo.CountActiveChildren(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to count sub-accounts")
	}
	if lines > 0 || children > 0 {
		return finance.ErrAccountInUse
	}

	account.Deactivate()
	if err := s.repo.Update(ctx, account); err != nil {
		return passDomain(s.logger, err, "Failed to delete account")
	}
	s.logger.Info("Account deleted", zap.String("account_id", id.String()))
	return nil
}

// AccountTypes lists the account types with their code prefixes
func (s *AccountService) AccountTypes() []AccountTypeDTO {
	types := finance.AllAccountTypes()
	out := make([]AccountTypeDTO, len(types))
	for i, t := range types {
		out[i] = AccountTypeDTO{
			Value:        string(t),
			CodePrefix:   t.CodePrefix(),
			CategoryName: t.CategoryName(),
			Description:  t.Description(),
		}
	}
	return out
}

// NextAccountCode suggests the next free code of the type, e.g. "1004"
func (s *AccountService) NextAccountCode(ctx context.Context, accountType finance.AccountType) (string, error) {
	if !accountType.IsValid() {
		return "", finance.ErrInvalidAccountType
	}
	codes, err := s.repo.CodesWithPrefix(ctx, accountType.CodePrefix())
	if err != nil {
		return "", passDomain(s.logger, err, "Failed to generate account code")
	}
	return finance.NextAccountCode(accountType, codes), nil
}

// ByType returns active accounts of one type
func (s *AccountService) ByType(ctx context.Context, accountType finance.AccountType) ([]AccountDTO, error) {
	if !accountType.IsValid() {
		return nil, finance.ErrInvalidAccountType
	}
	active := true
	accounts, _, err := s.repo.FindAll(ctx, finance.AccountFilter{AccountType: &accountType, IsActive: &active})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list accounts")
	}
	return toAccountDTOs(accounts), nil
}

// Search matches active accounts by code or name
func (s *AccountService) Search(ctx context.Context, term string) ([]AccountDTO, error) {
	active := true
	accounts, _, err := s.repo.FindAll(ctx, finance.AccountFilter{
		IsActive: &active,
		Search:   strings.TrimSpace(term),
		Page:     1,
		PageSize: maxAccountPageSize,
	})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to search accounts")
	}
	return toAccountDTOs(accounts), nil
}

func (s *AccountService) ensureUniqueCode(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return passDomain(s.logger, err, "Failed to check account code")
	}
	if exists {
		return finance.ErrDuplicateAccountCode
	}
	return nil
}

func (s *AccountService) applyParent(ctx context.Context, account *finance.ChartOfAccount, parentID *uuid.UUID) error {
	if parentID == nil || *parentID == uuid.Nil {
		return account.SetParent(nil)
	}
	parent, err := s.repo.FindByID(ctx, *parentID)
	if errors.Is(err, finance.ErrAccountNotFound) {
		return finance.ErrParentNotFound
	}
	if err != nil {
		return passDomain(s.logger, err, "Failed to get parent account")
	}
	return account.SetParent(parent)
}

func (s *AccountService) applyOptions(account *finance.ChartOfAccount, in AccountInput) {
	if in.AllowTransactions != nil {
		account.AllowTransactions = *in.AllowTransactions
	}
	account.SortOrder = in.SortOrder
}
