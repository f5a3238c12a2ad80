package finance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType is the top-level classification of a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// AllAccountTypes returns the account types in chart order
func AllAccountTypes() []AccountType {
	return []AccountType{AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense}
}

// IsValid checks if the account type is known
func (t AccountType) IsValid() bool {
	_, ok := t.index()
	return ok
}

func (t AccountType) index() (int, bool) {
	for i, at := range AllAccountTypes() {
		if at == t {
			return i, true
		}
	}
	return 0, false
}

// CodePrefix is the leading digit of account codes of this type (1..5)
func (t AccountType) CodePrefix() string {
	i, ok := t.index()
	if !ok {
		return "9"
	}
	return strconv.Itoa(i + 1)
}

// CategoryName is the trial balance section heading for the type
func (t AccountType) CategoryName() string {
	switch t {
	case AccountTypeAsset:
		return "Assets"
	case AccountTypeLiability:
		return "Liabilities"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeRevenue:
		return "Income"
	case AccountTypeExpense:
		return "Expenses"
	}
	return "Other"
}

// Description explains the account type
func (t AccountType) Description() string {
	switch t {
	case AccountTypeAsset:
		return "Resources owned by the company"
	case AccountTypeLiability:
		return "Debts and obligations"
	case AccountTypeEquity:
		return "Owner's equity and retained earnings"
	case AccountTypeRevenue:
		return "Income from sales and services"
	case AccountTypeExpense:
		return "Costs and expenses"
	}
	return "Other account type"
}

// ParseAccountType accepts a type name (any case) or its ordinal 0..4
func ParseAccountType(s string) (AccountType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		types := AllAccountTypes()
		if n >= 0 && n < len(types) {
			return types[n], nil
		}
	}
	for _, at := range AllAccountTypes() {
		if strings.EqualFold(string(at), s) {
			return at, nil
		}
	}
	return "", shared.NewDomainError("INVALID_ACCOUNT_TYPE", fmt.Sprintf("Unknown account type %q", s))
}

const (
	maxAccountCodeLength = 10
	maxAccountNameLength = 200
)

// ChartOfAccount is a ledger account in the chart of accounts
type ChartOfAccount struct {
	shared.BaseAggregateRoot
	AccountCode       string
	AccountName       string
	AccountType       AccountType
	ParentAccountID   *uuid.UUID
	Description       string
	OpeningBalance    decimal.Decimal
	CurrentBalance    decimal.Decimal
	IsActive          bool
	IsDynamic         bool
	CategoryGroup     string
	SortOrder         int
	AllowTransactions bool
}

// NewChartOfAccount creates an active account that accepts postings
func NewChartOfAccount(code, name string, accountType AccountType, description string) (*ChartOfAccount, error) {
	code, name, err := validateAccountFields(code, name, accountType, description)
	if err != nil {
		return nil, err
	}

	return &ChartOfAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountCode:       code,
		AccountName:       name,
		AccountType:       accountType,
		Description:       strings.TrimSpace(description),
		OpeningBalance:    decimal.Zero,
		CurrentBalance:    decimal.Zero,
		IsActive:          true,
		IsDynamic:         true,
		AllowTransactions: true,
	}, nil
}

// Update replaces the editable fields
func (a *ChartOfAccount) Update(code, name string, accountType AccountType, description string) error {
	code, name, err := validateAccountFields(code, name, accountType, description)
	if err != nil {
		return err
	}
	if a.ParentAccountID != nil && accountType != a.AccountType {
		return shared.NewDomainError("ACCOUNT_TYPE_MISMATCH", "Cannot change type of an account that has a parent")
	}

	a.AccountCode = code
	a.AccountName = name
	a.AccountType = accountType
	a.Description = strings.TrimSpace(description)
	a.IncrementVersion()
	return nil
}

// SetParent attaches the account under parent; nil detaches it
func (a *ChartOfAccount) SetParent(parent *ChartOfAccount) error {
	if parent == nil {
		a.ParentAccountID = nil
		a.IncrementVersion()
		return nil
	}
	if parent.ID == a.ID {
		return shared.NewDomainError("INVALID_PARENT_ACCOUNT", "An account cannot be its own parent")
	}
	if parent.AccountType != a.AccountType {
		return shared.NewDomainError("ACCOUNT_TYPE_MISMATCH", "Parent account must have the same account type")
	}
	if !parent.IsActive {
		return shared.NewDomainError("INVALID_PARENT_ACCOUNT", "Parent account is inactive")
	}

	id := parent.ID
	a.ParentAccountID = &id
	a.IncrementVersion()
	return nil
}

// SetOpeningBalance sets the opening balance; the current balance moves with it
func (a *ChartOfAccount) SetOpeningBalance(amount decimal.Decimal) {
	delta := amount.Sub(a.OpeningBalance)
	a.OpeningBalance = amount
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	a.IncrementVersion()
}

// ApplyPosting moves the current balance by credit minus debit
func (a *ChartOfAccount) ApplyPosting(debit, credit decimal.Decimal) {
	a.CurrentBalance = a.CurrentBalance.Add(credit).Sub(debit)
	a.IncrementVersion()
}

// Deactivate soft-deletes the account
func (a *ChartOfAccount) Deactivate() {
	a.IsActive = false
	a.IncrementVersion()
}

// CanPost reports whether journal lines may reference this account
func (a *ChartOfAccount) CanPost() bool {
	return a.IsActive && a.AllowTransactions
}

// NextAccountCode returns prefix+NNN following the highest numeric code of the type
func NextAccountCode(accountType AccountType, existingCodes []string) string {
	prefix := accountType.CodePrefix()
	base, _ := strconv.Atoi(prefix)
	next := base*1000 + 1

	for _, code := range existingCodes {
		code = strings.TrimSpace(code)
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code)
		if err != nil || n/1000 != base {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}

	return strconv.Itoa(next)
}

func validateAccountFields(code, name string, accountType AccountType, description string) (string, string, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return "", "", shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code is required")
	}
	if len(code) > maxAccountCodeLength {
		return "", "", shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot exceed 10 characters")
	}
	if name == "" {
		return "", "", shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name is required")
	}
	if len(name) > maxAccountNameLength {
		return "", "", shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 200 characters")
	}
	if len(description) > 500 {
		return "", "", shared.NewDomainError("INVALID_ACCOUNT_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if !accountType.IsValid() {
		return "", "", ErrInvalidAccountType
	}
	return code, name, nil
}

// Account domain errors
var (
	ErrAccountNotFound      = shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	ErrDuplicateAccountCode = shared.NewDomainError("DUPLICATE_ACCOUNT_CODE", "An account with this code already exists")
	ErrAccountInUse         = shared.NewDomainError("ACCOUNT_IN_USE", "Account has journal entry lines or active sub-accounts")
	ErrParentNotFound       = shared.NewDomainError("PARENT_ACCOUNT_NOT_FOUND", "Parent account not found")
	ErrInvalidAccountType   = shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
)
