package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCurrency is the currency every balance read is reported in
const BalanceCurrency = "BDT"

// Code prefixes that mark asset accounts as cash or bank holdings
var (
	cashCodePrefixes = []string{"1000", "1001"}
	bankCodePrefixes = []string{"1010", "1011"}
)

// AccountMovement totals the ledger lines of one account
type AccountMovement struct {
	AccountID   uuid.UUID
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// AccountPosition is the balance of one account on its normal side, as of a date
type AccountPosition struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
	AsOf        time.Time       `json:"as_of"`
	Currency    string          `json:"currency"`
}

// BalanceGroup lists the balances of related accounts, such as every cash account
type BalanceGroup struct {
	Accounts []AccountPosition `json:"accounts"`
	Total    decimal.Decimal   `json:"total"`
	AsOf     time.Time         `json:"as_of"`
	Currency string            `json:"currency"`
}

// BalanceSummary is the financial position across the whole chart
type BalanceSummary struct {
	BankBalance      decimal.Decimal   `json:"bank_balance"`
	CashOnHand       decimal.Decimal   `json:"cash_on_hand"`
	TotalAssets      decimal.Decimal   `json:"total_assets"`
	TotalLiabilities decimal.Decimal   `json:"total_liabilities"`
	TotalEquity      decimal.Decimal   `json:"total_equity"`
	TotalRevenue     decimal.Decimal   `json:"total_revenue"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	NetIncome        decimal.Decimal   `json:"net_income"`
	KeyAccounts      []AccountPosition `json:"key_accounts"`
	AsOf             time.Time         `json:"as_of"`
	LastUpdated      time.Time         `json:"last_updated"`
	IsFromCache      bool              `json:"is_from_cache"`
	Currency         string            `json:"currency"`
}

// DebitNormal reports whether balances of the type grow with debits
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// NaturalBalance is debit minus credit for debit-normal types and credit minus debit otherwise
func NaturalBalance(t AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// IsBankAccount matches asset accounts coded 1010/1011 or named after a bank
func (a *ChartOfAccount) IsBankAccount() bool {
	return a.AccountType == AccountTypeAsset &&
		(hasAnyPrefix(a.AccountCode, bankCodePrefixes) || strings.Contains(strings.ToLower(a.AccountName), "bank"))
}

// IsCashAccount matches asset accounts coded 1000/1001 or named after cash.
// Bank accounts never count as cash.
func (a *ChartOfAccount) IsCashAccount() bool {
	if a.AccountType != AccountTypeAsset || a.IsBankAccount() {
		return false
	}
	return hasAnyPrefix(a.AccountCode, cashCodePrefixes) || strings.Contains(strings.ToLower(a.AccountName), "cash")
}

// BalanceOf folds an account's movement into its balance
func BalanceOf(a *ChartOfAccount, m AccountMovement, asOf time.Time) AccountPosition {
	return AccountPosition{
		AccountID:   a.ID,
		AccountCode: a.AccountCode,
		AccountName: a.AccountName,
		AccountType: a.AccountType,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		Balance:     NaturalBalance(a.AccountType, m.TotalDebit, m.TotalCredit),
		AsOf:        asOf,
		Currency:    BalanceCurrency,
	}
}

// Positions pairs accounts with their movements; accounts without lines balance at zero
func Positions(accounts []*ChartOfAccount, movements []AccountMovement, asOf time.Time) []AccountPosition {
	byAccount := make(map[uuid.UUID]AccountMovement, len(movements))
	for _, m := range movements {
		byAccount[m.AccountID] = m
	}
	out := make([]AccountPosition, 0, len(accounts))
	for _, a := range accounts {
		m, ok := byAccount[a.ID]
		if !ok {
			m = AccountMovement{AccountID: a.ID, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
		}
		out = append(out, BalanceOf(a, m, asOf))
	}
	return out
}

// GroupBalances keeps the accounts matching keep and totals them
func GroupBalances(accounts []*ChartOfAccount, movements []AccountMovement, asOf time.Time, keep func(*ChartOfAccount) bool) BalanceGroup {
	selected := make([]*ChartOfAccount, 0)
	for _, a := range accounts {
		if keep(a) {
			selected = append(selected, a)
		}
	}
	group := BalanceGroup{
		Accounts: Positions(selected, movements, asOf),
		Total:    decimal.Zero,
		AsOf:     asOf,
		Currency: BalanceCurrency,
	}
	for _, b := range group.Accounts {
		group.Total = group.Total.Add(b.Balance)
	}
	return group
}

// SummarizeBalances totals every account by type and lists those with a non-zero balance
func SummarizeBalances(accounts []*ChartOfAccount, movements []AccountMovement, asOf, now time.Time) *BalanceSummary {
	s := &BalanceSummary{
		BankBalance:      decimal.Zero,
		CashOnHand:       decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		KeyAccounts:      make([]AccountPosition, 0),
		AsOf:             asOf,
		LastUpdated:      now,
		Currency:         BalanceCurrency,
	}

	for i, b := range Positions(accounts, movements, asOf) {
		a := accounts[i]
		switch b.AccountType {
		case AccountTypeAsset:
			s.TotalAssets = s.TotalAssets.Add(b.Balance)
		case AccountTypeLiability:
			s.TotalLiabilities = s.TotalLiabilities.Add(b.Balance)
		case AccountTypeEquity:
			s.TotalEquity = s.TotalEquity.Add(b.Balance)
		case AccountTypeRevenue:
			s.TotalRevenue = s.TotalRevenue.Add(b.Balance)
		case AccountTypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(b.Balance)
		}
		if a.IsBankAccount() {
			s.BankBalance = s.BankBalance.Add(b.Balance)
		} else if a.IsCashAccount() {
			s.CashOnHand = s.CashOnHand.Add(b.Balance)
		}
		if !b.Balance.IsZero() {
			s.KeyAccounts = append(s.KeyAccounts, b)
		}
	}
	s.NetIncome = s.TotalRevenue.Sub(s.TotalExpenses)
	return s
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
