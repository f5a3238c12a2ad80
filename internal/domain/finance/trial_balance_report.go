package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTrialBalanceRangeDays bounds a single report period
const MaxTrialBalanceRangeDays = 365

// LedgerLine is a journal line joined with its entry header
type LedgerLine struct {
	JournalEntryID  uuid.UUID
	AccountID       uuid.UUID
	TransactionDate time.Time
	CreatedAt       time.Time
	JournalType     JournalType
	ReferenceNumber string
	Particulars     string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
}

// TrialBalancePeriod is the input of report generation
type TrialBalancePeriod struct {
	StartDate           time.Time
	EndDate             time.Time
	IncludeZeroBalances bool
	CategoryFilter      []string
}

// Validate checks both dates are set, ordered and at most a year apart
func (p TrialBalancePeriod) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Start date and end date are required")
	}
	if p.StartDate.After(p.EndDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Start date must be before or equal to end date")
	}
	if p.EndDate.Sub(p.StartDate) > MaxTrialBalanceRangeDays*24*time.Hour {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Date range cannot exceed 365 days")
	}
	return nil
}

func (p TrialBalancePeriod) includesCategory(name string) bool {
	if len(p.CategoryFilter) == 0 {
		return true
	}
	for _, f := range p.CategoryFilter {
		if strings.EqualFold(strings.TrimSpace(f), name) {
			return true
		}
	}
	return false
}

// BuildTrialBalanceReport groups active accounts by type and folds their balances.
// accounts must be ordered by code; lines holds every ledger line of the period.
func BuildTrialBalanceReport(period TrialBalancePeriod, accounts []*ChartOfAccount, lines []LedgerLine) *TrialBalanceReport {
	byAccount := make(map[uuid.UUID][]LedgerLine)
	for _, l := range lines {
		byAccount[l.AccountID] = append(byAccount[l.AccountID], l)
	}

	report := &TrialBalanceReport{
		StartDate:   period.StartDate,
		EndDate:     period.EndDate,
		Categories:  make([]AccountCategory, 0, 5),
		GeneratedAt: time.Now().UTC(),
	}

	folded := make([]TransactionData, 0, len(accounts))
	for _, accountType := range AllAccountTypes() {
		name := accountType.CategoryName()
		if !period.includesCategory(name) {
			continue
		}

		category := AccountCategory{Name: name, Accounts: make([]AccountBalance, 0), Subtotal: decimal.Zero}
		for _, account := range accounts {
			if account.AccountType != accountType || !account.IsActive {
				continue
			}
			balance := BuildAccountBalance(account, byAccount[account.ID])
			if !period.IncludeZeroBalances && balance.NetBalance.IsZero() && balance.TransactionCount == 0 {
				continue
			}

			category.Accounts = append(category.Accounts, balance)
			category.Subtotal = category.Subtotal.Add(balance.NetBalance)
			folded = append(folded, TransactionData{
				TransactionID: account.ID,
				DebitAmount:   balance.DebitAmount.Abs(),
				CreditAmount:  balance.CreditAmount,
				Description:   account.AccountName,
				AccountName:   account.AccountName,
			})
		}

		if len(category.Accounts) > 0 || period.IncludeZeroBalances {
			report.Categories = append(report.Categories, category)
		}
	}

	// inputs are non-negative by construction
	calc, _ := CalculateTrialBalance(folded)
	report.TotalDebits = calc.TotalDebits
	report.TotalCredits = calc.TotalCredits
	report.FinalBalance = calc.FinalBalance
	report.CalculationExpression = calc.Expression
	report.TotalTransactions = calc.TransactionCount
	report.Status = TrialBalanceStatusUnbalanced
	if calc.FinalBalance.Abs().LessThanOrEqual(BalanceTolerance) {
		report.Status = TrialBalanceStatusBalanced
	}
	return report
}

// BuildAccountBalance sums an account's ledger lines; debits are reported negative
func BuildAccountBalance(account *ChartOfAccount, lines []LedgerLine) AccountBalance {
	totalDebits, totalCredits := decimal.Zero, decimal.Zero
	types := make([]JournalType, 0, len(lines))
	for _, l := range lines {
		totalDebits = totalDebits.Add(l.Debit)
		totalCredits = totalCredits.Add(l.Credit)
		types = append(types, l.JournalType)
	}

	return AccountBalance{
		AccountID:           account.ID,
		AccountCode:         account.AccountCode,
		AccountName:         account.AccountName,
		CategoryName:        account.AccountType.CategoryName(),
		CategoryDescription: AccountCategoryDescription(account, types),
		Particulars:         MostRelevantParticulars(lines),
		DebitAmount:         totalDebits.Neg(),
		CreditAmount:        totalCredits,
		NetBalance:          totalCredits.Sub(totalDebits),
		TransactionCount:    len(lines),
	}
}

// MostRelevantParticulars returns the most recent non-empty journal description
func MostRelevantParticulars(lines []LedgerLine) string {
	var latest *LedgerLine
	for i := range lines {
		if strings.TrimSpace(lines[i].Particulars) == "" {
			continue
		}
		if latest == nil || lines[i].TransactionDate.After(latest.TransactionDate) {
			latest = &lines[i]
		}
	}
	if latest == nil {
		return ""
	}
	return strings.TrimSpace(latest.Particulars)
}

// AccountCategoryDescription derives a sub-heading from the account name and journal types
func AccountCategoryDescription(account *ChartOfAccount, journalTypes []JournalType) string {
	name := strings.ToLower(account.AccountName)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(name, w) {
				return true
			}
		}
		return false
	}
	seen := func(jt JournalType) bool {
		for _, t := range journalTypes {
			if t == jt {
				return true
			}
		}
		return false
	}

	switch account.AccountType {
	case AccountTypeAsset:
		switch {
		case has("cash", "bank"):
			return "Current Assets - Cash & Bank"
		case has("inventory", "stock"):
			return "Current Assets - Inventory"
		case has("receivable", "debtor"):
			return "Current Assets - Accounts Receivable"
		case has("equipment", "machinery"):
			return "Fixed Assets - Equipment"
		case has("building", "property"):
			return "Fixed Assets - Property"
		}
		return "Assets - General"
	case AccountTypeLiability:
		switch {
		case has("payable", "creditor"):
			return "Current Liabilities - Accounts Payable"
		case has("loan", "debt"):
			return "Long-term Liabilities - Loans"
		case has("tax", "vat"):
			return "Current Liabilities - Tax Payable"
		}
		return "Liabilities - General"
	case AccountTypeEquity:
		switch {
		case has("capital", "owner"):
			return "Equity - Owner's Capital"
		case has("retained", "earning"):
			return "Equity - Retained Earnings"
		}
		return "Equity - General"
	case AccountTypeRevenue:
		switch {
		case has("sales") || seen(JournalTypeSales):
			return "Revenue - Sales"
		case has("service", "fee"):
			return "Revenue - Service Income"
		case has("interest", "investment"):
			return "Revenue - Other Income"
		}
		return "Revenue - General"
	case AccountTypeExpense:
		switch {
		case has("cost", "cogs") || seen(JournalTypePurchase):
			return "Expenses - Cost of Goods Sold"
		case has("salary", "wage"):
			return "Expenses - Payroll"
		case has("rent", "utilities"):
			return "Expenses - Operating"
		case has("marketing", "advertising"):
			return "Expenses - Marketing"
		}
		return "Expenses - General"
	}
	return "Uncategorized"
}

// CompareTrialBalances lists per-account changes between two reports
func CompareTrialBalances(period1, period2 *TrialBalanceReport) *TrialBalanceComparison {
	index := func(r *TrialBalanceReport) (map[uuid.UUID]AccountBalance, []uuid.UUID) {
		m := make(map[uuid.UUID]AccountBalance)
		order := make([]uuid.UUID, 0)
		for _, c := range r.Categories {
			for _, a := range c.Accounts {
				if _, ok := m[a.AccountID]; !ok {
					order = append(order, a.AccountID)
				}
				m[a.AccountID] = a
			}
		}
		return m, order
	}
	accounts1, order1 := index(period1)
	accounts2, order2 := index(period2)

	ids := order1
	for _, id := range order2 {
		if _, ok := accounts1[id]; !ok {
			ids = append(ids, id)
		}
	}

	hundred := decimal.NewFromInt(100)
	variances := make([]AccountVariance, 0)
	total := decimal.Zero
	for _, id := range ids {
		a1, in1 := accounts1[id]
		a2, in2 := accounts2[id]

		b1, b2 := a1.NetBalance, a2.NetBalance
		change := b2.Sub(b1)
		if change.IsZero() && in1 && in2 {
			continue
		}

		pct := decimal.Zero
		if !b1.IsZero() {
			pct = change.Div(b1.Abs()).Mul(hundred)
		}

		changeType := ChangeTypeDecreased
		switch {
		case !in1:
			changeType = ChangeTypeNew
		case !in2:
			changeType = ChangeTypeRemoved
		case change.IsPositive():
			changeType = ChangeTypeIncreased
		}

		src := a1
		if !in1 {
			src = a2
		}
		variances = append(variances, AccountVariance{
			AccountID:        id,
			AccountName:      src.AccountName,
			CategoryName:     src.CategoryName,
			Period1Balance:   b1,
			Period2Balance:   b2,
			AbsoluteChange:   change,
			PercentageChange: pct,
			ChangeType:       changeType,
		})
		total = total.Add(change.Abs())
	}

	sort.SliceStable(variances, func(i, j int) bool {
		return variances[i].AbsoluteChange.Abs().GreaterThan(variances[j].AbsoluteChange.Abs())
	})

	return &TrialBalanceComparison{
		Period1:       period1,
		Period2:       period2,
		Variances:     variances,
		TotalVariance: total,
	}
}

// AccountTransaction is one ledger line of an account drill-down
type AccountTransaction struct {
	ID                  uuid.UUID       `json:"id"`
	Date                time.Time       `json:"date"`
	CategoryDescription string          `json:"category_description"`
	Particulars         string          `json:"particulars"`
	ReferenceNumber     string          `json:"reference_number"`
	DebitAmount         decimal.Decimal `json:"debit_amount"`
	CreditAmount        decimal.Decimal `json:"credit_amount"`
	RunningBalance      decimal.Decimal `json:"running_balance"`
	AccountID           uuid.UUID       `json:"account_id"`
	AccountName         string          `json:"account_name"`
}

// AccountTransactionSummary totals an account drill-down
type AccountTransactionSummary struct {
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	TransactionCount int             `json:"transaction_count"`
}

// BuildAccountTransactions walks lines in the given order, accumulating credit minus debit
func BuildAccountTransactions(account *ChartOfAccount, lines []LedgerLine) ([]AccountTransaction, AccountTransactionSummary) {
	txs := make([]AccountTransaction, 0, len(lines))
	running := decimal.Zero
	summary := AccountTransactionSummary{
		TotalDebits:    decimal.Zero,
		TotalCredits:   decimal.Zero,
		OpeningBalance: account.OpeningBalance,
	}

	for _, l := range lines {
		running = running.Add(l.Credit).Sub(l.Debit)
		summary.TotalDebits = summary.TotalDebits.Add(l.Debit)
		summary.TotalCredits = summary.TotalCredits.Add(l.Credit)
		txs = append(txs, AccountTransaction{
			ID:                  l.JournalEntryID,
			Date:                l.TransactionDate,
			CategoryDescription: AccountCategoryDescription(account, []JournalType{l.JournalType}),
			Particulars:         l.Particulars,
			ReferenceNumber:     l.ReferenceNumber,
			DebitAmount:         l.Debit.Neg(),
			CreditAmount:        l.Credit,
			RunningBalance:      running,
			AccountID:           account.ID,
			AccountName:         account.AccountName,
		})
	}

	summary.NetBalance = summary.TotalCredits.Sub(summary.TotalDebits)
	summary.ClosingBalance = summary.OpeningBalance.Add(summary.NetBalance)
	summary.TransactionCount = len(txs)
	return txs, summary
}
