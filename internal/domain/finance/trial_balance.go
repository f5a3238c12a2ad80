package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrialBalanceStatus represents the result status of a trial balance check
type TrialBalanceStatus string

const (
	TrialBalanceStatusBalanced   TrialBalanceStatus = "BALANCED"
	TrialBalanceStatusUnbalanced TrialBalanceStatus = "UNBALANCED"
)

// IsBalanced returns true if the trial balance is balanced
func (s TrialBalanceStatus) IsBalanced() bool {
	return s == TrialBalanceStatusBalanced
}

// maxExpressionTerms is how many terms the expression prints before eliding
const maxExpressionTerms = 10

// TransactionData is one input row of the trial balance fold
type TransactionData struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	AccountName     string          `json:"account_name"`
}

// TrialBalanceCalculation is the result of folding transactions into a balance
type TrialBalanceCalculation struct {
	FinalBalance     decimal.Decimal `json:"final_balance"`
	Expression       string          `json:"expression"`
	TransactionCount int             `json:"transaction_count"`
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
}

// CalculationStep is one signed term of the fold with its running total
type CalculationStep struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	RunningTotal  decimal.Decimal `json:"running_total"`
	Type          string          `json:"type"`
}

// CalculationSummary totals a breakdown
type CalculationSummary struct {
	TotalDebits      decimal.Decimal `json:"total_debits"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	FinalBalance     decimal.Decimal `json:"final_balance"`
	TransactionCount int             `json:"transaction_count"`
}

// CalculationBreakdown lists every term of the fold for audit
type CalculationBreakdown struct {
	Transactions []CalculationStep  `json:"transactions"`
	Summary      CalculationSummary `json:"summary"`
}

// ErrNegativeAmount rejects fold inputs with negative debit or credit
var ErrNegativeAmount = shared.NewDomainError("INVALID_AMOUNT", "Debit and credit amounts must not be negative")

// ValidateTransactionSigns checks that every debit and credit is non-negative
func ValidateTransactionSigns(transactions []TransactionData) error {
	for i, t := range transactions {
		if t.DebitAmount.IsNegative() {
			return shared.NewDomainError(ErrNegativeAmount.Code,
				fmt.Sprintf("Transaction %d: invalid debit amount %s", i+1, t.DebitAmount.String()))
		}
		if t.CreditAmount.IsNegative() {
			return shared.NewDomainError(ErrNegativeAmount.Code,
				fmt.Sprintf("Transaction %d: invalid credit amount %s", i+1, t.CreditAmount.String()))
		}
	}
	return nil
}

// SignedTerms turns transactions into the ordered fold terms: debits negative, credits positive
func SignedTerms(transactions []TransactionData) []decimal.Decimal {
	terms := make([]decimal.Decimal, 0, len(transactions)*2)
	for _, t := range transactions {
		if t.DebitAmount.IsPositive() {
			terms = append(terms, t.DebitAmount.Abs().Neg())
		}
		if t.CreditAmount.IsPositive() {
			terms = append(terms, t.CreditAmount.Abs())
		}
	}
	return terms
}

// CalculateTrialBalance folds transactions into a final balance and expression
func CalculateTrialBalance(transactions []TransactionData) (*TrialBalanceCalculation, error) {
	if err := ValidateTransactionSigns(transactions); err != nil {
		return nil, err
	}

	terms := SignedTerms(transactions)
	totalDebits, totalCredits := decimal.Zero, decimal.Zero
	for _, term := range terms {
		if term.IsNegative() {
			totalDebits = totalDebits.Add(term.Abs())
		} else {
			totalCredits = totalCredits.Add(term)
		}
	}
	final := totalCredits.Sub(totalDebits)

	return &TrialBalanceCalculation{
		FinalBalance:     final,
		Expression:       FormatExpression(terms, final),
		TransactionCount: len(terms),
		TotalDebits:      totalDebits,
		TotalCredits:     totalCredits,
	}, nil
}

// FormatExpression renders terms as "1000 - 1100 + 11000 - 1000 = 9900"
func FormatExpression(terms []decimal.Decimal, final decimal.Decimal) string {
	if len(terms) == 0 {
		return "0 = 0"
	}

	var b strings.Builder
	shown := terms
	if len(shown) > maxExpressionTerms {
		shown = shown[:maxExpressionTerms]
	}
	for i, term := range shown {
		if i == 0 {
			b.WriteString(term.StringFixed(0))
			continue
		}
		if term.IsNegative() {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(term.Abs().StringFixed(0))
	}
	if len(terms) > maxExpressionTerms {
		fmt.Fprintf(&b, " + ... (%d more)", len(terms)-maxExpressionTerms)
	}
	b.WriteString(" = ")
	b.WriteString(final.StringFixed(0))
	return b.String()
}

// CreateCalculationBreakdown lists each term with its running total
func CreateCalculationBreakdown(transactions []TransactionData) (*CalculationBreakdown, error) {
	if err := ValidateTransactionSigns(transactions); err != nil {
		return nil, err
	}

	breakdown := &CalculationBreakdown{Transactions: make([]CalculationStep, 0, len(transactions)*2)}
	running := decimal.Zero
	for _, t := range transactions {
		if t.DebitAmount.IsPositive() {
			amount := t.DebitAmount.Abs().Neg()
			running = running.Add(amount)
			breakdown.Summary.TotalDebits = breakdown.Summary.TotalDebits.Add(t.DebitAmount.Abs())
			breakdown.Transactions = append(breakdown.Transactions, CalculationStep{
				TransactionID: t.TransactionID,
				Description:   "Debit: " + t.Description,
				Amount:        amount,
				RunningTotal:  running,
				Type:          "Debit",
			})
		}
		if t.CreditAmount.IsPositive() {
			amount := t.CreditAmount.Abs()
			running = running.Add(amount)
			breakdown.Summary.TotalCredits = breakdown.Summary.TotalCredits.Add(amount)
			breakdown.Transactions = append(breakdown.Transactions, CalculationStep{
				TransactionID: t.TransactionID,
				Description:   "Credit: " + t.Description,
				Amount:        amount,
				RunningTotal:  running,
				Type:          "Credit",
			})
		}
	}
	breakdown.Summary.FinalBalance = running
	breakdown.Summary.TransactionCount = len(breakdown.Transactions)
	return breakdown, nil
}

// AccountBalance is one account line of a trial balance report
type AccountBalance struct {
	AccountID           uuid.UUID       `json:"account_id"`
	AccountCode         string          `json:"account_code"`
	AccountName         string          `json:"account_name"`
	CategoryName        string          `json:"category_name"`
	CategoryDescription string          `json:"category_description"`
	Particulars         string          `json:"particulars"`
	DebitAmount         decimal.Decimal `json:"debit_amount"`
	CreditAmount        decimal.Decimal `json:"credit_amount"`
	NetBalance          decimal.Decimal `json:"net_balance"`
	TransactionCount    int             `json:"transaction_count"`
}

// AccountCategory groups account balances under a heading such as "Assets"
type AccountCategory struct {
	Name     string           `json:"name"`
	Accounts []AccountBalance `json:"accounts"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// TrialBalanceReport is a generated trial balance for a date range
type TrialBalanceReport struct {
	StartDate             time.Time          `json:"start_date"`
	EndDate               time.Time          `json:"end_date"`
	Categories            []AccountCategory  `json:"categories"`
	TotalDebits           decimal.Decimal    `json:"total_debits"`
	TotalCredits          decimal.Decimal    `json:"total_credits"`
	FinalBalance          decimal.Decimal    `json:"final_balance"`
	CalculationExpression string             `json:"calculation_expression"`
	Status                TrialBalanceStatus `json:"status"`
	GeneratedAt           time.Time          `json:"generated_at"`
	TotalTransactions     int                `json:"total_transactions"`
}

// AccountVariance is the change of one account between two periods
type AccountVariance struct {
	AccountID        uuid.UUID       `json:"account_id"`
	AccountName      string          `json:"account_name"`
	CategoryName     string          `json:"category_name"`
	Period1Balance   decimal.Decimal `json:"period1_balance"`
	Period2Balance   decimal.Decimal `json:"period2_balance"`
	AbsoluteChange   decimal.Decimal `json:"absolute_change"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	ChangeType       string          `json:"change_type"`
}

// Variance change types
const (
	ChangeTypeNew       = "New"
	ChangeTypeRemoved   = "Removed"
	ChangeTypeIncreased = "Increased"
	ChangeTypeDecreased = "Decreased"
)

// TrialBalanceComparison holds both reports and their account variances
type TrialBalanceComparison struct {
	Period1       *TrialBalanceReport `json:"period1"`
	Period2       *TrialBalanceReport `json:"period2"`
	Variances     []AccountVariance   `json:"variances"`
	TotalVariance decimal.Decimal     `json:"total_variance"`
}
