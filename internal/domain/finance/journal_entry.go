package finance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalType classifies the business origin of a journal entry
type JournalType string

const (
	JournalTypeGeneral      JournalType = "General"
	JournalTypeSales        JournalType = "Sales"
	JournalTypePurchase     JournalType = "Purchase"
	JournalTypeCashReceipt  JournalType = "CashReceipt"
	JournalTypeCashPayment  JournalType = "CashPayment"
	JournalTypeBankTransfer JournalType = "BankTransfer"
	JournalTypeAdjustment   JournalType = "Adjustment"
	JournalTypeOpening      JournalType = "Opening"
	JournalTypeClosing      JournalType = "Closing"
)

// AllJournalTypes returns every journal type
func AllJournalTypes() []JournalType {
	return []JournalType{
		JournalTypeGeneral, JournalTypeSales, JournalTypePurchase, JournalTypeCashReceipt,
		JournalTypeCashPayment, JournalTypeBankTransfer, JournalTypeAdjustment,
		JournalTypeOpening, JournalTypeClosing,
	}
}

// IsValid checks if the journal type is known
func (t JournalType) IsValid() bool {
	for _, jt := range AllJournalTypes() {
		if jt == t {
			return true
		}
	}
	return false
}

// IsCash reports whether the type belongs to the cash book
func (t JournalType) IsCash() bool {
	return t == JournalTypeCashReceipt || t == JournalTypeCashPayment
}

// ParseJournalType parses a journal type name, ignoring case
func ParseJournalType(s string) (JournalType, error) {
	for _, jt := range AllJournalTypes() {
		if strings.EqualFold(string(jt), strings.TrimSpace(s)) {
			return jt, nil
		}
	}
	return "", shared.NewDomainError("INVALID_JOURNAL_TYPE", fmt.Sprintf("Unknown journal type %q", s))
}

// JournalStatus is the lifecycle state of a journal entry
type JournalStatus string

const (
	JournalStatusDraft    JournalStatus = "Draft"
	JournalStatusPosted   JournalStatus = "Posted"
	JournalStatusApproved JournalStatus = "Approved"
	JournalStatusReversed JournalStatus = "Reversed"
)

// AllJournalStatuses returns every status in lifecycle order
func AllJournalStatuses() []JournalStatus {
	return []JournalStatus{JournalStatusDraft, JournalStatusPosted, JournalStatusApproved, JournalStatusReversed}
}

// IsValid checks if the status is known
func (s JournalStatus) IsValid() bool {
	for _, st := range AllJournalStatuses() {
		if st == s {
			return true
		}
	}
	return false
}

// CountsInLedger reports whether entries in this status affect balances
func (s JournalStatus) CountsInLedger() bool {
	return s == JournalStatusPosted || s == JournalStatusApproved
}

// ParseJournalStatus parses a status name, ignoring case
func ParseJournalStatus(s string) (JournalStatus, error) {
	for _, st := range AllJournalStatuses() {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", shared.NewDomainError("INVALID_JOURNAL_STATUS", fmt.Sprintf("Unknown journal status %q", s))
}

// LedgerStatuses are the statuses that count towards balances
func LedgerStatuses() []JournalStatus {
	return []JournalStatus{JournalStatusPosted, JournalStatusApproved}
}

// BalanceTolerance is the largest debit/credit difference accepted as balanced
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntryLine is one debit or credit posting to an account
type JournalEntryLine struct {
	ID             uuid.UUID
	JournalEntryID uuid.UUID
	AccountID      uuid.UUID
	CategoryID     *uuid.UUID
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	Reference      string
	LineOrder      int
}

// LineInput carries the caller-provided fields of a line
type LineInput struct {
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Reference   string
}

// JournalEntry is a dated set of balanced postings
type JournalEntry struct {
	shared.BaseAggregateRoot
	JournalNumber    string
	TransactionDate  time.Time
	JournalType      JournalType
	ReferenceNumber  string
	Description      string
	TotalDebit       decimal.Decimal
	TotalCredit      decimal.Decimal
	Status           JournalStatus
	CreatedByUserID  uuid.UUID
	ApprovedByUserID *uuid.UUID
	ApprovedAt       *time.Time
	ApprovalNotes    string
	ReversedByUserID *uuid.UUID
	ReversedAt       *time.Time
	ReversalReason   string
	Lines            []JournalEntryLine
}

// JournalEntryParams are the header fields of a new or updated entry
type JournalEntryParams struct {
	JournalNumber   string
	TransactionDate time.Time
	JournalType     JournalType
	ReferenceNumber string
	Description     string
	CreatedBy       uuid.UUID
	Lines           []LineInput
}

// NewJournalEntry creates a draft entry; multi-line entries must balance
func NewJournalEntry(p JournalEntryParams) (*JournalEntry, error) {
	if strings.TrimSpace(p.JournalNumber) == "" {
		return nil, shared.NewDomainError("INVALID_JOURNAL_NUMBER", "Journal number is required")
	}

	entry := &JournalEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		JournalNumber:     strings.TrimSpace(p.JournalNumber),
		Status:            JournalStatusDraft,
		CreatedByUserID:   p.CreatedBy,
	}
	if err := entry.apply(p); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update replaces header and lines of a draft entry
func (e *JournalEntry) Update(p JournalEntryParams) error {
	if e.Status != JournalStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify journal entry in %s status", e.Status))
	}
	if err := e.apply(p); err != nil {
		return err
	}
	e.IncrementVersion()
	return nil
}

func (e *JournalEntry) apply(p JournalEntryParams) error {
	if p.TransactionDate.IsZero() {
		return shared.NewDomainError("INVALID_TRANSACTION_DATE", "Transaction date is required")
	}
	if !p.JournalType.IsValid() {
		return shared.NewDomainError("INVALID_JOURNAL_TYPE", "Journal type is not valid")
	}
	if len(p.ReferenceNumber) > 50 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference number cannot exceed 50 characters")
	}
	if len(p.Description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if len(p.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Journal entry must have at least one line")
	}

	lines := make([]JournalEntryLine, 0, len(p.Lines))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, in := range p.Lines {
		if err := validateLine(i+1, in); err != nil {
			return err
		}
		lines = append(lines, JournalEntryLine{
			ID:             uuid.New(),
			JournalEntryID: e.ID,
			AccountID:      in.AccountID,
			CategoryID:     in.CategoryID,
			Description:    strings.TrimSpace(in.Description),
			Debit:          in.Debit,
			Credit:         in.Credit,
			Reference:      strings.TrimSpace(in.Reference),
			LineOrder:      i + 1,
		})
		totalDebit = totalDebit.Add(in.Debit)
		totalCredit = totalCredit.Add(in.Credit)
	}

	e.TransactionDate = p.TransactionDate
	e.JournalType = p.JournalType
	e.ReferenceNumber = strings.TrimSpace(p.ReferenceNumber)
	e.Description = strings.TrimSpace(p.Description)
	e.Lines = lines
	e.TotalDebit = totalDebit
	e.TotalCredit = totalCredit

	return e.CheckBalance()
}

func validateLine(n int, in LineInput) error {
	if in.AccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: account is required", n))
	}
	if in.Debit.IsNegative() || in.Credit.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Line %d: amounts cannot be negative", n))
	}
	if in.Debit.IsZero() && in.Credit.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Line %d: debit or credit amount is required", n))
	}
	if len(in.Description) > 500 {
		return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: description cannot exceed 500 characters", n))
	}
	if len(in.Reference) > 200 {
		return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: reference cannot exceed 200 characters", n))
	}
	return nil
}

// IsOneSidedCashEntry reports whether the entry is a single-line cash book record
func (e *JournalEntry) IsOneSidedCashEntry() bool {
	return len(e.Lines) == 1 && e.JournalType.IsCash()
}

// Difference returns TotalDebit minus TotalCredit
func (e *JournalEntry) Difference() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit)
}

// IsBalanced reports whether debits and credits agree within tolerance
func (e *JournalEntry) IsBalanced() bool {
	return e.Difference().Abs().LessThanOrEqual(BalanceTolerance)
}

// CheckBalance returns ErrUnbalancedEntry unless the entry balances or is one-sided cash
func (e *JournalEntry) CheckBalance() error {
	if e.IsOneSidedCashEntry() || e.IsBalanced() {
		return nil
	}
	return shared.NewDomainError(ErrUnbalancedEntry.Code, fmt.Sprintf(
		"Journal entry is not balanced. Debits: %s, Credits: %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2)))
}

// Post completes a draft entry so it counts in the ledger
func (e *JournalEntry) Post() error {
	if e.Status != JournalStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post journal entry in %s status", e.Status))
	}
	if err := e.CheckBalance(); err != nil {
		return err
	}

	e.Status = JournalStatusPosted
	e.IncrementVersion()
	e.AddDomainEvent(NewJournalEntryPostedEvent(e))
	return nil
}

// Approve marks a posted entry as approved
func (e *JournalEntry) Approve(userID uuid.UUID, notes string) error {
	if e.Status != JournalStatusPosted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve journal entry in %s status", e.Status))
	}
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approving user is required")
	}

	now := time.Now().UTC()
	e.Status = JournalStatusApproved
	e.ApprovedByUserID = &userID
	e.ApprovedAt = &now
	e.ApprovalNotes = strings.TrimSpace(notes)
	e.IncrementVersion()
	e.AddDomainEvent(NewJournalEntryApprovedEvent(e))
	return nil
}

// Reverse takes a posted or approved entry out of the ledger
func (e *JournalEntry) Reverse(userID uuid.UUID, reason string) error {
	if !e.Status.CountsInLedger() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reverse journal entry in %s status", e.Status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reversal reason is required")
	}

	e.markReversed(userID, reason)
	e.AddDomainEvent(NewJournalEntryReversedEvent(e))
	return nil
}

// Discard soft-deletes a draft entry
func (e *JournalEntry) Discard(userID uuid.UUID) error {
	if e.Status != JournalStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot delete journal entry in %s status", e.Status))
	}
	e.markReversed(userID, "Deleted")
	return nil
}

func (e *JournalEntry) markReversed(userID uuid.UUID, reason string) {
	now := time.Now().UTC()
	e.Status = JournalStatusReversed
	e.ReversalReason = reason
	e.ReversedAt = &now
	if userID != uuid.Nil {
		e.ReversedByUserID = &userID
	}
	e.IncrementVersion()
}

// JournalValidation is the balance report of a stored entry
type JournalValidation struct {
	IsValid      bool
	IsBalanced   bool
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal
	Errors       []string
	Warnings     []string
}

// Validate reports balance problems without changing the entry
func (e *JournalEntry) Validate() JournalValidation {
	v := JournalValidation{
		TotalDebits:  e.TotalDebit,
		TotalCredits: e.TotalCredit,
		Difference:   e.Difference(),
		IsBalanced:   e.IsBalanced(),
		Errors:       make([]string, 0),
		Warnings:     make([]string, 0),
	}

	if !v.IsBalanced {
		if e.IsOneSidedCashEntry() {
			v.Warnings = append(v.Warnings, "Single-line cash book entry is one-sided")
		} else {
			v.Errors = append(v.Errors, fmt.Sprintf("Journal entry is not balanced. Debits: %s, Credits: %s",
				e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2)))
		}
	}
	if len(e.Lines) == 0 {
		v.Errors = append(v.Errors, "Journal entry has no lines")
	}
	zero := 0
	for _, l := range e.Lines {
		if l.Debit.IsZero() && l.Credit.IsZero() {
			zero++
		}
	}
	if zero > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d lines have zero amounts", zero))
	}

	v.IsValid = len(v.Errors) == 0
	return v
}

// JournalNumberPrefix returns "JE-yyyy-MM" for the month of t
func JournalNumberPrefix(t time.Time) string {
	return fmt.Sprintf("JE-%04d-%02d", t.Year(), int(t.Month()))
}

// FormatJournalNumber returns "JE-yyyy-MM-NNNN"
func FormatJournalNumber(t time.Time, seq int) string {
	return fmt.Sprintf("%s-%04d", JournalNumberPrefix(t), seq)
}

// NextJournalNumber follows lastNumber in the month of t; count is the fallback
// when lastNumber cannot be parsed
func NextJournalNumber(t time.Time, lastNumber string, count int64) string {
	if lastNumber == "" {
		return FormatJournalNumber(t, 1)
	}
	parts := strings.Split(lastNumber, "-")
	if len(parts) == 4 {
		if n, err := strconv.Atoi(parts[3]); err == nil {
			return FormatJournalNumber(t, n+1)
		}
	}
	return FormatJournalNumber(t, int(count)+1)
}

// NewCashBookReference returns "CB-yyyyMMdd-xxxxxxxx"
func NewCashBookReference(t time.Time) string {
	return fmt.Sprintf("CB-%s-%s", t.Format("20060102"), uuid.NewString()[:8])
}

// Journal entry domain errors
var (
	ErrJournalEntryNotFound = shared.NewDomainError("JOURNAL_ENTRY_NOT_FOUND", "Journal entry not found")
	ErrUnbalancedEntry      = shared.NewDomainError("UNBALANCED_ENTRY", "Journal entry is not balanced")
)
