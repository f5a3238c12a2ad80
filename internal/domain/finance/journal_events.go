package finance

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeJournalEntry names journal entries in events
const AggregateTypeJournalEntry = "JournalEntry"

// Journal entry event types
const (
	EventTypeJournalEntryPosted   = "JournalEntryPosted"
	EventTypeJournalEntryApproved = "JournalEntryApproved"
	EventTypeJournalEntryReversed = "JournalEntryReversed"
)

// JournalEntryPostedEvent is raised when an entry starts counting in the ledger
type JournalEntryPostedEvent struct {
	shared.BaseDomainEvent
	JournalNumber   string          `json:"journal_number"`
	JournalType     JournalType     `json:"journal_type"`
	TransactionDate time.Time       `json:"transaction_date"`
	TotalDebit      decimal.Decimal `json:"total_debit"`
	TotalCredit     decimal.Decimal `json:"total_credit"`
}

// NewJournalEntryPostedEvent creates a new JournalEntryPostedEvent
func NewJournalEntryPostedEvent(e *JournalEntry) *JournalEntryPostedEvent {
	return &JournalEntryPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJournalEntryPosted, AggregateTypeJournalEntry, e.ID),
		JournalNumber:   e.JournalNumber,
		JournalType:     e.JournalType,
		TransactionDate: e.TransactionDate,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
	}
}

// JournalEntryApprovedEvent is raised when a posted entry is approved
type JournalEntryApprovedEvent struct {
	shared.BaseDomainEvent
	JournalNumber string    `json:"journal_number"`
	ApprovedBy    uuid.UUID `json:"approved_by"`
}

// NewJournalEntryApprovedEvent creates a new JournalEntryApprovedEvent
func NewJournalEntryApprovedEvent(e *JournalEntry) *JournalEntryApprovedEvent {
	evt := &JournalEntryApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJournalEntryApproved, AggregateTypeJournalEntry, e.ID),
		JournalNumber:   e.JournalNumber,
	}
	if e.ApprovedByUserID != nil {
		evt.ApprovedBy = *e.ApprovedByUserID
	}
	return evt
}

// JournalEntryReversedEvent is raised when an entry leaves the ledger
type JournalEntryReversedEvent struct {
	shared.BaseDomainEvent
	JournalNumber   string    `json:"journal_number"`
	TransactionDate time.Time `json:"transaction_date"`
	Reason          string    `json:"reason"`
}

// NewJournalEntryReversedEvent creates a new JournalEntryReversedEvent
func NewJournalEntryReversedEvent(e *JournalEntry) *JournalEntryReversedEvent {
	return &JournalEntryReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJournalEntryReversed, AggregateTypeJournalEntry, e.ID),
		JournalNumber:   e.JournalNumber,
		TransactionDate: e.TransactionDate,
		Reason:          e.ReversalReason,
	}
}
