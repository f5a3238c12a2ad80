package finance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Page size bounds of journal listings
const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

// writeAttempts bounds reruns of a write transaction that lost a race: a
// concurrent writer took its journal number or moved a row it updates
const writeAttempts = 3

// JournalListInput filters a journal entry listing
type JournalListInput struct {
	Filter   finance.JournalEntryFilter
	Page     int
	PageSize int
}

// JournalService runs the journal entry lifecycle
type JournalService struct {
	journals   finance.JournalEntryRepository
	accounts   finance.AccountRepository
	categories finance.CategoryRepository
	tx         shared.TxRunner
	publisher  shared.EventPublisher
	metrics    *telemetry.Metrics
	logger     *zap.Logger

	archive       ExportArchive
	archivePrefix string
}

// NewJournalService creates a new JournalService
func NewJournalService(
	journals finance.JournalEntryRepository,
	accounts finance.AccountRepository,
	categories finance.CategoryRepository,
	tx shared.TxRunner,
	publisher shared.EventPublisher,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *JournalService {
	return &JournalService{
		journals:   journals,
		accounts:   accounts,
		categories: categories,
		tx:         tx,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// List returns a page of journal entries with their lines
func (s *JournalService) List(ctx context.Context, in JournalListInput) (*JournalEntryListResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize <= 0 {
		in.PageSize = defaultJournalPageSize
	}
	if in.PageSize > maxJournalPageSize {
		in.PageSize = maxJournalPageSize
	}

	filter := in.Filter
	filter.Page = in.Page
	filter.PageSize = in.PageSize
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	entries, total, err := s.journals.FindAll(ctx, filter)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list journal entries")
	}
	index, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]JournalEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toJournalEntryDTO(e, index)
	}
	return &JournalEntryListResult{
		Entries:    dtos,
		Total:      total,
		Page:       in.Page,
		PageSize:   in.PageSize,
		TotalPages: totalPages(total, in.PageSize),
	}, nil
}

// GetByID returns one journal entry with its lines
func (s *JournalService) GetByID(ctx context.Context, id uuid.UUID) (*JournalEntryDTO, error) {
	entry, err := s.journals.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get journal entry")
	}
	return s.toDTO(ctx, entry)
}

// Create records a draft entry, or a posted one when in.Post is set
func (s *JournalService) Create(ctx context.Context, in JournalEntryInput) (_ *JournalEntryDTO, err error) {
	ctx, span := telemetry.StartSpan(ctx, "JournalService", "Create",
		attribute.String("journal.type", string(in.JournalType)),
		attribute.Int("journal.lines", len(in.Lines)),
		attribute.Bool("journal.post", in.Post),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	var entry *finance.JournalEntry
	err = s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.create(ctx, finance.JournalEntryParams{
			TransactionDate: in.TransactionDate,
			JournalType:     in.JournalType,
			ReferenceNumber: in.ReferenceNumber,
			Description:     in.Description,
			CreatedBy:       in.UserID,
			Lines:           in.Lines,
		}, in.Post)
		return err
	})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to create journal entry")
	}

	s.afterCommit(ctx, entry, "created")
	return s.toDTO(ctx, entry)
}

// Update replaces header and lines of a draft entry
func (s *JournalService) Update(ctx context.Context, id uuid.UUID, in JournalEntryInput) (*JournalEntryDTO, error) {
	entry, err := s.journals.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get journal entry")
	}
	if err := s.validateLines(ctx, in.Lines); err != nil {
		return nil, err
	}

	err = entry.Update(finance.JournalEntryParams{
		JournalNumber:   entry.JournalNumber,
		TransactionDate: in.TransactionDate,
		JournalType:     in.JournalType,
		ReferenceNumber: in.ReferenceNumber,
		Description:     in.Description,
		CreatedBy:       entry.CreatedByUserID,
		Lines:           in.Lines,
	})
	if err != nil {
		return nil, err
	}
	if err := s.journals.Update(ctx, entry); err != nil {
		return nil, passDomain(s.logger, err, "Failed to update journal entry")
	}

	s.metrics.JournalEntry("updated", string(entry.JournalType))
	return s.toDTO(ctx, entry)
}

// Delete soft-deletes a draft entry by marking it reversed
func (s *JournalService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	entry, err := s.journals.FindByID(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to get journal entry")
	}
	if err := entry.Discard(userID); err != nil {
		return err
	}
	if err := s.journals.Update(ctx, entry); err != nil {
		return passDomain(s.logger, err, "Failed to delete journal entry")
	}

	s.metrics.JournalEntry("deleted", string(entry.JournalType))
	s.logger.Info("Journal entry deleted",
		zap.String("journal_entry_id", id.String()),
		zap.String("journal_number", entry.JournalNumber),
	)
	return nil
}

// Post moves a draft entry into the ledger and applies its postings to account balances
func (s *JournalService) Post(ctx context.Context, id uuid.UUID) (*JournalEntryDTO, error) {
	entry, err := s.transition(ctx, id, "posted", func(ctx context.Context, e *finance.JournalEntry) error {
		if err := e.Post(); err != nil {
			return err
		}
		return s.applyPostings(ctx, e, false)
	})
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, entry)
}

// Approve marks a posted entry approved by userID
func (s *JournalService) Approve(ctx context.Context, id, userID uuid.UUID, notes string) (*JournalEntryDTO, error) {
	entry, err := s.transition(ctx, id, "approved", func(_ context.Context, e *finance.JournalEntry) error {
		return e.Approve(userID, notes)
	})
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, entry)
}

// Reverse takes a posted or approved entry out of the ledger and backs out its postings
func (s *JournalService) Reverse(ctx context.Context, id, userID uuid.UUID, reason string) (*JournalEntryDTO, error) {
	entry, err := s.transition(ctx, id, "reversed", func(ctx context.Context, e *finance.JournalEntry) error {
		if err := e.Reverse(userID, reason); err != nil {
			return err
		}
		return s.applyPostings(ctx, e, true)
	})
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, entry)
}

// Statistics aggregates every entry dated within the optional range
func (s *JournalService) Statistics(ctx context.Context, filter finance.JournalEntryFilter) (*JournalStatistics, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = 0, 0
	entries, _, err := s.journals.FindAll(ctx, filter)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to load journal statistics")
	}

	stats := &JournalStatistics{
		DateFrom:     filter.DateFrom,
		DateTo:       filter.DateTo,
		TotalEntries: len(entries),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		ByType:       make(map[string]int),
		ByStatus:     make(map[string]int),
		ByMonth:      make([]MonthlyJournalStatistics, 0),
	}
	months := make(map[string]*MonthlyJournalStatistics)
	for _, e := range entries {
		stats.TotalDebits = stats.TotalDebits.Add(e.TotalDebit)
		stats.TotalCredits = stats.TotalCredits.Add(e.TotalCredit)
		stats.ByType[string(e.JournalType)]++
		stats.ByStatus[string(e.Status)]++

		key := e.TransactionDate.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthlyJournalStatistics{Month: key, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
			months[key] = m
		}
		m.Count++
		m.TotalDebits = m.TotalDebits.Add(e.TotalDebit)
		m.TotalCredits = m.TotalCredits.Add(e.TotalCredit)
	}
	for _, m := range months {
		stats.ByMonth = append(stats.ByMonth, *m)
	}
	sort.Slice(stats.ByMonth, func(i, j int) bool { return stats.ByMonth[i].Month < stats.ByMonth[j].Month })
	return stats, nil
}

// Validate reports balance problems of a stored entry
func (s *JournalService) Validate(ctx context.Context, id uuid.UUID) (*JournalValidationDTO, error) {
	entry, err := s.journals.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get journal entry")
	}
	v := entry.Validate()
	return &JournalValidationDTO{
		JournalEntryID: entry.ID,
		IsValid:        v.IsValid,
		IsBalanced:     v.IsBalanced,
		TotalDebits:    v.TotalDebits,
		TotalCredits:   v.TotalCredits,
		Difference:     v.Difference,
		Errors:         v.Errors,
		Warnings:       v.Warnings,
	}, nil
}

// Types lists every journal type
func (s *JournalService) Types() []string {
	types := finance.AllJournalTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Statuses lists every journal status
func (s *JournalService) Statuses() []string {
	statuses := finance.AllJournalStatuses()
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

// create validates lines, numbers and stores a new entry. Callers run it through withRetry.
func (s *JournalService) create(ctx context.Context, p finance.JournalEntryParams, post bool) (*finance.JournalEntry, error) {
	if err := s.validateLines(ctx, p.Lines); err != nil {
		return nil, err
	}

	var entry *finance.JournalEntry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		number, err := s.nextNumber(ctx, p.TransactionDate)
		if err != nil {
			return err
		}
		p.JournalNumber = number

		entry, err = finance.NewJournalEntry(p)
		if err != nil {
			return err
		}
		if post {
			if err := entry.Post(); err != nil {
				return err
			}
			if err := s.applyPostings(ctx, entry, false); err != nil {
				return err
			}
		}
		return s.journals.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// withRetry reruns fn, which must own its whole transaction, when it lost a
// race for a journal number or for an entry or account row
func (s *JournalService) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		err = fn(ctx)
		switch {
		case errors.Is(err, shared.ErrAlreadyExists):
			s.logger.Warn("Journal number taken, retrying", zap.Int("attempt", attempt))
		case errors.Is(err, shared.ErrConcurrencyConflict):
			s.logger.Warn("Concurrent ledger write, retrying", zap.Int("attempt", attempt))
		default:
			return err
		}
	}
	return err
}

func (s *JournalService) nextNumber(ctx context.Context, date time.Time) (string, error) {
	last, count, err := s.journals.LastNumberWithPrefix(ctx, finance.JournalNumberPrefix(date))
	if err != nil {
		return "", err
	}
	return finance.NextJournalNumber(date, last, count), nil
}

// validateLines checks that every line references an account accepting postings and an existing category
func (s *JournalService) validateLines(ctx context.Context, lines []finance.LineInput) error {
	for i, l := range lines {
		if l.AccountID == uuid.Nil {
			continue // reported by the entry itself
		}
		account, err := s.accounts.FindByID(ctx, l.AccountID)
		if errors.Is(err, finance.ErrAccountNotFound) {
			return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: account %s does not exist", i+1, l.AccountID))
		}
		if err != nil {
			return passDomain(s.logger, err, "Failed to load line account")
		}
		if !account.CanPost() {
			return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: account %s does not accept postings", i+1, account.AccountCode))
		}

		if l.CategoryID == nil {
			continue
		}
		if _, err := s.categories.FindByID(ctx, *l.CategoryID); err != nil {
			if errors.Is(err, finance.ErrCategoryNotFound) {
				return shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line %d: category %s does not exist", i+1, *l.CategoryID))
			}
			return passDomain(s.logger, err, "Failed to load line category")
		}
	}
	return nil
}

// applyPostings moves the current balance of every line account; reverse backs the postings out
func (s *JournalService) applyPostings(ctx context.Context, entry *finance.JournalEntry, reverse bool) error {
	type movement struct{ debit, credit decimal.Decimal }
	moves := make(map[uuid.UUID]*movement)
	order := make([]uuid.UUID, 0, len(entry.Lines))
	for _, l := range entry.Lines {
		m, ok := moves[l.AccountID]
		if !ok {
			m = &movement{debit: decimal.Zero, credit: decimal.Zero}
			moves[l.AccountID] = m
			order = append(order, l.AccountID)
		}
		m.debit = m.debit.Add(l.Debit)
		m.credit = m.credit.Add(l.Credit)
	}

	for _, id := range order {
		account, err := s.accounts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		m := moves[id]
		if reverse {
			account.ApplyPosting(m.credit, m.debit)
		} else {
			account.ApplyPosting(m.debit, m.credit)
		}
		if err := s.accounts.Update(ctx, account); err != nil {
			return err
		}
	}
	return nil
}

// transition loads an entry, applies change and saves it in one transaction
func (s *JournalService) transition(ctx context.Context, id uuid.UUID, action string, change func(context.Context, *finance.JournalEntry) error) (*finance.JournalEntry, error) {
	var entry *finance.JournalEntry
	err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			entry, err = s.journals.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if err := change(ctx, entry); err != nil {
				return err
			}
			return s.journals.Update(ctx, entry)
		})
	})
	if err != nil {
		return nil, passDomain(s.logger, err, fmt.Sprintf("Failed to mark journal entry %s", action))
	}

	s.afterCommit(ctx, entry, action)
	return entry, nil
}

// afterCommit publishes the entry's pending events and records the action
func (s *JournalService) afterCommit(ctx context.Context, entry *finance.JournalEntry, action string) {
	s.metrics.JournalEntry(action, string(entry.JournalType))
	if entry.Status == finance.JournalStatusPosted && action == "created" {
		s.metrics.JournalEntry("posted", string(entry.JournalType))
	}

	events := entry.GetDomainEvents()
	entry.ClearDomainEvents()
	if len(events) > 0 && s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish journal events",
				zap.String("journal_entry_id", entry.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Journal entry "+action,
		zap.String("journal_entry_id", entry.ID.String()),
		zap.String("journal_number", entry.JournalNumber),
		zap.String("status", string(entry.Status)),
	)
}

func (s *JournalService) accountIndex(ctx context.Context) (map[uuid.UUID]*finance.ChartOfAccount, error) {
	accounts, _, err := s.accounts.FindAll(ctx, finance.AccountFilter{})
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to load accounts")
	}
	index := make(map[uuid.UUID]*finance.ChartOfAccount, len(accounts))
	for _, a := range accounts {
		index[a.ID] = a
	}
	return index, nil
}

func (s *JournalService) toDTO(ctx context.Context, entry *finance.JournalEntry) (*JournalEntryDTO, error) {
	index, err := s.accountIndex(ctx)
	if err != nil {
		return nil, err
	}
	dto := toJournalEntryDTO(entry, index)
	return &dto, nil
}

func validateFilter(f finance.JournalEntryFilter) error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Date from must be before or equal to date to")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return shared.NewDomainError("INVALID_AMOUNT_RANGE", "Minimum amount cannot exceed maximum amount")
	}
	return nil
}
