package finance

import (
	"context"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/cache"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Page size bounds of account drill-downs
const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 500
)

// AccountTransactionsInput selects a page of one account's ledger lines
type AccountTransactionsInput struct {
	AccountID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Page      int
	PageSize  int
}

// AccountTransactionsResult is a page of an account drill-down. Summary covers the whole range.
type AccountTransactionsResult struct {
	Account      AccountDTO                        `json:"account"`
	Transactions []finance.AccountTransaction      `json:"transactions"`
	Summary      finance.AccountTransactionSummary `json:"summary"`
	Total        int64                             `json:"total"`
	Page         int                               `json:"page"`
	PageSize     int                               `json:"page_size"`
	TotalPages   int                               `json:"total_pages"`
}

// CalculationResult is the trial balance fold with its breakdown
type CalculationResult struct {
	Calculation *finance.TrialBalanceCalculation `json:"calculation"`
	Breakdown   *finance.CalculationBreakdown    `json:"breakdown"`
}

// TrialBalanceService generates, caches and compares trial balance reports
type TrialBalanceService struct {
	journals finance.JournalEntryRepository
	accounts finance.AccountRepository
	cache    *cache.TrialBalanceCache
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

// NewTrialBalanceService creates a trial balance service; reportCache may be nil
func NewTrialBalanceService(
	journals finance.JournalEntryRepository,
	accounts finance.AccountRepository,
	reportCache *cache.TrialBalanceCache,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *TrialBalanceService {
	return &TrialBalanceService{
		journals: journals,
		accounts: accounts,
		cache:    reportCache,
		metrics:  metrics,
		logger:   logger,
	}
}

// Generate returns the report of a period, from cache when possible
func (s *TrialBalanceService) Generate(ctx context.Context, period finance.TrialBalancePeriod) (*finance.TrialBalanceReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		report, hit, err := s.cache.Get(ctx, period)
		if err != nil {
			s.logger.Warn("Trial balance cache read failed", zap.Error(err))
		}
		s.metrics.CacheLookup("trial_balance", hit)
		if hit {
			return report, nil
		}
	}

	report, err := s.build(ctx, period)
	if err != nil {
		return nil, err
	}
	s.store(ctx, period, report)
	return report, nil
}

// WarmCache regenerates the report of a period and caches it
func (s *TrialBalanceService) WarmCache(ctx context.Context, period finance.TrialBalancePeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}
	report, err := s.build(ctx, period)
	if err != nil {
		return err
	}
	s.store(ctx, period, report)
	return nil
}

// InvalidateCache drops every cached report and returns how many were removed
func (s *TrialBalanceService) InvalidateCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	n, err := s.cache.Invalidate(ctx)
	if err != nil {
		return 0, passDomain(s.logger, err, "Failed to clear trial balance cache")
	}
	s.logger.Info("Trial balance cache cleared", zap.Int64("entries", n))
	return n, nil
}

// Compare generates both periods concurrently and lists account variances
func (s *TrialBalanceService) Compare(ctx context.Context, period1, period2 finance.TrialBalancePeriod) (*finance.TrialBalanceComparison, error) {
	var r1, r2 *finance.TrialBalanceReport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r1, err = s.Generate(gctx, period1)
		return err
	})
	g.Go(func() error {
		var err error
		r2, err = s.Generate(gctx, period2)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return finance.CompareTrialBalances(r1, r2), nil
}

// AccountTransactions returns a page of one account's ledger lines with running balances
func (s *TrialBalanceService) AccountTransactions(ctx context.Context, in AccountTransactionsInput) (*AccountTransactionsResult, error) {
	period := finance.TrialBalancePeriod{StartDate: in.StartDate, EndDate: in.EndDate}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize <= 0 {
		in.PageSize = defaultTransactionPageSize
	}
	if in.PageSize > maxTransactionPageSize {
		in.PageSize = maxTransactionPageSize
	}

	account, err := s.accounts.FindByID(ctx, in.AccountID)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get account")
	}
	lines, err := s.journals.FindLedgerLines(ctx, in.StartDate, in.EndDate, finance.LedgerStatuses(), &account.ID)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to load account transactions")
	}

	txs, summary := finance.BuildAccountTransactions(account, lines)
	total := int64(len(txs))
	from := min((in.Page-1)*in.PageSize, len(txs))
	to := min(from+in.PageSize, len(txs))

	return &AccountTransactionsResult{
		Account:      toAccountDTO(account),
		Transactions: txs[from:to],
		Summary:      summary,
		Total:        total,
		Page:         in.Page,
		PageSize:     in.PageSize,
		TotalPages:   totalPages(total, in.PageSize),
	}, nil
}

// Calculate folds caller-supplied transactions and explains each step
func (s *TrialBalanceService) Calculate(transactions []finance.TransactionData) (*CalculationResult, error) {
	if len(transactions) == 0 {
		return nil, shared.NewDomainError("INVALID_TRANSACTIONS", "At least one transaction is required")
	}
	calc, err := finance.CalculateTrialBalance(transactions)
	if err != nil {
		return nil, err
	}
	breakdown, err := finance.CreateCalculationBreakdown(transactions)
	if err != nil {
		return nil, err
	}
	return &CalculationResult{Calculation: calc, Breakdown: breakdown}, nil
}

func (s *TrialBalanceService) build(ctx context.Context, period finance.TrialBalancePeriod) (_ *finance.TrialBalanceReport, err error) {
	ctx, span := telemetry.StartSpan(ctx, "TrialBalanceService", "Generate",
		attribute.String("period.start", period.StartDate.Format(time.DateOnly)),
		attribute.String("period.end", period.EndDate.Format(time.DateOnly)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	started := time.Now()
	accounts, err := s.accounts.FindActiveOrdered(ctx)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to load accounts")
	}
	lines, err := s.journals.FindLedgerLines(ctx, period.StartDate, period.EndDate, finance.LedgerStatuses(), nil)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to load ledger lines")
	}

	report := finance.BuildTrialBalanceReport(period, accounts, lines)
	took := time.Since(started)
	s.metrics.TrialBalanceGenerated(string(report.Status), took)
	span.SetAttributes(
		attribute.String("trial_balance.status", string(report.Status)),
		attribute.Int("trial_balance.transactions", report.TotalTransactions),
	)

	if !report.Status.IsBalanced() {
		s.logger.Warn("Trial balance is not balanced",
			zap.Time("start", period.StartDate),
			zap.Time("end", period.EndDate),
			zap.String("final_balance", report.FinalBalance.StringFixed(2)),
		)
	}
	s.logger.Debug("Trial balance generated",
		zap.Int("transactions", report.TotalTransactions),
		zap.Duration("took", took),
	)
	return report, nil
}

func (s *TrialBalanceService) store(ctx context.Context, period finance.TrialBalancePeriod, report *finance.TrialBalanceReport) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, period, report); err != nil {
		s.logger.Warn("Trial balance cache write failed", zap.Error(err))
	}
}

// TrialBalanceCacheInvalidator drops cached reports when entries enter or leave the ledger
type TrialBalanceCacheInvalidator struct {
	reports *TrialBalanceService
}

// NewTrialBalanceCacheInvalidator creates the event handler
func NewTrialBalanceCacheInvalidator(reports *TrialBalanceService) *TrialBalanceCacheInvalidator {
	return &TrialBalanceCacheInvalidator{reports: reports}
}

// Handle implements shared.EventHandler
func (h *TrialBalanceCacheInvalidator) Handle(ctx context.Context, _ shared.DomainEvent) error {
	_, err := h.reports.InvalidateCache(ctx)
	return err
}

// EventTypes implements shared.EventHandler
func (h *TrialBalanceCacheInvalidator) EventTypes() []string {
	return []string{finance.EventTypeJournalEntryPosted, finance.EventTypeJournalEntryReversed}
}

var _ shared.EventHandler = (*TrialBalanceCacheInvalidator)(nil)
