package finance

import (
	"context"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/cache"
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BalanceDashboard is the summary plus the cash and bank breakdowns, read together
type BalanceDashboard struct {
	Summary *finance.BalanceSummary `json:"summary"`
	Cash    finance.BalanceGroup    `json:"cash"`
	Bank    finance.BalanceGroup    `json:"bank"`
}

// BalanceService reads account balances from posted and approved journal lines
type BalanceService struct {
	journals finance.JournalEntryRepository
	accounts finance.AccountRepository
	cache    *cache.BalanceCache
	metrics  *telemetry.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewBalanceService creates a balance service; balanceCache may be nil
func NewBalanceService(
	journals finance.JournalEntryRepository,
	accounts finance.AccountRepository,
	balanceCache *cache.BalanceCache,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *BalanceService {
	return &BalanceService{
		journals: journals,
		accounts: accounts,
		cache:    balanceCache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// AccountBalance returns an account's balance as of a date, or its current balance when asOf is nil
func (s *BalanceService) AccountBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, error) {
	if s.cache != nil {
		p, hit, err := s.cache.GetAccount(ctx, id, asOf)
		if err != nil {
			s.logger.Warn("Balance cache read failed", zap.Error(err))
		}
		s.metrics.CacheLookup("balance", hit)
		if hit {
			return p, nil
		}
	}

	p, err := s.RealtimeAccountBalance(ctx, id, asOf)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAccount(ctx, id, asOf, p); err != nil {
			s.logger.Warn("Balance cache write failed", zap.Error(err))
		}
	}
	return p, nil
}

// RealtimeAccountBalance computes the balance from the ledger, bypassing the cache
func (s *BalanceService) RealtimeAccountBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (_ *finance.AccountPosition, err error) {
	ctx, span := telemetry.StartSpan(ctx, "BalanceService", "AccountBalance")
	defer func() { telemetry.EndSpan(span, err) }()

	if err := s.validateAsOf(asOf); err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get account")
	}
	movements, err := s.journals.SumByAccount(ctx, asOf, finance.LedgerStatuses(), &id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to sum account lines")
	}
	p := finance.Positions([]*finance.ChartOfAccount{account}, movements, s.asOfDate(asOf))[0]
	return &p, nil
}

// CashBalances lists every cash account with its current balance
func (s *BalanceService) CashBalances(ctx context.Context) (*finance.BalanceGroup, error) {
	accounts, movements, err := s.load(ctx, nil)
	if err != nil {
		return nil, err
	}
	group := finance.GroupBalances(accounts, movements, s.asOfDate(nil), (*finance.ChartOfAccount).IsCashAccount)
	return &group, nil
}

// BankBalances lists every bank account with its current balance
func (s *BalanceService) BankBalances(ctx context.Context) (*finance.BalanceGroup, error) {
	accounts, movements, err := s.load(ctx, nil)
	if err != nil {
		return nil, err
	}
	group := finance.GroupBalances(accounts, movements, s.asOfDate(nil), (*finance.ChartOfAccount).IsBankAccount)
	return &group, nil
}

// Summary totals the chart by account type, from cache when possible
func (s *BalanceService) Summary(ctx context.Context, asOf *time.Time) (*finance.BalanceSummary, error) {
	if s.cache != nil {
		summary, hit, err := s.cache.GetSummary(ctx, asOf)
		if err != nil {
			s.logger.Warn("Balance cache read failed", zap.Error(err))
		}
		s.metrics.CacheLookup("balance_summary", hit)
		if hit {
			summary.IsFromCache = true
			return summary, nil
		}
	}

	if err := s.validateAsOf(asOf); err != nil {
		return nil, err
	}
	accounts, movements, err := s.load(ctx, asOf)
	if err != nil {
		return nil, err
	}
	summary := finance.SummarizeBalances(accounts, movements, s.asOfDate(asOf), s.now())
	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, asOf, summary); err != nil {
			s.logger.Warn("Balance cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Dashboard reads the current summary with the cash and bank breakdowns from one ledger pass
func (s *BalanceService) Dashboard(ctx context.Context) (*BalanceDashboard, error) {
	accounts, movements, err := s.load(ctx, nil)
	if err != nil {
		return nil, err
	}
	asOf := s.asOfDate(nil)
	return &BalanceDashboard{
		Summary: finance.SummarizeBalances(accounts, movements, asOf, s.now()),
		Cash:    finance.GroupBalances(accounts, movements, asOf, (*finance.ChartOfAccount).IsCashAccount),
		Bank:    finance.GroupBalances(accounts, movements, asOf, (*finance.ChartOfAccount).IsBankAccount),
	}, nil
}

// RefreshCache drops every cached balance read and returns how many were removed
func (s *BalanceService) RefreshCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	n, err := s.cache.Invalidate(ctx)
	if err != nil {
		return 0, passDomain(s.logger, err, "Failed to clear balance cache")
	}
	s.logger.Info("Balance cache cleared", zap.Int64("entries", n))
	return n, nil
}

// ClearAccountCache drops the cached balances of one account and every cached summary
func (s *BalanceService) ClearAccountCache(ctx context.Context, id uuid.UUID) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	n, err := s.cache.InvalidateAccount(ctx, id)
	if err != nil {
		return 0, passDomain(s.logger, err, "Failed to clear balance cache")
	}
	s.logger.Info("Account balance cache cleared", zap.String("account_id", id.String()), zap.Int64("entries", n))
	return n, nil
}

func (s *BalanceService) load(ctx context.Context, asOf *time.Time) ([]*finance.ChartOfAccount, []finance.AccountMovement, error) {
	accounts, err := s.accounts.FindActiveOrdered(ctx)
	if err != nil {
		return nil, nil, passDomain(s.logger, err, "Failed to load accounts")
	}
	movements, err := s.journals.SumByAccount(ctx, asOf, finance.LedgerStatuses(), nil)
	if err != nil {
		return nil, nil, passDomain(s.logger, err, "Failed to sum ledger lines")
	}
	return accounts, movements, nil
}

func (s *BalanceService) asOfDate(asOf *time.Time) time.Time {
	if asOf != nil {
		return *asOf
	}
	return s.now().UTC()
}

func (s *BalanceService) validateAsOf(asOf *time.Time) error {
	if asOf != nil && asOf.After(s.now()) {
		return shared.NewDomainError("INVALID_AS_OF_DATE", "Balance date cannot be in the future")
	}
	return nil
}

// BalanceCacheInvalidator drops cached balances when entries enter or leave the ledger
type BalanceCacheInvalidator struct {
	balances *BalanceService
}

// NewBalanceCacheInvalidator creates the event handler
func NewBalanceCacheInvalidator(balances *BalanceService) *BalanceCacheInvalidator {
	return &BalanceCacheInvalidator{balances: balances}
}

// Handle implements shared.EventHandler
func (h *BalanceCacheInvalidator) Handle(ctx context.Context, _ shared.DomainEvent) error {
	_, err := h.balances.RefreshCache(ctx)
	return err
}

// EventTypes implements shared.EventHandler
func (h *BalanceCacheInvalidator) EventTypes() []string {
	return []string{finance.EventTypeJournalEntryPosted, finance.EventTypeJournalEntryReversed}
}

var _ shared.EventHandler = (*BalanceCacheInvalidator)(nil)
