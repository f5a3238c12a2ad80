package scheduler

import (
	"context"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"go.uber.org/zap"
)

// TrialBalanceWarmJob is the registered name of the warm-up job
const TrialBalanceWarmJob = "trial-balance-warmup"

// ReportWarmer regenerates and caches a trial balance for a period
type ReportWarmer interface {
	WarmCache(ctx context.Context, period finance.TrialBalancePeriod) error
}

// TrialBalanceWarmer keeps the current month's trial balance cached
type TrialBalanceWarmer struct {
	warmer ReportWarmer
	logger *zap.Logger
	now    func() time.Time
}

func NewTrialBalanceWarmer(warmer ReportWarmer, logger *zap.Logger) *TrialBalanceWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrialBalanceWarmer{warmer: warmer, logger: logger, now: time.Now}
}

// CurrentMonth returns the period from the first of the month to today
func CurrentMonth(now time.Time) finance.TrialBalancePeriod {
	now = now.UTC()
	return finance.TrialBalancePeriod{
		StartDate: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// Run warms the current month
func (w *TrialBalanceWarmer) Run(ctx context.Context) error {
	p := CurrentMonth(w.now())
	if err := w.warmer.WarmCache(ctx, p); err != nil {
		return err
	}
	w.logger.Debug("trial balance cache warmed",
		zap.Time("start", p.StartDate), zap.Time("end", p.EndDate))
	return nil
}

// Register schedules the warmer with the given cron expression
func (w *TrialBalanceWarmer) Register(s *Scheduler, spec string) error {
	return s.Register(TrialBalanceWarmJob, spec, w.Run)
}
