package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
)

// TrialBalancePrefix namespaces cached trial balance reports
const TrialBalancePrefix = "trial_balance:"

// TrialBalanceCache stores generated reports keyed by their period
type TrialBalanceCache struct {
	store Store
	ttl   time.Duration
}

func NewTrialBalanceCache(store Store, ttl time.Duration) *TrialBalanceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TrialBalanceCache{store: store, ttl: ttl}
}

// TrialBalanceKey derives the cache key of a report period
func TrialBalanceKey(p finance.TrialBalancePeriod) string {
	filters := make([]string, 0, len(p.CategoryFilter))
	for _, f := range p.CategoryFilter {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			filters = append(filters, f)
		}
	}
	slices.Sort(filters)
	return fmt.Sprintf("%s%s:%s:%s:%s", TrialBalancePrefix,
		p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly),
		strconv.FormatBool(p.IncludeZeroBalances), strings.Join(filters, ","))
}

// Get returns the cached report, or nil and false on a miss
func (c *TrialBalanceCache) Get(ctx context.Context, p finance.TrialBalancePeriod) (*finance.TrialBalanceReport, bool, error) {
	raw, err := c.store.Get(ctx, TrialBalanceKey(p))
	if errors.Is(err, ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var report finance.TrialBalanceReport
	if err := json.Unmarshal(raw, &report); err != nil {
		// corrupt entries are treated as misses and overwritten
		return nil, false, nil
	}
	return &report, true, nil
}

func (c *TrialBalanceCache) Set(ctx context.Context, p finance.TrialBalancePeriod, report *finance.TrialBalanceReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode trial balance: %w", err)
	}
	return c.store.Set(ctx, TrialBalanceKey(p), raw, c.ttl)
}

// Invalidate drops every cached report
func (c *TrialBalanceCache) Invalidate(ctx context.Context) (int64, error) {
	return c.store.DeletePrefix(ctx, TrialBalancePrefix)
}
