package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// Key prefixes of cached balance reads
const (
	BalancePrefix        = "balance:"
	balanceAccountPrefix = BalancePrefix + "account:"
	balanceSummaryPrefix = BalancePrefix + "summary:"
)

// BalanceCache stores account balances and balance summaries.
// Summaries aggregate the whole chart and live longer than single balances.
type BalanceCache struct {
	store      Store
	ttl        time.Duration
	summaryTTL time.Duration
}

func NewBalanceCache(store Store, ttl, summaryTTL time.Duration) *BalanceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if summaryTTL <= 0 {
		summaryTTL = 30 * time.Minute
	}
	return &BalanceCache{store: store, ttl: ttl, summaryTTL: summaryTTL}
}

func asOfKey(asOf *time.Time) string {
	if asOf == nil {
		return "current"
	}
	return asOf.Format(time.DateOnly)
}

// BalanceAccountKey derives the key of one account's balance; a nil asOf is the current balance
func BalanceAccountKey(id uuid.UUID, asOf *time.Time) string {
	return fmt.Sprintf("%s%s:%s", balanceAccountPrefix, id, asOfKey(asOf))
}

// BalanceSummaryKey derives the key of a summary
func BalanceSummaryKey(asOf *time.Time) string {
	return balanceSummaryPrefix + asOfKey(asOf)
}

func (c *BalanceCache) GetAccount(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, bool, error) {
	var p finance.AccountPosition
	hit, err := c.get(ctx, BalanceAccountKey(id, asOf), &p)
	if !hit {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *BalanceCache) SetAccount(ctx context.Context, id uuid.UUID, asOf *time.Time, p *finance.AccountPosition) error {
	return c.set(ctx, BalanceAccountKey(id, asOf), p, c.ttl)
}

func (c *BalanceCache) GetSummary(ctx context.Context, asOf *time.Time) (*finance.BalanceSummary, bool, error) {
	var s finance.BalanceSummary
	hit, err := c.get(ctx, BalanceSummaryKey(asOf), &s)
	if !hit {
		return nil, false, err
	}
	return &s, true, nil
}

func (c *BalanceCache) SetSummary(ctx context.Context, asOf *time.Time, s *finance.BalanceSummary) error {
	return c.set(ctx, BalanceSummaryKey(asOf), s, c.summaryTTL)
}

// InvalidateAccount drops every cached balance of the account and every summary
func (c *BalanceCache) InvalidateAccount(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := c.store.DeletePrefix(ctx, fmt.Sprintf("%s%s:", balanceAccountPrefix, id))
	if err != nil {
		return 0, err
	}
	m, err := c.store.DeletePrefix(ctx, balanceSummaryPrefix)
	return n + m, err
}

// Invalidate drops every cached balance read
func (c *BalanceCache) Invalidate(ctx context.Context) (int64, error) {
	return c.store.DeletePrefix(ctx, BalancePrefix)
}

func (c *BalanceCache) get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// corrupt entries are treated as misses and overwritten
		return false, nil
	}
	return true, nil
}

func (c *BalanceCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.store.Set(ctx, key, raw, ttl)
}
