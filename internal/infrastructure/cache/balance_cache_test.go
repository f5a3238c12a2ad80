package cache

import (
	"context"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2a52-4b61-4c1e-9a55-0e0f9c1d2b3a")
	asOf := time.Date(2025, 2, 28, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "balance:account:6f1c2a52-4b61-4c1e-9a55-0e0f9c1d2b3a:current", BalanceAccountKey(id, nil))
	assert.Equal(t, "balance:account:6f1c2a52-4b61-4c1e-9a55-0e0f9c1d2b3a:2025-02-28", BalanceAccountKey(id, &asOf))
	assert.Equal(t, "balance:summary:current", BalanceSummaryKey(nil))
}

func TestBalanceCache(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	c := NewBalanceCache(store, time.Minute, time.Hour)
	cash, bank := uuid.New(), uuid.New()
	asOf := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	_, hit, err := c.GetAccount(ctx, cash, nil)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetAccount(ctx, cash, nil, &finance.AccountPosition{AccountID: cash, Balance: decimal.RequireFromString("258680")}))
	require.NoError(t, c.SetAccount(ctx, cash, &asOf, &finance.AccountPosition{AccountID: cash}))
	require.NoError(t, c.SetAccount(ctx, bank, nil, &finance.AccountPosition{AccountID: bank}))
	require.NoError(t, c.SetSummary(ctx, nil, &finance.BalanceSummary{CashOnHand: decimal.RequireFromString("258680")}))

	got, hit, err := c.GetAccount(ctx, cash, nil)
	require.NoError(t, err)
	require.True(t, hit)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("258680")))

	summary, hit, err := c.GetSummary(ctx, nil)
	require.NoError(t, err)
	require.True(t, hit)
	assert.True(t, summary.CashOnHand.Equal(decimal.RequireFromString("258680")))

	t.Run("account invalidation keeps other accounts", func(t *testing.T) {
		n, err := c.InvalidateAccount(ctx, cash)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		_, hit, _ := c.GetAccount(ctx, cash, &asOf)
		assert.False(t, hit)
		_, hit, _ = c.GetSummary(ctx, nil)
		assert.False(t, hit)
		_, hit, _ = c.GetAccount(ctx, bank, nil)
		assert.True(t, hit)
	})

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, BalanceSummaryKey(&asOf), []byte("{"), time.Minute))
		_, hit, err := c.GetSummary(ctx, &asOf)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	n, err := c.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
