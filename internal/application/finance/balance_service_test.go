package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type balanceFixture struct {
	journals *MockJournalEntryRepository
	accounts *MockAccountRepository
	cache    *cache.BalanceCache
	service  *BalanceService

	cash  *finance.ChartOfAccount
	bank  *finance.ChartOfAccount
	loan  *finance.ChartOfAccount
	sales *finance.ChartOfAccount
}

func newBalanceFixture(t *testing.T) *balanceFixture {
	t.Helper()
	f := &balanceFixture{
		journals: new(MockJournalEntryRepository),
		accounts: new(MockAccountRepository),
		cache:    cache.NewBalanceCache(cache.NewMemoryStore(0), time.Minute, time.Hour),
		cash:     newAccount(t, "1001", "Cash in Hand", finance.AccountTypeAsset),
		bank:     newAccount(t, "1010", "City Bank", finance.AccountTypeAsset),
		loan:     newAccount(t, "2001", "Loan A/C Chairman", finance.AccountTypeLiability),
		sales:    newAccount(t, "4001", "Sales", finance.AccountTypeRevenue),
	}
	f.service = NewBalanceService(f.journals, f.accounts, f.cache, nil, zap.NewNop())
	f.service.now = func() time.Time { return march(31) }
	return f
}

func (f *balanceFixture) chart() []*finance.ChartOfAccount {
	return []*finance.ChartOfAccount{f.cash, f.bank, f.loan, f.sales}
}

func (f *balanceFixture) movements() []finance.AccountMovement {
	return []finance.AccountMovement{
		{AccountID: f.cash.ID, TotalDebit: decimal.NewFromInt(261080), TotalCredit: decimal.NewFromInt(50000)},
		{AccountID: f.bank.ID, TotalDebit: decimal.NewFromInt(50000), TotalCredit: decimal.Zero},
		{AccountID: f.loan.ID, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(261080)},
	}
}

func TestBalanceService_AccountBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("computes once then serves from cache", func(t *testing.T) {
		f := newBalanceFixture(t)
		f.accounts.On("FindByID", mock.Anything, f.cash.ID).Return(f.cash, nil).Once()
		f.journals.On("SumByAccount", mock.Anything, (*time.Time)(nil), finance.LedgerStatuses(), &f.cash.ID).
			Return(f.movements()[:1], nil).Once()

		p, err := f.service.AccountBalance(ctx, f.cash.ID, nil)
		require.NoError(t, err)
		assert.True(t, p.Balance.Equal(decimal.NewFromInt(211080)))
		assert.Equal(t, "BDT", p.Currency)

		again, err := f.service.AccountBalance(ctx, f.cash.ID, nil)
		require.NoError(t, err)
		assert.True(t, again.Balance.Equal(p.Balance))
		f.journals.AssertNumberOfCalls(t, "SumByAccount", 1)
	})

	t.Run("realtime skips the cache", func(t *testing.T) {
		f := newBalanceFixture(t)
		f.accounts.On("FindByID", mock.Anything, f.loan.ID).Return(f.loan, nil)
		f.journals.On("SumByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(f.movements()[2:], nil)

		for range 2 {
			p, err := f.service.RealtimeAccountBalance(ctx, f.loan.ID, nil)
			require.NoError(t, err)
			assert.True(t, p.Balance.Equal(decimal.NewFromInt(261080)))
		}
		f.journals.AssertNumberOfCalls(t, "SumByAccount", 2)
	})

	t.Run("account without lines balances at zero", func(t *testing.T) {
		f := newBalanceFixture(t)
		asOf := march(5)
		f.accounts.On("FindByID", mock.Anything, f.sales.ID).Return(f.sales, nil)
		f.journals.On("SumByAccount", mock.Anything, &asOf, finance.LedgerStatuses(), &f.sales.ID).Return(nil, nil)

		p, err := f.service.AccountBalance(ctx, f.sales.ID, &asOf)
		require.NoError(t, err)
		assert.True(t, p.Balance.IsZero())
		assert.Equal(t, asOf, p.AsOf)
	})

	t.Run("future date is rejected", func(t *testing.T) {
		f := newBalanceFixture(t)
		future := march(31).AddDate(0, 0, 1)

		_, err := f.service.AccountBalance(ctx, f.cash.ID, &future)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AS_OF_DATE", domainErr.Code)
		f.accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown account passes not found through", func(t *testing.T) {
		f := newBalanceFixture(t)
		id := uuid.New()
		f.accounts.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.AccountBalance(ctx, id, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBalanceService_Groups(t *testing.T) {
	ctx := context.Background()
	f := newBalanceFixture(t)
	f.accounts.On("FindActiveOrdered", mock.Anything).Return(f.chart(), nil)
	f.journals.On("SumByAccount", mock.Anything, (*time.Time)(nil), finance.LedgerStatuses(), (*uuid.UUID)(nil)).Return(f.movements(), nil)

	cash, err := f.service.CashBalances(ctx)
	require.NoError(t, err)
	require.Len(t, cash.Accounts, 1)
	assert.Equal(t, "1001", cash.Accounts[0].AccountCode)
	assert.True(t, cash.Total.Equal(decimal.NewFromInt(211080)))

	bank, err := f.service.BankBalances(ctx)
	require.NoError(t, err)
	require.Len(t, bank.Accounts, 1)
	assert.True(t, bank.Total.Equal(decimal.NewFromInt(50000)))

	dash, err := f.service.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, dash.Summary.TotalAssets.Equal(decimal.NewFromInt(261080)))
	assert.True(t, dash.Cash.Total.Equal(cash.Total))
	assert.True(t, dash.Bank.Total.Equal(bank.Total))
}

func TestBalanceService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is flagged as cached", func(t *testing.T) {
		f := newBalanceFixture(t)
		f.accounts.On("FindActiveOrdered", mock.Anything).Return(f.chart(), nil).Once()
		f.journals.On("SumByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(f.movements(), nil).Once()

		first, err := f.service.Summary(ctx, nil)
		require.NoError(t, err)
		assert.False(t, first.IsFromCache)
		assert.True(t, first.TotalLiabilities.Equal(decimal.NewFromInt(261080)))
		assert.True(t, first.CashOnHand.Equal(decimal.NewFromInt(211080)))
		assert.True(t, first.BankBalance.Equal(decimal.NewFromInt(50000)))
		assert.Len(t, first.KeyAccounts, 3)

		second, err := f.service.Summary(ctx, nil)
		require.NoError(t, err)
		assert.True(t, second.IsFromCache)
		assert.True(t, second.TotalAssets.Equal(first.TotalAssets))
	})

	t.Run("posting event clears cached summaries", func(t *testing.T) {
		f := newBalanceFixture(t)
		f.accounts.On("FindActiveOrdered", mock.Anything).Return(f.chart(), nil)
		f.journals.On("SumByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(f.movements(), nil)

		_, err := f.service.Summary(ctx, nil)
		require.NoError(t, err)

		invalidator := NewBalanceCacheInvalidator(f.service)
		assert.Contains(t, invalidator.EventTypes(), finance.EventTypeJournalEntryPosted)
		require.NoError(t, invalidator.Handle(ctx, nil))

		again, err := f.service.Summary(ctx, nil)
		require.NoError(t, err)
		assert.False(t, again.IsFromCache)
		f.accounts.AssertNumberOfCalls(t, "FindActiveOrdered", 2)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		f := newBalanceFixture(t)
		f.accounts.On("FindActiveOrdered", mock.Anything).Return(([]*finance.ChartOfAccount)(nil), errors.New("connection reset"))

		_, err := f.service.Summary(ctx, nil)
		require.Error(t, err)
	})
}

func TestBalanceService_ClearAccountCache(t *testing.T) {
	ctx := context.Background()
	f := newBalanceFixture(t)
	f.accounts.On("FindByID", mock.Anything, f.cash.ID).Return(f.cash, nil)
	f.journals.On("SumByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(f.movements()[:1], nil)

	_, err := f.service.AccountBalance(ctx, f.cash.ID, nil)
	require.NoError(t, err)

	n, err := f.service.ClearAccountCache(ctx, f.cash.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = f.service.RefreshCache(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	noCache := NewBalanceService(f.journals, f.accounts, nil, nil, zap.NewNop())
	n, err = noCache.RefreshCache(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
