package handler

import (
	"net/http"
	"testing"
	"time"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTrialBalanceRouter() (*gin.Engine, *MockTrialBalanceService) {
	svc := new(MockTrialBalanceService)
	h := NewTrialBalanceHandler(svc)

	r := newTestRouter(true)
	g := r.Group("/api/v1/trial-balance")
	g.GET("", h.Generate)
	g.POST("/compare", h.Compare)
	g.GET("/account/:accountId/transactions", h.AccountTransactions)
	g.POST("/calculate", h.Calculate)
	g.DELETE("/cache", h.ClearCache)
	return r, svc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTrialBalanceHandler_Generate(t *testing.T) {
	t.Run("builds the period from the query", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()
		want := finance.TrialBalancePeriod{
			StartDate:           day(2026, 1, 1),
			EndDate:             day(2026, 1, 31),
			IncludeZeroBalances: true,
			CategoryFilter:      []string{"Assets", "Expenses", "Income"},
		}
		svc.On("Generate", mock.Anything, want).Return(&finance.TrialBalanceReport{
			StartDate:    want.StartDate,
			EndDate:      want.EndDate,
			TotalDebits:  decimal.NewFromInt(1500),
			TotalCredits: decimal.NewFromInt(1500),
			Status:       finance.TrialBalanceStatusBalanced,
		}, nil)

		rec := doRequest(r, http.MethodGet,
			"/api/v1/trial-balance?startDate=2026-01-01&endDate=2026-01-31&includeZeroBalances=true&categoryFilter=Assets,Expenses&categoryFilter=Income", nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got finance.TrialBalanceReport
		decodeData(t, rec, &got)
		assert.True(t, got.TotalDebits.Equal(decimal.NewFromInt(1500)))
		svc.AssertExpectations(t)
	})

	t.Run("missing dates", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()

		rec := doRequest(r, http.MethodGet, "/api/v1/trial-balance?startDate=2026-01-01", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("malformed date", func(t *testing.T) {
		r, _ := setupTrialBalanceRouter()

		rec := doRequest(r, http.MethodGet, "/api/v1/trial-balance?startDate=2026-13-01&endDate=2026-01-31", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("range too long", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()
		svc.On("Generate", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("INVALID_DATE_RANGE", "Date range cannot exceed 365 days"))

		rec := doRequest(r, http.MethodGet, "/api/v1/trial-balance?startDate=2025-01-01&endDate=2026-06-30", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_DATE_RANGE", errorCode(t, rec))
	})
}

func TestTrialBalanceHandler_Compare(t *testing.T) {
	r, svc := setupTrialBalanceRouter()
	svc.On("Compare", mock.Anything,
		finance.TrialBalancePeriod{StartDate: day(2026, 1, 1), EndDate: day(2026, 1, 31)},
		finance.TrialBalancePeriod{StartDate: day(2026, 2, 1), EndDate: day(2026, 2, 28), IncludeZeroBalances: true},
	).Return(&finance.TrialBalanceComparison{TotalVariance: decimal.NewFromInt(-250)}, nil)

	rec := doRequest(r, http.MethodPost, "/api/v1/trial-balance/compare", `{
		"period1": {"start_date": "2026-01-01", "end_date": "2026-01-31"},
		"period2": {"start_date": "2026-02-01", "end_date": "2026-02-28", "include_zero_balances": true}
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got finance.TrialBalanceComparison
	decodeData(t, rec, &got)
	assert.True(t, got.TotalVariance.Equal(decimal.NewFromInt(-250)))
	svc.AssertExpectations(t)
}

func TestTrialBalanceHandler_AccountTransactions(t *testing.T) {
	accountID := uuid.New()
	path := "/api/v1/trial-balance/account/" + accountID.String() + "/transactions"

	t.Run("paged", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()
		svc.On("AccountTransactions", mock.Anything, financeapp.AccountTransactionsInput{
			AccountID: accountID,
			StartDate: day(2026, 3, 1),
			EndDate:   day(2026, 3, 31),
			Page:      2,
			PageSize:  10,
		}).Return(&financeapp.AccountTransactionsResult{Total: 12, Page: 2, PageSize: 10, TotalPages: 2}, nil)

		rec := doRequest(r, http.MethodGet, path+"?startDate=2026-03-01&endDate=2026-03-31&page=2&pageSize=10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got financeapp.AccountTransactionsResult
		decodeData(t, rec, &got)
		assert.Equal(t, int64(12), got.Total)
		svc.AssertExpectations(t)
	})

	t.Run("unknown account", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()
		svc.On("AccountTransactions", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found"))

		rec := doRequest(r, http.MethodGet, path+"?startDate=2026-03-01&endDate=2026-03-31", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("dates required", func(t *testing.T) {
		r, _ := setupTrialBalanceRouter()

		rec := doRequest(r, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad account id", func(t *testing.T) {
		r, _ := setupTrialBalanceRouter()

		rec := doRequest(r, http.MethodGet, "/api/v1/trial-balance/account/1001/transactions?startDate=2026-03-01&endDate=2026-03-31", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", errorCode(t, rec))
	})
}

func TestTrialBalanceHandler_Calculate(t *testing.T) {
	t.Run("assigns missing transaction ids", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()
		svc.On("Calculate", mock.MatchedBy(func(txs []finance.TransactionData) bool {
			return len(txs) == 2 && txs[0].TransactionID != uuid.Nil && txs[1].TransactionID != uuid.Nil
		})).Return(&financeapp.CalculationResult{
			Calculation: &finance.TrialBalanceCalculation{FinalBalance: decimal.NewFromInt(-200), Expression: "-500 + 300 = -200"},
		}, nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/trial-balance/calculate", `{"transactions":[
			{"debit_amount":"500","credit_amount":"0","description":"Fabric","account_name":"Fabric Purchase"},
			{"debit_amount":"0","credit_amount":"300","description":"Sale","account_name":"Export Sales"}
		]}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got financeapp.CalculationResult
		decodeData(t, rec, &got)
		assert.Equal(t, "-500 + 300 = -200", got.Calculation.Expression)
		svc.AssertExpectations(t)
	})

	t.Run("empty list", func(t *testing.T) {
		r, svc := setupTrialBalanceRouter()

		rec := doRequest(r, http.MethodPost, "/api/v1/trial-balance/calculate", `{"transactions":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Calculate", mock.Anything)
	})
}

func TestTrialBalanceHandler_ClearCache(t *testing.T) {
	r, svc := setupTrialBalanceRouter()
	svc.On("InvalidateCache", mock.Anything).Return(int64(3), nil)

	rec := doRequest(r, http.MethodDelete, "/api/v1/trial-balance/cache", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Cache-Removed"))
	var got CacheClearedResponse
	decodeData(t, rec, &got)
	assert.Equal(t, int64(3), got.Removed)
}
