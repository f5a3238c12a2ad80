package handler

import (
	"context"
	"strconv"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrialBalanceService is what TrialBalanceHandler needs from finance.TrialBalanceService
type TrialBalanceService interface {
	Generate(ctx context.Context, period finance.TrialBalancePeriod) (*finance.TrialBalanceReport, error)
	Compare(ctx context.Context, period1, period2 finance.TrialBalancePeriod) (*finance.TrialBalanceComparison, error)
	AccountTransactions(ctx context.Context, in financeapp.AccountTransactionsInput) (*financeapp.AccountTransactionsResult, error)
	Calculate(transactions []finance.TransactionData) (*financeapp.CalculationResult, error)
	InvalidateCache(ctx context.Context) (int64, error)
}

// TrialBalanceHandler handles trial balance endpoints
type TrialBalanceHandler struct {
	BaseHandler
	trialBalanceService TrialBalanceService
}

// NewTrialBalanceHandler creates a new TrialBalanceHandler
func NewTrialBalanceHandler(trialBalanceService TrialBalanceService) *TrialBalanceHandler {
	return &TrialBalanceHandler{trialBalanceService: trialBalanceService}
}

// TrialBalancePeriodRequest selects the period of a report
type TrialBalancePeriodRequest struct {
	StartDate           string   `json:"start_date" form:"startDate" binding:"required" example:"2026-01-01"`
	EndDate             string   `json:"end_date" form:"endDate" binding:"required" example:"2026-01-31"`
	IncludeZeroBalances bool     `json:"include_zero_balances" form:"includeZeroBalances"`
	CategoryFilter      []string `json:"category_filter" form:"categoryFilter"`
}

// CompareTrialBalanceRequest holds the two periods to compare
type CompareTrialBalanceRequest struct {
	Period1 TrialBalancePeriodRequest `json:"period1" binding:"required"`
	Period2 TrialBalancePeriodRequest `json:"period2" binding:"required"`
}

// CalculateTrialBalanceRequest carries caller-supplied transactions
type CalculateTrialBalanceRequest struct {
	Transactions []finance.TransactionData `json:"transactions" binding:"required,min=1"`
}

// CacheClearedResponse reports how many cached reports were dropped
type CacheClearedResponse struct {
	Removed int64 `json:"removed"`
}

func (r TrialBalancePeriodRequest) toPeriod() (finance.TrialBalancePeriod, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return finance.TrialBalancePeriod{}, errInvalidDate(r.StartDate)
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return finance.TrialBalancePeriod{}, errInvalidDate(r.EndDate)
	}
	return finance.TrialBalancePeriod{
		StartDate:           start,
		EndDate:             end,
		IncludeZeroBalances: r.IncludeZeroBalances,
		CategoryFilter:      splitList(r.CategoryFilter),
	}, nil
}

// Generate godoc
// @Summary      Generate a trial balance
// @Description  Posted and approved entries dated within the period, grouped by account category. Cached for a few minutes.
// @Tags         trial-balance
// @Produce      json
// @Param        startDate query string true "Start date (yyyy-MM-dd)"
// @Param        endDate query string true "End date (yyyy-MM-dd), at most 365 days after start"
// @Param        includeZeroBalances query bool false "Include accounts without activity"
// @Param        categoryFilter query []string false "Assets, Liabilities, Equity, Income or Expenses" collectionFormat(multi)
// @Success      200 {object} dto.Response{data=finance.TrialBalanceReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trial-balance [get]
func (h *TrialBalanceHandler) Generate(c *gin.Context) {
	var req TrialBalancePeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "startDate and endDate are required")
		return
	}
	period, err := req.toPeriod()
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	report, err := h.trialBalanceService.Generate(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Compare godoc
// @Summary      Compare two trial balance periods
// @Description  Per-account variances sorted by absolute change
// @Tags         trial-balance
// @Accept       json
// @Produce      json
// @Param        request body CompareTrialBalanceRequest true "Periods"
// @Success      200 {object} dto.Response{data=finance.TrialBalanceComparison}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trial-balance/compare [post]
func (h *TrialBalanceHandler) Compare(c *gin.Context) {
	var req CompareTrialBalanceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p1, err := req.Period1.toPeriod()
	if err != nil {
		h.handleParseError(c, err)
		return
	}
	p2, err := req.Period2.toPeriod()
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	comparison, err := h.trialBalanceService.Compare(c.Request.Context(), p1, p2)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comparison)
}

// AccountTransactions godoc
// @Summary      Account drill-down
// @Description  Ledger lines of one account with running balance and a summary of the whole range
// @Tags         trial-balance
// @Produce      json
// @Param        accountId path string true "Account ID"
// @Param        startDate query string true "Start date (yyyy-MM-dd)"
// @Param        endDate query string true "End date (yyyy-MM-dd)"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(50)
// @Success      200 {object} dto.Response{data=financeapp.AccountTransactionsResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trial-balance/account/{accountId}/transactions [get]
func (h *TrialBalanceHandler) AccountTransactions(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "accountId")
	if !ok {
		return
	}
	start, ok := h.queryDate(c, "startDate")
	if !ok {
		return
	}
	end, ok := h.queryDate(c, "endDate")
	if !ok {
		return
	}
	if start == nil || end == nil {
		h.BadRequest(c, "startDate and endDate are required")
		return
	}
	page, ok := h.queryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := h.queryInt(c, "pageSize", 0)
	if !ok {
		return
	}

	result, err := h.trialBalanceService.AccountTransactions(c.Request.Context(), financeapp.AccountTransactionsInput{
		AccountID: accountID,
		StartDate: *start,
		EndDate:   *end,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Calculate godoc
// @Summary      Fold transactions into a balance
// @Description  Debits count negative and credits positive. Returns the expression and a step by step breakdown.
// @Tags         trial-balance
// @Accept       json
// @Produce      json
// @Param        request body CalculateTrialBalanceRequest true "Transactions"
// @Success      200 {object} dto.Response{data=financeapp.CalculationResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trial-balance/calculate [post]
func (h *TrialBalanceHandler) Calculate(c *gin.Context) {
	var req CalculateTrialBalanceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	for i := range req.Transactions {
		if req.Transactions[i].TransactionID == uuid.Nil {
			req.Transactions[i].TransactionID = uuid.New()
		}
	}

	result, err := h.trialBalanceService.Calculate(req.Transactions)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ClearCache godoc
// @Summary      Clear cached trial balances
// @Tags         trial-balance
// @Produce      json
// @Success      200 {object} dto.Response{data=CacheClearedResponse}
// @Security     BearerAuth
// @Router       /trial-balance/cache [delete]
func (h *TrialBalanceHandler) ClearCache(c *gin.Context) {
	n, err := h.trialBalanceService.InvalidateCache(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("X-Cache-Removed", strconv.FormatInt(n, 10))
	h.Success(c, CacheClearedResponse{Removed: n})
}
