package handler

import (
	"context"
	"time"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BalanceService is what BalanceHandler needs from finance.BalanceService
type BalanceService interface {
	AccountBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, error)
	RealtimeAccountBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, error)
	CashBalances(ctx context.Context) (*finance.BalanceGroup, error)
	BankBalances(ctx context.Context) (*finance.BalanceGroup, error)
	Summary(ctx context.Context, asOf *time.Time) (*finance.BalanceSummary, error)
	Dashboard(ctx context.Context) (*financeapp.BalanceDashboard, error)
	RefreshCache(ctx context.Context) (int64, error)
	ClearAccountCache(ctx context.Context, id uuid.UUID) (int64, error)
}

// BalanceHandler handles account balance endpoints
type BalanceHandler struct {
	BaseHandler
	balanceService BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// BankBalances godoc
// @Summary      Bank account balances
// @Tags         balance
// @Produce      json
// @Success      200 {object} dto.Response{data=finance.BalanceGroup}
// @Security     BearerAuth
// @Router       /balance/bank [get]
func (h *BalanceHandler) BankBalances(c *gin.Context) {
	group, err := h.balanceService.BankBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// CashBalances godoc
// @Summary      Cash account balances
// @Tags         balance
// @Produce      json
// @Success      200 {object} dto.Response{data=finance.BalanceGroup}
// @Security     BearerAuth
// @Router       /balance/cash [get]
func (h *BalanceHandler) CashBalances(c *gin.Context) {
	group, err := h.balanceService.CashBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// Summary godoc
// @Summary      Financial position summary
// @Description  Totals by account type from posted and approved entries. Served from cache when fresh.
// @Tags         balance
// @Produce      json
// @Param        asOf query string false "Balance date (yyyy-MM-dd), defaults to today"
// @Success      200 {object} dto.Response{data=finance.BalanceSummary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /balance/summary [get]
func (h *BalanceHandler) Summary(c *gin.Context) {
	asOf, ok := h.queryDate(c, "asOf")
	if !ok {
		return
	}
	summary, err := h.balanceService.Summary(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Dashboard godoc
// @Summary      Balance dashboard
// @Tags         balance
// @Produce      json
// @Success      200 {object} dto.Response{data=financeapp.BalanceDashboard}
// @Security     BearerAuth
// @Router       /balance/dashboard [get]
func (h *BalanceHandler) Dashboard(c *gin.Context) {
	dash, err := h.balanceService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dash)
}

// AccountBalance godoc
// @Summary      Current balance of an account
// @Tags         balance
// @Produce      json
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response{data=finance.AccountPosition}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /balance/account/{id} [get]
func (h *BalanceHandler) AccountBalance(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respondPosition(c, h.balanceService.AccountBalance, id, nil)
}

// AccountBalanceAsOf godoc
// @Summary      Balance of an account at the end of a day
// @Tags         balance
// @Produce      json
// @Param        id path string true "Account ID"
// @Param        date path string true "Balance date (yyyy-MM-dd)"
// @Success      200 {object} dto.Response{data=finance.AccountPosition}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /balance/account/{id}/as-of/{date} [get]
func (h *BalanceHandler) AccountBalanceAsOf(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	asOf, err := parseDate(c.Param("date"))
	if err != nil {
		h.BadRequest(c, errInvalidDate(c.Param("date")).Error())
		return
	}
	h.respondPosition(c, h.balanceService.AccountBalance, id, &asOf)
}

// RealtimeAccountBalance godoc
// @Summary      Account balance computed without the cache
// @Tags         balance
// @Produce      json
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response{data=finance.AccountPosition}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /balance/account/{id}/realtime [get]
func (h *BalanceHandler) RealtimeAccountBalance(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respondPosition(c, h.balanceService.RealtimeAccountBalance, id, nil)
}

// RefreshCache godoc
// @Summary      Drop every cached balance
// @Tags         balance
// @Produce      json
// @Success      200 {object} dto.Response{data=CacheClearedResponse}
// @Security     BearerAuth
// @Router       /balance/refresh-cache [post]
func (h *BalanceHandler) RefreshCache(c *gin.Context) {
	n, err := h.balanceService.RefreshCache(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CacheClearedResponse{Removed: n})
}

// ClearAccountCache godoc
// @Summary      Drop the cached balances of one account
// @Tags         balance
// @Produce      json
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response{data=CacheClearedResponse}
// @Security     BearerAuth
// @Router       /balance/cache/account/{id} [delete]
func (h *BalanceHandler) ClearAccountCache(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	n, err := h.balanceService.ClearAccountCache(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CacheClearedResponse{Removed: n})
}

type positionReader func(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, error)

func (h *BalanceHandler) respondPosition(c *gin.Context, read positionReader, id uuid.UUID, asOf *time.Time) {
	p, err := read(c.Request.Context(), id, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
