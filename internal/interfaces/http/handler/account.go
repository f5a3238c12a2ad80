package handler

import (
	"context"
	"strconv"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService is what AccountHandler needs from finance.AccountService
type AccountService interface {
	List(ctx context.Context, in financeapp.AccountListInput) (*financeapp.AccountListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financeapp.AccountDTO, error)
	Create(ctx context.Context, in financeapp.AccountInput) (*financeapp.AccountDTO, error)
	Update(ctx context.Context, id uuid.UUID, in financeapp.AccountInput) (*financeapp.AccountDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AccountTypes() []financeapp.AccountTypeDTO
	NextAccountCode(ctx context.Context, accountType finance.AccountType) (string, error)
	ByType(ctx context.Context, accountType finance.AccountType) ([]financeapp.AccountDTO, error)
	Search(ctx context.Context, term string) ([]financeapp.AccountDTO, error)
}

// AccountHandler handles chart of accounts endpoints
type AccountHandler struct {
	BaseHandler
	accountService AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AccountRequest is the body of account create and update
type AccountRequest struct {
	AccountCode       string           `json:"account_code" binding:"required,max=10,account_code" example:"1001"`
	AccountName       string           `json:"account_name" binding:"required,max=200" example:"Cash in Hand"`
	AccountType       string           `json:"account_type" binding:"required" example:"Asset"`
	ParentAccountID   *uuid.UUID       `json:"parent_account_id"`
	Description       string           `json:"description" binding:"max=500"`
	OpeningBalance    *decimal.Decimal `json:"opening_balance" swaggertype:"string" example:"0"`
	AllowTransactions *bool            `json:"allow_transactions"`
	SortOrder         int              `json:"sort_order"`
}

func (h *AccountHandler) input(c *gin.Context, req AccountRequest) (financeapp.AccountInput, bool) {
	accountType, err := finance.ParseAccountType(req.AccountType)
	if err != nil {
		h.HandleError(c, err)
		return financeapp.AccountInput{}, false
	}
	in := financeapp.AccountInput{
		AccountCode:       req.AccountCode,
		AccountName:       req.AccountName,
		AccountType:       accountType,
		ParentAccountID:   req.ParentAccountID,
		Description:       req.Description,
		AllowTransactions: req.AllowTransactions,
		SortOrder:         req.SortOrder,
	}
	if req.OpeningBalance != nil {
		in.OpeningBalance = *req.OpeningBalance
	}
	return in, true
}

// List godoc
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Param        accountType query string false "Account type"
// @Param        isActive query bool false "Active flag"
// @Param        search query string false "Code or name"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(50)
// @Success      200 {object} dto.Response{data=[]financeapp.AccountDTO,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	in := financeapp.AccountListInput{Search: c.Query("search")}
	if raw := c.Query("accountType"); raw != "" {
		accountType, err := finance.ParseAccountType(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		in.AccountType = &accountType
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid isActive: expected true or false")
			return
		}
		in.IsActive = &active
	}
	var ok bool
	if in.Page, ok = h.queryInt(c, "page", 1); !ok {
		return
	}
	if in.PageSize, ok = h.queryInt(c, "pageSize", 0); !ok {
		return
	}

	result, err := h.accountService.List(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Accounts, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response{data=financeapp.AccountDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/{id} [get]
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Create godoc
// @Summary      Create an account
// @Description  Codes are unique. A parent must exist and share the account type.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body AccountRequest true "Account"
// @Success      201 {object} dto.Response{data=financeapp.AccountDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req AccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}
	account, err := h.accountService.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// Update godoc
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID"
// @Param        request body AccountRequest true "Account"
// @Success      200 {object} dto.Response{data=financeapp.AccountDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}
	account, err := h.accountService.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Delete godoc
// @Summary      Delete an account
// @Description  Soft delete. Accounts with journal lines or active sub-accounts are kept.
// @Tags         accounts
// @Param        id path string true "Account ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AccountTypes godoc
// @Summary      Account types
// @Description  Types with their code prefixes and report categories
// @Tags         accounts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]financeapp.AccountTypeDTO}
// @Security     BearerAuth
// @Router       /accounts/account-types [get]
func (h *AccountHandler) AccountTypes(c *gin.Context) {
	h.Success(c, h.accountService.AccountTypes())
}

// NextAccountCodeResponse carries a suggested account code
type NextAccountCodeResponse struct {
	AccountType string `json:"account_type" example:"Asset"`
	AccountCode string `json:"account_code" example:"1004"`
}

// NextAccountCode godoc
// @Summary      Suggest the next account code
// @Tags         accounts
// @Produce      json
// @Param        accountType query string true "Account type"
// @Success      200 {object} dto.Response{data=NextAccountCodeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/next-account-code [get]
func (h *AccountHandler) NextAccountCode(c *gin.Context) {
	accountType, err := finance.ParseAccountType(c.Query("accountType"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	code, err := h.accountService.NextAccountCode(c.Request.Context(), accountType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, NextAccountCodeResponse{AccountType: string(accountType), AccountCode: code})
}

// ByType godoc
// @Summary      Active accounts of a type
// @Tags         accounts
// @Produce      json
// @Param        type path string true "Account type"
// @Success      200 {object} dto.Response{data=[]financeapp.AccountDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/by-type/{type} [get]
func (h *AccountHandler) ByType(c *gin.Context) {
	accountType, err := finance.ParseAccountType(c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	accounts, err := h.accountService.ByType(c.Request.Context(), accountType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// Search godoc
// @Summary      Search accounts
// @Tags         accounts
// @Produce      json
// @Param        searchTerm query string false "Code or name"
// @Success      200 {object} dto.Response{data=[]financeapp.AccountDTO}
// @Security     BearerAuth
// @Router       /accounts/search [get]
func (h *AccountHandler) Search(c *gin.Context) {
	accounts, err := h.accountService.Search(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}
