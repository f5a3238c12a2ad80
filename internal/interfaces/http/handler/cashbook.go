package handler

import (
	"context"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashBookService is what CashBookHandler needs from finance.CashBookService
type CashBookService interface {
	SaveCredit(ctx context.Context, in financeapp.CashTransactionInput) (*financeapp.CashTransactionDTO, error)
	SaveDebit(ctx context.Context, in financeapp.CashTransactionInput) (*financeapp.CashTransactionDTO, error)
	RecentTransactions(ctx context.Context, limit int) (*financeapp.RecentTransactions, error)
	CreateEntry(ctx context.Context, in financeapp.CashBookEntryInput) (*financeapp.JournalEntryDTO, error)
	CompleteEntry(ctx context.Context, id uuid.UUID) (*financeapp.JournalEntryDTO, error)
	ListEntries(ctx context.Context, in financeapp.JournalListInput) (*financeapp.JournalEntryListResult, error)
}

// CashBookHandler handles cash book endpoints
type CashBookHandler struct {
	BaseHandler
	cashBookService CashBookService
}

// NewCashBookHandler creates a new CashBookHandler
func NewCashBookHandler(cashBookService CashBookService) *CashBookHandler {
	return &CashBookHandler{cashBookService: cashBookService}
}

// CashTransactionRequest records money received (credit) or paid (debit)
type CashTransactionRequest struct {
	Date         string          `json:"date" binding:"required" example:"2026-03-15"`
	CategoryName string          `json:"category_name" binding:"required,max=200" example:"Fabric Purchase"`
	Particulars  string          `json:"particulars" binding:"required,max=500" example:"Denim rolls, invoice 4411"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"25000.00"`
	BuyerName    string          `json:"buyer_name" binding:"max=200"`
	SupplierName string          `json:"supplier_name" binding:"max=200"`
}

// CashBookEntryRequest is a balanced multi-line cash book entry
type CashBookEntryRequest struct {
	Date            string               `json:"date" binding:"required" example:"2026-03-15"`
	JournalType     string               `json:"journal_type" example:"CashReceipt"` // CashReceipt or CashPayment
	ReferenceNumber string               `json:"reference_number" binding:"max=50"`
	Description     string               `json:"description" binding:"required,max=500"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

func (r CashTransactionRequest) toInput(userID uuid.UUID) (financeapp.CashTransactionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return financeapp.CashTransactionInput{}, errInvalidDate(r.Date)
	}
	contact := r.BuyerName
	if contact == "" {
		contact = r.SupplierName
	}
	return financeapp.CashTransactionInput{
		Date:         date,
		CategoryName: r.CategoryName,
		Particulars:  r.Particulars,
		Amount:       r.Amount,
		ContactName:  contact,
		UserID:       userID,
	}, nil
}

// SaveCredit godoc
// @Summary      Record a cash receipt
// @Description  Gets or creates the credit category and its revenue account, then posts a one-line CashReceipt entry
// @Tags         cash-book
// @Accept       json
// @Produce      json
// @Param        request body CashTransactionRequest true "Receipt"
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Success      201 {object} dto.Response{data=financeapp.CashTransactionDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book/credit [post]
func (h *CashBookHandler) SaveCredit(c *gin.Context) {
	h.save(c, h.cashBookService.SaveCredit)
}

// SaveDebit godoc
// @Summary      Record a cash payment
// @Description  Gets or creates the debit category and its expense account, then posts a one-line CashPayment entry
// @Tags         cash-book
// @Accept       json
// @Produce      json
// @Param        request body CashTransactionRequest true "Payment"
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Success      201 {object} dto.Response{data=financeapp.CashTransactionDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book/debit [post]
func (h *CashBookHandler) SaveDebit(c *gin.Context) {
	h.save(c, h.cashBookService.SaveDebit)
}

func (h *CashBookHandler) save(c *gin.Context, op func(context.Context, financeapp.CashTransactionInput) (*financeapp.CashTransactionDTO, error)) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req CashTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, err := req.toInput(userID)
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	txn, err := op(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, txn)
}

// Recent godoc
// @Summary      Recent cash book transactions
// @Description  Latest posted receipts and payments with totals
// @Tags         cash-book
// @Produce      json
// @Param        limit query int false "Number of transactions (max 100)" default(20)
// @Success      200 {object} dto.Response{data=financeapp.RecentTransactions}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book/recent [get]
func (h *CashBookHandler) Recent(c *gin.Context) {
	limit, ok := h.queryInt(c, "limit", 0)
	if !ok {
		return
	}
	recent, err := h.cashBookService.RecentTransactions(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recent)
}

// CreateEntry godoc
// @Summary      Create a multi-line cash book entry
// @Description  Stored as a Draft. Lines must balance.
// @Tags         cash-book
// @Accept       json
// @Produce      json
// @Param        request body CashBookEntryRequest true "Entry"
// @Success      201 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book/entries [post]
func (h *CashBookHandler) CreateEntry(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req CashBookEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, errInvalidDate(req.Date).Error())
		return
	}
	var journalType finance.JournalType
	if req.JournalType != "" {
		if journalType, err = finance.ParseJournalType(req.JournalType); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	entry, err := h.cashBookService.CreateEntry(c.Request.Context(), financeapp.CashBookEntryInput{
		Date:            date,
		JournalType:     journalType,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		Lines:           toLineInputs(req.Lines),
		UserID:          userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// CompleteEntry godoc
// @Summary      Complete a cash book entry
// @Description  Posts a draft cash book entry
// @Tags         cash-book
// @Produce      json
// @Param        id path string true "Entry ID"
// @Success      200 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book/entries/{id}/complete [patch]
func (h *CashBookHandler) CompleteEntry(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.cashBookService.CompleteEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// ListEntries godoc
// @Summary      List cash book entries
// @Tags         cash-book
// @Produce      json
// @Param        dateFrom query string false "From date (yyyy-MM-dd)"
// @Param        dateTo query string false "To date (yyyy-MM-dd)"
// @Param        status query []string false "Statuses" collectionFormat(multi)
// @Param        search query string false "Number, reference or description"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.JournalEntryDTO,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book/entries [get]
func (h *CashBookHandler) ListEntries(c *gin.Context) {
	var req JournalFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter, err := req.toFilter()
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	result, err := h.cashBookService.ListEntries(c.Request.Context(), financeapp.JournalListInput{
		Filter:   filter,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Entries, result.Total, result.Page, result.PageSize)
}
