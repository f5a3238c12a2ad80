package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxImportFileSize is the largest cash book sheet accepted (10MB)
const maxImportFileSize = 10 << 20

// CashBookImportService is what CashBookImportHandler needs from finance.CashBookImportService
type CashBookImportService interface {
	ImportCSV(ctx context.Context, r io.Reader, userID uuid.UUID) (*financeapp.CashBookImportResult, error)
	ImportManual(ctx context.Context, req financeapp.CashBookImportRequest) (*financeapp.CashBookImportResult, error)
	SampleFormat() financeapp.ImportSampleFormat
}

// CashBookImportHandler handles cash book import endpoints
type CashBookImportHandler struct {
	BaseHandler
	importService CashBookImportService
}

// NewCashBookImportHandler creates a new CashBookImportHandler
func NewCashBookImportHandler(importService CashBookImportService) *CashBookImportHandler {
	return &CashBookImportHandler{importService: importService}
}

// ImportTransactionRequest is one side of a cash book row
type ImportTransactionRequest struct {
	Date        string          `json:"date" binding:"required" example:"2025-02-01"`
	Direction   string          `json:"direction" binding:"required" example:"Debit"` // Credit or Debit
	Category    string          `json:"category" binding:"required,max=200" example:"Subcontract bill"`
	Particulars string          `json:"particulars" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"2400"`
	Supplier    string          `json:"supplier" binding:"max=200"`
	Buyer       string          `json:"buyer" binding:"max=200" example:"Brooklyn: Joggers"`
}

// TrialBalanceRequest carries the closing totals of the source cash book
type TrialBalanceRequest struct {
	TotalReceived decimal.Decimal `json:"total_received" swaggertype:"string"`
	TotalExpenses decimal.Decimal `json:"total_expenses" swaggertype:"string"`
	CashInHand    decimal.Decimal `json:"cash_in_hand" swaggertype:"string"`
	AsOfDate      string          `json:"as_of_date" example:"2025-02-28"`
}

// ManualImportRequest is a cash book already split into credit and debit sides
type ManualImportRequest struct {
	Transactions []ImportTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
	Suppliers    []string                   `json:"suppliers"`
	Buyers       []string                   `json:"buyers"`
	TrialBalance *TrialBalanceRequest       `json:"trial_balance"`
}

func (r ManualImportRequest) toRequest(userID uuid.UUID) (financeapp.CashBookImportRequest, error) {
	req := financeapp.CashBookImportRequest{
		Transactions: make([]financeapp.ImportTransaction, len(r.Transactions)),
		Suppliers:    r.Suppliers,
		Buyers:       r.Buyers,
		UserID:       userID,
	}
	for i, t := range r.Transactions {
		date, err := parseDate(t.Date)
		if err != nil {
			return req, errInvalidDate(t.Date)
		}
		req.Transactions[i] = financeapp.ImportTransaction{
			Row:         i + 1,
			Direction:   t.Direction,
			Date:        date,
			Category:    t.Category,
			Particulars: t.Particulars,
			Amount:      t.Amount,
			Supplier:    t.Supplier,
			Buyer:       t.Buyer,
		}
	}
	if tb := r.TrialBalance; tb != nil {
		req.TrialBalance = &financeapp.TrialBalanceTotals{
			TotalReceived: tb.TotalReceived,
			TotalExpenses: tb.TotalExpenses,
			CashInHand:    tb.CashInHand,
		}
		if tb.AsOfDate != "" {
			asOf, err := parseDate(tb.AsOfDate)
			if err != nil {
				return req, errInvalidDate(tb.AsOfDate)
			}
			req.TrialBalance.AsOfDate = &asOf
		}
	}
	return req, nil
}

// ImportCSV godoc
// @Summary      Import a cash book sheet
// @Description  Books every credit and debit side below the Date / Catagories / Amount header row.
// @Description  Missing categories, accounts, buyers and suppliers are created. Refused rows are listed in errors.
// @Tags         cash-book-import
// @Accept       multipart/form-data
// @Produce      json
// @Param        csvFile formData file true "Cash book CSV (max 10MB)"
// @Success      200 {object} dto.Response{data=financeapp.CashBookImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book-import/import-csv [post]
func (h *CashBookImportHandler) ImportCSV(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	file, header, ok := h.formFile(c, "csvFile", "file")
	if !ok {
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "File exceeds maximum size of 10MB")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		h.BadRequest(c, "Only CSV files are supported")
		return
	}

	result, err := h.importService.ImportCSV(c.Request.Context(), file, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// formFile returns the first uploaded file found under one of names
func (h *CashBookImportHandler) formFile(c *gin.Context, names ...string) (multipart.File, *multipart.FileHeader, bool) {
	for _, name := range names {
		file, header, err := c.Request.FormFile(name)
		if err == nil {
			return file, header, true
		}
	}
	h.BadRequest(c, "No file uploaded")
	return nil, nil, false
}

// ImportManual godoc
// @Summary      Import cash book transactions
// @Description  Books transactions sent as JSON and reconciles them against optional trial balance totals
// @Tags         cash-book-import
// @Accept       json
// @Produce      json
// @Param        request body ManualImportRequest true "Transactions"
// @Success      200 {object} dto.Response{data=financeapp.CashBookImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cash-book-import/import-manual [post]
func (h *CashBookImportHandler) ImportManual(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var body ManualImportRequest
	if !h.bindJSON(c, &body) {
		return
	}
	req, err := body.toRequest(userID)
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	result, err := h.importService.ImportManual(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SampleFormat godoc
// @Summary      Cash book sheet format
// @Description  Column layout, date formats, an example row and the usual categories
// @Tags         cash-book-import
// @Produce      json
// @Success      200 {object} dto.Response{data=financeapp.ImportSampleFormat}
// @Security     BearerAuth
// @Router       /cash-book-import/sample-format [get]
func (h *CashBookImportHandler) SampleFormat(c *gin.Context) {
	h.Success(c, h.importService.SampleFormat())
}
