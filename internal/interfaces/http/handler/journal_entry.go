package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalService is what JournalEntryHandler needs from finance.JournalService
type JournalService interface {
	List(ctx context.Context, in financeapp.JournalListInput) (*financeapp.JournalEntryListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financeapp.JournalEntryDTO, error)
	Create(ctx context.Context, in financeapp.JournalEntryInput) (*financeapp.JournalEntryDTO, error)
	Update(ctx context.Context, id uuid.UUID, in financeapp.JournalEntryInput) (*financeapp.JournalEntryDTO, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Post(ctx context.Context, id uuid.UUID) (*financeapp.JournalEntryDTO, error)
	Approve(ctx context.Context, id, userID uuid.UUID, notes string) (*financeapp.JournalEntryDTO, error)
	Reverse(ctx context.Context, id, userID uuid.UUID, reason string) (*financeapp.JournalEntryDTO, error)
	Statistics(ctx context.Context, filter finance.JournalEntryFilter) (*financeapp.JournalStatistics, error)
	Validate(ctx context.Context, id uuid.UUID) (*financeapp.JournalValidationDTO, error)
	Export(ctx context.Context, filter finance.JournalEntryFilter) ([]byte, error)
	ArchiveExport(ctx context.Context, filter finance.JournalEntryFilter, userID uuid.UUID) (*financeapp.ArchivedExportDTO, error)
	Types() []string
	Statuses() []string
}

// JournalEntryHandler handles journal entry endpoints
type JournalEntryHandler struct {
	BaseHandler
	journalService JournalService
	now            func() time.Time
}

// NewJournalEntryHandler creates a new JournalEntryHandler
func NewJournalEntryHandler(journalService JournalService) *JournalEntryHandler {
	return &JournalEntryHandler{journalService: journalService, now: time.Now}
}

// JournalLineRequest is one line of a journal entry body
type JournalLineRequest struct {
	AccountID   uuid.UUID       `json:"account_id" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Description string          `json:"description" binding:"max=500"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0" swaggertype:"string" example:"1500.00"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0" swaggertype:"string" example:"0"`
	Reference   string          `json:"reference" binding:"max=100"`
}

// JournalEntryRequest is the body of journal entry create and update
type JournalEntryRequest struct {
	TransactionDate string               `json:"transaction_date" binding:"required" example:"2026-03-15"`
	JournalType     string               `json:"journal_type" binding:"required" example:"General"`
	ReferenceNumber string               `json:"reference_number" binding:"max=50"`
	Description     string               `json:"description" binding:"required,max=500"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
	Post            bool                 `json:"post"` // create only
}

// JournalFilterRequest selects journal entries. Query parameters use the form names.
type JournalFilterRequest struct {
	DateFrom  string   `form:"dateFrom" json:"date_from"`
	DateTo    string   `form:"dateTo" json:"date_to"`
	Types     []string `form:"journalType" json:"journal_types"`
	Statuses  []string `form:"status" json:"statuses"`
	Search    string   `form:"search" json:"search" binding:"max=200"`
	MinAmount string   `form:"minAmount" json:"min_amount"`
	MaxAmount string   `form:"maxAmount" json:"max_amount"`
	SortBy    string   `form:"sortBy" json:"sort_by"`
	SortDesc  bool     `form:"sortDesc" json:"sort_desc"`
	Page      int      `form:"page" json:"-" binding:"omitempty,min=1"`
	PageSize  int      `form:"pageSize" json:"-" binding:"omitempty,min=1,max=100"`
}

// ApproveJournalRequest carries optional approval notes
type ApproveJournalRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// ReverseJournalRequest carries the mandatory reversal reason
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required,max=500" example:"Posted to the wrong account"`
}

// MetadataResponse lists the values of an enumeration
type MetadataResponse struct {
	Values []string `json:"values"`
}

func (r JournalFilterRequest) toFilter() (finance.JournalEntryFilter, error) {
	f := finance.JournalEntryFilter{
		Search:   strings.TrimSpace(r.Search),
		SortBy:   r.SortBy,
		SortDesc: r.SortDesc,
	}
	if r.DateFrom != "" {
		t, err := parseDate(r.DateFrom)
		if err != nil {
			return f, errInvalidDate(r.DateFrom)
		}
		f.DateFrom = &t
	}
	if r.DateTo != "" {
		t, err := parseDate(r.DateTo)
		if err != nil {
			return f, errInvalidDate(r.DateTo)
		}
		f.DateTo = &t
	}
	for _, raw := range splitList(r.Types) {
		t, err := finance.ParseJournalType(raw)
		if err != nil {
			return f, err
		}
		f.Types = append(f.Types, t)
	}
	for _, raw := range splitList(r.Statuses) {
		st, err := finance.ParseJournalStatus(raw)
		if err != nil {
			return f, err
		}
		f.Statuses = append(f.Statuses, st)
	}
	if r.MinAmount != "" {
		d, err := decimal.NewFromString(r.MinAmount)
		if err != nil {
			return f, fmt.Errorf("invalid minimum amount %q", r.MinAmount)
		}
		f.MinAmount = &d
	}
	if r.MaxAmount != "" {
		d, err := decimal.NewFromString(r.MaxAmount)
		if err != nil {
			return f, fmt.Errorf("invalid maximum amount %q", r.MaxAmount)
		}
		f.MaxAmount = &d
	}
	return f, nil
}

// splitList accepts repeated parameters as well as comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (r JournalEntryRequest) toInput(userID uuid.UUID) (financeapp.JournalEntryInput, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return financeapp.JournalEntryInput{}, errInvalidDate(r.TransactionDate)
	}
	journalType, err := finance.ParseJournalType(r.JournalType)
	if err != nil {
		return financeapp.JournalEntryInput{}, err
	}
	return financeapp.JournalEntryInput{
		TransactionDate: date,
		JournalType:     journalType,
		ReferenceNumber: r.ReferenceNumber,
		Description:     r.Description,
		Lines:           toLineInputs(r.Lines),
		Post:            r.Post,
		UserID:          userID,
	}, nil
}

func toLineInputs(lines []JournalLineRequest) []finance.LineInput {
	out := make([]finance.LineInput, len(lines))
	for i, l := range lines {
		out[i] = finance.LineInput{
			AccountID:   l.AccountID,
			CategoryID:  l.CategoryID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Reference:   l.Reference,
		}
	}
	return out
}

// List godoc
// @Summary      List journal entries
// @Tags         journal-entries
// @Produce      json
// @Param        dateFrom query string false "From date (yyyy-MM-dd)"
// @Param        dateTo query string false "To date (yyyy-MM-dd)"
// @Param        journalType query []string false "Journal types" collectionFormat(multi)
// @Param        status query []string false "Statuses" collectionFormat(multi)
// @Param        search query string false "Number, reference or description"
// @Param        minAmount query string false "Minimum total debit"
// @Param        maxAmount query string false "Maximum total debit"
// @Param        sortBy query string false "transaction_date, journal_number, total_debit or created_at"
// @Param        sortDesc query bool false "Sort descending"
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.JournalEntryDTO,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries [get]
func (h *JournalEntryHandler) List(c *gin.Context) {
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

	result, err := h.journalService.List(c.Request.Context(), financeapp.JournalListInput{
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

// GetByID godoc
// @Summary      Get a journal entry
// @Tags         journal-entries
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Success      200 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id} [get]
func (h *JournalEntryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.journalService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Statistics godoc
// @Summary      Journal statistics
// @Description  Totals and counts by type, status and month
// @Tags         journal-entries
// @Produce      json
// @Param        dateFrom query string false "From date (yyyy-MM-dd)"
// @Param        dateTo query string false "To date (yyyy-MM-dd)"
// @Success      200 {object} dto.Response{data=financeapp.JournalStatistics}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/statistics [get]
func (h *JournalEntryHandler) Statistics(c *gin.Context) {
	from, ok := h.queryDate(c, "dateFrom")
	if !ok {
		return
	}
	to, ok := h.queryDate(c, "dateTo")
	if !ok {
		return
	}

	stats, err := h.journalService.Statistics(c.Request.Context(), finance.JournalEntryFilter{DateFrom: from, DateTo: to})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Export godoc
// @Summary      Export journal entries as CSV
// @Description  One row per journal line for every entry matching the filter
// @Tags         journal-entries
// @Accept       json
// @Produce      text/csv
// @Param        request body JournalFilterRequest false "Filter"
// @Success      200 {file} file
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/export [post]
func (h *JournalEntryHandler) Export(c *gin.Context) {
	var req JournalFilterRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	filter, err := req.toFilter()
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	data, err := h.journalService.Export(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("journal-entries-%s.csv", h.now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ArchiveExport godoc
// @Summary      Archive a journal export
// @Description  Renders the same CSV as /export, stores it in object storage and returns a time-limited download link
// @Tags         journal-entries
// @Accept       json
// @Produce      json
// @Param        request body JournalFilterRequest false "Filter"
// @Success      201 {object} dto.Response{data=financeapp.ArchivedExportDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/export/archive [post]
func (h *JournalEntryHandler) ArchiveExport(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req JournalFilterRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	filter, err := req.toFilter()
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	archived, err := h.journalService.ArchiveExport(c.Request.Context(), filter, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, archived)
}

// Create godoc
// @Summary      Create a journal entry
// @Description  Creates a Draft entry, or a Posted one when post is true. Lines must balance within 0.01.
// @Tags         journal-entries
// @Accept       json
// @Produce      json
// @Param        request body JournalEntryRequest true "Journal entry"
// @Param        Idempotency-Key header string false "Replays the first response for a repeated key"
// @Success      201 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries [post]
func (h *JournalEntryHandler) Create(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req JournalEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, err := req.toInput(userID)
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	entry, err := h.journalService.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Update godoc
// @Summary      Update a draft journal entry
// @Description  Header fields and lines are replaced
// @Tags         journal-entries
// @Accept       json
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Param        request body JournalEntryRequest true "Journal entry"
// @Success      200 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id} [put]
func (h *JournalEntryHandler) Update(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req JournalEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, err := req.toInput(userID)
	if err != nil {
		h.handleParseError(c, err)
		return
	}

	entry, err := h.journalService.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Delete godoc
// @Summary      Delete a draft journal entry
// @Description  Soft delete: the draft is marked Reversed
// @Tags         journal-entries
// @Param        id path string true "Journal entry ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id} [delete]
func (h *JournalEntryHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.journalService.Delete(c.Request.Context(), id, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Post godoc
// @Summary      Post a draft journal entry
// @Tags         journal-entries
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Success      200 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id}/post [patch]
func (h *JournalEntryHandler) Post(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.journalService.Post(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Approve godoc
// @Summary      Approve a posted journal entry
// @Tags         journal-entries
// @Accept       json
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Param        request body ApproveJournalRequest false "Approval notes"
// @Success      200 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id}/approve [patch]
func (h *JournalEntryHandler) Approve(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ApproveJournalRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.journalService.Approve(c.Request.Context(), id, userID, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Reverse godoc
// @Summary      Reverse a posted or approved journal entry
// @Tags         journal-entries
// @Accept       json
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Param        request body ReverseJournalRequest true "Reason"
// @Success      200 {object} dto.Response{data=financeapp.JournalEntryDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id}/reverse [patch]
func (h *JournalEntryHandler) Reverse(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ReverseJournalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.journalService.Reverse(c.Request.Context(), id, userID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Validate godoc
// @Summary      Validate a journal entry
// @Description  Balance report of a stored entry
// @Tags         journal-entries
// @Produce      json
// @Param        id path string true "Journal entry ID"
// @Success      200 {object} dto.Response{data=financeapp.JournalValidationDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /journal-entries/{id}/validate [get]
func (h *JournalEntryHandler) Validate(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	report, err := h.journalService.Validate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Types godoc
// @Summary      Journal types
// @Tags         journal-entries
// @Produce      json
// @Success      200 {object} dto.Response{data=MetadataResponse}
// @Security     BearerAuth
// @Router       /journal-entries/types [get]
func (h *JournalEntryHandler) Types(c *gin.Context) {
	h.Success(c, MetadataResponse{Values: h.journalService.Types()})
}

// Statuses godoc
// @Summary      Journal statuses
// @Tags         journal-entries
// @Produce      json
// @Success      200 {object} dto.Response{data=MetadataResponse}
// @Security     BearerAuth
// @Router       /journal-entries/statuses [get]
func (h *JournalEntryHandler) Statuses(c *gin.Context) {
	h.Success(c, MetadataResponse{Values: h.journalService.Statuses()})
}
