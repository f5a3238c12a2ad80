package handler

import (
	"context"
	"time"

	partnerapp "github.com/garments-erp/backend/internal/application/partner"
	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactService is what ContactHandler needs from partner.ContactService
type ContactService interface {
	GetAll(ctx context.Context) ([]partnerapp.ContactDTO, error)
	Suppliers(ctx context.Context) ([]partnerapp.ContactDTO, error)
	Buyers(ctx context.Context) ([]partnerapp.ContactDTO, error)
	Search(ctx context.Context, term string) ([]partnerapp.ContactDTO, error)
	Autocomplete(ctx context.Context, term string, contactType *partner.ContactType) ([]partnerapp.ContactDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.ContactDTO, error)
	Create(ctx context.Context, in partnerapp.ContactInput) (*partnerapp.ContactDTO, error)
	Update(ctx context.Context, id uuid.UUID, in partnerapp.ContactInput) (*partnerapp.ContactDTO, error)
	Activate(ctx context.Context, id uuid.UUID) (*partnerapp.ContactDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*partnerapp.ContactDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ByCategory(ctx context.Context, categoryID uuid.UUID) ([]partnerapp.ContactDTO, error)
	Categories(ctx context.Context, contactID uuid.UUID) ([]partnerapp.AssignmentDTO, error)
	Assign(ctx context.Context, contactID, categoryID uuid.UUID, role partner.ContactRole, notes string) (*partnerapp.AssignmentDTO, error)
	RemoveFromCategory(ctx context.Context, contactID, categoryID uuid.UUID) error
	Transactions(ctx context.Context, id uuid.UUID, from, to *time.Time) ([]partner.ContactTransaction, error)
	Balance(ctx context.Context, id uuid.UUID) (*partnerapp.ContactBalance, error)
}

// ContactHandler handles buyer and supplier endpoints
type ContactHandler struct {
	BaseHandler
	contactService ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest is the body of contact create and update
// @Description Request body for creating or updating a contact
type ContactRequest struct {
	Name         string          `json:"name" binding:"required,max=200" example:"Rahim Uddin"`
	CompanyName  string          `json:"company_name" binding:"required,max=100" example:"Anchor Trims Ltd"`
	ContactType  string          `json:"contact_type" binding:"required" example:"Supplier"` // Customer, Supplier or Both
	Email        string          `json:"email" binding:"omitempty,email,max=200" example:"rahim@anchortrims.com"`
	Phone        string          `json:"phone" binding:"max=20"`
	Mobile       string          `json:"mobile" binding:"max=20"`
	Fax          string          `json:"fax" binding:"max=20"`
	Website      string          `json:"website" binding:"max=200"`
	TaxNumber    string          `json:"tax_number" binding:"max=50"`
	CreditLimit  decimal.Decimal `json:"credit_limit" swaggertype:"string" example:"50000"`
	PaymentTerms *int            `json:"payment_terms" example:"30"`
}

// AssignCategoryRequest links a contact to a category
// @Description Request body for assigning a contact to a category
type AssignCategoryRequest struct {
	Role  string `json:"role" binding:"required" example:"Supplier"` // Supplier, Buyer or Both
	Notes string `json:"notes" binding:"max=500"`
}

func (h *ContactHandler) input(c *gin.Context, req ContactRequest) (partnerapp.ContactInput, bool) {
	contactType, err := partner.ParseContactType(req.ContactType)
	if err != nil {
		h.HandleError(c, err)
		return partnerapp.ContactInput{}, false
	}
	terms := partner.DefaultPaymentTerms
	if req.PaymentTerms != nil {
		terms = *req.PaymentTerms
	}
	return partnerapp.ContactInput{
		Name:         req.Name,
		CompanyName:  req.CompanyName,
		ContactType:  contactType,
		Email:        req.Email,
		Phone:        req.Phone,
		Mobile:       req.Mobile,
		Fax:          req.Fax,
		Website:      req.Website,
		TaxNumber:    req.TaxNumber,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: terms,
	}, true
}

// GetAll godoc
// @Summary      List active contacts
// @Description  Active buyers and suppliers ordered by company name
// @Tags         contacts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactDTO}
// @Security     BearerAuth
// @Router       /contacts [get]
func (h *ContactHandler) GetAll(c *gin.Context) {
	h.respondList(c, h.contactService.GetAll)
}

// Suppliers godoc
// @Summary      List suppliers
// @Description  Active contacts of type Supplier or Both
// @Tags         contacts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactDTO}
// @Security     BearerAuth
// @Router       /contacts/suppliers [get]
func (h *ContactHandler) Suppliers(c *gin.Context) {
	h.respondList(c, h.contactService.Suppliers)
}

// Buyers godoc
// @Summary      List buyers
// @Description  Active contacts of type Customer or Both
// @Tags         contacts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactDTO}
// @Security     BearerAuth
// @Router       /contacts/buyers [get]
func (h *ContactHandler) Buyers(c *gin.Context) {
	h.respondList(c, h.contactService.Buyers)
}

// Search godoc
// @Summary      Search contacts
// @Description  Case-insensitive match on name, company, email or phone. An empty term lists all active contacts.
// @Tags         contacts
// @Produce      json
// @Param        searchTerm query string false "Search term"
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactDTO}
// @Security     BearerAuth
// @Router       /contacts/search [get]
func (h *ContactHandler) Search(c *gin.Context) {
	contacts, err := h.contactService.Search(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Autocomplete godoc
// @Summary      Suggest contacts
// @Description  Up to ten active contacts whose name or company matches. A type also admits contacts of type Both.
// @Tags         contacts
// @Produce      json
// @Param        term query string true "Partial name"
// @Param        type query string false "Customer, Supplier or Both"
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/autocomplete [get]
func (h *ContactHandler) Autocomplete(c *gin.Context) {
	var contactType *partner.ContactType
	if raw := c.Query("type"); raw != "" {
		t, err := partner.ParseContactType(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		contactType = &t
	}
	contacts, err := h.contactService.Autocomplete(c.Request.Context(), c.Query("term"), contactType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// GetByID godoc
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} dto.Response{data=partnerapp.ContactDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [get]
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	contact, err := h.contactService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Create godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body ContactRequest true "Contact"
// @Success      201 {object} dto.Response{data=partnerapp.ContactDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}
	contact, err := h.contactService.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// Update godoc
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        request body ContactRequest true "Contact"
// @Success      200 {object} dto.Response{data=partnerapp.ContactDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, req)
	if !ok {
		return
	}
	contact, err := h.contactService.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Activate godoc
// @Summary      Activate a contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} dto.Response{data=partnerapp.ContactDTO}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/activate [post]
func (h *ContactHandler) Activate(c *gin.Context) {
	h.respondToggle(c, h.contactService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} dto.Response{data=partnerapp.ContactDTO}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/deactivate [post]
func (h *ContactHandler) Deactivate(c *gin.Context) {
	h.respondToggle(c, h.contactService.Deactivate)
}

// Delete godoc
// @Summary      Delete a contact
// @Description  Soft delete. Contacts referenced by journal lines cannot be deleted.
// @Tags         contacts
// @Param        id path string true "Contact ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ByCategory godoc
// @Summary      List contacts of a category
// @Tags         contacts
// @Produce      json
// @Param        categoryId path string true "Category ID"
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactDTO}
// @Security     BearerAuth
// @Router       /contacts/category/{categoryId} [get]
func (h *ContactHandler) ByCategory(c *gin.Context) {
	categoryID, ok := h.parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	contacts, err := h.contactService.ByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Categories godoc
// @Summary      List a contact's categories
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} dto.Response{data=[]partnerapp.AssignmentDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/categories [get]
func (h *ContactHandler) Categories(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	assignments, err := h.contactService.Categories(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignments)
}

// AssignCategory godoc
// @Summary      Assign a contact to a category
// @Description  Re-assigning reactivates the existing link with the new role
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        categoryId path string true "Category ID"
// @Param        request body AssignCategoryRequest true "Role"
// @Success      200 {object} dto.Response{data=partnerapp.AssignmentDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/categories/{categoryId} [post]
func (h *ContactHandler) AssignCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	var req AssignCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := partner.ParseContactRole(req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	assignment, err := h.contactService.Assign(c.Request.Context(), id, categoryID, role, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignment)
}

// RemoveCategory godoc
// @Summary      Remove a contact from a category
// @Tags         contacts
// @Param        id path string true "Contact ID"
// @Param        categoryId path string true "Category ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/categories/{categoryId} [delete]
func (h *ContactHandler) RemoveCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := h.parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	if err := h.contactService.RemoveFromCategory(c.Request.Context(), id, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Transactions godoc
// @Summary      Contact transactions
// @Description  Journal lines whose reference names the contact's company, newest first
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Param        fromDate query string false "yyyy-MM-dd"
// @Param        toDate query string false "yyyy-MM-dd"
// @Success      200 {object} dto.Response{data=[]partner.ContactTransaction}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/transactions [get]
func (h *ContactHandler) Transactions(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	from, ok := h.queryDate(c, "fromDate")
	if !ok {
		return
	}
	to, ok := h.queryDate(c, "toDate")
	if !ok {
		return
	}
	lines, err := h.contactService.Transactions(c.Request.Context(), id, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// Balance godoc
// @Summary      Contact balance
// @Description  Suppliers show credit minus debit, buyers debit minus credit, over posted and approved entries
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} dto.Response{data=partnerapp.ContactBalance}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/balance [get]
func (h *ContactHandler) Balance(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	balance, err := h.contactService.Balance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

func (h *ContactHandler) respondList(c *gin.Context, list func(context.Context) ([]partnerapp.ContactDTO, error)) {
	contacts, err := list(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

func (h *ContactHandler) respondToggle(c *gin.Context, toggle func(context.Context, uuid.UUID) (*partnerapp.ContactDTO, error)) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	contact, err := toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}
