package partner

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactDTO represents a buyer or supplier
type ContactDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CompanyName  string          `json:"company_name"`
	ContactType  string          `json:"contact_type"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Mobile       string          `json:"mobile,omitempty"`
	Fax          string          `json:"fax,omitempty"`
	Website      string          `json:"website,omitempty"`
	TaxNumber    string          `json:"tax_number,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms int             `json:"payment_terms"`
	IsActive     bool            `json:"is_active"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ContactInput carries the fields of a contact create or update
type ContactInput = partner.ContactDetails

// AssignmentDTO represents a contact's link to a cash book category
type AssignmentDTO struct {
	ID         uuid.UUID `json:"id"`
	ContactID  uuid.UUID `json:"contact_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContactBalance is what a contact owes or is owed across posted entries
type ContactBalance struct {
	ContactID   uuid.UUID       `json:"contact_id"`
	CompanyName string          `json:"company_name"`
	ContactType string          `json:"contact_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

func toContactDTO(c *partner.Contact) ContactDTO {
	return ContactDTO{
		ID:           c.ID,
		Name:         c.Name,
		CompanyName:  c.CompanyName,
		ContactType:  string(c.ContactType),
		Email:        c.Email,
		Phone:        c.Phone,
		Mobile:       c.Mobile,
		Fax:          c.Fax,
		Website:      c.Website,
		TaxNumber:    c.TaxNumber,
		CreditLimit:  c.CreditLimit,
		PaymentTerms: c.PaymentTerms,
		IsActive:     c.IsActive,
		Version:      c.GetVersion(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toContactDTOs(contacts []*partner.Contact) []ContactDTO {
	out := make([]ContactDTO, len(contacts))
	for i, c := range contacts {
		out[i] = toContactDTO(c)
	}
	return out
}

func toAssignmentDTO(a *partner.CategoryAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID,
		ContactID:  a.ContactID,
		CategoryID: a.CategoryID,
		Role:       string(a.Role),
		IsActive:   a.IsActive,
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
