package models

import (
	"time"

	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactModel is the persistence model for a buyer or supplier.
type ContactModel struct {
	AggregateModel
	Name         string              `gorm:"type:varchar(200);not null"`
	CompanyName  string              `gorm:"type:varchar(100);not null;index"`
	ContactType  partner.ContactType `gorm:"type:varchar(20);not null;index"`
	Email        string              `gorm:"type:varchar(200)"`
	Phone        string              `gorm:"type:varchar(20)"`
	Mobile       string              `gorm:"type:varchar(20)"`
	Fax          string              `gorm:"type:varchar(20)"`
	Website      string              `gorm:"type:varchar(200)"`
	TaxNumber    string              `gorm:"type:varchar(50)"`
	CreditLimit  decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentTerms int                 `gorm:"not null;default:30"`
	IsActive     bool                `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the model to a Contact
func (m *ContactModel) ToDomain() *partner.Contact {
	return &partner.Contact{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		CompanyName:       m.CompanyName,
		ContactType:       m.ContactType,
		Email:             m.Email,
		Phone:             m.Phone,
		Mobile:            m.Mobile,
		Fax:               m.Fax,
		Website:           m.Website,
		TaxNumber:         m.TaxNumber,
		CreditLimit:       m.CreditLimit,
		PaymentTerms:      m.PaymentTerms,
		IsActive:          m.IsActive,
	}
}

// ContactModelFromDomain creates a model from a Contact
func ContactModelFromDomain(c *partner.Contact) *ContactModel {
	m := &ContactModel{
		Name:         c.Name,
		CompanyName:  c.CompanyName,
		ContactType:  c.ContactType,
		Email:        c.Email,
		Phone:        c.Phone,
		Mobile:       c.Mobile,
		Fax:          c.Fax,
		Website:      c.Website,
		TaxNumber:    c.TaxNumber,
		CreditLimit:  c.CreditLimit,
		PaymentTerms: c.PaymentTerms,
		IsActive:     c.IsActive,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CategoryContactModel links a contact to a cash book category.
type CategoryContactModel struct {
	BaseModel
	ContactID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_category_contacts_pair,priority:1"`
	CategoryID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_category_contacts_pair,priority:2;index"`
	Role       partner.ContactRole `gorm:"type:varchar(20);not null"`
	IsActive   bool                `gorm:"not null"`
	Notes      string              `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CategoryContactModel) TableName() string {
	return "category_contacts"
}

// ToDomain converts the model to a CategoryAssignment
func (m *CategoryContactModel) ToDomain() *partner.CategoryAssignment {
	return &partner.CategoryAssignment{
		ID:         m.ID,
		ContactID:  m.ContactID,
		CategoryID: m.CategoryID,
		Role:       m.Role,
		IsActive:   m.IsActive,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// CategoryContactModelFromDomain creates a model from a CategoryAssignment
func CategoryContactModelFromDomain(a *partner.CategoryAssignment) *CategoryContactModel {
	return &CategoryContactModel{
		BaseModel:  BaseModel{ID: a.ID, CreatedAt: a.CreatedAt, UpdatedAt: orNow(a.UpdatedAt)},
		ContactID:  a.ContactID,
		CategoryID: a.CategoryID,
		Role:       a.Role,
		IsActive:   a.IsActive,
		Notes:      a.Notes,
	}
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
