package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactType tells whether a contact buys from us, sells to us, or both
type ContactType string

const (
	ContactTypeCustomer ContactType = "Customer"
	ContactTypeSupplier ContactType = "Supplier"
	ContactTypeBoth     ContactType = "Both"
)

// IsValid checks if the type is one of the known values
func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeCustomer, ContactTypeSupplier, ContactTypeBoth:
		return true
	}
	return false
}

// ParseContactType accepts the type name in any case
func ParseContactType(s string) (ContactType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "buyer":
		return ContactTypeCustomer, nil
	case "supplier":
		return ContactTypeSupplier, nil
	case "both":
		return ContactTypeBoth, nil
	}
	return "", shared.NewDomainError("INVALID_CONTACT_TYPE", "Contact type must be Customer, Supplier or Both")
}

// ContactRole is the part a contact plays for a category
type ContactRole string

const (
	ContactRoleSupplier ContactRole = "Supplier"
	ContactRoleBuyer    ContactRole = "Buyer"
	ContactRoleBoth     ContactRole = "Both"
)

// ParseContactRole accepts the role name in any case
func ParseContactRole(s string) (ContactRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supplier":
		return ContactRoleSupplier, nil
	case "buyer", "customer":
		return ContactRoleBuyer, nil
	case "both":
		return ContactRoleBoth, nil
	}
	return "", shared.NewDomainError("INVALID_CONTACT_ROLE", "Role must be Supplier, Buyer or Both")
}

// DefaultPaymentTerms is the number of days a new contact gets to settle
const DefaultPaymentTerms = 30

const (
	maxContactNameLength    = 200
	maxCompanyNameLength    = 100
	maxEmailLength          = 200
	maxPhoneLength          = 20
	maxWebsiteLength        = 200
	maxTaxNumberLength      = 50
	maxAssignmentNoteLength = 500
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

// ContactDetails are the editable fields of a contact
type ContactDetails struct {
	Name         string
	CompanyName  string
	ContactType  ContactType
	Email        string
	Phone        string
	Mobile       string
	Fax          string
	Website      string
	TaxNumber    string
	CreditLimit  decimal.Decimal
	PaymentTerms int
}

// Contact is a buyer or supplier the garments business trades with.
// Journal lines point at a contact through their reference text, which
// carries the company name.
type Contact struct {
	shared.BaseAggregateRoot
	Name         string
	CompanyName  string
	ContactType  ContactType
	Email        string
	Phone        string
	Mobile       string
	Fax          string
	Website      string
	TaxNumber    string
	CreditLimit  decimal.Decimal
	PaymentTerms int
	IsActive     bool
}

// NewContact creates an active contact
func NewContact(d ContactDetails) (*Contact, error) {
	d, err := validateContactDetails(d)
	if err != nil {
		return nil, err
	}
	c := &Contact{BaseAggregateRoot: shared.NewBaseAggregateRoot(), IsActive: true}
	c.apply(d)
	return c, nil
}

// NewImportedContact creates a contact known only by the name found in a cash book
func NewImportedContact(name string, contactType ContactType) (*Contact, error) {
	return NewContact(ContactDetails{
		Name:         name,
		CompanyName:  truncate(strings.TrimSpace(name), maxCompanyNameLength),
		ContactType:  contactType,
		CreditLimit:  decimal.Zero,
		PaymentTerms: DefaultPaymentTerms,
	})
}

// Update replaces every editable field
func (c *Contact) Update(d ContactDetails) error {
	d, err := validateContactDetails(d)
	if err != nil {
		return err
	}
	c.apply(d)
	c.IncrementVersion()
	return nil
}

// Activate restores a deactivated contact
func (c *Contact) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Contact is already active")
	}
	c.IsActive = true
	c.IncrementVersion()
	return nil
}

// Deactivate hides the contact from lists and lookups
func (c *Contact) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Contact is already inactive")
	}
	c.IsActive = false
	c.IncrementVersion()
	return nil
}

// IsSupplier reports whether we buy from the contact
func (c *Contact) IsSupplier() bool {
	return c.ContactType == ContactTypeSupplier || c.ContactType == ContactTypeBoth
}

// IsBuyer reports whether the contact buys from us
func (c *Contact) IsBuyer() bool {
	return c.ContactType == ContactTypeCustomer || c.ContactType == ContactTypeBoth
}

// CanTakeRole checks the contact's type allows the category role.
// Both needs a contact that is both buyer and supplier.
func (c *Contact) CanTakeRole(role ContactRole) error {
	ok := false
	switch role {
	case ContactRoleSupplier:
		ok = c.IsSupplier()
	case ContactRoleBuyer:
		ok = c.IsBuyer()
	case ContactRoleBoth:
		ok = c.ContactType == ContactTypeBoth
	}
	if !ok {
		return ErrRoleNotAllowed
	}
	return nil
}

// BalanceFrom folds referenced ledger totals into what the contact owes or is owed.
// Suppliers carry credit balances, buyers debit balances.
func (c *Contact) BalanceFrom(debit, credit decimal.Decimal) decimal.Decimal {
	if c.ContactType == ContactTypeSupplier {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

func (c *Contact) apply(d ContactDetails) {
	c.Name = d.Name
	c.CompanyName = d.CompanyName
	c.ContactType = d.ContactType
	c.Email = d.Email
	c.Phone = d.Phone
	c.Mobile = d.Mobile
	c.Fax = d.Fax
	c.Website = d.Website
	c.TaxNumber = d.TaxNumber
	c.CreditLimit = d.CreditLimit
	c.PaymentTerms = d.PaymentTerms
}

func validateContactDetails(d ContactDetails) (ContactDetails, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))

	if d.Name == "" {
		return d, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name is required")
	}
	if len(d.Name) > maxContactNameLength {
		return d, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 200 characters")
	}
	if d.CompanyName == "" {
		return d, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if len(d.CompanyName) > maxCompanyNameLength {
		return d, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 100 characters")
	}
	if !d.ContactType.IsValid() {
		return d, shared.NewDomainError("INVALID_CONTACT_TYPE", "Contact type must be Customer, Supplier or Both")
	}
	if d.Email != "" {
		if len(d.Email) > maxEmailLength || !emailPattern.MatchString(d.Email) {
			return d, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	for _, phone := range []string{d.Phone, d.Mobile, d.Fax} {
		if phone == "" {
			continue
		}
		if len(phone) > maxPhoneLength || !phonePattern.MatchString(phone) {
			return d, shared.NewDomainError("INVALID_PHONE", "Phone numbers are at most 20 digits, spaces, dashes or brackets")
		}
	}
	if len(d.Website) > maxWebsiteLength {
		return d, shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 200 characters")
	}
	if len(d.TaxNumber) > maxTaxNumberLength {
		return d, shared.NewDomainError("INVALID_TAX_NUMBER", "Tax number cannot exceed 50 characters")
	}
	if d.CreditLimit.IsNegative() {
		return d, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	if d.PaymentTerms < 0 {
		return d, shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms cannot be negative")
	}
	return d, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}

// CategoryAssignment links a contact to a cash book category it trades under
type CategoryAssignment struct {
	ID         uuid.UUID
	ContactID  uuid.UUID
	CategoryID uuid.UUID
	Role       ContactRole
	IsActive   bool
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCategoryAssignment checks the contact may take role and links it to the category
func NewCategoryAssignment(contact *Contact, categoryID uuid.UUID, role ContactRole, notes string) (*CategoryAssignment, error) {
	if err := contact.CanTakeRole(role); err != nil {
		return nil, err
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxAssignmentNoteLength {
		return nil, shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	now := time.Now().UTC()
	return &CategoryAssignment{
		ID:         uuid.New(),
		ContactID:  contact.ID,
		CategoryID: categoryID,
		Role:       role,
		IsActive:   true,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Reassign reactivates an existing link with a new role
func (a *CategoryAssignment) Reassign(contact *Contact, role ContactRole, notes string) error {
	if err := contact.CanTakeRole(role); err != nil {
		return err
	}
	a.Role = role
	a.IsActive = true
	if notes = strings.TrimSpace(notes); notes != "" {
		a.Notes = truncate(notes, maxAssignmentNoteLength)
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// ContactTransaction is a journal line whose reference names the contact
type ContactTransaction struct {
	TransactionDate time.Time             `json:"transaction_date"`
	JournalNumber   string                `json:"journal_number"`
	ReferenceNumber string                `json:"reference_number"`
	Description     string                `json:"description"`
	Debit           decimal.Decimal       `json:"debit"`
	Credit          decimal.Decimal       `json:"credit"`
	Status          finance.JournalStatus `json:"status"`
}

// Contact domain errors
var (
	ErrContactNotFound    = shared.NewDomainError("CONTACT_NOT_FOUND", "Contact not found")
	ErrAssignmentNotFound = shared.NewDomainError("ASSIGNMENT_NOT_FOUND", "Contact is not assigned to this category")
	ErrDuplicateEmail     = shared.NewDomainError("DUPLICATE_EMAIL", "A contact with this email already exists")
	ErrRoleNotAllowed     = shared.NewDomainError("ROLE_NOT_ALLOWED", "Contact type does not allow this category role")
	ErrContactHasHistory  = shared.NewDomainError("CONTACT_HAS_TRANSACTIONS", "Cannot delete a contact with existing transactions, deactivate it instead")
)
