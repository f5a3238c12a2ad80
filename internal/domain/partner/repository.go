package partner

import (
	"context"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactFilter narrows active-contact lists
type ContactFilter struct {
	// Search matches name, company, email, phone or mobile, ignoring case
	Search string
	// Types keeps contacts of any listed type; empty keeps all
	Types []ContactType
	// NameOnly restricts Search to name and company name
	NameOnly bool
	Limit    int
}

// ContactRepository defines persistence for contacts and their category links
type ContactRepository interface {
	// FindByID finds a contact by ID regardless of its active flag
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindActive lists active contacts ordered by company name
	FindActive(ctx context.Context, filter ContactFilter) ([]*Contact, error)

	// FindByCategory lists active contacts actively assigned to a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Contact, error)

	// FindByName finds a contact whose name or company name equals name, ignoring case
	FindByName(ctx context.Context, name string) (*Contact, error)

	// ExistsByEmail checks email uniqueness, ignoring case
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// Create inserts a new contact
	Create(ctx context.Context, contact *Contact) error

	// Update saves an existing contact
	Update(ctx context.Context, contact *Contact) error

	// FindAssignment finds the link between a contact and a category, active or not
	FindAssignment(ctx context.Context, contactID, categoryID uuid.UUID) (*CategoryAssignment, error)

	// FindAssignments lists the active category links of a contact
	FindAssignments(ctx context.Context, contactID uuid.UUID) ([]*CategoryAssignment, error)

	// SaveAssignment inserts or updates a category link
	SaveAssignment(ctx context.Context, assignment *CategoryAssignment) error

	// DeactivateAssignments deactivates every category link of a contact
	DeactivateAssignments(ctx context.Context, contactID uuid.UUID) error

	// HasTransactions reports whether any journal line reference contains text
	HasTransactions(ctx context.Context, text string) (bool, error)

	// FindTransactions lists journal lines whose reference contains text, newest first
	FindTransactions(ctx context.Context, text string, from, to *time.Time) ([]ContactTransaction, error)

	// SumTransactions totals the debits and credits of lines whose reference contains text,
	// counting only entries in statuses
	SumTransactions(ctx context.Context, text string, statuses []finance.JournalStatus) (debit, credit decimal.Decimal, err error)
}
