package partner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// autocompleteLimit caps the suggestions returned while typing
const autocompleteLimit = 10

// ContactService manages buyers and suppliers and their cash book categories
type ContactService struct {
	repo       partner.ContactRepository
	categories finance.CategoryRepository
	tx         shared.TxRunner
	logger     *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(repo partner.ContactRepository, categories finance.CategoryRepository, tx shared.TxRunner, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, categories: categories, tx: tx, logger: logger}
}

// GetAll returns active contacts ordered by company name
func (s *ContactService) GetAll(ctx context.Context) ([]ContactDTO, error) {
	return s.list(ctx, partner.ContactFilter{})
}

// Suppliers returns active contacts we buy from
func (s *ContactService) Suppliers(ctx context.Context) ([]ContactDTO, error) {
	return s.list(ctx, partner.ContactFilter{Types: []partner.ContactType{partner.ContactTypeSupplier, partner.ContactTypeBoth}})
}

// Buyers returns active contacts that buy from us
func (s *ContactService) Buyers(ctx context.Context) ([]ContactDTO, error) {
	return s.list(ctx, partner.ContactFilter{Types: []partner.ContactType{partner.ContactTypeCustomer, partner.ContactTypeBoth}})
}

// Search matches name, company, email and phone numbers; an empty term lists all
func (s *ContactService) Search(ctx context.Context, term string) ([]ContactDTO, error) {
	return s.list(ctx, partner.ContactFilter{Search: strings.TrimSpace(term)})
}

// Autocomplete suggests up to ten contacts by name. A type also admits contacts of type Both.
func (s *ContactService) Autocomplete(ctx context.Context, term string, contactType *partner.ContactType) ([]ContactDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []ContactDTO{}, nil
	}
	filter := partner.ContactFilter{Search: term, NameOnly: true, Limit: autocompleteLimit}
	if contactType != nil {
		filter.Types = []partner.ContactType{*contactType}
		if *contactType != partner.ContactTypeBoth {
			filter.Types = append(filter.Types, partner.ContactTypeBoth)
		}
	}
	return s.list(ctx, filter)
}

// GetByID returns a contact whether active or not
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactDTO, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	dto := toContactDTO(contact)
	return &dto, nil
}

// Create adds a contact; emails are unique ignoring case
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*ContactDTO, error) {
	contact, err := partner.NewContact(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, contact.Email, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, passDomain(s.logger, err, "Failed to create contact")
	}

	s.logger.Info("Contact created",
		zap.String("contact_id", contact.ID.String()),
		zap.String("company", contact.CompanyName),
		zap.String("type", string(contact.ContactType)),
	)
	dto := toContactDTO(contact)
	return &dto, nil
}

// Update replaces the editable fields of a contact
func (s *ContactService) Update(ctx context.Context, id uuid.UUID, in ContactInput) (*ContactDTO, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	if err := contact.Update(in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, contact.Email, &contact.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, passDomain(s.logger, err, "Failed to update contact")
	}
	dto := toContactDTO(contact)
	return &dto, nil
}

// Activate restores a deactivated contact
func (s *ContactService) Activate(ctx context.Context, id uuid.UUID) (*ContactDTO, error) {
	return s.toggle(ctx, id, (*partner.Contact).Activate)
}

// Deactivate hides a contact from lists without touching its history
func (s *ContactService) Deactivate(ctx context.Context, id uuid.UUID) (*ContactDTO, error) {
	return s.toggle(ctx, id, (*partner.Contact).Deactivate)
}

// Delete soft-deletes a contact no journal line references and drops its category links
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return passDomain(s.logger, err, "Failed to get contact")
	}
	used, err := s.repo.HasTransactions(ctx, contact.CompanyName)
	if err != nil {
		return passDomain(s.logger, err, "Failed to check contact transactions")
	}
	if used {
		return partner.ErrContactHasHistory
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if contact.IsActive {
			if err := contact.Deactivate(); err != nil {
				return err
			}
			if err := s.repo.Update(ctx, contact); err != nil {
				return err
			}
		}
		return s.repo.DeactivateAssignments(ctx, contact.ID)
	})
	if err != nil {
		return passDomain(s.logger, err, "Failed to delete contact")
	}
	s.logger.Info("Contact deleted", zap.String("contact_id", id.String()))
	return nil
}

// ByCategory lists active contacts assigned to a category
func (s *ContactService) ByCategory(ctx context.Context, categoryID uuid.UUID) ([]ContactDTO, error) {
	contacts, err := s.repo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list category contacts")
	}
	return toContactDTOs(contacts), nil
}

// Categories lists the active category links of a contact
func (s *ContactService) Categories(ctx context.Context, contactID uuid.UUID) ([]AssignmentDTO, error) {
	if _, err := s.repo.FindByID(ctx, contactID); err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	assignments, err := s.repo.FindAssignments(ctx, contactID)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list contact categories")
	}
	out := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		out[i] = toAssignmentDTO(a)
	}
	return out, nil
}

// Assign links a contact to an active category. An existing link is reactivated with the new role.
func (s *ContactService) Assign(ctx context.Context, contactID, categoryID uuid.UUID, role partner.ContactRole, notes string) (*AssignmentDTO, error) {
	contact, err := s.repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get category")
	}
	if !category.IsActive {
		return nil, finance.ErrCategoryNotFound
	}

	assignment, err := s.repo.FindAssignment(ctx, contactID, categoryID)
	switch {
	case errors.Is(err, partner.ErrAssignmentNotFound):
		assignment, err = partner.NewCategoryAssignment(contact, categoryID, role, notes)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, passDomain(s.logger, err, "Failed to get category assignment")
	default:
		if err := assignment.Reassign(contact, role, notes); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SaveAssignment(ctx, assignment); err != nil {
		return nil, passDomain(s.logger, err, "Failed to assign contact")
	}
	s.logger.Info("Contact assigned to category",
		zap.String("contact_id", contactID.String()),
		zap.String("category", category.Name),
		zap.String("role", string(role)),
	)
	dto := toAssignmentDTO(assignment)
	return &dto, nil
}

// RemoveFromCategory deactivates the link between a contact and a category
func (s *ContactService) RemoveFromCategory(ctx context.Context, contactID, categoryID uuid.UUID) error {
	assignment, err := s.repo.FindAssignment(ctx, contactID, categoryID)
	if err != nil {
		return passDomain(s.logger, err, "Failed to get category assignment")
	}
	if !assignment.IsActive {
		return partner.ErrAssignmentNotFound
	}
	assignment.IsActive = false
	assignment.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveAssignment(ctx, assignment); err != nil {
		return passDomain(s.logger, err, "Failed to remove contact from category")
	}
	return nil
}

// Transactions lists the journal lines that reference the contact's company, newest first
func (s *ContactService) Transactions(ctx context.Context, id uuid.UUID, from, to *time.Time) ([]partner.ContactTransaction, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "From date must not be after to date")
	}
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	lines, err := s.repo.FindTransactions(ctx, contact.CompanyName, from, to)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list contact transactions")
	}
	return lines, nil
}

// Balance totals posted and approved lines referencing the contact
func (s *ContactService) Balance(ctx context.Context, id uuid.UUID) (*ContactBalance, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	debit, credit, err := s.repo.SumTransactions(ctx, contact.CompanyName, finance.LedgerStatuses())
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to total contact transactions")
	}
	return &ContactBalance{
		ContactID:   contact.ID,
		CompanyName: contact.CompanyName,
		ContactType: string(contact.ContactType),
		TotalDebit:  debit,
		TotalCredit: credit,
		Balance:     contact.BalanceFrom(debit, credit),
	}, nil
}

// EnsureContact finds a contact by name or company name and creates one when missing.
// It reports whether a contact was created.
func (s *ContactService) EnsureContact(ctx context.Context, name string, contactType partner.ContactType) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	_, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, partner.ErrContactNotFound) {
		return false, passDomain(s.logger, err, "Failed to look up contact")
	}

	contact, err := partner.NewImportedContact(name, contactType)
	if err != nil {
		return false, err
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return false, passDomain(s.logger, err, "Failed to create contact")
	}
	s.logger.Info("Contact created from cash book",
		zap.String("contact_id", contact.ID.String()),
		zap.String("name", contact.Name),
		zap.String("type", string(contactType)),
	)
	return true, nil
}

func (s *ContactService) list(ctx context.Context, filter partner.ContactFilter) ([]ContactDTO, error) {
	contacts, err := s.repo.FindActive(ctx, filter)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to list contacts")
	}
	return toContactDTOs(contacts), nil
}

func (s *ContactService) toggle(ctx context.Context, id uuid.UUID, change func(*partner.Contact) error) (*ContactDTO, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to get contact")
	}
	if err := change(contact); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, passDomain(s.logger, err, "Failed to update contact")
	}
	dto := toContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	if email == "" {
		return nil
	}
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return passDomain(s.logger, err, "Failed to check contact email")
	}
	if exists {
		return partner.ErrDuplicateEmail
	}
	return nil
}
