package finance

import (
	"fmt"
	"strings"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// CategoryType tells whether money moves in (Credit) or out (Debit) of the cash book
type CategoryType int

const (
	CategoryTypeCredit CategoryType = 0
	CategoryTypeDebit  CategoryType = 1
)

// IsValid checks if the type is Credit or Debit
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeCredit || t == CategoryTypeDebit
}

// String returns the display name of the type
func (t CategoryType) String() string {
	switch t {
	case CategoryTypeCredit:
		return "Credit"
	case CategoryTypeDebit:
		return "Debit"
	default:
		return fmt.Sprintf("CategoryType(%d)", int(t))
	}
}

// ParseCategoryType accepts "Credit"/"Debit" (any case) or "0"/"1"
func ParseCategoryType(s string) (CategoryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit", "0":
		return CategoryTypeCredit, nil
	case "debit", "1":
		return CategoryTypeDebit, nil
	}
	return 0, shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type must be Credit or Debit")
}

const (
	maxCategoryNameLength        = 200
	maxCategoryDescriptionLength = 500
)

var nameFolder = cases.Fold()

// FoldName normalizes a display name for case-insensitive comparison
func FoldName(name string) string {
	return nameFolder.String(strings.TrimSpace(name))
}

// Category labels cash book transactions, e.g. "Fabric- Purchase"
type Category struct {
	shared.AuditedAggregateRoot
	Name        string
	Description string
	Type        CategoryType
	IsActive    bool
}

// NewCategory creates an active category
func NewCategory(name, description string, categoryType CategoryType, createdBy *uuid.UUID) (*Category, error) {
	name, description, err := validateCategoryFields(name, description, categoryType)
	if err != nil {
		return nil, err
	}

	return &Category{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		Description:          description,
		Type:                 categoryType,
		IsActive:             true,
	}, nil
}

// Update replaces name, description and type
func (c *Category) Update(name, description string, categoryType CategoryType, updatedBy *uuid.UUID) error {
	name, description, err := validateCategoryFields(name, description, categoryType)
	if err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.Type = categoryType
	c.MarkUpdatedBy(updatedBy)
	c.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the category
func (c *Category) Deactivate(updatedBy *uuid.UUID) {
	c.IsActive = false
	c.MarkUpdatedBy(updatedBy)
	c.IncrementVersion()
}

// Activate restores a soft-deleted category
func (c *Category) Activate(updatedBy *uuid.UUID) {
	c.IsActive = true
	c.MarkUpdatedBy(updatedBy)
	c.IncrementVersion()
}

// SameName reports whether name matches the category's name ignoring case
func (c *Category) SameName(name string) bool {
	return FoldName(c.Name) == FoldName(name)
}

func validateCategoryFields(name, description string, categoryType CategoryType) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return "", "", shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name is required")
	}
	if len(name) > maxCategoryNameLength {
		return "", "", shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 200 characters")
	}
	if len(description) > maxCategoryDescriptionLength {
		return "", "", shared.NewDomainError("INVALID_CATEGORY_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if !categoryType.IsValid() {
		return "", "", shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type must be Credit or Debit")
	}
	return name, description, nil
}

// Category domain errors
var (
	ErrCategoryNotFound  = shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	ErrDuplicateCategory = shared.NewDomainError("DUPLICATE_CATEGORY", "A category with this name already exists for this type")
	ErrCategoryInUse     = shared.NewDomainError("CATEGORY_IN_USE", "Category is used by existing transactions")
)
