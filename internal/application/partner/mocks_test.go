package partner

import (
	"context"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of partner.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindActive(ctx context.Context, filter partner.ContactFilter) ([]*partner.Contact, error) {
	args := m.Called(ctx, filter)
	contacts, _ := args.Get(0).([]*partner.Contact)
	return contacts, args.Error(1)
}

func (m *MockContactRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*partner.Contact, error) {
	args := m.Called(ctx, categoryID)
	contacts, _ := args.Get(0).([]*partner.Contact)
	return contacts, args.Error(1)
}

func (m *MockContactRepository) FindByName(ctx context.Context, name string) (*partner.Contact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, contact *partner.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *partner.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) FindAssignment(ctx context.Context, contactID, categoryID uuid.UUID) (*partner.CategoryAssignment, error) {
	args := m.Called(ctx, contactID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.CategoryAssignment), args.Error(1)
}

func (m *MockContactRepository) FindAssignments(ctx context.Context, contactID uuid.UUID) ([]*partner.CategoryAssignment, error) {
	args := m.Called(ctx, contactID)
	assignments, _ := args.Get(0).([]*partner.CategoryAssignment)
	return assignments, args.Error(1)
}

func (m *MockContactRepository) SaveAssignment(ctx context.Context, assignment *partner.CategoryAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *MockContactRepository) DeactivateAssignments(ctx context.Context, contactID uuid.UUID) error {
	return m.Called(ctx, contactID).Error(0)
}

func (m *MockContactRepository) HasTransactions(ctx context.Context, text string) (bool, error) {
	args := m.Called(ctx, text)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) FindTransactions(ctx context.Context, text string, from, to *time.Time) ([]partner.ContactTransaction, error) {
	args := m.Called(ctx, text, from, to)
	lines, _ := args.Get(0).([]partner.ContactTransaction)
	return lines, args.Error(1)
}

func (m *MockContactRepository) SumTransactions(ctx context.Context, text string, statuses []finance.JournalStatus) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, text, statuses)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockCategoryRepository is a mock implementation of finance.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllActive(ctx context.Context) ([]*finance.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByType(ctx context.Context, categoryType finance.CategoryType) ([]*finance.Category, error) {
	args := m.Called(ctx, categoryType)
	return args.Get(0).([]*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) Search(ctx context.Context, term string) ([]*finance.Category, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindActiveByName(ctx context.Context, name string, categoryType finance.CategoryType) (*finance.Category, error) {
	args := m.Called(ctx, name, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsActiveByName(ctx context.Context, name string, categoryType finance.CategoryType, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, categoryType, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) CountUsage(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *finance.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *finance.Category) error {
	return m.Called(ctx, category).Error(0)
}

// directTx runs the callback without a real transaction
type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
