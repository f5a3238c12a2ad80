package finance

import (
	"context"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *finance.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of finance.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ChartOfAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, code string) (*finance.ChartOfAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter finance.AccountFilter) ([]*finance.ChartOfAccount, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*finance.ChartOfAccount), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) FindActiveOrdered(ctx context.Context) ([]*finance.ChartOfAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*finance.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) FindActiveByName(ctx context.Context, name string, accountType finance.AccountType) (*finance.ChartOfAccount, error) {
	args := m.Called(ctx, name, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ChartOfAccount), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) CodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) CountLines(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) CountActiveChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *finance.ChartOfAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *finance.ChartOfAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockJournalEntryRepository is a mock implementation of finance.JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAll(ctx context.Context, filter finance.JournalEntryFilter) ([]*finance.JournalEntry, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*finance.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalEntryRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, int64, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalEntryRepository) FindLedgerLines(ctx context.Context, from, to time.Time, statuses []finance.JournalStatus, accountID *uuid.UUID) ([]finance.LedgerLine, error) {
	args := m.Called(ctx, from, to, statuses, accountID)
	return args.Get(0).([]finance.LedgerLine), args.Error(1)
}

func (m *MockJournalEntryRepository) SumByAccount(ctx context.Context, asOf *time.Time, statuses []finance.JournalStatus, accountID *uuid.UUID) ([]finance.AccountMovement, error) {
	args := m.Called(ctx, asOf, statuses, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountMovement), args.Error(1)
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, entry *finance.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Update(ctx context.Context, entry *finance.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// directTx runs the callback without a real transaction
type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
