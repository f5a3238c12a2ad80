package handler

import (
	"context"
	"io"
	"time"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/application/identity"
	partnerapp "github.com/garments-erp/backend/internal/application/partner"
	"github.com/garments-erp/backend/internal/domain/finance"
	domainIdentity "github.com/garments-erp/backend/internal/domain/identity"
	"github.com/garments-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ret reads a typed return value, tolerating untyped nils
func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	return ret[*identity.AuthResult](args, 0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, input identity.RegisterInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	return ret[*identity.AuthResult](args, 0), args.Error(1)
}

func (m *MockAuthService) SetupAdmin(ctx context.Context, input identity.RegisterInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	return ret[*identity.AuthResult](args, 0), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*identity.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	return ret[*identity.AuthResult](args, 0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identity.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, userID)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, input identity.UpdateProfileInput) (*identity.UserDTO, error) {
	args := m.Called(ctx, input)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, input identity.ChangePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) ListRoles(ctx context.Context) ([]identity.RoleDTO, error) {
	args := m.Called(ctx)
	return ret[[]identity.RoleDTO](args, 0), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, filter domainIdentity.UserFilter) (*identity.UserListResult, error) {
	args := m.Called(ctx, filter)
	return ret[*identity.UserListResult](args, 0), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) Activate(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) Deactivate(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) Unlock(ctx context.Context, id uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return m.Called(ctx, userID, newPassword).Error(0)
}

func (m *MockUserService) AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, userID, roleIDs)
	return ret[*identity.UserDTO](args, 0), args.Error(1)
}

// MockRoleService is a mock implementation of RoleService
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) List(ctx context.Context) ([]identity.RoleDTO, error) {
	args := m.Called(ctx)
	return ret[[]identity.RoleDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) GetByID(ctx context.Context, id uuid.UUID) (*identity.RoleDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.RoleDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) Create(ctx context.Context, input identity.CreateRoleInput) (*identity.RoleDTO, error) {
	args := m.Called(ctx, input)
	return ret[*identity.RoleDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) Update(ctx context.Context, input identity.UpdateRoleInput) (*identity.RoleDTO, error) {
	args := m.Called(ctx, input)
	return ret[*identity.RoleDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) Enable(ctx context.Context, id uuid.UUID) (*identity.RoleDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.RoleDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) Disable(ctx context.Context, id uuid.UUID) (*identity.RoleDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.RoleDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) Permissions(ctx context.Context, id uuid.UUID) ([]identity.PermissionDTO, error) {
	args := m.Called(ctx, id)
	return ret[[]identity.PermissionDTO](args, 0), args.Error(1)
}

func (m *MockRoleService) SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) (*identity.RoleDTO, error) {
	args := m.Called(ctx, roleID, permissionIDs)
	return ret[*identity.RoleDTO](args, 0), args.Error(1)
}

// MockPermissionService is a mock implementation of PermissionService
type MockPermissionService struct {
	mock.Mock
}

func (m *MockPermissionService) List(ctx context.Context, activeOnly bool) ([]identity.PermissionDTO, error) {
	args := m.Called(ctx, activeOnly)
	return ret[[]identity.PermissionDTO](args, 0), args.Error(1)
}

func (m *MockPermissionService) GetByID(ctx context.Context, id uuid.UUID) (*identity.PermissionDTO, error) {
	args := m.Called(ctx, id)
	return ret[*identity.PermissionDTO](args, 0), args.Error(1)
}

func (m *MockPermissionService) Create(ctx context.Context, input identity.CreatePermissionInput) (*identity.PermissionDTO, error) {
	args := m.Called(ctx, input)
	return ret[*identity.PermissionDTO](args, 0), args.Error(1)
}

func (m *MockPermissionService) Update(ctx context.Context, input identity.UpdatePermissionInput) (*identity.PermissionDTO, error) {
	args := m.Called(ctx, input)
	return ret[*identity.PermissionDTO](args, 0), args.Error(1)
}

func (m *MockPermissionService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPermissionService) UserPermissions(ctx context.Context, userID uuid.UUID) ([]identity.PermissionDTO, error) {
	args := m.Called(ctx, userID)
	return ret[[]identity.PermissionDTO](args, 0), args.Error(1)
}

func (m *MockPermissionService) GrantToUser(ctx context.Context, userID, permissionID uuid.UUID) error {
	return m.Called(ctx, userID, permissionID).Error(0)
}

func (m *MockPermissionService) RevokeFromUser(ctx context.Context, userID, permissionID uuid.UUID) error {
	return m.Called(ctx, userID, permissionID).Error(0)
}

func (m *MockPermissionService) Check(ctx context.Context, userID uuid.UUID, resource, action string) (*identity.PermissionCheckResult, error) {
	args := m.Called(ctx, userID, resource, action)
	return ret[*identity.PermissionCheckResult](args, 0), args.Error(1)
}

func (m *MockPermissionService) EffectivePermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	return ret[[]string](args, 0), args.Error(1)
}

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetAll(ctx context.Context) ([]financeapp.CategoryDTO, error) {
	args := m.Called(ctx)
	return ret[[]financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) GetByType(ctx context.Context, categoryType finance.CategoryType) ([]financeapp.CategoryDTO, error) {
	args := m.Called(ctx, categoryType)
	return ret[[]financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*financeapp.CategoryDTO, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) Search(ctx context.Context, term string) ([]financeapp.CategoryDTO, error) {
	args := m.Called(ctx, term)
	return ret[[]financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in financeapp.CategoryInput) (*financeapp.CategoryDTO, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, in financeapp.CategoryInput) (*financeapp.CategoryDTO, error) {
	args := m.Called(ctx, id, in)
	return ret[*financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockCategoryService) ToggleActive(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*financeapp.CategoryDTO, error) {
	args := m.Called(ctx, id, userID)
	return ret[*financeapp.CategoryDTO](args, 0), args.Error(1)
}

func (m *MockCategoryService) UsageCount(ctx context.Context, id uuid.UUID) (*financeapp.CategoryUsage, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.CategoryUsage](args, 0), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) List(ctx context.Context, in financeapp.AccountListInput) (*financeapp.AccountListResult, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.AccountListResult](args, 0), args.Error(1)
}

func (m *MockAccountService) GetByID(ctx context.Context, id uuid.UUID) (*financeapp.AccountDTO, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.AccountDTO](args, 0), args.Error(1)
}

func (m *MockAccountService) Create(ctx context.Context, in financeapp.AccountInput) (*financeapp.AccountDTO, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.AccountDTO](args, 0), args.Error(1)
}

func (m *MockAccountService) Update(ctx context.Context, id uuid.UUID, in financeapp.AccountInput) (*financeapp.AccountDTO, error) {
	args := m.Called(ctx, id, in)
	return ret[*financeapp.AccountDTO](args, 0), args.Error(1)
}

func (m *MockAccountService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountService) AccountTypes() []financeapp.AccountTypeDTO {
	return ret[[]financeapp.AccountTypeDTO](m.Called(), 0)
}

func (m *MockAccountService) NextAccountCode(ctx context.Context, accountType finance.AccountType) (string, error) {
	args := m.Called(ctx, accountType)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) ByType(ctx context.Context, accountType finance.AccountType) ([]financeapp.AccountDTO, error) {
	args := m.Called(ctx, accountType)
	return ret[[]financeapp.AccountDTO](args, 0), args.Error(1)
}

func (m *MockAccountService) Search(ctx context.Context, term string) ([]financeapp.AccountDTO, error) {
	args := m.Called(ctx, term)
	return ret[[]financeapp.AccountDTO](args, 0), args.Error(1)
}

// MockJournalService is a mock implementation of JournalService
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) List(ctx context.Context, in financeapp.JournalListInput) (*financeapp.JournalEntryListResult, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.JournalEntryListResult](args, 0), args.Error(1)
}

func (m *MockJournalService) GetByID(ctx context.Context, id uuid.UUID) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Create(ctx context.Context, in financeapp.JournalEntryInput) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Update(ctx context.Context, id uuid.UUID, in financeapp.JournalEntryInput) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, id, in)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockJournalService) Post(ctx context.Context, id uuid.UUID) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Approve(ctx context.Context, id, userID uuid.UUID, notes string) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, id, userID, notes)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Reverse(ctx context.Context, id, userID uuid.UUID, reason string) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, id, userID, reason)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Statistics(ctx context.Context, filter finance.JournalEntryFilter) (*financeapp.JournalStatistics, error) {
	args := m.Called(ctx, filter)
	return ret[*financeapp.JournalStatistics](args, 0), args.Error(1)
}

func (m *MockJournalService) Validate(ctx context.Context, id uuid.UUID) (*financeapp.JournalValidationDTO, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.JournalValidationDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Export(ctx context.Context, filter finance.JournalEntryFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	return ret[[]byte](args, 0), args.Error(1)
}

func (m *MockJournalService) ArchiveExport(ctx context.Context, filter finance.JournalEntryFilter, userID uuid.UUID) (*financeapp.ArchivedExportDTO, error) {
	args := m.Called(ctx, filter, userID)
	return ret[*financeapp.ArchivedExportDTO](args, 0), args.Error(1)
}

func (m *MockJournalService) Types() []string {
	return ret[[]string](m.Called(), 0)
}

func (m *MockJournalService) Statuses() []string {
	return ret[[]string](m.Called(), 0)
}

// MockCashBookService is a mock implementation of CashBookService
type MockCashBookService struct {
	mock.Mock
}

func (m *MockCashBookService) SaveCredit(ctx context.Context, in financeapp.CashTransactionInput) (*financeapp.CashTransactionDTO, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.CashTransactionDTO](args, 0), args.Error(1)
}

func (m *MockCashBookService) SaveDebit(ctx context.Context, in financeapp.CashTransactionInput) (*financeapp.CashTransactionDTO, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.CashTransactionDTO](args, 0), args.Error(1)
}

func (m *MockCashBookService) RecentTransactions(ctx context.Context, limit int) (*financeapp.RecentTransactions, error) {
	args := m.Called(ctx, limit)
	return ret[*financeapp.RecentTransactions](args, 0), args.Error(1)
}

func (m *MockCashBookService) CreateEntry(ctx context.Context, in financeapp.CashBookEntryInput) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockCashBookService) CompleteEntry(ctx context.Context, id uuid.UUID) (*financeapp.JournalEntryDTO, error) {
	args := m.Called(ctx, id)
	return ret[*financeapp.JournalEntryDTO](args, 0), args.Error(1)
}

func (m *MockCashBookService) ListEntries(ctx context.Context, in financeapp.JournalListInput) (*financeapp.JournalEntryListResult, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.JournalEntryListResult](args, 0), args.Error(1)
}

// MockTrialBalanceService is a mock implementation of TrialBalanceService
type MockTrialBalanceService struct {
	mock.Mock
}

func (m *MockTrialBalanceService) Generate(ctx context.Context, period finance.TrialBalancePeriod) (*finance.TrialBalanceReport, error) {
	args := m.Called(ctx, period)
	return ret[*finance.TrialBalanceReport](args, 0), args.Error(1)
}

func (m *MockTrialBalanceService) Compare(ctx context.Context, period1, period2 finance.TrialBalancePeriod) (*finance.TrialBalanceComparison, error) {
	args := m.Called(ctx, period1, period2)
	return ret[*finance.TrialBalanceComparison](args, 0), args.Error(1)
}

func (m *MockTrialBalanceService) AccountTransactions(ctx context.Context, in financeapp.AccountTransactionsInput) (*financeapp.AccountTransactionsResult, error) {
	args := m.Called(ctx, in)
	return ret[*financeapp.AccountTransactionsResult](args, 0), args.Error(1)
}

func (m *MockTrialBalanceService) Calculate(transactions []finance.TransactionData) (*financeapp.CalculationResult, error) {
	args := m.Called(transactions)
	return ret[*financeapp.CalculationResult](args, 0), args.Error(1)
}

func (m *MockTrialBalanceService) InvalidateCache(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return ret[int64](args, 0), args.Error(1)
}

// MockBalanceService is a mock implementation of BalanceService
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) AccountBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, error) {
	args := m.Called(ctx, id, asOf)
	return ret[*finance.AccountPosition](args, 0), args.Error(1)
}

func (m *MockBalanceService) RealtimeAccountBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) (*finance.AccountPosition, error) {
	args := m.Called(ctx, id, asOf)
	return ret[*finance.AccountPosition](args, 0), args.Error(1)
}

func (m *MockBalanceService) CashBalances(ctx context.Context) (*finance.BalanceGroup, error) {
	args := m.Called(ctx)
	return ret[*finance.BalanceGroup](args, 0), args.Error(1)
}

func (m *MockBalanceService) BankBalances(ctx context.Context) (*finance.BalanceGroup, error) {
	args := m.Called(ctx)
	return ret[*finance.BalanceGroup](args, 0), args.Error(1)
}

func (m *MockBalanceService) Summary(ctx context.Context, asOf *time.Time) (*finance.BalanceSummary, error) {
	args := m.Called(ctx, asOf)
	return ret[*finance.BalanceSummary](args, 0), args.Error(1)
}

func (m *MockBalanceService) Dashboard(ctx context.Context) (*financeapp.BalanceDashboard, error) {
	args := m.Called(ctx)
	return ret[*financeapp.BalanceDashboard](args, 0), args.Error(1)
}

func (m *MockBalanceService) RefreshCache(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return ret[int64](args, 0), args.Error(1)
}

func (m *MockBalanceService) ClearAccountCache(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return ret[int64](args, 0), args.Error(1)
}

// stubPinger answers Ping with err
type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) GetAll(ctx context.Context) ([]partnerapp.ContactDTO, error) {
	args := m.Called(ctx)
	return ret[[]partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Suppliers(ctx context.Context) ([]partnerapp.ContactDTO, error) {
	args := m.Called(ctx)
	return ret[[]partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Buyers(ctx context.Context) ([]partnerapp.ContactDTO, error) {
	args := m.Called(ctx)
	return ret[[]partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Search(ctx context.Context, term string) ([]partnerapp.ContactDTO, error) {
	args := m.Called(ctx, term)
	return ret[[]partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Autocomplete(ctx context.Context, term string, contactType *partner.ContactType) ([]partnerapp.ContactDTO, error) {
	args := m.Called(ctx, term, contactType)
	return ret[[]partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.ContactDTO, error) {
	args := m.Called(ctx, id)
	return ret[*partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Create(ctx context.Context, in partnerapp.ContactInput) (*partnerapp.ContactDTO, error) {
	args := m.Called(ctx, in)
	return ret[*partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Update(ctx context.Context, id uuid.UUID, in partnerapp.ContactInput) (*partnerapp.ContactDTO, error) {
	args := m.Called(ctx, id, in)
	return ret[*partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Activate(ctx context.Context, id uuid.UUID) (*partnerapp.ContactDTO, error) {
	args := m.Called(ctx, id)
	return ret[*partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Deactivate(ctx context.Context, id uuid.UUID) (*partnerapp.ContactDTO, error) {
	args := m.Called(ctx, id)
	return ret[*partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactService) ByCategory(ctx context.Context, categoryID uuid.UUID) ([]partnerapp.ContactDTO, error) {
	args := m.Called(ctx, categoryID)
	return ret[[]partnerapp.ContactDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Categories(ctx context.Context, contactID uuid.UUID) ([]partnerapp.AssignmentDTO, error) {
	args := m.Called(ctx, contactID)
	return ret[[]partnerapp.AssignmentDTO](args, 0), args.Error(1)
}

func (m *MockContactService) Assign(ctx context.Context, contactID, categoryID uuid.UUID, role partner.ContactRole, notes string) (*partnerapp.AssignmentDTO, error) {
	args := m.Called(ctx, contactID, categoryID, role, notes)
	return ret[*partnerapp.AssignmentDTO](args, 0), args.Error(1)
}

func (m *MockContactService) RemoveFromCategory(ctx context.Context, contactID, categoryID uuid.UUID) error {
	return m.Called(ctx, contactID, categoryID).Error(0)
}

func (m *MockContactService) Transactions(ctx context.Context, id uuid.UUID, from, to *time.Time) ([]partner.ContactTransaction, error) {
	args := m.Called(ctx, id, from, to)
	return ret[[]partner.ContactTransaction](args, 0), args.Error(1)
}

func (m *MockContactService) Balance(ctx context.Context, id uuid.UUID) (*partnerapp.ContactBalance, error) {
	args := m.Called(ctx, id)
	return ret[*partnerapp.ContactBalance](args, 0), args.Error(1)
}

// MockCashBookImportService is a mock implementation of CashBookImportService
type MockCashBookImportService struct {
	mock.Mock
}

func (m *MockCashBookImportService) ImportCSV(ctx context.Context, r io.Reader, userID uuid.UUID) (*financeapp.CashBookImportResult, error) {
	args := m.Called(ctx, r, userID)
	return ret[*financeapp.CashBookImportResult](args, 0), args.Error(1)
}

func (m *MockCashBookImportService) ImportManual(ctx context.Context, req financeapp.CashBookImportRequest) (*financeapp.CashBookImportResult, error) {
	args := m.Called(ctx, req)
	return ret[*financeapp.CashBookImportResult](args, 0), args.Error(1)
}

func (m *MockCashBookImportService) SampleFormat() financeapp.ImportSampleFormat {
	return m.Called().Get(0).(financeapp.ImportSampleFormat)
}
