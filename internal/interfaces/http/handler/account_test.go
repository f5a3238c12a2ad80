package handler

import (
	"net/http"
	"testing"

	financeapp "github.com/garments-erp/backend/internal/application/finance"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAccountRouter() (*gin.Engine, *MockAccountService) {
	svc := new(MockAccountService)
	h := NewAccountHandler(svc)

	r := newTestRouter(true)
	g := r.Group("/api/v1/accounts")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/account-types", h.AccountTypes)
	g.GET("/next-account-code", h.NextAccountCode)
	g.GET("/search", h.Search)
	g.GET("/by-type/:type", h.ByType)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r, svc
}

func TestAccountHandler_List(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("List", mock.Anything, mock.MatchedBy(func(in financeapp.AccountListInput) bool {
			return in.AccountType != nil && *in.AccountType == finance.AccountTypeExpense &&
				in.IsActive != nil && *in.IsActive &&
				in.Search == "rent" && in.Page == 2 && in.PageSize == 10
		})).Return(&financeapp.AccountListResult{
			Accounts: []financeapp.AccountDTO{{AccountCode: "5001"}},
			Total:    11,
			Page:     2,
			PageSize: 10,
		}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts?accountType=Expense&isActive=true&search=rent&page=2&pageSize=10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		svc.AssertExpectations(t)
	})

	t.Run("bad isActive", func(t *testing.T) {
		r, _ := setupAccountRouter()

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts?isActive=maybe", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad account type", func(t *testing.T) {
		r, _ := setupAccountRouter()

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts?accountType=Cash", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ACCOUNT_TYPE", errorCode(t, rec))
	})
}

func TestAccountHandler_Create(t *testing.T) {
	parent := uuid.New()

	t.Run("created", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in financeapp.AccountInput) bool {
			return in.AccountCode == "1001" && in.AccountType == finance.AccountTypeAsset &&
				in.ParentAccountID != nil && *in.ParentAccountID == parent &&
				in.OpeningBalance.Equal(decimal.NewFromInt(5000))
		})).Return(&financeapp.AccountDTO{ID: uuid.New(), AccountCode: "1001", CategoryName: "Assets"}, nil)

		rec := doRequest(r, http.MethodPost, "/api/v1/accounts",
			`{"account_code":"1001","account_name":"Cash in Hand","account_type":"Asset","parent_account_id":"`+parent.String()+`","opening_balance":"5000"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got financeapp.AccountDTO
		decodeData(t, rec, &got)
		assert.Equal(t, "Assets", got.CategoryName)
		svc.AssertExpectations(t)
	})

	t.Run("code too long", func(t *testing.T) {
		r, _ := setupAccountRouter()

		rec := doRequest(r, http.MethodPost, "/api/v1/accounts", AccountRequest{AccountCode: "12345678901", AccountName: "X", AccountType: "Asset"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("DUPLICATE_ACCOUNT_CODE", "An account with this code already exists"))

		rec := doRequest(r, http.MethodPost, "/api/v1/accounts", AccountRequest{AccountCode: "1001", AccountName: "Cash", AccountType: "Asset"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("parent of another type", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("ACCOUNT_TYPE_MISMATCH", "Parent account must have the same account type"))

		rec := doRequest(r, http.MethodPost, "/api/v1/accounts", AccountRequest{AccountCode: "1002", AccountName: "Bank", AccountType: "Asset", ParentAccountID: &parent})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAccountHandler_UpdateDelete(t *testing.T) {
	id := uuid.New()

	t.Run("update", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Update", mock.Anything, id, mock.MatchedBy(func(in financeapp.AccountInput) bool {
			return in.AccountName == "Petty Cash"
		})).Return(&financeapp.AccountDTO{ID: id, AccountName: "Petty Cash"}, nil)

		rec := doRequest(r, http.MethodPut, "/api/v1/accounts/"+id.String(), AccountRequest{AccountCode: "1001", AccountName: "Petty Cash", AccountType: "asset"})

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("delete in use", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Delete", mock.Anything, id).Return(shared.NewDomainError("ACCOUNT_IN_USE", "Account has journal entry lines or active sub-accounts"))

		rec := doRequest(r, http.MethodDelete, "/api/v1/accounts/"+id.String(), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Delete", mock.Anything, id).Return(nil)

		rec := doRequest(r, http.MethodDelete, "/api/v1/accounts/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAccountHandler_Lookups(t *testing.T) {
	t.Run("types", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("AccountTypes").Return([]financeapp.AccountTypeDTO{{Value: "Asset", CodePrefix: "1", CategoryName: "Assets"}})

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts/account-types", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []financeapp.AccountTypeDTO
		decodeData(t, rec, &got)
		assert.Equal(t, "1", got[0].CodePrefix)
	})

	t.Run("next code", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("NextAccountCode", mock.Anything, finance.AccountTypeLiability).Return("2004", nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts/next-account-code?accountType=Liability", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got NextAccountCodeResponse
		decodeData(t, rec, &got)
		assert.Equal(t, NextAccountCodeResponse{AccountType: "Liability", AccountCode: "2004"}, got)
	})

	t.Run("next code needs a type", func(t *testing.T) {
		r, _ := setupAccountRouter()

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts/next-account-code", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("by type", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("ByType", mock.Anything, finance.AccountTypeRevenue).Return([]financeapp.AccountDTO{}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts/by-type/Revenue", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("search", func(t *testing.T) {
		r, svc := setupAccountRouter()
		svc.On("Search", mock.Anything, "cash").Return([]financeapp.AccountDTO{{AccountName: "Cash in Hand"}}, nil)

		rec := doRequest(r, http.MethodGet, "/api/v1/accounts/search?searchTerm=cash", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
