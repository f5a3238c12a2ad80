package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryForm struct {
	Name string `json:"name" binding:"required,max=200"`
	Type string `json:"type" binding:"required,oneof=Credit Debit"`
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/categories", func(c *gin.Context) {
		var req categoryForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("reports fields by json name", func(t *testing.T) {
		rec := post(`{"type":"Sideways"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, dto.ValidationDetail{Field: "name", Message: "This field is required"}, resp.Error.Details[0])
		assert.Equal(t, "type", resp.Error.Details[1].Field)
		assert.Equal(t, "Must be one of: Credit Debit", resp.Error.Details[1].Message)
	})

	t.Run("valid body passes", func(t *testing.T) {
		rec := post(`{"name":"Fabric Purchase","type":"Debit"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed json has no details", func(t *testing.T) {
		rec := post(`{"name":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Error.Details)
	})
}

func TestDescribe(t *testing.T) {
	type form struct {
		Required string   `validate:"required"`
		Email    string   `validate:"email"`
		Min      string   `validate:"min=8"`
		Max      string   `validate:"max=3"`
		Lines    []string `validate:"min=2"`
		GT       int      `validate:"gt=0"`
		Date     string   `validate:"datetime=2006-01-02"`
	}

	err := validator.New().Struct(form{Email: "nope", Min: "short", Max: "toolong", Lines: []string{"one"}, Date: "01/02/2026"})
	require.Error(t, err)

	got := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		got[fe.Field()] = describe(fe)
	}

	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Invalid email format", got["Email"])
	assert.Equal(t, "Must be at least 8 characters", got["Min"])
	assert.Equal(t, "Must be at most 3 characters", got["Max"])
	assert.Equal(t, "Must have at least 2 items", got["Lines"])
	assert.Equal(t, "Must be greater than 0", got["GT"])
	assert.Equal(t, "Must be a date in 2006-01-02 format", got["Date"])
}

func TestLedgerTags(t *testing.T) {
	SetupValidator()
	SetupValidator()

	type line struct {
		Code  string          `json:"code" binding:"account_code"`
		Debit decimal.Decimal `json:"debit" binding:"gte=0"`
	}

	tests := []struct {
		name      string
		in        line
		wantField string
	}{
		{"valid", line{Code: "4001", Debit: decimal.NewFromInt(10)}, ""},
		{"empty code is left to required", line{Debit: decimal.Zero}, ""},
		{"letters in code", line{Code: "40A1"}, "code"},
		{"negative amount", line{Code: "1001", Debit: decimal.NewFromInt(-1)}, "debit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErrs validator.ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field())
		})
	}
}
