package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/garments-erp/backend/internal/infrastructure/auth"
	"github.com/garments-erp/backend/internal/interfaces/http/dto"
	"github.com/garments-erp/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testUserID = uuid.MustParse("6f1d2c3b-4a5e-4f60-8b7a-9c0d1e2f3a4b")

// withTestUser simulates a verified access token
func withTestUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{UserID: userID.String(), Username: "tester", TokenType: auth.TokenTypeAccess}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTUsernameKey, claims.Username)
		c.Next()
	}
}

func newTestRouter(authenticated bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if authenticated {
		r.Use(withTestUser(testUserID))
	}
	return r
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

// decodeData unmarshals the data field of a success envelope into out
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error, rec.Body.String())
	return resp.Error.Code
}

func TestBaseHandlerSuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		h.Success(c, map[string]string{"key": "value"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeResponse(t, w).Success)
	})

	t.Run("success with meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		h.SuccessWithMeta(c, []string{"a", "b"}, 41, 2, 20)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(41), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		h.Created(c, map[string]string{"id": "123"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content", func(t *testing.T) {
		router := gin.New()
		router.DELETE("/x", func(c *gin.Context) { h.NoContent(c) })

		w := doRequest(router, http.MethodDelete, "/x", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       func(*BaseHandler, *gin.Context)
		expectedCode int
		expectedErr  string
	}{
		{"BadRequest", func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"NotFound", func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "gone") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"Unauthorized", func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "who") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"Forbidden", func(h *BaseHandler, c *gin.Context) { h.Forbidden(c, "no") }, http.StatusForbidden, dto.ErrCodeForbidden},
		{"Conflict", func(h *BaseHandler, c *gin.Context) { h.Conflict(c, "dup") }, http.StatusConflict, dto.ErrCodeConflict},
		{"InternalError", func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"UnprocessableEntity", func(h *BaseHandler, c *gin.Context) { h.UnprocessableEntity(c, "UNBALANCED_ENTRY", "x") }, http.StatusUnprocessableEntity, "UNBALANCED_ENTRY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-42")

			tt.method(&BaseHandler{}, c)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			assert.Equal(t, "req-42", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"typed not found", shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found"), http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
		{"duplicate", shared.NewDomainError("DUPLICATE_ACCOUNT_CODE", "taken"), http.StatusConflict, "DUPLICATE_ACCOUNT_CODE"},
		{"in use", shared.NewDomainError("CATEGORY_IN_USE", "used"), http.StatusUnprocessableEntity, "CATEGORY_IN_USE"},
		{"invalid", shared.NewDomainError("INVALID_DATE_RANGE", "range"), http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{"unbalanced", shared.NewDomainError("UNBALANCED_ENTRY", "debits != credits"), http.StatusUnprocessableEntity, "UNBALANCED_ENTRY"},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"concurrency", shared.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
		{"wrapped", fmt.Errorf("loading: %w", shared.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"plain error", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			(&BaseHandler{}).HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedErr, errorCode(t, w))
		})
	}

	t.Run("plain error text is not leaked", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		(&BaseHandler{}).HandleError(c, fmt.Errorf("pq: relation \"accounts\" does not exist"))

		resp := decodeResponse(t, w)
		assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
		assert.Len(t, c.Errors, 1)
	})

	t.Run("nil writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		(&BaseHandler{}).HandleError(c, nil)

		assert.Empty(t, w.Body.Bytes())
	})
}

func TestBaseHandlerParamHelpers(t *testing.T) {
	h := &BaseHandler{}
	router := newTestRouter(false)
	router.GET("/things/:id", func(c *gin.Context) {
		id, ok := h.parseIDParam(c, "id")
		if !ok {
			return
		}
		from, ok := h.queryDate(c, "from")
		if !ok {
			return
		}
		limit, ok := h.queryInt(c, "limit", 10)
		if !ok {
			return
		}
		h.Success(c, gin.H{"id": id, "from": from, "limit": limit})
	})

	id := uuid.New()

	t.Run("valid", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/things/"+id.String()+"?from=2026-03-01", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			ID    uuid.UUID `json:"id"`
			From  string    `json:"from"`
			Limit int       `json:"limit"`
		}
		decodeData(t, rec, &got)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "2026-03-01T00:00:00Z", got.From)
		assert.Equal(t, 10, got.Limit)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/things/42", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidID, errorCode(t, rec))
	})

	t.Run("bad date", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/things/"+id.String()+"?from=01/03/2026", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad int", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/things/"+id.String()+"?limit=ten", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, 28, d.Day())

	d, err = parseDate("2026-02-28T10:15:00+06:00")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parseDate("28-02-2026")
	assert.Error(t, err)
}

func TestGetUserID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, err := getUserID(c)
	assert.ErrorIs(t, err, errNoUser)
	assert.Nil(t, optionalUserID(c))

	c.Set(middleware.JWTUserIDKey, testUserID.String())
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, testUserID, id)
}
