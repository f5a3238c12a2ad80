//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountRef struct {
	ID          string `json:"id"`
	AccountCode string `json:"account_code"`
}

type journalRef struct {
	ID            string          `json:"id"`
	JournalNumber string          `json:"journal_number"`
	Status        string          `json:"status"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
}

// FinanceFixture is an admin session plus a minimal chart of accounts
type FinanceFixture struct {
	*TestServer
	Token     string
	Cash      accountRef
	Sales     accountRef
	Fabric    accountRef
	Today     string
	MonthFrom string
}

func NewFinanceFixture(t *testing.T) *FinanceFixture {
	t.Helper()

	ts := NewTestServer(t)
	f := &FinanceFixture{TestServer: ts, Token: ts.SetupAdmin(t)}
	now := time.Now().UTC()
	f.Today = now.Format("2006-01-02")
	f.MonthFrom = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	f.Cash = f.createAccount(t, "1001", "Cash in Hand", "Asset")
	f.Sales = f.createAccount(t, "4001", "Export Sales", "Revenue")
	f.Fabric = f.createAccount(t, "5001", "Fabric Purchase", "Expense")
	return f
}

func (f *FinanceFixture) createAccount(t *testing.T, code, name, accountType string) accountRef {
	t.Helper()

	rec := f.Request(http.MethodPost, "/accounts", map[string]any{
		"account_code": code,
		"account_name": name,
		"account_type": accountType,
	}, f.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[accountRef](t, rec)
}

func (f *FinanceFixture) entry(debit, credit accountRef, amount string, post bool) map[string]any {
	return map[string]any{
		"transaction_date": f.Today,
		"journal_type":     "General",
		"description":      "Shipment to buyer",
		"post":             post,
		"lines": []map[string]any{
			{"account_id": debit.ID, "debit": amount, "credit": "0", "description": "cash received"},
			{"account_id": credit.ID, "debit": "0", "credit": amount, "description": "sale"},
		},
	}
}

func (f *FinanceFixture) createEntry(t *testing.T, body map[string]any) journalRef {
	t.Helper()

	rec := f.Request(http.MethodPost, "/journal-entries", body, f.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[journalRef](t, rec)
}

func TestFinance_JournalLifecycle(t *testing.T) {
	f := NewFinanceFixture(t)

	draft := f.createEntry(t, f.entry(f.Cash, f.Sales, "15000.50", false))
	assert.Equal(t, "Draft", draft.Status)
	assert.Equal(t, finance.JournalNumberPrefix(time.Now().UTC())+"-0001", draft.JournalNumber)
	assert.True(t, decimal.RequireFromString("15000.50").Equal(draft.TotalDebit))

	t.Run("validate", func(t *testing.T) {
		rec := f.Request(http.MethodGet, "/journal-entries/"+draft.ID+"/validate", nil, f.Token)

		require.Equal(t, http.StatusOK, rec.Code)
		report := decode[struct {
			IsBalanced bool `json:"is_balanced"`
		}](t, rec)
		assert.True(t, report.IsBalanced)
	})

	t.Run("approve requires posting first", func(t *testing.T) {
		rec := f.Request(http.MethodPatch, "/journal-entries/"+draft.ID+"/approve", map[string]string{}, f.Token)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "INVALID_STATE", errorCode(t, rec))
	})

	t.Run("post approve reverse", func(t *testing.T) {
		rec := f.Request(http.MethodPatch, "/journal-entries/"+draft.ID+"/post", nil, f.Token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Posted", decode[journalRef](t, rec).Status)

		rec = f.Request(http.MethodPatch, "/journal-entries/"+draft.ID+"/approve", map[string]string{"notes": "checked"}, f.Token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Approved", decode[journalRef](t, rec).Status)

		rec = f.Request(http.MethodPatch, "/journal-entries/"+draft.ID+"/reverse", map[string]string{}, f.Token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "reason is mandatory")

		rec = f.Request(http.MethodPatch, "/journal-entries/"+draft.ID+"/reverse", map[string]string{"reason": "wrong buyer"}, f.Token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Reversed", decode[journalRef](t, rec).Status)
	})

	t.Run("numbers are sequential", func(t *testing.T) {
		next := f.createEntry(t, f.entry(f.Fabric, f.Cash, "800", true))

		assert.Equal(t, finance.JournalNumberPrefix(time.Now().UTC())+"-0002", next.JournalNumber)
		assert.Equal(t, "Posted", next.Status)
	})
}

func TestFinance_UnbalancedEntryIsRejected(t *testing.T) {
	f := NewFinanceFixture(t)

	body := f.entry(f.Cash, f.Sales, "100", true)
	body["lines"].([]map[string]any)[1]["credit"] = "90"

	rec := f.Request(http.MethodPost, "/journal-entries", body, f.Token)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "UNBALANCED_ENTRY", errorCode(t, rec))

	list := f.Request(http.MethodGet, "/journal-entries", nil, f.Token)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Empty(t, decode[[]journalRef](t, list), "nothing is stored for a rejected entry")
}

func TestFinance_PostedEntriesAreImmutable(t *testing.T) {
	f := NewFinanceFixture(t)
	posted := f.createEntry(t, f.entry(f.Cash, f.Sales, "500", true))

	rec := f.Request(http.MethodPut, "/journal-entries/"+posted.ID, f.entry(f.Cash, f.Sales, "600", false), f.Token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	rec = f.Request(http.MethodDelete, "/journal-entries/"+posted.ID, nil, f.Token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestFinance_CashBook(t *testing.T) {
	f := NewFinanceFixture(t)

	for i, amount := range []string{"25000", "4000"} {
		rec := f.Request(http.MethodPost, "/cash-book/credit", map[string]any{
			"date":          f.Today,
			"category_name": "Buyer Advance",
			"particulars":   fmt.Sprintf("LC advance %d", i+1),
			"amount":        amount,
			"buyer_name":    "Nordic Apparel",
		}, f.Token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := f.Request(http.MethodPost, "/cash-book/debit", map[string]any{
		"date":          f.Today,
		"category_name": "Fabric Purchase",
		"particulars":   "Denim rolls",
		"amount":        "9000",
		"supplier_name": "Dhaka Mills",
	}, f.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("recent totals", func(t *testing.T) {
		rec := f.Request(http.MethodGet, "/cash-book/recent", nil, f.Token)
		require.Equal(t, http.StatusOK, rec.Code)

		recent := decode[struct {
			Transactions []map[string]any `json:"transactions"`
			TotalCredits decimal.Decimal  `json:"total_credits"`
			TotalDebits  decimal.Decimal  `json:"total_debits"`
			NetAmount    decimal.Decimal  `json:"net_amount"`
		}](t, rec)
		assert.Len(t, recent.Transactions, 3)
		assert.True(t, decimal.NewFromInt(29000).Equal(recent.TotalCredits), recent.TotalCredits.String())
		assert.True(t, decimal.NewFromInt(9000).Equal(recent.TotalDebits), recent.TotalDebits.String())
		assert.True(t, decimal.NewFromInt(20000).Equal(recent.NetAmount), recent.NetAmount.String())
	})

	t.Run("categories are created on demand", func(t *testing.T) {
		rec := f.Request(http.MethodGet, "/categories/search?searchTerm=Buyer", nil, f.Token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		found := decode[[]struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}](t, rec)
		require.NotEmpty(t, found)
		assert.Equal(t, "Credit", found[0].Type)
	})

	t.Run("multi-line entry needs two lines", func(t *testing.T) {
		rec := f.Request(http.MethodPost, "/cash-book/entries", map[string]any{
			"date":         f.Today,
			"journal_type": "CashReceipt",
			"description":  "single line",
			"lines": []map[string]any{
				{"account_id": f.Cash.ID, "debit": "10", "credit": "0"},
			},
		}, f.Token)

		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("multi-line entry completes", func(t *testing.T) {
		rec := f.Request(http.MethodPost, "/cash-book/entries", map[string]any{
			"date":         f.Today,
			"journal_type": "CashReceipt",
			"description":  "Cash sale of samples",
			"lines": []map[string]any{
				{"account_id": f.Cash.ID, "debit": "1200", "credit": "0"},
				{"account_id": f.Sales.ID, "debit": "0", "credit": "1200"},
			},
		}, f.Token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		created := decode[journalRef](t, rec)
		assert.Equal(t, "Draft", created.Status)

		rec = f.Request(http.MethodPatch, "/cash-book/entries/"+created.ID+"/complete", nil, f.Token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Posted", decode[journalRef](t, rec).Status)
	})
}

func TestFinance_TrialBalance(t *testing.T) {
	f := NewFinanceFixture(t)
	f.createEntry(t, f.entry(f.Cash, f.Sales, "15000", true))
	f.createEntry(t, f.entry(f.Fabric, f.Cash, "6000", true))
	f.createEntry(t, f.entry(f.Cash, f.Sales, "99999", false)) // drafts are ignored

	query := "/trial-balance?startDate=" + f.MonthFrom + "&endDate=" + f.Today

	rec := f.Request(http.MethodGet, query, nil, f.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[finance.TrialBalanceReport](t, rec)

	assert.Equal(t, 4, report.TotalTransactions)
	assert.True(t, report.TotalDebits.Equal(report.TotalCredits), "%s != %s", report.TotalDebits, report.TotalCredits)
	assert.True(t, decimal.NewFromInt(21000).Equal(report.TotalDebits), report.TotalDebits.String())
	assert.NotEmpty(t, report.Categories)

	t.Run("cached report is served until invalidated", func(t *testing.T) {
		again := f.Request(http.MethodGet, query, nil, f.Token)
		require.Equal(t, http.StatusOK, again.Code)
		assert.Equal(t, report.GeneratedAt.Unix(), decode[finance.TrialBalanceReport](t, again).GeneratedAt.Unix())

		cleared := f.Request(http.MethodDelete, "/trial-balance/cache", nil, f.Token)
		require.Equal(t, http.StatusOK, cleared.Code, cleared.Body.String())
	})

	t.Run("account drill-down", func(t *testing.T) {
		rec := f.Request(http.MethodGet, "/trial-balance/account/"+f.Cash.ID+"/transactions?startDate="+f.MonthFrom+"&endDate="+f.Today, nil, f.Token)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("range longer than a year", func(t *testing.T) {
		rec := f.Request(http.MethodGet, "/trial-balance?startDate=2024-01-01&endDate=2026-01-01", nil, f.Token)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_DATE_RANGE", errorCode(t, rec))
	})
}
