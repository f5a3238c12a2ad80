package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCategory(t *testing.T, name string, typ finance.CategoryType) *finance.Category {
	t.Helper()
	c, err := finance.NewCategory(name, name+" bills", typ, nil)
	require.NoError(t, err)
	return c
}

func mustAccount(t *testing.T, code, name string, typ finance.AccountType) *finance.ChartOfAccount {
	t.Helper()
	a, err := finance.NewChartOfAccount(code, name, typ, "")
	require.NoError(t, err)
	return a
}

func mustEntry(t *testing.T, number string, day int, typ finance.JournalType, lines ...finance.LineInput) *finance.JournalEntry {
	t.Helper()
	e, err := finance.NewJournalEntry(finance.JournalEntryParams{
		JournalNumber:   number,
		TransactionDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		JournalType:     typ,
		Description:     "Entry " + number,
		CreatedBy:       uuid.New(),
		Lines:           lines,
	})
	require.NoError(t, err)
	return e
}

func debit(a *finance.ChartOfAccount, amount int64) finance.LineInput {
	return finance.LineInput{AccountID: a.ID, Debit: decimal.NewFromInt(amount)}
}

func credit(a *finance.ChartOfAccount, amount int64) finance.LineInput {
	return finance.LineInput{AccountID: a.ID, Credit: decimal.NewFromInt(amount)}
}

func TestGormCategoryRepository(t *testing.T) {
	ctx := context.Background()
	database := newTestDatabase(t)
	repo := NewGormCategoryRepository(database.DB)

	sales := mustCategory(t, "Sales", finance.CategoryTypeCredit)
	dyeing := mustCategory(t, "Dyeing Bill", finance.CategoryTypeDebit)
	fabric := mustCategory(t, "Fabric- Purchase", finance.CategoryTypeDebit)
	retired := mustCategory(t, "Old Loan", finance.CategoryTypeCredit)
	retired.Deactivate(nil)
	for _, c := range []*finance.Category{sales, dyeing, fabric, retired} {
		require.NoError(t, repo.Create(ctx, c))
	}

	t.Run("lists active by type then name", func(t *testing.T) {
		all, err := repo.FindAllActive(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Sales", all[0].Name)
		assert.Equal(t, "Dyeing Bill", all[1].Name)
		assert.Equal(t, "Fabric- Purchase", all[2].Name)

		debits, err := repo.FindByType(ctx, finance.CategoryTypeDebit)
		require.NoError(t, err)
		assert.Len(t, debits, 2)
	})

	t.Run("find by id includes inactive", func(t *testing.T) {
		found, err := repo.FindByID(ctx, retired.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, finance.ErrCategoryNotFound)
	})

	t.Run("search ignores case", func(t *testing.T) {
		found, err := repo.Search(ctx, "FABRIC")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, fabric.ID, found[0].ID)

		found, err = repo.Search(ctx, "bills")
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("name lookups", func(t *testing.T) {
		found, err := repo.FindActiveByName(ctx, " dyeing bill ", finance.CategoryTypeDebit)
		require.NoError(t, err)
		assert.Equal(t, dyeing.ID, found.ID)

		_, err = repo.FindActiveByName(ctx, "Dyeing Bill", finance.CategoryTypeCredit)
		assert.ErrorIs(t, err, finance.ErrCategoryNotFound)

		exists, err := repo.ExistsActiveByName(ctx, "SALES", finance.CategoryTypeCredit, nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsActiveByName(ctx, "Sales", finance.CategoryTypeCredit, &sales.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsActiveByName(ctx, "Old Loan", finance.CategoryTypeCredit, nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update", func(t *testing.T) {
		editor := uuid.New()
		require.NoError(t, dyeing.Update("Dyeing Bill", "Dyeing house", finance.CategoryTypeDebit, &editor))
		require.NoError(t, repo.Update(ctx, dyeing))

		found, err := repo.FindByID(ctx, dyeing.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dyeing house", found.Description)
		assert.Equal(t, &editor, found.UpdatedBy)
		assert.Equal(t, 2, found.Version)

		assert.ErrorIs(t, repo.Update(ctx, mustCategory(t, "Ghost", finance.CategoryTypeDebit)), finance.ErrCategoryNotFound)
	})

	t.Run("usage counts tagged lines", func(t *testing.T) {
		cash := mustAccount(t, "1001", "Cash", finance.AccountTypeAsset)
		require.NoError(t, NewGormAccountRepository(database.DB).Create(ctx, cash))
		line := finance.LineInput{AccountID: cash.ID, Debit: decimal.NewFromInt(10), CategoryID: &dyeing.ID}
		entry := mustEntry(t, "JE-2026-03-0001", 1, finance.JournalTypeCashPayment, line)
		require.NoError(t, NewGormJournalEntryRepository(database.DB).Create(ctx, entry))

		n, err := repo.CountUsage(ctx, dyeing.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()
	database := newTestDatabase(t)
	repo := NewGormAccountRepository(database.DB)

	cash := mustAccount(t, "1001", "Cash in Hand", finance.AccountTypeAsset)
	bank := mustAccount(t, "1002", "Bank", finance.AccountTypeAsset)
	petty := mustAccount(t, "1003", "Petty Cash", finance.AccountTypeAsset)
	require.NoError(t, petty.SetParent(cash))
	rent := mustAccount(t, "5001", "Rent", finance.AccountTypeExpense)
	rent.Deactivate()
	for _, a := range []*finance.ChartOfAccount{cash, bank, petty, rent} {
		require.NoError(t, repo.Create(ctx, a))
	}

	t.Run("duplicate code", func(t *testing.T) {
		err := repo.Create(ctx, mustAccount(t, "1001", "Another", finance.AccountTypeAsset))
		assert.ErrorIs(t, err, finance.ErrDuplicateAccountCode)

		exists, err := repo.ExistsByCode(ctx, "1001", nil)
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = repo.ExistsByCode(ctx, "1001", &cash.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("lookups", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "1002")
		require.NoError(t, err)
		assert.Equal(t, bank.ID, found.ID)

		found, err = repo.FindActiveByName(ctx, "cash in hand", finance.AccountTypeAsset)
		require.NoError(t, err)
		assert.Equal(t, cash.ID, found.ID)

		_, err = repo.FindActiveByName(ctx, "Rent", finance.AccountTypeExpense)
		assert.ErrorIs(t, err, finance.ErrAccountNotFound)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, finance.ErrAccountNotFound)
	})

	t.Run("find all filters and pages", func(t *testing.T) {
		active := true
		page, total, err := repo.FindAll(ctx, finance.AccountFilter{IsActive: &active, Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 1)
		assert.Equal(t, "1003", page[0].AccountCode)

		expense := finance.AccountTypeExpense
		list, total, err := repo.FindAll(ctx, finance.AccountFilter{AccountType: &expense})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Rent", list[0].AccountName)

		list, _, err = repo.FindAll(ctx, finance.AccountFilter{Search: "CASH"})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("active ordered and codes", func(t *testing.T) {
		list, err := repo.FindActiveOrdered(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "1001", list[0].AccountCode)

		codes, err := repo.CodesWithPrefix(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, []string{"1001", "1002", "1003"}, codes)
		assert.Equal(t, "1004", finance.NextAccountCode(finance.AccountTypeAsset, codes))
	})

	t.Run("children and lines", func(t *testing.T) {
		n, err := repo.CountActiveChildren(ctx, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		entry := mustEntry(t, "JE-2026-03-0001", 2, finance.JournalTypeGeneral, debit(bank, 100), credit(cash, 100))
		require.NoError(t, NewGormJournalEntryRepository(database.DB).Create(ctx, entry))

		n, err = repo.CountLines(ctx, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("update keeps balances", func(t *testing.T) {
		bank.SetOpeningBalance(decimal.RequireFromString("2500.50"))
		require.NoError(t, repo.Update(ctx, bank))

		found, err := repo.FindByID(ctx, bank.ID)
		require.NoError(t, err)
		assert.True(t, found.OpeningBalance.Equal(decimal.RequireFromString("2500.50")))
		assert.True(t, found.CurrentBalance.Equal(decimal.RequireFromString("2500.50")))

		bank.AccountCode = "1001"
		assert.ErrorIs(t, repo.Update(ctx, bank), finance.ErrDuplicateAccountCode)
	})
}

func TestGormJournalEntryRepository(t *testing.T) {
	ctx := context.Background()
	database := newTestDatabase(t)
	accounts := NewGormAccountRepository(database.DB)
	repo := NewGormJournalEntryRepository(database.DB)

	cash := mustAccount(t, "1001", "Cash", finance.AccountTypeAsset)
	sales := mustAccount(t, "4001", "Sales", finance.AccountTypeRevenue)
	rent := mustAccount(t, "5001", "Rent", finance.AccountTypeExpense)
	for _, a := range []*finance.ChartOfAccount{cash, sales, rent} {
		require.NoError(t, accounts.Create(ctx, a))
	}

	sale := mustEntry(t, "JE-2026-03-0001", 3, finance.JournalTypeSales, debit(cash, 1000), credit(sales, 1000))
	require.NoError(t, sale.Post())
	rentEntry := mustEntry(t, "JE-2026-03-0002", 5, finance.JournalTypeGeneral, debit(rent, 300), credit(cash, 300))
	draft := mustEntry(t, "JE-2026-03-0003", 20, finance.JournalTypeGeneral, debit(rent, 50), credit(cash, 50))
	for _, e := range []*finance.JournalEntry{sale, rentEntry, draft} {
		require.NoError(t, repo.Create(ctx, e))
	}

	t.Run("find by id loads ordered lines", func(t *testing.T) {
		found, err := repo.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.JournalStatusPosted, found.Status)
		require.Len(t, found.Lines, 2)
		assert.Equal(t, cash.ID, found.Lines[0].AccountID)
		assert.True(t, found.Lines[0].Debit.Equal(decimal.NewFromInt(1000)))
		assert.True(t, found.TotalCredit.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, 3, found.TransactionDate.Day())

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, finance.ErrJournalEntryNotFound)
	})

	t.Run("numbering", func(t *testing.T) {
		last, count, err := repo.LastNumberWithPrefix(ctx, "JE-2026-03")
		require.NoError(t, err)
		assert.Equal(t, "JE-2026-03-0003", last)
		assert.Equal(t, int64(3), count)

		last, count, err = repo.LastNumberWithPrefix(ctx, "JE-2026-04")
		require.NoError(t, err)
		assert.Empty(t, last)
		assert.Zero(t, count)
	})

	t.Run("find all filters", func(t *testing.T) {
		all, total, err := repo.FindAll(ctx, finance.JournalEntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, "JE-2026-03-0001", all[0].JournalNumber)
		assert.Len(t, all[0].Lines, 2)

		from := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
		ranged, total, err := repo.FindAll(ctx, finance.JournalEntryFilter{DateFrom: &from, DateTo: &to, SortDesc: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "JE-2026-03-0003", ranged[0].JournalNumber)

		drafts, _, err := repo.FindAll(ctx, finance.JournalEntryFilter{Statuses: []finance.JournalStatus{finance.JournalStatusDraft}})
		require.NoError(t, err)
		assert.Len(t, drafts, 2)

		minAmount := decimal.NewFromInt(100)
		big, _, err := repo.FindAll(ctx, finance.JournalEntryFilter{MinAmount: &minAmount, SortBy: "amount", SortDesc: true})
		require.NoError(t, err)
		require.Len(t, big, 2)
		assert.Equal(t, sale.ID, big[0].ID)

		searched, _, err := repo.FindAll(ctx, finance.JournalEntryFilter{Search: "0002"})
		require.NoError(t, err)
		require.Len(t, searched, 1)

		paged, total, err := repo.FindAll(ctx, finance.JournalEntryFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, paged, 1)
	})

	t.Run("ledger lines only count requested statuses", func(t *testing.T) {
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

		lines, err := repo.FindLedgerLines(ctx, from, to, finance.LedgerStatuses(), nil)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Entry JE-2026-03-0001", lines[0].Particulars)
		assert.Equal(t, finance.JournalTypeSales, lines[0].JournalType)

		cashLines, err := repo.FindLedgerLines(ctx, from, to, nil, &cash.ID)
		require.NoError(t, err)
		require.Len(t, cashLines, 3)
		assert.True(t, cashLines[1].Credit.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, 20, cashLines[2].TransactionDate.Day())
	})

	t.Run("sums movements per account", func(t *testing.T) {
		byAccount := func(ms []finance.AccountMovement) map[uuid.UUID]finance.AccountMovement {
			out := make(map[uuid.UUID]finance.AccountMovement, len(ms))
			for _, m := range ms {
				out[m.AccountID] = m
			}
			return out
		}

		posted, err := repo.SumByAccount(ctx, nil, finance.LedgerStatuses(), nil)
		require.NoError(t, err)
		got := byAccount(posted)
		require.Len(t, got, 2)
		assert.True(t, got[cash.ID].TotalDebit.Equal(decimal.NewFromInt(1000)))
		assert.True(t, got[cash.ID].TotalCredit.IsZero())
		assert.True(t, got[sales.ID].TotalCredit.Equal(decimal.NewFromInt(1000)))

		everything, err := repo.SumByAccount(ctx, nil, nil, &cash.ID)
		require.NoError(t, err)
		require.Len(t, everything, 1)
		assert.True(t, everything[0].TotalCredit.Equal(decimal.NewFromInt(350)))

		asOf := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		early, err := repo.SumByAccount(ctx, &asOf, nil, nil)
		require.NoError(t, err)
		got = byAccount(early)
		assert.True(t, got[cash.ID].TotalCredit.Equal(decimal.NewFromInt(300)), "the 5th is included, the 20th is not")
		assert.True(t, got[rent.ID].TotalDebit.Equal(decimal.NewFromInt(300)))
	})

	t.Run("update replaces lines", func(t *testing.T) {
		found, err := repo.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		require.NoError(t, found.Update(finance.JournalEntryParams{
			TransactionDate: found.TransactionDate,
			JournalType:     finance.JournalTypeGeneral,
			Description:     "Rent top-up",
			Lines:           []finance.LineInput{debit(rent, 75), credit(cash, 70), credit(sales, 5)},
		}))
		require.NoError(t, repo.Update(ctx, found))

		reloaded, err := repo.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rent top-up", reloaded.Description)
		require.Len(t, reloaded.Lines, 3)
		assert.Equal(t, sales.ID, reloaded.Lines[2].AccountID)
		assert.Equal(t, 2, reloaded.Version)

		ghost := mustEntry(t, "JE-2026-03-0099", 1, finance.JournalTypeGeneral, debit(rent, 1), credit(cash, 1))
		assert.ErrorIs(t, repo.Update(ctx, ghost), finance.ErrJournalEntryNotFound)
	})

	t.Run("numbering past four digits", func(t *testing.T) {
		for _, number := range []string{"JE-2026-06-9999", "JE-2026-06-10000", "JE-2026-06-0002"} {
			require.NoError(t, repo.Create(ctx, mustEntry(t, number, 1, finance.JournalTypeGeneral, debit(rent, 1), credit(cash, 1))))
		}

		last, count, err := repo.LastNumberWithPrefix(ctx, "JE-2026-06")
		require.NoError(t, err)
		assert.Equal(t, "JE-2026-06-10000", last)
		assert.Equal(t, int64(3), count)
		assert.Equal(t, "JE-2026-06-10001", finance.NextJournalNumber(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), last, count))
	})
}

func TestGormJournalEntryRepository_LastNumberWithPrefix_Mock(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewGormJournalEntryRepository(database.DB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "journal_entries" WHERE journal_number LIKE \$1`).
		WithArgs("JE-2026-05%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))
	mock.ExpectQuery(`SELECT "journal_number" FROM "journal_entries" WHERE journal_number LIKE \$1 ORDER BY LENGTH\(journal_number\) DESC, journal_number DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"journal_number"}).AddRow("JE-2026-05-0042"))

	last, count, err := repo.LastNumberWithPrefix(context.Background(), "JE-2026-05")

	require.NoError(t, err)
	assert.Equal(t, "JE-2026-05-0042", last)
	assert.Equal(t, int64(40), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepositories_StaleCopies(t *testing.T) {
	ctx := context.Background()
	database := newTestDatabase(t)
	accounts := NewGormAccountRepository(database.DB)
	journals := NewGormJournalEntryRepository(database.DB)
	categories := NewGormCategoryRepository(database.DB)

	cash := mustAccount(t, "1001", "Cash", finance.AccountTypeAsset)
	sales := mustAccount(t, "4001", "Sales", finance.AccountTypeRevenue)
	for _, a := range []*finance.ChartOfAccount{cash, sales} {
		require.NoError(t, accounts.Create(ctx, a))
	}

	t.Run("second post of the same draft is rejected", func(t *testing.T) {
		draft := mustEntry(t, "JE-2026-03-0001", 3, finance.JournalTypeSales, debit(cash, 100), credit(sales, 100))
		require.NoError(t, journals.Create(ctx, draft))

		first, err := journals.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		second, err := journals.FindByID(ctx, draft.ID)
		require.NoError(t, err)

		require.NoError(t, first.Post())
		require.NoError(t, journals.Update(ctx, first))

		require.NoError(t, second.Post())
		assert.ErrorIs(t, journals.Update(ctx, second), shared.ErrConcurrencyConflict)

		reloaded, err := journals.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Version, reloaded.Version)
		assert.Len(t, reloaded.Lines, 2)
	})

	t.Run("stale balance update loses nothing", func(t *testing.T) {
		a, err := accounts.FindByID(ctx, sales.ID)
		require.NoError(t, err)
		b, err := accounts.FindByID(ctx, sales.ID)
		require.NoError(t, err)

		a.ApplyPosting(decimal.Zero, decimal.NewFromInt(100))
		require.NoError(t, accounts.Update(ctx, a))

		b.ApplyPosting(decimal.Zero, decimal.NewFromInt(50))
		assert.ErrorIs(t, accounts.Update(ctx, b), shared.ErrConcurrencyConflict)

		fresh, err := accounts.FindByID(ctx, sales.ID)
		require.NoError(t, err)
		fresh.ApplyPosting(decimal.Zero, decimal.NewFromInt(50))
		require.NoError(t, accounts.Update(ctx, fresh))

		final, err := accounts.FindByID(ctx, sales.ID)
		require.NoError(t, err)
		assert.True(t, final.CurrentBalance.Equal(decimal.NewFromInt(150)), final.CurrentBalance.String())
	})

	t.Run("saved copy can be saved again", func(t *testing.T) {
		a, err := accounts.FindByID(ctx, cash.ID)
		require.NoError(t, err)
		a.ApplyPosting(decimal.NewFromInt(10), decimal.Zero)
		require.NoError(t, accounts.Update(ctx, a))
		a.ApplyPosting(decimal.NewFromInt(5), decimal.Zero)
		assert.NoError(t, accounts.Update(ctx, a))
	})

	t.Run("stale category edit", func(t *testing.T) {
		c := mustCategory(t, "Knitting", finance.CategoryTypeDebit)
		require.NoError(t, categories.Create(ctx, c))

		a, err := categories.FindByID(ctx, c.ID)
		require.NoError(t, err)
		b, err := categories.FindByID(ctx, c.ID)
		require.NoError(t, err)

		a.Deactivate(nil)
		require.NoError(t, categories.Update(ctx, a))
		b.Activate(nil)
		assert.ErrorIs(t, categories.Update(ctx, b), shared.ErrConcurrencyConflict)
	})
}
