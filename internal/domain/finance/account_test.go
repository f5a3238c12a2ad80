package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChartOfAccount(t *testing.T) {
	t.Run("creates active account", func(t *testing.T) {
		a, err := NewChartOfAccount(" 1001 ", " Cash in Hand ", AccountTypeAsset, "")

		require.NoError(t, err)
		assert.Equal(t, "1001", a.AccountCode)
		assert.Equal(t, "Cash in Hand", a.AccountName)
		assert.True(t, a.IsActive)
		assert.True(t, a.CanPost())
		assert.True(t, a.CurrentBalance.IsZero())
	})

	t.Run("validates fields", func(t *testing.T) {
		_, err := NewChartOfAccount("", "Cash", AccountTypeAsset, "")
		hasCode(t, err, "INVALID_ACCOUNT_CODE")

		_, err = NewChartOfAccount("12345678901", "Cash", AccountTypeAsset, "")
		hasCode(t, err, "INVALID_ACCOUNT_CODE")

		_, err = NewChartOfAccount("1001", "  ", AccountTypeAsset, "")
		hasCode(t, err, "INVALID_ACCOUNT_NAME")

		_, err = NewChartOfAccount("1001", "Cash", "Goodwill", "")
		hasCode(t, err, "INVALID_ACCOUNT_TYPE")
	})
}

func TestChartOfAccount_SetParent(t *testing.T) {
	parent, _ := NewChartOfAccount("1000", "Current Assets", AccountTypeAsset, "")
	child, _ := NewChartOfAccount("1001", "Cash", AccountTypeAsset, "")
	expense, _ := NewChartOfAccount("5001", "Rent", AccountTypeExpense, "")

	require.NoError(t, child.SetParent(parent))
	require.NotNil(t, child.ParentAccountID)
	assert.Equal(t, parent.ID, *child.ParentAccountID)

	hasCode(t, expense.SetParent(parent), "ACCOUNT_TYPE_MISMATCH")
	hasCode(t, child.SetParent(child), "INVALID_PARENT_ACCOUNT")
	hasCode(t, child.Update("1001", "Cash", AccountTypeLiability, ""), "ACCOUNT_TYPE_MISMATCH")

	parent.Deactivate()
	hasCode(t, expense.SetParent(parent), "ACCOUNT_TYPE_MISMATCH")
	other, _ := NewChartOfAccount("1002", "Bank", AccountTypeAsset, "")
	hasCode(t, other.SetParent(parent), "INVALID_PARENT_ACCOUNT")

	require.NoError(t, child.SetParent(nil))
	assert.Nil(t, child.ParentAccountID)
}

func TestChartOfAccount_Balances(t *testing.T) {
	a, _ := NewChartOfAccount("4001", "Sales", AccountTypeRevenue, "")

	a.SetOpeningBalance(decimal.NewFromInt(1000))
	a.ApplyPosting(decimal.NewFromInt(200), decimal.NewFromInt(50))

	assert.True(t, a.OpeningBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.CurrentBalance.Equal(decimal.NewFromInt(850)))

	a.SetOpeningBalance(decimal.NewFromInt(500))
	assert.True(t, a.CurrentBalance.Equal(decimal.NewFromInt(350)))
}

func TestNextAccountCode(t *testing.T) {
	tests := []struct {
		name     string
		typ      AccountType
		existing []string
		want     string
	}{
		{"first asset", AccountTypeAsset, nil, "1001"},
		{"first expense", AccountTypeExpense, []string{}, "5001"},
		{"follows highest", AccountTypeLiability, []string{"2001", "2007", "2003"}, "2008"},
		{"ignores non numeric", AccountTypeEquity, []string{"3ABC", "3002"}, "3003"},
		{"ignores other ranges", AccountTypeAsset, []string{"10001", "1004"}, "1005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextAccountCode(tt.typ, tt.existing))
		})
	}
}

func TestParseAccountType(t *testing.T) {
	at, err := ParseAccountType("revenue")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeRevenue, at)
	assert.Equal(t, "Income", at.CategoryName())
	assert.Equal(t, "4", at.CodePrefix())

	at, err = ParseAccountType("1")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeLiability, at)

	_, err = ParseAccountType("7")
	assert.Error(t, err)
}
