package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountKinds(t *testing.T) {
	cases := []struct {
		code, name string
		typ        AccountType
		cash, bank bool
	}{
		{"1001", "Petty Float", AccountTypeAsset, true, false},
		{"1000", "Cash on Hand", AccountTypeAsset, true, false},
		{"1105", "Cash Drawer", AccountTypeAsset, true, false},
		{"1010", "Current Account", AccountTypeAsset, false, true},
		{"1120", "Dutch Bangla Bank", AccountTypeAsset, false, true},
		{"1100", "Cash at Bank", AccountTypeAsset, false, true},
		{"1200", "Fabric Stock", AccountTypeAsset, false, false},
		{"4001", "Cash Sales", AccountTypeRevenue, false, false},
	}
	for _, tc := range cases {
		a, err := NewChartOfAccount(tc.code, tc.name, tc.typ, "")
		require.NoError(t, err)
		assert.Equal(t, tc.cash, a.IsCashAccount(), tc.name)
		assert.Equal(t, tc.bank, a.IsBankAccount(), tc.name)
	}
}

func TestNaturalBalance(t *testing.T) {
	assert.True(t, d("70").Equal(NaturalBalance(AccountTypeAsset, d("100"), d("30"))))
	assert.True(t, d("70").Equal(NaturalBalance(AccountTypeExpense, d("100"), d("30"))))
	assert.True(t, d("-70").Equal(NaturalBalance(AccountTypeRevenue, d("100"), d("30"))))
	assert.True(t, d("30").Equal(NaturalBalance(AccountTypeLiability, d("0"), d("30"))))
}

func TestSummarizeBalances(t *testing.T) {
	cash, _ := NewChartOfAccount("1001", "Cash", AccountTypeAsset, "")
	bank, _ := NewChartOfAccount("1010", "City Bank", AccountTypeAsset, "")
	loan, _ := NewChartOfAccount("2001", "Loan A/C Chairman", AccountTypeLiability, "")
	sales, _ := NewChartOfAccount("4001", "Received: Urbo ltd", AccountTypeRevenue, "")
	fabric, _ := NewChartOfAccount("5001", "Fabric- Purchase", AccountTypeExpense, "")
	idle, _ := NewChartOfAccount("3001", "Capital", AccountTypeEquity, "")
	accounts := []*ChartOfAccount{cash, bank, loan, sales, fabric, idle}

	movements := []AccountMovement{
		{AccountID: cash.ID, TotalDebit: d("261080"), TotalCredit: d("2400")},
		{AccountID: bank.ID, TotalDebit: d("50000"), TotalCredit: d("0")},
		{AccountID: loan.ID, TotalDebit: d("0"), TotalCredit: d("261080")},
		{AccountID: sales.ID, TotalDebit: d("0"), TotalCredit: d("50000")},
		{AccountID: fabric.ID, TotalDebit: d("2400"), TotalCredit: d("0")},
	}
	asOf := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	s := SummarizeBalances(accounts, movements, asOf, now)

	assert.True(t, d("258680").Equal(s.CashOnHand))
	assert.True(t, d("50000").Equal(s.BankBalance))
	assert.True(t, d("308680").Equal(s.TotalAssets))
	assert.True(t, d("261080").Equal(s.TotalLiabilities))
	assert.True(t, s.TotalEquity.IsZero())
	assert.True(t, d("47600").Equal(s.NetIncome))
	assert.Len(t, s.KeyAccounts, 5, "zero balances are left out")
	assert.Equal(t, BalanceCurrency, s.Currency)
	assert.Equal(t, now, s.LastUpdated)
	assert.False(t, s.IsFromCache)
}

func TestGroupBalances(t *testing.T) {
	cash, _ := NewChartOfAccount("1001", "Cash", AccountTypeAsset, "")
	drawer, _ := NewChartOfAccount("1002", "Cash Drawer", AccountTypeAsset, "")
	bank, _ := NewChartOfAccount("1010", "City Bank", AccountTypeAsset, "")

	group := GroupBalances([]*ChartOfAccount{cash, drawer, bank},
		[]AccountMovement{{AccountID: cash.ID, TotalDebit: d("500"), TotalCredit: d("120")}},
		time.Now(), (*ChartOfAccount).IsCashAccount)

	require.Len(t, group.Accounts, 2)
	assert.True(t, d("380").Equal(group.Accounts[0].Balance))
	assert.True(t, group.Accounts[1].Balance.IsZero())
	assert.True(t, d("380").Equal(group.Total))
}
