package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func tx(debit, credit string) TransactionData {
	return TransactionData{
		TransactionID: uuid.New(),
		DebitAmount:   d(debit),
		CreditAmount:  d(credit),
		Description:   "line",
	}
}

func TestCalculateTrialBalance(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		calc, err := CalculateTrialBalance(nil)

		require.NoError(t, err)
		assert.Equal(t, "0 = 0", calc.Expression)
		assert.True(t, calc.FinalBalance.IsZero())
		assert.Equal(t, 0, calc.TransactionCount)
	})

	t.Run("mixed credits and debits", func(t *testing.T) {
		calc, err := CalculateTrialBalance([]TransactionData{
			tx("0", "1000"),
			tx("1100", "0"),
			tx("0", "11000"),
			tx("1000", "0"),
		})

		require.NoError(t, err)
		assert.Equal(t, "1000 - 1100 + 11000 - 1000 = 9900", calc.Expression)
		assert.True(t, calc.FinalBalance.Equal(d("9900")))
		assert.True(t, calc.TotalDebits.Equal(d("2100")))
		assert.True(t, calc.TotalCredits.Equal(d("12000")))
		assert.Equal(t, 4, calc.TransactionCount)
	})

	t.Run("first term keeps its sign", func(t *testing.T) {
		calc, err := CalculateTrialBalance([]TransactionData{tx("1100", "0"), tx("0", "100")})

		require.NoError(t, err)
		assert.Equal(t, "-1100 + 100 = -1000", calc.Expression)
	})

	t.Run("debit precedes credit within a transaction", func(t *testing.T) {
		calc, err := CalculateTrialBalance([]TransactionData{tx("50", "70")})

		require.NoError(t, err)
		assert.Equal(t, "-50 + 70 = 20", calc.Expression)
		assert.Equal(t, 2, calc.TransactionCount)
	})

	t.Run("zero rows contribute nothing", func(t *testing.T) {
		calc, err := CalculateTrialBalance([]TransactionData{tx("0", "0")})

		require.NoError(t, err)
		assert.Equal(t, "0 = 0", calc.Expression)
	})

	t.Run("elides after ten terms", func(t *testing.T) {
		rows := make([]TransactionData, 0, 12)
		for i := 0; i < 12; i++ {
			rows = append(rows, tx("0", "1"))
		}

		calc, err := CalculateTrialBalance(rows)

		require.NoError(t, err)
		assert.Equal(t, "1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + ... (2 more) = 12", calc.Expression)
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		calc, err := CalculateTrialBalance([]TransactionData{tx("0", "10.5"), tx("2.5", "0")})

		require.NoError(t, err)
		assert.Equal(t, "11 - 3 = 8", calc.Expression)
		assert.True(t, calc.FinalBalance.Equal(d("8")))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := CalculateTrialBalance([]TransactionData{tx("-5", "0")})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})
}

func TestCreateCalculationBreakdown(t *testing.T) {
	first, second := tx("0", "1000"), tx("300", "200")
	first.Description = "Fabric sale"
	second.Description = "Dying bill"

	breakdown, err := CreateCalculationBreakdown([]TransactionData{first, second})

	require.NoError(t, err)
	require.Len(t, breakdown.Transactions, 3)
	assert.Equal(t, "Credit: Fabric sale", breakdown.Transactions[0].Description)
	assert.Equal(t, "Debit: Dying bill", breakdown.Transactions[1].Description)
	assert.Equal(t, "Debit", breakdown.Transactions[1].Type)
	assert.True(t, breakdown.Transactions[1].Amount.Equal(d("-300")))
	assert.True(t, breakdown.Transactions[1].RunningTotal.Equal(d("700")))
	assert.True(t, breakdown.Transactions[2].RunningTotal.Equal(d("900")))
	assert.Equal(t, second.TransactionID, breakdown.Transactions[2].TransactionID)

	assert.True(t, breakdown.Summary.FinalBalance.Equal(d("900")))
	assert.True(t, breakdown.Summary.TotalDebits.Equal(d("300")))
	assert.True(t, breakdown.Summary.TotalCredits.Equal(d("1200")))
	assert.Equal(t, 3, breakdown.Summary.TransactionCount)

	_, err = CreateCalculationBreakdown([]TransactionData{tx("0", "-1")})
	assert.Error(t, err)
}
