package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBankTableCreditOnly(t *testing.T) {
	rows := [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"2024-03-01", "Salary Payment", "", "150.00", "5150.00"},
	}
	txns, err := parseBankTable(7, rows)
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.Equal(t, int64(7), txns[0].DocID)
	assert.Equal(t, "Salary Payment", txns[0].Description)
	require.True(t, txns[0].Amount.Valid)
	assert.True(t, txns[0].Amount.Decimal.Equal(decimal.RequireFromString("150.00")))
	require.True(t, txns[0].BalanceAfter.Valid)
	assert.True(t, txns[0].BalanceAfter.Decimal.Equal(decimal.RequireFromString("5150.00")))
	require.NotNil(t, txns[0].TxnDate)
	assert.Equal(t, "2024-03-01", txns[0].TxnDate.Format("2006-01-02"))
}

func TestParseBankTableDebitWithThousandsSeparator(t *testing.T) {
	rows := [][]string{
		{"date", "Transaction Desc", "debit amount", "credit amount"},
		{"01/03/2024", "Rent", "1,200.50", ""},
	}
	txns, err := parseBankTable(1, rows)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.True(t, txns[0].Amount.Valid)
	assert.True(t, txns[0].Amount.Decimal.Equal(decimal.RequireFromString("-1200.50")))
	assert.False(t, txns[0].BalanceAfter.Valid, "no balance column resolved")
}

func TestParseBankTableMalformedAmountsDegradeToNull(t *testing.T) {
	rows := [][]string{
		{"Date", "Description", "Debit", "Credit"},
		{"2024-03-02", "Unknown charge", "abc", "n/a"},
	}
	txns, err := parseBankTable(1, rows)
	require.NoError(t, err)
	require.Len(t, txns, 1, "row is still inserted with available fields")
	assert.False(t, txns[0].Amount.Valid)
	assert.Equal(t, "Unknown charge", txns[0].Description)
}

func TestParseBankTableMissingColumn(t *testing.T) {
	rows := [][]string{
		{"Date", "Debit", "Credit"},
		{"2024-03-02", "10.00", ""},
	}
	_, err := parseBankTable(1, rows)
	require.ErrorIs(t, err, ErrColumnMissing)
	assert.Contains(t, err.Error(), "description")
}

func TestParseBankTableHeaderOnly(t *testing.T) {
	rows := [][]string{{"Date", "Description", "Debit", "Credit"}}
	txns, err := parseBankTable(1, rows)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestParseBankTextBothPositiveTakesSmaller(t *testing.T) {
	txns := parseBankText(3, "01/03/2024 Salary Payment 5000.00 12000.00\n")
	require.Len(t, txns, 1)

	assert.Equal(t, "Salary Payment", txns[0].Description)
	require.True(t, txns[0].Amount.Valid)
	assert.True(t, txns[0].Amount.Decimal.Equal(decimal.RequireFromString("5000.00")))
	assert.False(t, txns[0].BalanceAfter.Valid, "third optional group absent")
	require.NotNil(t, txns[0].TxnDate)
	assert.Equal(t, "2024-03-01", txns[0].TxnDate.Format("2006-01-02"))
}

func TestParseBankTextOnePositive(t *testing.T) {
	txns := parseBankText(3, "15/02/2024 Utility Bill -230.75 230.75 4120.25\n")
	require.Len(t, txns, 1)
	require.True(t, txns[0].Amount.Valid)
	assert.True(t, txns[0].Amount.Decimal.Equal(decimal.RequireFromString("230.75")))
	require.True(t, txns[0].BalanceAfter.Valid)
	assert.True(t, txns[0].BalanceAfter.Decimal.Equal(decimal.RequireFromString("4120.25")))
}

func TestParseBankTextSkipsNoiseLines(t *testing.T) {
	text := "MONTHLY STATEMENT\n" +
		"Account: 1234567\n" +
		"01/03/2024 Salary Payment 5,000.00 12,000.00\n" +
		"Page 1 of 2\n"
	txns := parseBankText(3, text)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Decimal.Equal(decimal.RequireFromString("5000.00")))
}

func TestParseBankTextEmptyBlob(t *testing.T) {
	assert.Empty(t, parseBankText(3, ""))
}
