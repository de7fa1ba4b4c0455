package accounting_test

import (
	"testing"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDebts(t *testing.T) {
	debts := []domain.Debt{
		{UserID: "bob", CurrencyCode: "USD", Amount: decimal.RequireFromString("10.00")},
		{UserID: "bob", CurrencyCode: "USD", Amount: decimal.RequireFromString("-2.50")},
		{UserID: "bob", CurrencyCode: "EUR", Amount: decimal.RequireFromString("4")},
		{UserID: "alice", CurrencyCode: "USD", Amount: decimal.RequireFromString("-1")},
	}

	summary := accounting.SummarizeDebts(debts)

	require.Len(t, summary.Users, 2)
	assert.Equal(t, "alice", summary.Users[0].UserID)
	assert.Equal(t, "bob", summary.Users[1].UserID)
	require.Len(t, summary.Users[1].Amounts, 2)
	assert.Equal(t, "EUR", summary.Users[1].Amounts[0].CurrencyCode)
	assert.True(t, summary.Users[1].Amounts[1].Amount.Equal(decimal.RequireFromString("7.5")))

	require.Len(t, summary.Totals, 2)
	assert.Equal(t, "EUR", summary.Totals[0].CurrencyCode)
	assert.True(t, summary.Totals[1].Amount.Equal(decimal.RequireFromString("6.5")))
}

func TestSummarizeDebts_Empty(t *testing.T) {
	summary := accounting.SummarizeDebts(nil)

	assert.NotNil(t, summary.Users)
	assert.Empty(t, summary.Users)
	assert.Empty(t, summary.Totals)
}
