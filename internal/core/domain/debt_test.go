package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDebt_ForeignView(t *testing.T) {
	d := domain.Debt{
		DebtID:       "d1",
		Amount:       decimal.RequireFromString("12.50"),
		CurrencyCode: "USD",
		Note:         "private",
	}

	view := d.ForeignView()

	assert.True(t, view.Amount.Equal(decimal.RequireFromString("-12.50")))
	assert.Empty(t, view.Note)
	assert.Equal(t, "private", d.Note, "original must not be modified")
}

func TestDebt_MirrorsValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	own := domain.Debt{Amount: decimal.NewFromInt(5), CurrencyCode: "USD", Timestamp: ts}

	tests := []struct {
		name  string
		other domain.Debt
		want  bool
	}{
		{"exact mirror", domain.Debt{Amount: decimal.NewFromInt(-5), CurrencyCode: "USD", Timestamp: ts}, true},
		{"same sign", domain.Debt{Amount: decimal.NewFromInt(5), CurrencyCode: "USD", Timestamp: ts}, false},
		{"other currency", domain.Debt{Amount: decimal.NewFromInt(-5), CurrencyCode: "EUR", Timestamp: ts}, false},
		{"other date", domain.Debt{Amount: decimal.NewFromInt(-5), CurrencyCode: "USD", Timestamp: ts.Add(time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, own.MirrorsValue(tt.other))
		})
	}
}
