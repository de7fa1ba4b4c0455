package accounting

import (
	"sort"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummarizeDebts sums debts per counterparty and currency, plus overall
// totals per currency. Amounts in different currencies are never mixed.
// Output is sorted by user ID and currency code.
func SummarizeDebts(debts []domain.Debt) domain.DebtsSummary {
	perUser := make(map[string]map[string]decimal.Decimal)
	totals := make(map[string]decimal.Decimal)

	for _, d := range debts {
		if _, ok := perUser[d.UserID]; !ok {
			perUser[d.UserID] = make(map[string]decimal.Decimal)
		}
		perUser[d.UserID][d.CurrencyCode] = perUser[d.UserID][d.CurrencyCode].Add(d.Amount)
		totals[d.CurrencyCode] = totals[d.CurrencyCode].Add(d.Amount)
	}

	summary := domain.DebtsSummary{
		Users:  make([]domain.UserDebtSummary, 0, len(perUser)),
		Totals: toCurrencyAmounts(totals),
	}
	for userID, amounts := range perUser {
		summary.Users = append(summary.Users, domain.UserDebtSummary{
			UserID:  userID,
			Amounts: toCurrencyAmounts(amounts),
		})
	}
	sort.Slice(summary.Users, func(i, j int) bool { return summary.Users[i].UserID < summary.Users[j].UserID })
	return summary
}

func toCurrencyAmounts(m map[string]decimal.Decimal) []domain.CurrencyAmount {
	out := make([]domain.CurrencyAmount, 0, len(m))
	for code, amount := range m {
		out = append(out, domain.CurrencyAmount{CurrencyCode: code, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out
}
