package domain

import "github.com/shopspring/decimal"

// CurrencyAmount is a sum of debts in one currency.
type CurrencyAmount struct {
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
}

// UserDebtSummary aggregates all debts with one counterparty.
type UserDebtSummary struct {
	UserID  string           `json:"userID"`
	Amounts []CurrencyAmount `json:"amounts"`
}

// DebtsSummary is the per-account aggregate across counterparties.
type DebtsSummary struct {
	Users  []UserDebtSummary `json:"users"`
	Totals []CurrencyAmount  `json:"totals"`
}
