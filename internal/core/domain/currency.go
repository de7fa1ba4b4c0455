package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Number of minor-unit digits (2 for USD, 0 for JPY)
}

// DefaultPrecision is used when a currency has no explicit precision configured.
const DefaultPrecision = 2
