package repositories

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces.
// Currencies are seeded by migrations, so there is no writer.
type CurrencyRepositoryFacade interface {
	CurrencyReader
}
