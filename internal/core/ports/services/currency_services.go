package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyValidatorSvc validates currency codes used by debts and receipts.
type CurrencyValidatorSvc interface {
	// Precision returns the minor-unit digits of a known currency.
	// Unknown codes fail with apperrors.ErrBadRequest.
	Precision(ctx context.Context, currencyCode string) (int32, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyValidatorSvc
}
