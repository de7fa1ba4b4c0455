package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/dto"
)

// DebtReaderSvc defines read operations for debts
type DebtReaderSvc interface {
	// GetDebt returns the caller's own row with its sync status.
	GetDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error)

	// GetForeignDebt returns the counterparty's row as the caller sees it:
	// amount negated and note stripped.
	GetForeignDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error)

	// ListDebts returns one page of the caller's debts and the token of the
	// next page, if any.
	ListDebts(ctx context.Context, accountID string, params dto.ListDebtsParams) ([]domain.Debt, *string, error)

	// GetDebtsByReceiptID returns the caller's rows for the receipt or, when
	// the caller has none, the foreign view of the receipt owner's row about
	// the caller.
	GetDebtsByReceiptID(ctx context.Context, accountID, receiptID string) ([]domain.DebtView, error)

	// Summary aggregates the caller's debts per user and currency.
	Summary(ctx context.Context, accountID string) (*domain.DebtsSummary, error)
}

// DebtWriterSvc defines write operations for debts
type DebtWriterSvc interface {
	CreateDebt(ctx context.Context, accountID string, req dto.CreateDebtRequest) (*domain.Debt, error)

	// UpdateDebt edits an unlocked debt. Locked debts only accept note edits.
	UpdateDebt(ctx context.Context, accountID, debtID string, req dto.UpdateDebtRequest) (*domain.DebtView, error)

	DeleteDebt(ctx context.Context, accountID, debtID string) error
}

// DebtLockSvc moves debts in and out of sync comparison.
type DebtLockSvc interface {
	LockDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error)
	UnlockDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error)
}

// DebtSvcFacade combines all debt-related service interfaces
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtWriterSvc
	DebtLockSvc
}
