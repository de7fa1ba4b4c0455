package repositories

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/pagination"
)

// DebtFilter narrows ListDebts. A zero Limit returns every matching row.
type DebtFilter struct {
	UserID *string
	Limit  int
	After  *pagination.Cursor
}

// DebtReader defines read operations for debt rows
type DebtReader interface {
	// FindDebtByID retrieves a debt row regardless of owner.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebts lists the rows owned by ownerAccountID, newest first.
	ListDebts(ctx context.Context, ownerAccountID string, filter DebtFilter) ([]domain.Debt, error)

	// ListDebtsByReceipt lists the rows owned by ownerAccountID that originate from receiptID.
	ListDebtsByReceipt(ctx context.Context, ownerAccountID, receiptID string) ([]domain.Debt, error)

	// FindMirroredDebt finds the row of ownerAccountID about userID that mirrors
	// the given debt: same receipt when the debt comes from a receipt,
	// same correlation id otherwise.
	FindMirroredDebt(ctx context.Context, ownerAccountID, userID string, debt domain.Debt) (*domain.Debt, error)
}

// DebtWriter defines write operations for debt rows
type DebtWriter interface {
	// SaveDebt inserts a new row.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// UpdateDebt overwrites the mutable columns of an existing row owned by debt.OwnerAccountID.
	UpdateDebt(ctx context.Context, debt domain.Debt) error

	// UpsertReceiptDebt matches on (owner, receipt, user): the existing row is
	// updated in place, otherwise debt is inserted as a fresh row.
	UpsertReceiptDebt(ctx context.Context, debt domain.Debt) (*domain.Debt, error)

	// DeleteDebt removes a row and the intentions it owns. Other accounts' rows
	// and intentions are left untouched.
	DeleteDebt(ctx context.Context, debtID, ownerAccountID string) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
