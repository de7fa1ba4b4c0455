package services

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/dto"
)

// ReceiptReaderSvc defines read operations for receipts
type ReceiptReaderSvc interface {
	GetReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, accountID string) ([]domain.Receipt, error)
}

// ReceiptWriterSvc defines write operations for receipts
type ReceiptWriterSvc interface {
	CreateReceipt(ctx context.Context, accountID string, req dto.CreateReceiptRequest) (*domain.Receipt, error)
	AddItem(ctx context.Context, accountID, receiptID string, req dto.AddReceiptItemRequest) (*domain.Receipt, error)
	LockReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error)
	UnlockReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error)
}

// ReceiptDebtSvc turns a locked receipt into debts.
type ReceiptDebtSvc interface {
	// PropagateDebts allocates the receipt and upserts one owner-side row
	// per participant plus a mirrored row for every mutually connected one.
	PropagateDebts(ctx context.Context, accountID, receiptID string, lockedTimestamp time.Time) ([]domain.PropagatedDebt, error)

	// UpdateReceiptDebt re-runs the allocation for a single participant.
	UpdateReceiptDebt(ctx context.Context, accountID, receiptID, userID string) (*domain.PropagatedDebt, error)
}

// ReceiptSvcFacade combines all receipt-related service interfaces
type ReceiptSvcFacade interface {
	ReceiptReaderSvc
	ReceiptWriterSvc
	ReceiptDebtSvc
}
