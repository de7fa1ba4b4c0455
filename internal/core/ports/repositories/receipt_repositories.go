package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// ReceiptReader defines read operations for receipts
type ReceiptReader interface {
	// FindReceiptByID retrieves a receipt with its items and consumers.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceipts lists the receipts owned by ownerAccountID, without items.
	ListReceipts(ctx context.Context, ownerAccountID string) ([]domain.Receipt, error)
}

// ReceiptWriter defines write operations for receipts
type ReceiptWriter interface {
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// SaveReceiptItem inserts an item and its consumer weights in one transaction.
	SaveReceiptItem(ctx context.Context, item domain.ReceiptItem) error

	// UpdateReceiptLock sets (or clears with nil) the locked timestamp.
	UpdateReceiptLock(ctx context.Context, receiptID, ownerAccountID string, lockedTimestamp *time.Time) error
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}

// ReceiptRepositoryWithTx extends ReceiptRepositoryFacade with transaction capabilities
type ReceiptRepositoryWithTx interface {
	ReceiptRepositoryFacade
	TransactionManager
}
