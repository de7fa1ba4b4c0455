package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// SyncIntentionReader defines read operations for sync intentions
type SyncIntentionReader interface {
	// FindIntentionByDebtID returns the intention proposed for debtID, if any.
	FindIntentionByDebtID(ctx context.Context, debtID string) (*domain.SyncIntention, error)

	// ListOutboundIntentions lists the intentions proposed by accountID.
	ListOutboundIntentions(ctx context.Context, accountID string) ([]domain.SyncIntention, error)

	// ListInboundIntentions lists intentions proposed by mutually connected
	// accounts about debts whose counterparty is accountID.
	ListInboundIntentions(ctx context.Context, accountID string) ([]domain.SyncIntention, error)
}

// SyncIntentionWriter defines write operations for sync intentions
type SyncIntentionWriter interface {
	// SaveIntention inserts an intention. Returns apperrors.ErrDuplicate when
	// the debt already has one.
	SaveIntention(ctx context.Context, intention domain.SyncIntention) error

	// DeleteIntention removes the intention on debtID proposed by ownerAccountID.
	// Returns apperrors.ErrNotFound when no such row exists.
	DeleteIntention(ctx context.Context, debtID, ownerAccountID string) error

	// AcceptIntention atomically claims the intention keyed on
	// (debtID, lockedTimestamp) and writes target, inserting it when
	// target.DebtID does not exist yet. Returns apperrors.ErrNotFound when
	// the intention was already consumed or has moved on.
	AcceptIntention(ctx context.Context, debtID string, lockedTimestamp time.Time, target domain.Debt) (*domain.Debt, error)

	// SweepDanglingIntentions deletes intentions whose counterparty is no
	// longer mutually connected or whose debt is no longer locked at the
	// proposed timestamp, and returns how many rows were removed.
	SweepDanglingIntentions(ctx context.Context) (int64, error)
}

// SyncIntentionRepositoryFacade combines all intention-related repository interfaces
type SyncIntentionRepositoryFacade interface {
	SyncIntentionReader
	SyncIntentionWriter
}
