package services

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// SyncStatusSvc derives sync status for a debt.
type SyncStatusSvc interface {
	// ResolveStatus computes the status of the caller's debt.
	ResolveStatus(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error)

	// StatusOf computes the status of an already loaded own debt.
	StatusOf(ctx context.Context, debt domain.Debt) (*domain.SyncStatus, error)

	// FindCounterpartDebt returns the mirrored row of debt in the
	// counterparty's account, or nil when there is none or the parties are
	// not mutually connected.
	FindCounterpartDebt(ctx context.Context, debt domain.Debt) (*domain.Debt, error)
}

// SyncIntentionSvc executes the reconciliation transitions.
type SyncIntentionSvc interface {
	// ProposeSync asks the counterparty to take over the caller's values.
	// lockedTimestamp is the value the caller last saw on its own debt.
	ProposeSync(ctx context.Context, accountID, debtID string, lockedTimestamp time.Time) (time.Time, error)

	// AcceptSync applies the intention proposed on debtID (the proposer's
	// debt) to the caller's mirrored row.
	AcceptSync(ctx context.Context, accountID, debtID string, lockedTimestamp time.Time) (*domain.Debt, error)

	// RejectSync discards an intention proposed to the caller.
	RejectSync(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error)

	// CancelSync withdraws the caller's own intention.
	CancelSync(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error)

	ListIntentions(ctx context.Context, accountID string) (*domain.SyncIntentions, error)
}

// SyncMaintenanceSvc holds operator tasks.
type SyncMaintenanceSvc interface {
	// SweepDanglingIntentions removes intentions that can no longer be acted on.
	SweepDanglingIntentions(ctx context.Context) (int64, error)
}

// SyncSvcFacade combines all sync-related service interfaces
type SyncSvcFacade interface {
	SyncStatusSvc
	SyncIntentionSvc
	SyncMaintenanceSvc
}
