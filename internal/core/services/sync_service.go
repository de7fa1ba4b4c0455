package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/utils"
	"github.com/google/uuid"
)

// syncService implements the reconciliation protocol between the two
// independently owned copies of a debt. It never writes to both accounts in
// one step except when accepting, where the claim on the intention and the
// overwrite of the accepting row share a store transaction.
type syncService struct {
	BaseService
	debtRepo      portsrepo.DebtRepositoryFacade
	intentionRepo portsrepo.SyncIntentionRepositoryFacade
	users         portssvc.CounterpartResolverSvc
}

// SyncServiceOption configures a syncService.
type SyncServiceOption func(*syncService)

// WithSyncTracker sends sync transition events to tracker.
func WithSyncTracker(tracker utils.EventTracker) SyncServiceOption {
	return func(s *syncService) {
		s.Tracker = tracker
	}
}

// NewSyncService creates a new sync service.
func NewSyncService(
	debtRepo portsrepo.DebtRepositoryFacade,
	intentionRepo portsrepo.SyncIntentionRepositoryFacade,
	users portssvc.CounterpartResolverSvc,
	opts ...SyncServiceOption,
) portssvc.SyncSvcFacade {
	s := &syncService{debtRepo: debtRepo, intentionRepo: intentionRepo, users: users}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// loadOwnDebt hides rows of other accounts behind ErrNotFound.
func (s *syncService) loadOwnDebt(ctx context.Context, accountID, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.OwnerAccountID != accountID {
		return nil, fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)
	}
	return debt, nil
}

// findIntention returns nil when debtID has no intention.
func (s *syncService) findIntention(ctx context.Context, debtID string) (*domain.SyncIntention, error) {
	intention, err := s.intentionRepo.FindIntentionByDebtID(ctx, debtID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return intention, err
}

// counterpartOf resolves where the mirror of debt lives. A nil result means
// the parties are not mutually connected.
func (s *syncService) counterpartOf(ctx context.Context, debt domain.Debt) (*domain.Counterpart, error) {
	cp, err := s.users.ResolveCounterpart(ctx, debt.OwnerAccountID, debt.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPreconditionFailed) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cp, nil
}

func (s *syncService) mirrorAt(ctx context.Context, cp domain.Counterpart, debt domain.Debt) (*domain.Debt, error) {
	mirror, err := s.debtRepo.FindMirroredDebt(ctx, cp.AccountID, cp.UserID, debt)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return mirror, err
}

func (s *syncService) FindCounterpartDebt(ctx context.Context, debt domain.Debt) (*domain.Debt, error) {
	cp, err := s.counterpartOf(ctx, debt)
	if err != nil || cp == nil {
		return nil, err
	}
	return s.mirrorAt(ctx, *cp, debt)
}

func (s *syncService) StatusOf(ctx context.Context, debt domain.Debt) (*domain.SyncStatus, error) {
	if !debt.IsLocked() {
		return &domain.SyncStatus{Type: domain.SyncStatusNoSync}, nil
	}
	cp, err := s.counterpartOf(ctx, debt)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve counterpart", slog.String("debt_id", debt.DebtID))
		return nil, err
	}
	if cp == nil {
		return &domain.SyncStatus{Type: domain.SyncStatusNoSync}, nil
	}
	view := domain.SyncView{Own: debt, Connected: true}
	if view.Counterpart, err = s.mirrorAt(ctx, *cp, debt); err != nil {
		return nil, err
	}
	if view.OwnIntention, err = s.findIntention(ctx, debt.DebtID); err != nil {
		return nil, err
	}
	if view.Counterpart != nil {
		if view.RemoteIntention, err = s.findIntention(ctx, view.Counterpart.DebtID); err != nil {
			return nil, err
		}
	}
	status := domain.ResolveSyncStatus(view)
	return &status, nil
}

func (s *syncService) ResolveStatus(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	return s.StatusOf(ctx, *debt)
}

func (s *syncService) ProposeSync(ctx context.Context, accountID, debtID string, lockedTimestamp time.Time) (time.Time, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return time.Time{}, err
	}
	if !debt.IsLocked() {
		return time.Time{}, fmt.Errorf("debt must be locked before proposing a sync: %w", apperrors.ErrPreconditionFailed)
	}
	if !debt.LockedTimestamp.Equal(lockedTimestamp) {
		return time.Time{}, fmt.Errorf("debt was changed since it was last read: %w", apperrors.ErrPreconditionFailed)
	}

	cp, err := s.users.ResolveCounterpart(ctx, accountID, debt.UserID)
	if err != nil {
		return time.Time{}, err
	}

	own, err := s.findIntention(ctx, debtID)
	if err != nil {
		return time.Time{}, err
	}
	if own != nil {
		return time.Time{}, fmt.Errorf("a sync intention for this debt is already pending: %w", apperrors.ErrConflict)
	}

	mirror, err := s.mirrorAt(ctx, *cp, *debt)
	if err != nil {
		return time.Time{}, err
	}
	if mirror != nil {
		remote, err := s.findIntention(ctx, mirror.DebtID)
		if err != nil {
			return time.Time{}, err
		}
		if remote != nil {
			return time.Time{}, fmt.Errorf("the counterparty already proposed a sync, accept or reject it first: %w", apperrors.ErrConflict)
		}
		if domain.SameLock(debt.LockedTimestamp, mirror.LockedTimestamp) {
			return time.Time{}, fmt.Errorf("debt is already in sync: %w", apperrors.ErrBadRequest)
		}
	}

	intention := domain.SyncIntention{
		DebtID:          debtID,
		OwnerAccountID:  accountID,
		LockedTimestamp: *debt.LockedTimestamp,
		AuditFields:     domain.AuditFields{CreatedAt: now()},
	}
	if err := s.intentionRepo.SaveIntention(ctx, intention); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return time.Time{}, fmt.Errorf("a sync intention for this debt is already pending: %w", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to save sync intention", slog.String("debt_id", debtID))
		return time.Time{}, err
	}

	s.LogInfo(ctx, "Sync proposed", slog.String("debt_id", debtID), slog.Time("locked_timestamp", intention.LockedTimestamp))
	s.Track(accountID, utils.EventSyncProposed, map[string]any{"debt_id": debtID})
	return intention.LockedTimestamp, nil
}

// inboundIntention loads the intention on the proposer's debt and checks
// that accountID is the account it is addressed to.
func (s *syncService) inboundIntention(ctx context.Context, accountID, debtID string) (*domain.Debt, *domain.SyncIntention, *domain.Counterpart, error) {
	notFound := fmt.Errorf("no sync intention for debt %s: %w", debtID, apperrors.ErrNotFound)

	proposer, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, nil, notFound
		}
		return nil, nil, nil, err
	}
	intention, err := s.findIntention(ctx, debtID)
	if err != nil {
		return nil, nil, nil, err
	}
	if intention == nil {
		return nil, nil, nil, notFound
	}
	cp, err := s.counterpartOf(ctx, *proposer)
	if err != nil {
		return nil, nil, nil, err
	}
	if cp == nil || cp.AccountID != accountID {
		return nil, nil, nil, notFound
	}
	return proposer, intention, cp, nil
}

func (s *syncService) AcceptSync(ctx context.Context, accountID, debtID string, lockedTimestamp time.Time) (*domain.Debt, error) {
	proposer, intention, cp, err := s.inboundIntention(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	if !intention.LockedTimestamp.Equal(lockedTimestamp) {
		return nil, fmt.Errorf("sync intention has been superseded: %w", apperrors.ErrNotFound)
	}

	mirror, err := s.mirrorAt(ctx, *cp, *proposer)
	if err != nil {
		return nil, err
	}

	var target domain.Debt
	if mirror != nil {
		target = *mirror
	} else {
		target = domain.Debt{
			DebtID:         uuid.NewString(),
			OwnerAccountID: accountID,
			UserID:         cp.UserID,
			AuditFields:    domain.AuditFields{CreatedAt: now()},
		}
	}
	// Everything synced is overwritten except the note, which stays private
	// to each owner, so the accepting side keeps its own.
	target.CorrelationID = proposer.CorrelationID
	target.ReceiptID = proposer.ReceiptID
	target.Amount = proposer.Amount.Neg()
	target.CurrencyCode = proposer.CurrencyCode
	target.Timestamp = proposer.Timestamp
	ts := intention.LockedTimestamp
	target.LockedTimestamp = &ts

	updated, err := s.intentionRepo.AcceptIntention(ctx, debtID, lockedTimestamp, target)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to accept sync intention", slog.String("debt_id", debtID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sync accepted", slog.String("debt_id", debtID), slog.String("accepted_debt_id", updated.DebtID))
	s.Track(accountID, utils.EventSyncAccepted, map[string]any{"debt_id": updated.DebtID})
	return updated, nil
}

func (s *syncService) RejectSync(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error) {
	proposer, _, cp, err := s.inboundIntention(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	if err := s.intentionRepo.DeleteIntention(ctx, debtID, proposer.OwnerAccountID); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Sync rejected", slog.String("debt_id", debtID))
	s.Track(accountID, utils.EventSyncRejected, map[string]any{"debt_id": debtID})

	mirror, err := s.mirrorAt(ctx, *cp, *proposer)
	if err != nil {
		return nil, err
	}
	if mirror == nil {
		return &domain.SyncStatus{Type: domain.SyncStatusNoSync}, nil
	}
	return s.StatusOf(ctx, *mirror)
}

func (s *syncService) CancelSync(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	if err := s.intentionRepo.DeleteIntention(ctx, debtID, accountID); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Sync cancelled", slog.String("debt_id", debtID))
	s.Track(accountID, utils.EventSyncCancelled, map[string]any{"debt_id": debtID})
	return s.StatusOf(ctx, *debt)
}

func (s *syncService) ListIntentions(ctx context.Context, accountID string) (*domain.SyncIntentions, error) {
	outbound, err := s.intentionRepo.ListOutboundIntentions(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list outbound intentions")
		return nil, err
	}
	inbound, err := s.intentionRepo.ListInboundIntentions(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inbound intentions")
		return nil, err
	}
	if outbound == nil {
		outbound = []domain.SyncIntention{}
	}
	if inbound == nil {
		inbound = []domain.SyncIntention{}
	}
	return &domain.SyncIntentions{Inbound: inbound, Outbound: outbound}, nil
}

func (s *syncService) SweepDanglingIntentions(ctx context.Context) (int64, error) {
	removed, err := s.intentionRepo.SweepDanglingIntentions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sweep dangling intentions")
		return 0, err
	}
	s.LogInfo(ctx, "Swept dangling intentions", slog.Int64("removed", removed))
	return removed, nil
}
