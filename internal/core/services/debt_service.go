package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/utils"
	"github.com/SscSPs/splitledger/internal/utils/accounting"
	"github.com/SscSPs/splitledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type debtService struct {
	BaseService
	debtRepo      portsrepo.DebtRepositoryFacade
	intentionRepo portsrepo.SyncIntentionRepositoryFacade
	receiptRepo   portsrepo.ReceiptReader
	currencies    portssvc.CurrencyValidatorSvc
	users         portssvc.UserSvcFacade
	sync          portssvc.SyncStatusSvc
}

// DebtServiceOption configures a debtService.
type DebtServiceOption func(*debtService)

// WithDebtTracker sends lock events to tracker.
func WithDebtTracker(tracker utils.EventTracker) DebtServiceOption {
	return func(s *debtService) {
		s.Tracker = tracker
	}
}

// NewDebtService creates a new debt service.
func NewDebtService(
	debtRepo portsrepo.DebtRepositoryFacade,
	intentionRepo portsrepo.SyncIntentionRepositoryFacade,
	receiptRepo portsrepo.ReceiptReader,
	currencies portssvc.CurrencyValidatorSvc,
	users portssvc.UserSvcFacade,
	sync portssvc.SyncStatusSvc,
	opts ...DebtServiceOption,
) portssvc.DebtSvcFacade {
	s := &debtService{
		debtRepo:      debtRepo,
		intentionRepo: intentionRepo,
		receiptRepo:   receiptRepo,
		currencies:    currencies,
		users:         users,
		sync:          sync,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

func (s *debtService) loadOwnDebt(ctx context.Context, accountID, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.OwnerAccountID != accountID {
		return nil, fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)
	}
	return debt, nil
}

func (s *debtService) ownView(ctx context.Context, debt domain.Debt) (*domain.DebtView, error) {
	status, err := s.sync.StatusOf(ctx, debt)
	if err != nil {
		return nil, err
	}
	return &domain.DebtView{Debt: debt, Status: status}, nil
}

// validateAmount checks that amount is a non-zero value representable in
// the minor unit of currencyCode.
func (s *debtService) validateAmount(ctx context.Context, amount decimal.Decimal, currencyCode string) error {
	precision, err := s.currencies.Precision(ctx, currencyCode)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return fmt.Errorf("amount must not be zero: %w", apperrors.ErrBadRequest)
	}
	if !amount.Equal(amount.Round(precision)) {
		return fmt.Errorf("amount has more than %d decimal places for %s: %w", precision, currencyCode, apperrors.ErrBadRequest)
	}
	return nil
}

func (s *debtService) GetDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	return s.ownView(ctx, *debt)
}

func (s *debtService) GetForeignDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	notFound := fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.OwnerAccountID == accountID {
		return nil, notFound
	}
	cp, err := s.users.ResolveCounterpart(ctx, debt.OwnerAccountID, debt.UserID)
	if err != nil || cp.AccountID != accountID {
		return nil, notFound
	}
	return foreignView(*debt, cp.UserID), nil
}

// foreignView presents debt to its counterparty, whose contact for the
// owner is userID.
func foreignView(debt domain.Debt, userID string) *domain.DebtView {
	view := debt.ForeignView()
	view.UserID = userID
	return &domain.DebtView{Debt: view, Foreign: true}
}

func (s *debtService) ListDebts(ctx context.Context, accountID string, params dto.ListDebtsParams) ([]domain.Debt, *string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	filter := portsrepo.DebtFilter{Limit: limit + 1}
	if params.UserID != "" {
		filter.UserID = &params.UserID
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
		}
		filter.After = cursor
	}

	debts, err := s.debtRepo.ListDebts(ctx, accountID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts")
		return nil, nil, err
	}

	var next *string
	if len(debts) > limit {
		debts = debts[:limit]
		last := debts[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Timestamp: last.Timestamp, ID: last.DebtID})
		next = &token
	}
	return debts, next, nil
}

func (s *debtService) GetDebtsByReceiptID(ctx context.Context, accountID, receiptID string) ([]domain.DebtView, error) {
	own, err := s.debtRepo.ListDebtsByReceipt(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if len(own) > 0 {
		views := make([]domain.DebtView, 0, len(own))
		for _, debt := range own {
			view, err := s.ownView(ctx, debt)
			if err != nil {
				return nil, err
			}
			views = append(views, *view)
		}
		return views, nil
	}

	// Nothing of our own yet: fall back to what the receipt owner holds about us.
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.DebtView{}, nil
		}
		return nil, err
	}
	if receipt.OwnerAccountID == accountID {
		return []domain.DebtView{}, nil
	}
	contact, err := s.users.FindConnectedUser(ctx, receipt.OwnerAccountID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.DebtView{}, nil
		}
		return nil, err
	}
	cp, err := s.users.ResolveCounterpart(ctx, receipt.OwnerAccountID, contact.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPreconditionFailed) || errors.Is(err, apperrors.ErrNotFound) {
			return []domain.DebtView{}, nil
		}
		return nil, err
	}

	ownerRows, err := s.debtRepo.ListDebtsByReceipt(ctx, receipt.OwnerAccountID, receiptID)
	if err != nil {
		return nil, err
	}
	views := []domain.DebtView{}
	for _, debt := range ownerRows {
		if debt.UserID == contact.UserID {
			views = append(views, *foreignView(debt, cp.UserID))
		}
	}
	return views, nil
}

func (s *debtService) Summary(ctx context.Context, accountID string) (*domain.DebtsSummary, error) {
	debts, err := s.debtRepo.ListDebts(ctx, accountID, portsrepo.DebtFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load debts for summary")
		return nil, err
	}
	summary := accounting.SummarizeDebts(debts)
	return &summary, nil
}

func (s *debtService) CreateDebt(ctx context.Context, accountID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	if req.UserID == accountID {
		return nil, fmt.Errorf("cannot record a debt with yourself: %w", apperrors.ErrBadRequest)
	}
	if _, err := s.users.GetUser(ctx, accountID, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown user %s: %w", req.UserID, apperrors.ErrBadRequest)
		}
		return nil, err
	}
	if err := s.validateAmount(ctx, req.Amount, req.CurrencyCode); err != nil {
		return nil, err
	}

	createdAt := now()
	timestamp := createdAt
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC().Truncate(timestampPrecision)
	}

	debt := domain.Debt{
		DebtID:         uuid.NewString(),
		OwnerAccountID: accountID,
		UserID:         req.UserID,
		CorrelationID:  uuid.NewString(),
		Amount:         req.Amount,
		CurrencyCode:   req.CurrencyCode,
		Timestamp:      timestamp,
		Note:           req.Note,
		AuditFields:    domain.AuditFields{CreatedAt: createdAt},
	}
	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to create debt")
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	s.LogInfo(ctx, "Debt created", slog.String("debt_id", debt.DebtID), slog.String("user_id", debt.UserID))
	return &debt, nil
}

func (s *debtService) UpdateDebt(ctx context.Context, accountID, debtID string, req dto.UpdateDebtRequest) (*domain.DebtView, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	if debt.IsLocked() && !req.OnlyNote() {
		return nil, fmt.Errorf("debt is locked, unlock it before changing its values: %w", apperrors.ErrForbidden)
	}

	if req.Amount != nil {
		debt.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		debt.CurrencyCode = *req.CurrencyCode
	}
	if req.Timestamp != nil {
		debt.Timestamp = req.Timestamp.UTC().Truncate(timestampPrecision)
	}
	if req.Note != nil {
		debt.Note = *req.Note
	}
	if req.Amount != nil || req.CurrencyCode != nil {
		if err := s.validateAmount(ctx, debt.Amount, debt.CurrencyCode); err != nil {
			return nil, err
		}
	}

	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to update debt", slog.String("debt_id", debtID))
		return nil, err
	}
	return s.ownView(ctx, *debt)
}

func (s *debtService) DeleteDebt(ctx context.Context, accountID, debtID string) error {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return err
	}
	if debt.OwnerAccountID != accountID {
		return fmt.Errorf("debt %s belongs to another account: %w", debtID, apperrors.ErrForbidden)
	}
	if err := s.debtRepo.DeleteDebt(ctx, debtID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete debt", slog.String("debt_id", debtID))
		return err
	}
	s.LogInfo(ctx, "Debt deleted", slog.String("debt_id", debtID))
	return nil
}

// LockDebt freezes the debt at the current instant. When the counterpart is
// already locked on a mirroring value its timestamp is adopted, so both
// sides end up in sync without an intention. A counterpart intention
// proposing that same lock is consumed, as an accept would.
func (s *debtService) LockDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	if debt.IsLocked() {
		return s.ownView(ctx, *debt)
	}

	ts := now()
	counterpart, err := s.sync.FindCounterpartDebt(ctx, *debt)
	if err != nil {
		return nil, err
	}
	adopted := counterpart != nil && counterpart.IsLocked() && debt.MirrorsValue(*counterpart)
	if adopted {
		ts = *counterpart.LockedTimestamp
	}
	debt.LockedTimestamp = &ts

	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to lock debt", slog.String("debt_id", debtID))
		return nil, err
	}
	if adopted {
		if err := s.consumeAdoptedIntention(ctx, *counterpart); err != nil {
			s.LogError(ctx, err, "Failed to consume adopted sync intention", slog.String("debt_id", counterpart.DebtID))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Debt locked", slog.String("debt_id", debtID), slog.Time("locked_timestamp", ts))
	s.Track(accountID, utils.EventDebtLocked, map[string]any{"debt_id": debtID})
	return s.ownView(ctx, *debt)
}

func (s *debtService) consumeAdoptedIntention(ctx context.Context, counterpart domain.Debt) error {
	intention, err := s.intentionRepo.FindIntentionByDebtID(ctx, counterpart.DebtID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !domain.SameLock(&intention.LockedTimestamp, counterpart.LockedTimestamp) {
		return nil
	}
	err = s.intentionRepo.DeleteIntention(ctx, counterpart.DebtID, counterpart.OwnerAccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// UnlockDebt withdraws the caller's outstanding intention before unlocking.
func (s *debtService) UnlockDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	debt, err := s.loadOwnDebt(ctx, accountID, debtID)
	if err != nil {
		return nil, err
	}
	if !debt.IsLocked() {
		return &domain.DebtView{Debt: *debt, Status: &domain.SyncStatus{Type: domain.SyncStatusNoSync}}, nil
	}

	if err := s.intentionRepo.DeleteIntention(ctx, debtID, accountID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to withdraw sync intention", slog.String("debt_id", debtID))
		return nil, err
	}
	debt.LockedTimestamp = nil
	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to unlock debt", slog.String("debt_id", debtID))
		return nil, err
	}

	s.LogInfo(ctx, "Debt unlocked", slog.String("debt_id", debtID))
	return &domain.DebtView{Debt: *debt, Status: &domain.SyncStatus{Type: domain.SyncStatusNoSync}}, nil
}
