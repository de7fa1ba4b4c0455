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
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/utils"
	"github.com/SscSPs/splitledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type receiptService struct {
	BaseService
	receiptRepo   portsrepo.ReceiptRepositoryFacade
	debtRepo      portsrepo.DebtWriter
	intentionRepo portsrepo.SyncIntentionWriter
	currencies    portssvc.CurrencyValidatorSvc
	users         portssvc.UserSvcFacade
}

// ReceiptServiceOption configures a receiptService.
type ReceiptServiceOption func(*receiptService)

// WithReceiptTracker sends propagation events to tracker.
func WithReceiptTracker(tracker utils.EventTracker) ReceiptServiceOption {
	return func(s *receiptService) {
		s.Tracker = tracker
	}
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	receiptRepo portsrepo.ReceiptRepositoryFacade,
	debtRepo portsrepo.DebtWriter,
	intentionRepo portsrepo.SyncIntentionWriter,
	currencies portssvc.CurrencyValidatorSvc,
	users portssvc.UserSvcFacade,
	opts ...ReceiptServiceOption,
) portssvc.ReceiptSvcFacade {
	s := &receiptService{
		receiptRepo:   receiptRepo,
		debtRepo:      debtRepo,
		intentionRepo: intentionRepo,
		currencies:    currencies,
		users:         users,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

func (s *receiptService) GetReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.OwnerAccountID != accountID {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, apperrors.ErrNotFound)
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, accountID string) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceipts(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts")
		return nil, err
	}
	return receipts, nil
}

func (s *receiptService) CreateReceipt(ctx context.Context, accountID string, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	if _, err := s.currencies.Precision(ctx, req.CurrencyCode); err != nil {
		return nil, err
	}

	createdAt := now()
	issued := createdAt
	if req.Issued != nil {
		issued = req.Issued.UTC().Truncate(timestampPrecision)
	}
	receipt := domain.Receipt{
		ReceiptID:      uuid.NewString(),
		OwnerAccountID: accountID,
		Name:           req.Name,
		CurrencyCode:   req.CurrencyCode,
		Issued:         issued,
		Items:          []domain.ReceiptItem{},
		AuditFields:    domain.AuditFields{CreatedAt: createdAt},
	}
	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		s.LogError(ctx, err, "Failed to create receipt")
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	s.LogInfo(ctx, "Receipt created", slog.String("receipt_id", receipt.ReceiptID))
	return &receipt, nil
}

func (s *receiptService) AddItem(ctx context.Context, accountID, receiptID string, req dto.AddReceiptItemRequest) (*domain.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.IsLocked() {
		return nil, fmt.Errorf("receipt is locked: %w", apperrors.ErrForbidden)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrBadRequest)
	}
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive: %w", apperrors.ErrBadRequest)
	}

	item := domain.ReceiptItem{
		ItemID:      uuid.NewString(),
		ReceiptID:   receiptID,
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Consumers:   make([]domain.ItemConsumer, 0, len(req.Consumers)),
		AuditFields: domain.AuditFields{CreatedAt: now()},
	}
	seen := make(map[string]bool, len(req.Consumers))
	for _, c := range req.Consumers {
		if seen[c.UserID] {
			return nil, fmt.Errorf("user %s listed twice: %w", c.UserID, apperrors.ErrBadRequest)
		}
		seen[c.UserID] = true
		if _, err := s.users.GetUser(ctx, accountID, c.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("unknown user %s: %w", c.UserID, apperrors.ErrBadRequest)
			}
			return nil, err
		}
		item.Consumers = append(item.Consumers, domain.ItemConsumer{UserID: c.UserID, Weight: c.Weight})
	}

	if err := s.receiptRepo.SaveReceiptItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to add receipt item", slog.String("receipt_id", receiptID))
		return nil, err
	}
	receipt.Items = append(receipt.Items, item)
	return receipt, nil
}

func (s *receiptService) LockReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.IsLocked() {
		return receipt, nil
	}
	ts := now()
	if err := s.receiptRepo.UpdateReceiptLock(ctx, receiptID, accountID, &ts); err != nil {
		s.LogError(ctx, err, "Failed to lock receipt", slog.String("receipt_id", receiptID))
		return nil, err
	}
	receipt.LockedTimestamp = &ts
	s.LogInfo(ctx, "Receipt locked", slog.String("receipt_id", receiptID))
	return receipt, nil
}

func (s *receiptService) UnlockReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if !receipt.IsLocked() {
		return receipt, nil
	}
	if err := s.receiptRepo.UpdateReceiptLock(ctx, receiptID, accountID, nil); err != nil {
		s.LogError(ctx, err, "Failed to unlock receipt", slog.String("receipt_id", receiptID))
		return nil, err
	}
	receipt.LockedTimestamp = nil
	return receipt, nil
}

// lockedReceipt loads a receipt the caller owns and that is locked.
func (s *receiptService) lockedReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, int32, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, 0, err
	}
	if receipt.OwnerAccountID != accountID {
		return nil, 0, fmt.Errorf("only the receipt owner can propagate its debts: %w", apperrors.ErrForbidden)
	}
	if !receipt.IsLocked() {
		return nil, 0, fmt.Errorf("receipt must be locked before propagating debts: %w", apperrors.ErrPreconditionFailed)
	}
	precision, err := s.currencies.Precision(ctx, receipt.CurrencyCode)
	if err != nil {
		return nil, 0, err
	}
	return receipt, precision, nil
}

func allocate(receipt *domain.Receipt, precision int32) ([]accounting.ParticipantShare, error) {
	shares, err := accounting.AllocateReceipt(receipt.Items, precision)
	if err != nil {
		if errors.Is(err, accounting.ErrNegativeWeight) {
			return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrBadRequest)
		}
		return nil, err
	}
	return shares, nil
}

func (s *receiptService) PropagateDebts(ctx context.Context, accountID, receiptID string, lockedTimestamp time.Time) ([]domain.PropagatedDebt, error) {
	receipt, precision, err := s.lockedReceipt(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if !receipt.LockedTimestamp.Equal(lockedTimestamp) {
		return nil, fmt.Errorf("receipt was changed since it was last read: %w", apperrors.ErrPreconditionFailed)
	}

	shares, err := allocate(receipt, precision)
	if err != nil {
		return nil, err
	}

	results := make([]domain.PropagatedDebt, 0, len(shares))
	for _, share := range shares {
		// The owner's own consumption is not a debt.
		if share.UserID == accountID {
			continue
		}
		result, err := s.propagateShare(ctx, receipt, share.UserID, share.Amount, precision)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	s.LogInfo(ctx, "Receipt debts propagated", slog.String("receipt_id", receiptID), slog.Int("debts", len(results)))
	s.Track(accountID, utils.EventReceiptPropagate, map[string]any{"receipt_id": receiptID, "debts": len(results)})
	return results, nil
}

func (s *receiptService) UpdateReceiptDebt(ctx context.Context, accountID, receiptID, userID string) (*domain.PropagatedDebt, error) {
	receipt, precision, err := s.lockedReceipt(ctx, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if userID == accountID {
		return nil, fmt.Errorf("the receipt owner has no debt on their own receipt: %w", apperrors.ErrBadRequest)
	}

	shares, err := allocate(receipt, precision)
	if err != nil {
		return nil, err
	}
	for _, share := range shares {
		if share.UserID == userID {
			return s.propagateShare(ctx, receipt, userID, share.Amount, precision)
		}
	}
	return nil, fmt.Errorf("user %s is not a participant of this receipt: %w", userID, apperrors.ErrPreconditionFailed)
}

// propagateShare upserts the owner-side row for userID and, when the user is
// mutually connected, the mirrored row on the other account. Both rows are
// stamped with the receipt lock, so pending intentions on them are obsolete.
func (s *receiptService) propagateShare(ctx context.Context, receipt *domain.Receipt, userID string, amount decimal.Decimal, precision int32) (*domain.PropagatedDebt, error) {
	createdAt := now()
	receiptID := receipt.ReceiptID
	lockedTimestamp := *receipt.LockedTimestamp

	ownerRow := domain.Debt{
		DebtID:          uuid.NewString(),
		OwnerAccountID:  receipt.OwnerAccountID,
		UserID:          userID,
		CorrelationID:   uuid.NewString(),
		Amount:          amount,
		CurrencyCode:    receipt.CurrencyCode,
		Timestamp:       receipt.Issued,
		Note:            receipt.Name,
		ReceiptID:       &receiptID,
		LockedTimestamp: &lockedTimestamp,
		AuditFields:     domain.AuditFields{CreatedAt: createdAt},
	}
	saved, err := s.debtRepo.UpsertReceiptDebt(ctx, ownerRow)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert receipt debt", slog.String("receipt_id", receiptID), slog.String("user_id", userID))
		return nil, err
	}
	if err := s.dropIntention(ctx, saved.DebtID, saved.OwnerAccountID); err != nil {
		return nil, err
	}

	result := &domain.PropagatedDebt{UserID: userID, Amount: amount, Precision: precision, Debt: saved}

	cp, err := s.users.ResolveCounterpart(ctx, receipt.OwnerAccountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPreconditionFailed) || errors.Is(err, apperrors.ErrNotFound) {
			return result, nil
		}
		return nil, err
	}

	mirror := domain.Debt{
		DebtID:          uuid.NewString(),
		OwnerAccountID:  cp.AccountID,
		UserID:          cp.UserID,
		CorrelationID:   saved.CorrelationID,
		Amount:          amount.Neg(),
		CurrencyCode:    receipt.CurrencyCode,
		Timestamp:       receipt.Issued,
		Note:            receipt.Name,
		ReceiptID:       &receiptID,
		LockedTimestamp: &lockedTimestamp,
		AuditFields:     domain.AuditFields{CreatedAt: createdAt},
	}
	mirrored, err := s.debtRepo.UpsertReceiptDebt(ctx, mirror)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert mirrored receipt debt", slog.String("receipt_id", receiptID), slog.String("account_id", cp.AccountID))
		return nil, err
	}
	if err := s.dropIntention(ctx, mirrored.DebtID, mirrored.OwnerAccountID); err != nil {
		return nil, err
	}
	result.Mirrored = true
	return result, nil
}

func (s *receiptService) dropIntention(ctx context.Context, debtID, ownerAccountID string) error {
	err := s.intentionRepo.DeleteIntention(ctx, debtID, ownerAccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to drop obsolete sync intention", slog.String("debt_id", debtID))
		return err
	}
	return nil
}
