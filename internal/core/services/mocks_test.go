package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByOwner(ctx context.Context, ownerAccountID string) ([]domain.User, error) {
	args := m.Called(ctx, ownerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByConnection(ctx context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error) {
	args := m.Called(ctx, ownerAccountID, connectedAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserConnection(ctx context.Context, userID, ownerAccountID string, connectedAccountID *string) error {
	args := m.Called(ctx, userID, ownerAccountID, connectedAccountID)
	return args.Error(0)
}

// --- Mock DebtRepository ---
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebts(ctx context.Context, ownerAccountID string, filter portsrepo.DebtFilter) ([]domain.Debt, error) {
	args := m.Called(ctx, ownerAccountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByReceipt(ctx context.Context, ownerAccountID, receiptID string) ([]domain.Debt, error) {
	args := m.Called(ctx, ownerAccountID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindMirroredDebt(ctx context.Context, ownerAccountID, userID string, debt domain.Debt) (*domain.Debt, error) {
	args := m.Called(ctx, ownerAccountID, userID, debt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) UpsertReceiptDebt(ctx context.Context, debt domain.Debt) (*domain.Debt, error) {
	args := m.Called(ctx, debt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) DeleteDebt(ctx context.Context, debtID, ownerAccountID string) error {
	args := m.Called(ctx, debtID, ownerAccountID)
	return args.Error(0)
}

// --- Mock SyncIntentionRepository ---
type MockIntentionRepository struct {
	mock.Mock
}

func (m *MockIntentionRepository) FindIntentionByDebtID(ctx context.Context, debtID string) (*domain.SyncIntention, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncIntention), args.Error(1)
}

func (m *MockIntentionRepository) ListOutboundIntentions(ctx context.Context, accountID string) ([]domain.SyncIntention, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncIntention), args.Error(1)
}

func (m *MockIntentionRepository) ListInboundIntentions(ctx context.Context, accountID string) ([]domain.SyncIntention, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncIntention), args.Error(1)
}

func (m *MockIntentionRepository) SaveIntention(ctx context.Context, intention domain.SyncIntention) error {
	args := m.Called(ctx, intention)
	return args.Error(0)
}

func (m *MockIntentionRepository) DeleteIntention(ctx context.Context, debtID, ownerAccountID string) error {
	args := m.Called(ctx, debtID, ownerAccountID)
	return args.Error(0)
}

func (m *MockIntentionRepository) AcceptIntention(ctx context.Context, debtID string, lockedTimestamp time.Time, target domain.Debt) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, lockedTimestamp, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockIntentionRepository) SweepDanglingIntentions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock EventTracker ---
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
