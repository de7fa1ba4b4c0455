package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Account), args.Error(2)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) Precision(ctx context.Context, currencyCode string) (int32, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(int32), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, accountID, userID string) (*domain.User, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, accountID string) ([]domain.User, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, accountID string, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ConnectUser(ctx context.Context, accountID, userID string, req dto.ConnectUserRequest) (*domain.User, error) {
	args := m.Called(ctx, accountID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DisconnectUser(ctx context.Context, accountID, userID string) (*domain.User, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ResolveCounterpart(ctx context.Context, accountID, userID string) (*domain.Counterpart, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterpart), args.Error(1)
}
func (m *MockUserService) FindConnectedUser(ctx context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error) {
	args := m.Called(ctx, ownerAccountID, connectedAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) GetDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtView), args.Error(1)
}
func (m *MockDebtService) GetForeignDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtView), args.Error(1)
}
func (m *MockDebtService) ListDebts(ctx context.Context, accountID string, params dto.ListDebtsParams) ([]domain.Debt, *string, error) {
	args := m.Called(ctx, accountID, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Debt), next, args.Error(2)
}
func (m *MockDebtService) GetDebtsByReceiptID(ctx context.Context, accountID, receiptID string) ([]domain.DebtView, error) {
	args := m.Called(ctx, accountID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtView), args.Error(1)
}
func (m *MockDebtService) Summary(ctx context.Context, accountID string) (*domain.DebtsSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtsSummary), args.Error(1)
}
func (m *MockDebtService) CreateDebt(ctx context.Context, accountID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}
func (m *MockDebtService) UpdateDebt(ctx context.Context, accountID, debtID string, req dto.UpdateDebtRequest) (*domain.DebtView, error) {
	args := m.Called(ctx, accountID, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtView), args.Error(1)
}
func (m *MockDebtService) DeleteDebt(ctx context.Context, accountID, debtID string) error {
	args := m.Called(ctx, accountID, debtID)
	return args.Error(0)
}
func (m *MockDebtService) LockDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtView), args.Error(1)
}
func (m *MockDebtService) UnlockDebt(ctx context.Context, accountID, debtID string) (*domain.DebtView, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtView), args.Error(1)
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) ResolveStatus(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStatus), args.Error(1)
}
func (m *MockSyncService) StatusOf(ctx context.Context, debt domain.Debt) (*domain.SyncStatus, error) {
	args := m.Called(ctx, debt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStatus), args.Error(1)
}
func (m *MockSyncService) FindCounterpartDebt(ctx context.Context, debt domain.Debt) (*domain.Debt, error) {
	args := m.Called(ctx, debt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}
func (m *MockSyncService) ProposeSync(ctx context.Context, accountID, debtID string, lockedTimestamp time.Time) (time.Time, error) {
	args := m.Called(ctx, accountID, debtID, lockedTimestamp)
	return args.Get(0).(time.Time), args.Error(1)
}
func (m *MockSyncService) AcceptSync(ctx context.Context, accountID, debtID string, lockedTimestamp time.Time) (*domain.Debt, error) {
	args := m.Called(ctx, accountID, debtID, lockedTimestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}
func (m *MockSyncService) RejectSync(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStatus), args.Error(1)
}
func (m *MockSyncService) CancelSync(ctx context.Context, accountID, debtID string) (*domain.SyncStatus, error) {
	args := m.Called(ctx, accountID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStatus), args.Error(1)
}
func (m *MockSyncService) ListIntentions(ctx context.Context, accountID string) (*domain.SyncIntentions, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncIntentions), args.Error(1)
}
func (m *MockSyncService) SweepDanglingIntentions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) GetReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, accountID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) ListReceipts(ctx context.Context, accountID string) ([]domain.Receipt, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) CreateReceipt(ctx context.Context, accountID string, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) AddItem(ctx context.Context, accountID, receiptID string, req dto.AddReceiptItemRequest) (*domain.Receipt, error) {
	args := m.Called(ctx, accountID, receiptID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) LockReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, accountID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) UnlockReceipt(ctx context.Context, accountID, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, accountID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) PropagateDebts(ctx context.Context, accountID, receiptID string, lockedTimestamp time.Time) ([]domain.PropagatedDebt, error) {
	args := m.Called(ctx, accountID, receiptID, lockedTimestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PropagatedDebt), args.Error(1)
}
func (m *MockReceiptService) UpdateReceiptDebt(ctx context.Context, accountID, receiptID, userID string) (*domain.PropagatedDebt, error) {
	args := m.Called(ctx, accountID, receiptID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropagatedDebt), args.Error(1)
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)
