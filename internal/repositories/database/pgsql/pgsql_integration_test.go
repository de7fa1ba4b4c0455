//go:build integration

package pgsql_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/splitledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationsPath = "file://../../../../migrations"

type PgsqlIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	svc       *portssvc.ServiceContainer

	accountA, accountB string
	userBInA, userAInB string
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("splitledger"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.RunMigrations(dsn, migrationsPath, slog.Default()))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, true)
	s.Require().NoError(err)

	cfg := &config.Config{JWTSecret: "integration-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "splitledger-test"}
	s.svc = services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(s.pool), nil)
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *PgsqlIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE debts_sync_intentions, debts, item_consumers, receipt_items, receipts, users, accounts CASCADE`)
	s.Require().NoError(err)

	a, err := s.svc.Auth.Register(s.ctx, dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123"})
	s.Require().NoError(err)
	b, err := s.svc.Auth.Register(s.ctx, dto.RegisterRequest{Email: "bob@example.com", Name: "Bob", Password: "password123"})
	s.Require().NoError(err)
	s.accountA, s.accountB = a.AccountID, b.AccountID

	s.userBInA = s.connectedContact(s.accountA, "Bob", "bob@example.com")
	s.userAInB = s.connectedContact(s.accountB, "Alice", "alice@example.com")
}

func (s *PgsqlIntegrationSuite) connectedContact(accountID, name, email string) string {
	user, err := s.svc.User.CreateUser(s.ctx, accountID, dto.CreateUserRequest{Name: name})
	s.Require().NoError(err)
	_, err = s.svc.User.ConnectUser(s.ctx, accountID, user.UserID, dto.ConnectUserRequest{AccountEmail: email})
	s.Require().NoError(err)
	return user.UserID
}

// lockedDebt records amount owed by Bob to Alice and locks it.
func (s *PgsqlIntegrationSuite) lockedDebt(amount string, at time.Time) (string, time.Time) {
	debt, err := s.svc.Debt.CreateDebt(s.ctx, s.accountA, dto.CreateDebtRequest{
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: "USD",
		UserID:       s.userBInA,
		Note:         "private note",
		Timestamp:    &at,
	})
	s.Require().NoError(err)
	view, err := s.svc.Debt.LockDebt(s.ctx, s.accountA, debt.DebtID)
	s.Require().NoError(err)
	s.Require().NotNil(view.LockedTimestamp)
	return debt.DebtID, *view.LockedTimestamp
}

func (s *PgsqlIntegrationSuite) TestSyncRoundTrip() {
	debtID, lockedAt := s.lockedDebt("5.00", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	proposed, err := s.svc.Sync.ProposeSync(s.ctx, s.accountA, debtID, lockedAt)
	s.Require().NoError(err)
	s.True(proposed.Equal(lockedAt), "timestamps must survive the round trip through postgres")

	inbound, err := s.svc.Sync.ListIntentions(s.ctx, s.accountB)
	s.Require().NoError(err)
	s.Require().Len(inbound.Inbound, 1)
	s.Equal(debtID, inbound.Inbound[0].DebtID)

	mirror, err := s.svc.Sync.AcceptSync(s.ctx, s.accountB, debtID, lockedAt)
	s.Require().NoError(err)
	s.True(mirror.Amount.Equal(decimal.RequireFromString("-5")))
	s.Equal(s.userAInB, mirror.UserID)
	s.Empty(mirror.Note)

	for _, side := range []struct{ account, debt string }{{s.accountA, debtID}, {s.accountB, mirror.DebtID}} {
		status, err := s.svc.Sync.ResolveStatus(s.ctx, side.account, side.debt)
		s.Require().NoError(err)
		s.Equal(domain.SyncStatusSync, status.Type)
		s.False(status.IntentionPending)
	}

	_, err = s.svc.Sync.AcceptSync(s.ctx, s.accountB, debtID, lockedAt)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlIntegrationSuite) TestSecondProposalConflicts() {
	debtID, lockedAt := s.lockedDebt("7.25", time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC))

	_, err := s.svc.Sync.ProposeSync(s.ctx, s.accountA, debtID, lockedAt)
	s.Require().NoError(err)
	_, err = s.svc.Sync.ProposeSync(s.ctx, s.accountA, debtID, lockedAt)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PgsqlIntegrationSuite) TestSweepAfterDisconnect() {
	debtID, lockedAt := s.lockedDebt("3.00", time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC))
	_, err := s.svc.Sync.ProposeSync(s.ctx, s.accountA, debtID, lockedAt)
	s.Require().NoError(err)

	removed, err := s.svc.Sync.SweepDanglingIntentions(s.ctx)
	s.Require().NoError(err)
	s.Zero(removed)

	_, err = s.svc.User.DisconnectUser(s.ctx, s.accountB, s.userAInB)
	s.Require().NoError(err)

	removed, err = s.svc.Sync.SweepDanglingIntentions(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, removed)

	outbound, err := s.svc.Sync.ListIntentions(s.ctx, s.accountA)
	s.Require().NoError(err)
	s.Empty(outbound.Outbound)
}

func (s *PgsqlIntegrationSuite) TestSweepDropsIntentionAlreadyMirrored() {
	debtID, lockedAt := s.lockedDebt("4.00", time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC))
	_, err := s.svc.Sync.ProposeSync(s.ctx, s.accountA, debtID, lockedAt)
	s.Require().NoError(err)
	_, err = s.svc.Sync.AcceptSync(s.ctx, s.accountB, debtID, lockedAt)
	s.Require().NoError(err)

	_, err = s.pool.Exec(s.ctx,
		`INSERT INTO debts_sync_intentions (debt_id, owner_account_id, locked_timestamp, created_at) VALUES ($1, $2, $3, now())`,
		debtID, s.accountA, lockedAt)
	s.Require().NoError(err)

	removed, err := s.svc.Sync.SweepDanglingIntentions(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, removed)
}

func (s *PgsqlIntegrationSuite) TestDeleteDropsOwnIntention() {
	debtID, lockedAt := s.lockedDebt("1.00", time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC))
	_, err := s.svc.Sync.ProposeSync(s.ctx, s.accountA, debtID, lockedAt)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Debt.DeleteDebt(s.ctx, s.accountA, debtID))

	intentions, err := s.svc.Sync.ListIntentions(s.ctx, s.accountB)
	s.Require().NoError(err)
	s.Empty(intentions.Inbound)
}

func (s *PgsqlIntegrationSuite) TestListDebtsPagination() {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := s.svc.Debt.CreateDebt(s.ctx, s.accountA, dto.CreateDebtRequest{
			Amount: decimal.NewFromInt(int64(i + 1)), CurrencyCode: "USD", UserID: s.userBInA, Timestamp: &at,
		})
		s.Require().NoError(err)
	}

	page, next, err := s.svc.Debt.ListDebts(s.ctx, s.accountA, dto.ListDebtsParams{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Require().NotNil(next)
	s.True(page[0].Amount.Equal(decimal.NewFromInt(3)), "newest first")

	rest, next, err := s.svc.Debt.ListDebts(s.ctx, s.accountA, dto.ListDebtsParams{Limit: 2, NextToken: *next})
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Nil(next)
	s.True(rest[0].Amount.Equal(decimal.NewFromInt(1)))
}

func (s *PgsqlIntegrationSuite) TestReceiptPropagation() {
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	receipt, err := s.svc.Receipt.CreateReceipt(s.ctx, s.accountA, dto.CreateReceiptRequest{Name: "Groceries", CurrencyCode: "USD", Issued: &issued})
	s.Require().NoError(err)
	_, err = s.svc.Receipt.AddItem(s.ctx, s.accountA, receipt.ReceiptID, dto.AddReceiptItemRequest{
		Name:     "bread",
		Price:    decimal.RequireFromString("10.00"),
		Quantity: decimal.NewFromInt(1),
		Consumers: []dto.ItemConsumerRequest{
			{UserID: s.accountA, Weight: 1},
			{UserID: s.userBInA, Weight: 1},
		},
	})
	s.Require().NoError(err)

	locked, err := s.svc.Receipt.LockReceipt(s.ctx, s.accountA, receipt.ReceiptID)
	s.Require().NoError(err)

	results, err := s.svc.Receipt.PropagateDebts(s.ctx, s.accountA, receipt.ReceiptID, *locked.LockedTimestamp)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.True(results[0].Mirrored)

	theirs, err := s.svc.Debt.GetDebtsByReceiptID(s.ctx, s.accountB, receipt.ReceiptID)
	s.Require().NoError(err)
	s.Require().Len(theirs, 1)
	s.False(theirs[0].Foreign)
	s.True(theirs[0].Amount.Equal(decimal.RequireFromString("-5")))
	s.Require().NotNil(theirs[0].Status)
	s.Equal(domain.SyncStatusSync, theirs[0].Status.Type)

	// A second run updates the same rows in place.
	again, err := s.svc.Receipt.PropagateDebts(s.ctx, s.accountA, receipt.ReceiptID, *locked.LockedTimestamp)
	s.Require().NoError(err)
	s.Equal(results[0].Debt.DebtID, again[0].Debt.DebtID)
}

func TestPgsqlIntegration(t *testing.T) {
	suite.Run(t, new(PgsqlIntegrationSuite))
}
