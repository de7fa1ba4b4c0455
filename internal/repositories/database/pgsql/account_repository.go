package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/models"
	"github.com/SscSPs/splitledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, email, name, password_hash, created_at`

// SaveAccount inserts the account and its self user in one transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (account_id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, m.AccountID, m.Email, m.Name, m.PasswordHash, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}

	// The self user lets the owner appear as a consumer on their own receipts.
	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id, owner_account_id, name, connected_account_id, created_at)
		VALUES ($1, $1, $2, NULL, $3);
	`, m.AccountID, m.Name, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save self user for account %s: %w", m.AccountID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1;`, accountID)
}

func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER($1);`, email)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}
