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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, owner_account_id, name, connected_account_id, created_at`

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, owner_account_id, name, connected_account_id, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.OwnerAccountID, m.Name, m.ConnectedAccountID, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a contact is already connected to this account", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID)
}

func (r *PgxUserRepository) FindUserByConnection(ctx context.Context, ownerAccountID, connectedAccountID string) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE owner_account_id = $1 AND connected_account_id = $2;`,
		ownerAccountID, connectedAccountID)
}

func (r *PgxUserRepository) ListUsersByOwner(ctx context.Context, ownerAccountID string) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE owner_account_id = $1 ORDER BY name, user_id;`,
		ownerAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	modelUsers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) UpdateUserConnection(ctx context.Context, userID, ownerAccountID string, connectedAccountID *string) error {
	query := `
        UPDATE users
        SET connected_account_id = $1
        WHERE user_id = $2 AND owner_account_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, connectedAccountID, userID, ownerAccountID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: another contact is already connected to this account", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user connection: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}
