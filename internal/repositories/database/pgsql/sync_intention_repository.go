package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/models"
	"github.com/SscSPs/splitledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSyncIntentionRepository struct {
	BaseRepository
}

// newPgxSyncIntentionRepository creates a new repository for sync intentions.
func newPgxSyncIntentionRepository(pool *pgxpool.Pool) portsrepo.SyncIntentionRepositoryFacade {
	return &PgxSyncIntentionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncIntentionRepositoryFacade = (*PgxSyncIntentionRepository)(nil)

const intentionColumns = `i.debt_id, i.owner_account_id, i.locked_timestamp, i.created_at`

// mutuallyConnected matches when the counterparty user of debt d links to an
// account that in turn has a contact linked back to d's owner.
const mutuallyConnected = `
	EXISTS (
		SELECT 1
		FROM users u
		JOIN users back ON back.owner_account_id = u.connected_account_id
			AND back.connected_account_id = d.owner_account_id
		WHERE u.user_id = d.user_id
	)`

func (r *PgxSyncIntentionRepository) SaveIntention(ctx context.Context, intention domain.SyncIntention) error {
	m := mapping.ToModelSyncIntention(intention)
	query := `
		INSERT INTO debts_sync_intentions (debt_id, owner_account_id, locked_timestamp, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, m.DebtID, m.OwnerAccountID, m.LockedTimestamp, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: intention for debt %s already exists", apperrors.ErrDuplicate, m.DebtID)
		}
		return fmt.Errorf("failed to save intention for debt %s: %w", m.DebtID, err)
	}
	return nil
}

func (r *PgxSyncIntentionRepository) FindIntentionByDebtID(ctx context.Context, debtID string) (*domain.SyncIntention, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+intentionColumns+` FROM debts_sync_intentions i WHERE i.debt_id = $1;`, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query intention: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SyncIntention])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan intention: %w", err)
	}
	in := mapping.ToDomainSyncIntention(m)
	return &in, nil
}

func (r *PgxSyncIntentionRepository) ListOutboundIntentions(ctx context.Context, accountID string) ([]domain.SyncIntention, error) {
	return r.list(ctx, `
		SELECT `+intentionColumns+`
		FROM debts_sync_intentions i
		WHERE i.owner_account_id = $1
		ORDER BY i.created_at;`, accountID)
}

func (r *PgxSyncIntentionRepository) ListInboundIntentions(ctx context.Context, accountID string) ([]domain.SyncIntention, error) {
	return r.list(ctx, `
		SELECT `+intentionColumns+`
		FROM debts_sync_intentions i
		JOIN debts d ON d.debt_id = i.debt_id
		JOIN users u ON u.user_id = d.user_id
		WHERE u.connected_account_id = $1
		  AND EXISTS (
			SELECT 1 FROM users back
			WHERE back.owner_account_id = $1 AND back.connected_account_id = i.owner_account_id
		  )
		ORDER BY i.created_at;`, accountID)
}

func (r *PgxSyncIntentionRepository) DeleteIntention(ctx context.Context, debtID, ownerAccountID string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM debts_sync_intentions WHERE debt_id = $1 AND owner_account_id = $2;`,
		debtID, ownerAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete intention for debt %s: %w", debtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("intention for debt %s not found: %w", debtID, apperrors.ErrNotFound)
	}
	return nil
}

// AcceptIntention claims the intention with a conditional delete and writes
// the accepting side's row in the same transaction. A concurrent accept,
// reject or cancel makes the delete match nothing and the call fails with
// ErrNotFound without touching any debt.
func (r *PgxSyncIntentionRepository) AcceptIntention(ctx context.Context, debtID string, lockedTimestamp time.Time, target domain.Debt) (*domain.Debt, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	claim, err := tx.Exec(ctx, `
		DELETE FROM debts_sync_intentions i
		USING debts d
		WHERE i.debt_id = $1 AND i.locked_timestamp = $2
		  AND d.debt_id = i.debt_id AND d.locked_timestamp = i.locked_timestamp;`,
		debtID, lockedTimestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to claim intention for debt %s: %w", debtID, err)
	}
	if claim.RowsAffected() == 0 {
		return nil, fmt.Errorf("intention for debt %s no longer pending: %w", debtID, apperrors.ErrNotFound)
	}

	m := mapping.ToModelDebt(target)
	rows, err := tx.Query(ctx, `
		INSERT INTO debts (`+debtColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (debt_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			currency_code = EXCLUDED.currency_code,
			timestamp = EXCLUDED.timestamp,
			locked_timestamp = EXCLUDED.locked_timestamp
		WHERE debts.owner_account_id = EXCLUDED.owner_account_id
		RETURNING `+debtColumns+`;`,
		m.DebtID,
		m.OwnerAccountID,
		m.UserID,
		m.CorrelationID,
		m.Amount,
		m.CurrencyCode,
		m.Timestamp,
		m.Note,
		m.ReceiptID,
		m.LockedTimestamp,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write accepted debt %s: %w", m.DebtID, err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Debt])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("debt %s belongs to another account: %w", m.DebtID, apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to scan accepted debt: %w", err)
	}

	// Any intention the accepting side had on its own row is now stale.
	if _, err := tx.Exec(ctx, `DELETE FROM debts_sync_intentions WHERE debt_id = $1;`, saved.DebtID); err != nil {
		return nil, fmt.Errorf("failed to clear stale intention for debt %s: %w", saved.DebtID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	d := mapping.ToDomainDebt(saved)
	return &d, nil
}

// mirrorCarriesLock matches when the counterpart's copy of debt d is already
// locked at the timestamp intention i proposes.
const mirrorCarriesLock = `
	EXISTS (
		SELECT 1
		FROM users u
		JOIN users back ON back.owner_account_id = u.connected_account_id
			AND back.connected_account_id = d.owner_account_id
		JOIN debts m ON m.owner_account_id = back.owner_account_id
			AND m.user_id = back.user_id
		WHERE u.user_id = d.user_id
		  AND m.locked_timestamp = i.locked_timestamp
		  AND ((d.receipt_id IS NULL AND m.receipt_id IS NULL AND m.correlation_id = d.correlation_id)
			OR m.receipt_id = d.receipt_id)
	)`

func (r *PgxSyncIntentionRepository) SweepDanglingIntentions(ctx context.Context) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `
		DELETE FROM debts_sync_intentions i
		USING debts d
		WHERE d.debt_id = i.debt_id
		  AND (d.locked_timestamp IS DISTINCT FROM i.locked_timestamp
			OR NOT `+mutuallyConnected+`
			OR `+mirrorCarriesLock+`);`)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep intentions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxSyncIntentionRepository) list(ctx context.Context, query string, args ...any) ([]domain.SyncIntention, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query intentions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SyncIntention])
	if err != nil {
		return nil, fmt.Errorf("failed to scan intentions: %w", err)
	}
	return mapping.ToDomainSyncIntentionSlice(ms), nil
}
