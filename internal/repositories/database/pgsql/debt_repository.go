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

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt rows.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, owner_account_id, user_id, correlation_id, amount, currency_code,
	timestamp, note, receipt_id, locked_timestamp, created_at`

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
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
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: debt %s already exists", apperrors.ErrDuplicate, m.DebtID)
		}
		return fmt.Errorf("failed to insert debt %s: %w", m.DebtID, err)
	}
	return nil
}

func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		UPDATE debts
		SET amount = $1, currency_code = $2, timestamp = $3, note = $4, locked_timestamp = $5
		WHERE debt_id = $6 AND owner_account_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Amount,
		m.CurrencyCode,
		m.Timestamp,
		m.Note,
		m.LockedTimestamp,
		m.DebtID,
		m.OwnerAccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", m.DebtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s not found: %w", m.DebtID, apperrors.ErrNotFound)
	}
	return nil
}

// UpsertReceiptDebt keeps the identity, correlation id and note of an
// existing row and refreshes its value columns.
func (r *PgxDebtRepository) UpsertReceiptDebt(ctx context.Context, debt domain.Debt) (*domain.Debt, error) {
	if debt.ReceiptID == nil {
		return nil, fmt.Errorf("receipt debt without receipt id: %w", apperrors.ErrValidation)
	}
	m := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_account_id, receipt_id, user_id) WHERE receipt_id IS NOT NULL
		DO UPDATE SET
			amount = EXCLUDED.amount,
			currency_code = EXCLUDED.currency_code,
			timestamp = EXCLUDED.timestamp,
			locked_timestamp = EXCLUDED.locked_timestamp
		RETURNING ` + debtColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query,
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
		return nil, fmt.Errorf("failed to upsert receipt debt: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Debt])
	if err != nil {
		return nil, fmt.Errorf("failed to scan upserted debt: %w", err)
	}
	d := mapping.ToDomainDebt(saved)
	return &d, nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	return r.findOne(ctx, `SELECT `+debtColumns+` FROM debts WHERE debt_id = $1;`, debtID)
}

func (r *PgxDebtRepository) FindMirroredDebt(ctx context.Context, ownerAccountID, userID string, debt domain.Debt) (*domain.Debt, error) {
	if debt.ReceiptID != nil {
		return r.findOne(ctx, `
			SELECT `+debtColumns+` FROM debts
			WHERE owner_account_id = $1 AND user_id = $2 AND receipt_id = $3;`,
			ownerAccountID, userID, *debt.ReceiptID)
	}
	return r.findOne(ctx, `
		SELECT `+debtColumns+` FROM debts
		WHERE owner_account_id = $1 AND user_id = $2 AND correlation_id = $3 AND receipt_id IS NULL
		ORDER BY created_at
		LIMIT 1;`,
		ownerAccountID, userID, debt.CorrelationID)
}

func (r *PgxDebtRepository) ListDebts(ctx context.Context, ownerAccountID string, filter portsrepo.DebtFilter) ([]domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + ` FROM debts
		WHERE owner_account_id = $1
		  AND ($2::text IS NULL OR user_id = $2)
		  AND ($3::timestamptz IS NULL OR (timestamp, debt_id) < ($3, $4::text))
		ORDER BY timestamp DESC, debt_id DESC
		LIMIT NULLIF($5, 0);
	`
	var afterTS *time.Time
	var afterID *string
	if filter.After != nil {
		afterTS = &filter.After.Timestamp
		afterID = &filter.After.ID
	}
	return r.list(ctx, query, ownerAccountID, filter.UserID, afterTS, afterID, filter.Limit)
}

func (r *PgxDebtRepository) ListDebtsByReceipt(ctx context.Context, ownerAccountID, receiptID string) ([]domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + ` FROM debts
		WHERE owner_account_id = $1 AND receipt_id = $2
		ORDER BY user_id;
	`
	return r.list(ctx, query, ownerAccountID, receiptID)
}

// DeleteDebt removes the row; its own intention goes with it through the
// ON DELETE CASCADE on debts_sync_intentions.debt_id.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID, ownerAccountID string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM debts WHERE debt_id = $1 AND owner_account_id = $2;`,
		debtID, ownerAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s not found: %w", debtID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxDebtRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Debt, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Debt])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan debt: %w", err)
	}
	d := mapping.ToDomainDebt(m)
	return &d, nil
}

func (r *PgxDebtRepository) list(ctx context.Context, query string, args ...any) ([]domain.Debt, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Debt])
	if err != nil {
		return nil, fmt.Errorf("failed to scan debts: %w", err)
	}
	return mapping.ToDomainDebtSlice(ms), nil
}
