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

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for receipts, their items
// and consumption weights.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryWithTx {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptRepositoryWithTx = (*PgxReceiptRepository)(nil)

const receiptColumns = `receipt_id, owner_account_id, name, currency_code, issued, locked_timestamp, created_at`

func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReceiptID,
		m.OwnerAccountID,
		m.Name,
		m.CurrencyCode,
		m.Issued,
		m.LockedTimestamp,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save receipt %s: %w", m.ReceiptID, err)
	}
	return nil
}

// SaveReceiptItem inserts the item and queues one insert per consumer in a batch.
func (r *PgxReceiptRepository) SaveReceiptItem(ctx context.Context, item domain.ReceiptItem) error {
	modelItem, consumers := mapping.ToModelReceiptItem(item)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO receipt_items (item_id, receipt_id, name, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		modelItem.ItemID,
		modelItem.ReceiptID,
		modelItem.Name,
		modelItem.Price,
		modelItem.Quantity,
		modelItem.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert receipt item "+modelItem.ItemID, err)
	}

	batch := &pgx.Batch{}
	for _, c := range consumers {
		batch.Queue(`INSERT INTO item_consumers (item_id, user_id, weight) VALUES ($1, $2, $3);`,
			c.ItemID, c.UserID, c.Weight)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert consumers for item "+modelItem.ItemID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE receipt_id = $1;`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt: %w", err)
	}
	modelReceipt, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Receipt])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT item_id, receipt_id, name, price, quantity, created_at
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY created_at, item_id;`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt items: %w", err)
	}
	modelItems, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ReceiptItem])
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipt items: %w", err)
	}

	rows, err = r.Pool.Query(ctx, `
		SELECT c.item_id, c.user_id, c.weight
		FROM item_consumers c
		JOIN receipt_items it ON it.item_id = c.item_id
		WHERE it.receipt_id = $1
		ORDER BY c.item_id, c.user_id;`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item consumers: %w", err)
	}
	modelConsumers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ItemConsumer])
	if err != nil {
		return nil, fmt.Errorf("failed to scan item consumers: %w", err)
	}

	receipt := mapping.ToDomainReceipt(modelReceipt)
	receipt.Items = make([]domain.ReceiptItem, len(modelItems))
	for i, it := range modelItems {
		receipt.Items[i] = mapping.ToDomainReceiptItem(it, modelConsumers)
	}
	return &receipt, nil
}

func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, ownerAccountID string) ([]domain.Receipt, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+receiptColumns+` FROM receipts
		WHERE owner_account_id = $1
		ORDER BY issued DESC, receipt_id;`, ownerAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Receipt])
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipts: %w", err)
	}
	receipts := make([]domain.Receipt, len(ms))
	for i, m := range ms {
		receipts[i] = mapping.ToDomainReceipt(m)
	}
	return receipts, nil
}

func (r *PgxReceiptRepository) UpdateReceiptLock(ctx context.Context, receiptID, ownerAccountID string, lockedTimestamp *time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE receipts SET locked_timestamp = $1
		WHERE receipt_id = $2 AND owner_account_id = $3;`,
		lockedTimestamp, receiptID, ownerAccountID)
	if err != nil {
		return fmt.Errorf("failed to update receipt lock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("receipt %s not found: %w", receiptID, apperrors.ErrNotFound)
	}
	return nil
}
