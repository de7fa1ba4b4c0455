package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is one row of the debts table.
type Debt struct {
	DebtID          string          `db:"debt_id"`
	OwnerAccountID  string          `db:"owner_account_id"`
	UserID          string          `db:"user_id"`
	CorrelationID   string          `db:"correlation_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Timestamp       time.Time       `db:"timestamp"`
	Note            string          `db:"note"`
	ReceiptID       *string         `db:"receipt_id"`
	LockedTimestamp *time.Time      `db:"locked_timestamp"`
	AuditFields
}

// SyncIntention is one row of the debts_sync_intentions table.
type SyncIntention struct {
	DebtID          string    `db:"debt_id"`
	OwnerAccountID  string    `db:"owner_account_id"`
	LockedTimestamp time.Time `db:"locked_timestamp"`
	AuditFields
}
