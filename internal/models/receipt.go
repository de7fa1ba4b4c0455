package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Receipt struct {
	ReceiptID       string     `db:"receipt_id"`
	OwnerAccountID  string     `db:"owner_account_id"`
	Name            string     `db:"name"`
	CurrencyCode    string     `db:"currency_code"`
	Issued          time.Time  `db:"issued"`
	LockedTimestamp *time.Time `db:"locked_timestamp"`
	AuditFields
}

type ReceiptItem struct {
	ItemID    string          `db:"item_id"`
	ReceiptID string          `db:"receipt_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Quantity  decimal.Decimal `db:"quantity"`
	AuditFields
}

type ItemConsumer struct {
	ItemID string `db:"item_id"`
	UserID string `db:"user_id"`
	Weight int64  `db:"weight"`
}
