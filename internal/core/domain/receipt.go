package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is a shared expense owned by one account. Only locked receipts
// can be turned into debts.
type Receipt struct {
	ReceiptID       string        `json:"receiptID"`
	OwnerAccountID  string        `json:"ownerAccountID"`
	Name            string        `json:"name"`
	CurrencyCode    string        `json:"currencyCode"`
	Issued          time.Time     `json:"issued"`
	LockedTimestamp *time.Time    `json:"lockedTimestamp,omitempty"`
	Items           []ReceiptItem `json:"items"`
	AuditFields
}

// IsLocked reports whether the receipt is frozen.
func (r Receipt) IsLocked() bool {
	return r.LockedTimestamp != nil
}

// ReceiptItem is one line of a receipt.
type ReceiptItem struct {
	ItemID    string          `json:"itemID"`
	ReceiptID string          `json:"receiptID"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Consumers []ItemConsumer  `json:"consumers"`
	AuditFields
}

// Total is price * quantity.
func (i ReceiptItem) Total() decimal.Decimal {
	return i.Price.Mul(i.Quantity)
}

// ItemConsumer is a user's consumption weight for an item.
type ItemConsumer struct {
	UserID string `json:"userID"`
	Weight int64  `json:"weight"`
}

// PropagatedDebt is the outcome of allocating a receipt for one participant.
// Debt is the owner-side row; Mirrored tells whether the participant's own
// copy was written too.
type PropagatedDebt struct {
	UserID    string          `json:"userID"`
	Amount    decimal.Decimal `json:"amount"`
	Precision int32           `json:"-"`
	Debt      *Debt           `json:"debt,omitempty"`
	Mirrored  bool            `json:"mirrored"`
}
