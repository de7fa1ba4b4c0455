package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is one account's view of one obligation with a counterparty.
// A positive Amount means the counterparty owes the owner.
type Debt struct {
	DebtID          string          `json:"debtID"`
	OwnerAccountID  string          `json:"ownerAccountID"`
	UserID          string          `json:"userID"`        // counterparty contact, owned by OwnerAccountID
	CorrelationID   string          `json:"correlationID"` // shared by both mirrored rows, never a foreign key
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Timestamp       time.Time       `json:"timestamp"`
	Note            string          `json:"note"`
	ReceiptID       *string         `json:"receiptID,omitempty"`
	LockedTimestamp *time.Time      `json:"lockedTimestamp,omitempty"`
	AuditFields
}

// IsLocked reports whether the debt is frozen and eligible for sync comparison.
func (d Debt) IsLocked() bool {
	return d.LockedTimestamp != nil
}

// ForeignView returns the debt as seen by the counterparty: the sign is
// flipped and the owner-private note is stripped.
func (d Debt) ForeignView() Debt {
	view := d
	view.Amount = d.Amount.Neg()
	view.Note = ""
	return view
}

// MirrorsValue reports whether other carries the same obligation seen from
// the opposite side (negated amount, same currency and transaction date).
func (d Debt) MirrorsValue(other Debt) bool {
	return d.Amount.Equal(other.Amount.Neg()) &&
		d.CurrencyCode == other.CurrencyCode &&
		d.Timestamp.Equal(other.Timestamp)
}

// SameLock reports whether both debts are locked at the same instant.
func SameLock(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(*b)
}

// DebtView is a debt as presented to one caller. Foreign views come from the
// counterparty's row and never carry the owner's note.
type DebtView struct {
	Debt
	Foreign bool        `json:"foreign"`
	Status  *SyncStatus `json:"status,omitempty"`
}
