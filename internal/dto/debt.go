package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest records a manual debt. A positive amount means the user owes the caller.
type CreateDebtRequest struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
	UserID       string          `json:"userID" binding:"required"`
	Note         string          `json:"note" binding:"max=500"`
	Timestamp    *time.Time      `json:"timestamp"`
}

// UpdateDebtRequest uses pointers to differentiate omitted fields from zero values.
type UpdateDebtRequest struct {
	Amount       *decimal.Decimal `json:"amount" swaggertype:"string"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,currency"`
	Timestamp    *time.Time       `json:"timestamp"`
	Note         *string          `json:"note" binding:"omitempty,max=500"`
}

// OnlyNote reports whether the request touches nothing but the note.
func (r UpdateDebtRequest) OnlyNote() bool {
	return r.Amount == nil && r.CurrencyCode == nil && r.Timestamp == nil
}

// ListDebtsParams defines query parameters for listing debts.
type ListDebtsParams struct {
	UserID    string `form:"userId"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListDebtsResponse is one page of debts.
type ListDebtsResponse struct {
	Debts     []DebtResponse `json:"debts"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// DebtResponse is a debt row together with its derived sync status.
type DebtResponse struct {
	DebtID          string             `json:"debtID"`
	UserID          string             `json:"userID"`
	Amount          decimal.Decimal    `json:"amount" swaggertype:"string"`
	CurrencyCode    string             `json:"currencyCode"`
	Timestamp       time.Time          `json:"timestamp"`
	Note            string             `json:"note"`
	ReceiptID       *string            `json:"receiptID,omitempty"`
	LockedTimestamp *time.Time         `json:"lockedTimestamp,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	Foreign         bool               `json:"foreign"`
	Status          *domain.SyncStatus `json:"status,omitempty"`
}

// ToDebtResponse converts a domain.Debt to DebtResponse DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:          d.DebtID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Timestamp:       d.Timestamp,
		Note:            d.Note,
		ReceiptID:       d.ReceiptID,
		LockedTimestamp: d.LockedTimestamp,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDebtViewResponse converts a DebtView (own or foreign) to DebtResponse DTO.
func ToDebtViewResponse(v *domain.DebtView) DebtResponse {
	res := ToDebtResponse(&v.Debt)
	res.Foreign = v.Foreign
	if v.Status != nil {
		status := *v.Status
		res.Status = &status
	}
	return res
}

// ToDebtResponses converts a slice of domain.Debt to []DebtResponse.
func ToDebtResponses(debts []domain.Debt) []DebtResponse {
	res := make([]DebtResponse, len(debts))
	for i := range debts {
		res[i] = ToDebtResponse(&debts[i])
	}
	return res
}

// CreateDebtResponse returns the identity of a freshly created debt.
type CreateDebtResponse struct {
	DebtID string `json:"debtID"`
}
