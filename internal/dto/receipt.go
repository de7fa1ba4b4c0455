package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils"
	"github.com/shopspring/decimal"
)

type CreateReceiptRequest struct {
	Name         string     `json:"name" binding:"required,max=200"`
	CurrencyCode string     `json:"currencyCode" binding:"required,currency"`
	Issued       *time.Time `json:"issued"`
}

type ItemConsumerRequest struct {
	UserID string `json:"userID" binding:"required"`
	Weight int64  `json:"weight" binding:"required,gt=0"`
}

type AddReceiptItemRequest struct {
	Name      string                `json:"name" binding:"required,max=200"`
	Price     decimal.Decimal       `json:"price" swaggertype:"string" example:"10.00"`
	Quantity  decimal.Decimal       `json:"quantity" swaggertype:"string" example:"1"`
	Consumers []ItemConsumerRequest `json:"consumers" binding:"dive"`
}

// PropagateDebtsRequest pins the receipt version the caller allocated against.
type PropagateDebtsRequest struct {
	LockedTimestamp time.Time `json:"lockedTimestamp" binding:"required"`
}

type ReceiptItemResponse struct {
	ItemID    string                `json:"itemID"`
	Name      string                `json:"name"`
	Price     decimal.Decimal       `json:"price" swaggertype:"string"`
	Quantity  decimal.Decimal       `json:"quantity" swaggertype:"string"`
	Consumers []domain.ItemConsumer `json:"consumers"`
}

type ReceiptResponse struct {
	ReceiptID       string                `json:"receiptID"`
	Name            string                `json:"name"`
	CurrencyCode    string                `json:"currencyCode"`
	Issued          time.Time             `json:"issued"`
	LockedTimestamp *time.Time            `json:"lockedTimestamp,omitempty"`
	Items           []ReceiptItemResponse `json:"items"`
	CreatedAt       time.Time             `json:"createdAt"`
}

func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	items := make([]ReceiptItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ReceiptItemResponse{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Consumers: it.Consumers,
		}
	}
	return ReceiptResponse{
		ReceiptID:       r.ReceiptID,
		Name:            r.Name,
		CurrencyCode:    r.CurrencyCode,
		Issued:          r.Issued,
		LockedTimestamp: r.LockedTimestamp,
		Items:           items,
		CreatedAt:       r.CreatedAt,
	}
}

func ToReceiptResponses(rs []domain.Receipt) []ReceiptResponse {
	res := make([]ReceiptResponse, len(rs))
	for i := range rs {
		res[i] = ToReceiptResponse(&rs[i])
	}
	return res
}

// PropagatedDebtResponse is the outcome of allocation for one participant.
type PropagatedDebtResponse struct {
	UserID   string        `json:"userID"`
	Amount   string        `json:"amount"`
	Debt     *DebtResponse `json:"debt,omitempty"`
	Mirrored bool          `json:"mirrored"`
}

func ToPropagatedDebtResponses(results []domain.PropagatedDebt) []PropagatedDebtResponse {
	res := make([]PropagatedDebtResponse, len(results))
	for i, r := range results {
		res[i] = PropagatedDebtResponse{
			UserID:   r.UserID,
			Amount:   utils.FormatWithPrecision(r.Amount, r.Precision),
			Mirrored: r.Mirrored,
		}
		if r.Debt != nil {
			d := ToDebtResponse(r.Debt)
			res[i].Debt = &d
		}
	}
	return res
}
