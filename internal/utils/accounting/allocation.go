package accounting

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrNegativeWeight is returned when an item consumer carries a negative weight.
var ErrNegativeWeight = errors.New("consumer weight must not be negative")

// extraDigits is how many digits past the minor unit intermediate shares keep.
const extraDigits = 12

// ParticipantShare is what one participant owes for a receipt, in the
// receipt currency, rounded to its minor unit.
type ParticipantShare struct {
	UserID string
	Amount decimal.Decimal
}

// AllocateReceipt splits the cost of items among their consumers.
//
// Each item total (price * quantity) is divided proportionally to the
// consumer weights. Shares are summed per participant and then converted to
// minor units with the largest-remainder method, so the rounded shares add
// up exactly to the rounded sum of all allocated item totals. Ties are
// broken by user ID. Items without any positive weight are not allocated,
// and participants whose total weight is zero are left out of the result.
func AllocateReceipt(items []domain.ReceiptItem, precision int32) ([]ParticipantShare, error) {
	exact := make(map[string]decimal.Decimal)
	scale := precision + extraDigits

	for _, item := range items {
		weightSum := int64(0)
		for _, c := range item.Consumers {
			if c.Weight < 0 {
				return nil, fmt.Errorf("%w: item %s, user %s", ErrNegativeWeight, item.ItemID, c.UserID)
			}
			weightSum += c.Weight
		}
		if weightSum == 0 {
			continue
		}

		total := item.Total()
		divisor := decimal.NewFromInt(weightSum)
		for _, c := range item.Consumers {
			if c.Weight == 0 {
				continue
			}
			share := total.Mul(decimal.NewFromInt(c.Weight)).DivRound(divisor, scale)
			exact[c.UserID] = exact[c.UserID].Add(share)
		}
	}

	return distributeLargestRemainder(exact, precision), nil
}

type remainderEntry struct {
	userID    string
	floor     decimal.Decimal
	remainder decimal.Decimal
}

func distributeLargestRemainder(exact map[string]decimal.Decimal, precision int32) []ParticipantShare {
	if len(exact) == 0 {
		return []ParticipantShare{}
	}

	unit := decimal.New(1, -precision)
	total := decimal.Zero
	floorSum := decimal.Zero
	entries := make([]remainderEntry, 0, len(exact))
	for userID, amount := range exact {
		floor := amount.RoundFloor(precision)
		entries = append(entries, remainderEntry{userID: userID, floor: floor, remainder: amount.Sub(floor)})
		total = total.Add(amount)
		floorSum = floorSum.Add(floor)
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].remainder.Cmp(entries[j].remainder); c != 0 {
			return c > 0
		}
		return entries[i].userID < entries[j].userID
	})

	leftover := total.Round(precision).Sub(floorSum).Div(unit).IntPart()
	for i := range entries {
		if int64(i) < leftover {
			entries[i].floor = entries[i].floor.Add(unit)
		}
	}

	shares := make([]ParticipantShare, len(entries))
	for i, e := range entries {
		shares[i] = ParticipantShare{UserID: e.userID, Amount: e.floor}
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].UserID < shares[j].UserID })
	return shares
}

// AllocatedTotal is the sum of all item totals that have at least one
// positively weighted consumer, rounded to the minor unit.
func AllocatedTotal(items []domain.ReceiptItem, precision int32) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		for _, c := range item.Consumers {
			if c.Weight > 0 {
				total = total.Add(item.Total())
				break
			}
		}
	}
	return total.Round(precision)
}
