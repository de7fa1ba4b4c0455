package accounting_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, price, quantity string, consumers ...domain.ItemConsumer) domain.ReceiptItem {
	return domain.ReceiptItem{
		ItemID:    id,
		Price:     decimal.RequireFromString(price),
		Quantity:  decimal.RequireFromString(quantity),
		Consumers: consumers,
	}
}

func consumer(userID string, weight int64) domain.ItemConsumer {
	return domain.ItemConsumer{UserID: userID, Weight: weight}
}

func shareMap(shares []accounting.ParticipantShare) map[string]string {
	m := make(map[string]string, len(shares))
	for _, s := range shares {
		m[s.UserID] = s.Amount.StringFixed(2)
	}
	return m
}

func TestAllocateReceipt_TwoItemsScenario(t *testing.T) {
	items := []domain.ReceiptItem{
		item("i1", "10", "1", consumer("userA", 1), consumer("userB", 1)),
		item("i2", "20", "1", consumer("userA", 1)),
	}

	shares, err := accounting.AllocateReceipt(items, 2)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"userA": "25.00", "userB": "5.00"}, shareMap(shares))
}

func TestAllocateReceipt_ThreeWaySplitUsesLargestRemainder(t *testing.T) {
	items := []domain.ReceiptItem{
		item("i1", "10", "1", consumer("a", 1), consumer("b", 1), consumer("c", 1)),
	}

	shares, err := accounting.AllocateReceipt(items, 2)

	require.NoError(t, err)
	// 3.333.. each; the single leftover cent goes to the smallest user ID.
	assert.Equal(t, map[string]string{"a": "3.34", "b": "3.33", "c": "3.33"}, shareMap(shares))
}

func TestAllocateReceipt_WeightsAndQuantity(t *testing.T) {
	items := []domain.ReceiptItem{
		item("i1", "2.50", "3", consumer("a", 2), consumer("b", 1)),
	}

	shares, err := accounting.AllocateReceipt(items, 2)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "5.00", "b": "2.50"}, shareMap(shares))
}

func TestAllocateReceipt_ZeroWeightParticipantExcluded(t *testing.T) {
	items := []domain.ReceiptItem{
		item("i1", "9", "1", consumer("a", 1), consumer("ghost", 0)),
		item("i2", "1", "1"),
	}

	shares, err := accounting.AllocateReceipt(items, 2)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "9.00"}, shareMap(shares))
	assert.True(t, accounting.AllocatedTotal(items, 2).Equal(decimal.NewFromInt(9)))
}

func TestAllocateReceipt_NegativeWeight(t *testing.T) {
	items := []domain.ReceiptItem{
		item("i1", "9", "1", consumer("a", -1)),
	}

	_, err := accounting.AllocateReceipt(items, 2)

	assert.ErrorIs(t, err, accounting.ErrNegativeWeight)
}

func TestAllocateReceipt_ZeroPrecisionCurrency(t *testing.T) {
	items := []domain.ReceiptItem{
		item("i1", "1000", "1", consumer("a", 1), consumer("b", 1), consumer("c", 1)),
	}

	shares, err := accounting.AllocateReceipt(items, 0)

	require.NoError(t, err)
	sum := decimal.Zero
	for _, s := range shares {
		assert.True(t, s.Amount.Equal(s.Amount.Round(0)), "share %s must be whole units", s.Amount)
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1000)))
}

func TestAllocateReceipt_Conservation(t *testing.T) {
	users := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	for n := 1; n <= 25; n++ {
		t.Run(fmt.Sprintf("items=%d", n), func(t *testing.T) {
			items := make([]domain.ReceiptItem, 0, n)
			for i := 0; i < n; i++ {
				price := decimal.New(int64(97*i+13), -2)
				quantity := decimal.New(int64(i%4+1), 0)
				var consumers []domain.ItemConsumer
				for j, u := range users {
					if (i+j)%3 != 0 {
						consumers = append(consumers, consumer(u, int64((i*j)%5+1)))
					}
				}
				items = append(items, domain.ReceiptItem{ItemID: fmt.Sprint(i), Price: price, Quantity: quantity, Consumers: consumers})
			}

			shares, err := accounting.AllocateReceipt(items, 2)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s.Amount)
			}
			assert.True(t, sum.Equal(accounting.AllocatedTotal(items, 2)), "sum %s != total %s", sum, accounting.AllocatedTotal(items, 2))
		})
	}
}
