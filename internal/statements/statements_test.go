package statements

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("min and max across records", func(t *testing.T) {
		records := []TransactionRecord{
			{Date: day(10)},
			{Date: day(3)},
			{Date: day(21)},
		}
		from, to, ok := DateRange(records)
		require.True(t, ok)
		assert.True(t, from.Equal(day(3)))
		assert.True(t, to.Equal(day(21)))
	})

	t.Run("zero dates are skipped", func(t *testing.T) {
		records := []TransactionRecord{
			{Date: time.Time{}},
			{Date: day(5)},
		}
		from, to, ok := DateRange(records)
		require.True(t, ok)
		assert.True(t, from.Equal(day(5)))
		assert.True(t, to.Equal(day(5)))
	})

	t.Run("no dated records", func(t *testing.T) {
		_, _, ok := DateRange(nil)
		assert.False(t, ok)
	})
}

func TestHoldingTransaction(t *testing.T) {
	h := Holding{
		Symbol:      "ENB",
		Name:        "Enbridge Inc",
		Shares:      decimal.RequireFromString("162.2873"),
		Price:       decimal.RequireFromString("61.75"),
		MarketValue: decimal.RequireFromString("10021.24"),
		BookCost:    decimal.RequireFromString("9500.57"),
		Currency:    "CAD",
	}
	date := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	tx := h.Transaction(date)
	assert.Equal(t, "ENB - Enbridge Inc", tx.Item)
	assert.True(t, tx.Date.Equal(date))
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("10021.24")))
	assert.Equal(t, DirectionIn, tx.Direction)
}
