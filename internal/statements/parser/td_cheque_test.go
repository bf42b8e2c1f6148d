package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f228476653/moneyTracking/internal/statements"
)

func TestTDChequeRecognizer_Detect(t *testing.T) {
	p := NewTDChequeRecognizer()

	t.Run("headerless iso-dated csv", func(t *testing.T) {
		assert.True(t, p.Detect([]byte("2025-01-15,Grocery Store,50.00,,1000.00\n"), "accountactivity.csv"))
	})

	t.Run("header row declines", func(t *testing.T) {
		assert.False(t, p.Detect([]byte("Date,Description,Amount\n2025-01-15,Coffee,4.50\n"), "export.csv"))
	})

	t.Run("wrong date shape declines", func(t *testing.T) {
		assert.False(t, p.Detect([]byte("01/15/2025,Store,45.00,,500.00\n"), "export.csv"))
	})

	t.Run("non-csv extension declines", func(t *testing.T) {
		assert.False(t, p.Detect([]byte("2025-01-15,Store,45.00,,500.00\n"), "export.txt"))
	})
}

func TestTDChequeRecognizer_Extract(t *testing.T) {
	p := NewTDChequeRecognizer()
	content := []byte("2025-01-15,Grocery Store,50.00,,1000.00\n" +
		"2025-01-16,Salary,,2000.00,3000.00\n" +
		"2025-01-17,Balance Row,,,3000.00\n")

	meta, records, err := p.Extract(content, "accountactivity.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)

	t.Run("debit column is money-out", func(t *testing.T) {
		assert.Equal(t, "Grocery Store", records[0].Item)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("50")))
		assert.Equal(t, statements.DirectionOut, records[0].Direction)
		assert.True(t, records[0].Date.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("credit column is money-in", func(t *testing.T) {
		assert.Equal(t, "Salary", records[1].Item)
		assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("2000")))
		assert.Equal(t, statements.DirectionIn, records[1].Direction)
	})

	t.Run("metadata spans observed dates", func(t *testing.T) {
		assert.Equal(t, "TD Bank", meta.BankName)
		assert.Equal(t, statements.TypeTDCheque, meta.StatementType)
		assert.True(t, meta.FromDate.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
		assert.True(t, meta.ToDate.Equal(time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("unparsable amount drops the row silently", func(t *testing.T) {
		_, records, err := p.Extract([]byte("2025-01-18,Bad Row,abc,,100.00\n"+
			"2025-01-19,Good Row,10.00,,90.00\n"), "a.csv")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Good Row", records[0].Item)
	})

	t.Run("debit wins when both columns carry a value", func(t *testing.T) {
		_, records, err := p.Extract([]byte("2025-01-18,Odd Row,25.00,30.00,100.00\n"), "a.csv")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, statements.DirectionOut, records[0].Direction)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("25")))
	})
}
