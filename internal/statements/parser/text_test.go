package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f228476653/moneyTracking/internal/statements"
)

func TestTextRecognizer_Detect(t *testing.T) {
	p := NewTextRecognizer()
	assert.True(t, p.Detect(nil, "statement.txt"))
	assert.True(t, p.Detect(nil, "export.log"))
	assert.False(t, p.Detect(nil, "statement.csv"))
}

func TestTextRecognizer_Extract(t *testing.T) {
	p := NewTextRecognizer()
	content := []byte("2025-01-15 Coffee Shop 4.50\n" +
		"Refund from store ($20.00) 01/16/2025\n" +
		"this line has no numbers at all\n" +
		"2025-01-17 incomplete\n" +
		"\n" +
		"Large purchase 1,250.00 on 2025-01-18\n")

	meta, records, err := p.Extract(content, "statement.txt")
	require.NoError(t, err)
	require.Len(t, records, 3)

	t.Run("token order does not matter", func(t *testing.T) {
		assert.Equal(t, "Coffee Shop", records[0].Item)
		assert.True(t, records[0].Date.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("4.50")))
		assert.Equal(t, statements.DirectionIn, records[0].Direction)

		assert.Equal(t, "Refund from store", records[1].Item)
		assert.True(t, records[1].Date.Equal(time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, statements.DirectionOut, records[1].Direction)
	})

	t.Run("thousands separators are recognized", func(t *testing.T) {
		assert.Equal(t, "Large purchase on", records[2].Item)
		assert.True(t, records[2].Amount.Equal(decimal.RequireFromString("1250")))
	})

	t.Run("lines without both shapes are dropped silently", func(t *testing.T) {
		assert.Len(t, records, 3)
	})

	t.Run("metadata spans observed dates", func(t *testing.T) {
		assert.Equal(t, statements.TypeText, meta.StatementType)
		assert.True(t, meta.FromDate.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
		assert.True(t, meta.ToDate.Equal(time.Date(2025, time.January, 18, 0, 0, 0, 0, time.UTC)))
	})
}

func TestParseTextLine(t *testing.T) {
	t.Run("fewer than three tokens is not a transaction", func(t *testing.T) {
		_, ok := parseTextLine("2025-01-15 4.50")
		assert.False(t, ok)
	})

	t.Run("leftover tokens become the description", func(t *testing.T) {
		tx, ok := parseTextLine("2025-01-15 4.50 9.99")
		require.True(t, ok)
		assert.Equal(t, "9.99", tx.Item)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("4.50")))
	})
}
