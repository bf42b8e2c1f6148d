package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f228476653/moneyTracking/internal/statements"
)

const bmoHeader = "First Bank Card,Transaction Type,Date Posted,Transaction Amount,Description\n"

func TestBMORecognizer_Detect(t *testing.T) {
	p := NewBMORecognizer()

	t.Run("exact five-column signature claims the file", func(t *testing.T) {
		content := []byte(bmoHeader + "'500012345678',DEBIT,20250115,-42.50,COFFEE SHOP\n")
		assert.True(t, p.Detect(content, "export.csv"))
	})

	t.Run("any missing column declines", func(t *testing.T) {
		content := []byte("First Bank Card,Date Posted,Transaction Amount,Description\n" +
			"'500012345678',20250115,-42.50,COFFEE SHOP\n")
		assert.False(t, p.Detect(content, "export.csv"))
	})
}

func TestBMORecognizer_Extract(t *testing.T) {
	p := NewBMORecognizer()
	content := []byte(bmoHeader +
		"'500012345678',DEBIT,20250115,-42.50,COFFEE SHOP\n" +
		"'500012345678',CREDIT,20250116,1000.00,PAYROLL DEPOSIT\n" +
		"'500012345678',DEBIT,20250117,15.75,PARKING\n" +
		"'500012345678',DEBIT,20250118,0.00,VOID\n")

	meta, records, err := p.Extract(content, "export.csv")
	require.NoError(t, err)
	require.Len(t, records, 3)

	t.Run("compact dates parse", func(t *testing.T) {
		assert.True(t, records[0].Date.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("debit type is money-out", func(t *testing.T) {
		assert.Equal(t, "COFFEE SHOP", records[0].Item)
		assert.Equal(t, statements.DirectionOut, records[0].Direction)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("42.50")))
	})

	t.Run("credit type is money-in", func(t *testing.T) {
		assert.Equal(t, "PAYROLL DEPOSIT", records[1].Item)
		assert.Equal(t, statements.DirectionIn, records[1].Direction)
	})

	t.Run("debit type overrides a positive sign", func(t *testing.T) {
		assert.Equal(t, "PARKING", records[2].Item)
		assert.Equal(t, statements.DirectionOut, records[2].Direction)
	})

	t.Run("zero amounts are dropped", func(t *testing.T) {
		for _, r := range records {
			assert.NotEqual(t, "VOID", r.Item)
		}
	})

	t.Run("card number strips quoting and keeps last four", func(t *testing.T) {
		assert.Equal(t, "500012345678", meta.AccountNumber)
		assert.Equal(t, "BMO-5678", meta.AccountAbbr)
		assert.Equal(t, statements.TypeBMO, meta.StatementType)
	})
}
