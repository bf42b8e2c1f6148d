package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f228476653/moneyTracking/internal/statements"
)

const amexContent = "Date,Date Processed,Description,Card Member,Account #,Amount\n" +
	"15 Jan 2025,16 Jan 2025,GROCERY MART TORONTO,J DOE,XXX-12345,75.50\n" +
	"16 Jan 2025,17 Jan 2025,REFUND ACME STORE,J DOE,XXX-12345,-20.00\n" +
	"17 Jan 2025,18 Jan 2025,AIRLINE TICKETS,J DOE,XXX-12345,-30.00\n" +
	"18 Jan 2025,19 Jan 2025,PAYMENT RECEIVED - THANK YOU,J DOE,XXX-12345,-500.00\n"

func TestAmexRecognizer_Detect(t *testing.T) {
	p := NewAmexRecognizer()

	t.Run("full header set claims the file", func(t *testing.T) {
		assert.True(t, p.Detect([]byte(amexContent), "activity.csv"))
	})

	t.Run("missing card member column declines", func(t *testing.T) {
		content := []byte("Date,Date Processed,Description,Account #,Amount\n15 Jan 2025,,,,\n")
		assert.False(t, p.Detect(content, "activity.csv"))
	})
}

func TestAmexRecognizer_Extract(t *testing.T) {
	p := NewAmexRecognizer()
	meta, records, err := p.Extract([]byte(amexContent), "activity.csv")
	require.NoError(t, err)
	require.Len(t, records, 3)

	t.Run("positive amount is a charge", func(t *testing.T) {
		assert.Equal(t, "GROCERY MART TORONTO", records[0].Item)
		assert.Equal(t, statements.DirectionOut, records[0].Direction)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("75.50")))
	})

	t.Run("negative with refund keyword is money-in", func(t *testing.T) {
		assert.Equal(t, "REFUND ACME STORE", records[1].Item)
		assert.Equal(t, statements.DirectionIn, records[1].Direction)
		assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("20")))
	})

	t.Run("negative without refund keyword is still a charge", func(t *testing.T) {
		assert.Equal(t, "AIRLINE TICKETS", records[2].Item)
		assert.Equal(t, statements.DirectionOut, records[2].Direction)
		assert.True(t, records[2].Amount.Equal(decimal.RequireFromString("30")))
	})

	t.Run("payment rows are dropped", func(t *testing.T) {
		for _, r := range records {
			assert.NotContains(t, r.Item, "PAYMENT RECEIVED")
		}
	})

	t.Run("blank amount stays zero money-in", func(t *testing.T) {
		content := []byte("Date,Date Processed,Description,Card Member,Account #,Amount\n" +
			"15 Jan 2025,16 Jan 2025,MEMBERSHIP FEE WAIVED,J DOE,XXX-12345,\n")
		_, records, err := p.Extract(content, "activity.csv")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Amount.IsZero())
		assert.Equal(t, statements.DirectionIn, records[0].Direction)
	})

	t.Run("metadata carries the card account number", func(t *testing.T) {
		assert.Equal(t, "American Express", meta.BankName)
		assert.Equal(t, "XXX-12345", meta.AccountNumber)
		assert.Equal(t, "AMEX", meta.AccountAbbr)
		assert.Equal(t, statements.TypeCSV, meta.StatementType)
	})
}

func TestIsRefund(t *testing.T) {
	assert.True(t, isRefund("ADJUSTMENT ON INTEREST"))
	assert.True(t, isRefund("web qp payment credit"))
	assert.False(t, isRefund("GROCERY MART"))
}
