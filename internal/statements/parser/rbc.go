package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// rbcExpectedColumns is matched tolerantly: exports differ slightly between
// account products, so 6 of 8 is enough to claim the file.
var rbcExpectedColumns = []string{
	"account type", "account number", "transaction date", "cheque number",
	"description 1", "description 2", "cad$", "usd$",
}

const rbcMinColumnMatches = 6

// RBCBusinessRecognizer handles RBC business banking CSV exports. Amounts
// live in a CAD$ column with a USD$ fallback when the primary is empty;
// the sign is a plain leading minus (parentheses are cosmetic in this
// format and carry no sign).
type RBCBusinessRecognizer struct{}

func NewRBCBusinessRecognizer() *RBCBusinessRecognizer {
	return &RBCBusinessRecognizer{}
}

func (p *RBCBusinessRecognizer) Name() string { return "rbc-business" }

func (p *RBCBusinessRecognizer) Detect(content []byte, filename string) bool {
	if !hasExtension(filename, ".csv") {
		return false
	}
	text, err := normalize.Decode(content)
	if err != nil {
		return false
	}
	headers, _, err := headerRows(text)
	if err != nil {
		return false
	}
	matches := 0
	for _, want := range rbcExpectedColumns {
		if columnIndex(headers, want) >= 0 {
			matches++
		}
	}
	return matches >= rbcMinColumnMatches
}

func (p *RBCBusinessRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	text, err := normalize.Decode(content)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}
	headers, rows, err := headerRows(text)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}
	if len(rows) == 0 {
		return statements.StatementMetadata{}, nil, statements.ErrInvalidStatementData
	}

	dateCol := columnIndex(headers, "transaction date")
	desc1Col := columnIndex(headers, "description 1")
	desc2Col := columnIndex(headers, "description 2")
	cadCol := columnIndex(headers, "cad$")
	usdCol := columnIndex(headers, "usd$")
	accountCol := columnIndex(headers, "account number")

	var records []statements.TransactionRecord
	for _, row := range rows {
		if tx, ok := p.parseRow(row, dateCol, desc1Col, desc2Col, cadCol, usdCol); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      "RBC Business Banking",
		AccountNumber: "Unknown",
		AccountAbbr:   "RBC Business",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeRBCBusiness,
	}
	if num := field(rows[0], accountCol); num != "" {
		meta.AccountNumber = num
		meta.AccountAbbr = "RBC-" + accountSuffix(num)
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func (p *RBCBusinessRecognizer) parseRow(row []string, dateCol, desc1Col, desc2Col, cadCol, usdCol int) (statements.TransactionRecord, bool) {
	dateStr := field(row, dateCol)
	if dateStr == "" {
		return statements.TransactionRecord{}, false
	}
	date, err := normalize.Date(dateStr)
	if err != nil {
		date = normalize.Today()
	}

	var parts []string
	if d1 := field(row, desc1Col); d1 != "" {
		parts = append(parts, d1)
	}
	if d2 := field(row, desc2Col); d2 != "" {
		parts = append(parts, d2)
	}
	item := strings.Join(parts, " ")
	if item == "" {
		item = statements.UnknownItem
	}

	amountStr := field(row, cadCol)
	if amountStr == "" {
		amountStr = field(row, usdCol)
	}
	amount, direction := rbcAmount(amountStr)
	if amount.IsZero() {
		return statements.TransactionRecord{}, false
	}

	return statements.TransactionRecord{
		Item:      item,
		Date:      date,
		Amount:    amount,
		Direction: direction,
	}, true
}

// rbcAmount strips parentheses before the sign check so they never flip
// the direction; only a leading minus marks money-out.
func rbcAmount(raw string) (decimal.Decimal, statements.Direction) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")

	magnitude, direction, err := normalize.Amount(s)
	if err != nil {
		return decimal.Zero, statements.DirectionIn
	}
	return magnitude, direction
}

func accountSuffix(num string) string {
	if i := strings.LastIndex(num, "-"); i >= 0 {
		return num[i+1:]
	}
	if len(num) > 4 {
		return num[len(num)-4:]
	}
	return num
}
