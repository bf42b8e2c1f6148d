package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// bmoExpectedColumns must all be present — an exact five-column signature,
// unlike the tolerant RBC match.
var bmoExpectedColumns = []string{
	"first bank card", "transaction type", "date posted", "transaction amount", "description",
}

const bmoDateLayout = "20060102"

// BMORecognizer handles BMO bank account CSV exports. Direction comes from
// the explicit transaction-type column, with the numeric sign as fallback;
// dates are compact YYYYMMDD.
type BMORecognizer struct{}

func NewBMORecognizer() *BMORecognizer {
	return &BMORecognizer{}
}

func (p *BMORecognizer) Name() string { return "bmo" }

func (p *BMORecognizer) Detect(content []byte, filename string) bool {
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
	for _, want := range bmoExpectedColumns {
		if columnIndex(headers, want) < 0 {
			return false
		}
	}
	return true
}

func (p *BMORecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
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

	cardCol := columnIndex(headers, "first bank card")
	typeCol := columnIndex(headers, "transaction type")
	dateCol := columnIndex(headers, "date posted")
	amountCol := columnIndex(headers, "transaction amount")
	descCol := columnIndex(headers, "description")

	var records []statements.TransactionRecord
	for _, row := range rows {
		if tx, ok := p.parseRow(row, typeCol, dateCol, amountCol, descCol); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      "BMO Bank of Montreal",
		AccountNumber: "Unknown",
		AccountAbbr:   "BMO",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeBMO,
	}
	if num := strings.Trim(field(rows[0], cardCol), "'\""); num != "" {
		meta.AccountNumber = num
		if len(num) >= 4 {
			meta.AccountAbbr = "BMO-" + num[len(num)-4:]
		}
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func (p *BMORecognizer) parseRow(row []string, typeCol, dateCol, amountCol, descCol int) (statements.TransactionRecord, bool) {
	dateStr := field(row, dateCol)
	if dateStr == "" {
		return statements.TransactionRecord{}, false
	}
	date, err := parseBMODate(dateStr)
	if err != nil {
		date = normalize.Today()
	}

	item := field(row, descCol)
	if item == "" {
		item = statements.UnknownItem
	}

	amountStr := strings.Trim(field(row, amountCol), "'\"")
	if amountStr == "" {
		return statements.TransactionRecord{}, false
	}
	signed, err := decimal.NewFromString(amountStr)
	if err != nil {
		// Unparsable amounts drop the row rather than aborting the file.
		return statements.TransactionRecord{}, false
	}

	txType := strings.ToUpper(field(row, typeCol))
	direction := statements.DirectionIn
	switch {
	case txType == "DEBIT" || signed.IsNegative():
		direction = statements.DirectionOut
	case txType == "CREDIT" || signed.IsPositive():
		direction = statements.DirectionIn
	}

	amount := signed.Abs().Round(2)
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

func parseBMODate(raw string) (time.Time, error) {
	s := strings.Trim(strings.TrimSpace(raw), "'\"")
	if t, err := time.Parse(bmoDateLayout, s); err == nil {
		return t, nil
	}
	return normalize.Date(s)
}
