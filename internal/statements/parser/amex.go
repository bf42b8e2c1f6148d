package parser

import (
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// amexHeaders must all be present (case-insensitive) for a file to be
// claimed by this recognizer.
var amexHeaders = []string{"date", "date processed", "description", "card member", "account #", "amount"}

// refundKeywords flip a negative charge back to money-in. "WEB QP" is the
// issuer's online-payment credit marker.
var refundKeywords = []string{"REFUND", "CREDIT", "ADJUSTMENT", "REVERSAL", "RETURN", "WEB QP"}

var refundMatcher = ahocorasick.NewStringMatcher(refundKeywords)

const amexDateLayout = "02 Jan 2006"

// AmexRecognizer handles American Express credit card CSV exports.
//
// Direction rule: a negative amount is a charge (money-out) unless the
// description carries a refund keyword, in which case it is money-in; a
// positive amount is also a charge. "PAYMENT RECEIVED" rows are dropped.
type AmexRecognizer struct{}

func NewAmexRecognizer() *AmexRecognizer {
	return &AmexRecognizer{}
}

func (p *AmexRecognizer) Name() string { return "amex" }

func (p *AmexRecognizer) Detect(content []byte, filename string) bool {
	if !hasExtension(filename, ".csv") {
		return false
	}
	text, err := normalize.Decode(content)
	if err != nil {
		return false
	}
	lines := splitLines(text)
	if len(lines) < 2 {
		return false
	}
	parts, err := splitRecord(strings.ToLower(lines[0]))
	if err != nil {
		return false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for _, want := range amexHeaders {
		found := false
		for _, h := range parts {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (p *AmexRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	text, err := normalize.Decode(content)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}
	headers, rows, err := headerRows(text)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}

	dateCol := columnIndex(headers, "date")
	descCol := columnIndex(headers, "description")
	amountCol := columnIndex(headers, "amount")
	accountCol := columnIndex(headers, "account #")

	var records []statements.TransactionRecord
	for _, row := range rows {
		if tx, ok := p.parseRow(row, dateCol, descCol, amountCol); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      "American Express",
		AccountNumber: accountNumber(rows, accountCol),
		AccountAbbr:   "AMEX",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeCSV,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func (p *AmexRecognizer) parseRow(row []string, dateCol, descCol, amountCol int) (statements.TransactionRecord, bool) {
	dateStr := field(row, dateCol)
	if dateStr == "" {
		return statements.TransactionRecord{}, false
	}
	date, err := time.Parse(amexDateLayout, dateStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}

	description := field(row, descCol)
	if description == "" {
		description = statements.UnknownItem
	}
	if strings.Contains(strings.ToUpper(description), "PAYMENT RECEIVED") {
		return statements.TransactionRecord{}, false
	}

	amount, direction, ok := p.parseAmount(field(row, amountCol), description)
	if !ok {
		return statements.TransactionRecord{}, false
	}
	return statements.TransactionRecord{
		Item:      description,
		Date:      date,
		Amount:    amount,
		Direction: direction,
	}, true
}

// parseAmount applies the issuer's sign convention on top of the shared
// magnitude parser.
func (p *AmexRecognizer) parseAmount(raw, description string) (amount decimal.Decimal, direction statements.Direction, ok bool) {
	s := strings.TrimSpace(raw)
	negative := strings.HasPrefix(s, "-")

	magnitude, _, err := normalize.Amount(s)
	if err != nil {
		return magnitude, statements.DirectionIn, false
	}
	// A blank field is the shared zero money-in case, not a charge.
	if s == "" {
		return magnitude, statements.DirectionIn, true
	}

	if negative && isRefund(description) {
		return magnitude, statements.DirectionIn, true
	}
	return magnitude, statements.DirectionOut, true
}

func isRefund(description string) bool {
	hits := refundMatcher.Match([]byte(strings.ToUpper(description)))
	return len(hits) > 0
}

func accountNumber(rows [][]string, accountCol int) string {
	for _, row := range rows {
		if num := field(row, accountCol); num != "" {
			return num
		}
	}
	return "Unknown"
}
