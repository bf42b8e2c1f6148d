package parser

import (
	"regexp"
	"strings"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

var tdCreditDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// TDCreditRecognizer handles TD credit card CSV exports. Same headerless
// positional layout as the chequing variant but with MM/DD/YYYY dates;
// card payment rows ("PAYMENT - THANK YOU") are dropped because they are
// transfers, not spending.
type TDCreditRecognizer struct{}

func NewTDCreditRecognizer() *TDCreditRecognizer {
	return &TDCreditRecognizer{}
}

func (p *TDCreditRecognizer) Name() string { return "td-credit" }

func (p *TDCreditRecognizer) Detect(content []byte, filename string) bool {
	if !hasExtension(filename, ".csv") {
		return false
	}
	text, err := normalize.Decode(content)
	if err != nil {
		return false
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return false
	}
	parts, err := splitRecord(lines[0])
	if err != nil || len(parts) < 4 {
		return false
	}
	return tdCreditDate.MatchString(parts[0])
}

func (p *TDCreditRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	text, err := normalize.Decode(content)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}

	var records []statements.TransactionRecord
	for _, line := range splitLines(text) {
		if line == "" {
			continue
		}
		if tx, ok := p.parseLine(line); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      "TD Bank",
		AccountNumber: "Unknown",
		AccountAbbr:   "TD-CREDIT",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeTDCredit,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func (p *TDCreditRecognizer) parseLine(line string) (statements.TransactionRecord, bool) {
	parts, err := splitRecord(line)
	if err != nil || len(parts) < 4 {
		return statements.TransactionRecord{}, false
	}

	dateStr := field(parts, 0)
	if !tdCreditDate.MatchString(dateStr) {
		return statements.TransactionRecord{}, false
	}

	description := field(parts, 1)
	if strings.EqualFold(description, "PAYMENT - THANK YOU") {
		return statements.TransactionRecord{}, false
	}

	debit, credit := field(parts, 2), field(parts, 3)
	var amountStr string
	var direction statements.Direction
	switch {
	case debit != "" && credit == "":
		amountStr, direction = debit, statements.DirectionOut
	case credit != "" && debit == "":
		amountStr, direction = credit, statements.DirectionIn
	default:
		// Both or neither filled: not a transaction row.
		return statements.TransactionRecord{}, false
	}

	date, err := normalize.Date(dateStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}
	amount, err := normalize.Magnitude(amountStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}

	if description == "" {
		description = statements.UnknownItem
	}
	return statements.TransactionRecord{
		Item:      description,
		Date:      date,
		Amount:    amount,
		Direction: direction,
	}, true
}
