package parser

import (
	"regexp"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// tdChequeDate matches the headerless TD chequing export's leading field.
var tdChequeDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TDChequeRecognizer handles TD chequing account CSV exports. The files
// carry no header row; the layout is date, description, debit, credit,
// balance, and direction is positional: a value in the debit field is
// money-out, a value in the adjacent credit field is money-in.
type TDChequeRecognizer struct{}

func NewTDChequeRecognizer() *TDChequeRecognizer {
	return &TDChequeRecognizer{}
}

func (p *TDChequeRecognizer) Name() string { return "td-cheque" }

func (p *TDChequeRecognizer) Detect(content []byte, filename string) bool {
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
	if err != nil || len(parts) < 3 {
		return false
	}
	return tdChequeDate.MatchString(parts[0])
}

func (p *TDChequeRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
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
		AccountAbbr:   "TD-CHEQUE",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeTDCheque,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

// parseLine parses one positional record. Rows with an unparsable date or
// no amount in either position are skipped, not fatal.
func (p *TDChequeRecognizer) parseLine(line string) (statements.TransactionRecord, bool) {
	parts, err := splitRecord(line)
	if err != nil || len(parts) < 4 {
		return statements.TransactionRecord{}, false
	}

	dateStr := field(parts, 0)
	if !tdChequeDate.MatchString(dateStr) {
		return statements.TransactionRecord{}, false
	}

	debit, credit := field(parts, 2), field(parts, 3)
	var amountStr string
	var direction statements.Direction
	switch {
	case debit != "":
		amountStr, direction = debit, statements.DirectionOut
	case credit != "":
		amountStr, direction = credit, statements.DirectionIn
	default:
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

	item := field(parts, 1)
	if item == "" {
		item = statements.UnknownItem
	}
	return statements.TransactionRecord{
		Item:      item,
		Date:      date,
		Amount:    amount,
		Direction: direction,
	}, true
}
