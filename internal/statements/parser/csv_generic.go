package parser

import (
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

func init() {
	// Statement exports disagree on header casing and stray whitespace;
	// fold both before tag matching.
	gocsv.SetHeaderNormalizer(func(h string) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
}

// csvRow maps the header aliases seen across institutions onto one struct;
// gocsv fills whichever columns the file actually has.
type csvRow struct {
	Date        string `csv:"date"`
	TxDate      string `csv:"transaction_date"`
	PostDate    string `csv:"post_date"`
	PostingDate string `csv:"posting_date"`

	Description string `csv:"description"`
	Item        string `csv:"item"`
	Transaction string `csv:"transaction"`
	Memo        string `csv:"memo"`
	Payee       string `csv:"payee"`

	Amount   string `csv:"amount"`
	Debit    string `csv:"debit"`
	Credit   string `csv:"credit"`
	TxAmount string `csv:"transaction_amount"`
}

// bankNamePatterns guesses a display bank name from filename substrings.
// Checked in order; first hit wins.
var bankNamePatterns = []struct {
	substrings []string
	name       string
}{
	{[]string{"chase"}, "Chase Bank"},
	{[]string{"wells", "fargo"}, "Wells Fargo"},
	{[]string{"bank", "of america"}, "Bank of America"},
	{[]string{"citibank"}, "Citibank"},
}

// CSVRecognizer is the maximally permissive CSV fallback: it claims every
// .csv file, so it must rank below all institution-specific recognizers.
type CSVRecognizer struct{}

func NewCSVRecognizer() *CSVRecognizer {
	return &CSVRecognizer{}
}

func (p *CSVRecognizer) Name() string { return "csv" }

func (p *CSVRecognizer) Detect(content []byte, filename string) bool {
	return hasExtension(filename, ".csv")
}

func (p *CSVRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	text, err := normalize.Decode(content)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}

	var rows []csvRow
	if err := gocsv.UnmarshalString(text, &rows); err != nil {
		return statements.StatementMetadata{}, nil, statements.ErrInvalidStatementData
	}
	if len(rows) == 0 {
		return statements.StatementMetadata{}, nil, statements.ErrInvalidStatementData
	}

	var records []statements.TransactionRecord
	for _, row := range rows {
		if tx, ok := parseGenericRow(row); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      bankNameFromFilename(filename),
		AccountNumber: "Unknown",
		AccountAbbr:   "Unknown",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeCSV,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func parseGenericRow(row csvRow) (statements.TransactionRecord, bool) {
	dateStr := coalesce(row.Date, row.TxDate, row.PostDate, row.PostingDate)
	amountStr := coalesce(row.Amount, row.Debit, row.Credit, row.TxAmount)
	if dateStr == "" || amountStr == "" {
		return statements.TransactionRecord{}, false
	}

	date, err := normalize.Date(dateStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}
	amount, direction, err := normalize.Amount(amountStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}

	item := coalesce(row.Description, row.Item, row.Transaction, row.Memo, row.Payee)
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

func bankNameFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	for _, p := range bankNamePatterns {
		for _, sub := range p.substrings {
			if strings.Contains(lower, sub) {
				return p.name
			}
		}
	}
	return "Unknown Bank"
}

// coalesce returns the first non-blank value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
