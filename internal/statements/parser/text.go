package parser

import (
	"regexp"
	"strings"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// Token shapes, not field positions: the first token matching a date shape
// and the first matching an amount shape carry the row, everything else is
// description.
var (
	textDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
		regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`),
	}
	textAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\$?\d+\.\d{2}$`),
		regexp.MustCompile(`^\$?\d+,\d{3}\.\d{2}$`),
		regexp.MustCompile(`^\(\$?\d+\.\d{2}\)$`),
	}
)

// TextRecognizer is the free-text fallback for .txt/.log exports. Lines
// lacking both a date-shaped and an amount-shaped token are dropped without
// comment.
type TextRecognizer struct{}

func NewTextRecognizer() *TextRecognizer {
	return &TextRecognizer{}
}

func (p *TextRecognizer) Name() string { return "text" }

func (p *TextRecognizer) Detect(content []byte, filename string) bool {
	return hasExtension(filename, ".txt", ".log")
}

func (p *TextRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	text, err := normalize.Decode(content)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}

	var records []statements.TransactionRecord
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if tx, ok := parseTextLine(line); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      bankNameFromFilename(filename),
		AccountNumber: "Unknown",
		AccountAbbr:   "Unknown",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeText,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func parseTextLine(line string) (statements.TransactionRecord, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return statements.TransactionRecord{}, false
	}

	dateIdx := findToken(tokens, textDatePatterns)
	amountIdx := findToken(tokens, textAmountPatterns)
	if dateIdx < 0 || amountIdx < 0 {
		return statements.TransactionRecord{}, false
	}

	date, err := normalize.Date(tokens[dateIdx])
	if err != nil {
		return statements.TransactionRecord{}, false
	}
	amount, direction, err := normalize.Amount(tokens[amountIdx])
	if err != nil {
		return statements.TransactionRecord{}, false
	}

	var desc []string
	for i, tok := range tokens {
		if i != dateIdx && i != amountIdx {
			desc = append(desc, tok)
		}
	}
	item := strings.Join(desc, " ")
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

func findToken(tokens []string, patterns []*regexp.Regexp) int {
	for i, tok := range tokens {
		for _, re := range patterns {
			if re.MatchString(tok) {
				return i
			}
		}
	}
	return -1
}
