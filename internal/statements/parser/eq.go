package parser

import (
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// Header synonyms accepted for each field kind.
var (
	eqDateColumns   = []string{"transfer date", "date", "transaction date"}
	eqDescColumns   = []string{"description", "desc", "item", "transaction"}
	eqAmountColumns = []string{"amount", "transaction amount"}
)

// eqContentKeywords are phrases that only appear in this institution's
// exports. A header match alone is not enough to claim the file — these
// generic column names collide with unrelated CSVs — so at least one
// keyword must show up in the first data rows.
var eqContentKeywords = []string{"interest received", "auto-withdrawal", "ws investments", "eq bank"}

var eqContentMatcher = ahocorasick.NewStringMatcher(eqContentKeywords)

// eqTitleCaser rewrites the all-caps month in "01 MAY 2025" so the short
// month-name layout can parse it.
var eqTitleCaser = cases.Title(language.English)

const eqDateLayout = "02 Jan 2006"

// EQJointRecognizer handles EQ Bank joint savings account CSV exports.
type EQJointRecognizer struct{}

func NewEQJointRecognizer() *EQJointRecognizer {
	return &EQJointRecognizer{}
}

func (p *EQJointRecognizer) Name() string { return "eq-joint" }

func (p *EQJointRecognizer) Detect(content []byte, filename string) bool {
	if !hasExtension(filename, ".csv") {
		return false
	}
	text, err := normalize.Decode(content)
	if err != nil {
		return false
	}
	lines := splitLines(strings.TrimSpace(text))
	if len(lines) < 2 {
		return false
	}

	header := strings.ToLower(lines[0])
	if !containsAny(header, eqDateColumns) ||
		!containsAny(header, eqDescColumns) ||
		!containsAny(header, eqAmountColumns) {
		return false
	}

	// Probe the first data rows for an institution-specific phrase.
	for _, line := range lines[1:min(3, len(lines))] {
		if len(eqContentMatcher.Match([]byte(strings.ToLower(line)))) > 0 {
			return true
		}
	}
	return false
}

func (p *EQJointRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
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

	dateCol := columnIndex(headers, eqDateColumns...)
	descCol := columnIndex(headers, eqDescColumns...)
	amountCol := columnIndex(headers, eqAmountColumns...)

	var records []statements.TransactionRecord
	for _, row := range rows {
		if tx, ok := p.parseRow(row, dateCol, descCol, amountCol); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      "EQ Bank",
		AccountNumber: "EQ Joint",
		AccountAbbr:   "EQ_JOINT",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeEQJoint,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

func (p *EQJointRecognizer) parseRow(row []string, dateCol, descCol, amountCol int) (statements.TransactionRecord, bool) {
	if dateCol < 0 || amountCol < 0 {
		return statements.TransactionRecord{}, false
	}
	dateStr := field(row, dateCol)
	amountStr := field(row, amountCol)
	if dateStr == "" || amountStr == "" {
		return statements.TransactionRecord{}, false
	}

	date, err := parseEQDate(dateStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}
	amount, direction, err := normalize.Amount(amountStr)
	if err != nil {
		return statements.TransactionRecord{}, false
	}

	item := field(row, descCol)
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

// parseEQDate handles the institution's "01 MAY 2025" format, falling back
// to the shared normalizer for anything else.
func parseEQDate(raw string) (time.Time, error) {
	s := eqTitleCaser.String(strings.ToLower(strings.TrimSpace(raw)))
	if t, err := time.Parse(eqDateLayout, s); err == nil {
		return t, nil
	}
	return normalize.Date(raw)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
