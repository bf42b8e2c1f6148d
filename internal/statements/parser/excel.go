package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// Keyword sets for loose column resolution; any header containing one of
// these substrings is accepted, first match per kind wins. Date is checked
// before description before amount, so a "Transaction Date" header binds to
// the date kind rather than to "transaction".
var (
	excelDescKeywords   = []string{"description", "item", "transaction", "memo", "payee"}
	excelAmountKeywords = []string{"amount", "debit", "credit", "transaction"}
)

// ExcelRecognizer handles spreadsheet exports: modern .xlsx via excelize
// and legacy binary .xls via xlsReader.
type ExcelRecognizer struct{}

func NewExcelRecognizer() *ExcelRecognizer {
	return &ExcelRecognizer{}
}

func (p *ExcelRecognizer) Name() string { return "excel" }

func (p *ExcelRecognizer) Detect(content []byte, filename string) bool {
	return hasExtension(filename, ".xlsx", ".xls")
}

func (p *ExcelRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	var (
		rows [][]string
		err  error
	)
	if hasExtension(filename, ".xlsx") {
		rows, err = readXLSX(content)
	} else {
		rows, err = readXLS(content)
	}
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}
	if len(rows) < 2 {
		return statements.StatementMetadata{}, nil, statements.ErrInvalidStatementData
	}

	dateCol, descCol, amountCol := resolveExcelColumns(rows[0])

	var records []statements.TransactionRecord
	for _, row := range rows[1:] {
		if tx, ok := parseExcelRow(row, dateCol, descCol, amountCol); ok {
			records = append(records, tx)
		}
	}

	meta := statements.StatementMetadata{
		BankName:      bankNameFromFilename(filename),
		AccountNumber: "Unknown",
		AccountAbbr:   "Unknown",
		FromDate:      normalize.Today(),
		ToDate:        normalize.Today(),
		StatementType: statements.TypeExcel,
	}
	if from, to, ok := statements.DateRange(records); ok {
		meta.FromDate, meta.ToDate = from, to
	}
	return meta, records, nil
}

// resolveExcelColumns maps header cells to field kinds by substring.
func resolveExcelColumns(headers []string) (dateCol, descCol, amountCol int) {
	dateCol, descCol, amountCol = -1, -1, -1
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "date"):
			if dateCol == -1 {
				dateCol = i
			}
		case containsAny(lower, excelDescKeywords):
			if descCol == -1 {
				descCol = i
			}
		case containsAny(lower, excelAmountKeywords):
			if amountCol == -1 {
				amountCol = i
			}
		}
	}
	return dateCol, descCol, amountCol
}

func parseExcelRow(row []string, dateCol, descCol, amountCol int) (statements.TransactionRecord, bool) {
	if dateCol < 0 || amountCol < 0 {
		return statements.TransactionRecord{}, false
	}
	dateStr := field(row, dateCol)
	amountStr := field(row, amountCol)
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

func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, statements.ErrInvalidStatementData
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func readXLS(content []byte) ([][]string, error) {
	book, err := xls.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}
	sheet, err := book.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("reading xls sheet: %w", err)
	}

	var rows [][]string
	for _, r := range sheet.GetRows() {
		var cells []string
		for _, c := range r.GetCols() {
			cells = append(cells, c.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
