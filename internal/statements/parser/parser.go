// Package parser contains the format recognizers for bank and brokerage
// statement files plus the registry that resolves a byte stream to exactly
// one of them. Each recognizer pairs a detection predicate with an
// extraction routine; detection is a plain boolean that never propagates an
// error, extraction may fail and its failure is terminal for the file.
package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/f228476653/moneyTracking/internal/statements"
)

// Recognizer is one statement format. Implementations are stateless after
// construction and safe for concurrent use.
type Recognizer interface {
	// Name identifies the recognizer in logs and wrapped errors.
	Name() string

	// Detect reports whether this recognizer owns the given file. It must
	// never panic or return an error; anything that goes wrong while
	// probing the content is a non-match.
	Detect(content []byte, filename string) bool

	// Extract parses the file into a statement summary and its ordered
	// transaction records.
	Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error)
}

func hasExtension(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// splitRecord parses a single CSV line, tolerating quoted fields and
// variable field counts.
func splitRecord(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r.Read()
}

// readAllRecords parses full CSV content with the same tolerant settings.
func readAllRecords(content string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// headerRows splits header-style CSV content into a lowercased header slice
// and the raw data records following it.
func headerRows(content string) (headers []string, rows [][]string, err error) {
	records, err := readAllRecords(content)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, statements.ErrInvalidStatementData
	}
	headers = make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers, records[1:], nil
}

// columnIndex resolves a field by its possible names: case-insensitive
// exact position lookup first, then a scan of every header.
func columnIndex(headers []string, names ...string) int {
	for _, name := range names {
		for i, h := range headers {
			if h == strings.ToLower(name) {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
