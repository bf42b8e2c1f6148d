package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	money "github.com/Rhymond/go-money"
	"github.com/dslipak/pdf"
	"github.com/shopspring/decimal"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/normalize"
)

// First-page brand/domain keywords that mark a Wealthsimple statement.
var wealthsimpleIndicators = []string{"wealthsimple", "rrsp", "portfolio", "equities"}

// Table headers that identify a holdings table.
var equityTableKeywords = []string{"symbol", "name", "shares", "price", "value", "weight", "return"}

// tickerStoplist removes the uppercase 2-5 letter tokens that look like
// tickers but never are in these statements.
var tickerStoplist = map[string]bool{
	"CAD": true, "USD": true, "ETF": true, "INC": true, "TRUST": true, "TOTAL": true, "US": true,
}

var (
	tickerCandidate = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
	numericToken    = regexp.MustCompile(`[\d,]+\.?\d*`)
	currencyAmount  = regexp.MustCompile(`\$[\d,]+\.?\d*`)

	// holdingSuffix is the composite pattern expected immediately after a
	// ticker: shares, segregated shares, unit price, a currency code,
	// market value, book cost.
	holdingSuffix = regexp.MustCompile(`^\s*([\d,]+\.?\d*)\s+([\d,]+\.?\d*)\s+\$([\d,]+\.?\d*)\s+([A-Z]{3})\s+\$([\d,]+\.?\d*)\s+\$([\d,]+\.?\d*)`)

	statementDatePatterns = []struct {
		re     *regexp.Regexp
		layout string
	}{
		{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`), "1/2/2006"},
		{regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`), "2006-1-2"},
		{regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`), "1-2-2006"},
	}
)

// scanState drives the third-tier holdings scanner. States are explicit so
// each tier's entry and exit condition stays independently testable.
type scanState int

const (
	stateSearchingSection scanState = iota
	stateSearchingColumnHeader
	stateScanningHoldingLines
	stateDone
)

// WealthsimpleRecognizer extracts the portfolio holdings section from
// Wealthsimple RRSP PDF statements. Holdings are assets, so every extracted
// line becomes a money-in record valued at market value.
type WealthsimpleRecognizer struct{}

func NewWealthsimpleRecognizer() *WealthsimpleRecognizer {
	return &WealthsimpleRecognizer{}
}

func (p *WealthsimpleRecognizer) Name() string { return "wealthsimple-pdf" }

func (p *WealthsimpleRecognizer) Detect(content []byte, filename string) bool {
	if !hasExtension(filename, ".pdf") {
		return false
	}
	pages, err := extractPages(content)
	if err != nil || len(pages) == 0 {
		return false
	}
	first := strings.ToLower(pages[0].text)
	for _, indicator := range wealthsimpleIndicators {
		if strings.Contains(first, indicator) {
			return true
		}
	}
	return false
}

func (p *WealthsimpleRecognizer) Extract(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	pages, err := extractPages(content)
	if err != nil {
		return statements.StatementMetadata{}, nil, fmt.Errorf("reading PDF: %w", err)
	}

	var holdings []statements.Holding
	for _, page := range pages {
		lower := strings.ToLower(page.text)
		if !strings.Contains(lower, "equities") {
			continue
		}
		holdings = extractHoldings(page)
		break
	}

	meta := statements.StatementMetadata{
		BankName:      "Wealthsimple",
		AccountNumber: "RRSP Account",
		AccountAbbr:   "WS_RRSP",
		StatementType: statements.TypePDF,
	}
	meta.FromDate, meta.ToDate = statementDates(pages)

	today := normalize.Today()
	var records []statements.TransactionRecord
	for _, h := range holdings {
		if h.MarketValue.IsPositive() {
			records = append(records, h.Transaction(today))
		}
	}
	return meta, records, nil
}

// extractHoldings runs the three extraction tiers in order and keeps the
// first one that produces results: structured tables, then line
// heuristics, then the scoped token scanner.
func extractHoldings(page pdfPage) []statements.Holding {
	for _, table := range page.tables {
		if isHoldingsTable(table) {
			if holdings := holdingsFromTable(table); len(holdings) > 0 {
				return holdings
			}
		}
	}
	if holdings := holdingsFromLines(page.lines); len(holdings) > 0 {
		return holdings
	}
	return scanHoldings(page.lines)
}

// --- tier 1: structured table ---

// isHoldingsHeader accepts only genuinely table-like header rows: at least
// three cells with equity keywords in at least two of them. A summary line
// that happens to mention "value" does not qualify.
func isHoldingsHeader(row []string) bool {
	if len(row) < 3 {
		return false
	}
	hits := 0
	for _, cell := range row {
		if containsAny(strings.ToLower(cell), equityTableKeywords) {
			hits++
		}
	}
	return hits >= 2
}

func isHoldingsTable(table [][]string) bool {
	return len(table) >= 2 && isHoldingsHeader(table[0])
}

// holdingColumns are the header-resolved cell indexes; -1 means the header
// has no such column.
type holdingColumns struct {
	symbol, name, shares, price, value int
}

func resolveHoldingColumns(header []string) holdingColumns {
	cols := holdingColumns{symbol: -1, name: -1, shares: -1, price: -1, value: -1}
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case cols.symbol == -1 && strings.Contains(lower, "symbol"):
			cols.symbol = i
		case cols.name == -1 && strings.Contains(lower, "name"):
			cols.name = i
		case cols.shares == -1 && strings.Contains(lower, "shares"):
			cols.shares = i
		case cols.price == -1 && strings.Contains(lower, "price"):
			cols.price = i
		case cols.value == -1 && (strings.Contains(lower, "value") || strings.Contains(lower, "market")):
			cols.value = i
		}
	}
	return cols
}

// holdingsFromTable reads each row by the header's column indexes, so a
// layout with extra numeric columns (segregated shares, book cost) cannot
// shift shares into price or price into value. Without a resolvable value
// column the table yields nothing and the later tiers run.
func holdingsFromTable(table [][]string) []statements.Holding {
	cols := resolveHoldingColumns(table[0])
	if cols.value < 0 {
		return nil
	}

	var holdings []statements.Holding
	for _, row := range table[1:] {
		if len(row) < 3 {
			continue
		}
		var h statements.Holding
		h.Symbol = field(row, cols.symbol)
		h.Name = field(row, cols.name)
		if h.Symbol == "" && h.Name == "" {
			continue
		}
		h.Shares, _ = parseHoldingNumber(field(row, cols.shares))
		h.Price, _ = parseHoldingNumber(field(row, cols.price))
		marketValue, err := parseHoldingNumber(field(row, cols.value))
		if err != nil {
			continue
		}
		h.MarketValue = marketValue
		holdings = append(holdings, h)
	}
	return holdings
}

// --- tier 2: line heuristics ---

// holdingsFromLines splits candidate lines on the dash separator used by
// text renderings of the holdings table.
func holdingsFromLines(lines []string) []statements.Holding {
	var holdings []statements.Holding
	for _, line := range lines {
		if !containsAny(strings.ToLower(line), []string{"symbol", "shares", "price", "value"}) {
			continue
		}
		if h, ok := holdingFromTextLine(line); ok {
			holdings = append(holdings, h)
		}
	}
	return holdings
}

func holdingFromTextLine(line string) (statements.Holding, bool) {
	parts := strings.Split(line, "-")
	if len(parts) < 3 {
		return statements.Holding{}, false
	}
	symbol := strings.TrimSpace(parts[0])
	if symbol == "" || symbol != strings.ToUpper(symbol) || len(symbol) > 5 {
		return statements.Holding{}, false
	}

	var h statements.Holding
	h.Symbol = symbol
	h.Name = strings.TrimSpace(parts[1])
	numbers := numericToken.FindAllString(line, -1)
	if len(numbers) >= 3 {
		h.Shares, _ = parseHoldingNumber(numbers[0])
		h.Price, _ = parseHoldingNumber(numbers[1])
		h.MarketValue, _ = parseHoldingNumber(numbers[2])
	}
	return h, true
}

// --- tier 3: scoped token scanner ---

// scanHoldings walks the page lines through the explicit state machine:
// find the section header, then the column sub-header naming "symbol",
// then read holding lines until the total line closes the section.
func scanHoldings(lines []string) []statements.Holding {
	var holdings []statements.Holding
	state := stateSearchingSection
	headerDeadline := -1

	for i := 0; i < len(lines) && state != stateDone; i++ {
		line := strings.TrimSpace(lines[i])
		lower := strings.ToLower(line)

		switch state {
		case stateSearchingSection:
			if strings.Contains(lower, "portfolio equities") {
				state = stateSearchingColumnHeader
				headerDeadline = i + 5
			}

		case stateSearchingColumnHeader:
			if i > headerDeadline {
				state = stateDone
				continue
			}
			if strings.Contains(lower, "symbol") {
				state = stateScanningHoldingLines
			}

		case stateScanningHoldingLines:
			if line == "" ||
				strings.Contains(lower, "canadian equities") ||
				strings.Contains(lower, "us equities") {
				continue
			}
			if strings.Contains(lower, "total") && currencyAmount.MatchString(line) {
				state = stateDone
				continue
			}
			if !currencyAmount.MatchString(line) {
				continue
			}
			if h, ok := scanHoldingLine(line); ok {
				holdings = append(holdings, h)
			}
		}
	}
	return holdings
}

// scanHoldingLine tries every surviving ticker candidate on the line and
// keeps the first whose suffix matches the composite holdings pattern.
func scanHoldingLine(line string) (statements.Holding, bool) {
	for _, loc := range tickerCandidate.FindAllStringIndex(line, -1) {
		ticker := line[loc[0]:loc[1]]
		if tickerStoplist[ticker] {
			continue
		}

		m := holdingSuffix.FindStringSubmatch(line[loc[1]:])
		if m == nil {
			continue
		}
		currency := m[4]
		if money.GetCurrency(currency) == nil {
			continue
		}

		shares, err1 := parseHoldingNumber(m[1])
		price, err2 := parseHoldingNumber(m[3])
		marketValue, err3 := parseHoldingNumber(m[5])
		bookCost, err4 := parseHoldingNumber(m[6])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		name := strings.TrimSpace(line[:loc[0]])
		name = strings.TrimSpace(strings.TrimSuffix(name, "-"))

		return statements.Holding{
			Symbol:      ticker,
			Name:        name,
			Shares:      shares,
			Price:       price,
			MarketValue: marketValue,
			BookCost:    bookCost,
			Currency:    currency,
		}, true
	}
	return statements.Holding{}, false
}

// --- PDF plumbing ---

// pdfPage is one page reduced to plain artifacts so the extraction tiers
// stay independent of the PDF library.
type pdfPage struct {
	text   string
	lines  []string
	tables [][][]string
}

// extractPages reads every page's positioned text and reconstructs rows
// and lines. The underlying library panics on some malformed files, so the
// recovery here doubles as the detection-phase safety net.
func extractPages(content []byte) (pages []pdfPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows := rowsFromContent(page.Content().Text)
		lines := make([]string, len(rows))
		for j, row := range rows {
			lines[j] = strings.Join(row, " ")
		}
		pages = append(pages, pdfPage{
			text:   strings.Join(lines, "\n"),
			lines:  lines,
			tables: tableCandidates(rows),
		})
	}
	return pages, nil
}

// tableCandidates scopes the table tier the way the scanner is scoped: a
// candidate begins at a row that passes the header check, never at whatever
// happens to sit at the top of the page.
func tableCandidates(rows [][]string) [][][]string {
	for i, row := range rows {
		if isHoldingsHeader(row) {
			return [][][]string{rows[i:]}
		}
	}
	return nil
}

// rowsFromContent groups positioned text fragments into visual rows by Y
// coordinate and splits each row into cells on horizontal gaps.
func rowsFromContent(texts []pdf.Text) [][]string {
	if len(texts) == 0 {
		return nil
	}

	// PDF origin is bottom-left; higher Y is higher on the page.
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sameRow(sorted[i].Y, sorted[j].Y) {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y > sorted[j].Y
	})

	const cellGap = 10.0 // points of whitespace that start a new cell

	var rows [][]string
	var cells []string
	var cell strings.Builder
	var prev *pdf.Text

	flushCell := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}
	flushRow := func() {
		flushCell()
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
		cells = nil
	}

	for i := range sorted {
		t := sorted[i]
		if prev != nil {
			if !sameRow(prev.Y, t.Y) {
				flushRow()
			} else if t.X-(prev.X+prev.W) > cellGap {
				flushCell()
			}
		}
		cell.WriteString(t.S)
		prev = &sorted[i]
	}
	flushRow()
	return rows
}

func sameRow(y1, y2 float64) bool {
	d := y1 - y2
	return d < 2.0 && d > -2.0
}

// statementDates pulls the first two date-shaped strings found in page
// text; the statement period markers appear before any transaction data.
func statementDates(pages []pdfPage) (from, to time.Time) {
	for _, page := range pages {
		for _, p := range statementDatePatterns {
			for _, match := range p.re.FindAllString(page.text, -1) {
				t, err := time.Parse(p.layout, match)
				if err != nil {
					continue
				}
				switch {
				case from.IsZero():
					from = t
				case to.IsZero():
					to = t
					return from, to
				}
			}
		}
	}
	return from, to
}

func parseHoldingNumber(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	return decimal.NewFromString(cleaned)
}
