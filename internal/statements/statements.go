// Package statements defines the data model shared by all statement
// recognizers: the per-file metadata summary, the normalized transaction
// records with sign carried as a direction tag, and the intermediate
// holding lines extracted from brokerage PDFs.
package statements

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tags which way money moved. The signed effect of a transaction
// is carried entirely by this tag; Amount is never negative.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Statement type tags, one per recognizer family.
const (
	TypeCSV         = "CSV"
	TypeExcel       = "EXCEL"
	TypePDF         = "PDF"
	TypeText        = "TXT"
	TypeTDCheque    = "TD-CSV"
	TypeTDCredit    = "TD-CREDIT-CSV"
	TypeRBCBusiness = "RBC Business CSV"
	TypeEQJoint     = "EQ-CSV"
	TypeBMO         = "BMO Bank CSV"
)

// UnknownItem is the placeholder description for rows that carry an amount
// but no usable description text.
const UnknownItem = "Unknown Transaction"

// StatementMetadata summarizes one parsed statement file. FromDate/ToDate
// are the min/max observed transaction dates unless the format supplies an
// explicit period; the zero time means the range could not be determined.
// FromDate <= ToDate is not enforced here; the caller validates.
type StatementMetadata struct {
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	AccountAbbr   string    `json:"account_abbr"`
	FromDate      time.Time `json:"statement_from_date"`
	ToDate        time.Time `json:"statement_to_date"`
	StatementType string    `json:"statement_type"`
}

// TransactionRecord is one normalized statement line.
type TransactionRecord struct {
	Item      string          `json:"item"`
	Date      time.Time       `json:"transaction_date"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
}

// Holding is one equity/fund position extracted from a brokerage PDF.
// It is converted into a money-in TransactionRecord valued at market value;
// BookCost rides along but is never folded into the amount.
type Holding struct {
	Symbol      string
	Name        string
	Shares      decimal.Decimal
	Price       decimal.Decimal
	MarketValue decimal.Decimal
	BookCost    decimal.Decimal
	Currency    string
}

// Transaction converts a holding into its transaction representation.
// Holdings are assets, not cash flows, so the direction is always money-in.
func (h Holding) Transaction(date time.Time) TransactionRecord {
	return TransactionRecord{
		Item:      h.Symbol + " - " + h.Name,
		Date:      date,
		Amount:    h.MarketValue,
		Direction: DirectionIn,
	}
}

// DateRange returns the min and max transaction dates in records, skipping
// zero dates. ok is false when no dated records exist.
func DateRange(records []TransactionRecord) (from, to time.Time, ok bool) {
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if !ok {
			from, to = r.Date, r.Date
			ok = true
			continue
		}
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, ok
}
