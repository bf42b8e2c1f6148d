package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/f228476653/moneyTracking/internal/statements"
)

// Amount parses a raw amount field into a non-negative two-decimal-place
// magnitude and a direction. Negativity is signalled by a leading minus or
// by full parenthetical wrapping and maps to money-out; everything else is
// money-in. A blank field is zero money-in, never an error. A non-empty
// field that does not parse returns *statements.AmountError so callers can
// tell "no amount" apart from "bad amount".
func Amount(raw string) (decimal.Decimal, statements.Direction, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero.Round(2), statements.DirectionIn, nil
	}

	s = stripCurrency(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		s = stripCurrency(s)
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, statements.DirectionIn, &statements.AmountError{Raw: raw}
	}
	// The marker is already stripped, but tolerate values like "(-5.00)".
	d = d.Abs().Round(2)

	if negative {
		return d, statements.DirectionOut, nil
	}
	return d, statements.DirectionIn, nil
}

// Magnitude parses an amount whose direction is decided elsewhere, e.g. by
// which positional column it appeared in.
func Magnitude(raw string) (decimal.Decimal, error) {
	d, _, err := Amount(raw)
	return d, err
}

func stripCurrency(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
