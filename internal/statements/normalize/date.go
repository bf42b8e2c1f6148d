package normalize

import (
	"strings"
	"time"

	"github.com/f228476653/moneyTracking/internal/statements"
)

// dateLayouts is tried in order; the first layout that accepts the input
// wins. ISO first, then US before European, then month-name forms including
// the single-digit-day abbreviated variants used by card issuers.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"02 January 2006",
}

// permissiveLayouts backs the final fallback pass after separators have
// been normalized to dashes.
var permissiveLayouts = []string{
	"2006-01-02",
	"01-02-2006",
	"02-01-2006",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Date parses a date field by trying each supported layout in order, then
// one permissive pass. A blank field deliberately defaults to today — the
// asymmetric twin of the non-empty unparsable case, which returns
// *statements.DateError.
func Date(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Today(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, ok := parsePermissive(s); ok {
		return t, nil
	}
	return time.Time{}, &statements.DateError{Raw: raw}
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parsePermissive(s string) (time.Time, bool) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '.':
			return '-'
		}
		return r
	}, s)
	for _, layout := range permissiveLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
