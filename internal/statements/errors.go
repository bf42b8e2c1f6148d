package statements

import (
	"errors"
	"fmt"
)

// Sentinel failures surfaced to callers. Detection-phase problems are never
// wrapped in these; detection reports a plain non-match and dispatch moves on.
var (
	// ErrUnsupportedFormat means the bytes could not be decoded as text in
	// any supported encoding, or the extension is not handled at all.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrParserNotFound means every recognizer declined the file.
	ErrParserNotFound = errors.New("no parser found for file")

	// ErrInvalidStatementData means the file decoded but is structurally
	// empty (no data rows).
	ErrInvalidStatementData = errors.New("statement has no data rows")
)

// AmountError reports a non-empty amount field that did not parse. Blank
// amounts are not errors; recognizers rely on that distinction to decide
// between skipping a row and aborting the file.
type AmountError struct {
	Raw string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("could not parse amount %q", e.Raw)
}

// DateError reports a non-empty date field that did not match any supported
// layout. Blank dates default to today and are not errors.
type DateError struct {
	Raw string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("could not parse date %q", e.Raw)
}

// StatementError wraps any failure raised by the selected recognizer's
// extraction. Extraction failures are terminal for the invocation; the
// registry never retries another recognizer.
type StatementError struct {
	Recognizer string
	Err        error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("parsing statement with %s: %v", e.Recognizer, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }
