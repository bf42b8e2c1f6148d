package parser

import (
	"github.com/f228476653/moneyTracking/internal/statements"
)

// Registry is the fixed, priority-ordered set of recognizers. It is built
// once and never mutated, so a single Registry is safe for concurrent use.
type Registry struct {
	recognizers []Recognizer
}

// NewRegistry builds the registry in priority order: most format-specific
// first, most permissive last. The generic CSV recognizer accepts any .csv
// file, so every institution-specific CSV recognizer must rank above it.
func NewRegistry() *Registry {
	return &Registry{
		recognizers: []Recognizer{
			NewWealthsimpleRecognizer(),
			NewAmexRecognizer(),
			NewTDChequeRecognizer(),
			NewTDCreditRecognizer(),
			NewRBCBusinessRecognizer(),
			NewEQJointRecognizer(),
			NewBMORecognizer(),
			NewCSVRecognizer(),
			NewExcelRecognizer(),
			NewTextRecognizer(),
		},
	}
}

// Resolve returns the first recognizer whose detection predicate accepts
// the file. Detection is bool-only by contract, so a misbehaving predicate
// can never abort dispatch. An exhausted list is ErrParserNotFound.
func (r *Registry) Resolve(content []byte, filename string) (Recognizer, error) {
	for _, rec := range r.recognizers {
		if safeDetect(rec, content, filename) {
			return rec, nil
		}
	}
	return nil, statements.ErrParserNotFound
}

// ParseStatement resolves the owning recognizer and runs its extraction.
// Extraction failures are terminal for the file — they are wrapped and
// surfaced, never retried against a lower-priority recognizer.
func (r *Registry) ParseStatement(content []byte, filename string) (statements.StatementMetadata, []statements.TransactionRecord, error) {
	rec, err := r.Resolve(content, filename)
	if err != nil {
		return statements.StatementMetadata{}, nil, err
	}
	meta, records, err := rec.Extract(content, filename)
	if err != nil {
		return statements.StatementMetadata{}, nil, &statements.StatementError{Recognizer: rec.Name(), Err: err}
	}
	return meta, records, nil
}

// Names lists the recognizers in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.recognizers))
	for i, rec := range r.recognizers {
		names[i] = rec.Name()
	}
	return names
}

// safeDetect shields dispatch from panics inside a detection predicate;
// malformed PDFs are the known offender.
func safeDetect(rec Recognizer, content []byte, filename string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return rec.Detect(content, filename)
}
