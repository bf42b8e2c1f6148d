package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/categorize"
)

func writeStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	t.Run("parses and summarizes a statement", func(t *testing.T) {
		path := writeStatement(t, "accountactivity.csv",
			"2025-01-15,Grocery Store,50.00,,1000.00\n"+
				"2025-01-16,Salary,,2000.00,3000.00\n")

		var buf bytes.Buffer
		require.NoError(t, run(path, false, &buf, discardLogger()))

		var out output
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "TD Bank", out.Metadata.BankName)
		assert.Len(t, out.Records, 2)
		assert.Equal(t, 1, out.Categories[categorize.CategorySpending])
		assert.Equal(t, 1, out.Categories[categorize.CategoryIncome])
	})

	t.Run("unrecognized file surfaces the sentinel", func(t *testing.T) {
		path := writeStatement(t, "dump.bin", "\x00\x01\x02")

		var buf bytes.Buffer
		err := run(path, false, &buf, discardLogger())
		assert.ErrorIs(t, err, statements.ErrParserNotFound)
		assert.Zero(t, buf.Len())
	})

	t.Run("extraction failure is wrapped with the recognizer name", func(t *testing.T) {
		path := writeStatement(t, "rbc.csv",
			"Account Type,Account Number,Transaction Date,Cheque Number,"+
				"Description 1,Description 2,CAD$,USD$\n")

		var buf bytes.Buffer
		err := run(path, false, &buf, discardLogger())

		var stmtErr *statements.StatementError
		require.ErrorAs(t, err, &stmtErr)
		assert.Equal(t, "rbc-business", stmtErr.Recognizer)
	})
}
