package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/f228476653/moneyTracking/internal/statements"
	"github.com/f228476653/moneyTracking/internal/statements/categorize"
	"github.com/f228476653/moneyTracking/internal/statements/parser"
)

type output struct {
	Metadata   statements.StatementMetadata   `json:"metadata"`
	Records    []statements.TransactionRecord `json:"records"`
	Categories map[categorize.Category]int    `json:"categories"`
}

func main() {
	var (
		pretty  = flag.Bool("pretty", false, "indent JSON output")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <statement-file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(path, *pretty, os.Stdout, logger); err != nil {
		logger.Error("parse failed", slog.String("file", path), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(path string, pretty bool, out io.Writer, logger *slog.Logger) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Resolve once; extraction reuses the recognizer instead of running
	// detection a second time through ParseStatement.
	registry := parser.NewRegistry()
	rec, err := registry.Resolve(content, path)
	if err != nil {
		return err
	}
	logger.Debug("recognizer resolved",
		slog.String("file", filepath.Base(path)),
		slog.String("recognizer", rec.Name()),
	)

	meta, records, err := rec.Extract(content, path)
	if err != nil {
		return &statements.StatementError{Recognizer: rec.Name(), Err: err}
	}

	classifier := categorize.NewClassifier()
	logger.Info("statement parsed",
		slog.String("bank", meta.BankName),
		slog.String("type", meta.StatementType),
		slog.Int("records", len(records)),
	)

	result := output{
		Metadata:   meta,
		Records:    records,
		Categories: classifier.Summarize(records),
	}

	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
