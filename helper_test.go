package robostat

import (
	"strings"
	"testing"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// header is the column line of a real statement export.
const header = "Date,Ticker,Type,Quantity,Price per share,Total Amount,Currency,FX Rate"

// statement builds a statement text from its data lines, prefixed by header.
func statement(lines ...string) string {
	return header + "\n" + strings.Join(lines, "\n") + "\n"
}

// mustExtract extracts all records of 'text' or fails the test.
func mustExtract(t *testing.T, text string) []Record {
	t.Helper()
	records, err := ExtractAll(strings.NewReader(text), "EUR")
	if err != nil {
		t.Fatalf("ExtractAll() unexpected error: %v", err)
	}
	return records
}

// mustFold folds 'records' or fails the test.
func mustFold(t *testing.T, records []Record) *Aggregate {
	t.Helper()
	agg, err := FoldAll(records)
	if err != nil {
		t.Fatalf("FoldAll() unexpected error: %v", err)
	}
	return agg
}
