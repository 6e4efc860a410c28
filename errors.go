package robostat

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a run that cannot start: no identifiers are
// configured, or the statement directory or file is missing.
type ConfigurationError struct {
	Reason string
	Path   string // Path is the offending file or directory, if any.
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %q", e.Reason, e.Path)
}

// MappingGapError lists every position ticker that has no identifier.
type MappingGapError struct {
	Tickers []string
}

func (e *MappingGapError) Error() string {
	return fmt.Sprintf("no identifier for %d ticker(s): %s", len(e.Tickers), strings.Join(e.Tickers, ", "))
}

// RecordParseError reports a recognized row whose required field cannot be parsed.
type RecordParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RecordParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RecordParseError) Unwrap() error { return e.Err }

// MalformedInputError reports records that are individually valid but
// inconsistent together, like a sell without any prior buy.
type MalformedInputError struct {
	Ticker string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input for %q: %s", e.Ticker, e.Reason)
}
