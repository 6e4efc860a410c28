package robostat

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Analyze extracts and folds the statement read from 'r'.
//
// Identifiers are checked first: an empty set is a *ConfigurationError and
// 'r' is not read. When positions lack an identifier the aggregate is still
// returned, together with a *MappingGapError.
func Analyze(ids *Identifiers, r io.Reader, currency string) (*Aggregate, error) {
	if ids == nil || ids.Len() == 0 {
		return nil, &ConfigurationError{Reason: "no ticker identifiers configured"}
	}
	records, err := ExtractAll(r, currency)
	if err != nil {
		return nil, err
	}
	slog.Debug("statement extracted", "records", len(records))

	agg, err := FoldAll(records)
	if err != nil {
		return nil, err
	}
	return agg, ids.Check(agg)
}

// AnalyzeDir is Analyze on the only CSV statement found in 'dir'.
func AnalyzeDir(ids *Identifiers, dir, currency string) (*Aggregate, error) {
	if ids == nil || ids.Len() == 0 {
		return nil, &ConfigurationError{Reason: "no ticker identifiers configured"}
	}
	path, err := FindStatement(dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("reading statement", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("cannot read statement: %v", err), Path: path}
	}
	return Analyze(ids, bytes.NewReader(data), currency)
}
