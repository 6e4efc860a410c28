package robostat

import (
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ID is the external identifier of a ticker, usually an ISIN.
type ID string

// String implements the fmt.Stringer interface.
func (id ID) String() string { return string(id) }

// Identifiers maps statement tickers to their external identifier.
//
// It is built once at startup and never modified afterwards.
type Identifiers struct {
	index map[string]ID
}

// NewIdentifiers returns the identifiers from a ticker to ID map.
//
// Empty tickers or IDs are ignored. IDs that are not valid ISINs are kept,
// with a warning.
func NewIdentifiers(m map[string]string) *Identifiers {
	ids := &Identifiers{index: make(map[string]ID, len(m))}
	for ticker, id := range m {
		ticker, id = strings.TrimSpace(ticker), strings.TrimSpace(id)
		if ticker == "" || id == "" {
			continue
		}
		if err := ValidateISIN(id); err != nil {
			slog.Warn("identifier is not an ISIN", "ticker", ticker, "id", id, "reason", err)
		}
		ids.index[ticker] = ID(id)
	}
	return ids
}

// Len returns the number of mapped tickers.
func (s *Identifiers) Len() int { return len(s.index) }

// Lookup returns the ID of 'ticker'.
func (s *Identifiers) Lookup(ticker string) (ID, bool) {
	id, ok := s.index[ticker]
	return id, ok
}

// Tickers returns the mapped tickers in alphabetical order.
func (s *Identifiers) Tickers() []string {
	return slices.Sorted(maps.Keys(s.index))
}

// Missing returns the sorted list of 'tickers' without an ID.
func (s *Identifiers) Missing(tickers []string) []string {
	var missing []string
	for _, t := range tickers {
		if _, ok := s.index[t]; !ok {
			missing = append(missing, t)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}

// Check returns a *MappingGapError listing every position of 'agg' without an ID.
func (s *Identifiers) Check(agg *Aggregate) error {
	if missing := s.Missing(agg.Tickers()); len(missing) > 0 {
		return &MappingGapError{Tickers: missing}
	}
	return nil
}

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// letters count as two digits: A=10 ... Z=35
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Luhn, doubling from the rightmost digit
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expected := (10 - (sum % 10)) % 10
	if actual := int(isin[11] - '0'); expected != actual {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expected, actual)
	}
	return nil
}
