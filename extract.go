package robostat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Statement column names, matched exactly against the header line.
const (
	ColType     = "Type"
	ColTicker   = "Ticker"
	ColQuantity = "Quantity"
	ColPrice    = "Price per share"
	ColAmount   = "Total Amount"
)

// Statement values of the Type column.
const (
	typeBuy       = "BUY"  // substring
	typeSell      = "SELL" // substring
	typeDividend  = "DIVIDEND"
	typeFee       = "ROBO MANAGEMENT FEE"
	typeCashTopUp = "CASH TOP-UP"
)

var errNotANumber = errors.New("not a number")

var requiredColumns = []string{ColType, ColTicker, ColQuantity, ColPrice, ColAmount}

// Extract reads a statement from 'r' and yields one Record per recognized row.
//
// The first non blank line is the header. Lines are split on every ',',
// quoted fields are not supported. Rows whose Type is not recognized, and
// BUY or SELL rows without a ticker, are dropped without error. A recognized
// row with an unparsable required field yields a *RecordParseError and ends
// the iteration.
//
// Monetary values are read in 'currency', which is also the ticker of cash
// top-ups.
func Extract(r io.Reader, currency string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		scanner := bufio.NewScanner(r)
		var header map[string]int
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}
			cells := strings.Split(text, ",")

			if header == nil {
				cells[0] = strings.TrimPrefix(cells[0], "\ufeff")
				header = toIndex(cells)
				for _, c := range requiredColumns {
					if _, ok := header[c]; !ok {
						yield(nil, &RecordParseError{Line: line, Err: fmt.Errorf("missing column %q in header", c)})
						return
					}
				}
				continue
			}

			rec, err := parseRow(row{line: line, cells: cells, header: header}, currency)
			if err != nil {
				yield(nil, err)
				return
			}
			if rec == nil {
				slog.Debug("dropping statement row", "line", line, "type", row{cells: cells, header: header}.get(ColType))
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("cannot read statement: %w", err))
		}
	}
}

// ExtractAll collects every record of the statement, or returns the first error.
func ExtractAll(r io.Reader, currency string) ([]Record, error) {
	var records []Record
	for rec, err := range Extract(r, currency) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func toIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// row is a single split statement line with its header index.
type row struct {
	line   int
	cells  []string
	header map[string]int
}

// get returns the trimmed cell of column 'name', or "" if the row is too short.
func (r row) get(name string) string {
	i, ok := r.header[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) quantity(name string) (Quantity, error) {
	v := r.get(name)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return Quantity{}, &RecordParseError{Line: r.line, Column: name, Value: v, Err: errNotANumber}
	}
	return Q(d), nil
}

func (r row) money(name, currency string) (Money, error) {
	v := r.get(name)
	m, err := parseMoney(v, currency)
	if err != nil {
		return Money{}, &RecordParseError{Line: r.line, Column: name, Value: v, Err: err}
	}
	return m, nil
}

// optionalMoney is like money but returns zero for an empty cell.
func (r row) optionalMoney(name, currency string) (Money, error) {
	if r.get(name) == "" {
		return M(0, currency), nil
	}
	return r.money(name, currency)
}

// parseRow converts a data row into a Record. It returns nil, nil for dropped rows.
func parseRow(r row, currency string) (Record, error) {
	typ := r.get(ColType)
	ticker := r.get(ColTicker)

	switch {
	case strings.Contains(typ, typeBuy):
		if ticker == "" {
			return nil, nil
		}
		qty, err := r.quantity(ColQuantity)
		if err != nil {
			return nil, err
		}
		price, err := r.money(ColPrice, currency)
		if err != nil {
			return nil, err
		}
		amount, err := r.money(ColAmount, currency)
		if err != nil {
			return nil, err
		}
		return NewBuy(r.line, ticker, qty, price, amount), nil

	case strings.Contains(typ, typeSell):
		if ticker == "" {
			return nil, nil
		}
		qty, err := r.quantity(ColQuantity)
		if err != nil {
			return nil, err
		}
		price, err := r.optionalMoney(ColPrice, currency)
		if err != nil {
			return nil, err
		}
		amount, err := r.money(ColAmount, currency)
		if err != nil {
			return nil, err
		}
		s := NewSell(r.line, ticker, qty, amount)
		s.Price = price
		return s, nil

	case typ == typeDividend:
		amount, err := r.money(ColAmount, currency)
		if err != nil {
			return nil, err
		}
		return NewDividend(r.line, ticker, amount), nil

	case typ == typeFee:
		amount, err := r.money(ColAmount, currency)
		if err != nil {
			return nil, err
		}
		return NewFee(r.line, amount), nil

	case typ == typeCashTopUp:
		amount, err := r.money(ColAmount, currency)
		if err != nil {
			return nil, err
		}
		return NewCashTopUp(r.line, amount), nil
	}
	return nil, nil
}

// parseMoney parses an amount like "€12.50", "EUR 12.50", "-€0.12" or "12.5".
func parseMoney(s, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "EUR ")
	if currency != "" {
		s = strings.TrimPrefix(s, currency+" ")
	}
	d, err := decimal.NewFromString(sign + strings.TrimSpace(s))
	if err != nil {
		return Money{}, errNotANumber
	}
	return M(d, currency), nil
}
