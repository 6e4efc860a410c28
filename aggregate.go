package robostat

import (
	"fmt"
	"iter"
	"slices"
)

// Position is the remaining holding of a single ticker.
type Position struct {
	Ticker   string
	Quantity Quantity // Quantity still held: bought minus sold.
	// AveragePrice is the total cost of every buy divided by the total bought
	// quantity. Sells do not change it.
	AveragePrice Money
}

// Summary holds the portfolio-wide cash flow totals.
type Summary struct {
	Injected  Money // cash top-ups
	Sold      Money // proceeds of sells
	Dividends Money
	Fees      Money // always counted as a positive amount
}

// NetContributions returns the capital injected minus the capital withdrawn through sells.
func (s Summary) NetContributions() Money { return s.Injected.Sub(s.Sold) }

// Aggregate is the result of folding a statement.
type Aggregate struct {
	// Positions with a strictly positive remaining quantity, in the order
	// their ticker first appeared in a buy or a sell.
	Positions []Position
	Summary   Summary
}

// Position returns the position of 'ticker' if it is still held.
func (a *Aggregate) Position(ticker string) (Position, bool) {
	i := slices.IndexFunc(a.Positions, func(p Position) bool { return p.Ticker == ticker })
	if i < 0 {
		return Position{}, false
	}
	return a.Positions[i], true
}

// Tickers returns the tickers of all positions.
func (a *Aggregate) Tickers() []string {
	tickers := make([]string, 0, len(a.Positions))
	for _, p := range a.Positions {
		tickers = append(tickers, p.Ticker)
	}
	return tickers
}

// tickerStats accumulates buys and sells of a single ticker.
type tickerStats struct {
	bought Quantity
	sold   Quantity
	cost   Money
}

// Fold accumulates 'records' into an Aggregate.
//
// It returns a *MalformedInputError if a ticker was sold but never bought,
// since its average price would be undefined.
func Fold(records iter.Seq[Record]) (*Aggregate, error) {
	var summary Summary
	stats := make(map[string]*tickerStats)
	var order []string

	get := func(ticker string) *tickerStats {
		s, ok := stats[ticker]
		if !ok {
			s = &tickerStats{}
			stats[ticker] = s
			order = append(order, ticker)
		}
		return s
	}

	for rec := range records {
		switch v := rec.(type) {
		case CashTopUp:
			summary.Injected = summary.Injected.Add(v.Amount)
		case Dividend:
			summary.Dividends = summary.Dividends.Add(v.Amount)
		case Fee:
			summary.Fees = summary.Fees.Add(v.Amount.Abs())
		case Buy:
			s := get(v.Ticker)
			s.bought = s.bought.Add(v.Quantity)
			s.cost = s.cost.Add(v.Amount)
		case Sell:
			s := get(v.Ticker)
			s.sold = s.sold.Add(v.Quantity)
			summary.Sold = summary.Sold.Add(v.Amount)
		}
	}

	agg := &Aggregate{Summary: summary}
	for _, ticker := range order {
		s := stats[ticker]
		if s.bought.IsZero() {
			return nil, &MalformedInputError{
				Ticker: ticker,
				Reason: fmt.Sprintf("sold %s units but bought none, average price is undefined", s.sold),
			}
		}
		remaining := s.bought.Sub(s.sold)
		if !remaining.IsPositive() {
			continue
		}
		agg.Positions = append(agg.Positions, Position{
			Ticker:       ticker,
			Quantity:     remaining,
			AveragePrice: s.cost.Div(s.bought),
		})
	}
	return agg, nil
}

// FoldAll is Fold over a slice of records.
func FoldAll(records []Record) (*Aggregate, error) {
	return Fold(slices.Values(records))
}
