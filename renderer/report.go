// Package renderer formats the result of a statement analysis.
package renderer

import (
	"github.com/etnz/robostat"
)

// Report is everything a renderer needs to print an analysis.
type Report struct {
	Currency    string
	Identifiers *robostat.Identifiers
	Aggregate   *robostat.Aggregate
}

// Line is a position ready to be printed.
type Line struct {
	Label        string // Label is the identifier of the ticker, or the ticker itself if unmapped.
	Ticker       string
	Quantity     string // 8 decimals
	AveragePrice string // 2 decimals
}

// Lines returns the report positions in aggregate order.
func (r *Report) Lines() []Line {
	lines := make([]Line, 0, len(r.Aggregate.Positions))
	for _, p := range r.Aggregate.Positions {
		label := p.Ticker
		if r.Identifiers != nil {
			if id, ok := r.Identifiers.Lookup(p.Ticker); ok {
				label = id.String()
			}
		}
		lines = append(lines, Line{
			Label:        label,
			Ticker:       p.Ticker,
			Quantity:     p.Quantity.Fixed(8),
			AveragePrice: p.AveragePrice.Fixed(2),
		})
	}
	return lines
}

// Total is a labelled summary amount.
type Total struct {
	Label  string
	Amount robostat.Money
}

// Totals returns the summary block, in print order.
func (r *Report) Totals() []Total {
	s := r.Aggregate.Summary
	return []Total{
		{"Total injected", s.Injected},
		{"Total sold", s.Sold},
		{"Net contributions", s.NetContributions()},
		{"Total dividends", s.Dividends},
		{"Total fees", s.Fees},
	}
}
