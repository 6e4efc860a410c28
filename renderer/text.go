package renderer

import (
	"fmt"
	"io"
)

// Text writes the plain console report: one line per position, then the
// summary totals.
//
//	IE00B4L5Y983 - 8.10661844 - 76.04 EUR
func Text(w io.Writer, r *Report) error {
	for _, l := range r.Lines() {
		if _, err := fmt.Fprintf(w, "%s - %s - %s %s\n", l.Label, l.Quantity, l.AveragePrice, r.Currency); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, t := range r.Totals() {
		if _, err := fmt.Fprintf(w, "%s: %s %s\n", t.Label, t.Amount.Fixed(2), r.Currency); err != nil {
			return err
		}
	}
	return nil
}
