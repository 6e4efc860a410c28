package renderer

import (
	"fmt"
	"io"
	"strings"
)

// Markdown renders the report as a markdown document.
func Markdown(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio\n\n")

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Positions\n\n")
		fmt.Fprintln(w, "| Identifier | Ticker | Quantity | Average Price |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|")
		lines := r.Lines()
		for _, l := range lines {
			fmt.Fprintf(w, "| %s | %s | %s | %s %s |\n", l.Label, l.Ticker, l.Quantity, l.AveragePrice, r.Currency)
		}
		fmt.Fprintln(w)
		return len(lines) > 0
	})

	fmt.Fprintf(&b, "## Cash Flows\n\n")
	fmt.Fprintln(&b, "| | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, t := range r.Totals() {
		fmt.Fprintf(&b, "| %s | %s %s |\n", t.Label, t.Amount.Fixed(2), r.Currency)
	}
	return b.String()
}
