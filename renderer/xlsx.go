package renderer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	positionsSheet = "Positions"
	summarySheet   = "Summary"
)

// XLSX writes the report as a workbook with a Positions and a Summary sheet.
func XLSX(w io.Writer, r *Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", positionsSheet); err != nil {
		return fmt.Errorf("cannot rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", summarySheet, err)
	}

	header := []any{"Identifier", "Ticker", "Quantity", "Average Price", "Currency"}
	if err := f.SetSheetRow(positionsSheet, "A1", &header); err != nil {
		return err
	}
	lines := r.Lines()
	for i, p := range r.Aggregate.Positions {
		row := []any{lines[i].Label, p.Ticker, p.Quantity.Decimal().InexactFloat64(), p.AveragePrice.Decimal().InexactFloat64(), r.Currency}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(positionsSheet, cell, &row); err != nil {
			return err
		}
	}

	for i, t := range r.Totals() {
		row := []any{t.Label, t.Amount.Decimal().Round(2).InexactFloat64(), r.Currency}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}
