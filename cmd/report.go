package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/robostat"
	"github.com/etnz/robostat/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	format string
	xlsx   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display positions and cash flows of the statement" }
func (*reportCmd) Usage() string {
	return `rbs report [-format text|markdown] [-xlsx <file>]

  Reads the only CSV statement of the statement directory and displays the
  remaining quantity and average purchase price of every position, followed
  by the total cash injected, sold, received as dividends and paid as fees.

  Every position must have an identifier, see 'rbs topic identifiers'.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "text", "Output format: text or markdown")
	f.StringVar(&c.xlsx, "xlsx", "", "Also write the report to this XLSX workbook")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "text" && c.format != "markdown" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	ids, err := cfg.LoadIdentifiers()
	if err != nil {
		return fail(err)
	}
	agg, err := robostat.AnalyzeDir(ids, cfg.StatementDir, cfg.Currency)
	if err != nil {
		return fail(err)
	}

	report := &renderer.Report{Currency: cfg.Currency, Identifiers: ids, Aggregate: agg}

	switch c.format {
	case "markdown":
		printMarkdown(renderer.Markdown(report))
	default:
		if err := renderer.Text(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if c.xlsx != "" {
		if err := writeXLSX(c.xlsx, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing workbook %q: %v\n", c.xlsx, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", c.xlsx)
	}
	return subcommands.ExitSuccess
}

func writeXLSX(name string, report *renderer.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := renderer.XLSX(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
