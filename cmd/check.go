package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/robostat"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check that every position has an identifier" }
func (*checkCmd) Usage() string {
	return `rbs check

  Analyzes the statement and lists every position with its identifier.
  Exits with status 4 if any position has none.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	ids, err := cfg.LoadIdentifiers()
	if err != nil {
		return fail(err)
	}
	agg, err := robostat.AnalyzeDir(ids, cfg.StatementDir, cfg.Currency)
	var gap *robostat.MappingGapError
	if err != nil && !errors.As(err, &gap) {
		return fail(err)
	}

	held := make(map[string]bool)
	for _, ticker := range agg.Tickers() {
		held[ticker] = true
		if id, ok := ids.Lookup(ticker); ok {
			fmt.Printf("%-12s %s\n", ticker, id)
		} else {
			fmt.Printf("%-12s MISSING\n", ticker)
		}
	}
	for _, ticker := range ids.Tickers() {
		if !held[ticker] {
			slog.Debug("identifier not used by any position", "ticker", ticker)
		}
	}

	if gap != nil {
		return fail(gap)
	}
	fmt.Fprintf(os.Stderr, "✅ All %d positions have an identifier.\n", len(agg.Positions))
	return subcommands.ExitSuccess
}
