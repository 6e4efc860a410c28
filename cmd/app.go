// Package cmd implements the CLI application to analyze a statement.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/robostat"
	"github.com/etnz/robostat/config"
	"github.com/google/subcommands"
)

// Commands are the subcommands of the application.
var Commands = []subcommands.Command{
	&reportCmd{},
	&checkCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var statementDir = flag.String("dir", "", "Directory containing the statement CSV file. Defaults to $"+EnvStatementDir+" or the working directory.")
var identifiersFile = flag.String("ids", "", "JSON file mapping tickers to identifiers. Defaults to $"+EnvIdentifiersFile+".")
var Verbose = flag.Bool("v", false, "Log debug messages.")

// Exit statuses beyond the subcommands ones, one per error kind.
const (
	ExitConfiguration  subcommands.ExitStatus = 3
	ExitMappingGap     subcommands.ExitStatus = 4
	ExitRecordParse    subcommands.ExitStatus = 5
	ExitMalformedInput subcommands.ExitStatus = 6
)

// ExitStatus returns the exit status matching the kind of 'err'.
func ExitStatus(err error) subcommands.ExitStatus {
	var (
		cerr *robostat.ConfigurationError
		gerr *robostat.MappingGapError
		perr *robostat.RecordParseError
		merr *robostat.MalformedInputError
	)
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.As(err, &cerr):
		return ExitConfiguration
	case errors.As(err, &gerr):
		return ExitMappingGap
	case errors.As(err, &perr):
		return ExitRecordParse
	case errors.As(err, &merr):
		return ExitMalformedInput
	default:
		return subcommands.ExitFailure
	}
}

// fail prints 'err' to stderr and returns its exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var gerr *robostat.MappingGapError
	if errors.As(err, &gerr) {
		for _, t := range gerr.Tickers {
			fmt.Fprintf(os.Stderr, "  missing identifier for %q\n", t)
		}
	}
	return ExitStatus(err)
}

// loadConfig reads the configuration, applies the global flags and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *statementDir != "" {
		cfg.StatementDir = *statementDir
	}
	if *identifiersFile != "" {
		cfg.IdentifiersFile = *identifiersFile
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	setupLogger(cfg.LogLevel)
	slog.Debug("config", slog.Any("cfg", cfg))
	return cfg, nil
}

// setupLogger installs a text logger on stderr as the default slog logger.
func setupLogger(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}

// printMarkdown displays markdown on the terminal, or raw if it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	slog.Debug("cannot render markdown", "error", err)
	fmt.Print(md)
}
