// Package config reads the run configuration from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/caarlos0/env/v11"
	"github.com/etnz/robostat"
	"github.com/joho/godotenv"
)

// Config is built once at startup and not modified afterwards.
type Config struct {
	LogLevel     string `env:"ROBOSTAT_LOG_LEVEL" envDefault:"info"`
	StatementDir string `env:"ROBOSTAT_STATEMENT_DIR" envDefault:"."`
	Currency     string `env:"ROBOSTAT_CURRENCY" envDefault:"EUR"`

	// Identifiers maps tickers to IDs, written as "TICKER=ID,TICKER=ID".
	Identifiers map[string]string `env:"ROBOSTAT_IDENTIFIERS" envSeparator:"," envKeyValSeparator:"="`
	// IdentifiersFile is an optional JSON file of identifiers, its entries
	// override Identifiers.
	IdentifiersFile string `env:"ROBOSTAT_IDENTIFIERS_FILE"`
	// IdentifiersPath is the JSONPath of the identifiers within IdentifiersFile.
	IdentifiersPath string `env:"ROBOSTAT_IDENTIFIERS_PATH" envDefault:"$"`
}

// Load reads the configuration from the process environment, after loading
// the optional ".env" file of the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	return parse(env.Options{})
}

// LoadFrom reads the configuration from 'environ' only.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("cannot parse environment: %v", err)}
	}
	if err := robostat.ValidateCurrency(cfg.Currency); err != nil {
		return nil, &robostat.ConfigurationError{Reason: err.Error()}
	}
	return cfg, nil
}

// LoadIdentifiers builds the identifiers from the environment and the
// identifiers file. It returns a *robostat.ConfigurationError if the file
// cannot be read or if no identifier is configured at all.
func (c *Config) LoadIdentifiers() (*robostat.Identifiers, error) {
	m := make(map[string]string, len(c.Identifiers))
	maps.Copy(m, c.Identifiers)

	if c.IdentifiersFile != "" {
		fromFile, err := readIdentifiersFile(c.IdentifiersFile, c.IdentifiersPath)
		if err != nil {
			return nil, err
		}
		slog.Debug("identifiers file loaded", "path", c.IdentifiersFile, "count", len(fromFile))
		maps.Copy(m, fromFile)
	}

	ids := robostat.NewIdentifiers(m)
	if ids.Len() == 0 {
		return nil, &robostat.ConfigurationError{Reason: "no ticker identifiers configured, set ROBOSTAT_IDENTIFIERS or ROBOSTAT_IDENTIFIERS_FILE"}
	}
	return ids, nil
}

// readIdentifiersFile reads a JSON document and selects the identifiers with
// the JSONPath 'path'.
//
// The selected value is either an object {"TICKER": "ID", ...} or an array of
// objects {"ticker": "TICKER", "id": "ID"}.
func readIdentifiersFile(name, path string) (map[string]string, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &robostat.ConfigurationError{Reason: "identifiers file does not exist", Path: name}
	}
	if err != nil {
		return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("cannot read identifiers file: %v", err), Path: name}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("invalid JSON: %v", err), Path: name}
	}
	if path == "" {
		path = "$"
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("cannot evaluate %q: %v", path, err), Path: name}
	}

	m := make(map[string]string)
	switch v := jval.(type) {
	case map[string]any:
		for ticker, id := range v {
			s, ok := id.(string)
			if !ok {
				return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("identifier of %q is not a string", ticker), Path: name}
			}
			m[ticker] = s
		}
	case []any:
		for i, item := range v {
			obj, _ := item.(map[string]any)
			ticker, _ := obj["ticker"].(string)
			id, _ := obj["id"].(string)
			if ticker == "" || id == "" {
				return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("entry #%d needs a \"ticker\" and an \"id\"", i), Path: name}
			}
			m[ticker] = id
		}
	default:
		return nil, &robostat.ConfigurationError{Reason: fmt.Sprintf("%q selects neither an object nor an array", path), Path: name}
	}
	return m, nil
}
