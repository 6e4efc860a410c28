// Package robostat computes the holdings and cash flows of a robo-advisor
// account from its CSV transaction statement.
//
// The work is done in two stages:
//   - Extraction: each statement row is classified by its Type column into
//     a Buy, Sell, Dividend, Fee or CashTopUp record. Unknown rows are
//     dropped, malformed amounts of known rows are errors.
//   - Folding: records are accumulated into positions (remaining quantity
//     and average purchase price per ticker) and a Summary of cash injected,
//     sold, received as dividends and paid as fees.
//
// Identifiers map every ticker to an external ID (an ISIN) used to label
// the report. Every ticker still held must have one.
//
// This package is the foundation of the `rbs` command-line tool.
package robostat
