// Package cryptotax computes realized capital gains of crypto-asset trades
// using the average cost basis method, as required for the Swedish K4 form.
//
// The core functionalities include:
//   - Trade Events: a chronological stream of exchanges, incomes, gifts and
//     disposals, already valued in the native currency.
//   - Ledgers: one per asset, holding its balance and average cost basis.
//   - Accounting System: a stateless engine that replays the trades into the
//     ledgers and produces the tax events of a reporting range, an optional
//     audit trail and the holdings carried forward.
//   - Post Processing: aggregation per asset, rounding audit and integer
//     conversion for reporting formats that only accept integers.
//   - Rates: daily conversion rates for sources that value trades in a
//     foreign currency.
//
// This package serves as the foundational logic for the `k4tax` command-line
// tool. Reading trade files and writing forms is done by the cointracking
// and k4 packages.
package cryptotax
