// Package cartera tracks a personal investment portfolio (mutual funds,
// cedears, local equities and a USD cash position) together with a monthly
// inflation index series.
//
// The core is a batch pipeline: the valuation updater fetches current prices
// per instrument and writes them back to the position store, the historical
// append engine captures one snapshot per position per update cycle into an
// append-only ledger, and the rollup engine derives the time-series views
// (totals by date, category and ticker evolutions, inflation rates) consumed
// by any presentation layer.
package cartera
