// Package miracle implements the core of the Miracle brokerage simulator:
// an immutable instrument catalog seeded from fixtures, a portfolio ledger
// with pure, validating transition functions, a pie (weighted basket)
// composer, and derived valuation.
//
// The package holds no I/O and no mutable global state. A Ledger is an
// immutable snapshot; every Apply* transition validates its inputs and
// returns a fresh snapshot, so the CLI, the HTTP API and the tests all get
// the same guarantees. All market data is fixture-sourced: there is no
// order matching, no persistence and no live price feed.
package miracle
