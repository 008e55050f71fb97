// Package returns computes investment performance from dated cash flows and
// point-in-time valuations.
//
// The package has two independent, stateless engines:
//   - Money-weighted return: XIRR finds the annualized rate that zeroes the
//     net present value of an irregular series of cash flows.
//   - Time-weighted return: LinkedTWR computes a Modified Dietz return for each
//     pair of consecutive valuations and links them geometrically.
//
// Both engines consume the same CashFlow record. Its sign convention is the
// one of the position: a negative amount is money put into the investment, a
// positive amount is money taken out of it.
//
// Around the engines, a Ledger records deposits, withdrawals and valuation
// snapshots of a single account, and a Review applies both engines to a date
// range of that ledger. Ledgers are persisted as human-readable JSONL, and can
// also be read from YAML or from any JSON document through a jsonpath query.
//
// A computation that cannot produce a number returns an error matching
// ErrNoResult. This is an expected outcome for new or sparse accounts and
// must be presented as a neutral value, not as a failure.
package returns
