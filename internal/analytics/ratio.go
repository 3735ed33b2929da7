// Package analytics implements the portfolio analytics engine: a library of
// pure, stateless transformation functions over positions, transactions, and
// daily snapshots.
//
// Every function is synchronous, performs no I/O, and holds no shared state,
// so the package is safe to call from any number of goroutines. Functions
// never mutate their inputs; all sorting happens on defensive copies. Numeric
// edge cases (empty inputs, zero denominators, missing fields) resolve to
// documented zero/empty defaults rather than NaN or panics.
package analytics

// ratio divides num by den, returning fallback when den is zero.
// Every percent and ratio computation in this package goes through this
// helper so no unguarded division can slip into a new metric.
func ratio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}
